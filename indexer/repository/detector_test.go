package repository_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/viant/coderef/indexer/repository"
)

func TestDetectProjectFindsPyprojectRoot(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(root, "pyproject.toml"), []byte(`[project]
name = "sample-project"
`), 0o644))

	sub := filepath.Join(root, "pkg")
	require.NoError(t, os.MkdirAll(sub, 0o755))
	file := filepath.Join(sub, "mod.py")
	require.NoError(t, os.WriteFile(file, []byte("x = 1\n"), 0o644))

	detector := repository.New()
	project, err := detector.DetectProject(file)
	require.NoError(t, err)

	assert.Equal(t, "python", project.Type)
	assert.Equal(t, "sample-project", project.Name)
	assert.Equal(t, "pkg/mod.py", project.RelativePath)
}

func TestDetectProjectFallsBackToUnknown(t *testing.T) {
	root := t.TempDir()
	file := filepath.Join(root, "mod.py")
	require.NoError(t, os.WriteFile(file, []byte("x = 1\n"), 0o644))

	detector := repository.New()
	project, err := detector.DetectProject(file)
	require.NoError(t, err)

	assert.Equal(t, "unknown", project.Type)
}
