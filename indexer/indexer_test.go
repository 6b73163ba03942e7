package indexer_test

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/viant/coderef/indexer"
	"github.com/viant/coderef/model"
	"github.com/viant/coderef/processor"
	"github.com/viant/coderef/processor/python"
	"github.com/viant/coderef/xrefindex"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestIndexProjectBuildsCallGraphAcrossFiles(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "a.py", "def helper():\n    pass\n")
	writeFile(t, dir, "b.py", "def main():\n    helper()\n")

	idx := indexer.New([]processor.Processor{python.New()})
	index, err := idx.IndexProject(dir)
	require.NoError(t, err)

	helperDefs := index.GetDefinitions(model.NewFunction("helper"))
	require.Len(t, helperDefs, 1)
	assert.Equal(t, "a.py", helperDefs[0].Location.FilePath)

	helperRefs := index.GetReferences(model.NewFunction("helper"))
	require.Len(t, helperRefs, 1)
	require.Len(t, helperRefs[0].CalledBy, 1)
	assert.Equal(t, model.NewFunction("main"), helperRefs[0].CalledBy[0].Symbol)
}

func TestIndexProjectSkipsUnregisteredExtensions(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "notes.txt", "not code")
	writeFile(t, dir, "a.py", "def helper():\n    pass\n")

	idx := indexer.New([]processor.Processor{python.New()})
	index, err := idx.IndexProject(dir)
	require.NoError(t, err)

	assert.True(t, index.Contains(model.NewFunction("helper")))
}

func TestIndexFileReturnsErrorForUnknownExtension(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "a.rs", "fn main() {}")

	idx := indexer.New([]processor.Processor{python.New()})
	err := idx.IndexFile(xrefindex.New(), dir, path)
	assert.ErrorIs(t, err, indexer.ErrUnsupportedExtension)
}

type fakeLogger struct {
	warnings []string
}

func (f *fakeLogger) Warnf(format string, args ...any) {
	f.warnings = append(f.warnings, fmt.Sprintf(format, args...))
}

func TestIndexProjectWarnsAndContinuesOnPerFileError(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "a.py", "def helper():\n    pass\n")
	broken := filepath.Join(dir, "broken.py")
	require.NoError(t, os.Symlink(filepath.Join(dir, "missing-target"), broken))

	logger := &fakeLogger{}
	idx := indexer.New([]processor.Processor{python.New()}, indexer.WithLogger(logger))
	index, err := idx.IndexProject(dir)
	require.NoError(t, err)

	assert.True(t, index.Contains(model.NewFunction("helper")))
	require.Len(t, logger.warnings, 1)
	assert.Contains(t, logger.warnings[0], "broken.py")
}
