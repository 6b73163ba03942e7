// Package repository adapts the teacher's project/repository detector to
// the indexer's narrower need: finding the root a file or directory should
// be indexed relative to, and naming that root's project if possible.
package repository

import (
	"context"
	"os"
	"path/filepath"
	"regexp"

	"github.com/viant/afs"
	"golang.org/x/mod/modfile"
)

// Project describes the root the indexer resolved for a given path.
type Project struct {
	// Type is one of "go", "python", "native", "git", or "unknown".
	Type string
	// Name is the project's declared name, falling back to the root
	// directory's base name when none could be extracted.
	Name string
	// RootPath is the absolute path to the detected root.
	RootPath string
	// RelativePath is path's location relative to RootPath, slash-separated.
	RelativePath string
}

// Detector walks up from a path looking for project root markers.
type Detector struct {
	markers []string
}

// New creates a Detector recognizing the project marker files relevant to
// this module's scope (Python/C/C++ targets, possibly wrapped by a Go
// tool), plus a generic .git fallback.
func New() *Detector {
	return &Detector{
		markers: []string{
			"go.mod",
			"pyproject.toml",
			"requirements.txt",
			"setup.py",
			"CMakeLists.txt",
			"Makefile",
			".git",
		},
	}
}

// DetectProject resolves the project root containing path.
func (d *Detector) DetectProject(path string) (*Project, error) {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return nil, err
	}

	startDir := absPath
	if info, err := os.Stat(absPath); err == nil && !info.IsDir() {
		startDir = filepath.Dir(absPath)
	}

	rootPath, projectType := d.findProjectRoot(startDir)

	project := &Project{Type: "unknown", RootPath: absPath}
	if rootPath != "" {
		project.RootPath = rootPath
		project.Type = projectType
	}

	relPath, err := filepath.Rel(project.RootPath, absPath)
	if err != nil {
		relPath = filepath.Base(absPath)
	}
	project.RelativePath = filepath.ToSlash(relPath)
	project.Name = d.extractProjectName(project.RootPath, project.Type)

	return project, nil
}

func (d *Detector) findProjectRoot(startDir string) (string, string) {
	dir := startDir
	for {
		for _, marker := range d.markers {
			if _, err := os.Stat(filepath.Join(dir, marker)); err == nil {
				return dir, projectTypeForMarker(marker)
			}
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
	return "", ""
}

func projectTypeForMarker(marker string) string {
	switch marker {
	case "go.mod":
		return "go"
	case "pyproject.toml", "requirements.txt", "setup.py":
		return "python"
	case "CMakeLists.txt", "Makefile":
		return "native"
	case ".git":
		return "git"
	default:
		return "unknown"
	}
}

func (d *Detector) extractProjectName(rootPath, projectType string) string {
	if projectType == "go" {
		if name := d.extractGoModuleName(filepath.Join(rootPath, "go.mod")); name != "" {
			return name
		}
	}
	if projectType == "python" {
		if name := extractPyProjectName(filepath.Join(rootPath, "pyproject.toml")); name != "" {
			return name
		}
	}
	return filepath.Base(rootPath)
}

// extractGoModuleName reads go.mod via afs (so the module path resolves
// against any afs-supported URL scheme, not just the local disk) and parses
// it with golang.org/x/mod/modfile.
func (d *Detector) extractGoModuleName(goModPath string) string {
	fs := afs.New()
	content, err := fs.DownloadWithURL(context.Background(), goModPath)
	if err != nil || len(content) == 0 {
		content, err = os.ReadFile(goModPath)
		if err != nil {
			return ""
		}
	}
	mod, err := modfile.Parse(goModPath, content, nil)
	if err != nil || mod.Module == nil {
		return ""
	}
	return mod.Module.Mod.Path
}

var pyProjectNameRegex = regexp.MustCompile(`(?:tool\.poetry|project)\.name\s*=\s*["']([^"']+)["']`)

func extractPyProjectName(pyprojectPath string) string {
	data, err := os.ReadFile(pyprojectPath)
	if err != nil {
		return ""
	}
	matches := pyProjectNameRegex.FindSubmatch(data)
	if len(matches) < 2 {
		return ""
	}
	return string(matches[1])
}
