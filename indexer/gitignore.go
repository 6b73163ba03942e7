package indexer

import (
	"os"
	"path/filepath"
	"strings"

	ignore "github.com/sabhiram/go-gitignore"
)

// nestedMatcher pairs a compiled .gitignore with the directory it was found
// in, relative to the indexing root.
type nestedMatcher struct {
	matcher *ignore.GitIgnore
	baseDir string
}

// gitignoreMatcher aggregates every .gitignore found under a root so a
// single ShouldIgnore call can honor nested ignore files the way git itself
// does. Opt-in via WithGitignore; the default walk ignores nothing so
// existing traversal semantics are preserved.
type gitignoreMatcher struct {
	root     string
	matchers []nestedMatcher
}

func newGitignoreMatcher(root string) (*gitignoreMatcher, error) {
	m := &gitignoreMatcher{root: root}

	err := filepath.Walk(root, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return nil
		}
		if info.IsDir() || filepath.Base(path) != ".gitignore" {
			return nil
		}
		gi, err := ignore.CompileIgnoreFile(path)
		if err != nil {
			return nil
		}
		relDir, err := filepath.Rel(root, filepath.Dir(path))
		if err != nil {
			return nil
		}
		if relDir == "." {
			relDir = ""
		}
		m.matchers = append(m.matchers, nestedMatcher{matcher: gi, baseDir: relDir})
		return nil
	})
	if err != nil {
		return nil, err
	}
	return m, nil
}

// ShouldIgnore reports whether relPath (slash-separated, relative to root)
// matches any discovered .gitignore.
func (m *gitignoreMatcher) ShouldIgnore(relPath string) bool {
	normalized := filepath.ToSlash(relPath)
	for _, nm := range m.matchers {
		var scoped string
		if nm.baseDir == "" {
			scoped = normalized
		} else {
			base := filepath.ToSlash(nm.baseDir)
			if normalized != base && !strings.HasPrefix(normalized, base+"/") {
				continue
			}
			scoped = strings.TrimPrefix(normalized, base+"/")
		}
		if nm.matcher.MatchesPath(scoped) || nm.matcher.MatchesPath(scoped+"/") {
			return true
		}
	}
	return false
}
