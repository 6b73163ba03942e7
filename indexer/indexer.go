// Package indexer drives the processors over a file or project tree and
// feeds the resulting definitions and references into a xrefindex.CrossRefIndex.
package indexer

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/bmatcuk/doublestar/v4"

	"github.com/viant/coderef/processor"
	"github.com/viant/coderef/xrefindex"
)

// Indexer dispatches files to registered processors by extension and
// accumulates their definitions/references into an index.
type Indexer struct {
	processors map[string]processor.Processor

	relativePaths bool
	useGitignore  bool
	includeGlobs  []string
	excludeGlobs  []string
	logger        Logger
}

// New returns an Indexer with relative-path storage on, registering procs
// by every extension each one reports.
func New(procs []processor.Processor, opts ...Option) *Indexer {
	idx := &Indexer{
		processors:    make(map[string]processor.Processor),
		relativePaths: true,
		logger:        noopLogger{},
	}
	for _, p := range procs {
		for _, ext := range p.Extensions() {
			idx.processors[ext] = p
		}
	}
	for _, opt := range opts {
		opt(idx)
	}
	return idx
}

// processorFor returns the processor registered for path's extension.
func (idx *Indexer) processorFor(path string) (processor.Processor, bool) {
	p, ok := idx.processors[filepath.Ext(path)]
	return p, ok
}

// IndexFile parses a single file and records its definitions/references
// into index. projectRoot is used to compute the stored file path when relative
// paths are enabled.
func (idx *Indexer) IndexFile(index *xrefindex.CrossRefIndex, projectRoot, path string) error {
	proc, ok := idx.processorFor(path)
	if !ok {
		return fmt.Errorf("%w: no processor registered for %s", ErrUnsupportedExtension, path)
	}

	parser, ok := proc.(interface {
		Parse(src []byte) (processor.Tree, error)
	})
	if !ok {
		return fmt.Errorf("indexer: processor %s does not support parsing", proc.Name())
	}

	source, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("indexer: failed to read %s: %w", path, err)
	}

	tree, err := parser.Parse(source)
	if err != nil {
		return fmt.Errorf("indexer: failed to parse %s: %w", path, err)
	}

	storedPath := path
	if idx.relativePaths {
		if rel, err := filepath.Rel(projectRoot, path); err == nil {
			storedPath = filepath.ToSlash(rel)
		}
	}
	ctx := processor.QueryContext{FilePath: storedPath, Source: source}
	rootNode := tree.RootNode()

	for _, node := range proc.DefinitionNodes(rootNode) {
		symbol, def, ok := proc.HandleDefinition(node, ctx)
		if !ok {
			continue
		}
		index.AddDefinition(symbol, def)
	}
	for _, node := range proc.ReferenceNodes(rootNode) {
		symbol, ref, ok := proc.HandleReference(node, ctx)
		if !ok {
			continue
		}
		index.AddReference(symbol, ref)
	}
	return nil
}

// IndexProject walks root and indexes every file whose extension a
// registered processor claims, in deterministic (lexically sorted) order.
func (idx *Indexer) IndexProject(root string) (*xrefindex.CrossRefIndex, error) {
	index := xrefindex.New()

	var ignore *gitignoreMatcher
	if idx.useGitignore {
		var err error
		ignore, err = newGitignoreMatcher(root)
		if err != nil {
			return nil, fmt.Errorf("indexer: failed to load .gitignore: %w", err)
		}
	}

	paths, err := idx.collectFiles(root, ignore)
	if err != nil {
		return nil, err
	}

	for _, path := range paths {
		if err := idx.IndexFile(index, root, path); err != nil {
			idx.logger.Warnf("indexer: skipping %s: %v", path, err)
			continue
		}
	}
	return index, nil
}

func (idx *Indexer) collectFiles(root string, ignore *gitignoreMatcher) ([]string, error) {
	var paths []string
	err := filepath.Walk(root, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if info.IsDir() {
			return nil
		}
		if _, ok := idx.processorFor(path); !ok {
			return nil
		}

		relPath, relErr := filepath.Rel(root, path)
		if relErr != nil {
			relPath = path
		}
		relPath = filepath.ToSlash(relPath)

		if ignore != nil && ignore.ShouldIgnore(relPath) {
			return nil
		}
		if len(idx.includeGlobs) > 0 && !matchesAny(idx.includeGlobs, relPath) {
			return nil
		}
		if matchesAny(idx.excludeGlobs, relPath) {
			return nil
		}

		paths = append(paths, path)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("indexer: failed to walk %s: %w", root, err)
	}
	sort.Strings(paths)
	return paths, nil
}

func matchesAny(patterns []string, path string) bool {
	for _, pattern := range patterns {
		if matched, err := doublestar.Match(pattern, path); err == nil && matched {
			return true
		}
	}
	return false
}
