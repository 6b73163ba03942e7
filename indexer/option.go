package indexer

// Option configures an Indexer, mirroring the teacher's analyzer.Option
// functional-options pattern.
type Option func(*Indexer)

// WithRelativePaths stores file paths relative to the indexed root rather
// than absolute, matching the reference indexer's store_relative_paths
// flag. Relative paths are the default.
func WithRelativePaths(relative bool) Option {
	return func(idx *Indexer) {
		idx.relativePaths = relative
	}
}

// WithGitignore makes IndexProject honor every .gitignore found under the root.
// Off by default: the documented traversal semantics walk every file whose
// extension a registered processor claims, and this opts into an additional
// filter rather than replacing that behavior.
func WithGitignore() Option {
	return func(idx *Indexer) {
		idx.useGitignore = true
	}
}

// WithIncludeGlobs restricts indexing to paths matching at least one of the
// given doublestar patterns (evaluated against the path relative to root).
func WithIncludeGlobs(patterns ...string) Option {
	return func(idx *Indexer) {
		idx.includeGlobs = append(idx.includeGlobs, patterns...)
	}
}

// WithExcludeGlobs skips any path matching one of the given doublestar
// patterns (evaluated against the path relative to root).
func WithExcludeGlobs(patterns ...string) Option {
	return func(idx *Indexer) {
		idx.excludeGlobs = append(idx.excludeGlobs, patterns...)
	}
}

// WithLogger injects the ambient Logger used to report non-fatal warnings
// (an unreadable or unparsable file during a project walk) without pulling
// in a logging dependency of its own. Unset, warnings are discarded.
func WithLogger(logger Logger) Option {
	return func(idx *Indexer) {
		if logger != nil {
			idx.logger = logger
		}
	}
}
