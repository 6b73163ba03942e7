package indexer

import "errors"

// ErrUnsupportedExtension is returned by IndexFile when no processor is
// registered for the file's extension.
var ErrUnsupportedExtension = errors.New("indexer: unsupported file extension")
