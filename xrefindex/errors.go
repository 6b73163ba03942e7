package xrefindex

import "errors"

// ErrInvalidQuery is returned by HandleQuery when a query's shape cannot be
// serviced, e.g. QueryByNameRegex carrying an unparsable pattern.
var ErrInvalidQuery = errors.New("xrefindex: invalid query")

// ErrUnknownSymbol names the case of a lookup for a symbol the index has
// never recorded a definition or reference for. HandleQuery does not return
// it: a QueryByKey for such a symbol yields no results and a nil error.
var ErrUnknownSymbol = errors.New("xrefindex: unknown symbol")
