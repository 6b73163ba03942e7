package persist

import "errors"

// ErrSchemaMismatch is returned when a serialized document is missing a
// required field. Per the persistence error table, this is fatal: the
// caller must abort the load rather than ingest a partial document.
var ErrSchemaMismatch = errors.New("persist: schema mismatch")

// ErrUnknownSymbolType is returned when a symbol's discriminator tag is
// neither "function" nor "method".
var ErrUnknownSymbolType = errors.New("persist: unknown symbol type")
