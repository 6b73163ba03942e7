package model

import (
	"fmt"

	"github.com/minio/highwayhash"
)

// fingerprintKey is a fixed highwayhash key used only to derive stable,
// process-independent content fingerprints; it is not a security boundary.
var fingerprintKey = []byte("coderef-fingerprint-key-32bytes!")

// ContentHash hashes arbitrary content (a definition's raw body, a whole
// IndexData snapshot) into a stable 64-bit fingerprint, mirroring the
// teacher's Document.HashContent helper. Used by persist for the optional
// IndexData.Metadata fingerprint, not for identity: identity is always the
// location-keyed PureDefinition/PureReference projection.
func ContentHash(data []byte) uint64 {
	hash, err := highwayhash.New64(fingerprintKey)
	if err != nil {
		// Only fails on a malformed key, which is a programmer error.
		panic(fmt.Sprintf("coderef: invalid fingerprint key: %v", err))
	}
	_, _ = hash.Write(data)
	return hash.Sum64()
}

// CacheKey returns a string suitable as a map key for symbol lookups that
// need an ordering-stable textual form (e.g. logging, CLI output); it is not
// used as the canonical equality key, which remains the Symbol struct value.
func (s Symbol) CacheKey() string {
	if s.HasClass {
		return string(s.Kind) + ":" + s.ClassName + "." + s.Name
	}
	return string(s.Kind) + ":" + s.Name
}
