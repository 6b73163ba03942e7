// Package persist implements the §4.F persistence contract: a pure mapping
// between the in-memory cross-reference index and its serialized forms.
// Encoders live outside the core index on purpose (§4.F); this package is
// the JSON/YAML encoder pair, driven by the normative §6 schema.
package persist

import (
	"encoding/json"
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/viant/coderef/model"
)

// MetadataContentHashKey is the IndexData.Metadata key under which Marshal
// stamps a content fingerprint of the serialized entries.
const MetadataContentHashKey = "content_hash"

// Marshal renders data as indented JSON in the §6 normative schema. A
// content fingerprint of the entries is stamped into a copy of
// data.Metadata under MetadataContentHashKey; the caller's Metadata map is
// left untouched.
func Marshal(data model.IndexData) ([]byte, error) {
	w := toWireIndexData(data)

	entriesJSON, err := json.Marshal(w.Data)
	if err != nil {
		return nil, fmt.Errorf("persist: marshal entries: %w", err)
	}
	w.Metadata = stampContentHash(data.Metadata, entriesJSON)

	out, err := json.MarshalIndent(w, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("persist: marshal index data: %w", err)
	}
	return out, nil
}

// Unmarshal parses the §6 normative JSON schema. A document missing a
// required field (here, "type") is rejected with ErrSchemaMismatch, per the
// "Deserialization schema mismatch" error table entry; a store-tag mismatch
// against expectedType is reported through the returned warning string
// rather than failing, per "Store-tag mismatch: warn; continue". Pass an
// empty expectedType to skip the check.
func Unmarshal(raw []byte, expectedType string) (data model.IndexData, warning string, err error) {
	var w wireIndexData
	if err := json.Unmarshal(raw, &w); err != nil {
		return model.IndexData{}, "", fmt.Errorf("%w: %v", ErrSchemaMismatch, err)
	}
	data, err = fromWireIndexData(w)
	if err != nil {
		return model.IndexData{}, "", err
	}
	if expectedType != "" && data.Type != expectedType {
		warning = fmt.Sprintf("persist: store tag %q does not match expected %q", data.Type, expectedType)
	}
	return data, warning, nil
}

// MarshalYAML renders data as YAML in the same schema Marshal uses for
// JSON, for human-editable index snapshots.
func MarshalYAML(data model.IndexData) ([]byte, error) {
	w := toWireIndexData(data)

	entriesJSON, err := json.Marshal(w.Data)
	if err != nil {
		return nil, fmt.Errorf("persist: marshal entries: %w", err)
	}
	w.Metadata = stampContentHash(data.Metadata, entriesJSON)

	out, err := yaml.Marshal(w)
	if err != nil {
		return nil, fmt.Errorf("persist: marshal yaml index data: %w", err)
	}
	return out, nil
}

// UnmarshalYAML parses the YAML form produced by MarshalYAML, with the same
// schema-mismatch and store-tag semantics as Unmarshal.
func UnmarshalYAML(raw []byte, expectedType string) (data model.IndexData, warning string, err error) {
	var w wireIndexData
	if err := yaml.Unmarshal(raw, &w); err != nil {
		return model.IndexData{}, "", fmt.Errorf("%w: %v", ErrSchemaMismatch, err)
	}
	data, err = fromWireIndexData(w)
	if err != nil {
		return model.IndexData{}, "", err
	}
	if expectedType != "" && data.Type != expectedType {
		warning = fmt.Sprintf("persist: store tag %q does not match expected %q", data.Type, expectedType)
	}
	return data, warning, nil
}

func stampContentHash(metadata map[string]any, entriesJSON []byte) map[string]interface{} {
	out := make(map[string]interface{}, len(metadata)+1)
	for k, v := range metadata {
		out[k] = v
	}
	out[MetadataContentHashKey] = fmt.Sprintf("%016x", model.ContentHash(entriesJSON))
	return out
}
