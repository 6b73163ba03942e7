// Package xrefindex implements the cross-reference index (§4.C): a
// merge-on-insert store keyed by symbol identity that maintains the
// bidirectional invariant between a caller's Definition.Calls and the
// callee's Reference.CalledBy.
package xrefindex

import "github.com/viant/coderef/model"

// info holds the definitions and references recorded for one symbol. Both
// collections are "ordered maps": a slice for insertion-order iteration plus
// a lookup map for O(1) fingerprint access, the same fieldMap/methodMap
// idiom the teacher uses on graph.Type and graph.File.
type info struct {
	definitions    []model.Definition
	definitionIdx  map[model.PureDefinition]int
	references     []model.Reference
	referenceIdx   map[model.PureReference]int
}

func newInfo() *info {
	return &info{
		definitionIdx: make(map[model.PureDefinition]int),
		referenceIdx:  make(map[model.PureReference]int),
	}
}

// toFunctionLikeInfo materializes the external list-shaped view.
func (i *info) toFunctionLikeInfo() model.FunctionLikeInfo {
	return model.FunctionLikeInfo{
		Definitions: append([]model.Definition(nil), i.definitions...),
		References:  append([]model.Reference(nil), i.references...),
	}
}

// mergeDefinition merges def into the definitions collection, keyed by its
// pure fingerprint. Returns the merged definition and whether it is new.
func (i *info) mergeDefinition(def model.Definition) (model.Definition, bool) {
	pd := def.ToPure()
	if idx, ok := i.definitionIdx[pd]; ok {
		existing := i.definitions[idx]
		existing.Calls = unionSymbolReferences(existing.Calls, def.Calls)
		if def.HasDoc && !existing.HasDoc {
			existing.Doc, existing.HasDoc = def.Doc, true
		}
		if def.LLMNote != nil {
			existing.LLMNote = def.LLMNote
		}
		i.definitions[idx] = existing
		return existing, false
	}
	i.definitionIdx[pd] = len(i.definitions)
	i.definitions = append(i.definitions, def)
	return def, true
}

// mergeReference merges ref into the references collection, keyed by its
// pure fingerprint. Returns the merged reference and whether it is new.
func (i *info) mergeReference(ref model.Reference) (model.Reference, bool) {
	pr := ref.ToPure()
	if idx, ok := i.referenceIdx[pr]; ok {
		existing := i.references[idx]
		existing.CalledBy = unionSymbolDefinitions(existing.CalledBy, ref.CalledBy)
		i.references[idx] = existing
		return existing, false
	}
	i.referenceIdx[pr] = len(i.references)
	i.references = append(i.references, ref)
	return ref, true
}

// ensureDefinition returns the index of def's fingerprint, creating an empty
// entry from the fingerprint if it is not yet present.
func (i *info) ensureDefinition(pd model.PureDefinition) int {
	if idx, ok := i.definitionIdx[pd]; ok {
		return idx
	}
	idx := len(i.definitions)
	i.definitionIdx[pd] = idx
	i.definitions = append(i.definitions, model.FromPureDefinition(pd))
	return idx
}

// ensureReference returns the index of ref's fingerprint, creating an empty
// entry from the fingerprint if it is not yet present.
func (i *info) ensureReference(pr model.PureReference) int {
	if idx, ok := i.referenceIdx[pr]; ok {
		return idx
	}
	idx := len(i.references)
	i.referenceIdx[pr] = idx
	i.references = append(i.references, model.FromPureReference(pr))
	return idx
}

func (i *info) addCallToDefinition(idx int, sref model.SymbolReference) {
	d := i.definitions[idx]
	d.Calls = unionSymbolReferences(d.Calls, []model.SymbolReference{sref})
	i.definitions[idx] = d
}

func (i *info) addCallerToReference(idx int, sdef model.SymbolDefinition) {
	r := i.references[idx]
	r.CalledBy = unionSymbolDefinitions(r.CalledBy, []model.SymbolDefinition{sdef})
	i.references[idx] = r
}

// unionSymbolReferences appends items from add not already present in base,
// de-duplicated by (Symbol, fingerprint), preserving insertion order.
func unionSymbolReferences(base, add []model.SymbolReference) []model.SymbolReference {
	if len(add) == 0 {
		return base
	}
	seen := make(map[symRefKey]bool, len(base))
	for _, sr := range base {
		seen[symRefKey{sr.Symbol, sr.Reference}] = true
	}
	for _, sr := range add {
		k := symRefKey{sr.Symbol, sr.Reference}
		if seen[k] {
			continue
		}
		seen[k] = true
		base = append(base, sr)
	}
	return base
}

// unionSymbolDefinitions appends items from add not already present in base,
// de-duplicated by (Symbol, fingerprint), preserving insertion order.
func unionSymbolDefinitions(base, add []model.SymbolDefinition) []model.SymbolDefinition {
	if len(add) == 0 {
		return base
	}
	seen := make(map[symDefKey]bool, len(base))
	for _, sd := range base {
		seen[symDefKey{sd.Symbol, sd.Definition}] = true
	}
	for _, sd := range add {
		k := symDefKey{sd.Symbol, sd.Definition}
		if seen[k] {
			continue
		}
		seen[k] = true
		base = append(base, sd)
	}
	return base
}

type symRefKey struct {
	symbol model.Symbol
	ref    model.PureReference
}

type symDefKey struct {
	symbol model.Symbol
	def    model.PureDefinition
}
