package xrefindex

import "github.com/viant/coderef/model"

// CrossRefIndex is the in-memory store of record (§4.C): a map from Symbol
// identity to the definitions and references recorded for that symbol, with
// the caller-callee cross-references kept consistent on every insert.
//
// A definition's Calls and the callee's Reference.CalledBy are two views of
// the same edge; adding one side always induces the other, so callers never
// need to insert both halves by hand.
type CrossRefIndex struct {
	symbols map[model.Symbol]*info
	order   []model.Symbol

	// defOwner/refOwner resolve a bare fingerprint back to the symbol that
	// owns it, needed when a call site or call target is recorded before
	// its own definition/reference has been indexed.
	defOwner map[model.PureDefinition]model.Symbol
	refOwner map[model.PureReference]model.Symbol
}

// New returns an empty CrossRefIndex.
func New() *CrossRefIndex {
	return &CrossRefIndex{
		symbols:  make(map[model.Symbol]*info),
		defOwner: make(map[model.PureDefinition]model.Symbol),
		refOwner: make(map[model.PureReference]model.Symbol),
	}
}

func (x *CrossRefIndex) entry(symbol model.Symbol) *info {
	e, ok := x.symbols[symbol]
	if !ok {
		e = newInfo()
		x.symbols[symbol] = e
		x.order = append(x.order, symbol)
	}
	return e
}

// AddDefinition records that symbol is defined at def.Location, with the
// given nested call sites. Every entry in def.Calls induces a matching
// Reference.CalledBy entry on the callee side.
func (x *CrossRefIndex) AddDefinition(symbol model.Symbol, def model.Definition) {
	e := x.entry(symbol)
	merged, _ := e.mergeDefinition(def)
	x.defOwner[merged.ToPure()] = symbol

	selfRef := model.SymbolDefinition{Symbol: symbol, Definition: merged.ToPure()}
	for _, call := range merged.Calls {
		callee := x.entry(call.Symbol)
		idx := callee.ensureReference(call.Reference)
		callee.addCallerToReference(idx, selfRef)
		x.refOwner[call.Reference] = call.Symbol
	}
}

// AddReference records that symbol is called at ref.Location, with the given
// enclosing callers. Every entry in ref.CalledBy induces a matching
// Definition.Calls entry on the caller side.
func (x *CrossRefIndex) AddReference(symbol model.Symbol, ref model.Reference) {
	e := x.entry(symbol)
	merged, _ := e.mergeReference(ref)
	x.refOwner[merged.ToPure()] = symbol

	selfCall := model.SymbolReference{Symbol: symbol, Reference: merged.ToPure()}
	for _, caller := range merged.CalledBy {
		callerEntry := x.entry(caller.Symbol)
		idx := callerEntry.ensureDefinition(caller.Definition)
		callerEntry.addCallToDefinition(idx, selfCall)
		x.defOwner[caller.Definition] = caller.Symbol
	}
}

// Contains reports whether symbol has any recorded definition or reference.
func (x *CrossRefIndex) Contains(symbol model.Symbol) bool {
	_, ok := x.symbols[symbol]
	return ok
}

// GetInfo returns the FunctionLikeInfo recorded for symbol and whether it was
// found.
func (x *CrossRefIndex) GetInfo(symbol model.Symbol) (model.FunctionLikeInfo, bool) {
	e, ok := x.symbols[symbol]
	if !ok {
		return model.FunctionLikeInfo{}, false
	}
	return e.toFunctionLikeInfo(), true
}

// GetDefinitions returns the definitions recorded for symbol.
func (x *CrossRefIndex) GetDefinitions(symbol model.Symbol) []model.Definition {
	e, ok := x.symbols[symbol]
	if !ok {
		return nil
	}
	return append([]model.Definition(nil), e.definitions...)
}

// GetReferences returns the references recorded for symbol.
func (x *CrossRefIndex) GetReferences(symbol model.Symbol) []model.Reference {
	e, ok := x.symbols[symbol]
	if !ok {
		return nil
	}
	return append([]model.Reference(nil), e.references...)
}

// FindFullDefinition resolves a PureDefinition fingerprint (as carried by a
// SymbolDefinition in some Reference.CalledBy list) back to the owning
// Symbol and its full Definition.
func (x *CrossRefIndex) FindFullDefinition(pd model.PureDefinition) (model.Symbol, model.Definition, bool) {
	symbol, ok := x.defOwner[pd]
	if !ok {
		return model.Symbol{}, model.Definition{}, false
	}
	e := x.symbols[symbol]
	idx, ok := e.definitionIdx[pd]
	if !ok {
		return model.Symbol{}, model.Definition{}, false
	}
	return symbol, e.definitions[idx], true
}

// FindFullReference resolves a PureReference fingerprint (as carried by a
// SymbolReference in some Definition.Calls list) back to the owning Symbol
// and its full Reference.
func (x *CrossRefIndex) FindFullReference(pr model.PureReference) (model.Symbol, model.Reference, bool) {
	symbol, ok := x.refOwner[pr]
	if !ok {
		return model.Symbol{}, model.Reference{}, false
	}
	e := x.symbols[symbol]
	idx, ok := e.referenceIdx[pr]
	if !ok {
		return model.Symbol{}, model.Reference{}, false
	}
	return symbol, e.references[idx], true
}

// Symbols returns every symbol the index has recorded, in insertion order.
func (x *CrossRefIndex) Symbols() []model.Symbol {
	return append([]model.Symbol(nil), x.order...)
}

// Update merges other into x, symbol by symbol.
func (x *CrossRefIndex) Update(other *CrossRefIndex) {
	for _, symbol := range other.order {
		e := other.symbols[symbol]
		for _, def := range e.definitions {
			x.AddDefinition(symbol, def)
		}
		for _, ref := range e.references {
			x.AddReference(symbol, ref)
		}
	}
}
