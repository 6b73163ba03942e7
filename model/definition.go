package model

// PureDefinition is the identity fingerprint of a definition: its location
// alone. The store keys full Definition values by this projection so that
// the cyclic Definition.Calls / Reference.CalledBy payloads never need to be
// carried through a map key.
type PureDefinition struct {
	Location Location
}

// Definition extends PureDefinition with the call sites nested inside its
// body, in source order, and optional documentation/annotation payloads.
type Definition struct {
	Location Location
	Calls    []SymbolReference
	Doc      string
	HasDoc   bool
	LLMNote  map[string]any
}

// ToPure projects a Definition to its identity fingerprint.
func (d Definition) ToPure() PureDefinition {
	return PureDefinition{Location: d.Location}
}

// FromPureDefinition lifts a fingerprint back to a full Definition with an
// empty Calls list.
func FromPureDefinition(pd PureDefinition) Definition {
	return Definition{Location: pd.Location}
}

// SymbolDefinition is an inbound call-edge fragment stored on the callee's
// side: the caller's symbol together with the fingerprint of its definition.
type SymbolDefinition struct {
	Symbol     Symbol
	Definition PureDefinition
}
