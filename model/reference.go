package model

// PureReference is the identity fingerprint of a call site: its location
// alone.
type PureReference struct {
	Location Location
}

// Reference extends PureReference with the set of enclosing definitions that
// textually contain this call site.
type Reference struct {
	Location Location
	CalledBy []SymbolDefinition
}

// ToPure projects a Reference to its identity fingerprint.
func (r Reference) ToPure() PureReference {
	return PureReference{Location: r.Location}
}

// FromPureReference lifts a fingerprint back to a full Reference with an
// empty CalledBy list.
func FromPureReference(pr PureReference) Reference {
	return Reference{Location: pr.Location}
}

// SymbolReference is an outbound call-edge fragment stored on the caller's
// side: the callee's symbol together with the fingerprint of the call site.
type SymbolReference struct {
	Symbol    Symbol
	Reference PureReference
}
