package persist

import (
	"fmt"

	"github.com/viant/coderef/model"
)

const (
	symbolTypeFunction = "function"
	symbolTypeMethod   = "method"
)

func toWireLocation(l model.Location) wireLocation {
	return wireLocation{
		FilePath:  l.FilePath,
		StartLine: l.StartLine,
		StartCol:  l.StartCol,
		EndLine:   l.EndLine,
		EndCol:    l.EndCol,
		StartByte: l.StartByte,
		EndByte:   l.EndByte,
	}
}

func fromWireLocation(w wireLocation) model.Location {
	return model.Location{
		FilePath:  w.FilePath,
		StartLine: w.StartLine,
		StartCol:  w.StartCol,
		EndLine:   w.EndLine,
		EndCol:    w.EndCol,
		StartByte: w.StartByte,
		EndByte:   w.EndByte,
	}
}

func toWireSymbol(s model.Symbol) wireSymbol {
	switch s.Kind {
	case model.KindMethod:
		w := wireSymbol{Type: symbolTypeMethod, Name: s.Name}
		if s.HasClass {
			class := s.ClassName
			w.ClassName = &class
		}
		return w
	default:
		return wireSymbol{Type: symbolTypeFunction, Name: s.Name}
	}
}

func fromWireSymbol(w wireSymbol) (model.Symbol, error) {
	switch w.Type {
	case symbolTypeFunction:
		return model.NewFunction(w.Name), nil
	case symbolTypeMethod:
		if w.ClassName == nil {
			return model.NewMethodCall(w.Name), nil
		}
		return model.NewMethod(w.Name, *w.ClassName), nil
	default:
		return model.Symbol{}, fmt.Errorf("%w: %q", ErrUnknownSymbolType, w.Type)
	}
}

func toWireSymbolReference(sr model.SymbolReference) wireSymbolReference {
	return wireSymbolReference{
		Symbol:    toWireSymbol(sr.Symbol),
		Reference: wireLocationHolder{Location: toWireLocation(sr.Reference.Location)},
	}
}

func fromWireSymbolReference(w wireSymbolReference) (model.SymbolReference, error) {
	symbol, err := fromWireSymbol(w.Symbol)
	if err != nil {
		return model.SymbolReference{}, err
	}
	return model.SymbolReference{
		Symbol:    symbol,
		Reference: model.PureReference{Location: fromWireLocation(w.Reference.Location)},
	}, nil
}

func toWireSymbolDefinition(sd model.SymbolDefinition) wireSymbolDefinition {
	return wireSymbolDefinition{
		Symbol:     toWireSymbol(sd.Symbol),
		Definition: wireLocationHolder{Location: toWireLocation(sd.Definition.Location)},
	}
}

func fromWireSymbolDefinition(w wireSymbolDefinition) (model.SymbolDefinition, error) {
	symbol, err := fromWireSymbol(w.Symbol)
	if err != nil {
		return model.SymbolDefinition{}, err
	}
	return model.SymbolDefinition{
		Symbol:     symbol,
		Definition: model.PureDefinition{Location: fromWireLocation(w.Definition.Location)},
	}, nil
}

func toWireDefinition(d model.Definition) wireDefinition {
	w := wireDefinition{Location: toWireLocation(d.Location)}
	for _, c := range d.Calls {
		w.Calls = append(w.Calls, toWireSymbolReference(c))
	}
	if d.HasDoc {
		doc := d.Doc
		w.Doc = &doc
	}
	if len(d.LLMNote) > 0 {
		w.LLMNote = d.LLMNote
	}
	return w
}

func fromWireDefinition(w wireDefinition) (model.Definition, error) {
	d := model.Definition{Location: fromWireLocation(w.Location), LLMNote: w.LLMNote}
	for _, c := range w.Calls {
		sr, err := fromWireSymbolReference(c)
		if err != nil {
			return model.Definition{}, err
		}
		d.Calls = append(d.Calls, sr)
	}
	if w.Doc != nil {
		d.Doc = *w.Doc
		d.HasDoc = true
	}
	return d, nil
}

func toWireReference(r model.Reference) wireReference {
	w := wireReference{Location: toWireLocation(r.Location)}
	for _, cb := range r.CalledBy {
		w.CalledBy = append(w.CalledBy, toWireSymbolDefinition(cb))
	}
	return w
}

func fromWireReference(w wireReference) (model.Reference, error) {
	r := model.Reference{Location: fromWireLocation(w.Location)}
	for _, cb := range w.CalledBy {
		sd, err := fromWireSymbolDefinition(cb)
		if err != nil {
			return model.Reference{}, err
		}
		r.CalledBy = append(r.CalledBy, sd)
	}
	return r, nil
}

func toWireEntry(e model.IndexEntry) wireEntry {
	w := wireEntry{Symbol: toWireSymbol(e.Symbol)}
	for _, d := range e.Info.Definitions {
		w.Info.Definitions = append(w.Info.Definitions, toWireDefinition(d))
	}
	for _, r := range e.Info.References {
		w.Info.References = append(w.Info.References, toWireReference(r))
	}
	return w
}

func fromWireEntry(w wireEntry) (model.IndexEntry, error) {
	symbol, err := fromWireSymbol(w.Symbol)
	if err != nil {
		return model.IndexEntry{}, err
	}
	entry := model.IndexEntry{Symbol: symbol}
	for _, d := range w.Info.Definitions {
		def, err := fromWireDefinition(d)
		if err != nil {
			return model.IndexEntry{}, err
		}
		entry.Info.Definitions = append(entry.Info.Definitions, def)
	}
	for _, r := range w.Info.References {
		ref, err := fromWireReference(r)
		if err != nil {
			return model.IndexEntry{}, err
		}
		entry.Info.References = append(entry.Info.References, ref)
	}
	return entry, nil
}

func toWireIndexData(data model.IndexData) wireIndexData {
	w := wireIndexData{Type: data.Type, Metadata: data.Metadata}
	for _, e := range data.Data {
		w.Data = append(w.Data, toWireEntry(e))
	}
	return w
}

func fromWireIndexData(w wireIndexData) (model.IndexData, error) {
	if w.Type == "" {
		return model.IndexData{}, fmt.Errorf("%w: missing \"type\"", ErrSchemaMismatch)
	}
	data := model.IndexData{Type: w.Type, Metadata: w.Metadata}
	for i, e := range w.Data {
		entry, err := fromWireEntry(e)
		if err != nil {
			return model.IndexData{}, fmt.Errorf("%w: entry %d: %v", ErrSchemaMismatch, i, err)
		}
		data.Data = append(data.Data, entry)
	}
	return data, nil
}
