package xrefindex

import (
	"fmt"
	"regexp"

	"github.com/viant/coderef/model"
)

// QueryByKey looks up a single symbol by its exact identity.
type QueryByKey struct {
	Symbol model.Symbol
}

// QueryByName looks up every symbol whose Name matches exactly, optionally
// restricted to a SymbolKind.
type QueryByName struct {
	Name string
	Kind model.SymbolKind
	// AnyKind, when true, ignores Kind and matches functions and methods
	// alike.
	AnyKind bool
}

// QueryByNameRegex looks up every symbol whose Name matches Pattern.
type QueryByNameRegex struct {
	Pattern string
	Kind    model.SymbolKind
	AnyKind bool
}

// QueryResult is one matched symbol together with its recorded info.
type QueryResult struct {
	Symbol model.Symbol
	Info   model.FunctionLikeInfo
}

func typeFilterer(kind model.SymbolKind, anyKind bool) func(model.Symbol) bool {
	if anyKind {
		return func(model.Symbol) bool { return true }
	}
	return func(s model.Symbol) bool { return s.Kind == kind }
}

// HandleQuery dispatches on the concrete query type and returns every
// matching symbol's info, in the index's insertion order.
func (x *CrossRefIndex) HandleQuery(query any) ([]QueryResult, error) {
	switch q := query.(type) {
	case QueryByKey:
		info, ok := x.GetInfo(q.Symbol)
		if !ok {
			return nil, nil
		}
		return []QueryResult{{Symbol: q.Symbol, Info: info}}, nil

	case QueryByName:
		filter := typeFilterer(q.Kind, q.AnyKind)
		var results []QueryResult
		for _, symbol := range x.order {
			if symbol.Name != q.Name || !filter(symbol) {
				continue
			}
			info, _ := x.GetInfo(symbol)
			results = append(results, QueryResult{Symbol: symbol, Info: info})
		}
		return results, nil

	case QueryByNameRegex:
		re, err := regexp.Compile(q.Pattern)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidQuery, err)
		}
		filter := typeFilterer(q.Kind, q.AnyKind)
		var results []QueryResult
		for _, symbol := range x.order {
			if !re.MatchString(symbol.Name) || !filter(symbol) {
				continue
			}
			info, _ := x.GetInfo(symbol)
			results = append(results, QueryResult{Symbol: symbol, Info: info})
		}
		return results, nil

	default:
		return nil, fmt.Errorf("%w: unsupported query type %T", ErrInvalidQuery, query)
	}
}

// AsData flattens the index into its serializable form.
func (x *CrossRefIndex) AsData() model.IndexData {
	data := model.IndexData{Type: "cross_ref_index"}
	for _, symbol := range x.order {
		info, _ := x.GetInfo(symbol)
		data.Data = append(data.Data, model.IndexEntry{Symbol: symbol, Info: info})
	}
	return data
}

// UpdateFromData merges a previously-serialized snapshot into x. A mismatched
// Type is not an error: the caller decides whether foreign snapshots are
// acceptable.
func (x *CrossRefIndex) UpdateFromData(data model.IndexData) {
	for _, entry := range data.Data {
		for _, def := range entry.Info.Definitions {
			x.AddDefinition(entry.Symbol, def)
		}
		for _, ref := range entry.Info.References {
			x.AddReference(entry.Symbol, ref)
		}
	}
}
