package treesitter

import (
	"fmt"
	"sort"

	sitter "github.com/smacker/go-tree-sitter"

	"github.com/viant/coderef/processor"
)

// Base implements the node-gathering half of processor.Processor: running a
// pair of tree-sitter queries (one for definitions, one for references),
// keeping the captures with the configured names and returning them in
// document order. Concrete language processors embed Base
// and supply the two query strings plus HandleDefinition/HandleReference.
type Base struct {
	name           string
	extensions     []string
	language       *sitter.Language
	definitionQuery *sitter.Query
	referenceQuery  *sitter.Query
	// definitionCaptures/referenceCaptures list the capture names whose
	// nodes are returned by DefinitionNodes and ReferenceNodes
	// respectively; matches are merged and returned in document order.
	definitionCaptures []string
	referenceCaptures  []string
}

// NewBase compiles defQuery and refQuery against language. It panics on a
// malformed query string: query strings are a compile-time asset, not user
// input.
func NewBase(name string, extensions []string, language *sitter.Language, defQuery, refQuery string, definitionCaptures, referenceCaptures []string) Base {
	dq, err := sitter.NewQuery([]byte(defQuery), language)
	if err != nil {
		panic(fmt.Sprintf("coderef: invalid definition query for %s: %v", name, err))
	}
	rq, err := sitter.NewQuery([]byte(refQuery), language)
	if err != nil {
		panic(fmt.Sprintf("coderef: invalid reference query for %s: %v", name, err))
	}
	return Base{
		name:               name,
		extensions:         extensions,
		language:           language,
		definitionQuery:    dq,
		referenceQuery:     rq,
		definitionCaptures: definitionCaptures,
		referenceCaptures:  referenceCaptures,
	}
}

func (b Base) Name() string         { return b.name }
func (b Base) Extensions() []string { return b.extensions }
func (b Base) Language() *sitter.Language { return b.language }

// DefinitionNodes runs the definition query over root and returns every
// captured node (restricted to the capture names configured at
// construction) in document order, so a top-level function interleaved with
// a class method comes back in source position rather than grouped by
// capture name.
func (b Base) DefinitionNodes(root processor.Node) []processor.Node {
	return b.captureNodes(b.definitionQuery, b.definitionCaptures, root)
}

// ReferenceNodes runs the reference query over root and returns every
// captured node (restricted to the configured capture names) in document
// order.
func (b Base) ReferenceNodes(root processor.Node) []processor.Node {
	return b.captureNodes(b.referenceQuery, b.referenceCaptures, root)
}

func (b Base) captureNodes(query *sitter.Query, names []string, root processor.Node) []processor.Node {
	allowed := make(map[string]bool, len(names))
	for _, name := range names {
		allowed[name] = true
	}

	rawRoot := Raw(root)
	cursor := sitter.NewQueryCursor()
	defer cursor.Close()
	cursor.Exec(query, rawRoot)

	// Query predicates are not evaluated here, so a node matched by more than
	// one pattern (a Python method matches both the method and the function
	// pattern) is kept only once.
	type nodeKey struct {
		start, end uint32
		typ        string
	}
	seen := make(map[nodeKey]bool)

	var out []processor.Node
	for {
		match, ok := cursor.NextMatch()
		if !ok {
			break
		}
		for _, capture := range match.Captures {
			name := query.CaptureNameForId(capture.Index)
			if !allowed[name] {
				continue
			}
			key := nodeKey{capture.Node.StartByte(), capture.Node.EndByte(), capture.Node.Type()}
			if seen[key] {
				continue
			}
			seen[key] = true
			wrapped, ok := Wrap(capture.Node)
			if !ok {
				continue
			}
			out = append(out, wrapped)
		}
	}

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].StartByte() < out[j].StartByte()
	})
	return out
}
