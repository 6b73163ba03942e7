// Package c implements processor.Processor for C source, grounded on the
// reference indexer's CProcessor: a function_definition's name sits behind
// its declarator field, which is either a function_declarator directly or a
// pointer_declarator wrapping one for pointer-returning functions.
package c

import (
	"github.com/smacker/go-tree-sitter/c"

	"github.com/viant/coderef/model"
	"github.com/viant/coderef/processor"
	"github.com/viant/coderef/processor/treesitter"
)

const definitionQuery = `(function_definition) @function.definition`
const referenceQuery = `(call_expression) @function.call`

// Processor extracts C function definitions/references.
type Processor struct {
	treesitter.Base
}

// New returns a C Processor.
func New() *Processor {
	return &Processor{
		Base: treesitter.NewBase(
			"c",
			[]string{".c", ".h"},
			c.GetLanguage(),
			definitionQuery,
			referenceQuery,
			[]string{"function.definition"},
			[]string{"function.call"},
		),
	}
}

// Parse parses src as C source.
func (p *Processor) Parse(src []byte) (processor.Tree, error) {
	return treesitter.Parse(c.GetLanguage(), src)
}

var _ processor.Processor = (*Processor)(nil)

func (p *Processor) HandleDefinition(node processor.Node, ctx processor.QueryContext) (model.Symbol, model.Definition, bool) {
	funcName, ok := extractFunctionName(node, ctx)
	if !ok {
		return model.Symbol{}, model.Definition{}, false
	}

	var calls []model.SymbolReference
	if bodyNode, ok := node.ChildByFieldName("body"); ok {
		for _, callNode := range p.ReferenceNodes(bodyNode) {
			calleeSymbol, ref, ok := p.HandleReference(callNode, ctx)
			if !ok {
				continue
			}
			calls = append(calls, model.SymbolReference{
				Symbol:    calleeSymbol,
				Reference: ref.ToPure(),
			})
		}
	}

	return model.NewFunction(funcName), model.Definition{
		Location: processor.Location(node, ctx),
		Calls:    calls,
	}, true
}

// extractFunctionName unwraps a pointer_declarator (for pointer-returning
// functions) down to the function_declarator, then reads its declarator
// identifier.
func extractFunctionName(functionDefNode processor.Node, ctx processor.QueryContext) (string, bool) {
	declaratorNode, ok := functionDefNode.ChildByFieldName("declarator")
	if !ok {
		return "", false
	}

	if declaratorNode.Type() == "pointer_declarator" {
		found := false
		for _, child := range declaratorNode.Children() {
			if child.Type() == "function_declarator" {
				declaratorNode = child
				found = true
				break
			}
		}
		if !found {
			return "", false
		}
	}

	if declaratorNode.Type() != "function_declarator" {
		return "", false
	}

	nameNode, ok := declaratorNode.ChildByFieldName("declarator")
	if !ok || nameNode.Type() != "identifier" {
		return "", false
	}
	return nameNode.Content(ctx.Source), true
}

func (p *Processor) HandleReference(node processor.Node, ctx processor.QueryContext) (model.Symbol, model.Reference, bool) {
	nameNode, ok := node.ChildByFieldName("function")
	if !ok || nameNode.Type() != "identifier" {
		return model.Symbol{}, model.Reference{}, false
	}
	funcName := nameNode.Content(ctx.Source)

	return model.NewFunction(funcName), model.Reference{
		Location: processor.Location(node, ctx),
	}, true
}
