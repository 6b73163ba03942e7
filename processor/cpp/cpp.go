// Package cpp implements processor.Processor for C++ source. It reuses the C
// query shape and only recognizes the same "identifier callee" call form C
// does; the reference indexer this is grounded on (impl_c_cpp.py's
// CppProcessor) does not resolve method calls (field_expression callees) or
// overload-qualified names, so neither does this processor. Method-call and
// qualified-name resolution for C++ is an open extension, not implemented
// here.
package cpp

import (
	"github.com/smacker/go-tree-sitter/cpp"

	"github.com/viant/coderef/model"
	"github.com/viant/coderef/processor"
	"github.com/viant/coderef/processor/treesitter"
)

const definitionQuery = `(function_definition) @function.definition`
const referenceQuery = `(call_expression) @function.call`

// Processor extracts C++ function definitions/references, to the extent a
// plain function_declarator shape describes them.
type Processor struct {
	treesitter.Base
}

// New returns a C++ Processor.
func New() *Processor {
	return &Processor{
		Base: treesitter.NewBase(
			"cpp",
			[]string{".cpp", ".hpp", ".cc", ".h", ".cxx", ".hxx"},
			cpp.GetLanguage(),
			definitionQuery,
			referenceQuery,
			[]string{"function.definition"},
			[]string{"function.call"},
		),
	}
}

// Parse parses src as C++ source.
func (p *Processor) Parse(src []byte) (processor.Tree, error) {
	return treesitter.Parse(cpp.GetLanguage(), src)
}

var _ processor.Processor = (*Processor)(nil)

func (p *Processor) HandleDefinition(node processor.Node, ctx processor.QueryContext) (model.Symbol, model.Definition, bool) {
	if node.Type() != "function_definition" {
		return model.Symbol{}, model.Definition{}, false
	}

	declaratorNode, ok := node.ChildByFieldName("declarator")
	if !ok || declaratorNode.Type() != "function_declarator" {
		return model.Symbol{}, model.Definition{}, false
	}
	nameNode, ok := declaratorNode.ChildByFieldName("declarator")
	if !ok || nameNode.Type() != "identifier" {
		return model.Symbol{}, model.Definition{}, false
	}
	funcName := nameNode.Content(ctx.Source)

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
