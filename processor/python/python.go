// Package python implements processor.Processor for Python source, grounded
// on the reference indexer's PythonProcessor: class-body functions are
// methods, top-level functions are functions, and a call's callee is either
// a bare identifier (a function) or an attribute access (a method, whose
// owning class is unknown at the call site).
package python

import (
	"github.com/smacker/go-tree-sitter/python"

	"github.com/viant/coderef/model"
	"github.com/viant/coderef/processor"
	"github.com/viant/coderef/processor/treesitter"
)

const definitionQuery = `
[
  (class_definition
    body: (block
      (function_definition) @method.definition
    )
  )
  (
    (function_definition) @function.definition
    (#not-has-ancestor? @function.definition class_definition)
  )
]
`

const referenceQuery = `(call) @function.call`

// Processor extracts Python function and method definitions/references.
type Processor struct {
	treesitter.Base
}

// New returns a Python Processor.
func New() *Processor {
	return &Processor{
		Base: treesitter.NewBase(
			"python",
			[]string{".py"},
			python.GetLanguage(),
			definitionQuery,
			referenceQuery,
			[]string{"function.definition", "method.definition"},
			[]string{"function.call"},
		),
	}
}

// Parse parses src as Python source.
func (p *Processor) Parse(src []byte) (processor.Tree, error) {
	return treesitter.Parse(python.GetLanguage(), src)
}

var _ processor.Processor = (*Processor)(nil)

func (p *Processor) HandleDefinition(node processor.Node, ctx processor.QueryContext) (model.Symbol, model.Definition, bool) {
	nameNode, ok := node.ChildByFieldName("name")
	if !ok {
		return model.Symbol{}, model.Definition{}, false
	}
	funcName := nameNode.Content(ctx.Source)

	isMethod := isMethodDefinition(node)

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

	var symbol model.Symbol
	if isMethod {
		className, _ := classNameForMethod(node, ctx)
		symbol = model.NewMethod(funcName, className)
	} else {
		symbol = model.NewFunction(funcName)
	}

	return symbol, model.Definition{
		Location: processor.Location(node, ctx),
		Calls:    calls,
	}, true
}

func (p *Processor) HandleReference(node processor.Node, ctx processor.QueryContext) (model.Symbol, model.Reference, bool) {
	functionNode, ok := node.ChildByFieldName("function")
	if !ok {
		return model.Symbol{}, model.Reference{}, false
	}

	switch functionNode.Type() {
	case "identifier":
		name := functionNode.Content(ctx.Source)
		return model.NewFunction(name), model.Reference{
			Location: processor.Location(node, ctx),
		}, true

	case "attribute":
		children := functionNode.Children()
		var methodNameNode processor.Node
		for i := len(children) - 1; i >= 0; i-- {
			if children[i].Type() == "identifier" {
				methodNameNode = children[i]
				break
			}
		}
		if methodNameNode == nil {
			return model.Symbol{}, model.Reference{}, false
		}
		name := methodNameNode.Content(ctx.Source)
		return model.NewMethodCall(name), model.Reference{
			Location: processor.Location(node, ctx),
		}, true

	default:
		return model.Symbol{}, model.Reference{}, false
	}
}

func isMethodDefinition(node processor.Node) bool {
	current, ok := node.Parent()
	for ok {
		if current.Type() == "class_definition" {
			return true
		}
		current, ok = current.Parent()
	}
	return false
}

func classNameForMethod(node processor.Node, ctx processor.QueryContext) (string, bool) {
	current, ok := node.Parent()
	for ok {
		if current.Type() == "class_definition" {
			if nameNode, ok := current.ChildByFieldName("name"); ok {
				return nameNode.Content(ctx.Source), true
			}
			return "", false
		}
		current, ok = current.Parent()
	}
	return "", false
}
