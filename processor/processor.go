// Package processor defines the language-agnostic contract a concrete
// language implementation (python, c, cpp) must satisfy to participate in
// indexing: given a syntax tree, produce the definition and reference nodes,
// then turn each node into a model.Symbol plus its model.Definition or
// model.Reference payload.
//
// The contract is decoupled from any concrete parser binding behind the Node
// and Tree interfaces; processor/treesitter supplies the
// github.com/smacker/go-tree-sitter implementation.
package processor

import "github.com/viant/coderef/model"

// Node is the minimal syntax-tree node surface a Processor needs. It mirrors
// the subset of tree-sitter's Node API used by the reference processors:
// field-based child lookup, parent walking, and byte/point spans for
// translating a node into a model.Location.
type Node interface {
	Type() string
	StartByte() uint32
	EndByte() uint32
	StartPoint() (row, column uint32)
	EndPoint() (row, column uint32)
	Parent() (Node, bool)
	ChildByFieldName(name string) (Node, bool)
	Children() []Node
	Content(source []byte) string
}

// Tree is a parsed syntax tree rooted at RootNode.
type Tree interface {
	RootNode() Node
}

// QueryContext carries the per-file information a Processor needs to turn a
// node into a model.Location: the file's logical path and its raw source,
// since tree-sitter spans are byte offsets into that source.
type QueryContext struct {
	FilePath string
	Source   []byte
}

// Processor implements definition/reference extraction for one language.
// Name and Extensions let a driver dispatch files to the right Processor;
// the remaining methods run the actual extraction over a parsed Tree.
type Processor interface {
	Name() string
	Extensions() []string

	// DefinitionNodes returns every node under root that represents a
	// function or method definition.
	DefinitionNodes(root Node) []Node

	// ReferenceNodes returns every node under root that represents a call
	// site.
	ReferenceNodes(root Node) []Node

	// HandleDefinition turns a definition node into its Symbol and
	// Definition. It returns ok=false when node does not have the shape
	// the processor expects.
	HandleDefinition(node Node, ctx QueryContext) (symbol model.Symbol, def model.Definition, ok bool)

	// HandleReference turns a call-site node into its callee Symbol and
	// Reference. It returns ok=false when node does not have the shape the
	// processor expects.
	HandleReference(node Node, ctx QueryContext) (symbol model.Symbol, ref model.Reference, ok bool)
}

// Location builds a model.Location for node, relative to ctx's file path.
func Location(node Node, ctx QueryContext) model.Location {
	startRow, startCol := node.StartPoint()
	endRow, endCol := node.EndPoint()
	return model.Location{
		FilePath:  ctx.FilePath,
		StartLine: int(startRow) + 1,
		StartCol:  int(startCol),
		EndLine:   int(endRow) + 1,
		EndCol:    int(endCol),
		StartByte: int(node.StartByte()),
		EndByte:   int(node.EndByte()),
	}
}
