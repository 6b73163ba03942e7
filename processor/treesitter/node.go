// Package treesitter adapts github.com/smacker/go-tree-sitter to the
// processor.Node/processor.Tree contract, and provides a Base processor
// implementation that runs tree-sitter queries the way the teacher's
// inspectors drive sitter.Parser directly.
package treesitter

import (
	sitter "github.com/smacker/go-tree-sitter"

	"github.com/viant/coderef/processor"
)

// node wraps a *sitter.Node behind the processor.Node interface.
type node struct {
	n *sitter.Node
}

// Wrap adapts a *sitter.Node. It returns false if n is nil, matching the
// (Node, bool) idiom processor.Node's methods use for absent children.
func Wrap(n *sitter.Node) (processor.Node, bool) {
	if n == nil {
		return nil, false
	}
	return node{n: n}, true
}

func (w node) Type() string       { return w.n.Type() }
func (w node) StartByte() uint32  { return w.n.StartByte() }
func (w node) EndByte() uint32    { return w.n.EndByte() }
func (w node) Content(source []byte) string {
	return w.n.Content(source)
}

func (w node) StartPoint() (row, column uint32) {
	p := w.n.StartPoint()
	return p.Row, p.Column
}

func (w node) EndPoint() (row, column uint32) {
	p := w.n.EndPoint()
	return p.Row, p.Column
}

func (w node) Parent() (processor.Node, bool) {
	return Wrap(w.n.Parent())
}

func (w node) ChildByFieldName(name string) (processor.Node, bool) {
	return Wrap(w.n.ChildByFieldName(name))
}

func (w node) Children() []processor.Node {
	count := int(w.n.ChildCount())
	out := make([]processor.Node, 0, count)
	for i := 0; i < count; i++ {
		if child, ok := Wrap(w.n.Child(i)); ok {
			out = append(out, child)
		}
	}
	return out
}

// Raw returns the underlying *sitter.Node, for processors that need to fall
// back to the concrete tree-sitter API (e.g. running a QueryCursor over it).
func Raw(n processor.Node) *sitter.Node {
	return n.(node).n
}

// tree wraps a *sitter.Tree behind the processor.Tree interface.
type tree struct {
	t *sitter.Tree
}

// WrapTree adapts a *sitter.Tree.
func WrapTree(t *sitter.Tree) processor.Tree {
	return tree{t: t}
}

func (w tree) RootNode() processor.Node {
	n, _ := Wrap(w.t.RootNode())
	return n
}
