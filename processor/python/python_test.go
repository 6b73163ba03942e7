package python_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/viant/coderef/processor"
	"github.com/viant/coderef/processor/python"
)

const src = `
def helper():
    pass

def main():
    helper()
    obj.run()

class Worker:
    def start(self):
        helper()
`

func TestProcessorDefinitionNodes(t *testing.T) {
	proc := python.New()
	tree, err := proc.Parse([]byte(src))
	require.NoError(t, err)

	ctx := processor.QueryContext{FilePath: "sample.py", Source: []byte(src)}
	defs := proc.DefinitionNodes(tree.RootNode())
	require.Len(t, defs, 3, "helper, main, Worker.start")

	var names []string
	var isMethod []bool
	for _, node := range defs {
		symbol, _, ok := proc.HandleDefinition(node, ctx)
		require.True(t, ok)
		names = append(names, symbol.Name)
		isMethod = append(isMethod, symbol.IsMethod())
	}

	assert.Contains(t, names, "helper")
	assert.Contains(t, names, "main")
	assert.Contains(t, names, "start")
}

func TestProcessorMainCallsHelperAndMethod(t *testing.T) {
	proc := python.New()
	tree, err := proc.Parse([]byte(src))
	require.NoError(t, err)

	ctx := processor.QueryContext{FilePath: "sample.py", Source: []byte(src)}
	for _, node := range proc.DefinitionNodes(tree.RootNode()) {
		symbol, def, ok := proc.HandleDefinition(node, ctx)
		require.True(t, ok)
		if symbol.Name != "main" {
			continue
		}
		require.Len(t, def.Calls, 2)

		var calleeNames []string
		for _, call := range def.Calls {
			calleeNames = append(calleeNames, call.Symbol.Name)
		}
		assert.Contains(t, calleeNames, "helper")
		assert.Contains(t, calleeNames, "run")
	}
}

func TestProcessorDefinitionNodesAreInDocumentOrder(t *testing.T) {
	const interleaved = `
def f1():
    pass

class C:
    def m(self):
        pass

def f2():
    pass
`
	proc := python.New()
	tree, err := proc.Parse([]byte(interleaved))
	require.NoError(t, err)

	ctx := processor.QueryContext{FilePath: "sample.py", Source: []byte(interleaved)}
	var names []string
	for _, node := range proc.DefinitionNodes(tree.RootNode()) {
		symbol, _, ok := proc.HandleDefinition(node, ctx)
		require.True(t, ok)
		names = append(names, symbol.Name)
	}
	assert.Equal(t, []string{"f1", "m", "f2"}, names)
}

func TestHandleReferenceSpansFullCallExpression(t *testing.T) {
	const callSrc = `
def main():
    helper()
    obj.run()
`
	proc := python.New()
	tree, err := proc.Parse([]byte(callSrc))
	require.NoError(t, err)

	ctx := processor.QueryContext{FilePath: "sample.py", Source: []byte(callSrc)}
	var texts []string
	for _, node := range proc.ReferenceNodes(tree.RootNode()) {
		_, ref, ok := proc.HandleReference(node, ctx)
		require.True(t, ok)
		texts = append(texts, node.Content(ctx.Source))
		assert.Equal(t, int(node.StartByte()), ref.Location.StartByte)
		assert.Equal(t, int(node.EndByte()), ref.Location.EndByte)
	}
	assert.Contains(t, texts, "helper()")
	assert.Contains(t, texts, "obj.run()")
}

func TestWorkerStartIsMethodOfWorker(t *testing.T) {
	proc := python.New()
	tree, err := proc.Parse([]byte(src))
	require.NoError(t, err)

	ctx := processor.QueryContext{FilePath: "sample.py", Source: []byte(src)}
	for _, node := range proc.DefinitionNodes(tree.RootNode()) {
		symbol, _, ok := proc.HandleDefinition(node, ctx)
		require.True(t, ok)
		if symbol.Name != "start" {
			continue
		}
		require.True(t, symbol.IsMethod())
		class, hasClass := symbol.Class()
		assert.True(t, hasClass)
		assert.Equal(t, "Worker", class)
	}
}
