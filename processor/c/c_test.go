package c_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	c "github.com/viant/coderef/processor/c"
	"github.com/viant/coderef/processor"
)

const src = `
int helper(int x) {
    return x + 1;
}

int* make_buffer(int n) {
    return 0;
}

int main(void) {
    helper(1);
    make_buffer(4);
    return 0;
}
`

func TestProcessorExtractsPointerReturningFunction(t *testing.T) {
	proc := c.New()
	tree, err := proc.Parse([]byte(src))
	require.NoError(t, err)

	ctx := processor.QueryContext{FilePath: "sample.c", Source: []byte(src)}
	var names []string
	for _, node := range proc.DefinitionNodes(tree.RootNode()) {
		symbol, _, ok := proc.HandleDefinition(node, ctx)
		require.True(t, ok)
		names = append(names, symbol.Name)
	}

	assert.Contains(t, names, "helper")
	assert.Contains(t, names, "make_buffer")
	assert.Contains(t, names, "main")
}

func TestProcessorMainCallsBothFunctions(t *testing.T) {
	proc := c.New()
	tree, err := proc.Parse([]byte(src))
	require.NoError(t, err)

	ctx := processor.QueryContext{FilePath: "sample.c", Source: []byte(src)}
	for _, node := range proc.DefinitionNodes(tree.RootNode()) {
		symbol, def, ok := proc.HandleDefinition(node, ctx)
		require.True(t, ok)
		if symbol.Name != "main" {
			continue
		}
		var calleeNames []string
		for _, call := range def.Calls {
			calleeNames = append(calleeNames, call.Symbol.Name)
		}
		assert.Contains(t, calleeNames, "helper")
		assert.Contains(t, calleeNames, "make_buffer")
	}
}
