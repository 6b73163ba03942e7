package cpp_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/viant/coderef/processor"
	"github.com/viant/coderef/processor/cpp"
)

const src = `
int helper(int x) {
    return x + 1;
}

int main() {
    helper(1);
    return 0;
}
`

func TestProcessorExtractsFreeFunctions(t *testing.T) {
	proc := cpp.New()
	tree, err := proc.Parse([]byte(src))
	require.NoError(t, err)

	ctx := processor.QueryContext{FilePath: "sample.cpp", Source: []byte(src)}
	var names []string
	for _, node := range proc.DefinitionNodes(tree.RootNode()) {
		symbol, _, ok := proc.HandleDefinition(node, ctx)
		require.True(t, ok)
		names = append(names, symbol.Name)
	}

	assert.Contains(t, names, "helper")
	assert.Contains(t, names, "main")
}

func TestProcessorMainCallsHelper(t *testing.T) {
	proc := cpp.New()
	tree, err := proc.Parse([]byte(src))
	require.NoError(t, err)

	ctx := processor.QueryContext{FilePath: "sample.cpp", Source: []byte(src)}
	for _, node := range proc.DefinitionNodes(tree.RootNode()) {
		symbol, def, ok := proc.HandleDefinition(node, ctx)
		require.True(t, ok)
		if symbol.Name != "main" {
			continue
		}
		require.Len(t, def.Calls, 1)
		assert.Equal(t, "helper", def.Calls[0].Symbol.Name)
	}
}
