package mcpbridge

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/viant/coderef/model"
	"github.com/viant/coderef/xrefindex"
)

func TestParseKind(t *testing.T) {
	kind, err := parseKind("")
	require.NoError(t, err)
	assert.Equal(t, "", kind)

	kind, err = parseKind("function")
	require.NoError(t, err)
	assert.Equal(t, "function", kind)

	kind, err = parseKind("method")
	require.NoError(t, err)
	assert.Equal(t, "method", kind)

	_, err = parseKind("bogus")
	assert.Error(t, err)
}

func TestJSONResultMarshalsValue(t *testing.T) {
	result, err := jsonResult(map[string]int{"a": 1})
	require.NoError(t, err)
	require.NotNil(t, result)
	assert.False(t, result.IsError)
}

func TestNewServerRegistersTools(t *testing.T) {
	index := xrefindex.New()
	a := model.NewFunction("a")
	locA := model.Location{FilePath: "m.py", StartLine: 1, EndLine: 5}
	index.AddDefinition(a, model.Definition{Location: locA})

	s := NewServer(index)
	require.NotNil(t, s)
	require.NotNil(t, s.mcpServer)
}
