package persist_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/viant/coderef/model"
	"github.com/viant/coderef/persist"
	"github.com/viant/coderef/xrefindex"
)

func sampleIndex() *xrefindex.CrossRefIndex {
	index := xrefindex.New()
	a := model.NewFunction("a")
	b := model.NewFunction("b")
	loc := model.Location{FilePath: "sample.py", StartLine: 1, EndLine: 1}
	index.AddDefinition(a, model.Definition{
		Location: loc,
		Calls: []model.SymbolReference{
			{Symbol: b, Reference: model.PureReference{Location: model.Location{FilePath: "sample.py", StartLine: 1, StartCol: 10, EndLine: 1, EndCol: 13}}},
		},
	})
	index.AddDefinition(b, model.Definition{Location: model.Location{FilePath: "sample.py", StartLine: 2, EndLine: 2}})
	return index
}

func TestMarshalUnmarshalJSONRoundTrip(t *testing.T) {
	index := sampleIndex()
	data := index.AsData()

	raw, err := persist.Marshal(data)
	require.NoError(t, err)

	loaded, warning, err := persist.Unmarshal(raw, "cross_ref_index")
	require.NoError(t, err)
	assert.Empty(t, warning)

	rebuilt := xrefindex.New()
	rebuilt.UpdateFromData(loaded)

	aInfo, ok := rebuilt.GetInfo(model.NewFunction("a"))
	require.True(t, ok)
	require.Len(t, aInfo.Definitions, 1)
	require.Len(t, aInfo.Definitions[0].Calls, 1)
	assert.Equal(t, model.NewFunction("b"), aInfo.Definitions[0].Calls[0].Symbol)

	bInfo, ok := rebuilt.GetInfo(model.NewFunction("b"))
	require.True(t, ok)
	require.Len(t, bInfo.References, 1)
	require.Len(t, bInfo.References[0].CalledBy, 1)
	assert.Equal(t, model.NewFunction("a"), bInfo.References[0].CalledBy[0].Symbol)
}

func TestUnmarshalWarnsOnStoreTagMismatch(t *testing.T) {
	index := sampleIndex()
	raw, err := persist.Marshal(index.AsData())
	require.NoError(t, err)

	_, warning, err := persist.Unmarshal(raw, "some_other_store")
	require.NoError(t, err)
	assert.Contains(t, warning, "some_other_store")
}

func TestUnmarshalRejectsMissingType(t *testing.T) {
	_, _, err := persist.Unmarshal([]byte(`{"data": []}`), "")
	require.Error(t, err)
	assert.ErrorIs(t, err, persist.ErrSchemaMismatch)
}

func TestMarshalStampsContentHash(t *testing.T) {
	index := sampleIndex()
	raw, err := persist.Marshal(index.AsData())
	require.NoError(t, err)
	assert.Contains(t, string(raw), persist.MetadataContentHashKey)
}

func TestYAMLRoundTrip(t *testing.T) {
	index := sampleIndex()
	data := index.AsData()

	raw, err := persist.MarshalYAML(data)
	require.NoError(t, err)

	loaded, warning, err := persist.UnmarshalYAML(raw, "cross_ref_index")
	require.NoError(t, err)
	assert.Empty(t, warning)
	assert.Equal(t, "cross_ref_index", loaded.Type)
	assert.Len(t, loaded.Data, 2)
}
