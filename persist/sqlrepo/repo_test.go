package sqlrepo_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/viant/coderef/model"
	"github.com/viant/coderef/persist/sqlrepo"
	"github.com/viant/coderef/xrefindex"
)

func TestSaveLoadRoundTrip(t *testing.T) {
	db, err := sqlrepo.Open("")
	require.NoError(t, err)

	index := xrefindex.New()
	a := model.NewFunction("a")
	b := model.NewFunction("b")
	index.AddDefinition(a, model.Definition{
		Location: model.Location{FilePath: "sample.py", StartLine: 1, EndLine: 1},
		Calls: []model.SymbolReference{
			{Symbol: b, Reference: model.PureReference{Location: model.Location{FilePath: "sample.py", StartLine: 1, StartCol: 10, EndLine: 1, EndCol: 13}}},
		},
	})
	index.AddDefinition(b, model.Definition{Location: model.Location{FilePath: "sample.py", StartLine: 2, EndLine: 2}})

	require.NoError(t, sqlrepo.Save(db, index.AsData()))

	loaded, err := sqlrepo.Load(db)
	require.NoError(t, err)
	assert.Equal(t, "cross_ref_index", loaded.Type)

	rebuilt := xrefindex.New()
	rebuilt.UpdateFromData(loaded)

	aInfo, ok := rebuilt.GetInfo(a)
	require.True(t, ok)
	require.Len(t, aInfo.Definitions, 1)
	require.Len(t, aInfo.Definitions[0].Calls, 1)
	assert.Equal(t, b, aInfo.Definitions[0].Calls[0].Symbol)

	bInfo, ok := rebuilt.GetInfo(b)
	require.True(t, ok)
	require.Len(t, bInfo.References, 1)
	require.Len(t, bInfo.References[0].CalledBy, 1)
	assert.Equal(t, a, bInfo.References[0].CalledBy[0].Symbol)
}
