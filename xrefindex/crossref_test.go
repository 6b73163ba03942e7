package xrefindex_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/viant/coderef/model"
	"github.com/viant/coderef/xrefindex"
)

func TestAddDefinitionInducesReference(t *testing.T) {
	index := xrefindex.New()

	caller := model.NewFunction("main")
	callee := model.NewFunction("doWork")

	callLoc := model.Location{FilePath: "main.py", StartLine: 3, EndLine: 3}
	def := model.Definition{
		Location: model.Location{FilePath: "main.py", StartLine: 1, EndLine: 5},
		Calls: []model.SymbolReference{
			{Symbol: callee, Reference: model.PureReference{Location: callLoc}},
		},
	}

	index.AddDefinition(caller, def)

	refs := index.GetReferences(callee)
	assert.Len(t, refs, 1)
	assert.Equal(t, callLoc, refs[0].Location)
	assert.Len(t, refs[0].CalledBy, 1)
	assert.Equal(t, caller, refs[0].CalledBy[0].Symbol)
	assert.Equal(t, def.ToPure(), refs[0].CalledBy[0].Definition)
}

func TestAddReferenceInducesDefinitionCall(t *testing.T) {
	index := xrefindex.New()

	caller := model.NewFunction("main")
	callee := model.NewFunction("doWork")

	defLoc := model.Location{FilePath: "main.py", StartLine: 1, EndLine: 5}
	callLoc := model.Location{FilePath: "main.py", StartLine: 3, EndLine: 3}

	ref := model.Reference{
		Location: callLoc,
		CalledBy: []model.SymbolDefinition{
			{Symbol: caller, Definition: model.PureDefinition{Location: defLoc}},
		},
	}

	index.AddReference(callee, ref)

	defs := index.GetDefinitions(caller)
	assert.Len(t, defs, 1)
	assert.Equal(t, defLoc, defs[0].Location)
	assert.Len(t, defs[0].Calls, 1)
	assert.Equal(t, callee, defs[0].Calls[0].Symbol)
	assert.Equal(t, ref.ToPure(), defs[0].Calls[0].Reference)
}

func TestAddDefinitionMergesRepeatedCalls(t *testing.T) {
	index := xrefindex.New()

	caller := model.NewFunction("main")
	callee := model.NewFunction("doWork")
	callLoc := model.Location{FilePath: "main.py", StartLine: 3, EndLine: 3}
	def := model.Definition{
		Location: model.Location{FilePath: "main.py", StartLine: 1, EndLine: 5},
		Calls: []model.SymbolReference{
			{Symbol: callee, Reference: model.PureReference{Location: callLoc}},
		},
	}

	index.AddDefinition(caller, def)
	index.AddDefinition(caller, def)

	defs := index.GetDefinitions(caller)
	assert.Len(t, defs, 1)
	assert.Len(t, defs[0].Calls, 1, "re-adding the same definition must not duplicate call edges")
}

func TestHandleQueryByName(t *testing.T) {
	index := xrefindex.New()
	index.AddDefinition(model.NewFunction("parse"), model.Definition{
		Location: model.Location{FilePath: "a.py", StartLine: 1, EndLine: 1},
	})
	index.AddDefinition(model.NewMethod("parse", "Reader"), model.Definition{
		Location: model.Location{FilePath: "b.py", StartLine: 1, EndLine: 1},
	})

	results, err := index.HandleQuery(xrefindex.QueryByName{Name: "parse", AnyKind: true})
	assert.NoError(t, err)
	assert.Len(t, results, 2)

	results, err = index.HandleQuery(xrefindex.QueryByName{Name: "parse", Kind: model.KindFunction})
	assert.NoError(t, err)
	assert.Len(t, results, 1)
}

func TestHandleQueryByNameRegexInvalidPattern(t *testing.T) {
	index := xrefindex.New()
	_, err := index.HandleQuery(xrefindex.QueryByNameRegex{Pattern: "(unterminated", AnyKind: true})
	assert.ErrorIs(t, err, xrefindex.ErrInvalidQuery)
}

func TestAsDataRoundTrip(t *testing.T) {
	index := xrefindex.New()
	caller := model.NewFunction("main")
	callee := model.NewFunction("doWork")
	callLoc := model.Location{FilePath: "main.py", StartLine: 3, EndLine: 3}
	index.AddDefinition(caller, model.Definition{
		Location: model.Location{FilePath: "main.py", StartLine: 1, EndLine: 5},
		Calls: []model.SymbolReference{
			{Symbol: callee, Reference: model.PureReference{Location: callLoc}},
		},
	})

	data := index.AsData()
	assert.Equal(t, "cross_ref_index", data.Type)

	restored := xrefindex.New()
	restored.UpdateFromData(data)

	refs := restored.GetReferences(callee)
	assert.Len(t, refs, 1)
	assert.Len(t, refs[0].CalledBy, 1)
}
