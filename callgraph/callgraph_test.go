package callgraph_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/viant/coderef/callgraph"
	"github.com/viant/coderef/model"
	"github.com/viant/coderef/xrefindex"
)

func loc(file string, line int) model.Location {
	return model.Location{FilePath: file, StartLine: line, EndLine: line}
}

// buildChainIndex builds main -> helper -> leaf, a simple acyclic chain.
func buildChainIndex() *xrefindex.CrossRefIndex {
	index := xrefindex.New()

	leaf := model.NewFunction("leaf")
	helper := model.NewFunction("helper")
	main := model.NewFunction("main")

	index.AddDefinition(leaf, model.Definition{Location: loc("a.py", 1)})
	index.AddDefinition(helper, model.Definition{
		Location: loc("a.py", 5),
		Calls: []model.SymbolReference{
			{Symbol: leaf, Reference: model.PureReference{Location: loc("a.py", 6)}},
		},
	})
	index.AddDefinition(main, model.Definition{
		Location: loc("a.py", 10),
		Calls: []model.SymbolReference{
			{Symbol: helper, Reference: model.PureReference{Location: loc("a.py", 11)}},
		},
	})
	return index
}

func TestGetCallGraphBuildsChain(t *testing.T) {
	index := buildChainIndex()
	graph := callgraph.GetCallGraph(index, callgraph.DefaultGraphConstructOptions())

	assert.Equal(t, 3, graph.Stats.NumNodes)
	assert.Equal(t, 2, graph.Stats.NumEdges)
	assert.Equal(t, 0, graph.Stats.UnresolvedCalls)
}

func TestGetCallGraphRecordsUnresolvedCalls(t *testing.T) {
	index := xrefindex.New()
	main := model.NewFunction("main")
	missing := model.NewFunction("missing")
	index.AddDefinition(main, model.Definition{
		Location: loc("a.py", 1),
		Calls: []model.SymbolReference{
			{Symbol: missing, Reference: model.PureReference{Location: loc("a.py", 2)}},
		},
	})

	graph := callgraph.GetCallGraph(index, callgraph.DefaultGraphConstructOptions())
	require.Len(t, graph.Unresolved, 1)
	assert.Equal(t, callgraph.ReasonNoDefinitionsFound, graph.Unresolved[0].Reason)
	assert.Equal(t, missing, graph.Unresolved[0].ViaSymbol)
}

func TestGetCallGraphDetectsSelfRecursionAsSingleSCC(t *testing.T) {
	index := xrefindex.New()
	recurse := model.NewFunction("recurse")
	defLoc := loc("a.py", 1)
	callLoc := model.PureReference{Location: loc("a.py", 2)}
	index.AddDefinition(recurse, model.Definition{
		Location: defLoc,
		Calls:    []model.SymbolReference{{Symbol: recurse, Reference: callLoc}},
	})

	graph := callgraph.GetCallGraph(index, callgraph.DefaultGraphConstructOptions())
	require.Len(t, graph.SCCs, 1)
	assert.Len(t, graph.SCCs[0], 1)
}

func TestGetCallGraphGroupsMutualRecursionIntoOneSCC(t *testing.T) {
	index := xrefindex.New()
	a := model.NewFunction("a")
	b := model.NewFunction("b")
	index.AddDefinition(a, model.Definition{
		Location: loc("a.py", 1),
		Calls:    []model.SymbolReference{{Symbol: b, Reference: model.PureReference{Location: loc("a.py", 2)}}},
	})
	index.AddDefinition(b, model.Definition{
		Location: loc("a.py", 10),
		Calls:    []model.SymbolReference{{Symbol: a, Reference: model.PureReference{Location: loc("a.py", 11)}}},
	})

	graph := callgraph.GetCallGraph(index, callgraph.DefaultGraphConstructOptions())
	require.Len(t, graph.SCCs, 1)
	assert.Len(t, graph.SCCs[0], 2)
}

func TestFindPathsReturnsNodeChain(t *testing.T) {
	index := buildChainIndex()
	graph := callgraph.GetCallGraph(index, callgraph.DefaultGraphConstructOptions())

	mainIdx, helperIdx, leafIdx := -1, -1, -1
	for i, owner := range graph.Owners {
		switch owner.Name {
		case "main":
			mainIdx = i
		case "helper":
			helperIdx = i
		case "leaf":
			leafIdx = i
		}
	}
	require.NotEqual(t, -1, mainIdx)
	require.NotEqual(t, -1, helperIdx)
	require.NotEqual(t, -1, leafIdx)

	opts := callgraph.DefaultFindPathsOptions()
	result := callgraph.FindPaths(graph, mainIdx, leafIdx, opts)

	require.Len(t, result.NodePaths, 1)
	path := result.NodePaths[0].Nodes
	require.Len(t, path, 3)
	assert.Equal(t, "main", path[0].Symbol.Name)
	assert.Equal(t, "helper", path[1].Symbol.Name)
	assert.Equal(t, "leaf", path[2].Symbol.Name)
}

func TestGetCallGraphDedupsRepeatedCallSitesToSameCallee(t *testing.T) {
	index := xrefindex.New()
	a := model.NewFunction("a")
	b := model.NewFunction("b")
	index.AddDefinition(b, model.Definition{Location: loc("a.py", 1)})
	index.AddDefinition(a, model.Definition{
		Location: loc("a.py", 5),
		Calls: []model.SymbolReference{
			{Symbol: b, Reference: model.PureReference{Location: loc("a.py", 6)}},
			{Symbol: b, Reference: model.PureReference{Location: loc("a.py", 7)}},
		},
	})

	graph := callgraph.GetCallGraph(index, callgraph.DefaultGraphConstructOptions())
	assert.Equal(t, 2, graph.Stats.NumNodes)
	assert.Equal(t, 1, graph.Stats.NumEdges, "two call sites to the same resolved callee collapse into one edge")
}

func TestGetCallGraphDirectionBothDedupsMutualEdges(t *testing.T) {
	index := xrefindex.New()
	a := model.NewFunction("a")
	b := model.NewFunction("b")
	index.AddDefinition(a, model.Definition{
		Location: loc("a.py", 1),
		Calls:    []model.SymbolReference{{Symbol: b, Reference: model.PureReference{Location: loc("a.py", 2)}}},
	})
	index.AddDefinition(b, model.Definition{
		Location: loc("a.py", 10),
		Calls:    []model.SymbolReference{{Symbol: a, Reference: model.PureReference{Location: loc("a.py", 11)}}},
	})

	opts := callgraph.DefaultGraphConstructOptions()
	opts.Direction = callgraph.Both
	graph := callgraph.GetCallGraph(index, opts)

	assert.Equal(t, 2, graph.Stats.NumEdges, "a->b and b->a are each other's reverse; Both must not duplicate them")
}

func TestGetSubgraphPrunesUnreachableNodes(t *testing.T) {
	index := buildChainIndex()
	orphan := model.NewFunction("orphan")
	index.AddDefinition(orphan, model.Definition{Location: loc("b.py", 1)})

	graph := callgraph.GetCallGraph(index, callgraph.DefaultGraphConstructOptions())
	require.Equal(t, 4, graph.Stats.NumNodes)

	mainIdx := -1
	for i, owner := range graph.Owners {
		if owner.Name == "main" {
			mainIdx = i
		}
	}
	require.NotEqual(t, -1, mainIdx)

	sub := callgraph.GetSubgraph(graph, []int{mainIdx}, nil, false)
	assert.Equal(t, 3, sub.Stats.NumNodes)
}
