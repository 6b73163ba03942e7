package callgraph

import (
	"time"

	"github.com/viant/coderef/model"
	"github.com/viant/coderef/xrefindex"
)

// GetCallGraph builds a CallGraph from every definition recorded in index.
func GetCallGraph(index *xrefindex.CrossRefIndex, opts GraphConstructOptions) *CallGraph {
	start := time.Now()

	var nodes []model.PureDefinition
	var owners []model.Symbol
	indexOf := make(map[model.PureDefinition]int)

	addNode := func(pd model.PureDefinition, owner model.Symbol) int {
		if i, ok := indexOf[pd]; ok {
			return i
		}
		i := len(nodes)
		indexOf[pd] = i
		nodes = append(nodes, pd)
		owners = append(owners, owner)
		return i
	}

	for _, symbol := range index.Symbols() {
		for _, def := range index.GetDefinitions(symbol) {
			addNode(def.ToPure(), symbol)
		}
	}

	var edges []CallEdge
	var unresolved []UnresolvedCall
	defsCache := make(map[model.Symbol][]model.Definition)

	seenEdges := make(map[CallEdge]bool)
	addEdge := func(e CallEdge) {
		if seenEdges[e] {
			return
		}
		seenEdges[e] = true
		edges = append(edges, e)
	}

	ensureNode := func(pd model.PureDefinition) (int, bool) {
		if i, ok := indexOf[pd]; ok {
			return i, true
		}
		symbol, _, ok := index.FindFullDefinition(pd)
		if !ok {
			return 0, false
		}
		return addNode(pd, symbol), true
	}

	for _, symbol := range index.Symbols() {
		for _, def := range index.GetDefinitions(symbol) {
			callerPD := def.ToPure()
			for _, call := range def.Calls {
				callee := call.Symbol
				targets, ok := defsCache[callee]
				if !ok {
					targets = index.GetDefinitions(callee)
					defsCache[callee] = targets
				}

				switch {
				case len(targets) == 0:
					unresolved = append(unresolved, UnresolvedCall{
						CallerDef: callerPD,
						ViaSymbol: callee,
						CallSites: []model.PureReference{call.Reference},
						Reason:    ReasonNoDefinitionsFound,
					})
				case len(targets) == 1:
					srcIdx, srcOK := ensureNode(callerPD)
					dstIdx, dstOK := ensureNode(targets[0].ToPure())
					if srcOK && dstOK {
						addEdge(CallEdge{Src: srcIdx, Dst: dstIdx, Kind: Must})
					}
				default:
					if opts.ExpandCalls {
						for _, target := range targets {
							srcIdx, srcOK := ensureNode(callerPD)
							dstIdx, dstOK := ensureNode(target.ToPure())
							if srcOK && dstOK {
								addEdge(CallEdge{Src: srcIdx, Dst: dstIdx, Kind: May})
							}
						}
					} else {
						unresolved = append(unresolved, UnresolvedCall{
							CallerDef: callerPD,
							ViaSymbol: callee,
							CallSites: []model.PureReference{call.Reference},
							Reason:    ReasonAmbiguousTargets,
						})
					}
				}
			}
		}
	}

	edges = applyDirection(edges, opts.Direction)

	if len(opts.Entrypoints) > 0 {
		mask := reachableMask(nodes, edges, opts.Entrypoints, false, nil)
		nodes, owners, edges = pruneToMask(nodes, owners, edges, mask)
	}

	var sccs [][]int
	var sccEdges [][2]int
	if opts.ComputeSCC {
		nodeToSCC, computed := tarjanSCC(nodes, edges)
		sccs = computed
		sccEdges = sccEdgeList(edges, nodeToSCC)
	}

	return &CallGraph{
		Nodes:      nodes,
		Owners:     owners,
		Edges:      edges,
		SCCs:       sccs,
		SCCEdges:   sccEdges,
		Unresolved: unresolved,
		Stats: CallGraphStats{
			NumNodes:        len(nodes),
			NumEdges:        len(edges),
			UnresolvedCalls: len(unresolved),
			BuildSeconds:    time.Since(start).Seconds(),
		},
	}
}

func applyDirection(edges []CallEdge, direction Direction) []CallEdge {
	switch direction {
	case Backward:
		reversed := make([]CallEdge, len(edges))
		for i, e := range edges {
			reversed[i] = CallEdge{Src: e.Dst, Dst: e.Src, Kind: e.Kind}
		}
		return reversed
	case Both:
		seen := make(map[CallEdge]bool, len(edges)*2)
		out := make([]CallEdge, 0, len(edges)*2)
		add := func(e CallEdge) {
			if seen[e] {
				return
			}
			seen[e] = true
			out = append(out, e)
		}
		for _, e := range edges {
			add(e)
			add(CallEdge{Src: e.Dst, Dst: e.Src, Kind: e.Kind})
		}
		return out
	default:
		return edges
	}
}
