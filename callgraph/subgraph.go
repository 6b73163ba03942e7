package callgraph

import "github.com/viant/coderef/model"

// GetSubgraph restricts graph to the nodes reachable from roots (node
// indices into graph.Nodes), optionally bounded by depth and optionally
// also following edges in reverse. With no roots, no depth bound, and
// includeReverse false, graph is returned unchanged. SCCs are recomputed
// for the pruned graph; Unresolved is carried over as-is, matching the
// reference analyzer's get_subgraph.
func GetSubgraph(graph *CallGraph, roots []int, depth *int, includeReverse bool) *CallGraph {
	if len(roots) == 0 && depth == nil && !includeReverse {
		return graph
	}

	seeds := make([]model.PureDefinition, 0, len(roots))
	for _, r := range roots {
		seeds = append(seeds, graph.Nodes[r])
	}

	mask := reachableMask(graph.Nodes, graph.Edges, seeds, includeReverse, depth)
	nodes, owners, edges := pruneToMask(graph.Nodes, graph.Owners, graph.Edges, mask)

	nodeToSCC, sccs := tarjanSCC(nodes, edges)
	sccEdges := sccEdgeList(edges, nodeToSCC)

	return &CallGraph{
		Nodes:      nodes,
		Owners:     owners,
		Edges:      edges,
		SCCs:       sccs,
		SCCEdges:   sccEdges,
		Unresolved: graph.Unresolved,
		Stats: CallGraphStats{
			NumNodes:        len(nodes),
			NumEdges:        len(edges),
			UnresolvedCalls: len(graph.Unresolved),
		},
	}
}
