package callgraph

import "github.com/viant/coderef/model"

// PathReturnMode selects the shape FindPaths returns paths in.
type PathReturnMode string

const (
	// NodeMode returns paths as a sequence of definitions.
	NodeMode PathReturnMode = "node"
	// SCCMode returns paths as a sequence of SCC ids in the SCC-DAG.
	SCCMode PathReturnMode = "scc"
	// HybridMode returns paths as SCC segments, optionally expanded to the
	// node sequence traversed within each segment.
	HybridMode PathReturnMode = "hybrid"
)

// IntraSCCStrategy controls how a HybridMode path expands the node sequence
// within each SCC segment.
type IntraSCCStrategy string

const (
	// IntraSCCNone leaves each segment's node sequence unexpanded.
	IntraSCCNone IntraSCCStrategy = "none"
	// IntraSCCShortest expands each segment to the shortest path (by hop
	// count) between its entry and exit node, found via BFS within the SCC.
	IntraSCCShortest IntraSCCStrategy = "shortest"
	// IntraSCCBoundedEnumerate expands each segment to the first path found
	// by a depth-first search capped at IntraSCCStepCap steps, which may
	// differ from the true shortest path when one exists within the cap.
	IntraSCCBoundedEnumerate IntraSCCStrategy = "bounded_enumerate"
)

// NodePath is a path expressed as the sequence of symbol+definition pairs
// traversed.
type NodePath struct {
	Nodes []model.SymbolDefinition
}

// SCCPath is a path expressed as a sequence of SCC ids in the SCC-DAG.
type SCCPath struct {
	SCCIDs []int
}

// HybridSegment is one SCC-DAG hop of a HybridPath, optionally expanded to
// the concrete node sequence traversed within that SCC.
type HybridSegment struct {
	SCCID int
	Nodes []model.SymbolDefinition
}

// HybridPath is a path expressed as ordered SCC segments.
type HybridPath struct {
	Segments []HybridSegment
}

// FindPathsOptions configures FindPaths.
type FindPathsOptions struct {
	// K caps the number of paths returned.
	K int
	// MaxDepth, if non-nil, caps path length in hops.
	MaxDepth *int
	// ReturnMode selects the path representation.
	ReturnMode PathReturnMode
	// IntraSCC selects how HybridMode expands node sequences within each
	// SCC segment.
	IntraSCC IntraSCCStrategy
	// IntraSCCStepCap bounds the search used by IntraSCCBoundedEnumerate.
	IntraSCCStepCap int
}

// DefaultFindPathsOptions mirrors the reference analyzer's find_paths
// defaults: one path, node-level return, shortest intra-SCC expansion.
func DefaultFindPathsOptions() FindPathsOptions {
	return FindPathsOptions{
		K:               1,
		ReturnMode:      NodeMode,
		IntraSCC:        IntraSCCShortest,
		IntraSCCStepCap: 50,
	}
}

// FindPathsResult is the result envelope for FindPaths: exactly one of the
// Node/SCC/Hybrid slices is populated, per Mode.
type FindPathsResult struct {
	Mode        PathReturnMode
	NodePaths   []NodePath
	SCCPaths    []SCCPath
	HybridPaths []HybridPath
}

// FindPaths enumerates up to opts.K simple paths from srcIdx to dstIdx (node
// indices into graph.Nodes), in the representation opts.ReturnMode selects.
func FindPaths(graph *CallGraph, srcIdx, dstIdx int, opts FindPathsOptions) FindPathsResult {
	adj := buildAdjacency(graph.Edges)

	if opts.ReturnMode == SCCMode {
		sccs := graph.SCCs
		nodeToSCC := map[int]int{}
		if len(sccs) == 0 {
			nodeToSCC, sccs = tarjanSCC(graph.Nodes, graph.Edges)
		} else {
			for sid, comp := range sccs {
				for _, n := range comp {
					nodeToSCC[n] = sid
				}
			}
		}
		srcSCC, srcOK := nodeToSCC[srcIdx]
		dstSCC, dstOK := nodeToSCC[dstIdx]
		if !srcOK || !dstOK {
			return FindPathsResult{Mode: SCCMode}
		}

		sccEdges := graph.SCCEdges
		if len(sccEdges) == 0 {
			sccEdges = sccEdgeList(graph.Edges, nodeToSCC)
		}
		dagAdj := make(map[int][]int)
		for _, pair := range sccEdges {
			dagAdj[pair[0]] = append(dagAdj[pair[0]], pair[1])
		}

		rawPaths := dfsKPaths(dagAdj, srcSCC, dstSCC, opts.K, opts.MaxDepth)
		result := FindPathsResult{Mode: SCCMode}
		for _, p := range rawPaths {
			result.SCCPaths = append(result.SCCPaths, SCCPath{SCCIDs: p})
		}
		return result
	}

	rawPaths := dfsKPaths(adj, srcIdx, dstIdx, opts.K, opts.MaxDepth)

	if opts.ReturnMode == NodeMode {
		result := FindPathsResult{Mode: NodeMode}
		for _, p := range rawPaths {
			result.NodePaths = append(result.NodePaths, NodePath{Nodes: toSymbolDefinitions(graph, p)})
		}
		return result
	}

	// HybridMode: collapse each node path into SCC segments, expanding the
	// node sequence within each segment per opts.IntraSCC.
	nodeToSCC := map[int]int{}
	sccs := graph.SCCs
	if len(sccs) == 0 {
		nodeToSCC, sccs = tarjanSCC(graph.Nodes, graph.Edges)
	} else {
		for sid, comp := range sccs {
			for _, n := range comp {
				nodeToSCC[n] = sid
			}
		}
	}

	result := FindPathsResult{Mode: HybridMode}
	for _, p := range rawPaths {
		result.HybridPaths = append(result.HybridPaths, buildHybridPath(graph, p, nodeToSCC, adj, opts))
	}
	return result
}

func buildAdjacency(edges []CallEdge) map[int][]int {
	adj := make(map[int][]int)
	for _, e := range edges {
		adj[e.Src] = append(adj[e.Src], e.Dst)
	}
	return adj
}

func toSymbolDefinitions(graph *CallGraph, path []int) []model.SymbolDefinition {
	out := make([]model.SymbolDefinition, len(path))
	for i, n := range path {
		out[i] = model.SymbolDefinition{Symbol: graph.Owners[n], Definition: graph.Nodes[n]}
	}
	return out
}

// buildHybridPath groups consecutive same-SCC runs of path into segments,
// expanding each run's node sequence per the configured IntraSCCStrategy.
func buildHybridPath(graph *CallGraph, path []int, nodeToSCC map[int]int, adj map[int][]int, opts FindPathsOptions) HybridPath {
	var segments []HybridSegment
	var run []int
	lastSID := -1
	hasLast := false

	flush := func() {
		if len(run) == 0 {
			return
		}
		seg := HybridSegment{SCCID: lastSID}
		switch opts.IntraSCC {
		case IntraSCCShortest:
			seg.Nodes = toSymbolDefinitions(graph, shortestWithin(run, nodeToSCC, adj))
		case IntraSCCBoundedEnumerate:
			seg.Nodes = toSymbolDefinitions(graph, boundedWithin(run, nodeToSCC, adj, opts.IntraSCCStepCap))
		}
		segments = append(segments, seg)
		run = nil
	}

	for _, n := range path {
		sid, ok := nodeToSCC[n]
		if !ok {
			continue
		}
		if hasLast && sid != lastSID {
			flush()
		}
		run = append(run, n)
		lastSID = sid
		hasLast = true
	}
	flush()

	return HybridPath{Segments: segments}
}

// shortestWithin finds the shortest path (by hop count) from run's first to
// last node, restricted to nodes belonging to the same SCC as run. A run of
// at most one node is returned as is, and so is run when the search finds
// no path.
func shortestWithin(run []int, nodeToSCC map[int]int, adj map[int][]int) []int {
	if len(run) <= 1 {
		return run
	}
	src, dst := run[0], run[len(run)-1]
	sid := nodeToSCC[src]

	type item struct {
		node int
		path []int
	}
	visited := map[int]bool{src: true}
	queue := []item{{src, []int{src}}}
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		if cur.node == dst {
			return cur.path
		}
		for _, next := range adj[cur.node] {
			if nodeToSCC[next] != sid || visited[next] {
				continue
			}
			visited[next] = true
			nextPath := append(append([]int(nil), cur.path...), next)
			queue = append(queue, item{next, nextPath})
		}
	}
	return run
}

// boundedWithin finds the first path (depth-first) from run's first to last
// node within the same SCC, capped at stepCap hops.
func boundedWithin(run []int, nodeToSCC map[int]int, adj map[int][]int, stepCap int) []int {
	if len(run) <= 1 {
		return run
	}
	src, dst := run[0], run[len(run)-1]
	sid := nodeToSCC[src]

	scoped := make(map[int][]int)
	for node, neighbors := range adj {
		if nodeToSCC[node] != sid {
			continue
		}
		for _, n := range neighbors {
			if nodeToSCC[n] == sid {
				scoped[node] = append(scoped[node], n)
			}
		}
	}

	found := dfsKPaths(scoped, src, dst, 1, &stepCap)
	if len(found) == 0 {
		return run
	}
	return found[0]
}

// dfsKPaths enumerates up to k simple paths from src to dst via depth-first
// search, avoiding cycles by excluding nodes already on the current path. A
// direct port of the reference analyzer's _dfs_k_paths.
func dfsKPaths(adj map[int][]int, src, dst, k int, maxDepth *int) [][]int {
	var paths [][]int
	var path []int
	onPath := make(map[int]bool)

	var dfs func(u, depth int)
	dfs = func(u, depth int) {
		if len(paths) >= k {
			return
		}
		if maxDepth != nil && depth > *maxDepth {
			return
		}
		path = append(path, u)
		onPath[u] = true
		if u == dst {
			paths = append(paths, append([]int(nil), path...))
			path = path[:len(path)-1]
			onPath[u] = false
			return
		}
		for _, v := range adj[u] {
			if onPath[v] {
				continue
			}
			dfs(v, depth+1)
			if len(paths) >= k {
				break
			}
		}
		path = path[:len(path)-1]
		onPath[u] = false
	}

	dfs(src, 0)
	return paths
}
