package callgraph

import "github.com/viant/coderef/model"

// reachableMask marks every node reachable from entrypoints by BFS, a port
// of the reference analyzer's _reachable_mask. With no entrypoints, every
// node is kept. depth, if non-nil, caps the number of hops explored.
func reachableMask(nodes []model.PureDefinition, edges []CallEdge, entrypoints []model.PureDefinition, includeReverse bool, depth *int) []bool {
	if len(entrypoints) == 0 {
		mask := make([]bool, len(nodes))
		for i := range mask {
			mask[i] = true
		}
		return mask
	}

	indexOf := make(map[model.PureDefinition]int, len(nodes))
	for i, pd := range nodes {
		indexOf[pd] = i
	}

	adj := make(map[int][]int)
	radj := make(map[int][]int)
	for _, e := range edges {
		adj[e.Src] = append(adj[e.Src], e.Dst)
		radj[e.Dst] = append(radj[e.Dst], e.Src)
	}

	type item struct{ node, dist int }
	var queue []item
	seen := make(map[int]bool)
	for _, ep := range entrypoints {
		if i, ok := indexOf[ep]; ok && !seen[i] {
			seen[i] = true
			queue = append(queue, item{i, 0})
		}
	}

	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		if depth != nil && cur.dist >= *depth {
			continue
		}
		for _, v := range adj[cur.node] {
			if !seen[v] {
				seen[v] = true
				queue = append(queue, item{v, cur.dist + 1})
			}
		}
		if includeReverse {
			for _, v := range radj[cur.node] {
				if !seen[v] {
					seen[v] = true
					queue = append(queue, item{v, cur.dist + 1})
				}
			}
		}
	}

	mask := make([]bool, len(nodes))
	for i := range seen {
		mask[i] = true
	}
	return mask
}

// pruneToMask drops every node whose mask entry is false and remaps edges
// accordingly, a port of _prune_to_mask.
func pruneToMask(nodes []model.PureDefinition, owners []model.Symbol, edges []CallEdge, mask []bool) ([]model.PureDefinition, []model.Symbol, []CallEdge) {
	newIndices := make(map[int]int, len(nodes))
	var newNodes []model.PureDefinition
	var newOwners []model.Symbol
	for i, keep := range mask {
		if !keep {
			continue
		}
		newIndices[i] = len(newNodes)
		newNodes = append(newNodes, nodes[i])
		newOwners = append(newOwners, owners[i])
	}

	var newEdges []CallEdge
	for _, e := range edges {
		if mask[e.Src] && mask[e.Dst] {
			newEdges = append(newEdges, CallEdge{Src: newIndices[e.Src], Dst: newIndices[e.Dst], Kind: e.Kind})
		}
	}
	return newNodes, newOwners, newEdges
}
