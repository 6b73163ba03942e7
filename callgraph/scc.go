package callgraph

import "github.com/viant/coderef/model"

// tarjanSCC computes strongly connected components via Tarjan's algorithm,
// a direct port of the reference analyzer's _tarjan_scc.
func tarjanSCC(nodes []model.PureDefinition, edges []CallEdge) (nodeToSCC map[int]int, sccs [][]int) {
	n := len(nodes)
	adj := make(map[int][]int, n)
	for _, e := range edges {
		adj[e.Src] = append(adj[e.Src], e.Dst)
	}

	index := 0
	indices := make([]int, n)
	lowlink := make([]int, n)
	onStack := make([]bool, n)
	for i := range indices {
		indices[i] = -1
	}
	var stack []int

	var strongconnect func(v int)
	strongconnect = func(v int) {
		indices[v] = index
		lowlink[v] = index
		index++
		stack = append(stack, v)
		onStack[v] = true

		for _, w := range adj[v] {
			if indices[w] == -1 {
				strongconnect(w)
				if lowlink[w] < lowlink[v] {
					lowlink[v] = lowlink[w]
				}
			} else if onStack[w] {
				if indices[w] < lowlink[v] {
					lowlink[v] = indices[w]
				}
			}
		}

		if lowlink[v] == indices[v] {
			var comp []int
			for {
				w := stack[len(stack)-1]
				stack = stack[:len(stack)-1]
				onStack[w] = false
				comp = append(comp, w)
				if w == v {
					break
				}
			}
			sccs = append(sccs, comp)
		}
	}

	for v := 0; v < n; v++ {
		if indices[v] == -1 {
			strongconnect(v)
		}
	}

	nodeToSCC = make(map[int]int, n)
	for sid, comp := range sccs {
		for _, v := range comp {
			nodeToSCC[v] = sid
		}
	}
	return nodeToSCC, sccs
}

// sccEdgeList collapses edges into deduplicated (fromSCC, toSCC) pairs,
// dropping self-loops within a single SCC, in first-seen order.
func sccEdgeList(edges []CallEdge, nodeToSCC map[int]int) [][2]int {
	seen := make(map[[2]int]bool)
	var pairs [][2]int
	for _, e := range edges {
		su, sv := nodeToSCC[e.Src], nodeToSCC[e.Dst]
		if su == sv {
			continue
		}
		pair := [2]int{su, sv}
		if seen[pair] {
			continue
		}
		seen[pair] = true
		pairs = append(pairs, pair)
	}
	return pairs
}
