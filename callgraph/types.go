// Package callgraph builds and queries a definition-level call graph from a
// xrefindex.CrossRefIndex: nodes are PureDefinition fingerprints, edges are
// caller -> callee relationships expanded from each definition's recorded
// calls. The construction, SCC, and path-finding algorithms are a direct
// port of the reference analyzer's SimpleAnalyzer.
package callgraph

import "github.com/viant/coderef/model"

// EdgeKind distinguishes a call edge bound to a single concrete callee
// definition (Must) from one where multiple candidate definitions exist
// (May).
type EdgeKind string

const (
	// Must marks an edge whose callee symbol resolved to exactly one
	// definition.
	Must EdgeKind = "must"
	// May marks an edge to one of several candidate definitions for an
	// ambiguous callee symbol.
	May EdgeKind = "may"
)

// Direction selects which way edges point after construction.
type Direction string

const (
	// Forward keeps edges caller -> callee (the default).
	Forward Direction = "forward"
	// Backward reverses every edge to callee -> caller.
	Backward Direction = "backward"
	// Both keeps the forward edges and adds their reverse alongside.
	Both Direction = "both"
)

// CallEdge is a directed edge between two node indices into CallGraph.Nodes.
type CallEdge struct {
	Src  int
	Dst  int
	Kind EdgeKind
}

// CallGraphStats summarizes one construction run.
type CallGraphStats struct {
	NumNodes        int
	NumEdges        int
	UnresolvedCalls int
	// BuildSeconds is the wall-clock time construction took, mirroring the
	// reference analyzer's perf_counter() delta.
	BuildSeconds float64
}

// UnresolvedCall records a call site whose callee could not be bound to any
// edge: either the callee symbol has no recorded definitions at all, or it
// has several and the caller asked not to expand ambiguous calls.
type UnresolvedCall struct {
	CallerDef model.PureDefinition
	ViaSymbol model.Symbol
	CallSites []model.PureReference
	Reason    string
}

const (
	ReasonNoDefinitionsFound = "no_definitions_found"
	ReasonAmbiguousTargets   = "ambiguous_targets"
)

// CallGraph is the definition-level call graph: nodes are PureDefinition
// fingerprints (with an aligned Owners slice giving each node's symbol),
// edges reference node indices, and SCCs/SCCEdges describe the strongly
// connected components and the DAG between them.
type CallGraph struct {
	Nodes  []model.PureDefinition
	Owners []model.Symbol
	Edges  []CallEdge

	SCCs     [][]int
	SCCEdges [][2]int

	Unresolved []UnresolvedCall
	Stats      CallGraphStats
}

// GraphConstructOptions controls GetCallGraph's construction and pruning
// behavior.
type GraphConstructOptions struct {
	// ExpandCalls, when true (the default), adds a May edge to every
	// candidate definition of an ambiguous callee symbol. When false,
	// ambiguous calls are recorded as unresolved instead.
	ExpandCalls bool
	// Direction controls which way edges point after construction.
	Direction Direction
	// Entrypoints, if non-empty, restricts the graph to nodes reachable
	// from these seed definitions.
	Entrypoints []model.PureDefinition
	// ComputeSCC controls whether SCCs and the SCC-DAG are computed.
	ComputeSCC bool
}

// DefaultGraphConstructOptions returns the reference analyzer's defaults:
// expand ambiguous calls, forward direction, no entrypoint restriction, SCCs
// computed.
func DefaultGraphConstructOptions() GraphConstructOptions {
	return GraphConstructOptions{
		ExpandCalls: true,
		Direction:   Forward,
		ComputeSCC:  true,
	}
}
