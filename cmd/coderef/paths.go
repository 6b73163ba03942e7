package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/viant/coderef/callgraph"
)

func newPathsCmd() *cobra.Command {
	var (
		dbPath    string
		src       string
		dst       string
		k         int
		maxDepth  int
		mode     string
		intraSCC string
		stepCap  int
	)

	cmd := &cobra.Command{
		Use:   "paths [index-file]",
		Short: "Enumerate call paths between two symbols",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var path string
			if len(args) == 1 {
				path = args[0]
			}
			index, err := loadIndex(path, dbPath)
			if err != nil {
				return err
			}
			if src == "" || dst == "" {
				return fmt.Errorf("coderef: both --src and --dst are required")
			}

			graph := callgraph.GetCallGraph(index, callgraph.DefaultGraphConstructOptions())

			srcIdx, ok := findNodeByName(graph, src)
			if !ok {
				fmt.Fprintf(cmd.OutOrStdout(), "no paths: %q not found\n", src)
				return nil
			}
			dstIdx, ok := findNodeByName(graph, dst)
			if !ok {
				fmt.Fprintf(cmd.OutOrStdout(), "no paths: %q not found\n", dst)
				return nil
			}

			returnMode, err := parseReturnMode(mode)
			if err != nil {
				return err
			}
			strategy, err := parseIntraSCC(intraSCC)
			if err != nil {
				return err
			}

			opts := callgraph.FindPathsOptions{
				K:               k,
				ReturnMode:      returnMode,
				IntraSCC:        strategy,
				IntraSCCStepCap: stepCap,
			}
			if maxDepth > 0 {
				opts.MaxDepth = &maxDepth
			}

			result := callgraph.FindPaths(graph, srcIdx, dstIdx, opts)
			printPathsResult(cmd, result)
			return nil
		},
	}

	cmd.Flags().StringVar(&dbPath, "db", "", "Load the index from a SQLite database at this path instead of a file argument")
	cmd.Flags().StringVar(&src, "src", "", "Source symbol name")
	cmd.Flags().StringVar(&dst, "dst", "", "Destination symbol name")
	cmd.Flags().IntVar(&k, "k", 1, "Maximum number of paths to return")
	cmd.Flags().IntVar(&maxDepth, "max-depth", 0, "Maximum path length in hops; 0 means unbounded")
	cmd.Flags().StringVar(&mode, "mode", "node", "Path representation: node, scc, or hybrid")
	cmd.Flags().StringVar(&intraSCC, "intra-scc", "shortest", "Hybrid mode SCC-segment expansion: none, shortest, or bounded_enumerate")
	cmd.Flags().IntVar(&stepCap, "step-cap", 50, "Step cap for bounded_enumerate intra-SCC expansion")

	return cmd
}

func findNodeByName(graph *callgraph.CallGraph, name string) (int, bool) {
	for i, owner := range graph.Owners {
		if owner.Name == name {
			return i, true
		}
	}
	return -1, false
}

func parseReturnMode(mode string) (callgraph.PathReturnMode, error) {
	switch mode {
	case "", "node":
		return callgraph.NodeMode, nil
	case "scc":
		return callgraph.SCCMode, nil
	case "hybrid":
		return callgraph.HybridMode, nil
	default:
		return "", fmt.Errorf("coderef: unknown --mode %q (want node, scc, or hybrid)", mode)
	}
}

func parseIntraSCC(strategy string) (callgraph.IntraSCCStrategy, error) {
	switch strategy {
	case "", "none":
		return callgraph.IntraSCCNone, nil
	case "shortest":
		return callgraph.IntraSCCShortest, nil
	case "bounded_enumerate":
		return callgraph.IntraSCCBoundedEnumerate, nil
	default:
		return "", fmt.Errorf("coderef: unknown --intra-scc %q (want none, shortest, or bounded_enumerate)", strategy)
	}
}

func printPathsResult(cmd *cobra.Command, result callgraph.FindPathsResult) {
	out := cmd.OutOrStdout()
	switch result.Mode {
	case callgraph.NodeMode:
		for _, p := range result.NodePaths {
			names := make([]string, len(p.Nodes))
			for i, n := range p.Nodes {
				names[i] = n.Symbol.String()
			}
			fmt.Fprintln(out, joinArrow(names))
		}
	case callgraph.SCCMode:
		for _, p := range result.SCCPaths {
			fmt.Fprintf(out, "%v\n", p.SCCIDs)
		}
	case callgraph.HybridMode:
		for _, p := range result.HybridPaths {
			for _, seg := range p.Segments {
				fmt.Fprintf(out, "[scc %d", seg.SCCID)
				if len(seg.Nodes) > 0 {
					names := make([]string, len(seg.Nodes))
					for i, n := range seg.Nodes {
						names[i] = n.Symbol.String()
					}
					fmt.Fprintf(out, ": %s", joinArrow(names))
				}
				fmt.Fprint(out, "] ")
			}
			fmt.Fprintln(out)
		}
	}
}

func joinArrow(names []string) string {
	out := ""
	for i, n := range names {
		if i > 0 {
			out += " -> "
		}
		out += n
	}
	return out
}
