package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/viant/coderef/callgraph"
	"github.com/viant/coderef/model"
	"github.com/viant/coderef/xrefindex"
)

func newGraphCmd() *cobra.Command {
	var (
		dbPath      string
		expand      bool
		direction   string
		noSCC       bool
		entrypoints []string
	)

	cmd := &cobra.Command{
		Use:   "graph [index-file]",
		Short: "Build a call graph from an index and print a summary",
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

			dir, err := parseDirection(direction)
			if err != nil {
				return err
			}

			seeds, err := resolveEntrypoints(index, entrypoints)
			if err != nil {
				return err
			}

			opts := callgraph.GraphConstructOptions{
				ExpandCalls: expand,
				Direction:   dir,
				Entrypoints: seeds,
				ComputeSCC:  !noSCC,
			}
			graph := callgraph.GetCallGraph(index, opts)

			fmt.Fprintf(cmd.OutOrStdout(), "nodes=%d edges=%d unresolved=%d sccs=%d build=%.4fs\n",
				graph.Stats.NumNodes, graph.Stats.NumEdges, graph.Stats.UnresolvedCalls, len(graph.SCCs), graph.Stats.BuildSeconds)
			for _, u := range graph.Unresolved {
				fmt.Fprintf(cmd.OutOrStdout(), "unresolved: %s via %s (%s)\n", u.CallerDef.Location, u.ViaSymbol, u.Reason)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&dbPath, "db", "", "Load the index from a SQLite database at this path instead of a file argument")
	cmd.Flags().BoolVar(&expand, "expand-calls", true, "Expand an ambiguous callee into a May edge per candidate definition")
	cmd.Flags().StringVar(&direction, "direction", "forward", "Edge direction: forward, backward, or both")
	cmd.Flags().BoolVar(&noSCC, "no-scc", false, "Skip strongly-connected-component computation")
	cmd.Flags().StringSliceVar(&entrypoints, "entrypoint", nil, "Restrict the graph to nodes reachable from these symbol names")

	return cmd
}

func parseDirection(direction string) (callgraph.Direction, error) {
	switch direction {
	case "", "forward":
		return callgraph.Forward, nil
	case "backward":
		return callgraph.Backward, nil
	case "both":
		return callgraph.Both, nil
	default:
		return "", fmt.Errorf("coderef: unknown --direction %q (want forward, backward, or both)", direction)
	}
}

// resolveEntrypoints looks up each name as a symbol and collects every one
// of its recorded definitions as a seed fingerprint.
func resolveEntrypoints(index *xrefindex.CrossRefIndex, names []string) ([]model.PureDefinition, error) {
	var seeds []model.PureDefinition
	for _, name := range names {
		results, err := index.HandleQuery(xrefindex.QueryByName{Name: name, AnyKind: true})
		if err != nil {
			return nil, err
		}
		if len(results) == 0 {
			return nil, fmt.Errorf("coderef: entrypoint symbol %q not found in index", name)
		}
		for _, r := range results {
			for _, def := range r.Info.Definitions {
				seeds = append(seeds, def.ToPure())
			}
		}
	}
	return seeds, nil
}
