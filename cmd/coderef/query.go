package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/viant/coderef/model"
	"github.com/viant/coderef/xrefindex"
)

func newQueryCmd() *cobra.Command {
	var (
		dbPath string
		name   string
		regex  string
		kind   string
	)

	cmd := &cobra.Command{
		Use:   "query [index-file]",
		Short: "Look up symbols in a built index by name or name pattern",
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

			symbolKind, err := parseKind(kind)
			if err != nil {
				return err
			}

			anyKind := kind == ""
			var query any
			switch {
			case regex != "":
				query = xrefindex.QueryByNameRegex{Pattern: regex, Kind: symbolKind, AnyKind: anyKind}
			case name != "":
				query = xrefindex.QueryByName{Name: name, Kind: symbolKind, AnyKind: anyKind}
			default:
				return fmt.Errorf("coderef: one of --name or --regex is required")
			}

			results, err := index.HandleQuery(query)
			if err != nil {
				return err
			}
			for _, r := range results {
				fmt.Fprintf(cmd.OutOrStdout(), "%s\t%d definitions\t%d references\n",
					r.Symbol, len(r.Info.Definitions), len(r.Info.References))
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&dbPath, "db", "", "Load the index from a SQLite database at this path instead of a file argument")
	cmd.Flags().StringVar(&name, "name", "", "Exact symbol name to find")
	cmd.Flags().StringVar(&regex, "regex", "", "Regular expression the symbol name must match")
	cmd.Flags().StringVar(&kind, "kind", "", "Restrict to \"function\" or \"method\" symbols; matches both if omitted")

	return cmd
}

func parseKind(kind string) (model.SymbolKind, error) {
	switch kind {
	case "":
		return "", nil
	case "function":
		return model.KindFunction, nil
	case "method":
		return model.KindMethod, nil
	default:
		return "", fmt.Errorf("coderef: unknown --kind %q (want function or method)", kind)
	}
}
