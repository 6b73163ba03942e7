// Command coderef is the CLI driver around the indexer/xrefindex/callgraph
// core: it owns file I/O, language-tag selection, and persistence, none of
// which the core touches directly (§1, §6).
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/viant/coderef/cmd/coderef/internal/config"
)

func main() {
	_ = godotenv.Load()
	cfg := config.Load()

	root := &cobra.Command{
		Use:   "coderef",
		Short: "Build and query a cross-file call graph for Python, C, and C++ sources",
	}

	root.AddCommand(newIndexCmd(cfg))
	root.AddCommand(newQueryCmd())
	root.AddCommand(newGraphCmd())
	root.AddCommand(newPathsCmd())

	if err := root.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "coderef: %v\n", err)
		os.Exit(1)
	}
}
