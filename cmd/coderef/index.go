package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/viant/coderef/cmd/coderef/internal/config"
	"github.com/viant/coderef/indexer"
	"github.com/viant/coderef/persist"
	"github.com/viant/coderef/persist/sqlrepo"
)

func newIndexCmd(cfg *config.Config) *cobra.Command {
	var (
		lang         string
		useGitignore bool
		include      []string
		exclude      []string
		relative     bool
		out          string
		dbPath       string
	)

	cmd := &cobra.Command{
		Use:   "index <path>",
		Short: "Walk a project tree and build a cross-reference index",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			procs, err := resolveProcessors(lang)
			if err != nil {
				return err
			}

			opts := []indexer.Option{
				indexer.WithRelativePaths(relative),
				indexer.WithLogger(stderrLogger{cmd}),
			}
			if useGitignore {
				opts = append(opts, indexer.WithGitignore())
			}
			if len(include) > 0 {
				opts = append(opts, indexer.WithIncludeGlobs(include...))
			}
			if len(exclude) > 0 {
				opts = append(opts, indexer.WithExcludeGlobs(exclude...))
			}

			idx := indexer.New(procs, opts...)
			index, err := idx.IndexProject(args[0])
			if err != nil {
				return fmt.Errorf("indexing %s: %w", args[0], err)
			}
			data := index.AsData()

			if dbPath != "" {
				db, err := sqlrepo.Open(dbPath)
				if err != nil {
					return err
				}
				if err := sqlrepo.Save(db, data); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "wrote %d symbols to %s\n", len(data.Data), dbPath)
				return nil
			}

			var raw []byte
			if filepath.Ext(out) == ".yaml" || filepath.Ext(out) == ".yml" {
				raw, err = persist.MarshalYAML(data)
			} else {
				raw, err = persist.Marshal(data)
			}
			if err != nil {
				return err
			}

			if out == "" {
				_, err = cmd.OutOrStdout().Write(raw)
				return err
			}
			return os.WriteFile(out, raw, 0o644)
		},
	}

	cmd.Flags().StringVar(&lang, "lang", "", "Restrict indexing to one language tag (python, c, cpp); all three if omitted")
	cmd.Flags().BoolVar(&useGitignore, "gitignore", cfg.GitignoreDefault, "Honor .gitignore files under the project root")
	cmd.Flags().StringSliceVar(&include, "include", nil, "Only index paths matching one of these doublestar globs")
	cmd.Flags().StringSliceVar(&exclude, "exclude", nil, "Skip paths matching one of these doublestar globs")
	cmd.Flags().BoolVar(&relative, "relative", true, "Store file paths relative to the project root")
	cmd.Flags().StringVar(&out, "out", "", "Write the index to this file (.json or .yaml); stdout JSON if omitted")
	cmd.Flags().StringVar(&dbPath, "db", "", "Write the index to a SQLite database at this path instead of JSON/YAML")

	return cmd
}

// stderrLogger is the CLI's injected indexer.Logger: a plain write to
// stderr, matching the teacher's convention that only the outermost layer
// ever writes diagnostics.
type stderrLogger struct {
	cmd *cobra.Command
}

func (l stderrLogger) Warnf(format string, args ...any) {
	fmt.Fprintf(l.cmd.ErrOrStderr(), format+"\n", args...)
}
