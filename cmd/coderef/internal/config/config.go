// Package config loads coderef's CLI configuration from the environment,
// following the reference CLI's LoadConfig pattern: .env first, then
// CODEREF_-prefixed environment variables, with documented defaults.
package config

import (
	"os"
	"strconv"
)

// Config holds settings the CLI reads once at startup and threads through
// to the indexer/callgraph/persist layers.
type Config struct {
	// DefaultLanguage is read from CODEREF_DEFAULT_LANGUAGE (default
	// "python"). No subcommand consults it: `coderef index` without --lang
	// registers every processor.
	DefaultLanguage string
	// GitignoreDefault controls whether WithGitignore() is applied when a
	// command's --gitignore flag is left unset.
	GitignoreDefault bool
	// SQLitePath is read from CODEREF_SQLITE_PATH (default
	// "coderef.sqlite"). No subcommand consults it: without --db,
	// `coderef index` writes JSON or YAML instead of a database.
	SQLitePath string
}

// Load reads configuration from CODEREF_-prefixed environment variables,
// applying defaults for anything unset. Call godotenv.Load() before Load if
// a .env file should seed the process environment first.
func Load() *Config {
	cfg := &Config{
		DefaultLanguage:  os.Getenv("CODEREF_DEFAULT_LANGUAGE"),
		GitignoreDefault: true,
		SQLitePath:       os.Getenv("CODEREF_SQLITE_PATH"),
	}

	if cfg.DefaultLanguage == "" {
		cfg.DefaultLanguage = "python"
	}
	if cfg.SQLitePath == "" {
		cfg.SQLitePath = "coderef.sqlite"
	}
	if v := os.Getenv("CODEREF_GITIGNORE_DEFAULT"); v != "" {
		if parsed, err := strconv.ParseBool(v); err == nil {
			cfg.GitignoreDefault = parsed
		}
	}

	return cfg
}
