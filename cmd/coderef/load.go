package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/viant/coderef/persist"
	"github.com/viant/coderef/persist/sqlrepo"
	"github.com/viant/coderef/xrefindex"
)

// loadIndex reads a previously built index, from a SQLite database when
// dbPath is set or otherwise from the JSON/YAML file at path.
func loadIndex(path, dbPath string) (*xrefindex.CrossRefIndex, error) {
	index := xrefindex.New()

	if dbPath != "" {
		db, err := sqlrepo.Open(dbPath)
		if err != nil {
			return nil, err
		}
		data, err := sqlrepo.Load(db)
		if err != nil {
			return nil, err
		}
		index.UpdateFromData(data)
		return index, nil
	}

	if path == "" {
		return nil, fmt.Errorf("coderef: either an index file or --db is required")
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("coderef: reading %s: %w", path, err)
	}

	var warning string
	if ext := filepath.Ext(path); ext == ".yaml" || ext == ".yml" {
		d, w, err := persist.UnmarshalYAML(raw, "cross_ref_index")
		if err != nil {
			return nil, err
		}
		warning = w
		index.UpdateFromData(d)
	} else {
		d, w, err := persist.Unmarshal(raw, "cross_ref_index")
		if err != nil {
			return nil, err
		}
		warning = w
		index.UpdateFromData(d)
	}
	if warning != "" {
		fmt.Fprintln(os.Stderr, warning)
	}
	return index, nil
}
