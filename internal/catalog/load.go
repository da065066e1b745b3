package catalog

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

// catalogFile is the on-disk structure of a catalog file.
// A file holds one or more definitions.
type catalogFile struct {
	Definitions []*Definition `json:"definitions" yaml:"definitions"`
}

// LoadFile loads definitions from a single .yaml, .yml, or .json file.
func LoadFile(path string) ([]*Definition, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var file catalogFile
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &file); err != nil {
			return nil, fmt.Errorf("cannot parse catalog file %s: %w", path, err)
		}
	case ".json":
		if err := json.Unmarshal(data, &file); err != nil {
			return nil, fmt.Errorf("cannot parse catalog file %s: %w", path, err)
		}
	default:
		return nil, fmt.Errorf("unsupported catalog file extension: %s", path)
	}

	for _, d := range file.Definitions {
		if err := d.Validate(); err != nil {
			return nil, fmt.Errorf("catalog file %s: %w", path, err)
		}
	}
	return file.Definitions, nil
}

// LoadDir loads every catalog file in a directory (non-recursive) and builds
// a catalog from the combined definitions. Files are processed in sorted
// order so load order is deterministic.
func LoadDir(dir string) (*Catalog, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}

	var names []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		switch strings.ToLower(filepath.Ext(e.Name())) {
		case ".yaml", ".yml", ".json":
			names = append(names, e.Name())
		}
	}
	sort.Strings(names)

	var defs []*Definition
	for _, name := range names {
		loaded, err := LoadFile(filepath.Join(dir, name))
		if err != nil {
			return nil, err
		}
		defs = append(defs, loaded...)
	}

	return New(defs...)
}
