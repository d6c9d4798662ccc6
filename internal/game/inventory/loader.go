package inventory

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

type validator interface {
	Validate() error
}

// loadDir reads every *.yaml and *.yml file in dir as one T, validating each.
//
// Precondition: dir is a readable directory path.
// Postcondition: returns a non-nil slice of valid records or the first error encountered.
func loadDir[T any, PT interface {
	*T
	validator
}](dir, op string) ([]*T, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("%s: cannot read directory %q: %w", op, dir, err)
	}
	out := []*T{}
	for _, entry := range entries {
		ext := filepath.Ext(entry.Name())
		if entry.IsDir() || (ext != ".yaml" && ext != ".yml") {
			continue
		}
		path := filepath.Join(dir, entry.Name())
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("%s: cannot read file %q: %w", op, path, err)
		}
		rec := new(T)
		if err := yaml.Unmarshal(data, rec); err != nil {
			return nil, fmt.Errorf("%s: cannot parse file %q: %w", op, path, err)
		}
		if err := PT(rec).Validate(); err != nil {
			return nil, fmt.Errorf("%s: invalid record in %q: %w", op, path, err)
		}
		out = append(out, rec)
	}
	return out, nil
}
