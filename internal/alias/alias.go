// Package alias provides the build-time type alias table. The table is
// loaded once from an external configuration artifact before any
// normalization begins and is read-only afterwards, so lookups are safe
// from any call order.
package alias

import (
	"fmt"
	"os"
	"path/filepath"

	json "github.com/goccy/go-json"
	"gopkg.in/yaml.v3"
)

// Table maps alias identifiers to replacement type expressions.
type Table struct {
	aliases map[string]string
}

// NewTable builds a table from an explicit alias map. The map is copied;
// the table never changes after construction.
func NewTable(aliases map[string]string) *Table {
	m := make(map[string]string, len(aliases))
	for k, v := range aliases {
		m[k] = v
	}
	return &Table{aliases: m}
}

// Empty returns a table with no aliases.
func Empty() *Table {
	return &Table{aliases: map[string]string{}}
}

// Resolve looks up a replacement type expression for the identifier.
// Lookups are exact key matches only.
func (t *Table) Resolve(identifier string) (string, bool) {
	if t == nil {
		return "", false
	}
	expr, ok := t.aliases[identifier]
	return expr, ok
}

// Len returns the number of aliases in the table.
func (t *Table) Len() int {
	if t == nil {
		return 0
	}
	return len(t.aliases)
}

// artifact is the serialized form of the alias configuration. Both the
// bare map form {"MyType": "bool"} and the wrapped form
// {"aliases": {"MyType": "bool"}} are accepted.
type artifact struct {
	Aliases map[string]string `json:"aliases" yaml:"aliases"`
}

// Load reads an alias configuration artifact from path. A missing file is
// not an error: it yields an empty table. The format is chosen by file
// extension (.yaml/.yml for YAML, anything else is JSON).
func Load(path string) (*Table, error) {
	if path == "" {
		return Empty(), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Empty(), nil
		}
		return nil, fmt.Errorf("failed to read alias config %q: %w", path, err)
	}

	ext := filepath.Ext(path)
	if ext == ".yaml" || ext == ".yml" {
		return parseYAML(path, data)
	}
	return parseJSON(path, data)
}

func parseJSON(path string, data []byte) (*Table, error) {
	var wrapped artifact
	if err := json.Unmarshal(data, &wrapped); err == nil && wrapped.Aliases != nil {
		return NewTable(wrapped.Aliases), nil
	}
	var bare map[string]string
	if err := json.Unmarshal(data, &bare); err != nil {
		return nil, fmt.Errorf("failed to parse alias config %q: %w", path, err)
	}
	return NewTable(bare), nil
}

func parseYAML(path string, data []byte) (*Table, error) {
	var wrapped artifact
	if err := yaml.Unmarshal(data, &wrapped); err == nil && wrapped.Aliases != nil {
		return NewTable(wrapped.Aliases), nil
	}
	var bare map[string]string
	if err := yaml.Unmarshal(data, &bare); err != nil {
		return nil, fmt.Errorf("failed to parse alias config %q: %w", path, err)
	}
	return NewTable(bare), nil
}
