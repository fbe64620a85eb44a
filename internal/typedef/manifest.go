package typedef

import (
	"fmt"
	"os"
	"path/filepath"

	json "github.com/goccy/go-json"
	"gopkg.in/yaml.v3"

	"github.com/oasgen/oasgen/internal/diagnostic"
)

// Manifest is the full front-end artifact: every type definition plus the
// top-level schemas and operations one document build should resolve.
type Manifest struct {
	Definitions []Definition `json:"definitions" yaml:"definitions"`
	// Schemas lists top-level type expressions whose components the
	// document must contain even when no operation references them.
	Schemas    []string    `json:"schemas,omitempty" yaml:"schemas,omitempty"`
	Operations []Operation `json:"operations,omitempty" yaml:"operations,omitempty"`
}

// Operation describes one resolved path/operation whose request, parameter
// and response types need schemas. Routing itself is out of scope; the
// path and method are carried through to the emitted document verbatim.
type Operation struct {
	Method      string         `json:"method" yaml:"method"`
	Path        string         `json:"path" yaml:"path"`
	OperationID string         `json:"operationId,omitempty" yaml:"operationId,omitempty"`
	Summary     string         `json:"summary,omitempty" yaml:"summary,omitempty"`
	Description string         `json:"description,omitempty" yaml:"description,omitempty"`
	Tags        []string       `json:"tags,omitempty" yaml:"tags,omitempty"`
	Deprecated  bool           `json:"deprecated,omitempty" yaml:"deprecated,omitempty"`
	Request     *Payload       `json:"request,omitempty" yaml:"request,omitempty"`
	Parameters  []Parameter    `json:"parameters,omitempty" yaml:"parameters,omitempty"`
	Responses   []Response     `json:"responses,omitempty" yaml:"responses,omitempty"`
	Pos         diagnostic.Pos `json:"pos,omitempty" yaml:"pos,omitempty"`
}

// Payload is a request body: a type expression plus content type.
type Payload struct {
	Type        string `json:"type" yaml:"type"`
	ContentType string `json:"contentType,omitempty" yaml:"contentType,omitempty"`
	Required    bool   `json:"required,omitempty" yaml:"required,omitempty"`
	Description string `json:"description,omitempty" yaml:"description,omitempty"`
}

// Parameter is a query, path or header parameter.
type Parameter struct {
	Name        string `json:"name" yaml:"name"`
	In          string `json:"in" yaml:"in"` // "query", "path", "header"
	Type        string `json:"type" yaml:"type"`
	Required    bool   `json:"required,omitempty" yaml:"required,omitempty"`
	Description string `json:"description,omitempty" yaml:"description,omitempty"`
}

// Response binds a status code to a response type expression. An empty
// type expression means a bodyless response.
type Response struct {
	Status      int    `json:"status" yaml:"status"`
	Type        string `json:"type,omitempty" yaml:"type,omitempty"`
	ContentType string `json:"contentType,omitempty" yaml:"contentType,omitempty"`
	Description string `json:"description,omitempty" yaml:"description,omitempty"`
}

// Load reads a manifest from path. The format is chosen by file extension
// (.yaml/.yml for YAML, anything else is JSON).
func Load(path string) (*Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read manifest %q: %w", path, err)
	}

	var m Manifest
	ext := filepath.Ext(path)
	if ext == ".yaml" || ext == ".yml" {
		err = yaml.Unmarshal(data, &m)
	} else {
		err = json.Unmarshal(data, &m)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to parse manifest %q: %w", path, err)
	}

	// Definitions without explicit positions at least name the file.
	for i := range m.Definitions {
		if m.Definitions[i].Pos.IsZero() {
			m.Definitions[i].Pos = diagnostic.Pos{File: path}
		}
	}
	return &m, nil
}
