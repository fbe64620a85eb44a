// Package typedef models the structured artifact handed over by the
// attribute-parsing front end: type definitions (structs and enums) with
// their attribute overrides, plus the top-level schemas and operations a
// document should expose.
package typedef

import (
	json "github.com/goccy/go-json"

	"github.com/oasgen/oasgen/internal/diagnostic"
)

// DefKind distinguishes struct definitions from enum definitions.
type DefKind string

const (
	DefStruct DefKind = "struct"
	DefEnum   DefKind = "enum"
)

// Definition describes one user-defined type. Generic definitions carry
// type parameter names which instantiation binds to concrete descriptors.
type Definition struct {
	Name       string         `json:"name" yaml:"name"`
	Kind       DefKind        `json:"kind" yaml:"kind"`
	TypeParams []string       `json:"typeParams,omitempty" yaml:"typeParams,omitempty"`
	Fields     []Field        `json:"fields,omitempty" yaml:"fields,omitempty"`
	Variants   []Variant      `json:"variants,omitempty" yaml:"variants,omitempty"`
	Attrs      ContainerAttrs `json:"attrs,omitempty" yaml:"attrs,omitempty"`
	Pos        diagnostic.Pos `json:"pos,omitempty" yaml:"pos,omitempty"`
}

// ContainerAttrs holds attribute overrides declared on a type.
type ContainerAttrs struct {
	Description string `json:"description,omitempty" yaml:"description,omitempty"`
	Deprecated  bool   `json:"deprecated,omitempty" yaml:"deprecated,omitempty"`
	// RenameAll applies a casing rule to all field or variant names.
	RenameAll string `json:"renameAll,omitempty" yaml:"renameAll,omitempty"`
	// Rename overrides the component base name.
	Rename string `json:"rename,omitempty" yaml:"rename,omitempty"`
	// Tag requests internal tagging for enums: the named property carries
	// the variant tag.
	Tag string `json:"tag,omitempty" yaml:"tag,omitempty"`
}

// Field describes a struct field or a named field of a struct variant.
type Field struct {
	Name  string         `json:"name" yaml:"name"`
	Type  string         `json:"type" yaml:"type"` // type expression
	Attrs FieldAttrs     `json:"attrs,omitempty" yaml:"attrs,omitempty"`
	Pos   diagnostic.Pos `json:"pos,omitempty" yaml:"pos,omitempty"`
}

// FieldAttrs holds attribute overrides declared on a field. Each is
// independently optional; absence means the structurally derived value is
// used. Overrides decorate metadata only, except ValueType and SchemaWith
// which replace the computed schema wholesale.
type FieldAttrs struct {
	Example     any    `json:"example,omitempty" yaml:"example,omitempty"`
	Default     any    `json:"default,omitempty" yaml:"default,omitempty"`
	Description string `json:"description,omitempty" yaml:"description,omitempty"`
	Deprecated  bool   `json:"deprecated,omitempty" yaml:"deprecated,omitempty"`
	Rename      string `json:"rename,omitempty" yaml:"rename,omitempty"`
	Required    *bool  `json:"required,omitempty" yaml:"required,omitempty"`
	Inline      bool   `json:"inline,omitempty" yaml:"inline,omitempty"`
	Format      string `json:"format,omitempty" yaml:"format,omitempty"`
	// ValueType substitutes another type expression for the declared one.
	ValueType string `json:"valueType,omitempty" yaml:"valueType,omitempty"`
	// SchemaWith substitutes a fully custom schema object, verbatim.
	SchemaWith json.RawMessage `json:"schemaWith,omitempty" yaml:"schemaWith,omitempty"`
	// Extensions are spliced into the emitted schema as x-... properties.
	Extensions map[string]any `json:"extensions,omitempty" yaml:"extensions,omitempty"`
}

// Variant describes one enum variant. A variant with neither Types nor
// Fields is unit-like; one entry in Types is a newtype variant; multiple
// entries form a tuple variant; Fields form a struct variant.
type Variant struct {
	Name   string         `json:"name" yaml:"name"`
	Types  []string       `json:"types,omitempty" yaml:"types,omitempty"`
	Fields []Field        `json:"fields,omitempty" yaml:"fields,omitempty"`
	Attrs  VariantAttrs   `json:"attrs,omitempty" yaml:"attrs,omitempty"`
	Pos    diagnostic.Pos `json:"pos,omitempty" yaml:"pos,omitempty"`
}

// VariantAttrs holds attribute overrides declared on an enum variant.
type VariantAttrs struct {
	Rename      string `json:"rename,omitempty" yaml:"rename,omitempty"`
	Description string `json:"description,omitempty" yaml:"description,omitempty"`
	Deprecated  bool   `json:"deprecated,omitempty" yaml:"deprecated,omitempty"`
}

// IsUnit reports whether the variant carries no payload.
func (v *Variant) IsUnit() bool {
	return len(v.Types) == 0 && len(v.Fields) == 0
}

// Set is an immutable lookup of definitions by name.
type Set struct {
	byName map[string]*Definition
}

// NewSet indexes definitions by name. Duplicate names are rejected.
func NewSet(defs []Definition) (*Set, error) {
	s := &Set{byName: make(map[string]*Definition, len(defs))}
	for i := range defs {
		def := &defs[i]
		if prev, ok := s.byName[def.Name]; ok {
			return nil, diagnostic.Errorf(diagnostic.CategoryConfigInvalid, def.Pos,
				"type %q defined twice (previous definition at %s)", def.Name, prev.Pos)
		}
		s.byName[def.Name] = def
	}
	return s, nil
}

// Lookup returns the definition for a type name.
func (s *Set) Lookup(name string) (*Definition, bool) {
	if s == nil {
		return nil, false
	}
	def, ok := s.byName[name]
	return def, ok
}
