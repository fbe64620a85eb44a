// Package openapi synthesizes OpenAPI schema documents from normalized
// type descriptors. Named object types are interned into an insertion-
// ordered component registry and referenced via $ref; generation within
// one registry is single-pass, synchronous and deterministic.
package openapi

import (
	"sort"

	json "github.com/goccy/go-json"
)

// componentRefPrefix is the fixed pointer prefix for component references.
const componentRefPrefix = "#/components/schemas/"

// ComponentRef builds the reference pointer string for a canonical
// component name.
func ComponentRef(name string) string {
	return componentRefPrefix + name
}

// SchemaOrBool represents a value that can be either a Schema object or a
// boolean. additionalProperties can be either a schema or false.
type SchemaOrBool struct {
	Schema *Schema
	Bool   *bool
}

// MarshalJSON implements json.Marshaler.
func (s SchemaOrBool) MarshalJSON() ([]byte, error) {
	if s.Bool != nil {
		return json.Marshal(*s.Bool)
	}
	if s.Schema != nil {
		return json.Marshal(s.Schema)
	}
	return []byte("{}"), nil
}

// Schema represents one emitted schema unit: object, array, reference,
// primitive or oneOf union. Once emitted a schema is immutable; it is
// owned by whichever structure references it.
type Schema struct {
	Type          string         `json:"type,omitempty"`
	Format        string         `json:"format,omitempty"`
	Properties    *SchemaMap     `json:"properties,omitempty"`
	Required      []string       `json:"required,omitempty"`
	Items         *Schema        `json:"items,omitempty"`
	PrefixItems   []*Schema      `json:"prefixItems,omitempty"`
	MinItems      *int           `json:"minItems,omitempty"`
	MaxItems      *int           `json:"maxItems,omitempty"`
	Enum          []any          `json:"enum,omitempty"`
	Const         any            `json:"const,omitempty"`
	OneOf         []*Schema      `json:"oneOf,omitempty"`
	AnyOf         []*Schema      `json:"anyOf,omitempty"`
	AllOf         []*Schema      `json:"allOf,omitempty"`
	Ref           string         `json:"$ref,omitempty"`
	Description   string         `json:"description,omitempty"`
	Deprecated    bool           `json:"deprecated,omitempty"`
	Nullable      bool           `json:"nullable,omitempty"` // only set in 3.0 flag mode
	Discriminator *Discriminator `json:"discriminator,omitempty"`

	AdditionalProperties *SchemaOrBool `json:"additionalProperties,omitempty"`

	Default any `json:"default,omitempty"`
	Example any `json:"example,omitempty"`

	// Extensions holds x-... properties spliced into the marshaled object
	// in sorted key order.
	Extensions map[string]any `json:"-"`

	// raw, when set, replaces the whole marshaled schema (schema_with
	// substitution). Never combined with the fields above.
	raw json.RawMessage
}

// RawSchema wraps a verbatim JSON schema object so it is emitted unchanged.
func RawSchema(data json.RawMessage) *Schema {
	return &Schema{raw: data}
}

// IsRef reports whether the schema is a bare component reference.
func (s *Schema) IsRef() bool {
	return s != nil && s.Ref != ""
}

// MarshalJSON implements json.Marshaler. It emits the raw substitution
// verbatim when present, and splices extension properties before the
// closing brace otherwise.
func (s *Schema) MarshalJSON() ([]byte, error) {
	if s.raw != nil {
		return s.raw, nil
	}

	type schemaAlias Schema
	b, err := json.Marshal((*schemaAlias)(s))
	if err != nil {
		return nil, err
	}
	if len(s.Extensions) == 0 {
		return b, nil
	}

	keys := make([]string, 0, len(s.Extensions))
	for k := range s.Extensions {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	out := b[:len(b)-1] // drop closing brace
	for _, k := range keys {
		kb, err := json.Marshal(k)
		if err != nil {
			return nil, err
		}
		vb, err := json.Marshal(s.Extensions[k])
		if err != nil {
			return nil, err
		}
		if len(out) > 1 {
			out = append(out, ',')
		}
		out = append(out, kb...)
		out = append(out, ':')
		out = append(out, vb...)
	}
	return append(out, '}'), nil
}

// Discriminator identifies which property carries a tagged union's variant
// tag and how tag values map to component references.
type Discriminator struct {
	PropertyName string            `json:"propertyName"`
	Mapping      map[string]string `json:"mapping,omitempty"`
}

// SchemaMap is a name → schema mapping that preserves insertion order in
// its marshaled form, keeping output deterministic and diff-stable. It
// backs both object property maps and the component registry.
type SchemaMap struct {
	keys []string
	m    map[string]*Schema
}

// NewSchemaMap creates an empty ordered schema map.
func NewSchemaMap() *SchemaMap {
	return &SchemaMap{m: make(map[string]*Schema)}
}

// Set stores a schema under name. The name keeps its original position if
// it was already present.
func (sm *SchemaMap) Set(name string, s *Schema) {
	if _, ok := sm.m[name]; !ok {
		sm.keys = append(sm.keys, name)
	}
	sm.m[name] = s
}

// Get returns the schema stored under name.
func (sm *SchemaMap) Get(name string) (*Schema, bool) {
	if sm == nil {
		return nil, false
	}
	s, ok := sm.m[name]
	return s, ok
}

// Has reports whether name is present.
func (sm *SchemaMap) Has(name string) bool {
	if sm == nil {
		return false
	}
	_, ok := sm.m[name]
	return ok
}

// Len returns the number of entries.
func (sm *SchemaMap) Len() int {
	if sm == nil {
		return 0
	}
	return len(sm.keys)
}

// Keys returns the names in insertion order. The returned slice is shared;
// callers must not modify it.
func (sm *SchemaMap) Keys() []string {
	if sm == nil {
		return nil
	}
	return sm.keys
}

// MarshalJSON emits the entries as a JSON object in insertion order.
// Reserved entries with a nil schema marshal as {}.
func (sm *SchemaMap) MarshalJSON() ([]byte, error) {
	out := []byte{'{'}
	for i, k := range sm.keys {
		if i > 0 {
			out = append(out, ',')
		}
		kb, err := json.Marshal(k)
		if err != nil {
			return nil, err
		}
		out = append(out, kb...)
		out = append(out, ':')
		v := sm.m[k]
		if v == nil {
			out = append(out, '{', '}')
			continue
		}
		vb, err := json.Marshal(v)
		if err != nil {
			return nil, err
		}
		out = append(out, vb...)
	}
	return append(out, '}'), nil
}
