package openapi

import (
	"strings"

	"github.com/oasgen/oasgen/internal/diagnostic"
	"github.com/oasgen/oasgen/internal/typedef"
	"github.com/oasgen/oasgen/internal/typedesc"
)

// Options configures a generation run. The nullable representation is a
// build-wide switch derived from the target spec version, never a
// per-schema choice.
type Options struct {
	// SpecVersion selects the target OpenAPI version. 3.1 (the default)
	// represents nullability by adding a null type alternative; 3.0 uses
	// the nullable flag.
	SpecVersion string
}

// specVersionOrDefault returns the configured version or the default.
func (o Options) specVersionOrDefault() string {
	if o.SpecVersion == "" {
		return "3.1.0"
	}
	return o.SpecVersion
}

func (o Options) nullableFlag() bool {
	return strings.HasPrefix(o.specVersionOrDefault(), "3.0")
}

// SchemaGenerator converts type descriptors into schemas, interning every
// named object type into its component registry. Each generation run owns
// one SchemaGenerator; registries are never shared across runs.
type SchemaGenerator struct {
	defs         *typedef.Set
	norm         *typedesc.Normalizer
	nullableFlag bool

	// schemas is the component registry: canonical name → schema,
	// insertion ordered. A name is reserved with a nil schema while its
	// body is being synthesized so self-references resolve to a $ref.
	schemas *SchemaMap
	// keys records the instantiation key that produced each canonical
	// name, to detect collisions between structurally different types.
	keys map[string]instKey
}

// NewSchemaGenerator creates a schema generator over the given definition
// set and normalizer, with a fresh component registry.
func NewSchemaGenerator(defs *typedef.Set, norm *typedesc.Normalizer, opts Options) *SchemaGenerator {
	return &SchemaGenerator{
		defs:         defs,
		norm:         norm,
		nullableFlag: opts.nullableFlag(),
		schemas:      NewSchemaMap(),
		keys:         make(map[string]instKey),
	}
}

// Schemas returns the component registry.
func (g *SchemaGenerator) Schemas() *SchemaMap {
	return g.schemas
}

// Resolve parses, normalizes and synthesizes a type expression, interning
// any named object types it mentions.
func (g *SchemaGenerator) Resolve(expr string, pos diagnostic.Pos) (*Schema, error) {
	td, err := g.norm.Parse(expr, pos)
	if err != nil {
		return nil, err
	}
	return g.ResolveDescriptor(td)
}

// ResolveDescriptor synthesizes the schema for an already-normalized
// descriptor.
func (g *SchemaGenerator) ResolveDescriptor(td *typedesc.TypeDescriptor) (*Schema, error) {
	return g.synthesize(td, nil)
}

// synthesize produces the schema for a descriptor and applies attribute
// overrides as a final, non-recursive decoration pass. Overrides never
// change the structural kind, except the explicit substitution SchemaWith
// which replaces the computed schema wholesale. A ValueType override is
// applied by the caller via effectiveDescriptor before synthesis, so that
// requiredness follows the override too.
func (g *SchemaGenerator) synthesize(td *typedesc.TypeDescriptor, attrs *typedef.FieldAttrs) (*Schema, error) {
	inline := false
	if attrs != nil {
		if len(attrs.SchemaWith) > 0 {
			return RawSchema(attrs.SchemaWith), nil
		}
		inline = attrs.Inline
	}

	s, err := g.structural(td, inline)
	if err != nil {
		return nil, err
	}
	if attrs != nil {
		s = decorate(s, attrs)
	}
	return s, nil
}

// structural derives the schema shape from the descriptor alone.
func (g *SchemaGenerator) structural(td *typedesc.TypeDescriptor, inline bool) (*Schema, error) {
	if td.IsWrapper() {
		return g.structuralWrapper(td, inline)
	}

	switch td.Kind {
	case typedesc.KindPrimitive:
		p, ok := typedesc.LookupPrimitive(td.Name, g.norm.TimeTypes())
		if !ok {
			return nil, diagnostic.Errorf(diagnostic.CategoryUnresolvedIdentifier, td.Pos,
				"%q is not a known primitive type", td.Name)
		}
		return &Schema{Type: p.Type, Format: p.Format}, nil

	case typedesc.KindTuple:
		if td.IsUnit() {
			// the unit type is the explicit empty schema sentinel
			return &Schema{}, nil
		}
		items := make([]*Schema, 0, len(td.Elems))
		for _, elem := range td.Elems {
			s, err := g.structural(elem, false)
			if err != nil {
				return nil, err
			}
			items = append(items, s)
		}
		n := len(items)
		return &Schema{Type: "array", PrefixItems: items, MinItems: &n, MaxItems: &n}, nil

	case typedesc.KindObject:
		if inline {
			return g.inlineObject(td)
		}
		return g.intern(td)

	default:
		return &Schema{}, nil
	}
}

func (g *SchemaGenerator) structuralWrapper(td *typedesc.TypeDescriptor, inline bool) (*Schema, error) {
	if td.Wrapper.Transparent() {
		// Box, Cow and RefCell are ownership wrappers with no
		// schema-visible effect.
		return g.structural(td.Child, inline)
	}

	switch td.Wrapper {
	case typedesc.WrapperOption:
		s, err := g.structural(td.Child, inline)
		if err != nil {
			return nil, err
		}
		return g.wrapNullable(s), nil

	case typedesc.WrapperVec:
		// Byte slices serialize as base64-ish strings, not integer arrays.
		if td.Child.IsBytePrimitive() {
			return &Schema{Type: "string", Format: "binary"}, nil
		}
		items, err := g.structural(td.Child, inline)
		if err != nil {
			return nil, err
		}
		return &Schema{Type: "array", Items: items}, nil

	case typedesc.WrapperMap:
		// The key type is assumed string-like and is not schematized.
		value, err := g.structural(td.Child, inline)
		if err != nil {
			return nil, err
		}
		return &Schema{
			Type:                 "object",
			AdditionalProperties: &SchemaOrBool{Schema: value},
		}, nil

	default:
		return nil, diagnostic.Errorf(diagnostic.CategoryGenericArity, td.Pos,
			"unsupported wrapper %q", td.Wrapper)
	}
}

// wrapNullable marks a schema nullable according to the configured
// representation switch.
func (g *SchemaGenerator) wrapNullable(s *Schema) *Schema {
	if g.nullableFlag {
		if s.IsRef() {
			return &Schema{AllOf: []*Schema{s}, Nullable: true}
		}
		s.Nullable = true
		return s
	}
	if len(s.AnyOf) == 0 && s.Type == "" && s.Ref == "" && s.Properties == nil &&
		s.Items == nil && len(s.OneOf) == 0 && len(s.AllOf) == 0 && s.Enum == nil {
		// nullable empty schema stays empty
		return s
	}
	return &Schema{AnyOf: []*Schema{s, {Type: "null"}}}
}

// decorate applies metadata overrides to an already-shaped schema. A bare
// reference is wrapped in allOf first, since sibling keys next to $ref are
// ignored by consumers.
func decorate(s *Schema, attrs *typedef.FieldAttrs) *Schema {
	hasMeta := attrs.Description != "" || attrs.Deprecated || attrs.Example != nil ||
		attrs.Default != nil || attrs.Format != "" || len(attrs.Extensions) > 0
	if !hasMeta {
		return s
	}
	if s.IsRef() {
		s = &Schema{AllOf: []*Schema{{Ref: s.Ref}}}
	}
	if attrs.Description != "" {
		s.Description = attrs.Description
	}
	if attrs.Deprecated {
		s.Deprecated = true
	}
	if attrs.Example != nil {
		s.Example = attrs.Example
	}
	if attrs.Default != nil {
		s.Default = attrs.Default
	}
	if attrs.Format != "" {
		s.Format = attrs.Format
	}
	if len(attrs.Extensions) > 0 {
		if s.Extensions == nil {
			s.Extensions = make(map[string]any, len(attrs.Extensions))
		}
		for k, v := range attrs.Extensions {
			s.Extensions[k] = v
		}
	}
	return s
}

// effectiveDescriptor resolves the descriptor a field actually uses: the
// value_type override when declared, the declared descriptor otherwise.
// Everything derived from the field type, requiredness included, follows
// the override.
func (g *SchemaGenerator) effectiveDescriptor(td *typedesc.TypeDescriptor, attrs *typedef.FieldAttrs, params map[string]*typedesc.TypeDescriptor) (*typedesc.TypeDescriptor, error) {
	if attrs == nil || attrs.ValueType == "" {
		return td, nil
	}
	sub, err := g.norm.Parse(attrs.ValueType, td.Pos)
	if err != nil {
		return nil, err
	}
	return sub.Substitute(params), nil
}

// buildStruct synthesizes the object body for a struct definition with
// the given type parameter bindings.
func (g *SchemaGenerator) buildStruct(def *typedef.Definition, params map[string]*typedesc.TypeDescriptor) (*Schema, error) {
	s := &Schema{Type: "object"}
	if len(def.Fields) == 0 {
		return s, nil
	}

	rule := RenameRule(def.Attrs.RenameAll)
	s.Properties = NewSchemaMap()
	for i := range def.Fields {
		f := &def.Fields[i]
		pos := f.Pos
		if pos.IsZero() {
			pos = def.Pos
		}

		td, err := g.norm.Parse(f.Type, pos)
		if err != nil {
			return nil, err
		}
		td = td.Substitute(params)
		td, err = g.effectiveDescriptor(td, &f.Attrs, params)
		if err != nil {
			return nil, err
		}

		ps, err := g.synthesize(td, &f.Attrs)
		if err != nil {
			return nil, err
		}

		name := f.Name
		if f.Attrs.Rename != "" {
			name = f.Attrs.Rename
		} else {
			name = rule.Apply(name)
		}
		s.Properties.Set(name, ps)

		// Option fields are not required unless overridden.
		required := td.Wrapper != typedesc.WrapperOption
		if f.Attrs.Required != nil {
			required = *f.Attrs.Required
		}
		if required {
			s.Required = append(s.Required, name)
		}
	}
	return s, nil
}

// inlineObject expands an object's body in place without registering a
// named component.
func (g *SchemaGenerator) inlineObject(td *typedesc.TypeDescriptor) (*Schema, error) {
	def, params, err := g.definitionFor(td)
	if err != nil {
		return nil, err
	}
	return g.buildBody(def, params)
}

// definitionFor looks up the definition behind an object descriptor and
// binds its type parameters to the descriptor's arguments.
func (g *SchemaGenerator) definitionFor(td *typedesc.TypeDescriptor) (*typedef.Definition, map[string]*typedesc.TypeDescriptor, error) {
	def, ok := g.defs.Lookup(td.Name)
	if !ok {
		return nil, nil, diagnostic.Errorf(diagnostic.CategoryUnresolvedIdentifier, td.Pos,
			"cannot resolve type %q", td.Name).
			WithHint("declare the type in the manifest, add an alias for it, or check the spelling")
	}
	if len(td.Args) != len(def.TypeParams) {
		return nil, nil, diagnostic.Errorf(diagnostic.CategoryGenericArity, td.Pos,
			"type %q expects %d type parameter(s), got %d", def.Name, len(def.TypeParams), len(td.Args))
	}
	var params map[string]*typedesc.TypeDescriptor
	if len(def.TypeParams) > 0 {
		params = make(map[string]*typedesc.TypeDescriptor, len(def.TypeParams))
		for i, p := range def.TypeParams {
			params[p] = td.Args[i]
		}
	}
	return def, params, nil
}

// buildBody synthesizes the full schema body for a definition: struct
// fields or enum variants, plus container-level attribute metadata.
func (g *SchemaGenerator) buildBody(def *typedef.Definition, params map[string]*typedesc.TypeDescriptor) (*Schema, error) {
	var (
		body *Schema
		err  error
	)
	switch def.Kind {
	case typedef.DefEnum:
		body, err = g.buildEnum(def, params)
	default:
		body, err = g.buildStruct(def, params)
	}
	if err != nil {
		return nil, err
	}
	if def.Attrs.Description != "" {
		body.Description = def.Attrs.Description
	}
	if def.Attrs.Deprecated {
		body.Deprecated = true
	}
	return body, nil
}
