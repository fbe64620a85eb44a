package openapi

import (
	"strings"

	"github.com/oasgen/oasgen/internal/diagnostic"
	"github.com/oasgen/oasgen/internal/typedef"
	"github.com/oasgen/oasgen/internal/typedesc"
)

// buildEnum synthesizes the schema body for an enum definition: a plain
// string enum when every variant is unit-like, a oneOf union otherwise,
// with discriminator metadata when internal tagging is requested.
func (g *SchemaGenerator) buildEnum(def *typedef.Definition, params map[string]*typedesc.TypeDescriptor) (*Schema, error) {
	if tag := strings.TrimSpace(def.Attrs.Tag); tag != "" {
		return g.buildTaggedEnum(def, params, tag)
	}
	if def.Attrs.Tag != "" {
		return nil, diagnostic.Errorf(diagnostic.CategoryDiscriminatorInvalid, def.Pos,
			"enum %q requests tagging with a blank tag property name", def.Name)
	}

	allUnit := true
	for i := range def.Variants {
		if !def.Variants[i].IsUnit() {
			allUnit = false
			break
		}
	}
	if allUnit && len(def.Variants) > 0 {
		values := make([]any, 0, len(def.Variants))
		for i := range def.Variants {
			values = append(values, g.tagValue(def, &def.Variants[i]))
		}
		return &Schema{Type: "string", Enum: values}, nil
	}

	// oneOf entries follow declaration order of variants, unconditionally.
	oneOf := make([]*Schema, 0, len(def.Variants))
	for i := range def.Variants {
		v := &def.Variants[i]
		s, err := g.variantSchema(def, v, params)
		if err != nil {
			return nil, err
		}
		oneOf = append(oneOf, s)
	}
	return &Schema{OneOf: oneOf}, nil
}

// variantSchema synthesizes one untagged variant.
func (g *SchemaGenerator) variantSchema(def *typedef.Definition, v *typedef.Variant, params map[string]*typedesc.TypeDescriptor) (*Schema, error) {
	value := g.tagValue(def, v)
	pos := v.Pos
	if pos.IsZero() {
		pos = def.Pos
	}

	var s *Schema
	switch {
	case v.IsUnit():
		s = &Schema{Type: "string", Enum: []any{value}}

	case len(v.Types) == 1:
		td, err := g.variantPayload(v.Types[0], pos, params)
		if err != nil {
			return nil, err
		}
		s, err = g.synthesize(td, nil)
		if err != nil {
			return nil, err
		}

	case len(v.Types) > 1:
		items := make([]*Schema, 0, len(v.Types))
		for _, expr := range v.Types {
			td, err := g.variantPayload(expr, pos, params)
			if err != nil {
				return nil, err
			}
			elem, err := g.synthesize(td, nil)
			if err != nil {
				return nil, err
			}
			items = append(items, elem)
		}
		n := len(items)
		s = &Schema{Type: "array", PrefixItems: items, MinItems: &n, MaxItems: &n}

	default:
		// struct variant: a nested object keyed by the variant identifier
		fields, err := g.variantFields(def, v, params)
		if err != nil {
			return nil, err
		}
		props := NewSchemaMap()
		props.Set(value, fields)
		s = &Schema{Type: "object", Properties: props, Required: []string{value}}
	}

	if v.Attrs.Description != "" && !s.IsRef() {
		s.Description = v.Attrs.Description
	}
	if v.Attrs.Deprecated && !s.IsRef() {
		s.Deprecated = true
	}
	return s, nil
}

// buildTaggedEnum synthesizes the internally tagged representation. Only
// variants that directly reference a standalone object type populate
// discriminator.mapping; inline variants get the tag property injected
// into their own properties instead.
func (g *SchemaGenerator) buildTaggedEnum(def *typedef.Definition, params map[string]*typedesc.TypeDescriptor, tag string) (*Schema, error) {
	oneOf := make([]*Schema, 0, len(def.Variants))
	mapping := make(map[string]string)

	for i := range def.Variants {
		v := &def.Variants[i]
		value := g.tagValue(def, v)
		pos := v.Pos
		if pos.IsZero() {
			pos = def.Pos
		}

		switch {
		case len(v.Types) == 1:
			td, err := g.variantPayload(v.Types[0], pos, params)
			if err != nil {
				return nil, err
			}
			s, err := g.synthesize(td, nil)
			if err != nil {
				return nil, err
			}
			if !s.IsRef() {
				return nil, diagnostic.Errorf(diagnostic.CategoryDiscriminatorInvalid, pos,
					"variant %q of enum %q does not reference an object type", v.Name, def.Name).
					WithHint("internal tagging requires newtype variants referencing standalone object types")
			}
			// The tag property lives inside the referenced schema; the
			// oneOf entry stays a bare reference.
			oneOf = append(oneOf, s)
			mapping[value] = s.Ref

		case len(v.Types) > 1:
			return nil, diagnostic.Errorf(diagnostic.CategoryDiscriminatorInvalid, pos,
				"tuple variant %q of enum %q has %d fields; tagged enums support at most one", v.Name, def.Name, len(v.Types))

		case len(v.Fields) > 0:
			fields, err := g.variantFields(def, v, params)
			if err != nil {
				return nil, err
			}
			if fields.Properties.Has(tag) {
				return nil, diagnostic.Errorf(diagnostic.CategoryDiscriminatorInvalid, pos,
					"variant %q of enum %q already declares a property named %q", v.Name, def.Name, tag)
			}
			// Inject the tag first so it leads properties and required.
			props := NewSchemaMap()
			props.Set(tag, &Schema{Type: "string", Enum: []any{value}})
			for _, k := range fields.Properties.Keys() {
				fs, _ := fields.Properties.Get(k)
				props.Set(k, fs)
			}
			s := &Schema{
				Type:       "object",
				Properties: props,
				Required:   append([]string{tag}, fields.Required...),
			}
			if v.Attrs.Description != "" {
				s.Description = v.Attrs.Description
			}
			oneOf = append(oneOf, s)

		default:
			// unit variant: an object carrying only the tag
			props := NewSchemaMap()
			props.Set(tag, &Schema{Type: "string", Enum: []any{value}})
			oneOf = append(oneOf, &Schema{Type: "object", Properties: props, Required: []string{tag}})
		}
	}

	s := &Schema{OneOf: oneOf, Discriminator: &Discriminator{PropertyName: tag}}
	if len(mapping) > 0 {
		s.Discriminator.Mapping = mapping
	}
	return s, nil
}

// variantPayload parses and instantiates one variant payload expression.
func (g *SchemaGenerator) variantPayload(expr string, pos diagnostic.Pos, params map[string]*typedesc.TypeDescriptor) (*typedesc.TypeDescriptor, error) {
	td, err := g.norm.Parse(expr, pos)
	if err != nil {
		return nil, err
	}
	return td.Substitute(params), nil
}

// variantFields builds the inline object for a struct variant's named
// fields. Container rename_all applies to variant names, not their
// fields, so only per-field renames are honored here.
func (g *SchemaGenerator) variantFields(def *typedef.Definition, v *typedef.Variant, params map[string]*typedesc.TypeDescriptor) (*Schema, error) {
	s := &Schema{Type: "object", Properties: NewSchemaMap()}
	for i := range v.Fields {
		f := &v.Fields[i]
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
		}
		s.Properties.Set(name, ps)

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

// tagValue resolves the serialized tag value for a variant: an explicit
// rename wins, then the container's rename_all rule, then the raw name.
func (g *SchemaGenerator) tagValue(def *typedef.Definition, v *typedef.Variant) string {
	if v.Attrs.Rename != "" {
		return v.Attrs.Rename
	}
	return RenameRule(def.Attrs.RenameAll).Apply(v.Name)
}
