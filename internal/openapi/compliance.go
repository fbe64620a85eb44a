package openapi

import (
	"fmt"
	"strings"
)

// ValidationError represents a document compliance error.
type ValidationError struct {
	Path    string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Path, e.Message)
}

// ValidateDocument checks a generated document for structural compliance:
// reference targets exist, discriminator mappings point at registered
// components, required properties are declared, paths are well formed.
// Returns a list of validation errors, or nil if the document is valid.
func ValidateDocument(doc *Document) []ValidationError {
	var errs []ValidationError

	if doc.OpenAPI == "" {
		errs = append(errs, ValidationError{Path: "openapi", Message: "required field missing"})
	} else if !strings.HasPrefix(doc.OpenAPI, "3.") {
		errs = append(errs, ValidationError{Path: "openapi", Message: fmt.Sprintf("expected 3.x, got %q", doc.OpenAPI)})
	}

	if doc.Info.Title == "" {
		errs = append(errs, ValidationError{Path: "info.title", Message: "required field missing"})
	}
	if doc.Info.Version == "" {
		errs = append(errs, ValidationError{Path: "info.version", Message: "required field missing"})
	}

	components := doc.Components
	for path, item := range doc.Paths {
		if !strings.HasPrefix(path, "/") {
			errs = append(errs, ValidationError{
				Path:    fmt.Sprintf("paths[%q]", path),
				Message: "path must begin with /",
			})
		}
		errs = append(errs, validatePathItem(path, item, components)...)
	}

	if components != nil && components.Schemas != nil {
		for _, name := range components.Schemas.Keys() {
			schema, _ := components.Schemas.Get(name)
			errs = append(errs, validateSchema(fmt.Sprintf("components.schemas.%s", name), schema, components)...)
		}
	}

	return errs
}

func validatePathItem(path string, item *PathItem, components *Components) []ValidationError {
	var errs []ValidationError
	ops := map[string]*Operation{
		"get": item.Get, "post": item.Post, "put": item.Put, "delete": item.Delete,
		"patch": item.Patch, "head": item.Head, "options": item.Options,
	}
	for method, op := range ops {
		if op == nil {
			continue
		}
		prefix := fmt.Sprintf("paths[%q].%s", path, method)
		if len(op.Responses) == 0 {
			errs = append(errs, ValidationError{Path: prefix + ".responses", Message: "at least one response is required"})
		}
		for i, param := range op.Parameters {
			pp := fmt.Sprintf("%s.parameters[%d]", prefix, i)
			if param.Name == "" {
				errs = append(errs, ValidationError{Path: pp + ".name", Message: "required field missing"})
			}
			switch param.In {
			case "query", "path", "header", "cookie":
			default:
				errs = append(errs, ValidationError{Path: pp + ".in", Message: fmt.Sprintf("invalid location %q", param.In)})
			}
			if param.In == "path" && !param.Required {
				errs = append(errs, ValidationError{Path: pp + ".required", Message: "path parameters must be required"})
			}
			errs = append(errs, validateSchema(pp+".schema", param.Schema, components)...)
		}
		if op.RequestBody != nil {
			for ct, media := range op.RequestBody.Content {
				errs = append(errs, validateSchema(fmt.Sprintf("%s.requestBody.content[%q].schema", prefix, ct), media.Schema, components)...)
			}
		}
		for status, resp := range op.Responses {
			if resp.Description == "" {
				errs = append(errs, ValidationError{
					Path:    fmt.Sprintf("%s.responses[%s].description", prefix, status),
					Message: "required field missing",
				})
			}
			for ct, media := range resp.Content {
				errs = append(errs, validateSchema(fmt.Sprintf("%s.responses[%s].content[%q].schema", prefix, status, ct), media.Schema, components)...)
			}
		}
	}
	return errs
}

func validateSchema(path string, schema *Schema, components *Components) []ValidationError {
	if schema == nil {
		return nil
	}
	var errs []ValidationError

	if schema.Ref != "" {
		errs = append(errs, validateRef(path+".$ref", schema.Ref, components)...)
	}

	if schema.Properties != nil {
		for _, name := range schema.Properties.Keys() {
			prop, _ := schema.Properties.Get(name)
			errs = append(errs, validateSchema(fmt.Sprintf("%s.properties[%q]", path, name), prop, components)...)
		}
		for _, req := range schema.Required {
			if !schema.Properties.Has(req) {
				errs = append(errs, ValidationError{
					Path:    path + ".required",
					Message: fmt.Sprintf("required property %q is not declared", req),
				})
			}
		}
	}

	errs = append(errs, validateSchema(path+".items", schema.Items, components)...)
	for i, s := range schema.PrefixItems {
		errs = append(errs, validateSchema(fmt.Sprintf("%s.prefixItems[%d]", path, i), s, components)...)
	}
	for i, s := range schema.OneOf {
		errs = append(errs, validateSchema(fmt.Sprintf("%s.oneOf[%d]", path, i), s, components)...)
	}
	for i, s := range schema.AnyOf {
		errs = append(errs, validateSchema(fmt.Sprintf("%s.anyOf[%d]", path, i), s, components)...)
	}
	for i, s := range schema.AllOf {
		errs = append(errs, validateSchema(fmt.Sprintf("%s.allOf[%d]", path, i), s, components)...)
	}
	if schema.AdditionalProperties != nil && schema.AdditionalProperties.Schema != nil {
		errs = append(errs, validateSchema(path+".additionalProperties", schema.AdditionalProperties.Schema, components)...)
	}

	if d := schema.Discriminator; d != nil {
		if d.PropertyName == "" {
			errs = append(errs, ValidationError{Path: path + ".discriminator.propertyName", Message: "required field missing"})
		}
		for value, ref := range d.Mapping {
			errs = append(errs, validateRef(fmt.Sprintf("%s.discriminator.mapping[%q]", path, value), ref, components)...)
		}
	}

	return errs
}

func validateRef(path, ref string, components *Components) []ValidationError {
	if !strings.HasPrefix(ref, componentRefPrefix) {
		return []ValidationError{{Path: path, Message: fmt.Sprintf("reference %q does not use the %s prefix", ref, componentRefPrefix)}}
	}
	name := strings.TrimPrefix(ref, componentRefPrefix)
	if components == nil || components.Schemas == nil || !components.Schemas.Has(name) {
		return []ValidationError{{Path: path, Message: fmt.Sprintf("reference target %q is not a registered component", name)}}
	}
	return nil
}
