package openapi

import (
	"fmt"
	"sort"
	"strings"

	json "github.com/goccy/go-json"

	"github.com/oasgen/oasgen/internal/diagnostic"
	"github.com/oasgen/oasgen/internal/typedef"
	"github.com/oasgen/oasgen/internal/typedesc"
)

// Document represents an OpenAPI document: metadata, per-operation inline
// schemas, and the ordered component map.
type Document struct {
	OpenAPI    string               `json:"openapi"`
	Info       Info                 `json:"info"`
	Servers    []Server             `json:"servers,omitempty"`
	Paths      map[string]*PathItem `json:"paths"`
	Components *Components          `json:"components,omitempty"`
	Tags       []Tag                `json:"tags,omitempty"`
}

// Info holds API metadata.
type Info struct {
	Title       string   `json:"title"`
	Description string   `json:"description,omitempty"`
	Version     string   `json:"version"`
	Contact     *Contact `json:"contact,omitempty"`
	License     *License `json:"license,omitempty"`
}

// Contact holds API contact info.
type Contact struct {
	Name  string `json:"name,omitempty"`
	URL   string `json:"url,omitempty"`
	Email string `json:"email,omitempty"`
}

// License holds API license info.
type License struct {
	Name string `json:"name"`
	URL  string `json:"url,omitempty"`
}

// Server represents an API server.
type Server struct {
	URL         string `json:"url"`
	Description string `json:"description,omitempty"`
}

// Tag represents a document-level tag.
type Tag struct {
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
}

// PathItem holds the operations for a single path.
type PathItem struct {
	Get     *Operation `json:"get,omitempty"`
	Post    *Operation `json:"post,omitempty"`
	Put     *Operation `json:"put,omitempty"`
	Delete  *Operation `json:"delete,omitempty"`
	Patch   *Operation `json:"patch,omitempty"`
	Head    *Operation `json:"head,omitempty"`
	Options *Operation `json:"options,omitempty"`
}

// Operation represents one HTTP operation with resolved schemas.
type Operation struct {
	OperationID string       `json:"operationId,omitempty"`
	Summary     string       `json:"summary,omitempty"`
	Description string       `json:"description,omitempty"`
	Tags        []string     `json:"tags,omitempty"`
	Deprecated  bool         `json:"deprecated,omitempty"`
	Parameters  []Parameter  `json:"parameters,omitempty"`
	RequestBody *RequestBody `json:"requestBody,omitempty"`
	Responses   Responses    `json:"responses"`
}

// Parameter represents a query, path or header parameter.
type Parameter struct {
	Name        string  `json:"name"`
	In          string  `json:"in"`
	Description string  `json:"description,omitempty"`
	Required    bool    `json:"required"`
	Schema      *Schema `json:"schema"`
}

// RequestBody represents an operation request body.
type RequestBody struct {
	Description string               `json:"description,omitempty"`
	Required    bool                 `json:"required"`
	Content     map[string]MediaType `json:"content"`
}

// MediaType holds the schema for a content type.
type MediaType struct {
	Schema *Schema `json:"schema"`
}

// Responses maps status codes to response objects.
type Responses map[string]*Response

// Response represents an operation response.
type Response struct {
	Description string               `json:"description"`
	Content     map[string]MediaType `json:"content,omitempty"`
}

// Components holds the ordered, reusable component schemas.
type Components struct {
	Schemas *SchemaMap `json:"schemas,omitempty"`
}

// ToJSON serializes the document with indentation.
func (doc *Document) ToJSON() ([]byte, error) {
	return json.MarshalIndent(doc, "", "  ")
}

// DocumentConfig holds document-level metadata applied to the output.
type DocumentConfig struct {
	Title       string
	Description string
	Version     string
	Contact     *Contact
	License     *License
	Servers     []Server
}

// Generator builds one OpenAPI document from a manifest. It owns one
// component registry; build a new Generator per document so registries
// are never shared across runs.
type Generator struct {
	schemaGen *SchemaGenerator
	opts      Options
}

// NewGenerator creates a document generator with a fresh registry.
func NewGenerator(defs *typedef.Set, norm *typedesc.Normalizer, opts Options) *Generator {
	return &Generator{
		schemaGen: NewSchemaGenerator(defs, norm, opts),
		opts:      opts,
	}
}

// SchemaGenerator exposes the underlying schema generator, mainly for
// resolving additional top-level types.
func (g *Generator) SchemaGenerator() *SchemaGenerator {
	return g.schemaGen
}

// Generate resolves every schema and operation in the manifest into a
// document. Generation either fully succeeds or fails outright; a nil
// error guarantees a complete document.
func (g *Generator) Generate(man *typedef.Manifest, cfg DocumentConfig) (*Document, error) {
	doc := &Document{
		OpenAPI: g.opts.specVersionOrDefault(),
		Info: Info{
			Title:   "API",
			Version: "1.0.0",
		},
		Paths: make(map[string]*PathItem),
	}

	// Top-level schemas are interned even when no operation references
	// them.
	for _, expr := range man.Schemas {
		if _, err := g.schemaGen.Resolve(expr, diagnostic.Pos{}); err != nil {
			return nil, err
		}
	}

	tagSet := make(map[string]bool)
	for i := range man.Operations {
		route := &man.Operations[i]
		openapiPath := convertPath(route.Path)

		pathItem, exists := doc.Paths[openapiPath]
		if !exists {
			pathItem = &PathItem{}
			doc.Paths[openapiPath] = pathItem
		}

		op, err := g.buildOperation(route)
		if err != nil {
			return nil, err
		}
		if err := setOperation(pathItem, route.Method, op); err != nil {
			return nil, diagnostic.Errorf(diagnostic.CategoryConfigInvalid, route.Pos,
				"operation %s %s: %v", route.Method, route.Path, err)
		}

		for _, tag := range route.Tags {
			tagSet[tag] = true
		}
	}

	var tags []Tag
	for tag := range tagSet {
		tags = append(tags, Tag{Name: tag})
	}
	sort.Slice(tags, func(i, j int) bool { return tags[i].Name < tags[j].Name })
	doc.Tags = tags

	if g.schemaGen.Schemas().Len() > 0 {
		doc.Components = &Components{Schemas: g.schemaGen.Schemas()}
	}

	applyConfig(doc, cfg)
	return doc, nil
}

// buildOperation resolves one manifest operation.
func (g *Generator) buildOperation(route *typedef.Operation) (*Operation, error) {
	op := &Operation{
		OperationID: route.OperationID,
		Summary:     route.Summary,
		Description: route.Description,
		Tags:        route.Tags,
		Deprecated:  route.Deprecated,
		Responses:   make(Responses),
	}

	for _, param := range route.Parameters {
		schema, err := g.schemaGen.Resolve(param.Type, route.Pos)
		if err != nil {
			return nil, err
		}
		required := param.Required
		if param.In == "path" {
			required = true
		}
		op.Parameters = append(op.Parameters, Parameter{
			Name:        param.Name,
			In:          param.In,
			Description: param.Description,
			Required:    required,
			Schema:      schema,
		})
	}

	if route.Request != nil {
		schema, err := g.schemaGen.Resolve(route.Request.Type, route.Pos)
		if err != nil {
			return nil, err
		}
		contentType := route.Request.ContentType
		if contentType == "" {
			contentType = "application/json"
		}
		op.RequestBody = &RequestBody{
			Description: route.Request.Description,
			Required:    route.Request.Required,
			Content:     map[string]MediaType{contentType: {Schema: schema}},
		}
	}

	responses := route.Responses
	if len(responses) == 0 {
		responses = []typedef.Response{{Status: 200}}
	}
	seen := make(map[int]bool, len(responses))
	for _, r := range responses {
		status := r.Status
		if status == 0 {
			status = 200
		}
		if seen[status] {
			return nil, diagnostic.Errorf(diagnostic.CategoryConfigInvalid, route.Pos,
				"operation %s %s declares status %d more than once", route.Method, route.Path, status)
		}
		seen[status] = true
		description := r.Description
		if description == "" {
			description = statusDescription(status)
		}
		resp := &Response{Description: description}
		if r.Type != "" {
			schema, err := g.schemaGen.Resolve(r.Type, route.Pos)
			if err != nil {
				return nil, err
			}
			contentType := r.ContentType
			if contentType == "" {
				contentType = "application/json"
			}
			resp.Content = map[string]MediaType{contentType: {Schema: schema}}
		}
		op.Responses[fmt.Sprintf("%d", status)] = resp
	}

	return op, nil
}

func setOperation(item *PathItem, method string, op *Operation) error {
	var slot **Operation
	switch strings.ToUpper(method) {
	case "GET":
		slot = &item.Get
	case "POST":
		slot = &item.Post
	case "PUT":
		slot = &item.Put
	case "DELETE":
		slot = &item.Delete
	case "PATCH":
		slot = &item.Patch
	case "HEAD":
		slot = &item.Head
	case "OPTIONS":
		slot = &item.Options
	default:
		return fmt.Errorf("unsupported HTTP method %q", method)
	}
	if *slot != nil {
		return fmt.Errorf("method declared more than once for this path")
	}
	*slot = op
	return nil
}

func applyConfig(doc *Document, cfg DocumentConfig) {
	if cfg.Title != "" {
		doc.Info.Title = cfg.Title
	}
	if cfg.Description != "" {
		doc.Info.Description = cfg.Description
	}
	if cfg.Version != "" {
		doc.Info.Version = cfg.Version
	}
	if cfg.Contact != nil {
		doc.Info.Contact = cfg.Contact
	}
	if cfg.License != nil {
		doc.Info.License = cfg.License
	}
	if len(cfg.Servers) > 0 {
		doc.Servers = cfg.Servers
	}
}

// convertPath converts colon-style path params to OpenAPI style.
// e.g., "/users/:id" → "/users/{id}"
func convertPath(path string) string {
	parts := strings.Split(path, "/")
	for i, part := range parts {
		if strings.HasPrefix(part, ":") {
			parts[i] = "{" + part[1:] + "}"
		}
	}
	return strings.Join(parts, "/")
}

// statusDescription returns a human-readable description for a status code.
func statusDescription(code int) string {
	switch code {
	case 200:
		return "OK"
	case 201:
		return "Created"
	case 204:
		return "No Content"
	case 400:
		return "Bad Request"
	case 401:
		return "Unauthorized"
	case 403:
		return "Forbidden"
	case 404:
		return "Not Found"
	case 409:
		return "Conflict"
	case 500:
		return "Internal Server Error"
	default:
		return "OK"
	}
}
