package openapi

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func findError(errs []ValidationError, substring string) bool {
	for _, e := range errs {
		if strings.Contains(e.Error(), substring) {
			return true
		}
	}
	return false
}

func validDoc() *Document {
	schemas := NewSchemaMap()
	schemas.Set("User", &Schema{Type: "object"})
	return &Document{
		OpenAPI: "3.1.0",
		Info:    Info{Title: "API", Version: "1.0.0"},
		Paths: map[string]*PathItem{
			"/users": {
				Get: &Operation{
					Responses: Responses{
						"200": &Response{
							Description: "OK",
							Content: map[string]MediaType{
								"application/json": {Schema: &Schema{Ref: ComponentRef("User")}},
							},
						},
					},
				},
			},
		},
		Components: &Components{Schemas: schemas},
	}
}

func TestValidateDocument(t *testing.T) {
	t.Run("a well-formed document validates", func(t *testing.T) {
		assert.Empty(t, ValidateDocument(validDoc()))
	})

	t.Run("missing metadata", func(t *testing.T) {
		doc := validDoc()
		doc.OpenAPI = ""
		doc.Info.Title = ""
		doc.Info.Version = ""
		errs := ValidateDocument(doc)
		assert.True(t, findError(errs, "openapi"))
		assert.True(t, findError(errs, "info.title"))
		assert.True(t, findError(errs, "info.version"))
	})

	t.Run("non-3.x version", func(t *testing.T) {
		doc := validDoc()
		doc.OpenAPI = "2.0"
		errs := ValidateDocument(doc)
		require.Len(t, errs, 1)
		assert.Equal(t, "openapi", errs[0].Path)
	})

	t.Run("paths must begin with a slash", func(t *testing.T) {
		doc := validDoc()
		doc.Paths["users"] = doc.Paths["/users"]
		delete(doc.Paths, "/users")
		errs := ValidateDocument(doc)
		assert.True(t, findError(errs, "path must begin with /"))
	})

	t.Run("dangling references are reported", func(t *testing.T) {
		doc := validDoc()
		doc.Components.Schemas.Set("Team", &Schema{
			Type:       "object",
			Properties: propsOf("owner", &Schema{Ref: ComponentRef("Ghost")}),
		})
		errs := ValidateDocument(doc)
		assert.True(t, findError(errs, `"Ghost" is not a registered component`))
	})

	t.Run("foreign reference prefixes are reported", func(t *testing.T) {
		doc := validDoc()
		doc.Components.Schemas.Set("Team", &Schema{Ref: "#/definitions/User"})
		errs := ValidateDocument(doc)
		assert.True(t, findError(errs, "does not use the #/components/schemas/ prefix"))
	})

	t.Run("undeclared required properties are reported", func(t *testing.T) {
		doc := validDoc()
		doc.Components.Schemas.Set("Team", &Schema{
			Type:       "object",
			Properties: propsOf("name", &Schema{Type: "string"}),
			Required:   []string{"name", "missing"},
		})
		errs := ValidateDocument(doc)
		assert.True(t, findError(errs, `required property "missing" is not declared`))
	})

	t.Run("path parameters must be required", func(t *testing.T) {
		doc := validDoc()
		doc.Paths["/users"].Get.Parameters = []Parameter{
			{Name: "id", In: "path", Required: false, Schema: &Schema{Type: "integer"}},
		}
		errs := ValidateDocument(doc)
		assert.True(t, findError(errs, "path parameters must be required"))
	})

	t.Run("invalid parameter locations are reported", func(t *testing.T) {
		doc := validDoc()
		doc.Paths["/users"].Get.Parameters = []Parameter{
			{Name: "id", In: "body", Required: true, Schema: &Schema{Type: "integer"}},
		}
		errs := ValidateDocument(doc)
		assert.True(t, findError(errs, `invalid location "body"`))
	})

	t.Run("operations need at least one response", func(t *testing.T) {
		doc := validDoc()
		doc.Paths["/users"].Get.Responses = Responses{}
		errs := ValidateDocument(doc)
		assert.True(t, findError(errs, "at least one response is required"))
	})

	t.Run("discriminator mappings must target registered components", func(t *testing.T) {
		doc := validDoc()
		doc.Components.Schemas.Set("State", &Schema{
			OneOf: []*Schema{{Ref: ComponentRef("User")}},
			Discriminator: &Discriminator{
				PropertyName: "type",
				Mapping:      map[string]string{"gone": ComponentRef("Gone")},
			},
		})
		errs := ValidateDocument(doc)
		assert.True(t, findError(errs, `"Gone" is not a registered component`))
	})

	t.Run("discriminators need a property name", func(t *testing.T) {
		doc := validDoc()
		doc.Components.Schemas.Set("State", &Schema{
			OneOf:         []*Schema{{Ref: ComponentRef("User")}},
			Discriminator: &Discriminator{},
		})
		errs := ValidateDocument(doc)
		assert.True(t, findError(errs, "discriminator.propertyName"))
	})

	t.Run("nested schemas are traversed", func(t *testing.T) {
		doc := validDoc()
		doc.Components.Schemas.Set("List", &Schema{
			Type:  "array",
			Items: &Schema{AnyOf: []*Schema{{Ref: ComponentRef("Nope")}}},
		})
		errs := ValidateDocument(doc)
		assert.True(t, findError(errs, `"Nope" is not a registered component`))
	})
}

func propsOf(name string, s *Schema) *SchemaMap {
	props := NewSchemaMap()
	props.Set(name, s)
	return props
}
