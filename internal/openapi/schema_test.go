package openapi

import (
	"testing"

	json "github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSchemaMap(t *testing.T) {
	t.Run("preserves insertion order", func(t *testing.T) {
		sm := NewSchemaMap()
		sm.Set("zebra", &Schema{Type: "string"})
		sm.Set("apple", &Schema{Type: "integer"})
		sm.Set("mango", &Schema{Type: "boolean"})

		assert.Equal(t, []string{"zebra", "apple", "mango"}, sm.Keys())

		b, err := json.Marshal(sm)
		require.NoError(t, err)
		assert.Equal(t, `{"zebra":{"type":"string"},"apple":{"type":"integer"},"mango":{"type":"boolean"}}`, string(b))
	})

	t.Run("resetting a name keeps its position", func(t *testing.T) {
		sm := NewSchemaMap()
		sm.Set("first", nil)
		sm.Set("second", &Schema{Type: "string"})
		sm.Set("first", &Schema{Type: "integer"})

		assert.Equal(t, []string{"first", "second"}, sm.Keys())
		assert.Equal(t, 2, sm.Len())

		s, ok := sm.Get("first")
		require.True(t, ok)
		assert.Equal(t, "integer", s.Type)
	})

	t.Run("reserved nil entries marshal as empty schemas", func(t *testing.T) {
		sm := NewSchemaMap()
		sm.Set("pending", nil)

		b, err := json.Marshal(sm)
		require.NoError(t, err)
		assert.Equal(t, `{"pending":{}}`, string(b))
	})

	t.Run("nil map reads", func(t *testing.T) {
		var sm *SchemaMap
		assert.Equal(t, 0, sm.Len())
		assert.False(t, sm.Has("x"))
		_, ok := sm.Get("x")
		assert.False(t, ok)
	})
}

func TestSchemaMarshal(t *testing.T) {
	t.Run("extensions splice in sorted order", func(t *testing.T) {
		s := &Schema{
			Type: "string",
			Extensions: map[string]any{
				"x-internal": true,
				"x-aliases":  []string{"a"},
			},
		}
		b, err := json.Marshal(s)
		require.NoError(t, err)
		assert.Equal(t, `{"type":"string","x-aliases":["a"],"x-internal":true}`, string(b))
	})

	t.Run("extensions on an otherwise empty schema", func(t *testing.T) {
		s := &Schema{Extensions: map[string]any{"x-note": "n"}}
		b, err := json.Marshal(s)
		require.NoError(t, err)
		assert.Equal(t, `{"x-note":"n"}`, string(b))
	})

	t.Run("raw substitution is emitted verbatim", func(t *testing.T) {
		s := RawSchema(json.RawMessage(`{"type":"string","pattern":"^[a-z]+$"}`))
		b, err := json.Marshal(s)
		require.NoError(t, err)
		assert.Equal(t, `{"type":"string","pattern":"^[a-z]+$"}`, string(b))
	})
}

func TestSchemaOrBool(t *testing.T) {
	f := false
	b, err := json.Marshal(SchemaOrBool{Bool: &f})
	require.NoError(t, err)
	assert.Equal(t, "false", string(b))

	b, err = json.Marshal(SchemaOrBool{Schema: &Schema{Type: "integer"}})
	require.NoError(t, err)
	assert.Equal(t, `{"type":"integer"}`, string(b))
}

func TestComponentRef(t *testing.T) {
	assert.Equal(t, "#/components/schemas/Entry_i32", ComponentRef("Entry_i32"))
	assert.True(t, (&Schema{Ref: ComponentRef("User")}).IsRef())
	assert.False(t, (&Schema{Type: "object"}).IsRef())
}
