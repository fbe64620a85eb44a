package typedef

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeManifest(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadManifest(t *testing.T) {
	t.Run("JSON", func(t *testing.T) {
		path := writeManifest(t, "types.json", `{
			"definitions": [
				{
					"name": "User",
					"kind": "struct",
					"fields": [
						{"name": "id", "type": "u64"},
						{"name": "email", "type": "Option<String>", "attrs": {"description": "primary contact"}}
					]
				}
			],
			"schemas": ["User", "Vec<User>"],
			"operations": [
				{
					"method": "GET",
					"path": "/users/:id",
					"operationId": "getUser",
					"parameters": [{"name": "id", "in": "path", "type": "u64"}],
					"responses": [{"status": 200, "type": "User"}]
				}
			]
		}`)

		m, err := Load(path)
		require.NoError(t, err)

		require.Len(t, m.Definitions, 1)
		def := m.Definitions[0]
		assert.Equal(t, "User", def.Name)
		assert.Equal(t, DefStruct, def.Kind)
		require.Len(t, def.Fields, 2)
		assert.Equal(t, "Option<String>", def.Fields[1].Type)
		assert.Equal(t, "primary contact", def.Fields[1].Attrs.Description)

		assert.Equal(t, []string{"User", "Vec<User>"}, m.Schemas)

		require.Len(t, m.Operations, 1)
		op := m.Operations[0]
		assert.Equal(t, "GET", op.Method)
		assert.Equal(t, "/users/:id", op.Path)
		require.Len(t, op.Responses, 1)
		assert.Equal(t, 200, op.Responses[0].Status)

		// positions default to the manifest file
		assert.Equal(t, path, def.Pos.File)
	})

	t.Run("YAML", func(t *testing.T) {
		path := writeManifest(t, "types.yaml", `
definitions:
  - name: Status
    kind: enum
    attrs:
      renameAll: SCREAMING_SNAKE_CASE
    variants:
      - name: Active
      - name: Inactive
`)
		m, err := Load(path)
		require.NoError(t, err)
		require.Len(t, m.Definitions, 1)
		def := m.Definitions[0]
		assert.Equal(t, DefEnum, def.Kind)
		assert.Equal(t, "SCREAMING_SNAKE_CASE", def.Attrs.RenameAll)
		require.Len(t, def.Variants, 2)
		assert.True(t, def.Variants[0].IsUnit())
	})

	t.Run("missing file fails", func(t *testing.T) {
		_, err := Load(filepath.Join(t.TempDir(), "nope.json"))
		assert.Error(t, err)
	})

	t.Run("malformed content fails", func(t *testing.T) {
		path := writeManifest(t, "types.json", `{"definitions": "no"}`)
		_, err := Load(path)
		assert.Error(t, err)
	})
}
