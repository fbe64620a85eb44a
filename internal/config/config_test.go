package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "oasgen.config.json")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	assert.Equal(t, "oasgen.types.json", cfg.Manifest)
	assert.Equal(t, "openapi.json", cfg.OpenAPI.Output)
	assert.Equal(t, "3.1.0", cfg.OpenAPI.SpecVersion)
	assert.NoError(t, cfg.Validate())
}

func TestLoad(t *testing.T) {
	t.Run("values overlay the defaults", func(t *testing.T) {
		path := writeConfig(t, `{
			"manifest": "api/types.json",
			"aliases": "api/aliases.yaml",
			"timeTypes": true,
			"openapi": {
				"output": "dist/openapi.json",
				"specVersion": "3.0.3",
				"title": "Billing API",
				"version": "4.1.0"
			}
		}`)

		cfg, err := Load(path)
		require.NoError(t, err)
		assert.Equal(t, "api/types.json", cfg.Manifest)
		assert.Equal(t, "api/aliases.yaml", cfg.Aliases)
		assert.True(t, cfg.TimeTypes)
		assert.Equal(t, "3.0.3", cfg.OpenAPI.SpecVersion)
		assert.Equal(t, "Billing API", cfg.OpenAPI.Title)
	})

	t.Run("missing file fails", func(t *testing.T) {
		_, err := Load(filepath.Join(t.TempDir(), "nope.json"))
		assert.Error(t, err)
	})

	t.Run("invalid values fail", func(t *testing.T) {
		path := writeConfig(t, `{"openapi": {"specVersion": "4.0.0"}}`)
		_, err := Load(path)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "specVersion")
	})
}

func TestValidate(t *testing.T) {
	t.Run("manifest is required", func(t *testing.T) {
		cfg := DefaultConfig()
		cfg.Manifest = ""
		assert.Error(t, cfg.Validate())
	})

	t.Run("output is required", func(t *testing.T) {
		cfg := DefaultConfig()
		cfg.OpenAPI.Output = ""
		assert.Error(t, cfg.Validate())
	})

	t.Run("spec version must be 3.0.x or 3.1.x", func(t *testing.T) {
		cfg := DefaultConfig()
		for _, v := range []string{"3.0.0", "3.0.3", "3.1.0", "3.1.1", ""} {
			cfg.OpenAPI.SpecVersion = v
			assert.NoError(t, cfg.Validate(), v)
		}
		for _, v := range []string{"2.0", "3.2.0", "4.0.0", "three"} {
			cfg.OpenAPI.SpecVersion = v
			assert.Error(t, cfg.Validate(), v)
		}
	})
}

func TestValidateDetailed(t *testing.T) {
	t.Run("clean config has no findings", func(t *testing.T) {
		cfg := DefaultConfig()
		result := cfg.ValidateDetailed()
		assert.True(t, result.IsValid())
		assert.Empty(t, result.Warnings)
	})

	t.Run("unusual extensions warn without failing", func(t *testing.T) {
		cfg := DefaultConfig()
		cfg.Manifest = "types.toml"
		cfg.OpenAPI.Output = "openapi.yaml"
		cfg.Aliases = "aliases.txt"

		result := cfg.ValidateDetailed()
		assert.True(t, result.IsValid())
		assert.Len(t, result.Warnings, 3)
	})

	t.Run("missing paths are errors", func(t *testing.T) {
		cfg := Config{}
		result := cfg.ValidateDetailed()
		assert.False(t, result.IsValid())
		assert.Len(t, result.Errors, 2)
	})
}
