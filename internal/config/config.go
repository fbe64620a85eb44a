// Package config loads and validates the oasgen tool configuration.
package config

import (
	"fmt"
	"os"

	json "github.com/goccy/go-json"
)

// Config represents the oasgen configuration.
type Config struct {
	// Manifest is the path of the type-definition manifest produced by
	// the front end.
	Manifest string `json:"manifest"`
	// Aliases is the path of the alias configuration artifact. A missing
	// file means an empty alias table.
	Aliases string        `json:"aliases,omitempty"`
	OpenAPI OpenAPIConfig `json:"openapi"`
	// TimeTypes enables the date/time extension of the primitive table.
	TimeTypes bool `json:"timeTypes,omitempty"`
}

// OpenAPIConfig specifies document generation settings.
type OpenAPIConfig struct {
	Output string `json:"output"`
	// SpecVersion selects the target spec version ("3.1.0" default,
	// "3.0.3" switches the nullable representation).
	SpecVersion string          `json:"specVersion,omitempty"`
	Title       string          `json:"title,omitempty"`
	Description string          `json:"description,omitempty"`
	Version     string          `json:"version,omitempty"`
	Contact     *OpenAPIContact `json:"contact,omitempty"`
	License     *OpenAPILicense `json:"license,omitempty"`
	Servers     []OpenAPIServer `json:"servers,omitempty"`
}

// OpenAPIContact holds contact info for the document.
type OpenAPIContact struct {
	Name  string `json:"name,omitempty"`
	URL   string `json:"url,omitempty"`
	Email string `json:"email,omitempty"`
}

// OpenAPILicense holds license info for the document.
type OpenAPILicense struct {
	Name string `json:"name"`
	URL  string `json:"url,omitempty"`
}

// OpenAPIServer represents an API server entry.
type OpenAPIServer struct {
	URL         string `json:"url"`
	Description string `json:"description,omitempty"`
}

// DefaultConfig returns a config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		Manifest: "oasgen.types.json",
		OpenAPI: OpenAPIConfig{
			Output:      "openapi.json",
			SpecVersion: "3.1.0",
		},
	}
}

// Load reads and parses an oasgen config file.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %q: %w", path, err)
	}

	config := DefaultConfig()
	if err := json.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse config file %q: %w", path, err)
	}

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config in %q: %w", path, err)
	}

	return &config, nil
}
