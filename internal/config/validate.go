package config

import (
	"fmt"
	"path/filepath"
	"strings"
)

// Validate checks the config for logical errors.
func (c *Config) Validate() error {
	if c.Manifest == "" {
		return fmt.Errorf("manifest must not be empty")
	}
	if c.OpenAPI.Output == "" {
		return fmt.Errorf("openapi.output must not be empty")
	}
	if v := c.OpenAPI.SpecVersion; v != "" &&
		!strings.HasPrefix(v, "3.1") && !strings.HasPrefix(v, "3.0") {
		return fmt.Errorf("openapi.specVersion must be 3.0.x or 3.1.x, got %q", v)
	}
	return nil
}

// ValidationResult holds detailed config validation results.
type ValidationResult struct {
	Errors   []string
	Warnings []string
}

// IsValid returns true if there are no errors.
func (r *ValidationResult) IsValid() bool {
	return len(r.Errors) == 0
}

// ValidateDetailed performs thorough config validation with suggestions.
func (c *Config) ValidateDetailed() *ValidationResult {
	result := &ValidationResult{}

	if c.Manifest == "" {
		result.Errors = append(result.Errors, "manifest: a manifest path is required")
	} else if ext := filepath.Ext(c.Manifest); ext != ".json" && ext != ".yaml" && ext != ".yml" {
		result.Warnings = append(result.Warnings,
			fmt.Sprintf("manifest: extension %q is unusual; expected .json, .yaml, or .yml", ext))
	}

	if c.OpenAPI.Output == "" {
		result.Errors = append(result.Errors, "openapi.output: an output path is required")
	} else if ext := filepath.Ext(c.OpenAPI.Output); ext != ".json" {
		result.Warnings = append(result.Warnings,
			fmt.Sprintf("openapi.output: extension %q is unusual; expected .json", ext))
	}

	if v := c.OpenAPI.SpecVersion; v != "" &&
		!strings.HasPrefix(v, "3.1") && !strings.HasPrefix(v, "3.0") {
		result.Errors = append(result.Errors,
			fmt.Sprintf("openapi.specVersion: invalid value %q; must be 3.0.x or 3.1.x", v))
	}

	if c.Aliases != "" {
		if ext := filepath.Ext(c.Aliases); ext != ".json" && ext != ".yaml" && ext != ".yml" {
			result.Warnings = append(result.Warnings,
				fmt.Sprintf("aliases: extension %q is unusual; expected .json, .yaml, or .yml", ext))
		}
	}

	return result
}
