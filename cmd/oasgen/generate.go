package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/oasgen/oasgen/internal/alias"
	"github.com/oasgen/oasgen/internal/config"
	"github.com/oasgen/oasgen/internal/openapi"
	"github.com/oasgen/oasgen/internal/typedef"
	"github.com/oasgen/oasgen/internal/typedesc"
)

func newGenerateCmd() *cobra.Command {
	var (
		configPath string
		output     string
		verbose    bool
	)

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Resolve a manifest into an OpenAPI document",
		RunE: func(cmd *cobra.Command, args []string) error {
			log, err := newLogger(verbose)
			if err != nil {
				return err
			}
			defer log.Sync() //nolint:errcheck

			cfg, err := config.Load(configPath)
			if err != nil {
				return err
			}
			if output != "" {
				cfg.OpenAPI.Output = output
			}

			doc, err := generate(cfg, log)
			if err != nil {
				return err
			}

			data, err := doc.ToJSON()
			if err != nil {
				return fmt.Errorf("failed to serialize document: %w", err)
			}
			if dir := filepath.Dir(cfg.OpenAPI.Output); dir != "." {
				if err := os.MkdirAll(dir, 0o755); err != nil {
					return fmt.Errorf("failed to create output directory: %w", err)
				}
			}
			if err := os.WriteFile(cfg.OpenAPI.Output, data, 0o644); err != nil {
				return fmt.Errorf("failed to write %q: %w", cfg.OpenAPI.Output, err)
			}
			log.Info("document written",
				zap.String("path", cfg.OpenAPI.Output),
				zap.Int("bytes", len(data)))
			return nil
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "oasgen.config.json", "path to the oasgen config file")
	cmd.Flags().StringVarP(&output, "output", "o", "", "override the configured output path")
	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
	return cmd
}

// generate runs one full generation pass: aliases, manifest, document.
func generate(cfg *config.Config, log *zap.Logger) (*openapi.Document, error) {
	aliases, err := alias.Load(cfg.Aliases)
	if err != nil {
		return nil, err
	}
	log.Debug("alias table loaded", zap.Int("aliases", aliases.Len()))

	man, err := typedef.Load(cfg.Manifest)
	if err != nil {
		return nil, err
	}
	defs, err := typedef.NewSet(man.Definitions)
	if err != nil {
		return nil, err
	}
	log.Debug("manifest loaded",
		zap.Int("definitions", len(man.Definitions)),
		zap.Int("operations", len(man.Operations)))

	norm := typedesc.NewNormalizer(aliases, cfg.TimeTypes)
	gen := openapi.NewGenerator(defs, norm, openapi.Options{
		SpecVersion: cfg.OpenAPI.SpecVersion,
	})

	doc, err := gen.Generate(man, documentConfig(cfg))
	if err != nil {
		return nil, err
	}
	if doc.Components != nil {
		log.Debug("components resolved", zap.Int("schemas", doc.Components.Schemas.Len()))
	}
	return doc, nil
}

func documentConfig(cfg *config.Config) openapi.DocumentConfig {
	dc := openapi.DocumentConfig{
		Title:       cfg.OpenAPI.Title,
		Description: cfg.OpenAPI.Description,
		Version:     cfg.OpenAPI.Version,
	}
	if c := cfg.OpenAPI.Contact; c != nil {
		dc.Contact = &openapi.Contact{Name: c.Name, URL: c.URL, Email: c.Email}
	}
	if l := cfg.OpenAPI.License; l != nil {
		dc.License = &openapi.License{Name: l.Name, URL: l.URL}
	}
	for _, s := range cfg.OpenAPI.Servers {
		dc.Servers = append(dc.Servers, openapi.Server{URL: s.URL, Description: s.Description})
	}
	return dc
}

func newLogger(verbose bool) (*zap.Logger, error) {
	zcfg := zap.NewProductionConfig()
	zcfg.Encoding = "console"
	if verbose {
		zcfg.Level = zap.NewAtomicLevelAt(zap.DebugLevel)
	}
	return zcfg.Build()
}
