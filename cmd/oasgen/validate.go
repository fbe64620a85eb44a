package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/oasgen/oasgen/internal/config"
	"github.com/oasgen/oasgen/internal/openapi"
)

func newValidateCmd() *cobra.Command {
	var (
		configPath string
		verbose    bool
	)

	cmd := &cobra.Command{
		Use:   "validate",
		Short: "Generate in memory and check document compliance",
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
			result := cfg.ValidateDetailed()
			for _, msg := range result.Warnings {
				log.Warn(msg)
			}
			if !result.IsValid() {
				for _, msg := range result.Errors {
					log.Error(msg)
				}
				return fmt.Errorf("config has %d error(s)", len(result.Errors))
			}

			doc, err := generate(cfg, log)
			if err != nil {
				return err
			}

			errs := openapi.ValidateDocument(doc)
			for _, e := range errs {
				log.Error("compliance", zap.String("path", e.Path), zap.String("message", e.Message))
			}
			if len(errs) > 0 {
				return fmt.Errorf("document has %d compliance error(s)", len(errs))
			}
			log.Info("document is valid")
			return nil
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "oasgen.config.json", "path to the oasgen config file")
	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
	return cmd
}
