package main

import (
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/jpalmerr/testuri/config"
	"github.com/jpalmerr/testuri/internal/report"
)

// validateCmd validates configuration without polling.
var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Validate configuration",
	Long: `Validate testuri configuration without checking any target.

This command reads the optional YAML file, applies environment overrides
(URLS, TESTURI_*), expands ${VAR} references and validates all fields.
It also lists how many reports already exist in the output directory.

Exit codes:
  0 - Config is valid (warnings may still be printed)
  1 - Config is invalid (error details printed to stderr)

Example:
  testuri validate
  testuri validate -c /etc/testuri/testuri.yaml`,
	RunE: runValidate,
}

func init() {
	rootCmd.AddCommand(validateCmd)

	validateCmd.Flags().StringP("config", "c", "", "path to config file (optional)")
}

func runValidate(cmd *cobra.Command, args []string) error {
	configFile, _ := cmd.Flags().GetString("config")
	cfg, err := config.Load(configFile)
	if err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}

	metricsPort := "disabled"
	if cfg.Metrics.Port != 0 {
		metricsPort = fmt.Sprintf("%d", cfg.Metrics.Port)
	}

	fmt.Printf("Config is valid!\n")
	fmt.Printf("  Targets:         %d\n", len(cfg.Targets))
	fmt.Printf("  Output dir:      %s\n", cfg.OutputDir)
	fmt.Printf("  Interval:        %s\n", cfg.Interval.Duration())
	fmt.Printf("  Request timeout: %s\n", cfg.RequestTimeout.Duration())
	fmt.Printf("  Metrics port:    %s\n", metricsPort)

	reports, err := report.List(cfg.OutputDir)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		fmt.Printf("  Reports:         none (directory will be created)\n")
	case err != nil:
		fmt.Printf("  Reports:         unreadable (%v)\n", err)
	case len(reports) == 0:
		fmt.Printf("  Reports:         none\n")
	default:
		fmt.Printf("  Reports:         %d (latest %s)\n", len(reports), filepath.Base(reports[len(reports)-1]))
	}

	for _, w := range cfg.Warnings() {
		fmt.Printf("Warning: %s\n", w)
	}

	return nil
}
