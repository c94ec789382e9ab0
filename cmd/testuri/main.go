// Package main is the entry point for the testuri CLI.
//
// testuri can be embedded as a library or run as this standalone binary,
// configured through environment variables and an optional YAML file.
//
// Usage:
//
//	testuri run                       # Poll the targets in $URLS forever
//	testuri run -c testuri.yaml       # Same, with a config file
//	testuri run --once                # One cycle, then exit
//	testuri validate -c testuri.yaml  # Validate configuration
//	testuri version                   # Show version info
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// Version information - set at build time via ldflags.
// Example: go build -ldflags "-X main.version=1.0.0"
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

// rootCmd is the base command when called without subcommands.
var rootCmd = &cobra.Command{
	Use:   "testuri",
	Short: "Periodic URL reachability reporter",
	Long: `testuri checks a list of URLs once a minute and writes one report
file per check cycle.

Each report is named testuri_YYYYMMDD_HHMMSS.out and contains one line per
target, in list order:

  https://example.com -> 200
  https://down.example -> ERROR: <description>

Quick start:
  URLS=https://example.com,https://status.example.com testuri run

Example config:
  targets: [https://example.com]
  output_dir: /data/out
  interval: 60s
  request_timeout: 5s`,
	SilenceUsage: true,
}

// Execute runs the root command.
// This is the main entry point called from main().
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		// Cobra already prints the error, just exit with code 1
		os.Exit(1)
	}
}

func main() {
	Execute()
}

// versionCmd prints version information.
var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Long:  `Print the version, commit hash, and build date of this testuri binary.`,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("testuri %s\n", version)
		fmt.Printf("  commit: %s\n", commit)
		fmt.Printf("  built:  %s\n", date)
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
