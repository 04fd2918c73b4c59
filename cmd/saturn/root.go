package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"gravitas-hq/saturn/pkg/cli"
)

var (
	// Global flags
	cfgFile string
	verbose bool
)

var rootCmd = &cobra.Command{
	Use:   "saturn",
	Short: "Saturn - governance policy evaluation service",
	Long: `Saturn evaluates governed systems against versioned governance profiles
and plans the follow-up work.

It provides:
  - Versioned governance profiles with hot reload
  - Rule evaluation with per-rule fault isolation
  - Pass/warn/fail verdict aggregation with scoring
  - Monitoring cadence planning over system inventories
  - Remediation triage with human-in-the-loop escalation`,
	Version: Version,
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(cli.ExitCode(err))
	}
}

func init() {
	// Global persistent flags (available to all subcommands)
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "config.yaml", "config file path")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
}
