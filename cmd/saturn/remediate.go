package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"gravitas-hq/saturn/pkg/cli"
	"gravitas-hq/saturn/pkg/engine"
	"gravitas-hq/saturn/pkg/planner/remediation"
)

var remediateFlags struct {
	inputFile string
	systemID  string
	output    string
}

var remediateCmd = &cobra.Command{
	Use:   "remediate",
	Short: "Triage an evaluation result into a remediation plan",
	Long: `Build a remediation plan from an evaluation result.

Each finding is normalized, prioritized by severity, flagged for human
review per the configured escalation flags, and given a recommended action.
The input is an evaluation result JSON as produced by "saturn evaluate
--output json".

Examples:
  # Triage a stored evaluation result
  saturn remediate --input result.json --system-id billing-copilot

  # Pipe evaluate into remediate
  saturn evaluate ai-act-high-risk -o json > result.json && saturn remediate --input result.json`,
	RunE: runRemediate,
}

func init() {
	rootCmd.AddCommand(remediateCmd)

	remediateCmd.Flags().StringVarP(&remediateFlags.inputFile, "input", "i", "", "evaluation result JSON file (required)")
	remediateCmd.Flags().StringVar(&remediateFlags.systemID, "system-id", "", "system id to stamp on the plan")
	remediateCmd.Flags().StringVarP(&remediateFlags.output, "output", "o", "text", "output format: text, json")
	_ = remediateCmd.MarkFlagRequired("input")
}

func runRemediate(cmd *cobra.Command, args []string) error {
	format, err := cli.ParseOutputFormat(remediateFlags.output)
	if err != nil {
		return err
	}

	a, err := newApp(false, "")
	if err != nil {
		return err
	}

	data, err := os.ReadFile(remediateFlags.inputFile)
	if err != nil {
		return fmt.Errorf("failed to read evaluation result: %w", err)
	}

	var result engine.EvaluationResult
	if err := json.Unmarshal(data, &result); err != nil {
		return fmt.Errorf("invalid evaluation result %s: %w", remediateFlags.inputFile, err)
	}

	planner := remediation.NewPlanner(a.cfg.Escalation, a.logger, a.plannerMetrics())
	plan := planner.BuildPlan(&result, remediateFlags.systemID)

	return cli.NewFormatter(format).FormatTo(os.Stdout, plan)
}
