package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"gravitas-hq/saturn/pkg/cli"
	"gravitas-hq/saturn/pkg/history"
)

var evaluateFlags struct {
	contextFile  string
	evidenceFile string
	systemID     string
	record       bool
	output       string
}

var evaluateCmd = &cobra.Command{
	Use:   "evaluate <profile-ref>",
	Short: "Evaluate a system against a governance profile",
	Long: `Evaluate context and evidence against a governance profile.

The profile reference is either "<profile_id>@<version>" or a bare profile id
for the latest version. Context and evidence are JSON objects read from files.

Examples:
  # Evaluate against a pinned profile version
  saturn evaluate ai-act-high-risk@1.0.0 --context context.json --evidence evidence.json

  # Evaluate against the latest version and record the result to history
  saturn evaluate ai-act-high-risk --context context.json --system-id billing-copilot --record

  # JSON output for scripting
  saturn evaluate ai-act-high-risk@1.0.0 --output json`,
	Args: cobra.ExactArgs(1),
	RunE: runEvaluate,
}

func init() {
	rootCmd.AddCommand(evaluateCmd)

	evaluateCmd.Flags().StringVar(&evaluateFlags.contextFile, "context", "", "JSON file with system context")
	evaluateCmd.Flags().StringVar(&evaluateFlags.evidenceFile, "evidence", "", "JSON file with evidence")
	evaluateCmd.Flags().StringVar(&evaluateFlags.systemID, "system-id", "", "system id for history recording")
	evaluateCmd.Flags().BoolVar(&evaluateFlags.record, "record", false, "record the result to the history store")
	evaluateCmd.Flags().StringVarP(&evaluateFlags.output, "output", "o", "text", "output format: text, json")
}

func runEvaluate(cmd *cobra.Command, args []string) error {
	format, err := cli.ParseOutputFormat(evaluateFlags.output)
	if err != nil {
		return err
	}

	a, err := newApp(true, "")
	if err != nil {
		return err
	}

	targetCtx, err := readJSONMap(evaluateFlags.contextFile)
	if err != nil {
		return fmt.Errorf("failed to read context: %w", err)
	}
	evidence, err := readJSONMap(evaluateFlags.evidenceFile)
	if err != nil {
		return fmt.Errorf("failed to read evidence: %w", err)
	}

	result, err := a.evaluator.Evaluate(cmd.Context(), args[0], targetCtx, evidence)
	if err != nil {
		return err
	}

	if evaluateFlags.record {
		if evaluateFlags.systemID == "" {
			return fmt.Errorf("--record requires --system-id")
		}
		store, err := history.NewStore(a.cfg.History)
		if err != nil {
			return fmt.Errorf("failed to open history store: %w", err)
		}
		defer store.Close()

		if err := store.Record(cmd.Context(), history.NewRecord(evaluateFlags.systemID, result)); err != nil {
			return fmt.Errorf("failed to record evaluation: %w", err)
		}
	}

	return cli.NewFormatter(format).FormatTo(os.Stdout, result)
}

// readJSONMap reads a JSON object from a file; an empty path yields an
// empty map.
func readJSONMap(path string) (map[string]any, error) {
	if path == "" {
		return map[string]any{}, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var m map[string]any
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return m, nil
}
