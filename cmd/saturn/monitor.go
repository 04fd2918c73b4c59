package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"gravitas-hq/saturn/pkg/cli"
	"gravitas-hq/saturn/pkg/history"
	"gravitas-hq/saturn/pkg/planner/monitor"
)

var monitorFlags struct {
	targetsFile string
	output      string
}

var monitorCmd = &cobra.Command{
	Use:   "monitor",
	Short: "Build a one-shot monitoring plan",
	Long: `Build a monitoring plan for a set of systems.

For every target the planner consults the history store for the most recent
evaluation and decides whether a fresh evaluation is needed based on the
configured verdict and age thresholds.

The targets file is YAML:

  targets:
    - system_id: billing-copilot
      use_case: customer_service
      system_type: chatbot
    - system_id: fraud-scorer
      profile_ref: ai-act-high-risk@1.0.0

Examples:
  # Plan using the targets file from configuration
  saturn monitor

  # Plan for an explicit targets file, JSON output
  saturn monitor --targets targets.yaml --output json`,
	RunE: runMonitor,
}

func init() {
	rootCmd.AddCommand(monitorCmd)

	monitorCmd.Flags().StringVar(&monitorFlags.targetsFile, "targets", "", "targets YAML file (default: monitoring.targets_file from config)")
	monitorCmd.Flags().StringVarP(&monitorFlags.output, "output", "o", "text", "output format: text, json")
}

func runMonitor(cmd *cobra.Command, args []string) error {
	format, err := cli.ParseOutputFormat(monitorFlags.output)
	if err != nil {
		return err
	}

	a, err := newApp(false, "")
	if err != nil {
		return err
	}

	targetsFile := monitorFlags.targetsFile
	if targetsFile == "" {
		targetsFile = a.cfg.Monitoring.TargetsFile
	}
	if targetsFile == "" {
		return fmt.Errorf("no targets file: pass --targets or set monitoring.targets_file")
	}

	targets, err := loadTargets(targetsFile)
	if err != nil {
		return fmt.Errorf("failed to load targets: %w", err)
	}

	store, err := history.NewStore(a.cfg.History)
	if err != nil {
		return fmt.Errorf("failed to open history store: %w", err)
	}
	defer store.Close()

	planner := monitor.NewPlanner(
		a.cfg.Monitoring,
		a.cfg.Defaults.ProfileRef,
		a.mappings,
		lastEvaluationFn(store),
		a.logger,
		a.plannerMetrics(),
	)

	plan := planner.BuildPlan(cmd.Context(), targets)
	return cli.NewFormatter(format).FormatTo(os.Stdout, plan)
}

// loadTargets reads a monitoring targets file.
func loadTargets(path string) ([]monitor.Target, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var doc struct {
		Targets []monitor.Target `yaml:"targets"`
	}
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	return doc.Targets, nil
}

// lastEvaluationFn adapts the history store to the planner's lookup
// signature.
func lastEvaluationFn(store history.Store) monitor.LastEvaluationFn {
	return func(ctx context.Context, systemID string) (*monitor.LastEvaluation, error) {
		rec, err := store.LastEvaluation(ctx, systemID)
		if err != nil {
			return nil, err
		}
		if rec == nil {
			return nil, nil
		}
		return &monitor.LastEvaluation{
			Verdict:     rec.Verdict,
			EvaluatedAt: rec.EvaluatedAt,
		}, nil
	}
}
