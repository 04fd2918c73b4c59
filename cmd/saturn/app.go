package main

import (
	"fmt"
	"log/slog"
	"os"

	"gravitas-hq/saturn/pkg/cli"
	"gravitas-hq/saturn/pkg/config"
	"gravitas-hq/saturn/pkg/engine"
	"gravitas-hq/saturn/pkg/profile"
	"gravitas-hq/saturn/pkg/telemetry/logging"
	"gravitas-hq/saturn/pkg/telemetry/metrics"
)

// app holds the shared wiring every subcommand needs: configuration,
// logging, the profile registry, and the evaluator.
type app struct {
	cfg       *config.Config
	logger    *slog.Logger
	loader    *profile.Loader
	registry  *profile.Registry
	rules     *engine.RuleSet
	evaluator *engine.Evaluator
	collector *metrics.Collector
	mappings  *config.Mappings
}

// newApp loads configuration and builds the evaluation stack. Profile
// loading is skipped when withProfiles is false so commands like lint can
// run against arbitrary files. logLevel overrides the configured level when
// non-empty.
func newApp(withProfiles bool, logLevel string) (*app, error) {
	cfg, err := config.LoadConfigWithEnvOverrides(cfgFile)
	if err != nil {
		return nil, cli.NewConfigError("", fmt.Sprintf("failed to load config: %v", err))
	}

	if logLevel != "" {
		cfg.Telemetry.Logging.Level = logLevel
	}
	if verbose {
		cfg.Telemetry.Logging.Level = "debug"
	}

	logger, err := logging.New(cfg.Telemetry.Logging, os.Stderr)
	if err != nil {
		return nil, cli.NewConfigError("telemetry.logging", err.Error())
	}
	slog.SetDefault(logger)

	var collector *metrics.Collector
	if cfg.Telemetry.Metrics.Enabled == nil || *cfg.Telemetry.Metrics.Enabled {
		collector = metrics.NewCollector(&cfg.Telemetry.Metrics, nil)
	}

	loader := profile.NewLoader(&profile.LoaderConfig{
		MaxFileSize:       cfg.Profiles.MaxFileSize,
		AllowedExtensions: []string{".yaml", ".yml"},
		SkipHidden:        true,
	})

	registry := profile.NewRegistry()
	if withProfiles {
		profiles, err := loader.LoadFromDirectory(cfg.Profiles.Dir)
		if err != nil {
			return nil, fmt.Errorf("failed to load profiles from %s: %w", cfg.Profiles.Dir, err)
		}
		if err := registry.Replace(profiles); err != nil {
			return nil, fmt.Errorf("failed to populate profile registry: %w", err)
		}
		logger.Info("profile registry loaded",
			"dir", cfg.Profiles.Dir,
			"profiles", registry.Count(),
			"registry_version", registry.Version(),
		)
	}

	mappings, err := config.LoadMappings(cfg.Mappings.Path)
	if err != nil {
		return nil, cli.NewConfigError("mappings.path", err.Error())
	}

	var evalMetrics *metrics.EvaluationMetrics
	if collector != nil {
		evalMetrics = collector.Evaluations
	}

	rules := engine.NewRuleSet()
	executor := engine.NewExecutor(rules, logger, evalMetrics)
	evaluator := engine.NewEvaluator(registry, executor, logger, evalMetrics)

	return &app{
		cfg:       cfg,
		logger:    logger,
		loader:    loader,
		registry:  registry,
		rules:     rules,
		evaluator: evaluator,
		collector: collector,
		mappings:  mappings,
	}, nil
}

// plannerMetrics returns the planner metric group, or nil when metrics are
// disabled.
func (a *app) plannerMetrics() *metrics.PlannerMetrics {
	if a.collector == nil {
		return nil
	}
	return a.collector.Planner
}
