package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"gravitas-hq/saturn/pkg/history"
	"gravitas-hq/saturn/pkg/planner/monitor"
	"gravitas-hq/saturn/pkg/profile"
	"gravitas-hq/saturn/pkg/scheduler"
)

var runFlags struct {
	logLevel string
	dryRun   bool
}

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Start the continuous monitoring daemon",
	Long: `Start the Saturn continuous monitoring daemon.

The daemon loads the profile registry, schedules monitoring cycles on the
configured cron cadence, evaluates systems that need a re-run, records
results to the history store, and prunes history past retention. When
profile watching is enabled, profile file changes reload the registry
without a restart.

Examples:
  # Start with default config
  saturn run

  # Start with custom config
  saturn run --config /etc/saturn/config.yaml

  # Validate config without starting
  saturn run --dry-run`,
	RunE: runDaemon,
}

func init() {
	rootCmd.AddCommand(runCmd)

	runCmd.Flags().StringVar(&runFlags.logLevel, "log-level", "", "override log level (debug, info, warn, error)")
	runCmd.Flags().BoolVar(&runFlags.dryRun, "dry-run", false, "validate config without starting the daemon")
}

func runDaemon(cmd *cobra.Command, args []string) error {
	a, err := newApp(true, runFlags.logLevel)
	if err != nil {
		return err
	}
	cfg := a.cfg

	if runFlags.dryRun {
		fmt.Println("✓ Configuration valid")
		fmt.Printf("✓ Profiles loaded (%d)\n", a.registry.Count())
		return nil
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	store, err := history.NewStore(cfg.History)
	if err != nil {
		return fmt.Errorf("failed to open history store: %w", err)
	}
	defer store.Close()

	planner := monitor.NewPlanner(
		cfg.Monitoring,
		cfg.Defaults.ProfileRef,
		a.mappings,
		lastEvaluationFn(store),
		a.logger,
		a.plannerMetrics(),
	)

	targetsFn := func(context.Context) ([]monitor.Target, error) {
		if cfg.Monitoring.TargetsFile == "" {
			return nil, nil
		}
		return loadTargets(cfg.Monitoring.TargetsFile)
	}

	runner := func(ctx context.Context, action monitor.Action) error {
		if action.ProfileRef == "" {
			return fmt.Errorf("no profile resolved for system %s", action.SystemID)
		}

		targetCtx := map[string]any{
			"system_id":   action.SystemID,
			"use_case":    action.UseCase,
			"system_type": action.SystemType,
		}
		for k, v := range action.Extra {
			targetCtx[k] = v
		}

		result, err := a.evaluator.Evaluate(ctx, action.ProfileRef, targetCtx, nil)
		if err != nil {
			return err
		}
		return store.Record(ctx, history.NewRecord(action.SystemID, result))
	}

	sched := scheduler.New(scheduler.Config{
		Schedule:      cfg.Monitoring.Schedule,
		RetentionDays: cfg.History.RetentionDays,
	}, planner, targetsFn, runner, store, a.logger)

	if err := sched.Start(ctx); err != nil {
		return fmt.Errorf("failed to start scheduler: %w", err)
	}
	defer sched.Stop()

	if cfg.Profiles.Watch {
		watcher, err := profile.NewWatcher(&profile.WatcherConfig{
			Dir:              cfg.Profiles.Dir,
			DebounceInterval: cfg.Profiles.DebounceInterval,
		}, a.logger)
		if err != nil {
			return fmt.Errorf("failed to create profile watcher: %w", err)
		}
		defer watcher.Stop()

		go func() {
			err := watcher.Watch(ctx, func() error {
				profiles, err := a.loader.LoadFromDirectory(cfg.Profiles.Dir)
				if err != nil {
					return err
				}
				return a.registry.Replace(profiles)
			})
			if err != nil && !errors.Is(err, context.Canceled) {
				a.logger.Error("profile watcher stopped", "error", err)
			}
		}()
	}

	var metricsServer *http.Server
	if a.collector != nil {
		mux := http.NewServeMux()
		mux.Handle(cfg.Telemetry.Metrics.Path, a.collector.Handler())
		metricsServer = &http.Server{
			Addr:              cfg.Telemetry.Metrics.ListenAddress,
			Handler:           mux,
			ReadHeaderTimeout: 5 * time.Second,
		}

		go func() {
			a.logger.Info("metrics listener started",
				"address", cfg.Telemetry.Metrics.ListenAddress,
				"path", cfg.Telemetry.Metrics.Path,
			)
			if err := metricsServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				a.logger.Error("metrics listener failed", "error", err)
			}
		}()
	}

	a.logger.Info("saturn daemon started",
		"profiles", a.registry.Count(),
		"schedule", cfg.Monitoring.Schedule,
		"watch", cfg.Profiles.Watch,
	)

	<-ctx.Done()
	a.logger.Info("shutdown signal received")

	if metricsServer != nil {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := metricsServer.Shutdown(shutdownCtx); err != nil {
			a.logger.Warn("metrics listener shutdown failed", "error", err)
		}
	}

	return nil
}
