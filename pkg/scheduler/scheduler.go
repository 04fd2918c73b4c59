package scheduler

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"gravitas-hq/saturn/pkg/history"
	"gravitas-hq/saturn/pkg/planner/monitor"

	"github.com/robfig/cron/v3"
)

// Runner executes one monitoring action that decided run_evaluation.
// Implementations typically evaluate the resolved profile and record the
// result to history.
type Runner func(ctx context.Context, action monitor.Action) error

// TargetsFn supplies the monitoring targets for a cycle. Targets are
// re-fetched every tick so inventory changes take effect without a restart.
type TargetsFn func(ctx context.Context) ([]monitor.Target, error)

// Config configures the monitoring scheduler.
type Config struct {
	// Schedule is the cron expression for monitoring cycles. Empty
	// disables scheduling.
	Schedule string

	// RetentionDays is how long history records are kept. Zero disables
	// pruning.
	RetentionDays int

	// PruneSchedule is the cron expression for history pruning.
	// Default: "0 3 * * *" (daily at 3 AM).
	PruneSchedule string
}

// Scheduler runs monitoring cycles and history pruning on cron schedules.
type Scheduler struct {
	cfg     Config
	planner *monitor.Planner
	targets TargetsFn
	runner  Runner
	store   history.Store
	cron    *cron.Cron
	logger  *slog.Logger
	mu      sync.Mutex
	running bool
}

// New creates a monitoring scheduler. The store may be nil when pruning is
// disabled.
func New(cfg Config, planner *monitor.Planner, targets TargetsFn, runner Runner, store history.Store, logger *slog.Logger) *Scheduler {
	if logger == nil {
		logger = slog.Default()
	}
	if cfg.PruneSchedule == "" {
		cfg.PruneSchedule = "0 3 * * *"
	}
	return &Scheduler{
		cfg:     cfg,
		planner: planner,
		targets: targets,
		runner:  runner,
		store:   store,
		cron:    cron.New(),
		logger:  logger.With("component", "scheduler"),
	}
}

// Start begins scheduled monitoring based on the configured cron
// expressions.
//
// Common cron expressions:
//   - "0 * * * *"    - Hourly
//   - "0 3 * * *"    - Daily at 3 AM
//   - "0 0 * * 0"    - Weekly on Sunday at midnight
//
// If the monitoring schedule is empty, the scheduler does nothing.
func (s *Scheduler) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.cfg.Schedule == "" {
		s.logger.Info("monitoring schedule not configured, skipping scheduler")
		return nil
	}

	if _, err := cron.ParseStandard(s.cfg.Schedule); err != nil {
		return fmt.Errorf("invalid cron schedule %q: %w", s.cfg.Schedule, err)
	}

	if _, err := s.cron.AddFunc(s.cfg.Schedule, func() {
		s.runCycle(ctx)
	}); err != nil {
		return fmt.Errorf("failed to schedule monitoring: %w", err)
	}

	if s.store != nil && s.cfg.RetentionDays > 0 {
		if _, err := cron.ParseStandard(s.cfg.PruneSchedule); err != nil {
			return fmt.Errorf("invalid prune schedule %q: %w", s.cfg.PruneSchedule, err)
		}
		if _, err := s.cron.AddFunc(s.cfg.PruneSchedule, func() {
			s.runPruning(ctx)
		}); err != nil {
			return fmt.Errorf("failed to schedule history pruning: %w", err)
		}
	}

	s.cron.Start()
	s.running = true

	s.logger.Info("monitoring scheduler started",
		"schedule", s.cfg.Schedule,
		"retention_days", s.cfg.RetentionDays,
	)

	go func() {
		<-ctx.Done()
		s.Stop()
	}()

	return nil
}

// runCycle executes one monitoring cycle: plan, then run every
// run_evaluation action.
func (s *Scheduler) runCycle(ctx context.Context) {
	s.logger.Info("starting scheduled monitoring cycle")

	targets, err := s.targets(ctx)
	if err != nil {
		s.logger.Error("failed to load monitoring targets", "error", err)
		return
	}

	plan := s.planner.BuildPlan(ctx, targets)

	ran, failed := 0, 0
	for _, action := range plan.Actions {
		if action.Action != monitor.ActionRunEvaluation {
			continue
		}
		if err := s.runner(ctx, action); err != nil {
			failed++
			s.logger.Error("scheduled evaluation failed",
				"system_id", action.SystemID,
				"profile_ref", action.ProfileRef,
				"error", err,
			)
			continue
		}
		ran++
	}

	s.logger.Info("monitoring cycle completed",
		"plan_id", plan.PlanID,
		"targets", len(targets),
		"evaluated", ran,
		"failed", failed,
		"skipped", len(plan.Actions)-ran-failed,
	)
}

// runPruning executes a history pruning cycle.
func (s *Scheduler) runPruning(ctx context.Context) {
	cutoff := time.Now().AddDate(0, 0, -s.cfg.RetentionDays)

	deleted, err := s.store.Prune(ctx, cutoff)
	if err != nil {
		s.logger.Error("scheduled history pruning failed", "error", err)
		return
	}

	if deleted > 0 {
		s.logger.Info("scheduled history pruning completed", "deleted_count", deleted)
	} else {
		s.logger.Debug("scheduled history pruning completed, no records deleted")
	}
}

// Stop stops the scheduler and waits for any running jobs to complete.
func (s *Scheduler) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.cron != nil && s.running {
		ctx := s.cron.Stop()
		<-ctx.Done() // Wait for running jobs to finish
		s.running = false
		s.logger.Info("monitoring scheduler stopped")
	}
}

// IsRunning returns true if the scheduler is running.
func (s *Scheduler) IsRunning() bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.running
}

// NextRun returns the next scheduled monitoring cycle time.
func (s *Scheduler) NextRun() *time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.cron == nil {
		return nil
	}

	entries := s.cron.Entries()
	if len(entries) == 0 {
		return nil
	}

	next := entries[0].Next
	return &next
}
