package scheduler

import (
	"context"
	"testing"
	"time"

	"gravitas-hq/saturn/pkg/config"
	"gravitas-hq/saturn/pkg/history"
	"gravitas-hq/saturn/pkg/planner/monitor"
)

func newTestScheduler(cfg Config, runner Runner) *Scheduler {
	planner := monitor.NewPlanner(config.MonitoringConfig{Concurrency: 1}, "default-profile", nil, nil, nil, nil)
	targets := func(ctx context.Context) ([]monitor.Target, error) {
		return []monitor.Target{{SystemID: "sys-1"}}, nil
	}
	if runner == nil {
		runner = func(ctx context.Context, action monitor.Action) error { return nil }
	}
	return New(cfg, planner, targets, runner, history.NewMemoryStore(), nil)
}

func TestScheduler_EmptyScheduleIsNoOp(t *testing.T) {
	s := newTestScheduler(Config{}, nil)

	if err := s.Start(context.Background()); err != nil {
		t.Fatalf("Start() error = %v", err)
	}
	if s.IsRunning() {
		t.Error("scheduler running without a schedule")
	}
	if s.NextRun() != nil {
		t.Error("NextRun() should be nil without scheduled jobs")
	}
}

func TestScheduler_InvalidSchedule(t *testing.T) {
	s := newTestScheduler(Config{Schedule: "not a cron expression"}, nil)

	if err := s.Start(context.Background()); err == nil {
		t.Error("Start() error = nil, want invalid schedule error")
	}
}

func TestScheduler_InvalidPruneSchedule(t *testing.T) {
	s := newTestScheduler(Config{
		Schedule:      "0 * * * *",
		RetentionDays: 30,
		PruneSchedule: "bogus",
	}, nil)

	if err := s.Start(context.Background()); err == nil {
		t.Error("Start() error = nil, want invalid prune schedule error")
	}
}

func TestScheduler_StartStop(t *testing.T) {
	s := newTestScheduler(Config{Schedule: "0 * * * *", RetentionDays: 30}, nil)

	if err := s.Start(context.Background()); err != nil {
		t.Fatalf("Start() error = %v", err)
	}
	if !s.IsRunning() {
		t.Error("IsRunning() = false after Start()")
	}

	next := s.NextRun()
	if next == nil {
		t.Fatal("NextRun() = nil, want scheduled time")
	}
	if !next.After(time.Now()) {
		t.Errorf("NextRun() = %v, want a future time", next)
	}

	s.Stop()
	if s.IsRunning() {
		t.Error("IsRunning() = true after Stop()")
	}

	// Stop is idempotent.
	s.Stop()
}

func TestScheduler_ContextCancellationStops(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	s := newTestScheduler(Config{Schedule: "0 * * * *"}, nil)

	if err := s.Start(ctx); err != nil {
		t.Fatalf("Start() error = %v", err)
	}
	cancel()

	deadline := time.Now().Add(2 * time.Second)
	for s.IsRunning() {
		if time.Now().After(deadline) {
			t.Fatal("scheduler still running after context cancellation")
		}
		time.Sleep(10 * time.Millisecond)
	}
}

func TestScheduler_RunCycleExecutesActions(t *testing.T) {
	ran := make(chan string, 1)
	s := newTestScheduler(Config{Schedule: "0 * * * *"}, func(ctx context.Context, action monitor.Action) error {
		ran <- action.SystemID
		return nil
	})

	// Invoke a cycle directly instead of waiting for the cron tick.
	s.runCycle(context.Background())

	select {
	case systemID := <-ran:
		if systemID != "sys-1" {
			t.Errorf("runner invoked for %q, want sys-1", systemID)
		}
	default:
		t.Fatal("runner was not invoked for a run_evaluation action")
	}
}
