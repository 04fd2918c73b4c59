package monitor

import (
	"context"
	"errors"
	"testing"
	"time"

	"gravitas-hq/saturn/pkg/config"
)

var plannerNow = time.Date(2026, 8, 20, 12, 0, 0, 0, time.UTC)

func boolPtr(b bool) *bool { return &b }

func newTestPlanner(t *testing.T, cfg config.MonitoringConfig, lastEval LastEvaluationFn) *Planner {
	t.Helper()
	p := NewPlanner(cfg, "default-profile", nil, lastEval, nil, nil)
	p.now = func() time.Time { return plannerNow }
	return p
}

func evalDaysAgo(days float64, verdict string) *LastEvaluation {
	ts := plannerNow.Add(-time.Duration(days * 24 * float64(time.Hour)))
	return &LastEvaluation{
		Verdict:     verdict,
		EvaluatedAt: ts.Format(time.RFC3339),
	}
}

func TestPlanner_DecisionChain(t *testing.T) {
	cfg := config.MonitoringConfig{
		MaxAgeDays:     7,
		RerunOnVerdict: []string{"fail"},
		RerunOnWarn:    boolPtr(true),
		Concurrency:    1,
	}

	tests := []struct {
		name       string
		last       *LastEvaluation
		wantAction ActionType
		wantReason string
	}{
		{
			name:       "no previous evaluation",
			last:       nil,
			wantAction: ActionRunEvaluation,
			wantReason: "No previous evaluation found.",
		},
		{
			name:       "recent fail reruns",
			last:       evalDaysAgo(1, "fail"),
			wantAction: ActionRunEvaluation,
			wantReason: "Verdict is 'fail', which requires re-evaluation.",
		},
		{
			name:       "recent warn reruns when enabled",
			last:       evalDaysAgo(1, "warn"),
			wantAction: ActionRunEvaluation,
			wantReason: "Verdict is 'warn' and rerun_on_warn is enabled.",
		},
		{
			name:       "fresh pass skips",
			last:       evalDaysAgo(3, "pass"),
			wantAction: ActionSkip,
			wantReason: "Within acceptable age and verdict thresholds.",
		},
		{
			name:       "stale pass reruns",
			last:       evalDaysAgo(10, "pass"),
			wantAction: ActionRunEvaluation,
			wantReason: "Last evaluation is 10.0 days old (> 7).",
		},
		{
			name:       "uppercase verdict is normalized",
			last:       evalDaysAgo(1, "FAIL"),
			wantAction: ActionRunEvaluation,
			wantReason: "Verdict is 'fail', which requires re-evaluation.",
		},
		{
			name:       "unparseable timestamp reruns",
			last:       &LastEvaluation{Verdict: "pass", EvaluatedAt: "yesterday-ish"},
			wantAction: ActionRunEvaluation,
			wantReason: "Previous evaluation has no valid timestamp.",
		},
		{
			name:       "empty verdict is treated as unknown",
			last:       evalDaysAgo(1, ""),
			wantAction: ActionSkip,
			wantReason: "Within acceptable age and verdict thresholds.",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := newTestPlanner(t, cfg, func(ctx context.Context, systemID string) (*LastEvaluation, error) {
				return tt.last, nil
			})

			plan := p.BuildPlan(context.Background(), []Target{{SystemID: "sys-1"}})
			if len(plan.Actions) != 1 {
				t.Fatalf("got %d actions, want 1", len(plan.Actions))
			}

			action := plan.Actions[0]
			if action.Action != tt.wantAction {
				t.Errorf("action = %q, want %q", action.Action, tt.wantAction)
			}
			if action.Reason != tt.wantReason {
				t.Errorf("reason = %q, want %q", action.Reason, tt.wantReason)
			}
		})
	}
}

func TestPlanner_RerunOnWarnDisabled(t *testing.T) {
	cfg := config.MonitoringConfig{
		MaxAgeDays:     7,
		RerunOnVerdict: []string{"fail"},
		RerunOnWarn:    boolPtr(false),
		Concurrency:    1,
	}
	p := newTestPlanner(t, cfg, func(ctx context.Context, systemID string) (*LastEvaluation, error) {
		return evalDaysAgo(1, "warn"), nil
	})

	plan := p.BuildPlan(context.Background(), []Target{{SystemID: "sys-1"}})
	if plan.Actions[0].Action != ActionSkip {
		t.Errorf("action = %q, want skip when rerun_on_warn is disabled", plan.Actions[0].Action)
	}
}

func TestPlanner_ConfigDefaults(t *testing.T) {
	// Zero config falls back to package defaults: rerun on fail, rerun on
	// warn, seven day max age.
	p := newTestPlanner(t, config.MonitoringConfig{}, func(ctx context.Context, systemID string) (*LastEvaluation, error) {
		switch systemID {
		case "failed":
			return evalDaysAgo(1, "fail"), nil
		case "warned":
			return evalDaysAgo(1, "warn"), nil
		case "stale":
			return evalDaysAgo(8, "pass"), nil
		default:
			return evalDaysAgo(1, "pass"), nil
		}
	})

	plan := p.BuildPlan(context.Background(), []Target{
		{SystemID: "failed"},
		{SystemID: "warned"},
		{SystemID: "stale"},
		{SystemID: "fresh"},
	})

	want := []ActionType{ActionRunEvaluation, ActionRunEvaluation, ActionRunEvaluation, ActionSkip}
	for i, a := range plan.Actions {
		if a.Action != want[i] {
			t.Errorf("actions[%d] (%s) = %q, want %q", i, a.SystemID, a.Action, want[i])
		}
	}
}

func TestPlanner_LookupErrorTreatedAsNoPrevious(t *testing.T) {
	p := newTestPlanner(t, config.MonitoringConfig{Concurrency: 1}, func(ctx context.Context, systemID string) (*LastEvaluation, error) {
		return nil, errors.New("store unavailable")
	})

	plan := p.BuildPlan(context.Background(), []Target{{SystemID: "sys-1"}})
	action := plan.Actions[0]
	if action.Action != ActionRunEvaluation {
		t.Errorf("action = %q, want run_evaluation on lookup failure", action.Action)
	}
	if action.Reason != "No previous evaluation found." {
		t.Errorf("reason = %q", action.Reason)
	}
}

func TestPlanner_ProfileResolutionPrecedence(t *testing.T) {
	mappings := &config.Mappings{
		UseCases: map[string]config.MappingEntry{
			"fraud_detection": {ProfileRef: "mapped-profile"},
		},
	}
	p := NewPlanner(config.MonitoringConfig{Concurrency: 1}, "default-profile", mappings, nil, nil, nil)
	p.now = func() time.Time { return plannerNow }

	plan := p.BuildPlan(context.Background(), []Target{
		{SystemID: "a", ProfileRef: "explicit-profile", UseCase: "fraud_detection"},
		{SystemID: "b", UseCase: "fraud_detection"},
		{SystemID: "c", UseCase: "unmapped"},
	})

	want := []string{"explicit-profile", "mapped-profile", "default-profile"}
	for i, a := range plan.Actions {
		if a.ProfileRef != want[i] {
			t.Errorf("actions[%d].ProfileRef = %q, want %q", i, a.ProfileRef, want[i])
		}
	}
}

func TestPlanner_OrderPreservedUnderConcurrency(t *testing.T) {
	// Lookups complete out of order; the plan must still list actions in
	// input order.
	p := newTestPlanner(t, config.MonitoringConfig{Concurrency: 8}, func(ctx context.Context, systemID string) (*LastEvaluation, error) {
		if systemID == "sys-00" {
			time.Sleep(20 * time.Millisecond)
		}
		return nil, nil
	})

	targets := make([]Target, 16)
	for i := range targets {
		targets[i] = Target{SystemID: fmtSystemID(i)}
	}

	plan := p.BuildPlan(context.Background(), targets)
	if len(plan.Actions) != len(targets) {
		t.Fatalf("got %d actions, want %d", len(plan.Actions), len(targets))
	}
	for i, a := range plan.Actions {
		if a.SystemID != targets[i].SystemID {
			t.Errorf("actions[%d].SystemID = %q, want %q", i, a.SystemID, targets[i].SystemID)
		}
	}
	if plan.RunCount() != len(targets) {
		t.Errorf("RunCount() = %d, want %d", plan.RunCount(), len(targets))
	}
}

func TestPlanner_CancelledContextStopsDispatch(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	release := make(chan struct{})

	// Concurrency 1: the first lookup holds the only worker slot, so the
	// second dispatch blocks until the context is cancelled.
	p := newTestPlanner(t, config.MonitoringConfig{Concurrency: 1}, func(ctx context.Context, systemID string) (*LastEvaluation, error) {
		cancel()
		<-release
		return nil, nil
	})

	go func() {
		time.Sleep(10 * time.Millisecond)
		close(release)
	}()

	plan := p.BuildPlan(ctx, []Target{{SystemID: "a"}, {SystemID: "b"}, {SystemID: "c"}})
	if plan.PlanID == "" {
		t.Error("plan id should be set even when cancelled")
	}
	if len(plan.Actions) != 1 {
		t.Fatalf("got %d actions, want only the in-flight decision", len(plan.Actions))
	}
	if plan.Actions[0].SystemID != "a" {
		t.Errorf("kept action for %q, want %q", plan.Actions[0].SystemID, "a")
	}
}

func TestPlanner_MetadataCarriedIntoAction(t *testing.T) {
	p := newTestPlanner(t, config.MonitoringConfig{Concurrency: 1}, nil)

	plan := p.BuildPlan(context.Background(), []Target{{
		SystemID: "sys-1",
		Metadata: map[string]any{"owner": "risk-team"},
	}})

	if got := plan.Actions[0].Extra["owner"]; got != "risk-team" {
		t.Errorf("Extra[owner] = %v, want risk-team", got)
	}
}

func fmtSystemID(i int) string {
	const digits = "0123456789"
	return "sys-" + string([]byte{digits[i/10], digits[i%10]})
}
