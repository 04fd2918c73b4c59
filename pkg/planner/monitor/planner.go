package monitor

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"gravitas-hq/saturn/pkg/config"
	"gravitas-hq/saturn/pkg/telemetry/metrics"

	"github.com/google/uuid"
)

// LastEvaluationFn retrieves the most recent evaluation for a system, or
// (nil, nil) when none exists. Implementations may block on I/O; the planner
// bounds how many are in flight. A returned error is treated the same as
// "no previous evaluation".
type LastEvaluationFn func(ctx context.Context, systemID string) (*LastEvaluation, error)

// Planner builds monitoring plans from configured cadence thresholds.
type Planner struct {
	cfg        config.MonitoringConfig
	defaultRef string
	mappings   *config.Mappings
	lastEval   LastEvaluationFn
	logger     *slog.Logger
	metrics    *metrics.PlannerMetrics

	// now is replaceable for tests.
	now func() time.Time
}

// NewPlanner creates a monitoring planner. The mappings table may be nil
// when no mapping file is configured, and the metrics argument may be nil
// when metrics collection is disabled.
func NewPlanner(cfg config.MonitoringConfig, defaultProfileRef string, mappings *config.Mappings, lastEval LastEvaluationFn, logger *slog.Logger, pm *metrics.PlannerMetrics) *Planner {
	if logger == nil {
		logger = slog.Default()
	}
	return &Planner{
		cfg:        cfg,
		defaultRef: defaultProfileRef,
		mappings:   mappings,
		lastEval:   lastEval,
		logger:     logger,
		metrics:    pm,
		now:        time.Now,
	}
}

// decision is the outcome of the per-target rule chain.
type decision struct {
	action ActionType
	reason string

	// code is a stable low-cardinality reason identifier for metrics.
	code string

	lastEvaluatedAt string
	lastVerdict     string
}

// BuildPlan decides for every target whether a fresh evaluation is needed.
//
// Targets are processed on a worker pool bounded by the configured
// concurrency, but the returned plan lists actions in input order. When the
// context is cancelled mid-pass, dispatch stops and the plan contains only
// the decisions completed so far.
func (p *Planner) BuildPlan(ctx context.Context, targets []Target) *Plan {
	start := p.now()

	plan := &Plan{
		PlanID:      uuid.NewString(),
		GeneratedAt: start.UTC().Format(time.RFC3339),
	}

	concurrency := p.cfg.Concurrency
	if concurrency <= 0 {
		concurrency = config.DefaultMonitoringConcurrency
	}

	results := make([]*Action, len(targets))
	sem := make(chan struct{}, concurrency)
	var wg sync.WaitGroup

dispatch:
	for i, target := range targets {
		select {
		case <-ctx.Done():
			p.logger.Warn("monitoring plan cancelled, keeping completed decisions",
				"plan_id", plan.PlanID,
				"dispatched", i,
				"total", len(targets),
			)
			break dispatch
		case sem <- struct{}{}:
		}

		wg.Add(1)
		go func(idx int, t Target) {
			defer wg.Done()
			defer func() { <-sem }()

			action := p.decideTarget(ctx, t)
			results[idx] = &action
		}(i, target)
	}

	wg.Wait()

	for _, a := range results {
		if a != nil {
			plan.Actions = append(plan.Actions, *a)
		}
	}

	if p.metrics != nil {
		p.metrics.RecordMonitoringPlan(p.now().Sub(start))
	}

	p.logger.Info("monitoring plan built",
		"plan_id", plan.PlanID,
		"targets", len(targets),
		"decided", len(plan.Actions),
		"run_evaluation", plan.RunCount(),
	)

	return plan
}

// decideTarget resolves the target's profile, fetches its last evaluation,
// and runs the decision chain.
func (p *Planner) decideTarget(ctx context.Context, target Target) Action {
	profileRef := p.resolveProfile(target)

	var last *LastEvaluation
	if p.lastEval != nil {
		prev, err := p.lastEval(ctx, target.SystemID)
		if err != nil {
			p.logger.Warn("last evaluation lookup failed, treating as no previous evaluation",
				"system_id", target.SystemID,
				"error", err,
			)
		} else {
			last = prev
		}
	}

	d := p.decide(last)

	if p.metrics != nil {
		p.metrics.RecordMonitoringDecision(string(d.action), d.code)
	}

	return Action{
		SystemID:        target.SystemID,
		Action:          d.action,
		Reason:          d.reason,
		ProfileRef:      profileRef,
		UseCase:         target.UseCase,
		SystemType:      target.SystemType,
		LastEvaluatedAt: d.lastEvaluatedAt,
		LastVerdict:     d.lastVerdict,
		Extra:           target.Metadata,
	}
}

// decide runs the cadence rule chain against the previous evaluation.
// The rules are checked in a fixed order and the first match wins.
func (p *Planner) decide(last *LastEvaluation) decision {
	if last == nil {
		return decision{
			action: ActionRunEvaluation,
			reason: "No previous evaluation found.",
			code:   "no_previous_evaluation",
		}
	}

	verdict := strings.ToLower(last.Verdict)
	if verdict == "" {
		verdict = "unknown"
	}

	ts, tsOK := ParseTimestamp(last.EvaluatedAt)
	lastEvaluatedAt := ""
	if tsOK {
		lastEvaluatedAt = ts.UTC().Format(time.RFC3339)
	}

	rerunVerdicts := p.cfg.RerunOnVerdict
	if len(rerunVerdicts) == 0 {
		rerunVerdicts = config.DefaultRerunOnVerdict
	}
	for _, rv := range rerunVerdicts {
		if verdict == strings.ToLower(rv) {
			return decision{
				action:          ActionRunEvaluation,
				reason:          fmt.Sprintf("Verdict is '%s', which requires re-evaluation.", verdict),
				code:            "verdict",
				lastEvaluatedAt: lastEvaluatedAt,
				lastVerdict:     verdict,
			}
		}
	}

	rerunOnWarn := p.cfg.RerunOnWarn == nil || *p.cfg.RerunOnWarn
	if verdict == "warn" && rerunOnWarn {
		return decision{
			action:          ActionRunEvaluation,
			reason:          "Verdict is 'warn' and rerun_on_warn is enabled.",
			code:            "rerun_on_warn",
			lastEvaluatedAt: lastEvaluatedAt,
			lastVerdict:     verdict,
		}
	}

	if !tsOK {
		return decision{
			action:      ActionRunEvaluation,
			reason:      "Previous evaluation has no valid timestamp.",
			code:        "no_timestamp",
			lastVerdict: verdict,
		}
	}

	maxAgeDays := p.cfg.MaxAgeDays
	if maxAgeDays <= 0 {
		maxAgeDays = config.DefaultMaxAgeDays
	}

	ageDays := p.now().UTC().Sub(ts.UTC()).Seconds() / 86400.0
	if ageDays > maxAgeDays {
		return decision{
			action:          ActionRunEvaluation,
			reason:          fmt.Sprintf("Last evaluation is %.1f days old (> %g).", ageDays, maxAgeDays),
			code:            "max_age_exceeded",
			lastEvaluatedAt: lastEvaluatedAt,
			lastVerdict:     verdict,
		}
	}

	return decision{
		action:          ActionSkip,
		reason:          "Within acceptable age and verdict thresholds.",
		code:            "fresh",
		lastEvaluatedAt: lastEvaluatedAt,
		lastVerdict:     verdict,
	}
}

// resolveProfile applies the profile resolution precedence for a target:
// explicit target override, then the mappings table, then the global
// default reference.
func (p *Planner) resolveProfile(target Target) string {
	if target.ProfileRef != "" {
		return target.ProfileRef
	}

	if p.mappings != nil {
		if ref := p.mappings.ResolveProfile(target.UseCase, target.SystemType); ref != "" {
			return ref
		}
	}

	return p.defaultRef
}
