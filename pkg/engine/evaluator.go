package engine

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"gravitas-hq/saturn/pkg/profile"
	"gravitas-hq/saturn/pkg/telemetry/metrics"
)

// ProfileResolver resolves a profile reference to a profile document.
// *profile.Registry satisfies this interface.
type ProfileResolver interface {
	Resolve(ref string) (*profile.Profile, error)
}

// Evaluator ties profile resolution, rule execution, and verdict aggregation
// into the single evaluation entrypoint.
type Evaluator struct {
	resolver ProfileResolver
	executor *Executor
	logger   *slog.Logger
	metrics  *metrics.EvaluationMetrics
}

// NewEvaluator creates an evaluator. The metrics argument may be nil when
// metrics collection is disabled.
func NewEvaluator(resolver ProfileResolver, executor *Executor, logger *slog.Logger, em *metrics.EvaluationMetrics) *Evaluator {
	if logger == nil {
		logger = slog.Default()
	}
	return &Evaluator{
		resolver: resolver,
		executor: executor,
		logger:   logger,
		metrics:  em,
	}
}

// Evaluate resolves the profile, runs its rules against the supplied context
// and evidence, and aggregates the findings into a verdict.
//
// Profile resolution and validation errors propagate unmodified so callers
// can map them to "not found" and "bad request" surfaces. Any other failure
// during profile load wraps in *EvaluationError. Rule-level failures never
// surface as errors; they become synthetic failing findings (see Executor).
func (ev *Evaluator) Evaluate(ctx context.Context, profileRef string, targetCtx map[string]any, evidence map[string]any) (*EvaluationResult, error) {
	start := time.Now()

	p, err := ev.resolver.Resolve(profileRef)
	if err != nil {
		var notFound *profile.NotFoundError
		var invalid *profile.ValidationError
		if errors.As(err, &notFound) || errors.As(err, &invalid) {
			return nil, err
		}
		return nil, &EvaluationError{
			ProfileRef: profileRef,
			Message:    "failed to load profile",
			Cause:      err,
		}
	}

	findings := ev.executor.Run(ctx, p, targetCtx, evidence)
	score, verdict := Aggregate(findings)

	result := &EvaluationResult{
		ProfileRef: profileRef,
		ProfileID:  p.ProfileID,
		Version:    p.Version,
		Summary: Summary{
			Verdict:      verdict,
			Score:        score,
			FindingCount: len(findings),
			ProfileRef:   profileRef,
			ProfileID:    p.ProfileID,
		},
		Findings:    findings,
		EvaluatedAt: time.Now().UTC().Format(time.RFC3339),
	}

	ev.logger.Info("evaluation completed",
		"profile_ref", profileRef,
		"profile_id", p.ProfileID,
		"version", p.Version,
		"verdict", string(verdict),
		"score", score,
		"finding_count", len(findings),
		"duration_ms", time.Since(start).Milliseconds(),
	)

	if ev.metrics != nil {
		ev.metrics.RecordEvaluation(p.ProfileID, string(verdict), time.Since(start))
		for _, f := range findings {
			ev.metrics.RecordFinding(string(f.Severity), string(f.Status))
		}
	}

	return result, nil
}

// EvaluateRequest evaluates a transport-agnostic request shape. Transports
// that carry an EvalRequest on the wire can hand it straight through.
func (ev *Evaluator) EvaluateRequest(ctx context.Context, req EvalRequest) (*EvaluationResult, error) {
	return ev.Evaluate(ctx, req.ProfileRef, req.Context, req.Evidence)
}
