package metrics

import (
	"time"

	"gravitas-hq/saturn/pkg/config"

	"github.com/prometheus/client_golang/prometheus"
)

// EvaluationMetrics tracks metrics related to profile evaluation.
//
// Metrics:
//   - saturn_evaluations_total: Total profile evaluations by profile and verdict
//   - saturn_evaluation_duration_seconds: Profile evaluation duration
//   - saturn_findings_total: Findings produced, by severity and status
//   - saturn_rule_failures_total: Rules isolated into synthetic failures
type EvaluationMetrics struct {
	// Total profile evaluations
	evaluationsTotal *prometheus.CounterVec

	// Evaluation duration histogram
	evaluationDuration *prometheus.HistogramVec

	// Findings produced across evaluations
	findingsTotal *prometheus.CounterVec

	// Rule evaluations that errored or panicked
	ruleFailuresTotal *prometheus.CounterVec
}

// NewEvaluationMetrics creates and registers evaluation metrics with the
// provided registry.
func NewEvaluationMetrics(cfg *config.MetricsConfig, registry *prometheus.Registry) *EvaluationMetrics {
	em := &EvaluationMetrics{
		evaluationsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: cfg.Namespace,
				Name:      "evaluations_total",
				Help:      "Total number of profile evaluations",
			},
			[]string{"profile_id", "verdict"},
		),

		evaluationDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: cfg.Namespace,
				Name:      "evaluation_duration_seconds",
				Help:      "Duration of profile evaluation in seconds",
				// Rule bodies are in-process heuristics, so evaluations
				// should complete well under 100ms.
				Buckets: prometheus.ExponentialBuckets(0.0001, 2, 12), // 100µs to ~400ms
			},
			[]string{"profile_id"},
		),

		findingsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: cfg.Namespace,
				Name:      "findings_total",
				Help:      "Total number of findings produced by evaluations",
			},
			[]string{"severity", "status"},
		),

		ruleFailuresTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: cfg.Namespace,
				Name:      "rule_failures_total",
				Help:      "Total number of rule evaluations isolated into synthetic failures",
			},
			[]string{"rule_id"},
		),
	}

	registry.MustRegister(
		em.evaluationsTotal,
		em.evaluationDuration,
		em.findingsTotal,
		em.ruleFailuresTotal,
	)

	return em
}

// RecordEvaluation records one completed profile evaluation.
//
// Parameters:
//   - profileID: Profile identifier
//   - verdict: Aggregated verdict ("pass", "warn", "fail")
//   - duration: Time taken to evaluate the profile
func (em *EvaluationMetrics) RecordEvaluation(profileID, verdict string, duration time.Duration) {
	em.evaluationsTotal.WithLabelValues(profileID, verdict).Inc()
	em.evaluationDuration.WithLabelValues(profileID).Observe(duration.Seconds())
}

// RecordFinding records one finding produced during an evaluation.
func (em *EvaluationMetrics) RecordFinding(severity, status string) {
	em.findingsTotal.WithLabelValues(severity, status).Inc()
}

// RecordRuleFailure records a rule evaluation that errored or panicked and
// was isolated into a synthetic failing finding.
func (em *EvaluationMetrics) RecordRuleFailure(ruleID string) {
	em.ruleFailuresTotal.WithLabelValues(ruleID).Inc()
}
