package metrics

import (
	"time"

	"gravitas-hq/saturn/pkg/config"

	"github.com/prometheus/client_golang/prometheus"
)

// PlannerMetrics tracks metrics related to planner runs.
//
// Metrics:
//   - saturn_monitoring_decisions_total: Monitoring decisions by action and reason
//   - saturn_monitoring_plan_duration_seconds: Monitoring plan build duration
//   - saturn_remediation_items_total: Remediation items by priority
//   - saturn_remediation_hitl_total: Remediation items flagged for human review
type PlannerMetrics struct {
	// Monitoring decisions per target
	monitoringDecisionsTotal *prometheus.CounterVec

	// Monitoring plan build duration histogram
	monitoringPlanDuration prometheus.Histogram

	// Remediation items grouped by priority
	remediationItemsTotal *prometheus.CounterVec

	// Remediation items requiring human-in-the-loop review
	remediationHITLTotal prometheus.Counter
}

// NewPlannerMetrics creates and registers planner metrics with the provided
// registry.
func NewPlannerMetrics(cfg *config.MetricsConfig, registry *prometheus.Registry) *PlannerMetrics {
	pm := &PlannerMetrics{
		monitoringDecisionsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: cfg.Namespace,
				Name:      "monitoring_decisions_total",
				Help:      "Total number of monitoring decisions by action and reason",
			},
			[]string{"action", "reason"},
		),

		monitoringPlanDuration: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Namespace: cfg.Namespace,
				Name:      "monitoring_plan_duration_seconds",
				Help:      "Duration of monitoring plan construction in seconds",
				Buckets:   prometheus.ExponentialBuckets(0.001, 2, 12), // 1ms to ~4s
			},
		),

		remediationItemsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: cfg.Namespace,
				Name:      "remediation_items_total",
				Help:      "Total number of remediation plan items by priority",
			},
			[]string{"priority"},
		),

		remediationHITLTotal: prometheus.NewCounter(
			prometheus.CounterOpts{
				Namespace: cfg.Namespace,
				Name:      "remediation_hitl_total",
				Help:      "Total number of remediation items requiring human review",
			},
		),
	}

	registry.MustRegister(
		pm.monitoringDecisionsTotal,
		pm.monitoringPlanDuration,
		pm.remediationItemsTotal,
		pm.remediationHITLTotal,
	)

	return pm
}

// RecordMonitoringDecision records one per-target monitoring decision.
func (pm *PlannerMetrics) RecordMonitoringDecision(action, reason string) {
	pm.monitoringDecisionsTotal.WithLabelValues(action, reason).Inc()
}

// RecordMonitoringPlan records the duration of one monitoring plan build.
func (pm *PlannerMetrics) RecordMonitoringPlan(duration time.Duration) {
	pm.monitoringPlanDuration.Observe(duration.Seconds())
}

// RecordRemediationItem records one remediation plan item.
func (pm *PlannerMetrics) RecordRemediationItem(priority string, requiresHITL bool) {
	pm.remediationItemsTotal.WithLabelValues(priority).Inc()
	if requiresHITL {
		pm.remediationHITLTotal.Inc()
	}
}
