// Package metrics provides Prometheus metrics collection for Saturn.
//
// # Overview
//
// The metrics package implements Prometheus metrics for monitoring profile
// evaluations and planner runs. Metric construction follows the standard
// registry pattern: a Collector owns a *prometheus.Registry plus the typed
// metric groups, and exposes them through an HTTP handler.
//
// # Metrics Categories
//
//   - Evaluation Metrics: evaluation count, duration, and finding breakdown
//   - Planner Metrics: monitoring decisions and remediation plan composition
//
// # Usage
//
//	collector := metrics.NewCollector(&cfg.Telemetry.Metrics, nil)
//	collector.Evaluations.RecordEvaluation("ai-act-high-risk", "pass", 2*time.Millisecond)
//	http.Handle(cfg.Telemetry.Metrics.Path, collector.Handler())
//
// # Prometheus Endpoint
//
// All metrics are exposed in standard Prometheus format:
//
//	# HELP saturn_evaluations_total Total number of profile evaluations
//	# TYPE saturn_evaluations_total counter
//	saturn_evaluations_total{profile_id="ai-act-high-risk",verdict="pass"} 42
package metrics
