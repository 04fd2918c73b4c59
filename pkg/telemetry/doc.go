// Package telemetry groups the observability subpackages for Saturn.
//
// Subpackages:
//   - logging: structured logging built on log/slog
//   - metrics: Prometheus metrics for evaluations and planners
package telemetry
