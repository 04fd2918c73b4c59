// Package history persists evaluation results so the monitoring planner can
// consult each system's most recent evaluation.
//
// Two backends implement the Store interface: a SQLite store for durable
// single-instance deployments and an in-memory store for tests and
// ephemeral runs. Both record one row per completed evaluation keyed by
// system id and support retention-based pruning.
package history
