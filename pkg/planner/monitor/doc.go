// Package monitor implements the monitoring cadence planner.
//
// # Overview
//
// Given a set of monitoring targets and access to each target's last
// evaluation, the planner decides per target whether a fresh evaluation
// should run or the existing result is still acceptable. Decisions follow a
// fixed rule chain (first match wins):
//
//  1. No previous evaluation -> run
//  2. Previous verdict in the configured rerun set -> run
//  3. Previous verdict is "warn" and rerun-on-warn is enabled -> run
//  4. Previous evaluation has no parseable timestamp -> run
//  5. Previous evaluation older than the maximum age -> run
//  6. Otherwise -> skip
//
// Each target is decided independently; no state is carried between targets.
// Retrieval of the last evaluation is a caller-supplied function, typically
// backed by the history store. Retrieval failures degrade to "no previous
// evaluation" so a flaky backend can never fail a planning pass.
//
// # Concurrency
//
// Decisions for a batch run on a bounded worker pool because last-evaluation
// retrieval may block on I/O. The output plan always lists actions in input
// target order regardless of completion order. Cancelling the context stops
// dispatching new targets; decisions already made remain in the plan.
package monitor
