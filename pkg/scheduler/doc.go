// Package scheduler drives continuous monitoring on a cron cadence.
//
// Each tick builds a monitoring plan over the configured targets and hands
// every run_evaluation action to an injected runner. A second job prunes
// evaluation history past the configured retention. The scheduler owns no
// decision logic itself; it sequences the planner, the runner, and the
// history store.
package scheduler
