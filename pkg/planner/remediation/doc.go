// Package remediation implements the remediation triage planner.
//
// Given an evaluation result, the planner turns each finding into a
// remediation item: it normalizes severity and status onto the canonical
// enums, assigns a numeric priority from severity, decides whether the item
// needs human-in-the-loop review from the configured escalation flags, and
// attaches a recommended action from a fixed lookup keyed by status and
// severity bucket. Items are sorted by (priority, id) so the output is a
// stable remediation queue.
//
// The planner is a pure function over its inputs: it performs no I/O and
// never fails for a normal decision path.
package remediation
