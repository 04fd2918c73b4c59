package engine

import "fmt"

// RuleEvaluationError represents a failure inside a single rule's
// evaluation. The executor isolates it into a synthetic failing finding
// rather than aborting the run.
type RuleEvaluationError struct {
	// RuleID is the id of the rule that failed.
	RuleID string

	// Message describes the failure.
	Message string

	// Cause is the underlying error, if any.
	Cause error
}

// Error implements the error interface.
func (e *RuleEvaluationError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("rule %q evaluation error: %s: %v", e.RuleID, e.Message, e.Cause)
	}
	return fmt.Sprintf("rule %q evaluation error: %s", e.RuleID, e.Message)
}

// Unwrap implements the errors.Unwrap interface for error chain support.
func (e *RuleEvaluationError) Unwrap() error {
	return e.Cause
}

// EvaluationError wraps unexpected failures during profile load or rule
// execution that are not better classified. Profile resolution and
// validation errors are never wrapped; they propagate unmodified so callers
// can act on them.
type EvaluationError struct {
	// ProfileRef is the reference being evaluated when the failure occurred.
	ProfileRef string

	// Message describes the failure.
	Message string

	// Cause is the underlying error.
	Cause error
}

// Error implements the error interface.
func (e *EvaluationError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("evaluation of %q failed: %s: %v", e.ProfileRef, e.Message, e.Cause)
	}
	return fmt.Sprintf("evaluation of %q failed: %s", e.ProfileRef, e.Message)
}

// Unwrap implements the errors.Unwrap interface for error chain support.
func (e *EvaluationError) Unwrap() error {
	return e.Cause
}
