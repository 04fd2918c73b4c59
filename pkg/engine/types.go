package engine

import "strings"

// Severity classifies how serious a finding is.
type Severity string

// Severity levels, from least to most serious.
const (
	SeverityLow      Severity = "low"
	SeverityMedium   Severity = "medium"
	SeverityHigh     Severity = "high"
	SeverityCritical Severity = "critical"
)

// DefaultSeverity is the canonical severity for absent or unrecognized
// values. The same constant is used by the rule executor's parameter
// defaults and by remediation triage normalization so the two paths can
// never diverge.
const DefaultSeverity = SeverityMedium

// NormalizeSeverity maps a free-form severity string to a Severity.
// Matching is case-insensitive and ignores surrounding whitespace;
// unrecognized or empty values normalize to DefaultSeverity.
func NormalizeSeverity(value string) Severity {
	switch Severity(strings.ToLower(strings.TrimSpace(value))) {
	case SeverityLow:
		return SeverityLow
	case SeverityMedium:
		return SeverityMedium
	case SeverityHigh:
		return SeverityHigh
	case SeverityCritical:
		return SeverityCritical
	default:
		return DefaultSeverity
	}
}

// Rank returns the triage priority of the severity: 0 is most urgent.
func (s Severity) Rank() int {
	switch s {
	case SeverityCritical:
		return 0
	case SeverityHigh:
		return 1
	case SeverityMedium:
		return 2
	default:
		return 3
	}
}

// Status is the outcome of a single rule evaluation, or of a whole
// evaluation when used as a verdict.
type Status string

// Status values, from best to worst outcome.
const (
	StatusPass    Status = "pass"
	StatusWarn    Status = "warn"
	StatusFail    Status = "fail"
	StatusUnknown Status = "unknown"
)

// NormalizeStatus maps a free-form status string to a Status. Matching is
// case-insensitive and ignores surrounding whitespace; unrecognized or empty
// values normalize to StatusUnknown.
func NormalizeStatus(value string) Status {
	switch Status(strings.ToLower(strings.TrimSpace(value))) {
	case StatusPass:
		return StatusPass
	case StatusWarn:
		return StatusWarn
	case StatusFail:
		return StatusFail
	default:
		return StatusUnknown
	}
}

// Finding is one rule's evaluation outcome. Findings are immutable once
// produced.
type Finding struct {
	// ID mirrors the id of the rule that produced the finding.
	ID string `json:"id" yaml:"id"`

	// Title is a human-readable finding title.
	Title string `json:"title" yaml:"title"`

	// Severity classifies the finding.
	Severity Severity `json:"severity" yaml:"severity"`

	// Status is the rule outcome.
	Status Status `json:"status" yaml:"status"`

	// Message is a human-readable narrative.
	Message string `json:"message" yaml:"message"`

	// Data carries free-form diagnostic payload.
	Data map[string]any `json:"data,omitempty" yaml:"data,omitempty"`
}

// Summary is the aggregate block of an evaluation result.
type Summary struct {
	Verdict      Status  `json:"verdict" yaml:"verdict"`
	Score        float64 `json:"score" yaml:"score"`
	FindingCount int     `json:"finding_count" yaml:"finding_count"`
	ProfileRef   string  `json:"profile_ref" yaml:"profile_ref"`
	ProfileID    string  `json:"profile_id" yaml:"profile_id"`
}

// EvaluationResult is the artifact produced by one evaluation call.
// It is created once and never mutated.
type EvaluationResult struct {
	ProfileRef string    `json:"profile_ref" yaml:"profile_ref"`
	ProfileID  string    `json:"profile_id" yaml:"profile_id"`
	Version    string    `json:"version" yaml:"version"`
	Summary    Summary   `json:"summary" yaml:"summary"`
	Findings   []Finding `json:"findings" yaml:"findings"`

	// EvaluatedAt is the RFC3339 timestamp of the evaluation.
	EvaluatedAt string `json:"evaluated_at,omitempty" yaml:"evaluated_at,omitempty"`
}

// EvalRequest is the transport-agnostic evaluation request shape.
type EvalRequest struct {
	// ProfileRef addresses the governance profile, e.g. "iso-42001@1.2.0".
	ProfileRef string `json:"profile_ref" yaml:"profile_ref"`

	// Context carries system-level context (system_id, owner, environment).
	Context map[string]any `json:"context,omitempty" yaml:"context,omitempty"`

	// Evidence carries the evidence bundle (model cards, logs, configs).
	Evidence map[string]any `json:"evidence,omitempty" yaml:"evidence,omitempty"`
}
