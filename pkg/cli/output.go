package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"gravitas-hq/saturn/pkg/engine"
	"gravitas-hq/saturn/pkg/planner/monitor"
	"gravitas-hq/saturn/pkg/planner/remediation"
)

// OutputFormat represents the output format for command results.
type OutputFormat string

const (
	// FormatText is plain text output (default).
	FormatText OutputFormat = "text"
	// FormatJSON is JSON output.
	FormatJSON OutputFormat = "json"
)

// Formatter formats command output.
type Formatter interface {
	FormatTo(w io.Writer, data any) error
}

// JSONFormatter formats output as indented JSON.
type JSONFormatter struct{}

// FormatTo writes data to writer in JSON format.
func (f *JSONFormatter) FormatTo(w io.Writer, data any) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(data)
}

// TextFormatter formats output as human-readable text. Known result types
// get dedicated renderings; everything else falls back to %v.
type TextFormatter struct{}

// FormatTo writes data to writer in text format.
func (f *TextFormatter) FormatTo(w io.Writer, data any) error {
	switch v := data.(type) {
	case *engine.EvaluationResult:
		return writeEvaluationText(w, v)
	case *monitor.Plan:
		return writeMonitoringPlanText(w, v)
	case *remediation.Plan:
		return writeRemediationPlanText(w, v)
	default:
		_, err := fmt.Fprintf(w, "%v\n", data)
		return err
	}
}

// NewFormatter creates a formatter for the specified format.
func NewFormatter(format OutputFormat) Formatter {
	switch format {
	case FormatJSON:
		return &JSONFormatter{}
	default:
		return &TextFormatter{}
	}
}

func writeEvaluationText(w io.Writer, result *engine.EvaluationResult) error {
	fmt.Fprintf(w, "Profile:  %s (version %s)\n", result.ProfileID, result.Version)
	fmt.Fprintf(w, "Verdict:  %s (score %.2f)\n", result.Summary.Verdict, result.Summary.Score)
	fmt.Fprintf(w, "Findings: %d\n", result.Summary.FindingCount)

	if len(result.Findings) > 0 {
		fmt.Fprintln(w)
		for _, finding := range result.Findings {
			fmt.Fprintf(w, "  [%s/%s] %s: %s\n",
				finding.Status, finding.Severity, finding.ID, finding.Message)
		}
	}

	_, err := fmt.Fprintf(w, "\nEvaluated at %s\n", result.EvaluatedAt)
	return err
}

func writeMonitoringPlanText(w io.Writer, plan *monitor.Plan) error {
	fmt.Fprintf(w, "Monitoring plan %s (generated %s)\n", plan.PlanID, plan.GeneratedAt)
	fmt.Fprintf(w, "Targets: %d, re-evaluations: %d\n\n", len(plan.Actions), plan.RunCount())

	for _, action := range plan.Actions {
		line := fmt.Sprintf("  %-14s %s", action.Action, action.SystemID)
		if action.ProfileRef != "" {
			line += fmt.Sprintf(" (profile %s)", action.ProfileRef)
		}
		fmt.Fprintf(w, "%s\n      %s\n", line, action.Reason)
	}

	return nil
}

func writeRemediationPlanText(w io.Writer, plan *remediation.Plan) error {
	header := fmt.Sprintf("Remediation plan: verdict %s (score %.2f)", plan.Verdict, plan.Score)
	if plan.SystemID != "" {
		header += " for " + plan.SystemID
	}
	fmt.Fprintln(w, header)
	fmt.Fprintf(w, "Items: %d, requiring human review: %d\n\n", len(plan.Items), plan.HITLCount())

	for _, item := range plan.Items {
		hitl := ""
		if item.RequiresHITL {
			hitl = " [HITL]"
		}
		fmt.Fprintf(w, "  P%d [%s/%s]%s %s\n      %s\n",
			item.Priority, item.Status, item.Severity, hitl, item.ID, item.RecommendedAction)
	}

	return nil
}

// ParseOutputFormat validates a --output flag value.
func ParseOutputFormat(value string) (OutputFormat, error) {
	switch strings.ToLower(value) {
	case "", "text":
		return FormatText, nil
	case "json":
		return FormatJSON, nil
	default:
		return FormatText, fmt.Errorf("unknown output format %q (expected text or json)", value)
	}
}
