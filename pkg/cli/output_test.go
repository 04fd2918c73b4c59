package cli

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"gravitas-hq/saturn/pkg/engine"
	"gravitas-hq/saturn/pkg/planner/monitor"
	"gravitas-hq/saturn/pkg/planner/remediation"
)

func TestParseOutputFormat(t *testing.T) {
	tests := []struct {
		input   string
		want    OutputFormat
		wantErr bool
	}{
		{"", FormatText, false},
		{"text", FormatText, false},
		{"json", FormatJSON, false},
		{"JSON", FormatJSON, false},
		{"yaml", FormatText, true},
	}

	for _, tt := range tests {
		got, err := ParseOutputFormat(tt.input)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseOutputFormat(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			continue
		}
		if !tt.wantErr && got != tt.want {
			t.Errorf("ParseOutputFormat(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}

func TestNewFormatter(t *testing.T) {
	if _, ok := NewFormatter(FormatJSON).(*JSONFormatter); !ok {
		t.Error("NewFormatter(json) did not return a JSONFormatter")
	}
	if _, ok := NewFormatter(FormatText).(*TextFormatter); !ok {
		t.Error("NewFormatter(text) did not return a TextFormatter")
	}
}

func TestJSONFormatter_RoundTrip(t *testing.T) {
	result := &engine.EvaluationResult{
		ProfileID: "gdpr-baseline",
		Version:   "1.0.0",
		Summary:   engine.Summary{Verdict: engine.StatusWarn, Score: 0.8},
	}

	var buf bytes.Buffer
	if err := (&JSONFormatter{}).FormatTo(&buf, result); err != nil {
		t.Fatalf("FormatTo() error = %v", err)
	}

	var decoded engine.EvaluationResult
	if err := json.Unmarshal(buf.Bytes(), &decoded); err != nil {
		t.Fatalf("output is not valid JSON: %v", err)
	}
	if decoded.Summary.Verdict != engine.StatusWarn {
		t.Errorf("verdict = %q, want warn", decoded.Summary.Verdict)
	}
}

func TestTextFormatter_EvaluationResult(t *testing.T) {
	result := &engine.EvaluationResult{
		ProfileID: "gdpr-baseline",
		Version:   "1.0.0",
		Summary:   engine.Summary{Verdict: engine.StatusFail, Score: 0.5, FindingCount: 1},
		Findings: []engine.Finding{
			{ID: "data-minimization", Status: engine.StatusFail, Severity: engine.SeverityHigh, Message: "no DPIA on file"},
		},
		EvaluatedAt: "2026-08-20T10:00:00Z",
	}

	var buf bytes.Buffer
	if err := (&TextFormatter{}).FormatTo(&buf, result); err != nil {
		t.Fatalf("FormatTo() error = %v", err)
	}

	out := buf.String()
	for _, want := range []string{
		"gdpr-baseline (version 1.0.0)",
		"fail (score 0.50)",
		"[fail/high] data-minimization: no DPIA on file",
		"2026-08-20T10:00:00Z",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestTextFormatter_MonitoringPlan(t *testing.T) {
	plan := &monitor.Plan{
		PlanID:      "plan-1",
		GeneratedAt: "2026-08-20T10:00:00Z",
		Actions: []monitor.Action{
			{SystemID: "sys-1", Action: monitor.ActionRunEvaluation, Reason: "No previous evaluation found.", ProfileRef: "gdpr-baseline"},
			{SystemID: "sys-2", Action: monitor.ActionSkip, Reason: "Within acceptable age and verdict thresholds."},
		},
	}

	var buf bytes.Buffer
	if err := (&TextFormatter{}).FormatTo(&buf, plan); err != nil {
		t.Fatalf("FormatTo() error = %v", err)
	}

	out := buf.String()
	for _, want := range []string{"plan-1", "re-evaluations: 1", "sys-1", "(profile gdpr-baseline)", "sys-2"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestTextFormatter_RemediationPlan(t *testing.T) {
	plan := &remediation.Plan{
		SystemID: "sys-1",
		Verdict:  engine.StatusFail,
		Score:    0.5,
		Items: []remediation.Item{
			{
				ID:                "data-minimization",
				Status:            engine.StatusFail,
				Severity:          engine.SeverityHigh,
				Priority:          1,
				RequiresHITL:      true,
				RecommendedAction: "Immediate remediation required; escalate to governance owner.",
			},
		},
	}

	var buf bytes.Buffer
	if err := (&TextFormatter{}).FormatTo(&buf, plan); err != nil {
		t.Fatalf("FormatTo() error = %v", err)
	}

	out := buf.String()
	for _, want := range []string{"for sys-1", "requiring human review: 1", "P1 [fail/high] [HITL] data-minimization"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}
