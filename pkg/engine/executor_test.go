package engine

import (
	"context"
	"errors"
	"fmt"
	"reflect"
	"testing"

	"gravitas-hq/saturn/pkg/profile"
)

func testProfile(ruleIDs ...string) *profile.Profile {
	p := &profile.Profile{
		ProfileID: "test-profile",
		Version:   "1.0.0",
	}
	for _, id := range ruleIDs {
		p.Rules = append(p.Rules, profile.RuleRef{ID: id, Weight: 1.0})
	}
	return p
}

func passRule(status Status) Rule {
	return RuleFunc(func(_ context.Context, in RuleInput) (*Finding, error) {
		return &Finding{
			ID:       in.RuleID,
			Severity: SeverityLow,
			Status:   status,
			Message:  "ok",
		}, nil
	})
}

func TestExecutor_Run_DeclarationOrder(t *testing.T) {
	rules := NewRuleSet()
	rules.SetFallback(passRule(StatusPass))
	executor := NewExecutor(rules, nil, nil)

	findings := executor.Run(context.Background(), testProfile("c", "a", "b"), nil, nil)

	if len(findings) != 3 {
		t.Fatalf("got %d findings, want 3", len(findings))
	}
	for i, want := range []string{"c", "a", "b"} {
		if findings[i].ID != want {
			t.Errorf("findings[%d].ID = %q, want %q", i, findings[i].ID, want)
		}
	}
}

func TestExecutor_Run_ErrorIsolatedAsSyntheticFailure(t *testing.T) {
	rules := NewRuleSet()
	rules.SetFallback(passRule(StatusPass))
	if err := rules.Register("broken", RuleFunc(func(context.Context, RuleInput) (*Finding, error) {
		return nil, errors.New("backend unavailable")
	})); err != nil {
		t.Fatal(err)
	}
	executor := NewExecutor(rules, nil, nil)

	findings := executor.Run(context.Background(), testProfile("ok-1", "broken", "ok-2"), nil, nil)

	if len(findings) != 3 {
		t.Fatalf("got %d findings, want 3 (broken rule must not abort the run)", len(findings))
	}

	synthetic := findings[1]
	if synthetic.ID != "broken" {
		t.Errorf("synthetic.ID = %q, want %q", synthetic.ID, "broken")
	}
	if synthetic.Status != StatusFail {
		t.Errorf("synthetic.Status = %q, want %q", synthetic.Status, StatusFail)
	}
	if synthetic.Severity != DefaultSeverity {
		t.Errorf("synthetic.Severity = %q, want %q", synthetic.Severity, DefaultSeverity)
	}
	if _, ok := synthetic.Data["error"]; !ok {
		t.Error("synthetic finding missing error detail in Data")
	}
}

func TestExecutor_Run_PanicIsolated(t *testing.T) {
	rules := NewRuleSet()
	if err := rules.Register("panicky", RuleFunc(func(context.Context, RuleInput) (*Finding, error) {
		panic("boom")
	})); err != nil {
		t.Fatal(err)
	}
	executor := NewExecutor(rules, nil, nil)

	findings := executor.Run(context.Background(), testProfile("panicky"), nil, nil)

	if len(findings) != 1 {
		t.Fatalf("got %d findings, want 1", len(findings))
	}
	if findings[0].Status != StatusFail {
		t.Errorf("status = %q, want %q", findings[0].Status, StatusFail)
	}
}

func TestExecutor_Run_NilFindingSkipped(t *testing.T) {
	rules := NewRuleSet()
	if err := rules.Register("inapplicable", RuleFunc(func(context.Context, RuleInput) (*Finding, error) {
		return nil, nil
	})); err != nil {
		t.Fatal(err)
	}
	rules.SetFallback(passRule(StatusPass))
	executor := NewExecutor(rules, nil, nil)

	findings := executor.Run(context.Background(), testProfile("inapplicable", "other"), nil, nil)

	if len(findings) != 1 {
		t.Fatalf("got %d findings, want 1", len(findings))
	}
	if findings[0].ID != "other" {
		t.Errorf("findings[0].ID = %q, want %q", findings[0].ID, "other")
	}
}

func TestExecutor_Run_ParamDefaultsAndOverrides(t *testing.T) {
	var captured map[string]any
	rules := NewRuleSet()
	rules.SetFallback(RuleFunc(func(_ context.Context, in RuleInput) (*Finding, error) {
		captured = in.Params
		return nil, nil
	}))
	executor := NewExecutor(rules, nil, nil)

	p := &profile.Profile{
		ProfileID: "test-profile",
		Version:   "1.0.0",
		Rules: []profile.RuleRef{
			{ID: "r1", Weight: 1.0, Params: map[string]any{"severity": "critical", "threshold": 3}},
		},
	}
	executor.Run(context.Background(), p, nil, nil)

	if captured == nil {
		t.Fatal("rule was not invoked")
	}
	if captured["severity"] != "critical" {
		t.Errorf("severity = %v, want critical (profile params override defaults)", captured["severity"])
	}
	if captured["title"] != "Rule r1" {
		t.Errorf("title = %v, want %q", captured["title"], "Rule r1")
	}
	if captured["threshold"] != 3 {
		t.Errorf("threshold = %v, want 3", captured["threshold"])
	}
}

func TestExecutor_Run_NormalizesFindingEnums(t *testing.T) {
	rules := NewRuleSet()
	rules.SetFallback(RuleFunc(func(_ context.Context, in RuleInput) (*Finding, error) {
		return &Finding{
			ID:       in.RuleID,
			Severity: "CATASTROPHIC",
			Status:   "Errored",
		}, nil
	}))
	executor := NewExecutor(rules, nil, nil)

	findings := executor.Run(context.Background(), testProfile("r1"), nil, nil)

	if findings[0].Severity != DefaultSeverity {
		t.Errorf("severity = %q, want %q", findings[0].Severity, DefaultSeverity)
	}
	if findings[0].Status != StatusUnknown {
		t.Errorf("status = %q, want %q", findings[0].Status, StatusUnknown)
	}
	if findings[0].Title != "Rule r1" {
		t.Errorf("title = %q, want %q", findings[0].Title, "Rule r1")
	}
}

func TestExecutor_Run_Idempotent(t *testing.T) {
	rules := NewRuleSet()
	executor := NewExecutor(rules, nil, nil)

	p := testProfile("r1", "r2")
	targetCtx := map[string]any{"system_name": "demo-system"}
	evidence := map[string]any{"k": "v"}

	first := executor.Run(context.Background(), p, targetCtx, evidence)
	second := executor.Run(context.Background(), p, targetCtx, evidence)

	if !reflect.DeepEqual(first, second) {
		t.Errorf("repeated evaluation differs:\nfirst:  %v\nsecond: %v", first, second)
	}
}

func TestExecutor_Run_ManyRules(t *testing.T) {
	rules := NewRuleSet()
	rules.SetFallback(passRule(StatusPass))
	executor := NewExecutor(rules, nil, nil)

	p := &profile.Profile{ProfileID: "big", Version: "1.0.0"}
	for i := 0; i < 50; i++ {
		p.Rules = append(p.Rules, profile.RuleRef{ID: fmt.Sprintf("rule-%02d", i), Weight: 1.0})
	}

	findings := executor.Run(context.Background(), p, nil, nil)
	if len(findings) != 50 {
		t.Fatalf("got %d findings, want 50", len(findings))
	}
	for i, f := range findings {
		if want := fmt.Sprintf("rule-%02d", i); f.ID != want {
			t.Fatalf("findings[%d].ID = %q, want %q", i, f.ID, want)
		}
	}
}
