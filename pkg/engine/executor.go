package engine

import (
	"context"
	"fmt"
	"log/slog"

	"gravitas-hq/saturn/pkg/profile"
	"gravitas-hq/saturn/pkg/telemetry/metrics"
)

// Executor runs the rules declared by a profile against supplied context and
// evidence, producing zero or one finding per rule.
type Executor struct {
	rules   *RuleSet
	logger  *slog.Logger
	metrics *metrics.EvaluationMetrics
}

// NewExecutor creates a rule executor backed by the given rule set. The
// metrics argument may be nil when metrics collection is disabled.
func NewExecutor(rules *RuleSet, logger *slog.Logger, em *metrics.EvaluationMetrics) *Executor {
	if rules == nil {
		rules = NewRuleSet()
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Executor{rules: rules, logger: logger, metrics: em}
}

// Run evaluates every rule in the profile, in declaration order.
//
// For each rule reference the parameters are merged with executor defaults
// (severity "medium", title "Rule <id>") before evaluation. A rule returning
// no finding is silently omitted. A rule returning an error, or panicking,
// is isolated into a synthetic failing finding carrying the error detail so
// one defective rule can never corrupt or abort the rest of the run.
func (e *Executor) Run(ctx context.Context, p *profile.Profile, targetCtx map[string]any, evidence map[string]any) []Finding {
	if p == nil {
		return nil
	}

	if targetCtx == nil {
		targetCtx = map[string]any{}
	}
	if evidence == nil {
		evidence = map[string]any{}
	}

	findings := make([]Finding, 0, len(p.Rules))
	for _, ref := range p.Rules {
		in := RuleInput{
			RuleID:   ref.ID,
			Params:   mergeParams(ref),
			Context:  targetCtx,
			Evidence: evidence,
		}

		finding, err := e.evaluateRule(ctx, in)
		if err != nil {
			e.logger.Warn("rule evaluation failed, recording synthetic failure",
				"rule_id", ref.ID,
				"profile_id", p.ProfileID,
				"error", err,
			)
			if e.metrics != nil {
				e.metrics.RecordRuleFailure(ref.ID)
			}
			findings = append(findings, syntheticFailure(ref.ID, in.Params, err))
			continue
		}

		if finding == nil {
			// Rule is inapplicable to this target.
			continue
		}

		findings = append(findings, normalizeFinding(*finding))
	}

	return findings
}

// evaluateRule runs a single rule, converting panics into errors.
func (e *Executor) evaluateRule(ctx context.Context, in RuleInput) (finding *Finding, err error) {
	defer func() {
		if r := recover(); r != nil {
			finding = nil
			err = &RuleEvaluationError{
				RuleID:  in.RuleID,
				Message: fmt.Sprintf("panic during evaluation: %v", r),
			}
		}
	}()

	rule := e.rules.Lookup(in.RuleID)
	finding, ruleErr := rule.Evaluate(ctx, in)
	if ruleErr != nil {
		if _, ok := ruleErr.(*RuleEvaluationError); ok {
			return nil, ruleErr
		}
		return nil, &RuleEvaluationError{
			RuleID:  in.RuleID,
			Message: "rule returned an error",
			Cause:   ruleErr,
		}
	}

	return finding, nil
}

// mergeParams copies the rule's parameters over the executor defaults.
func mergeParams(ref profile.RuleRef) map[string]any {
	params := make(map[string]any, len(ref.Params)+2)
	params["severity"] = string(DefaultSeverity)
	params["title"] = fmt.Sprintf("Rule %s", ref.ID)
	for k, v := range ref.Params {
		params[k] = v
	}
	return params
}

// normalizeFinding coerces a rule-produced finding onto the canonical enums
// and fills in defaults for absent fields.
func normalizeFinding(f Finding) Finding {
	f.Severity = NormalizeSeverity(string(f.Severity))
	f.Status = NormalizeStatus(string(f.Status))
	if f.Title == "" {
		f.Title = fmt.Sprintf("Rule %s", f.ID)
	}
	return f
}

// syntheticFailure builds the failing finding that stands in for a rule
// whose evaluation errored.
func syntheticFailure(ruleID string, params map[string]any, err error) Finding {
	severity := DefaultSeverity
	if v, ok := params["severity"].(string); ok {
		severity = NormalizeSeverity(v)
	}

	title := fmt.Sprintf("Rule %s", ruleID)
	if v, ok := params["title"].(string); ok && v != "" {
		title = v
	}

	return Finding{
		ID:       ruleID,
		Title:    title,
		Severity: severity,
		Status:   StatusFail,
		Message:  fmt.Sprintf("Rule %s failed to evaluate: %v", ruleID, err),
		Data: map[string]any{
			"error": err.Error(),
		},
	}
}
