package remediation

import (
	"log/slog"
	"sort"
	"strconv"

	"gravitas-hq/saturn/pkg/config"
	"gravitas-hq/saturn/pkg/engine"
	"gravitas-hq/saturn/pkg/telemetry/metrics"
)

// Planner triages evaluation findings into a remediation queue.
type Planner struct {
	cfg     config.EscalationConfig
	logger  *slog.Logger
	metrics *metrics.PlannerMetrics
}

// NewPlanner creates a remediation planner. The metrics argument may be nil
// when metrics collection is disabled.
func NewPlanner(cfg config.EscalationConfig, logger *slog.Logger, pm *metrics.PlannerMetrics) *Planner {
	if logger == nil {
		logger = slog.Default()
	}
	return &Planner{cfg: cfg, logger: logger, metrics: pm}
}

// BuildPlan triages every finding of an evaluation result into an item and
// returns them sorted by (priority, id) ascending. systemID may be empty
// when the evaluated system is unknown.
func (p *Planner) BuildPlan(result *engine.EvaluationResult, systemID string) *Plan {
	plan := &Plan{SystemID: systemID}
	if result == nil {
		return plan
	}

	plan.ProfileID = result.ProfileID
	plan.Verdict = engine.NormalizeStatus(string(result.Summary.Verdict))
	plan.Score = result.Summary.Score
	plan.Items = make([]Item, 0, len(result.Findings))

	for _, f := range result.Findings {
		severity := engine.NormalizeSeverity(string(f.Severity))
		status := engine.NormalizeStatus(string(f.Status))
		requiresHITL := p.requiresHITL(status)

		item := Item{
			ID:                f.ID,
			Title:             f.Title,
			Severity:          severity,
			Status:            status,
			Message:           f.Message,
			ProfileID:         result.ProfileID,
			SystemID:          systemID,
			RecommendedAction: recommendedAction(status, severity),
			RequiresHITL:      requiresHITL,
			Priority:          severity.Rank(),
		}
		plan.Items = append(plan.Items, item)

		if p.metrics != nil {
			p.metrics.RecordRemediationItem(strconv.Itoa(item.Priority), requiresHITL)
		}
	}

	sort.SliceStable(plan.Items, func(i, j int) bool {
		if plan.Items[i].Priority != plan.Items[j].Priority {
			return plan.Items[i].Priority < plan.Items[j].Priority
		}
		return plan.Items[i].ID < plan.Items[j].ID
	})

	p.logger.Info("remediation plan built",
		"system_id", systemID,
		"profile_id", plan.ProfileID,
		"verdict", string(plan.Verdict),
		"items", len(plan.Items),
		"hitl_items", plan.HITLCount(),
	)

	return plan
}

// requiresHITL applies the escalation flags to a normalized status.
func (p *Planner) requiresHITL(status engine.Status) bool {
	switch status {
	case engine.StatusFail:
		return p.cfg.HITLOnFail == nil || *p.cfg.HITLOnFail
	case engine.StatusWarn:
		return p.cfg.HITLOnWarn != nil && *p.cfg.HITLOnWarn
	default:
		return false
	}
}

// recommendedAction returns the triage guidance for a (status, severity)
// pair. Critical and high severities share a bucket, as do medium and low.
func recommendedAction(status engine.Status, severity engine.Severity) string {
	urgent := severity == engine.SeverityCritical || severity == engine.SeverityHigh

	switch status {
	case engine.StatusFail:
		if urgent {
			return "Immediate remediation required; escalate to governance owner."
		}
		return "Remediate in next governance sprint and document mitigation steps."
	case engine.StatusWarn:
		if urgent {
			return "Investigate root cause and plan remediation; consider HITL review."
		}
		return "Monitor and address as part of regular maintenance."
	case engine.StatusPass:
		return "No remediation required; continue monitoring."
	default:
		return "Status unknown; manual review recommended."
	}
}
