package remediation

import "gravitas-hq/saturn/pkg/engine"

// Item is one triaged finding in a remediation plan.
type Item struct {
	// ID is the originating rule id.
	ID string `json:"id"`

	// Title is the finding title.
	Title string `json:"title"`

	// Severity is the normalized severity.
	Severity engine.Severity `json:"severity"`

	// Status is the normalized status.
	Status engine.Status `json:"status"`

	// Message is the finding message.
	Message string `json:"message"`

	// ProfileID is the profile that produced the finding.
	ProfileID string `json:"profile_id,omitempty"`

	// SystemID is the evaluated system, when known.
	SystemID string `json:"system_id,omitempty"`

	// RecommendedAction is the triage guidance for this item.
	RecommendedAction string `json:"recommended_action"`

	// RequiresHITL reports whether the item needs human review per the
	// configured escalation flags.
	RequiresHITL bool `json:"requires_hitl"`

	// Priority is the numeric rank derived from severity; lower is more
	// urgent (critical=0, high=1, medium=2, low=3).
	Priority int `json:"priority"`
}

// Plan is the triaged remediation queue for one evaluation.
type Plan struct {
	// SystemID is the evaluated system, when known.
	SystemID string `json:"system_id,omitempty"`

	// ProfileID is the profile the evaluation ran against.
	ProfileID string `json:"profile_id,omitempty"`

	// Verdict is the evaluation's aggregated verdict.
	Verdict engine.Status `json:"verdict"`

	// Score is the evaluation's aggregated score.
	Score float64 `json:"score"`

	// Items lists the triaged findings sorted by (priority, id).
	Items []Item `json:"items"`
}

// HITLCount returns the number of items requiring human review.
func (p *Plan) HITLCount() int {
	n := 0
	for _, item := range p.Items {
		if item.RequiresHITL {
			n++
		}
	}
	return n
}
