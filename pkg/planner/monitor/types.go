package monitor

// ActionType enumerates the planner's per-target decisions.
type ActionType string

const (
	// ActionRunEvaluation indicates the target needs a fresh evaluation.
	ActionRunEvaluation ActionType = "run_evaluation"

	// ActionSkip indicates the existing evaluation is still acceptable.
	ActionSkip ActionType = "skip"
)

// Target names a system in monitoring scope plus optional hints used for
// profile resolution.
type Target struct {
	// SystemID uniquely identifies the monitored system.
	SystemID string `yaml:"system_id" json:"system_id"`

	// UseCase optionally classifies the system for mapping lookups.
	UseCase string `yaml:"use_case,omitempty" json:"use_case,omitempty"`

	// SystemType optionally refines the mapping lookup.
	SystemType string `yaml:"system_type,omitempty" json:"system_type,omitempty"`

	// ProfileRef optionally pins the profile for this target, overriding
	// mapping and default resolution.
	ProfileRef string `yaml:"profile_ref,omitempty" json:"profile_ref,omitempty"`

	// Metadata is opaque caller data carried through to the action.
	Metadata map[string]any `yaml:"metadata,omitempty" json:"metadata,omitempty"`
}

// LastEvaluation is the subset of a stored evaluation the planner consumes.
type LastEvaluation struct {
	// Verdict is the aggregated verdict of the previous evaluation.
	Verdict string

	// EvaluatedAt is the previous evaluation's timestamp in RFC 3339 form.
	// It may be empty or malformed; the planner treats both as "no
	// timestamp".
	EvaluatedAt string
}

// Action records the planner's decision for one target.
type Action struct {
	// SystemID identifies the target this decision applies to.
	SystemID string `json:"system_id"`

	// Action is the decision: run_evaluation or skip.
	Action ActionType `json:"action"`

	// Reason is a human-readable explanation of the decision.
	Reason string `json:"reason"`

	// ProfileRef is the resolved profile reference for the target, empty
	// when no profile could be resolved.
	ProfileRef string `json:"profile_ref,omitempty"`

	// UseCase echoes the target's use case.
	UseCase string `json:"use_case,omitempty"`

	// SystemType echoes the target's system type.
	SystemType string `json:"system_type,omitempty"`

	// LastEvaluatedAt is the parsed previous-evaluation timestamp in
	// RFC 3339 UTC form, empty when none was available.
	LastEvaluatedAt string `json:"last_evaluated_at,omitempty"`

	// LastVerdict is the previous evaluation's verdict, empty when no
	// previous evaluation exists.
	LastVerdict string `json:"last_verdict,omitempty"`

	// Extra carries the target's metadata through the plan.
	Extra map[string]any `json:"extra,omitempty"`
}

// Plan is the ordered result of one planning pass.
type Plan struct {
	// PlanID uniquely identifies this planning pass.
	PlanID string `json:"plan_id"`

	// GeneratedAt is the plan creation timestamp in RFC 3339 UTC form.
	GeneratedAt string `json:"generated_at"`

	// Actions lists one decision per input target, in input order.
	Actions []Action `json:"actions"`
}

// RunCount returns the number of actions deciding run_evaluation.
func (p *Plan) RunCount() int {
	n := 0
	for _, a := range p.Actions {
		if a.Action == ActionRunEvaluation {
			n++
		}
	}
	return n
}
