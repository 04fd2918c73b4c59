// Saturn is a governance policy evaluation service.
//
// It evaluates governed systems against versioned governance profiles,
// plans monitoring cadence for system fleets, and triages findings into
// remediation queues:
//   - Profile registry with versioned YAML profiles and hot reload
//   - Rule executor with per-rule fault isolation
//   - Verdict aggregation into pass/warn/fail with a numeric score
//   - Monitoring cadence planning over system inventories
//   - Remediation triage with HITL escalation
//
// Usage:
//
//	# Evaluate a system against a profile
//	saturn evaluate ai-act-high-risk@1.0.0 --context context.json --evidence evidence.json
//
//	# Validate profile files
//	saturn lint --dir profiles/
//
//	# Build a one-shot monitoring plan
//	saturn monitor --targets targets.yaml
//
//	# Triage an evaluation result into a remediation plan
//	saturn remediate --input result.json
//
//	# Start the continuous monitoring daemon
//	saturn run --config /path/to/config.yaml
//
//	# Show version information
//	saturn version
package main

func main() {
	Execute()
}
