package engine

// Verdict scores for the canonical reduction. The reduction depends only on
// the set of statuses present across findings; finding count, severity, and
// rule weight never influence it.
const (
	ScorePass = 1.0
	ScoreWarn = 0.8
	ScoreFail = 0.5
)

// Aggregate reduces a set of findings to a single score and verdict by
// dominance of the worst status present:
//
//	no findings          -> (1.0, pass)
//	any "fail" present   -> (0.5, fail)
//	else any "warn"      -> (0.8, warn)
//	else                 -> (1.0, pass)
//
// The reduction is order-independent, so the result is invariant to rule
// declaration or execution order.
func Aggregate(findings []Finding) (float64, Status) {
	if len(findings) == 0 {
		return ScorePass, StatusPass
	}

	hasWarn := false
	for _, f := range findings {
		switch f.Status {
		case StatusFail:
			return ScoreFail, StatusFail
		case StatusWarn:
			hasWarn = true
		}
	}

	if hasWarn {
		return ScoreWarn, StatusWarn
	}
	return ScorePass, StatusPass
}
