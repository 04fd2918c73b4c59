// Package engine implements the policy evaluation pipeline: rule execution
// against context and evidence, finding normalization, and verdict
// aggregation.
//
// Evaluation is a single-pass, stateless function: a profile's rules run in
// declaration order, each yielding at most one finding, and the resulting
// findings reduce to one score and verdict. Identical inputs always produce
// identical results. A defect in one rule never aborts the run; it is
// isolated into a synthetic failing finding carrying the error detail.
package engine
