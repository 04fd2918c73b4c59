// Package cli provides shared helpers for the saturn command line: output
// formatting for evaluation results and plans, and typed command errors
// mapped to process exit codes.
package cli
