package history

import (
	"context"
	"fmt"
	"time"

	"gravitas-hq/saturn/pkg/config"
	"gravitas-hq/saturn/pkg/engine"
)

// Record is one stored evaluation outcome for a system.
type Record struct {
	// RecordID uniquely identifies the stored record.
	RecordID string `json:"record_id"`

	// SystemID identifies the evaluated system.
	SystemID string `json:"system_id"`

	// ProfileRef is the profile reference the evaluation ran against.
	ProfileRef string `json:"profile_ref"`

	// ProfileID is the resolved profile id.
	ProfileID string `json:"profile_id"`

	// Version is the resolved profile version.
	Version string `json:"version"`

	// Verdict is the aggregated verdict.
	Verdict string `json:"verdict"`

	// Score is the aggregated score.
	Score float64 `json:"score"`

	// FindingCount is the number of findings the evaluation produced.
	FindingCount int `json:"finding_count"`

	// EvaluatedAt is the evaluation timestamp in RFC 3339 UTC form.
	EvaluatedAt string `json:"evaluated_at"`
}

// Store persists evaluation records and serves last-evaluation lookups.
type Store interface {
	// Record stores one evaluation outcome for a system.
	Record(ctx context.Context, rec *Record) error

	// LastEvaluation returns the most recent record for a system, or
	// (nil, nil) when the system has never been evaluated.
	LastEvaluation(ctx context.Context, systemID string) (*Record, error)

	// Prune deletes records older than the cutoff and returns how many
	// were removed.
	Prune(ctx context.Context, olderThan time.Time) (int, error)

	// Close releases backend resources. Close is idempotent.
	Close() error
}

// NewRecord builds a record from an evaluation result.
func NewRecord(systemID string, result *engine.EvaluationResult) *Record {
	if result == nil {
		return nil
	}
	return &Record{
		SystemID:     systemID,
		ProfileRef:   result.ProfileRef,
		ProfileID:    result.ProfileID,
		Version:      result.Version,
		Verdict:      string(result.Summary.Verdict),
		Score:        result.Summary.Score,
		FindingCount: result.Summary.FindingCount,
		EvaluatedAt:  result.EvaluatedAt,
	}
}

// NewStore creates the history store selected by the configuration.
func NewStore(cfg config.HistoryConfig) (Store, error) {
	switch cfg.Backend {
	case "", config.HistoryBackendSQLite:
		return NewSQLiteStore(cfg.SQLite)
	case config.HistoryBackendMemory:
		return NewMemoryStore(), nil
	default:
		return nil, fmt.Errorf("unknown history backend: %s", cfg.Backend)
	}
}
