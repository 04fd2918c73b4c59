package history

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
)

// MemoryStore implements Store with an in-process map. It is intended for
// tests and ephemeral runs; contents are lost when the process exits.
type MemoryStore struct {
	mu      sync.RWMutex
	records map[string][]memoryRecord // keyed by system id, append order
}

type memoryRecord struct {
	rec        Record
	recordedAt time.Time
}

// NewMemoryStore creates an empty in-memory history store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		records: make(map[string][]memoryRecord),
	}
}

// Record stores one evaluation outcome for a system.
func (s *MemoryStore) Record(_ context.Context, rec *Record) error {
	if rec == nil {
		return fmt.Errorf("record cannot be nil")
	}
	if rec.SystemID == "" {
		return fmt.Errorf("system id cannot be empty")
	}

	if rec.RecordID == "" {
		rec.RecordID = uuid.NewString()
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.records[rec.SystemID] = append(s.records[rec.SystemID], memoryRecord{
		rec:        *rec,
		recordedAt: time.Now(),
	})
	return nil
}

// LastEvaluation returns the most recent record for a system, or (nil, nil)
// when the system has never been evaluated.
func (s *MemoryStore) LastEvaluation(_ context.Context, systemID string) (*Record, error) {
	if systemID == "" {
		return nil, fmt.Errorf("system id cannot be empty")
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	recs := s.records[systemID]
	if len(recs) == 0 {
		return nil, nil
	}

	last := recs[len(recs)-1].rec
	return &last, nil
}

// Prune deletes records older than the cutoff.
func (s *MemoryStore) Prune(_ context.Context, olderThan time.Time) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	deleted := 0
	for systemID, recs := range s.records {
		kept := recs[:0]
		for _, mr := range recs {
			if mr.recordedAt.Before(olderThan) {
				deleted++
				continue
			}
			kept = append(kept, mr)
		}
		if len(kept) == 0 {
			delete(s.records, systemID)
		} else {
			s.records[systemID] = kept
		}
	}

	return deleted, nil
}

// Close is a no-op for the in-memory store.
func (s *MemoryStore) Close() error {
	return nil
}
