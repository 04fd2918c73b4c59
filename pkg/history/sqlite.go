package history

import (
	"context"
	"database/sql"
	"fmt"
	"sync"
	"time"

	"gravitas-hq/saturn/pkg/config"

	"github.com/google/uuid"
	_ "modernc.org/sqlite" // SQLite driver
)

// SQLiteStore implements Store using SQLite for persistence. It is suitable
// for single-instance deployments where evaluation history must survive
// restarts.
//
// The store uses a write-ahead log (WAL) for better concurrent read
// performance and keeps prepared statements for the hot paths.
type SQLiteStore struct {
	db        *sql.DB
	dbPath    string
	mu        sync.RWMutex
	closeOnce sync.Once

	recordStmt *sql.Stmt
	lastStmt   *sql.Stmt
	pruneStmt  *sql.Stmt
}

// NewSQLiteStore opens (or creates) the SQLite history database.
func NewSQLiteStore(cfg config.SQLiteConfig) (*SQLiteStore, error) {
	if cfg.Path == "" {
		return nil, fmt.Errorf("db path cannot be empty")
	}
	if cfg.BusyTimeout == 0 {
		cfg.BusyTimeout = config.DefaultHistoryBusyTimeout
	}
	if cfg.MaxOpenConns <= 0 {
		cfg.MaxOpenConns = config.DefaultHistoryMaxOpenConns
	}
	if cfg.MaxIdleConns <= 0 {
		cfg.MaxIdleConns = config.DefaultHistoryMaxIdleConns
	}

	dsn := fmt.Sprintf("%s?_journal_mode=WAL&_busy_timeout=%d&_synchronous=NORMAL",
		cfg.Path, int(cfg.BusyTimeout.Milliseconds()))

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	db.SetMaxOpenConns(cfg.MaxOpenConns)
	db.SetMaxIdleConns(cfg.MaxIdleConns)
	db.SetConnMaxLifetime(0)

	store := &SQLiteStore{
		db:     db,
		dbPath: cfg.Path,
	}

	if err := store.initSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}

	if err := store.prepareStatements(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to prepare statements: %w", err)
	}

	return store, nil
}

// initSchema creates the database schema if it doesn't exist.
func (s *SQLiteStore) initSchema() error {
	schema := `
	CREATE TABLE IF NOT EXISTS evaluations (
		record_id TEXT PRIMARY KEY,
		system_id TEXT NOT NULL,
		profile_ref TEXT NOT NULL,
		profile_id TEXT NOT NULL,
		version TEXT NOT NULL,
		verdict TEXT NOT NULL,
		score REAL NOT NULL,
		finding_count INTEGER NOT NULL,
		evaluated_at TEXT NOT NULL,
		recorded_at INTEGER NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_evaluations_system ON evaluations(system_id, recorded_at DESC);
	CREATE INDEX IF NOT EXISTS idx_evaluations_recorded ON evaluations(recorded_at);
	`

	_, err := s.db.Exec(schema)
	return err
}

// prepareStatements prepares SQL statements for reuse.
func (s *SQLiteStore) prepareStatements() error {
	var err error

	s.recordStmt, err = s.db.Prepare(`
		INSERT INTO evaluations (record_id, system_id, profile_ref, profile_id, version, verdict, score, finding_count, evaluated_at, recorded_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return fmt.Errorf("failed to prepare record statement: %w", err)
	}

	s.lastStmt, err = s.db.Prepare(`
		SELECT record_id, system_id, profile_ref, profile_id, version, verdict, score, finding_count, evaluated_at
		FROM evaluations
		WHERE system_id = ?
		ORDER BY recorded_at DESC, record_id DESC
		LIMIT 1
	`)
	if err != nil {
		return fmt.Errorf("failed to prepare last-evaluation statement: %w", err)
	}

	s.pruneStmt, err = s.db.Prepare(`
		DELETE FROM evaluations
		WHERE recorded_at < ?
	`)
	if err != nil {
		return fmt.Errorf("failed to prepare prune statement: %w", err)
	}

	return nil
}

// Record stores one evaluation outcome for a system.
func (s *SQLiteStore) Record(ctx context.Context, rec *Record) error {
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

	_, err := s.recordStmt.ExecContext(ctx,
		rec.RecordID,
		rec.SystemID,
		rec.ProfileRef,
		rec.ProfileID,
		rec.Version,
		rec.Verdict,
		rec.Score,
		rec.FindingCount,
		rec.EvaluatedAt,
		time.Now().Unix(),
	)
	if err != nil {
		return fmt.Errorf("failed to record evaluation: %w", err)
	}

	return nil
}

// LastEvaluation returns the most recent record for a system, or (nil, nil)
// when the system has never been evaluated.
func (s *SQLiteStore) LastEvaluation(ctx context.Context, systemID string) (*Record, error) {
	if systemID == "" {
		return nil, fmt.Errorf("system id cannot be empty")
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	rec := &Record{}
	err := s.lastStmt.QueryRowContext(ctx, systemID).Scan(
		&rec.RecordID,
		&rec.SystemID,
		&rec.ProfileRef,
		&rec.ProfileID,
		&rec.Version,
		&rec.Verdict,
		&rec.Score,
		&rec.FindingCount,
		&rec.EvaluatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load last evaluation: %w", err)
	}

	return rec, nil
}

// Prune deletes records older than the cutoff.
func (s *SQLiteStore) Prune(ctx context.Context, olderThan time.Time) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	result, err := s.pruneStmt.ExecContext(ctx, olderThan.Unix())
	if err != nil {
		return 0, fmt.Errorf("failed to prune history: %w", err)
	}

	deleted, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to get rows affected: %w", err)
	}

	return int(deleted), nil
}

// Close releases the database handle. Close is idempotent and safe to call
// multiple times.
func (s *SQLiteStore) Close() error {
	var closeErr error

	s.closeOnce.Do(func() {
		if s.recordStmt != nil {
			s.recordStmt.Close()
		}
		if s.lastStmt != nil {
			s.lastStmt.Close()
		}
		if s.pruneStmt != nil {
			s.pruneStmt.Close()
		}

		if s.db != nil {
			_, _ = s.db.Exec("PRAGMA wal_checkpoint(TRUNCATE)")
			closeErr = s.db.Close()
		}
	})

	return closeErr
}
