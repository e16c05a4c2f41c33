package history

import (
	"context"
	"database/sql"
	"fmt"
	"sync"
	"time"

	_ "modernc.org/sqlite" // SQLite driver
)

// RunRecord describes one purge run over a single target.
type RunRecord struct {
	// ID is the unique run identifier (a UUID assigned by the runner).
	ID string

	// Target is the configured target name the run covered.
	Target string

	StartedAt  time.Time
	FinishedAt time.Time

	// Policy and Leeway are the inputs the run was computed with.
	Policy string
	Leeway string

	// Scanned is the number of items considered; Kept + Discarded equals
	// Scanned. Removed counts the discarded items actually deleted.
	Scanned   int
	Kept      int
	Discarded int
	Removed   int

	// Status is "ok" or "error"; Error carries the failure message.
	Status string
	Error  string
}

// Store persists purge run records in SQLite.
//
// The database is opened in WAL mode with a single writer connection, which
// is all a sequential purge daemon needs.
type Store struct {
	db     *sql.DB
	dbPath string

	mu        sync.Mutex
	closeOnce sync.Once

	recordStmt *sql.Stmt
	listStmt   *sql.Stmt
	getStmt    *sql.Stmt
	pruneStmt  *sql.Stmt
}

// StoreConfig configures the history store.
type StoreConfig struct {
	// DBPath is the path to the SQLite database file.
	DBPath string

	// BusyTimeout is how long to wait for locks before failing.
	// Default: 5 seconds.
	BusyTimeout time.Duration
}

// Open opens (or creates) a history store at the given path with default
// settings.
func Open(dbPath string) (*Store, error) {
	return OpenWithConfig(StoreConfig{DBPath: dbPath})
}

// OpenWithConfig opens a history store with custom configuration.
func OpenWithConfig(cfg StoreConfig) (*Store, error) {
	if cfg.DBPath == "" {
		return nil, fmt.Errorf("db path cannot be empty")
	}
	if cfg.BusyTimeout == 0 {
		cfg.BusyTimeout = 5 * time.Second
	}

	dsn := fmt.Sprintf("%s?_journal_mode=WAL&_busy_timeout=%d&_synchronous=NORMAL",
		cfg.DBPath, int(cfg.BusyTimeout.Milliseconds()))

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// SQLite only supports a single writer.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)

	store := &Store{
		db:     db,
		dbPath: cfg.DBPath,
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
func (s *Store) initSchema() error {
	schema := `
	CREATE TABLE IF NOT EXISTS purge_runs (
		id TEXT PRIMARY KEY,
		target TEXT NOT NULL,
		started_at INTEGER NOT NULL,
		finished_at INTEGER NOT NULL,
		policy TEXT NOT NULL,
		leeway TEXT NOT NULL,
		scanned INTEGER NOT NULL,
		kept INTEGER NOT NULL,
		discarded INTEGER NOT NULL,
		removed INTEGER NOT NULL,
		status TEXT NOT NULL,
		error TEXT
	);

	CREATE INDEX IF NOT EXISTS idx_purge_runs_started ON purge_runs(started_at);
	CREATE INDEX IF NOT EXISTS idx_purge_runs_target ON purge_runs(target);
	`

	_, err := s.db.Exec(schema)
	return err
}

// prepareStatements prepares SQL statements for reuse.
func (s *Store) prepareStatements() error {
	var err error

	s.recordStmt, err = s.db.Prepare(`
		INSERT INTO purge_runs (id, target, started_at, finished_at, policy, leeway,
			scanned, kept, discarded, removed, status, error)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return fmt.Errorf("failed to prepare record statement: %w", err)
	}

	s.listStmt, err = s.db.Prepare(`
		SELECT id, target, started_at, finished_at, policy, leeway,
			scanned, kept, discarded, removed, status, error
		FROM purge_runs
		ORDER BY started_at DESC
		LIMIT ?
	`)
	if err != nil {
		return fmt.Errorf("failed to prepare list statement: %w", err)
	}

	s.getStmt, err = s.db.Prepare(`
		SELECT id, target, started_at, finished_at, policy, leeway,
			scanned, kept, discarded, removed, status, error
		FROM purge_runs
		WHERE id = ?
	`)
	if err != nil {
		return fmt.Errorf("failed to prepare get statement: %w", err)
	}

	s.pruneStmt, err = s.db.Prepare(`
		DELETE FROM purge_runs
		WHERE id NOT IN (
			SELECT id FROM purge_runs ORDER BY started_at DESC LIMIT ?
		)
	`)
	if err != nil {
		return fmt.Errorf("failed to prepare prune statement: %w", err)
	}

	return nil
}

// RecordRun persists a run record.
func (s *Store) RecordRun(ctx context.Context, record *RunRecord) error {
	if record == nil {
		return fmt.Errorf("record cannot be nil")
	}
	if record.ID == "" {
		return fmt.Errorf("record id cannot be empty")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.recordStmt.ExecContext(ctx,
		record.ID,
		record.Target,
		record.StartedAt.Unix(),
		record.FinishedAt.Unix(),
		record.Policy,
		record.Leeway,
		record.Scanned,
		record.Kept,
		record.Discarded,
		record.Removed,
		record.Status,
		record.Error,
	)
	if err != nil {
		return fmt.Errorf("failed to record run: %w", err)
	}

	return nil
}

// ListRuns returns the most recent run records, newest first.
func (s *Store) ListRuns(ctx context.Context, limit int) ([]*RunRecord, error) {
	if limit <= 0 {
		limit = 50
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	rows, err := s.listStmt.QueryContext(ctx, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list runs: %w", err)
	}
	defer rows.Close()

	var records []*RunRecord
	for rows.Next() {
		record, err := scanRecord(rows)
		if err != nil {
			return nil, err
		}
		records = append(records, record)
	}

	return records, rows.Err()
}

// GetRun returns the run record with the given ID, or nil if not found.
func (s *Store) GetRun(ctx context.Context, id string) (*RunRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	rows, err := s.getStmt.QueryContext(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get run: %w", err)
	}
	defer rows.Close()

	if !rows.Next() {
		return nil, rows.Err()
	}
	return scanRecord(rows)
}

// PruneRuns deletes all but the most recent keep records and returns how
// many were removed.
func (s *Store) PruneRuns(ctx context.Context, keep int) (int64, error) {
	if keep <= 0 {
		return 0, nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	result, err := s.pruneStmt.ExecContext(ctx, keep)
	if err != nil {
		return 0, fmt.Errorf("failed to prune runs: %w", err)
	}

	return result.RowsAffected()
}

// Close closes the store and its prepared statements.
func (s *Store) Close() error {
	var err error
	s.closeOnce.Do(func() {
		for _, stmt := range []*sql.Stmt{s.recordStmt, s.listStmt, s.getStmt, s.pruneStmt} {
			if stmt != nil {
				stmt.Close()
			}
		}
		err = s.db.Close()
	})
	return err
}

func scanRecord(rows *sql.Rows) (*RunRecord, error) {
	var record RunRecord
	var started, finished int64
	var errMsg sql.NullString

	if err := rows.Scan(
		&record.ID,
		&record.Target,
		&started,
		&finished,
		&record.Policy,
		&record.Leeway,
		&record.Scanned,
		&record.Kept,
		&record.Discarded,
		&record.Removed,
		&record.Status,
		&errMsg,
	); err != nil {
		return nil, fmt.Errorf("failed to scan run record: %w", err)
	}

	record.StartedAt = time.Unix(started, 0)
	record.FinishedAt = time.Unix(finished, 0)
	record.Error = errMsg.String

	return &record, nil
}
