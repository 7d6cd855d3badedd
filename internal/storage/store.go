// Package storage persists analysis runs in an embedded SQLite database at
// .migraph/migraph.db. Each run records the facts provenance, graph shape,
// tier tally, and compressed snapshots of the graph, metrics, and analysis
// so every stage output can be served again without recomputation.
package storage

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"migraph/internal/errors"
	"migraph/internal/logging"
)

// Run is one recorded pipeline execution.
type Run struct {
	ID         string    `json:"id"`
	CreatedAt  time.Time `json:"createdAt"`
	FactsPath  string    `json:"factsPath"`
	NodeCount  int       `json:"nodeCount"`
	EdgeCount  int       `json:"edgeCount"`
	Safe       int       `json:"safe"`
	Caution    int       `json:"caution"`
	Unsafe     int       `json:"unsafe"`
	DurationMs int64     `json:"durationMs"`
}

// NewRunID returns a fresh run identifier.
func NewRunID() string {
	return uuid.NewString()
}

// Store provides persistence for runs in a SQLite database.
type Store struct {
	conn   *sql.DB
	logger *logging.Logger
	dbPath string
}

// OpenStore opens or creates the run database inside dir.
func OpenStore(dir string, logger *logging.Logger) (*Store, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, errors.New(errors.StoreUnavailable, "failed to create state directory", err)
	}

	dbPath := filepath.Join(dir, "migraph.db")

	conn, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, errors.New(errors.StoreUnavailable, "failed to open run database", err)
	}

	// Set pragmas for performance
	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA synchronous=NORMAL",
		"PRAGMA foreign_keys=ON",
		"PRAGMA busy_timeout=5000",
	}

	for _, pragma := range pragmas {
		if _, err := conn.Exec(pragma); err != nil {
			_ = conn.Close()
			return nil, errors.New(errors.StoreUnavailable, "failed to set pragma", err)
		}
	}

	store := &Store{
		conn:   conn,
		logger: logger,
		dbPath: dbPath,
	}

	if err := store.initializeSchema(); err != nil {
		_ = conn.Close()
		return nil, errors.New(errors.StoreUnavailable, "failed to initialize schema", err)
	}

	return store, nil
}

// initializeSchema creates the run tables.
func (s *Store) initializeSchema() error {
	schema := `
		CREATE TABLE IF NOT EXISTS runs (
			id TEXT PRIMARY KEY,
			created_at TEXT NOT NULL,
			facts_path TEXT NOT NULL,
			node_count INTEGER NOT NULL,
			edge_count INTEGER NOT NULL,
			safe_count INTEGER NOT NULL,
			caution_count INTEGER NOT NULL,
			unsafe_count INTEGER NOT NULL,
			duration_ms INTEGER NOT NULL DEFAULT 0
		);
		CREATE INDEX IF NOT EXISTS idx_runs_created_at ON runs(created_at DESC);

		CREATE TABLE IF NOT EXISTS snapshots (
			run_id TEXT NOT NULL REFERENCES runs(id) ON DELETE CASCADE,
			kind TEXT NOT NULL,
			data BLOB NOT NULL,
			PRIMARY KEY (run_id, kind)
		);

		CREATE TABLE IF NOT EXISTS api_keys (
			key_id TEXT PRIMARY KEY,
			name TEXT NOT NULL,
			token_prefix TEXT NOT NULL,
			token_hash TEXT NOT NULL,
			created_at TEXT NOT NULL,
			revoked_at TEXT
		);
		CREATE INDEX IF NOT EXISTS idx_api_keys_prefix ON api_keys(token_prefix);

		CREATE TABLE IF NOT EXISTS schema_version (
			version INTEGER PRIMARY KEY
		);
		INSERT OR REPLACE INTO schema_version (version) VALUES (1);
	`

	_, err := s.conn.Exec(schema)
	return err
}

// Close closes the database connection.
func (s *Store) Close() error {
	if s.conn != nil {
		return s.conn.Close()
	}
	return nil
}

// Path returns the database file path.
func (s *Store) Path() string {
	return s.dbPath
}

// Ping verifies the database is reachable.
func (s *Store) Ping() error {
	if err := s.conn.Ping(); err != nil {
		return errors.New(errors.StoreUnavailable, "run database unreachable", err)
	}
	return nil
}

// GetRun loads a single run row by id.
func (s *Store) GetRun(id string) (*Run, error) {
	row := s.conn.QueryRow(`
		SELECT id, created_at, facts_path, node_count, edge_count,
		       safe_count, caution_count, unsafe_count, duration_ms
		FROM runs WHERE id = ?`, id)
	run, err := scanRun(row)
	if err == sql.ErrNoRows {
		return nil, errors.New(errors.RunNotFound, fmt.Sprintf("run %s not found", id), nil)
	}
	if err != nil {
		return nil, errors.New(errors.StoreUnavailable, "failed to read run", err)
	}
	return run, nil
}

// LatestRun loads the most recent run. A NO_RUNS error marks the cold-start
// case so callers can tell "no data yet" from a genuine failure.
func (s *Store) LatestRun() (*Run, error) {
	row := s.conn.QueryRow(`
		SELECT id, created_at, facts_path, node_count, edge_count,
		       safe_count, caution_count, unsafe_count, duration_ms
		FROM runs ORDER BY created_at DESC, id DESC LIMIT 1`)
	run, err := scanRun(row)
	if err == sql.ErrNoRows {
		return nil, errors.New(errors.NoRuns, "no analysis runs recorded yet", nil)
	}
	if err != nil {
		return nil, errors.New(errors.StoreUnavailable, "failed to read latest run", err)
	}
	return run, nil
}

// ListRuns returns runs newest-first, up to limit (0 means all).
func (s *Store) ListRuns(limit int) ([]*Run, error) {
	query := `
		SELECT id, created_at, facts_path, node_count, edge_count,
		       safe_count, caution_count, unsafe_count, duration_ms
		FROM runs ORDER BY created_at DESC, id DESC`
	var rows *sql.Rows
	var err error
	if limit > 0 {
		rows, err = s.conn.Query(query+" LIMIT ?", limit)
	} else {
		rows, err = s.conn.Query(query)
	}
	if err != nil {
		return nil, errors.New(errors.StoreUnavailable, "failed to list runs", err)
	}
	defer rows.Close()

	runs := make([]*Run, 0)
	for rows.Next() {
		run, err := scanRun(rows)
		if err != nil {
			return nil, errors.New(errors.StoreUnavailable, "failed to scan run", err)
		}
		runs = append(runs, run)
	}
	return runs, rows.Err()
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanRun(row rowScanner) (*Run, error) {
	var run Run
	var createdAt string
	err := row.Scan(&run.ID, &createdAt, &run.FactsPath, &run.NodeCount, &run.EdgeCount,
		&run.Safe, &run.Caution, &run.Unsafe, &run.DurationMs)
	if err != nil {
		return nil, err
	}
	ts, err := time.Parse(time.RFC3339Nano, createdAt)
	if err != nil {
		return nil, fmt.Errorf("invalid created_at %q: %w", createdAt, err)
	}
	run.CreatedAt = ts
	return &run, nil
}
