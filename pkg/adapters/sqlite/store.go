// Package sqlite persists metric history in a SQLite database (pure Go driver).
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"math"
	"sync"
	"time"

	"github.com/aretw0/cadence/pkg/domain"
	"github.com/aretw0/cadence/pkg/ports"
	_ "modernc.org/sqlite"
)

// Store implements ports.HistoryStore using SQLite.
type Store struct {
	db *sql.DB
	mu sync.RWMutex
}

var _ ports.HistoryStore = (*Store)(nil)

// Open creates a SQLite-backed history store.
// Use ":memory:" for an in-memory database, or a file path for persistent storage.
func Open(dbPath string) (*Store, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}
	if dbPath == ":memory:" {
		// Every connection to :memory: is a distinct database.
		db.SetMaxOpenConns(1)
	}

	store := &Store{db: db}
	if err := store.initialize(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("initialize schema: %w", err)
	}
	return store, nil
}

func (s *Store) initialize() error {
	schema := `
	CREATE TABLE IF NOT EXISTS metric_history (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		run_id TEXT NOT NULL,
		mode TEXT NOT NULL,
		epoch INTEGER NOT NULL,
		loader TEXT NOT NULL,
		metric TEXT NOT NULL,
		value REAL,
		ts INTEGER NOT NULL
	);
	CREATE INDEX IF NOT EXISTS idx_metric_history_run ON metric_history(run_id);
	`
	_, err := s.db.Exec(schema)
	return err
}

// Append inserts records in a single transaction.
func (s *Store) Append(ctx context.Context, records ...ports.MetricRecord) error {
	if len(records) == 0 {
		return nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	stmt, err := tx.PrepareContext(ctx,
		"INSERT INTO metric_history (run_id, mode, epoch, loader, metric, value, ts) VALUES (?, ?, ?, ?, ?, ?, ?)")
	if err != nil {
		return fmt.Errorf("prepare insert: %w", err)
	}
	defer stmt.Close()

	for _, r := range records {
		// SQLite has no NaN; it is stored as NULL.
		value := sql.NullFloat64{Float64: r.Value, Valid: !math.IsNaN(r.Value)}
		if _, err := stmt.ExecContext(ctx, r.RunID, string(r.Mode), r.Epoch, r.Loader, r.Metric, value, r.Time.UnixNano()); err != nil {
			return fmt.Errorf("insert record: %w", err)
		}
	}
	return tx.Commit()
}

// Query retrieves the records of a run in insertion order.
func (s *Store) Query(ctx context.Context, runID string) ([]ports.MetricRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.QueryContext(ctx,
		"SELECT run_id, mode, epoch, loader, metric, value, ts FROM metric_history WHERE run_id = ? ORDER BY id",
		runID,
	)
	if err != nil {
		return nil, fmt.Errorf("query history: %w", err)
	}
	defer rows.Close()

	var records []ports.MetricRecord
	for rows.Next() {
		var (
			r     ports.MetricRecord
			mode  string
			value sql.NullFloat64
			ts    int64
		)
		if err := rows.Scan(&r.RunID, &mode, &r.Epoch, &r.Loader, &r.Metric, &value, &ts); err != nil {
			return nil, fmt.Errorf("scan record: %w", err)
		}
		r.Value = math.NaN()
		if value.Valid {
			r.Value = value.Float64
		}
		r.Mode = domain.Mode(mode)
		r.Time = time.Unix(0, ts).UTC()
		records = append(records, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate rows: %w", err)
	}
	if len(records) == 0 {
		return nil, ports.ErrRunNotFound
	}
	return records, nil
}

// Runs lists the distinct run IDs, sorted.
func (s *Store) Runs(ctx context.Context) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.QueryContext(ctx, "SELECT DISTINCT run_id FROM metric_history ORDER BY run_id")
	if err != nil {
		return nil, fmt.Errorf("query runs: %w", err)
	}
	defer rows.Close()

	var runs []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scan run: %w", err)
		}
		runs = append(runs, id)
	}
	return runs, rows.Err()
}

// Best returns the record with the highest (or lowest, when minimize is set)
// value of metric for loader across the epochs of a run. NaN values never win.
func (s *Store) Best(ctx context.Context, runID, loader, metric string, minimize bool) (ports.MetricRecord, error) {
	records, err := s.Query(ctx, runID)
	if err != nil {
		return ports.MetricRecord{}, err
	}

	var (
		best  ports.MetricRecord
		found bool
	)
	for _, r := range records {
		if r.Loader != loader || r.Metric != metric || math.IsNaN(r.Value) {
			continue
		}
		if !found || (minimize && r.Value < best.Value) || (!minimize && r.Value > best.Value) {
			best, found = r, true
		}
	}
	if !found {
		return ports.MetricRecord{}, fmt.Errorf("%w: no %s/%s records", ports.ErrRunNotFound, loader, metric)
	}
	return best, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}
