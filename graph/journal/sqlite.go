package journal

import (
	"context"
	"database/sql"
	"fmt"
	"sync"
	"time"

	_ "modernc.org/sqlite"
)

// SQLiteJournal is a SQLite implementation of Journal.
//
// It records pass history in a single-file database. Designed for:
//   - Development and local monitoring with zero setup
//   - Single-process evaluators wanting history across restarts
//
// The journal uses WAL mode so readers (dashboards, sqlite3 shells) don't
// block the evaluator's writes.
type SQLiteJournal struct {
	db     *sql.DB
	mu     sync.RWMutex
	closed bool
	path   string
}

// NewSQLiteJournal creates a SQLite-backed journal.
//
// The path parameter specifies the database file location:
//   - "./passes.db" - file in current directory
//   - ":memory:" - in-memory database (lost on close)
//
// The journal automatically creates the database file, migrates the
// schema, enables WAL mode, and sets a busy timeout.
//
// Example:
//
//	j, err := journal.NewSQLiteJournal("./passes.db")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer j.Close()
func NewSQLiteJournal(path string) (*SQLiteJournal, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open SQLite connection: %w", err)
	}

	// SQLite supports one writer at a time.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)

	ctx := context.Background()
	if _, err := db.ExecContext(ctx, "PRAGMA journal_mode=WAL"); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to enable WAL mode: %w", err)
	}
	if _, err := db.ExecContext(ctx, "PRAGMA busy_timeout=5000"); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to set busy timeout: %w", err)
	}

	j := &SQLiteJournal{db: db, path: path}
	if err := j.createTables(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to create tables: %w", err)
	}
	return j, nil
}

func (j *SQLiteJournal) createTables(ctx context.Context) error {
	passes := `
		CREATE TABLE IF NOT EXISTS evaluation_passes (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			seq INTEGER NOT NULL,
			at_ns INTEGER NOT NULL,
			duration_ns INTEGER NOT NULL,
			queued INTEGER NOT NULL,
			worked INTEGER NOT NULL,
			duplicates INTEGER NOT NULL,
			pushed_graph INTEGER NOT NULL,
			pushed_heap INTEGER NOT NULL
		)
	`
	if _, err := j.db.ExecContext(ctx, passes); err != nil {
		return fmt.Errorf("failed to create evaluation_passes table: %w", err)
	}
	if _, err := j.db.ExecContext(ctx, "CREATE INDEX IF NOT EXISTS idx_passes_seq ON evaluation_passes(seq)"); err != nil {
		return fmt.Errorf("failed to create idx_passes_seq: %w", err)
	}
	return nil
}

// Record appends one completed pass.
func (j *SQLiteJournal) Record(ctx context.Context, rec PassRecord) error {
	j.mu.Lock()
	defer j.mu.Unlock()
	if j.closed {
		return ErrClosed
	}

	_, err := j.db.ExecContext(ctx, `
		INSERT INTO evaluation_passes
			(seq, at_ns, duration_ns, queued, worked, duplicates, pushed_graph, pushed_heap)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		rec.Seq, rec.At.UnixNano(), rec.Duration.Nanoseconds(),
		rec.Queued, rec.Worked, rec.Duplicates, rec.PushedGraph, rec.PushedHeap)
	if err != nil {
		return fmt.Errorf("failed to insert pass record: %w", err)
	}
	return nil
}

// Latest returns the most recently recorded pass.
func (j *SQLiteJournal) Latest(ctx context.Context) (PassRecord, error) {
	j.mu.RLock()
	defer j.mu.RUnlock()
	if j.closed {
		return PassRecord{}, ErrClosed
	}

	row := j.db.QueryRowContext(ctx, `
		SELECT seq, at_ns, duration_ns, queued, worked, duplicates, pushed_graph, pushed_heap
		FROM evaluation_passes ORDER BY id DESC LIMIT 1`)
	return scanPass(row)
}

// List returns up to limit records, most recent first.
func (j *SQLiteJournal) List(ctx context.Context, limit int) ([]PassRecord, error) {
	j.mu.RLock()
	defer j.mu.RUnlock()
	if j.closed {
		return nil, ErrClosed
	}

	query := `
		SELECT seq, at_ns, duration_ns, queued, worked, duplicates, pushed_graph, pushed_heap
		FROM evaluation_passes ORDER BY id DESC`
	var rows *sql.Rows
	var err error
	if limit > 0 {
		rows, err = j.db.QueryContext(ctx, query+" LIMIT ?", limit)
	} else {
		rows, err = j.db.QueryContext(ctx, query)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query pass records: %w", err)
	}
	defer rows.Close()

	var out []PassRecord
	for rows.Next() {
		rec, err := scanPass(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate pass records: %w", err)
	}
	return out, nil
}

// Close closes the underlying database.
func (j *SQLiteJournal) Close() error {
	j.mu.Lock()
	defer j.mu.Unlock()
	if j.closed {
		return nil
	}
	j.closed = true
	if err := j.db.Close(); err != nil {
		return fmt.Errorf("failed to close database: %w", err)
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanPass(row rowScanner) (PassRecord, error) {
	var rec PassRecord
	var atNS, durationNS int64
	err := row.Scan(&rec.Seq, &atNS, &durationNS,
		&rec.Queued, &rec.Worked, &rec.Duplicates, &rec.PushedGraph, &rec.PushedHeap)
	if err == sql.ErrNoRows {
		return PassRecord{}, ErrNotFound
	}
	if err != nil {
		return PassRecord{}, fmt.Errorf("failed to scan pass record: %w", err)
	}
	rec.At = time.Unix(0, atNS).UTC()
	rec.Duration = time.Duration(durationNS)
	return rec, nil
}
