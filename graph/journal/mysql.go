package journal

import (
	"context"
	"database/sql"
	"fmt"
	"sync"
	"time"

	_ "github.com/go-sql-driver/mysql"
)

// MySQLJournal is a MySQL/MariaDB implementation of Journal.
//
// Designed for:
//   - Production deployments wanting centralized pass history
//   - Several evaluator processes journalling into one place
//   - Audit trails over long-running dataflow services
//
// MySQLJournal uses connection pooling and parameterized statements.
type MySQLJournal struct {
	db     *sql.DB
	mu     sync.RWMutex
	closed bool
}

// NewMySQLJournal creates a MySQL-backed journal.
//
// The DSN (Data Source Name) format is:
//
//	[username[:password]@][protocol[(address)]]/dbname[?param1=value1&...]
//
// Example:
//
//	user:password@tcp(localhost:3306)/calcflow
//
// Never hardcode credentials; read the DSN from the environment.
//
// The journal verifies the connection and migrates the schema before
// returning.
func NewMySQLJournal(dsn string) (*MySQLJournal, error) {
	db, err := sql.Open("mysql", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open MySQL connection: %w", err)
	}

	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(5 * time.Minute)
	db.SetConnMaxIdleTime(10 * time.Minute)

	ctx := context.Background()
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to ping MySQL: %w", err)
	}

	j := &MySQLJournal{db: db}
	if err := j.createTables(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to create tables: %w", err)
	}
	return j, nil
}

func (j *MySQLJournal) createTables(ctx context.Context) error {
	passes := `
		CREATE TABLE IF NOT EXISTS evaluation_passes (
			id BIGINT AUTO_INCREMENT PRIMARY KEY,
			seq BIGINT UNSIGNED NOT NULL,
			at_ns BIGINT NOT NULL,
			duration_ns BIGINT NOT NULL,
			queued INT NOT NULL,
			worked INT NOT NULL,
			duplicates INT NOT NULL,
			pushed_graph INT NOT NULL,
			pushed_heap INT NOT NULL,
			INDEX idx_passes_seq (seq)
		)
	`
	if _, err := j.db.ExecContext(ctx, passes); err != nil {
		return fmt.Errorf("failed to create evaluation_passes table: %w", err)
	}
	return nil
}

// Record appends one completed pass.
func (j *MySQLJournal) Record(ctx context.Context, rec PassRecord) error {
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
func (j *MySQLJournal) Latest(ctx context.Context) (PassRecord, error) {
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
func (j *MySQLJournal) List(ctx context.Context, limit int) ([]PassRecord, error) {
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

// Close closes the underlying connection pool.
func (j *MySQLJournal) Close() error {
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
