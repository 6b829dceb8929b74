package journal

import (
	"context"
	"errors"
	"time"
)

// ErrNotFound is returned when a journal holds no record satisfying the
// query (e.g. Latest on an empty journal).
var ErrNotFound = errors.New("not found")

// ErrClosed is returned by operations on a closed journal.
var ErrClosed = errors.New("journal closed")

// PassRecord is the journalled outcome of one evaluation pass.
type PassRecord struct {
	// Seq is the evaluator's pass sequence number, starting at 1.
	Seq uint64

	// At is when the pass completed.
	At time.Time

	// Duration is the pass's wall-clock duration.
	Duration time.Duration

	// Queued is the number of Works drained from the intake queue.
	Queued int

	// Worked is the number of Works evaluated.
	Worked int

	// Duplicates is the number of coalesced heap entries.
	Duplicates int

	// PushedGraph is the number of Works re-queued for the next pass.
	PushedGraph int

	// PushedHeap is the number of Works admitted to the pass heap.
	PushedHeap int
}

// Journal records the history of evaluation passes.
//
// It captures per-pass statistics, not graph state: a journal cannot
// rebuild a graph, it answers "what did the evaluator do, and when".
//
// Implementations:
//   - In-memory (memory.go): testing and short-lived processes
//   - SQLite (sqlite.go): single-file local history with zero setup
//   - MySQL (mysql.go): shared history for fleets of evaluators
type Journal interface {
	// Record appends one completed pass.
	Record(ctx context.Context, rec PassRecord) error

	// Latest returns the most recently recorded pass.
	// Returns ErrNotFound if nothing has been recorded.
	Latest(ctx context.Context) (PassRecord, error)

	// List returns up to limit records, most recent first. A limit <= 0
	// means no limit.
	List(ctx context.Context, limit int) ([]PassRecord, error)

	// Close releases the journal's resources. Subsequent Record, Latest
	// and List calls return ErrClosed; closing again returns nil.
	Close() error
}
