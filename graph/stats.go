package graph

import "fmt"

// Stats reports what a single evaluation pass did. All fields are zeroed
// at pass start, so a caller can reuse one Stats across passes.
type Stats struct {
	// Queued is the number of Works drained from the intake queue at the
	// start of the pass.
	Queued int

	// Worked is the number of Works whose eval ran to completion.
	Worked int

	// Duplicates counts heap entries collapsed because the same Work was
	// admitted to the pass more than once (typically a Node downstream of
	// several Works that ran this pass).
	Duplicates int

	// PushedGraph counts Works re-queued onto the Graph for the next pass
	// because their id was at or below the evaluation cursor.
	PushedGraph int

	// PushedHeap counts Works admitted to this pass's heap by downstream
	// notification.
	PushedHeap int
}

// String renders the counters in a compact single-line form.
func (s Stats) String() string {
	return fmt.Sprintf("queued: %d, worked: %d, duplicates: %d, pushed_graph: %d, pushed_heap: %d",
		s.Queued, s.Worked, s.Duplicates, s.PushedGraph, s.PushedHeap)
}
