package graph

import (
	"container/heap"
	"sync/atomic"
)

// Graph owns the node id counter and the intake queue: a lock-free,
// LIFO-on-insert singly-linked list of Works awaiting the next evaluation
// pass, threaded through each Work's link word and terminated by a
// sentinel with id 0.
//
// Any number of goroutines may Append values and thereby Schedule Works
// concurrently; any number may call Evaluate, though one evaluator is the
// typical arrangement.
type Graph struct {
	ids  atomic.Uint32
	head atomic.Pointer[workBase]

	sentinel tombstone
}

// tombstone is the fixed tail of the intake queue. It is never scheduled
// by the package and never reaches the heap.
type tombstone struct {
	workBase
}

func (t *tombstone) eval(*WorkState) {
	panic("calcflow: intake queue sentinel evaluated")
}

// New returns an empty Graph with the id counter at 1.
func New() *Graph {
	g := &Graph{}
	g.ids.Store(1)
	g.sentinel.self = &g.sentinel
	g.head.Store(&g.sentinel.workBase)
	return g
}

// nextID hands out construction-ordered node ids, starting at 1.
func (g *Graph) nextID() uint32 {
	return g.ids.Add(1) - 1
}

// Evaluate runs one pass: it atomically snapshots the intake queue, orders
// the drained Works by id in a min-heap, and evaluates them in ascending
// id order. Works triggered during the pass join the same heap when their
// id is still ahead of the cursor, and go back to the intake queue for the
// next pass otherwise.
//
// Works scheduled while the pass runs land on the fresh intake queue and
// are never lost; they are guaranteed visible to the next pass.
//
// stats, if non-nil, is zeroed and filled with this pass's counters.
// Evaluate reports whether any work was drained.
func (g *Graph) Evaluate(stats *Stats) bool {
	if stats == nil {
		stats = &Stats{}
	}
	*stats = Stats{}

	head := g.head.Swap(&g.sentinel.workBase)
	if head == &g.sentinel.workBase {
		return false
	}

	ws := &WorkState{g: g, stats: stats}
	for w := head; w != &g.sentinel.workBase; w = w.readNext() {
		heap.Push(&ws.q, w)
		stats.Queued++
	}

	for ws.q.Len() > 0 {
		w := heap.Pop(&ws.q).(*workBase)

		// The same Work can reach the heap several times in one pass;
		// one evaluation covers them all.
		for ws.q.Len() > 0 && ws.q[0].id == w.id {
			dup := heap.Pop(&ws.q).(*workBase)
			dup.release()
			stats.Duplicates++
		}

		ws.currentID = w.id
		w.self.eval(ws)
		stats.Worked++

		// Balances the reference the intake queue (or addToQueue) held.
		w.release()
	}

	return true
}
