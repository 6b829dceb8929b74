package graph

import "container/heap"

// workHeap orders the Works admitted to a pass by ascending id, which is
// topological order for graphs built upstream-before-downstream.
type workHeap []*workBase

func (h workHeap) Len() int           { return len(h) }
func (h workHeap) Less(i, j int) bool { return h[i].id < h[j].id }
func (h workHeap) Swap(i, j int)      { h[i], h[j] = h[j], h[i] }

func (h *workHeap) Push(x interface{}) {
	*h = append(*h, x.(*workBase))
}

func (h *workHeap) Pop() interface{} {
	old := *h
	n := len(old)
	item := old[n-1]
	*h = old[0 : n-1]
	return item
}

// WorkState is the per-pass evaluation state: the heap of Works still to
// run this pass, the id of the Work currently being evaluated, and the
// Stats sink. One WorkState lives for exactly one Graph.Evaluate call and
// is only touched by the goroutine running that pass.
type WorkState struct {
	q         workHeap
	g         *Graph
	stats     *Stats
	currentID uint32
}

// addToQueue admits a Work triggered during the current pass. A Work whose
// id is at or below the current cursor cannot be evaluated in id order any
// more this pass, so it is pushed back onto the Graph's intake queue for
// the next one; that is also the path a Node takes when it fails to
// acquire its own exclusion flag (its id equals the cursor) and the path
// every cycle takes, which is what spreads a cycle's successive
// evaluations across successive passes. Anything above the cursor joins
// this pass's heap.
func (ws *WorkState) addToQueue(w *workBase) {
	if w.id <= ws.currentID {
		w.Schedule(ws.g)
		ws.stats.PushedGraph++
	} else {
		// The heap holds a reference until the entry is popped.
		w.retain()
		heap.Push(&ws.q, w)
		ws.stats.PushedHeap++
	}
}
