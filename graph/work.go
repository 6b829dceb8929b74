package graph

import "sync/atomic"

// Work is the abstract schedulable unit of a Graph. A Node is the only
// concrete implementation the package exposes; the interface is sealed so
// the intake queue and heap can rely on the shared workBase layout.
type Work interface {
	// ID returns the Work's Graph-unique id. Ids are assigned at
	// construction time in strictly increasing order starting at 1; id 0
	// belongs to the intake queue's sentinel.
	ID() uint32

	// Schedule puts the Work on g's intake queue so the next evaluation
	// pass sees it. Idempotent: scheduling an already-queued Work is a
	// no-op. Never fails, though it may spin briefly under contention.
	Schedule(g *Graph)

	eval(ws *WorkState)
	base() *workBase
}

// workLink is an immutable snapshot of a Work's queue linkage and exclusion
// flag. The two live in one atomic word so that tryLockAndDequeue can
// acquire the flag and leave the intake queue in a single step, matching
// the invariant that a Work is enqueued iff next is non-nil.
type workLink struct {
	// next is the following entry on the intake queue (another Work or the
	// sentinel), or nil when this Work is not enqueued.
	next *workBase

	// locked is the exclusion flag. The holder is the only goroutine
	// allowed to run the Work's function or mutate its downstream list.
	locked bool
}

// workBase carries the per-Work state shared by every implementation: the
// id, the reference count, the combined link/lock word, and a back pointer
// to the concrete Work for eval dispatch from the heap.
type workBase struct {
	id   uint32
	self Work

	// refs counts the intake queue's and the per-pass heap's shares of
	// this Work. Inputs holding a Work handle keep it alive through the
	// pointer itself.
	refs atomic.Int32

	// link holds the current workLink. A nil pointer reads as the
	// unqueued, unlocked state.
	link atomic.Pointer[workLink]
}

// ID implements Work.
func (w *workBase) ID() uint32 { return w.id }

func (w *workBase) base() *workBase { return w }

func (w *workBase) retain()  { w.refs.Add(1) }
func (w *workBase) release() { w.refs.Add(-1) }

// loadLink dereferences the link word, mapping the initial nil pointer to
// the unqueued, unlocked state.
func (w *workBase) loadLink() workLink {
	if p := w.link.Load(); p != nil {
		return *p
	}
	return workLink{}
}

// readNext returns the next entry on the intake queue, ignoring the
// exclusion flag, or nil if this Work is not enqueued.
func (w *workBase) readNext() *workBase {
	return w.loadLink().next
}

// tryLock attempts to acquire the exclusion flag without touching the
// queue linkage. It never blocks; false means another goroutine holds the
// flag.
func (w *workBase) tryLock() bool {
	for {
		old := w.link.Load()
		cur := workLink{}
		if old != nil {
			cur = *old
		}
		if cur.locked {
			return false
		}
		if w.link.CompareAndSwap(old, &workLink{next: cur.next, locked: true}) {
			return true
		}
	}
}

// tryLockAndDequeue attempts to acquire the exclusion flag and
// unconditionally clears the queue linkage, removing the Work from the
// intake queue in the same atomic step. The linkage is cleared even when
// the flag was already held, mirroring the single-word exchange this
// encodes.
func (w *workBase) tryLockAndDequeue() bool {
	old := w.link.Swap(&workLink{locked: true})
	return old == nil || !old.locked
}

// unlock releases the exclusion flag, preserving any queue linkage that a
// concurrent Schedule installed while the flag was held. Only the holder
// may call it.
func (w *workBase) unlock() {
	for {
		old := w.link.Load()
		cur := workLink{}
		if old != nil {
			cur = *old
		}
		if w.link.CompareAndSwap(old, &workLink{next: cur.next}) {
			return
		}
	}
}

// Schedule implements Work. The already-queued short circuit is only taken
// on the first loop iteration: after a failed head CAS the queue may have
// been drained and this Work re-linked by another scheduler, and treating
// the non-nil linkage as "already queued" there would tolerate an ABA where
// the Work silently drops off. A rare double enqueue across a concurrent
// drain-and-requeue is resolved by duplicate collapse in the pass heap.
func (w *workBase) Schedule(g *Graph) {
	w.retain()

	firstTime := true
	for {
		old := w.link.Load()
		cur := workLink{}
		if old != nil {
			cur = *old
		}

		if firstTime && cur.next != nil {
			// Already on the intake queue.
			w.release()
			return
		}

		head := g.head.Load()
		if !w.link.CompareAndSwap(old, &workLink{next: head, locked: cur.locked}) {
			// link changed under us, retry from the top
			continue
		}

		if g.head.CompareAndSwap(head, w) {
			// Enqueued; the reference taken above now belongs to the queue.
			return
		}

		firstTime = false
	}
}
