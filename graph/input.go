package graph

// Input is a typed write handle on a Value slot. Nodes hand out Inputs for
// each of their arguments, and keep Inputs to downstream slots in their
// dependents lists.
//
// An Input is a small value type and is freely copyable. When it carries a
// handle to the owning Work (as Inputs obtained from a Node do), every copy
// shares ownership and keeps the Work alive; an Input built from a
// caller-owned Value carries no handle and never schedules anything.
type Input[T any] struct {
	cell  *Value[T]
	owner *workBase
}

// Append stores v into the underlying Value and, if this Input belongs to a
// Node, schedules that Node on g's intake queue so the next pass
// re-evaluates it.
func (in Input[T]) Append(g *Graph, v T) {
	in.cell.Store(v)
	if in.owner != nil {
		in.owner.Schedule(g)
	}
}

// Same reports whether the two Inputs write into the same Value slot.
// Identity is the slot pointer, never the stored value; this is the
// equality Disconnect uses.
func (in Input[T]) Same(other Input[T]) bool {
	return in.cell == other.cell
}

// Connectable is anything that can be asked to deposit values into an
// Input: a Node (through its propagation policy) or a Constant (once, at
// connect time).
type Connectable[T any] interface {
	// Connect registers in as a recipient of this source's values.
	// Safe for concurrent use and may be called repeatedly.
	Connect(in Input[T])

	// Disconnect removes a previously connected Input. No effect if in
	// was never connected.
	Disconnect(in Input[T])
}

// Unconnected returns the nil Connectable used to declare a Node argument
// as externally driven. Pass it to a Node constructor where no upstream
// exists; values then arrive only via Input.Append.
func Unconnected[T any]() Connectable[T] {
	return nil
}

// Connect attaches from to the possibly-nil upstream to. A nil upstream
// (see Unconnected) is simply skipped, which is what lets Node
// constructors take a mix of connected and unconnected arguments.
func Connect[T any](to Connectable[T], from Input[T]) {
	if to != nil {
		to.Connect(from)
	}
}

// Constant is a Connectable that deposits a fixed value into each Input
// connected to it, immediately at connect time and outside any evaluation
// pass. Constants are never scheduled and never evaluated.
type Constant[T any] struct {
	value T
}

// NewConstant returns a Constant carrying v.
func NewConstant[T any](v T) *Constant[T] {
	return &Constant[T]{value: v}
}

// Connect stores the constant into in's Value slot. No ongoing
// relationship is established.
func (c *Constant[T]) Connect(in Input[T]) {
	in.cell.Store(c.value)
}

// Disconnect has no effect; a Constant holds no connections.
func (c *Constant[T]) Disconnect(Input[T]) {}
