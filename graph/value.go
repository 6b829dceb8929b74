package graph

import "sync/atomic"

// Value is a single-cell atomic store holding the latest value delivered to
// one of a Node's arguments, or collected from a Node's output.
//
// A Value is embedded in the Node that owns it, but a caller-owned Value can
// also be used as a read-only sink: connect it downstream via Input() and
// read propagated results with Read().
//
// Read returns the zero value of T until the first Store. Stores publish
// with release semantics and reads acquire, so a Node's function sees a
// value at least as fresh as the store that scheduled it.
//
// Handle types (pointers, slices, maps) are swapped as a unit, so reference
// integrity needs no help from the caller.
type Value[T any] struct {
	cell atomic.Pointer[T]
}

// Store atomically publishes v as the current value.
func (v *Value[T]) Store(val T) {
	v.cell.Store(&val)
}

// Read atomically returns the most recently stored value, or the zero value
// of T if nothing has been stored yet.
func (v *Value[T]) Read() T {
	p := v.cell.Load()
	if p == nil {
		var zero T
		return zero
	}
	return *p
}

// Exchange atomically stores v and returns the previously held value. Used
// by the OnChange propagation policy to compare against the last propagated
// result.
func (v *Value[T]) Exchange(val T) T {
	p := v.cell.Swap(&val)
	if p == nil {
		var zero T
		return zero
	}
	return *p
}

// Input returns an Input writing into this Value with no owning Work.
// Appending through it stores the value but schedules nothing, which is
// exactly what a sink wants.
func (v *Value[T]) Input() Input[T] {
	return Input[T]{cell: v}
}
