package graph

import "runtime"

// Node is a Work that binds a result-typed function to a fixed arity of
// Value slots and propagates results to a list of downstream Inputs under
// a propagation policy.
//
// Node itself is parameterised only over the result type R; the typed
// argument surface lives on the arity wrappers Node1, Node2 and Node3,
// whose constructors close the function over the input slots. A Node is
// a Connectable[R], so it can be passed as the upstream of another Node.
//
// The downstream list is guarded by the Node's exclusion flag: Connect,
// Disconnect and eval all take it, so only one goroutine at a time touches
// the list or runs the function.
type Node[R any] struct {
	workBase

	fn         func() R
	policy     Policy[R]
	dependents []Input[R]
}

func (n *Node[R]) init(g *Graph, pol Policy[R]) {
	n.id = g.nextID()
	n.self = n
	n.policy = pol
}

// Connect appends in to the downstream list. Every result that passes the
// propagation policy is stored into in's Value slot, and in's owning Work
// (if any) is scheduled.
func (n *Node[R]) Connect(in Input[R]) {
	for !n.tryLock() {
		runtime.Gosched()
	}
	n.dependents = append(n.dependents, in)
	n.unlock()
}

// Disconnect removes the first entry of the downstream list writing into
// the same Value slot as in. No effect if none matches.
func (n *Node[R]) Disconnect(in Input[R]) {
	for !n.tryLock() {
		runtime.Gosched()
	}
	for i := range n.dependents {
		if n.dependents[i].Same(in) {
			n.dependents = append(n.dependents[:i], n.dependents[i+1:]...)
			break
		}
	}
	n.unlock()
}

// eval runs one recomputation. If the exclusion flag is held by another
// goroutine the Node is re-admitted through the WorkState instead, so a
// trigger that raced with an in-flight evaluation is never lost.
//
// The input slots are read independently, not as a snapshot: a write that
// lands between two reads is picked up for one argument and missed for the
// other, and the write's schedule will re-run the Node afterwards. The
// function should therefore be idempotent.
func (n *Node[R]) eval(ws *WorkState) {
	if !n.tryLockAndDequeue() {
		ws.addToQueue(&n.workBase)
		return
	}
	// Released on every exit path, including a panicking fn.
	defer n.unlock()

	result := n.fn()

	if !n.policy.Propagate(result) {
		return
	}
	for _, dep := range n.dependents {
		dep.cell.Store(result)
		if dep.owner != nil {
			ws.addToQueue(dep.owner)
		}
	}
}

// Node1 is a Node over a one-argument function.
type Node1[A, R any] struct {
	Node[R]
	in0 Value[A]
}

// NewNode1 builds a Node computing fn over one argument, connects the
// upstream (which may be Unconnected), and schedules the Node for its
// first evaluation. fn must tolerate zero-valued arguments: the Node can
// run before any upstream has delivered.
func NewNode1[A, R any](g *Graph, pol Policy[R], fn func(A) R, up0 Connectable[A]) *Node1[A, R] {
	n := &Node1[A, R]{}
	n.init(g, pol)
	n.fn = func() R { return fn(n.in0.Read()) }
	Connect(up0, n.Input0())
	n.Schedule(g)
	return n
}

// Input0 returns the Input feeding the function's argument. The Input
// holds a handle to this Node, so Append both stores and schedules.
func (n *Node1[A, R]) Input0() Input[A] {
	return Input[A]{cell: &n.in0, owner: &n.workBase}
}

// Node2 is a Node over a two-argument function.
type Node2[A, B, R any] struct {
	Node[R]
	in0 Value[A]
	in1 Value[B]
}

// NewNode2 builds a Node computing fn over two arguments; see NewNode1.
func NewNode2[A, B, R any](g *Graph, pol Policy[R], fn func(A, B) R, up0 Connectable[A], up1 Connectable[B]) *Node2[A, B, R] {
	n := &Node2[A, B, R]{}
	n.init(g, pol)
	n.fn = func() R { return fn(n.in0.Read(), n.in1.Read()) }
	Connect(up0, n.Input0())
	Connect(up1, n.Input1())
	n.Schedule(g)
	return n
}

// Input0 returns the Input feeding the function's first argument.
func (n *Node2[A, B, R]) Input0() Input[A] {
	return Input[A]{cell: &n.in0, owner: &n.workBase}
}

// Input1 returns the Input feeding the function's second argument.
func (n *Node2[A, B, R]) Input1() Input[B] {
	return Input[B]{cell: &n.in1, owner: &n.workBase}
}

// Inputs returns both argument Inputs at once.
func (n *Node2[A, B, R]) Inputs() (Input[A], Input[B]) {
	return n.Input0(), n.Input1()
}

// Node3 is a Node over a three-argument function.
type Node3[A, B, C, R any] struct {
	Node[R]
	in0 Value[A]
	in1 Value[B]
	in2 Value[C]
}

// NewNode3 builds a Node computing fn over three arguments; see NewNode1.
func NewNode3[A, B, C, R any](g *Graph, pol Policy[R], fn func(A, B, C) R, up0 Connectable[A], up1 Connectable[B], up2 Connectable[C]) *Node3[A, B, C, R] {
	n := &Node3[A, B, C, R]{}
	n.init(g, pol)
	n.fn = func() R { return fn(n.in0.Read(), n.in1.Read(), n.in2.Read()) }
	Connect(up0, n.Input0())
	Connect(up1, n.Input1())
	Connect(up2, n.Input2())
	n.Schedule(g)
	return n
}

// Input0 returns the Input feeding the function's first argument.
func (n *Node3[A, B, C, R]) Input0() Input[A] {
	return Input[A]{cell: &n.in0, owner: &n.workBase}
}

// Input1 returns the Input feeding the function's second argument.
func (n *Node3[A, B, C, R]) Input1() Input[B] {
	return Input[B]{cell: &n.in1, owner: &n.workBase}
}

// Input2 returns the Input feeding the function's third argument.
func (n *Node3[A, B, C, R]) Input2() Input[C] {
	return Input[C]{cell: &n.in2, owner: &n.workBase}
}

// Inputs returns all three argument Inputs at once.
func (n *Node3[A, B, C, R]) Inputs() (Input[A], Input[B], Input[C]) {
	return n.Input0(), n.Input1(), n.Input2()
}
