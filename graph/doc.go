// Package graph provides a push-driven dataflow evaluation engine.
//
// A Graph is a directed graph of computation Nodes. Producers write values
// into a Node's Inputs, which schedules the Node on the Graph's lock-free
// intake queue; an evaluation pass drains the queue, orders the scheduled
// Nodes by construction id in a min-heap, and evaluates them in ascending
// order, storing each result into the connected downstream Inputs and
// scheduling those Nodes in turn. Because ids are handed out in
// construction order and graphs are built upstream-before-downstream, a
// pass evaluates every Node after all of its scheduled upstreams:
// topological order within the pass.
//
// Concurrent triggers of one Node coalesce into a single recomputation
// under the Node's exclusion flag, and a propagation policy (Always or
// OnChange) decides whether a fresh result fires downstream. Works
// triggered at or behind the pass cursor (cycles included) are pushed
// back to the intake queue and converge across subsequent passes.
//
// Minimal use:
//
//	g := graph.New()
//	sum := graph.NewNode2(g, graph.Always[int](),
//	    func(a, b int) int { return a + b },
//	    graph.Unconnected[int](), graph.Unconnected[int]())
//
//	var sink graph.Value[int]
//	sum.Connect(sink.Input())
//
//	sum.Input0().Append(g, 1)
//	sum.Input1().Append(g, 2)
//	g.Evaluate(nil)
//	_ = sink.Read() // 3
//
// For continuous evaluation, run an Evaluator in its own goroutine; it
// busy-loops over Evaluate and can stream pass statistics to Prometheus,
// OpenTelemetry, or a pass journal (see the emit and journal subpackages).
package graph
