package graph

import "testing"

func BenchmarkSingleNodePass(b *testing.B) {
	g := New()
	n := NewNode2(g, Always[int](), add, Unconnected[int](), Unconnected[int]())
	var sink Value[int]
	n.Connect(sink.Input())
	g.Evaluate(nil)

	in := n.Input0()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		in.Append(g, i)
		g.Evaluate(nil)
	}
}

func BenchmarkChainPropagation(b *testing.B) {
	g := New()
	const depth = 32

	head := NewNode1(g, Always[int](), identity, Unconnected[int]())
	var up Connectable[int] = head
	for i := 1; i < depth; i++ {
		up = NewNode1(g, Always[int](), identity, up)
	}
	var sink Value[int]
	up.(*Node1[int, int]).Connect(sink.Input())
	g.Evaluate(nil)

	in := head.Input0()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		in.Append(g, i)
		g.Evaluate(nil)
	}
}

func BenchmarkSchedule(b *testing.B) {
	g := New()
	n := NewNode1(g, Always[int](), identity, Unconnected[int]())
	g.Evaluate(nil)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		n.Schedule(g)
		if i%64 == 63 {
			b.StopTimer()
			g.Evaluate(nil)
			b.StartTimer()
		}
	}
}

func BenchmarkOnChangeSuppressedFanout(b *testing.B) {
	g := New()
	src := NewNode1(g, OnChange[int](), identity, Unconnected[int]())
	for i := 0; i < 8; i++ {
		NewNode1(g, Always[int](), identity, src)
	}
	g.Evaluate(nil)

	in := src.Input0()
	in.Append(g, 1)
	g.Evaluate(nil)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		in.Append(g, 1)
		g.Evaluate(nil)
	}
}
