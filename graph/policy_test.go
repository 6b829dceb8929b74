package graph

import "testing"

func TestAlwaysPropagates(t *testing.T) {
	p := Always[int]()
	for _, v := range []int{0, 1, 1, -3} {
		if !p.Propagate(v) {
			t.Errorf("Always suppressed %d", v)
		}
	}
}

func TestOnChangeSuppression(t *testing.T) {
	p := OnChange[int]()

	if !p.Propagate(1) {
		t.Error("first distinct value suppressed")
	}
	if p.Propagate(1) {
		t.Error("repeated value propagated")
	}
	if !p.Propagate(2) {
		t.Error("changed value suppressed")
	}
	if !p.Propagate(1) {
		t.Error("value differing from the latest suppressed")
	}
}

func TestOnChangeZeroValue(t *testing.T) {
	// The stored last value starts at the zero value, so a first result
	// equal to it is suppressed.
	p := OnChange[int]()
	if p.Propagate(0) {
		t.Error("zero result propagated against the zero-initialised state")
	}
}

func TestOnChangeStructuralEquality(t *testing.T) {
	p := OnChange[[]int]()
	if !p.Propagate([]int{1, 2}) {
		t.Error("first slice suppressed")
	}
	if p.Propagate([]int{1, 2}) {
		t.Error("structurally equal slice propagated")
	}
	if !p.Propagate([]int{1, 3}) {
		t.Error("differing slice suppressed")
	}
}

func TestOnChangeVsAlwaysFanout(t *testing.T) {
	g := New()

	src := NewNode1(g, Always[int](), identity, Unconnected[int]())
	a1 := NewNode1(g, Always[int](), identity, src)
	a2 := NewNode1(g, Always[int](), identity, a1)
	b1 := NewNode1(g, OnChange[int](), identity, src)
	b2 := NewNode1(g, Always[int](), identity, b1)

	var sinkA, sinkB Value[int]
	a2.Connect(sinkA.Input())
	b2.Connect(sinkB.Input())

	src.Input0().Append(g, 1)

	var st Stats
	if !g.Evaluate(&st) {
		t.Fatal("first pass reported no work")
	}
	if st.Worked != 5 {
		t.Errorf("first pass: worked = %d, want 5", st.Worked)
	}
	if sinkA.Read() != 1 || sinkB.Read() != 1 {
		t.Errorf("sinks = %d, %d, want 1, 1", sinkA.Read(), sinkB.Read())
	}

	// Same value again: the OnChange node runs but suppresses its
	// downstream, so b2 stays idle.
	src.Input0().Append(g, 1)
	if !g.Evaluate(&st) {
		t.Fatal("second pass reported no work")
	}
	if st.Queued != 1 || st.Worked != 4 {
		t.Errorf("second pass: %s, want queued: 1, worked: 4", st)
	}

	src.Input0().Append(g, 2)
	if !g.Evaluate(&st) {
		t.Fatal("third pass reported no work")
	}
	if st.Worked != 5 {
		t.Errorf("third pass: worked = %d, want 5", st.Worked)
	}
	if sinkA.Read() != 2 || sinkB.Read() != 2 {
		t.Errorf("sinks = %d, %d, want 2, 2", sinkA.Read(), sinkB.Read())
	}
}

func TestOnChangeSuppressionUpstreamStillRuns(t *testing.T) {
	// Writing the same value re-evaluates the node itself; only the
	// propagation downstream is suppressed.
	g := New()
	evals := 0
	n := NewNode1(g, OnChange[int](), func(x int) int {
		evals++
		return x
	}, Unconnected[int]())
	down := NewNode1(g, Always[int](), identity, n)
	_ = down

	n.Input0().Append(g, 7)
	g.Evaluate(nil)
	first := evals

	n.Input0().Append(g, 7)
	var st Stats
	g.Evaluate(&st)
	if evals != first+1 {
		t.Errorf("upstream evals = %d, want %d", evals, first+1)
	}
	if st.Worked != 1 {
		t.Errorf("worked = %d, want 1 (downstream suppressed)", st.Worked)
	}
}
