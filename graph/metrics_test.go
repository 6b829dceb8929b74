package graph

import (
	"context"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
)

func gatherCounter(t *testing.T, reg *prometheus.Registry, name string) float64 {
	t.Helper()
	families, err := reg.Gather()
	if err != nil {
		t.Fatalf("Gather: %v", err)
	}
	for _, mf := range families {
		if mf.GetName() == name {
			return mf.GetMetric()[0].GetCounter().GetValue()
		}
	}
	t.Fatalf("metric %s not registered", name)
	return 0
}

func gatherHistogramCount(t *testing.T, reg *prometheus.Registry, name string) uint64 {
	t.Helper()
	families, err := reg.Gather()
	if err != nil {
		t.Fatalf("Gather: %v", err)
	}
	for _, mf := range families {
		if mf.GetName() == name && mf.GetType() == dto.MetricType_HISTOGRAM {
			return mf.GetMetric()[0].GetHistogram().GetSampleCount()
		}
	}
	t.Fatalf("histogram %s not registered", name)
	return 0
}

func TestPrometheusMetricsObservePass(t *testing.T) {
	reg := prometheus.NewRegistry()
	pm := NewPrometheusMetrics(reg)

	pm.ObservePass(Stats{Queued: 2, Worked: 3, Duplicates: 1, PushedGraph: 1, PushedHeap: 2}, 5*time.Millisecond)
	pm.ObservePass(Stats{Queued: 1, Worked: 1}, time.Millisecond)
	pm.ObserveEmptyPass()

	if got := gatherCounter(t, reg, "calcflow_passes_total"); got != 2 {
		t.Errorf("passes_total = %v, want 2", got)
	}
	if got := gatherCounter(t, reg, "calcflow_empty_passes_total"); got != 1 {
		t.Errorf("empty_passes_total = %v, want 1", got)
	}
	if got := gatherCounter(t, reg, "calcflow_work_queued_total"); got != 3 {
		t.Errorf("work_queued_total = %v, want 3", got)
	}
	if got := gatherCounter(t, reg, "calcflow_work_evaluated_total"); got != 4 {
		t.Errorf("work_evaluated_total = %v, want 4", got)
	}
	if got := gatherCounter(t, reg, "calcflow_heap_duplicates_total"); got != 1 {
		t.Errorf("heap_duplicates_total = %v, want 1", got)
	}
	if got := gatherCounter(t, reg, "calcflow_pushed_graph_total"); got != 1 {
		t.Errorf("pushed_graph_total = %v, want 1", got)
	}
	if got := gatherCounter(t, reg, "calcflow_pushed_heap_total"); got != 2 {
		t.Errorf("pushed_heap_total = %v, want 2", got)
	}
	if got := gatherHistogramCount(t, reg, "calcflow_pass_duration_seconds"); got != 2 {
		t.Errorf("pass_duration_seconds count = %v, want 2", got)
	}
}

func TestPrometheusMetricsDisabled(t *testing.T) {
	reg := prometheus.NewRegistry()
	pm := NewPrometheusMetrics(reg)
	pm.SetEnabled(false)

	pm.ObservePass(Stats{Worked: 5}, time.Millisecond)
	pm.ObserveEmptyPass()

	if got := gatherCounter(t, reg, "calcflow_passes_total"); got != 0 {
		t.Errorf("passes_total = %v, want 0 while disabled", got)
	}
}

func TestEvaluatorWiresMetrics(t *testing.T) {
	reg := prometheus.NewRegistry()
	pm := NewPrometheusMetrics(reg)

	g := New()
	n := NewNode1(g, Always[int](), identity, Unconnected[int]())
	n.Input0().Append(g, 1)

	ev, err := NewEvaluator(g, WithMetrics(pm))
	if err != nil {
		t.Fatalf("NewEvaluator: %v", err)
	}

	var st Stats
	if !ev.evalOnce(context.Background(), &st) {
		t.Fatal("evalOnce reported no work")
	}
	if got := gatherCounter(t, reg, "calcflow_passes_total"); got != 1 {
		t.Errorf("passes_total = %v, want 1", got)
	}
	if got := gatherCounter(t, reg, "calcflow_work_evaluated_total"); got != 1 {
		t.Errorf("work_evaluated_total = %v, want 1", got)
	}
}
