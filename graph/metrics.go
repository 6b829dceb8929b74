package graph

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// PrometheusMetrics provides Prometheus-compatible metrics for graph
// evaluation in production environments.
//
// Metrics exposed (all namespaced "calcflow_"):
//
//  1. passes_total (counter): evaluation passes that performed work.
//  2. empty_passes_total (counter): passes that found the intake queue
//     empty.
//  3. work_queued_total (counter): Works drained from the intake queue.
//  4. work_evaluated_total (counter): Works whose eval completed.
//  5. heap_duplicates_total (counter): coalesced duplicate heap entries.
//  6. pushed_graph_total (counter): Works re-queued for the next pass.
//  7. pushed_heap_total (counter): Works admitted to a running pass.
//  8. pass_duration_seconds (histogram): wall-clock duration per pass.
//
// Usage:
//
//	registry := prometheus.NewRegistry()
//	metrics := graph.NewPrometheusMetrics(registry)
//	ev, _ := graph.NewEvaluator(g, graph.WithMetrics(metrics))
//
//	// Expose via HTTP for Prometheus scraping:
//	http.Handle("/metrics", promhttp.HandlerFor(registry, promhttp.HandlerOpts{}))
//
// Thread-safe: prometheus collectors handle their own synchronization.
type PrometheusMetrics struct {
	passes      prometheus.Counter
	emptyPasses prometheus.Counter

	queued     prometheus.Counter
	worked     prometheus.Counter
	duplicates prometheus.Counter
	pushedG    prometheus.Counter
	pushedH    prometheus.Counter

	passDuration prometheus.Histogram

	registry prometheus.Registerer
	enabled  bool
}

// NewPrometheusMetrics creates and registers all evaluation metrics with
// the provided registry. A nil registry falls back to
// prometheus.DefaultRegisterer; tests should pass their own
// prometheus.NewRegistry() for isolation.
func NewPrometheusMetrics(registry prometheus.Registerer) *PrometheusMetrics {
	if registry == nil {
		registry = prometheus.DefaultRegisterer
	}

	factory := promauto.With(registry)

	pm := &PrometheusMetrics{
		registry: registry,
		enabled:  true,
	}

	pm.passes = factory.NewCounter(prometheus.CounterOpts{
		Namespace: "calcflow",
		Name:      "passes_total",
		Help:      "Evaluation passes that performed work.",
	})
	pm.emptyPasses = factory.NewCounter(prometheus.CounterOpts{
		Namespace: "calcflow",
		Name:      "empty_passes_total",
		Help:      "Evaluation passes that found the intake queue empty.",
	})
	pm.queued = factory.NewCounter(prometheus.CounterOpts{
		Namespace: "calcflow",
		Name:      "work_queued_total",
		Help:      "Works drained from the intake queue.",
	})
	pm.worked = factory.NewCounter(prometheus.CounterOpts{
		Namespace: "calcflow",
		Name:      "work_evaluated_total",
		Help:      "Works whose evaluation completed.",
	})
	pm.duplicates = factory.NewCounter(prometheus.CounterOpts{
		Namespace: "calcflow",
		Name:      "heap_duplicates_total",
		Help:      "Duplicate heap entries coalesced by id equality.",
	})
	pm.pushedG = factory.NewCounter(prometheus.CounterOpts{
		Namespace: "calcflow",
		Name:      "pushed_graph_total",
		Help:      "Works pushed back to the intake queue for the next pass.",
	})
	pm.pushedH = factory.NewCounter(prometheus.CounterOpts{
		Namespace: "calcflow",
		Name:      "pushed_heap_total",
		Help:      "Works admitted to a running pass's heap.",
	})
	pm.passDuration = factory.NewHistogram(prometheus.HistogramOpts{
		Namespace: "calcflow",
		Name:      "pass_duration_seconds",
		Help:      "Wall-clock duration of evaluation passes.",
		Buckets:   prometheus.ExponentialBuckets(1e-6, 10, 8),
	})

	return pm
}

// SetEnabled toggles metric recording. Disabled metrics keep their
// registrations but stop counting.
func (pm *PrometheusMetrics) SetEnabled(enabled bool) {
	pm.enabled = enabled
}

// ObservePass records the outcome of one evaluation pass.
func (pm *PrometheusMetrics) ObservePass(st Stats, d time.Duration) {
	if pm == nil || !pm.enabled {
		return
	}
	pm.passes.Inc()
	pm.queued.Add(float64(st.Queued))
	pm.worked.Add(float64(st.Worked))
	pm.duplicates.Add(float64(st.Duplicates))
	pm.pushedG.Add(float64(st.PushedGraph))
	pm.pushedH.Add(float64(st.PushedHeap))
	pm.passDuration.Observe(d.Seconds())
}

// ObserveEmptyPass records a pass that found no work.
func (pm *PrometheusMetrics) ObserveEmptyPass() {
	if pm == nil || !pm.enabled {
		return
	}
	pm.emptyPasses.Inc()
}
