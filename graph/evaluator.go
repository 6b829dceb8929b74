package graph

import (
	"context"
	"runtime"
	"sync/atomic"
	"time"

	"github.com/dshills/calcflow/graph/emit"
	"github.com/dshills/calcflow/graph/journal"
)

// EvaluateUntil repeatedly evaluates g's intake queue in a busy loop,
// yielding the processor only when a pass finds no work. It does not
// block on any mutex, so producers appending Inputs never pay a wakeup
// system call.
//
// Cancellation is cooperative: once stop is set, the loop exits the next
// time it sees the queue empty. An in-flight pass always runs to
// completion.
func EvaluateUntil(g *Graph, stop *atomic.Bool) {
	for !stop.Load() {
		for g.Evaluate(nil) {
		}
		runtime.Gosched()
	}
}

// Evaluator is a configurable background evaluation loop: the busy-loop
// idiom of EvaluateUntil plus emitter, metrics, and journal wiring.
//
// Create one per evaluation goroutine. Sharing a Graph between several
// Evaluators is allowed; each pass drains its own snapshot of the intake
// queue.
type Evaluator struct {
	g       *Graph
	emitter emit.Emitter
	metrics *PrometheusMetrics
	journal journal.Journal

	passes atomic.Uint64
}

// NewEvaluator creates an Evaluator for g with the given options.
func NewEvaluator(g *Graph, opts ...Option) (*Evaluator, error) {
	if g == nil {
		return nil, ErrNilGraph
	}
	cfg := evalConfig{emitter: emit.NewNullEmitter()}
	for _, opt := range opts {
		if err := opt(&cfg); err != nil {
			return nil, err
		}
	}
	return &Evaluator{
		g:       g,
		emitter: cfg.emitter,
		metrics: cfg.metrics,
		journal: cfg.journal,
	}, nil
}

// Passes returns the number of non-empty passes completed so far.
func (e *Evaluator) Passes() uint64 {
	return e.passes.Load()
}

// Run busy-loops over Graph.Evaluate until ctx is cancelled, yielding
// between empty passes. Cancellation is observed only between passes; an
// in-flight pass runs to completion.
func (e *Evaluator) Run(ctx context.Context) {
	e.emitter.Emit(emit.Event{Msg: emit.MsgEvaluatorStart})
	defer e.emitter.Emit(emit.Event{Msg: emit.MsgEvaluatorStop})

	var st Stats
	for {
		select {
		case <-ctx.Done():
			return
		default:
		}

		if e.evalOnce(ctx, &st) {
			continue
		}
		if e.metrics != nil {
			e.metrics.ObserveEmptyPass()
		}
		runtime.Gosched()
	}
}

// evalOnce runs a single pass and fans the outcome out to the configured
// observability backends. It reports whether the pass performed work.
func (e *Evaluator) evalOnce(ctx context.Context, st *Stats) bool {
	start := time.Now()
	if !e.g.Evaluate(st) {
		return false
	}
	elapsed := time.Since(start)
	seq := e.passes.Add(1)

	if e.metrics != nil {
		e.metrics.ObservePass(*st, elapsed)
	}
	e.emitter.Emit(emit.Event{
		Pass: seq,
		Msg:  emit.MsgPassComplete,
		Meta: map[string]interface{}{
			"queued":       st.Queued,
			"worked":       st.Worked,
			"duplicates":   st.Duplicates,
			"pushed_graph": st.PushedGraph,
			"pushed_heap":  st.PushedHeap,
			"duration_ms":  float64(elapsed) / float64(time.Millisecond),
		},
	})
	if e.journal != nil {
		rec := journal.PassRecord{
			Seq:         seq,
			At:          time.Now(),
			Duration:    elapsed,
			Queued:      st.Queued,
			Worked:      st.Worked,
			Duplicates:  st.Duplicates,
			PushedGraph: st.PushedGraph,
			PushedHeap:  st.PushedHeap,
		}
		if err := e.journal.Record(ctx, rec); err != nil {
			e.emitter.Emit(emit.Event{
				Pass: seq,
				Msg:  emit.MsgJournalError,
				Meta: map[string]interface{}{"error": err.Error()},
			})
		}
	}
	return true
}
