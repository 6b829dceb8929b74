package graph

import (
	"github.com/dshills/calcflow/graph/emit"
	"github.com/dshills/calcflow/graph/journal"
)

// Option is a functional option for configuring an Evaluator.
//
// Example:
//
//	ev, err := graph.NewEvaluator(g,
//	    graph.WithEmitter(emit.NewLogEmitter(os.Stdout, false)),
//	    graph.WithMetrics(metrics),
//	    graph.WithJournal(j),
//	)
type Option func(*evalConfig) error

type evalConfig struct {
	emitter emit.Emitter
	metrics *PrometheusMetrics
	journal journal.Journal
}

// WithEmitter routes evaluator lifecycle and pass events to em. A nil em
// leaves the default (discard) emitter in place.
func WithEmitter(em emit.Emitter) Option {
	return func(cfg *evalConfig) error {
		if em != nil {
			cfg.emitter = em
		}
		return nil
	}
}

// WithMetrics wires Prometheus metric collection into the evaluator.
func WithMetrics(pm *PrometheusMetrics) Option {
	return func(cfg *evalConfig) error {
		cfg.metrics = pm
		return nil
	}
}

// WithJournal records every completed pass to j. Journal failures are
// reported through the emitter and never interrupt evaluation.
func WithJournal(j journal.Journal) Option {
	return func(cfg *evalConfig) error {
		cfg.journal = j
		return nil
	}
}
