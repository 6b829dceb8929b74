package graph

import "errors"

// ErrNilGraph is returned by NewEvaluator when given a nil Graph.
var ErrNilGraph = errors.New("nil graph")
