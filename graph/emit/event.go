package emit

// Event is an observability event produced while a graph is being
// evaluated.
//
// Events describe evaluator lifecycle and completed passes:
//   - Evaluator start/stop
//   - Pass completion, with the pass counters in Meta
//   - Journal write failures
//
// Events are delivered to an Emitter, which can log them, turn them into
// trace spans, or buffer them for inspection.
type Event struct {
	// Pass is the evaluator's pass sequence number (1-indexed). Zero for
	// evaluator-level events such as start and stop.
	Pass uint64

	// Msg names the event, e.g. "pass_complete", "evaluator_start".
	Msg string

	// Meta carries additional structured data. Common keys:
	//   - "queued", "worked", "duplicates", "pushed_graph", "pushed_heap":
	//     the pass counters
	//   - "duration_ms": pass duration in milliseconds
	//   - "error": error details for failure events
	Meta map[string]interface{}
}

// Standard event names emitted by the evaluator.
const (
	// MsgEvaluatorStart is emitted once when an evaluator's run loop begins.
	MsgEvaluatorStart = "evaluator_start"

	// MsgEvaluatorStop is emitted once when the run loop exits.
	MsgEvaluatorStop = "evaluator_stop"

	// MsgPassComplete is emitted after each pass that performed work.
	MsgPassComplete = "pass_complete"

	// MsgJournalError is emitted when recording a pass to the journal fails.
	MsgJournalError = "journal_error"
)
