package emit

// NullEmitter implements Emitter by discarding every event.
//
// It is the default when no emitter is configured, so evaluator code can
// emit unconditionally instead of nil-checking.
type NullEmitter struct{}

// NewNullEmitter creates a NullEmitter.
func NewNullEmitter() *NullEmitter {
	return &NullEmitter{}
}

// Emit discards the event.
func (n *NullEmitter) Emit(Event) {}
