package emit

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
)

func TestLogEmitterText(t *testing.T) {
	var buf bytes.Buffer
	em := NewLogEmitter(&buf, false)

	em.Emit(Event{Pass: 3, Msg: MsgPassComplete, Meta: map[string]interface{}{"worked": 2}})

	out := buf.String()
	if !strings.HasPrefix(out, "[pass_complete] pass=3") {
		t.Errorf("output = %q, want [pass_complete] pass=3 prefix", out)
	}
	if !strings.Contains(out, `"worked":2`) {
		t.Errorf("output = %q, want worked meta", out)
	}
	if !strings.HasSuffix(out, "\n") {
		t.Errorf("output %q not newline-terminated", out)
	}
}

func TestLogEmitterTextNoMeta(t *testing.T) {
	var buf bytes.Buffer
	em := NewLogEmitter(&buf, false)

	em.Emit(Event{Msg: MsgEvaluatorStart})

	want := "[evaluator_start] pass=0\n"
	if got := buf.String(); got != want {
		t.Errorf("output = %q, want %q", got, want)
	}
}

func TestLogEmitterJSON(t *testing.T) {
	var buf bytes.Buffer
	em := NewLogEmitter(&buf, true)

	em.Emit(Event{Pass: 1, Msg: MsgPassComplete, Meta: map[string]interface{}{"queued": 1}})
	em.Emit(Event{Pass: 2, Msg: MsgPassComplete})

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 2 {
		t.Fatalf("lines = %d, want 2", len(lines))
	}

	var decoded struct {
		Pass uint64                 `json:"pass"`
		Msg  string                 `json:"msg"`
		Meta map[string]interface{} `json:"meta"`
	}
	if err := json.Unmarshal([]byte(lines[0]), &decoded); err != nil {
		t.Fatalf("invalid JSON %q: %v", lines[0], err)
	}
	if decoded.Pass != 1 || decoded.Msg != MsgPassComplete {
		t.Errorf("decoded = %+v", decoded)
	}
	if decoded.Meta["queued"] != float64(1) {
		t.Errorf("meta queued = %v, want 1", decoded.Meta["queued"])
	}
}

func TestNullEmitter(t *testing.T) {
	em := NewNullEmitter()
	// Must accept any event without effect.
	em.Emit(Event{Pass: 1, Msg: MsgPassComplete})
	em.Emit(Event{})
}
