package trace

import (
	"bytes"
	"context"
	"encoding/json"
	"strings"
	"testing"
)

func TestParseLevel(t *testing.T) {
	for _, s := range []string{"off", "error", "phase", "detail", "DEBUG"} {
		lvl, err := ParseLevel(s)
		if err != nil {
			t.Fatalf("ParseLevel(%q): %v", s, err)
		}
		if lvl.String() != strings.ToLower(s) {
			t.Errorf("round trip %q -> %q", s, lvl)
		}
	}
	if _, err := ParseLevel("loud"); err == nil {
		t.Error("expected error")
	}
}

func TestShouldEmit(t *testing.T) {
	tests := []struct {
		level Level
		scope Scope
		want  bool
	}{
		{LevelOff, ScopeDriver, false},
		{LevelError, ScopeDriver, false},
		{LevelPhase, ScopePass, true},
		{LevelPhase, ScopeFile, false},
		{LevelDetail, ScopeFile, true},
		{LevelDetail, ScopeNode, false},
		{LevelDebug, ScopeNode, true},
	}
	for _, tt := range tests {
		if got := tt.level.ShouldEmit(tt.scope); got != tt.want {
			t.Errorf("%v.ShouldEmit(%v) = %v", tt.level, tt.scope, got)
		}
	}
}

func TestStreamTracerText(t *testing.T) {
	var buf bytes.Buffer
	tr, err := New(Config{Level: LevelPhase, Mode: ModeStream, Format: FormatText, Output: &buf})
	if err != nil {
		t.Fatal(err)
	}
	sp := Begin(tr, ScopeDriver, "eval", 0)
	inner := Begin(tr, ScopePass, "parse", sp.ID())
	Point(tr, ScopeNode, "node", "dropped", inner.ID())
	inner.WithExtra("nodes", "3").End("")
	sp.End("ok")

	out := buf.String()
	for _, want := range []string{"→ eval", "→ parse", "← parse {nodes=3}", "← eval (ok)"} {
		if !strings.Contains(out, want) {
			t.Errorf("missing %q in:\n%s", want, out)
		}
	}
	if strings.Contains(out, "dropped") {
		t.Error("node events must be filtered at phase level")
	}
}

func TestStreamTracerNDJSON(t *testing.T) {
	var buf bytes.Buffer
	tr := NewStreamTracer(&buf, LevelDebug, FormatNDJSON)
	Point(tr, ScopeNode, "add", "3", 0)
	var ev map[string]any
	if err := json.Unmarshal(buf.Bytes(), &ev); err != nil {
		t.Fatalf("invalid json %q: %v", buf.String(), err)
	}
	if ev["kind"] != "point" || ev["name"] != "add" || ev["scope"] != "node" {
		t.Errorf("event = %v", ev)
	}
}

func TestRingTracerWraps(t *testing.T) {
	r := NewRingTracer(3, LevelDebug)
	for _, name := range []string{"a", "b", "c", "d"} {
		Point(r, ScopeNode, name, "", 0)
	}
	snap := r.Snapshot()
	if len(snap) != 3 || snap[0].Name != "b" || snap[2].Name != "d" {
		t.Fatalf("snapshot = %+v", snap)
	}
	var buf bytes.Buffer
	if err := r.Dump(&buf, FormatText); err != nil {
		t.Fatal(err)
	}
	if strings.Count(buf.String(), "\n") != 3 {
		t.Errorf("dump = %q", buf.String())
	}
}

func TestRingKeepsEverythingAtErrorLevel(t *testing.T) {
	tr, err := New(Config{Level: LevelError, Mode: ModeRing})
	if err != nil {
		t.Fatal(err)
	}
	Begin(tr, ScopeDriver, "eval", 0).End("")
	Point(tr, ScopeNode, "leaf", "", 0)
	if got := len(tr.(*RingTracer).Snapshot()); got != 3 {
		t.Fatalf("stored %d events, want 3", got)
	}
}

func TestMultiTracer(t *testing.T) {
	var buf bytes.Buffer
	tr, err := New(Config{Level: LevelPhase, Mode: ModeBoth, Output: &buf})
	if err != nil {
		t.Fatal(err)
	}
	Begin(tr, ScopePass, "parse", 0).End("")
	ring, ok := tr.(*MultiTracer).Ring()
	if !ok || len(ring.Snapshot()) != 2 {
		t.Fatal("ring child did not receive events")
	}
	if buf.Len() == 0 {
		t.Fatal("stream child did not receive events")
	}
	if err := tr.Close(); err != nil {
		t.Fatal(err)
	}
}

func TestNewOff(t *testing.T) {
	tr, err := New(Config{Level: LevelOff})
	if err != nil || tr.Enabled() {
		t.Fatalf("off tracer: %v %v", tr, err)
	}
	if Begin(tr, ScopeDriver, "x", 0).End("") != 0 {
		t.Error("nop span must report zero duration")
	}
}

func TestContext(t *testing.T) {
	if FromContext(context.Background()) != Nop {
		t.Error("empty context must yield Nop")
	}
	r := NewRingTracer(4, LevelDebug)
	ctx := WithTracer(context.Background(), r)
	if FromContext(ctx) != Tracer(r) {
		t.Error("tracer lost")
	}
	sp := Begin(r, ScopeDriver, "root", 0)
	ctx = WithSpan(ctx, sp)
	if CurrentSpan(ctx) != sp.ID() {
		t.Error("span id lost")
	}
}

func TestParseModeAndFormat(t *testing.T) {
	if m, err := ParseMode("ring"); err != nil || m != ModeRing {
		t.Errorf("ParseMode = %v %v", m, err)
	}
	if _, err := ParseMode("disk"); err == nil {
		t.Error("expected error")
	}
	if f, err := ParseFormat("ndjson"); err != nil || f != FormatNDJSON {
		t.Errorf("ParseFormat = %v %v", f, err)
	}
	if _, err := ParseFormat("xml"); err == nil {
		t.Error("expected error")
	}
}

func TestSpanFail(t *testing.T) {
	r := NewRingTracer(8, LevelDebug)
	sp := Begin(r, ScopePass, "eval", 7)
	sp.Fail("EVL3003")
	evs := r.Snapshot()
	if len(evs) != 2 {
		t.Fatalf("events = %d, want 2", len(evs))
	}
	end := evs[1]
	if end.Kind != KindSpanEnd || end.Detail != "EVL3003" || end.ParentID != 7 {
		t.Fatalf("end event = %+v", end)
	}
	if end.Extra["status"] != "error" {
		t.Errorf("status = %q", end.Extra["status"])
	}
}
