package trace

import (
	"bytes"
	"context"
	"strings"
	"testing"
	"time"
)

func TestLevelFiltersScopes(t *testing.T) {
	tests := []struct {
		level Level
		scope Scope
		want  bool
	}{
		{LevelOff, ScopeDriver, false},
		{LevelPhase, ScopeUnit, true},
		{LevelPhase, ScopePass, false},
		{LevelDetail, ScopePass, true},
		{LevelDetail, ScopeCall, false},
		{LevelDebug, ScopeCall, true},
	}
	for _, tc := range tests {
		if got := tc.level.ShouldEmit(tc.scope); got != tc.want {
			t.Errorf("%s.ShouldEmit(%s) = %v, want %v", tc.level, tc.scope, got, tc.want)
		}
	}
}

func TestRingKeepsLastEvents(t *testing.T) {
	ring := NewRingTracer(2, LevelDebug)
	for _, name := range []string{"a", "b", "c"} {
		Point(ring, ScopeCall, name, "", 0)
	}
	events := ring.Snapshot()
	if len(events) != 2 || events[0].Name != "b" || events[1].Name != "c" {
		t.Fatalf("unexpected snapshot %+v", events)
	}
}

func TestStreamSpans(t *testing.T) {
	var buf bytes.Buffer
	tr := NewStreamTracer(&buf, LevelDetail, FormatText)
	ctx := WithTracer(context.Background(), tr)
	unit := Begin(FromContext(ctx), ScopeUnit, "unit:bot.redux", 0)
	pass := Begin(FromContext(ctx), ScopePass, "inline", unit.ID())
	pass.WithExtra("temps", "2").End("")
	Point(tr, ScopeCall, "call:f", "", pass.ID())
	unit.End("ok")

	out := buf.String()
	for _, want := range []string{"→ unit:bot.redux", "← inline {temps=2}", "← unit:bot.redux (ok)"} {
		if !strings.Contains(out, want) {
			t.Fatalf("missing %q in:\n%s", want, out)
		}
	}
	if strings.Contains(out, "call:f") {
		t.Fatalf("call events must be filtered at detail level:\n%s", out)
	}
}

func TestParseHelpers(t *testing.T) {
	if l, err := ParseLevel("DEBUG"); err != nil || l != LevelDebug {
		t.Fatalf("ParseLevel: %v %v", l, err)
	}
	if _, err := ParseLevel("loud"); err == nil {
		t.Fatal("expected an error for an unknown level")
	}
	if f, err := ParseFormat("ndjson"); err != nil || f != FormatNDJSON {
		t.Fatalf("ParseFormat: %v %v", f, err)
	}
	if m, err := ParseMode("both"); err != nil || m != ModeBoth {
		t.Fatalf("ParseMode: %v %v", m, err)
	}
	if m, err := ParseMode("tape"); err == nil || m != ModeStream {
		t.Fatalf("ParseMode(tape) = %v, %v", m, err)
	}
}

func TestNopFromEmptyContext(t *testing.T) {
	if FromContext(context.Background()).Enabled() {
		t.Fatal("default tracer must be disabled")
	}
}

func TestRingCountsDropped(t *testing.T) {
	ring := NewRingTracer(3, LevelDebug)
	for _, name := range []string{"a", "b", "c", "d", "e"} {
		Point(ring, ScopeCall, name, "", 0)
	}
	if ring.Len() != 3 || ring.Dropped() != 2 {
		t.Fatalf("len=%d dropped=%d", ring.Len(), ring.Dropped())
	}
	var buf bytes.Buffer
	if err := ring.Dump(&buf, FormatText); err != nil {
		t.Fatal(err)
	}
	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 4 || lines[0] != "--- last 3 trace events (2 earlier dropped) ---" {
		t.Fatalf("unexpected dump:\n%s", buf.String())
	}
	if !strings.HasSuffix(lines[1], "• c") || !strings.HasSuffix(lines[3], "• e") {
		t.Fatalf("dump is not oldest first:\n%s", buf.String())
	}
}

// runSession traces one unit with a pass through a session and closes it.
func runSession(t *testing.T, cfg Config, failed bool) string {
	t.Helper()
	var buf bytes.Buffer
	cfg.Output = &buf
	s, err := Open(cfg)
	if err != nil {
		t.Fatal(err)
	}
	ctx := WithTracer(context.Background(), s.Tracer())
	ctx, unit := Start(ctx, ScopeUnit, "unit:bot.redux")
	_, pass := Start(ctx, ScopePass, "emit")
	pass.End("")
	unit.End("ok")
	if err := s.Close(failed); err != nil {
		t.Fatal(err)
	}
	return buf.String()
}

func TestSessionDumps(t *testing.T) {
	tests := []struct {
		name   string
		cfg    Config
		failed bool
		dump   bool
		events bool
	}{
		{"ring dumps on success", Config{Level: LevelDetail, Mode: ModeRing}, false, true, true},
		{"error level keeps quiet on success", Config{Level: LevelError, Mode: ModeStream}, false, false, false},
		{"error level dumps on failure", Config{Level: LevelError, Mode: ModeStream}, true, true, true},
		{"both streams without dump", Config{Level: LevelDetail, Mode: ModeBoth}, false, false, true},
		{"both dumps on failure", Config{Level: LevelDetail, Mode: ModeBoth}, true, true, true},
		{"stream never dumps", Config{Level: LevelDetail, Mode: ModeStream}, true, false, true},
	}
	for _, tc := range tests {
		out := runSession(t, tc.cfg, tc.failed)
		if got := strings.Contains(out, "--- last "); got != tc.dump {
			t.Errorf("%s: dump=%v\n%s", tc.name, got, out)
		}
		if got := strings.Contains(out, "unit:bot.redux"); got != tc.events {
			t.Errorf("%s: events=%v\n%s", tc.name, got, out)
		}
	}
}

func TestSessionOffIsNop(t *testing.T) {
	s, err := Open(Config{Level: LevelOff})
	if err != nil {
		t.Fatal(err)
	}
	if s.Tracer() != Nop || s.Close(true) != nil {
		t.Fatal("an off session must be inert")
	}
}

func TestStartSkipsFilteredParents(t *testing.T) {
	ring := NewRingTracer(16, LevelDetail)
	ctx := WithTracer(context.Background(), ring)
	ctx, unit := Start(ctx, ScopeUnit, "unit:a.redux")
	ctx, pass := Start(ctx, ScopePass, "inline")
	_, call := Start(ctx, ScopeCall, "call:f")
	if call.ID() != 0 || Parent(ctx) != pass.ID() {
		t.Fatalf("call spans are filtered at detail level")
	}
	call.End("")
	pass.End("")
	unit.End("")
	var passBegin Event
	for _, ev := range ring.Snapshot() {
		if ev.Name == "inline" && ev.Kind == KindSpanBegin {
			passBegin = ev
		}
	}
	if passBegin.ParentID != unit.ID() {
		t.Fatalf("pass parent = %d, want %d", passBegin.ParentID, unit.ID())
	}
}

func TestHeartbeatCarriesOpenSpans(t *testing.T) {
	ring := NewRingTracer(64, LevelPhase)
	unit := Begin(ring, ScopeUnit, "unit:slow.redux", 0)
	h := startHeartbeat(ring, time.Millisecond)
	deadline := time.Now().Add(5 * time.Second)
	var beat *Event
	for beat == nil && time.Now().Before(deadline) {
		for _, ev := range ring.Snapshot() {
			if ev.Kind == KindHeartbeat {
				beat = &ev
				break
			}
		}
		time.Sleep(time.Millisecond)
	}
	h.Stop()
	h.Stop()
	unit.End("")
	if beat == nil {
		t.Fatal("no heartbeat within 5s")
	}
	if beat.Extra["open"] == "0" || beat.Detail != "#1" {
		t.Fatalf("unexpected beat %+v", beat)
	}
}
