package observ

import (
	"strings"
	"testing"
	"time"
)

// fakeClock advances by step on every reading.
func fakeClock(step time.Duration) func() time.Time {
	now := time.Unix(0, 0)
	return func() time.Time {
		now = now.Add(step)
		return now
	}
}

func TestTimerReport(t *testing.T) {
	tm := NewTimer()
	tm.now = fakeClock(time.Millisecond)
	parse := tm.Start("parse")
	parse.Stop()
	inline := tm.Start("inline")
	inline.Count("temps", 1)
	inline.Count("temps", 3)
	inline.Stop()
	inline.Stop()

	r := tm.Report()
	if len(r.Phases) != 2 || r.Phases[0].Name != "parse" {
		t.Fatalf("unexpected report %+v", r)
	}
	if r.Phases[0].DurationMS != 1 || r.TotalMS != 2 {
		t.Fatalf("unexpected durations %+v", r)
	}
	if c := r.Phases[1].Counts; len(c) != 1 || c[0] != (CountEntry{Key: "temps", N: 3}) {
		t.Fatalf("unexpected counts %+v", c)
	}
	s := tm.Summary()
	for _, want := range []string{"parse", "temps=3", "total"} {
		if !strings.Contains(s, want) {
			t.Fatalf("missing %q in summary %q", want, s)
		}
	}
}

func TestOpenLapReportsZero(t *testing.T) {
	tm := NewTimer()
	tm.Start("emit")
	if r := tm.Report(); len(r.Phases) != 1 || r.Phases[0].DurationMS != 0 {
		t.Fatalf("unexpected report %+v", r)
	}
}

func TestEmptyTimer(t *testing.T) {
	if r := NewTimer().Report(); r.TotalMS != 0 || r.Phases != nil {
		t.Fatalf("unexpected report %+v", r)
	}
	var lap *Lap
	lap.Count("x", 1)
	if lap.Stop() != 0 {
		t.Fatal("nil lap must report zero")
	}
}
