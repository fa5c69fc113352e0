package observ

import (
	"fmt"
	"strings"
	"sync"
	"time"
)

// Pass is one timed pass over a compilation unit together with the counters
// the pass reported (files required, temporaries allocated, bytes emitted).
type Pass struct {
	Name   string
	Start  time.Time
	Dur    time.Duration
	Counts []Count
	closed bool
}

// Count is a named quantity reported by a pass.
type Count struct {
	Key string
	N   int
}

// Timer collects the passes of one unit in the order they started.
// Laps of one timer may be stopped from other goroutines.
type Timer struct {
	mu     sync.Mutex
	passes []Pass
	now    func() time.Time
}

func NewTimer() *Timer {
	return &Timer{passes: make([]Pass, 0, 5), now: time.Now}
}

// Lap is an open pass. Stop closes it; counts may be added until then.
type Lap struct {
	t   *Timer
	idx int
}

// Start opens a pass named name.
func (t *Timer) Start(name string) *Lap {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.passes = append(t.passes, Pass{Name: name, Start: t.now()})
	return &Lap{t: t, idx: len(t.passes) - 1}
}

// Count records n under key; a repeated key overwrites the earlier value.
func (l *Lap) Count(key string, n int) {
	if l == nil {
		return
	}
	l.t.mu.Lock()
	defer l.t.mu.Unlock()
	p := &l.t.passes[l.idx]
	for i := range p.Counts {
		if p.Counts[i].Key == key {
			p.Counts[i].N = n
			return
		}
	}
	p.Counts = append(p.Counts, Count{Key: key, N: n})
}

// Stop closes the pass and returns its duration. Stopping twice keeps the
// first duration.
func (l *Lap) Stop() time.Duration {
	if l == nil {
		return 0
	}
	l.t.mu.Lock()
	defer l.t.mu.Unlock()
	p := &l.t.passes[l.idx]
	if !p.closed {
		p.Dur = l.t.now().Sub(p.Start)
		p.closed = true
	}
	return p.Dur
}

// Summary renders the passes as an aligned table.
func (t *Timer) Summary() string {
	report := t.Report()
	var sb strings.Builder
	sb.WriteString("timings:\n")
	for _, p := range report.Phases {
		fmt.Fprintf(&sb, "  %-10s %7.2f ms", p.Name, p.DurationMS)
		for _, c := range p.Counts {
			fmt.Fprintf(&sb, "  %s=%d", c.Key, c.N)
		}
		sb.WriteByte('\n')
	}
	fmt.Fprintf(&sb, "  %-10s %7.2f ms\n", "total", report.TotalMS)
	return sb.String()
}

// PhaseReport is the serialized form of a pass.
type PhaseReport struct {
	Name       string       `json:"name"`
	DurationMS float64      `json:"duration_ms"`
	Counts     []CountEntry `json:"counts,omitempty"`
}

type CountEntry struct {
	Key string `json:"key"`
	N   int    `json:"n"`
}

// Report описывает проходы юнита и их суммарную длительность.
type Report struct {
	TotalMS float64       `json:"total_ms"`
	Phases  []PhaseReport `json:"phases"`
}

// Report snapshots the passes; open laps count with zero duration.
func (t *Timer) Report() Report {
	t.mu.Lock()
	defer t.mu.Unlock()
	if len(t.passes) == 0 {
		return Report{}
	}
	report := Report{Phases: make([]PhaseReport, len(t.passes))}
	var total time.Duration
	for i, p := range t.passes {
		total += p.Dur
		pr := PhaseReport{Name: p.Name, DurationMS: durationToMillis(p.Dur)}
		for _, c := range p.Counts {
			pr.Counts = append(pr.Counts, CountEntry(c))
		}
		report.Phases[i] = pr
	}
	report.TotalMS = durationToMillis(total)
	return report
}

func durationToMillis(d time.Duration) float64 {
	return float64(d) / float64(time.Millisecond)
}
