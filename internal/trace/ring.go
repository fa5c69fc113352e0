package trace

import (
	"bytes"
	"fmt"
	"io"
	"sync"
)

// RingTracer keeps the most recent events of a run in memory, so a failed
// build can show what the compiler did last without streaming everything.
type RingTracer struct {
	mu    sync.Mutex
	buf   []Event
	next  int    // slot of the next write
	total uint64 // events accepted since creation
	level Level
}

func NewRingTracer(capacity int, level Level) *RingTracer {
	if capacity <= 0 {
		capacity = DefaultRingSize
	}
	return &RingTracer{buf: make([]Event, capacity), level: level}
}

func (t *RingTracer) Emit(ev *Event) {
	if !t.level.ShouldEmit(ev.Scope) && ev.Kind != KindHeartbeat {
		return
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	t.buf[t.next] = *ev
	t.next = (t.next + 1) % len(t.buf)
	t.total++
}

// Len reports how many events the ring holds.
func (t *RingTracer) Len() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.held()
}

func (t *RingTracer) held() int {
	if t.total < uint64(len(t.buf)) {
		return int(t.total)
	}
	return len(t.buf)
}

// Dropped reports how many events were overwritten.
func (t *RingTracer) Dropped() uint64 {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.total - uint64(t.held())
}

// Snapshot returns the held events, oldest first.
func (t *RingTracer) Snapshot() []Event {
	t.mu.Lock()
	defer t.mu.Unlock()
	n := t.held()
	out := make([]Event, 0, n)
	if n == len(t.buf) {
		out = append(out, t.buf[t.next:]...)
	}
	return append(out, t.buf[:t.next]...)
}

// Dump writes the held events oldest first. Text dumps start with a header
// line naming the number of events lost to wrap-around; NDJSON dumps carry
// events only.
func (t *RingTracer) Dump(w io.Writer, format Format) error {
	events := t.Snapshot()
	dropped := t.Dropped()
	var buf bytes.Buffer
	if format != FormatNDJSON {
		fmt.Fprintf(&buf, "--- last %d trace events", len(events))
		if dropped > 0 {
			fmt.Fprintf(&buf, " (%d earlier dropped)", dropped)
		}
		buf.WriteString(" ---\n")
	}
	for i := range events {
		buf.Write(FormatEvent(&events[i], format))
	}
	_, err := w.Write(buf.Bytes())
	return err
}

func (t *RingTracer) Flush() error { return nil }

func (t *RingTracer) Close() error { return nil }

func (t *RingTracer) Level() Level { return t.level }

func (t *RingTracer) Enabled() bool { return t.level > LevelOff }
