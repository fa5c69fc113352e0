package ui

import (
	"fmt"
	"io"
	"sync"
	"time"

	"redux/internal/buildpipeline"
)

// PlainSink prints one line per finished unit. Intermediate stages are
// not shown.
type PlainSink struct {
	mu sync.Mutex
	w  io.Writer
}

func NewPlainSink(w io.Writer) *PlainSink {
	return &PlainSink{w: w}
}

func (s *PlainSink) OnEvent(ev buildpipeline.Event) {
	if ev.File == "" {
		return
	}
	var line string
	switch ev.Status {
	case buildpipeline.StatusDone, buildpipeline.StatusCached:
		line = fmt.Sprintf("%-8s %s (%s)", statusLabel(ev.Stage, ev.Status), ev.File, ev.Elapsed.Round(time.Microsecond))
	case buildpipeline.StatusError:
		line = fmt.Sprintf("%-8s %s: %s", "error", ev.File, ev.Stage)
	default:
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	fmt.Fprintln(s.w, line)
}
