package trace

import "io"

// fanout is the both-mode tracer: every event is streamed and also kept in
// the ring for a dump on failure.
type fanout struct {
	stream *StreamTracer
	ring   *RingTracer
}

func (f *fanout) Emit(ev *Event) {
	f.stream.Emit(ev)
	f.ring.Emit(ev)
}

func (f *fanout) Flush() error { return f.stream.Flush() }

func (f *fanout) Close() error { return f.stream.Close() }

func (f *fanout) Level() Level { return f.stream.Level() }

func (f *fanout) Enabled() bool { return f.stream.Enabled() }

func (f *fanout) Dump(w io.Writer, format Format) error { return f.ring.Dump(w, format) }
