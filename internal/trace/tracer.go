package trace

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"
)

// Tracer receives trace events. Implementations must be goroutine-safe:
// units of one build compile in parallel.
type Tracer interface {
	Emit(ev *Event)
	Flush() error
	Close() error
	Level() Level
	// Enabled reports Level() > LevelOff.
	Enabled() bool
}

// Dumper is a tracer that holds events in memory and can replay them.
type Dumper interface {
	Dump(w io.Writer, format Format) error
}

type nopTracer struct{}

func (nopTracer) Emit(*Event)   {}
func (nopTracer) Flush() error  { return nil }
func (nopTracer) Close() error  { return nil }
func (nopTracer) Level() Level  { return LevelOff }
func (nopTracer) Enabled() bool { return false }

// Nop discards everything. FromContext returns it when no tracer is set.
var Nop Tracer = nopTracer{}

// StorageMode selects where events go.
type StorageMode uint8

const (
	ModeStream StorageMode = iota + 1 // written as they happen
	ModeRing                          // kept in memory, dumped on close
	ModeBoth                          // streamed, ring dumped when the command fails
)

func (m StorageMode) String() string {
	switch m {
	case ModeStream:
		return "stream"
	case ModeRing:
		return "ring"
	case ModeBoth:
		return "both"
	default:
		return "unknown"
	}
}

// ParseMode reads a --trace-mode value.
func ParseMode(s string) (StorageMode, error) {
	switch strings.ToLower(s) {
	case "", "stream":
		return ModeStream, nil
	case "ring":
		return ModeRing, nil
	case "both":
		return ModeBoth, nil
	default:
		return ModeStream, fmt.Errorf("invalid storage mode: %q (expected: stream|ring|both)", s)
	}
}

// DefaultRingSize is the ring capacity when Config.RingSize is not positive.
const DefaultRingSize = 4096

// Config describes a trace session.
type Config struct {
	Level      Level
	Mode       StorageMode
	Format     Format        // FormatAuto picks by OutputPath extension
	Output     io.Writer     // takes precedence over OutputPath
	OutputPath string        // "" or "-" is stderr
	RingSize   int           // events kept by the ring
	Heartbeat  time.Duration // 0 disables
}

// Session is a running tracer together with its output and heartbeat.
type Session struct {
	cfg    Config
	format Format
	tracer Tracer
	out    io.Writer // set once opened
	beat   *heartbeat
}

// Open starts a session. LevelOff yields a session around Nop; LevelError
// always keeps events in the ring only.
func Open(cfg Config) (*Session, error) {
	s := &Session{cfg: cfg, tracer: Nop}
	if cfg.Level == LevelOff {
		return s, nil
	}
	if cfg.Level == LevelError {
		cfg.Mode = ModeRing
		s.cfg.Mode = ModeRing
	}
	s.format = resolveFormat(cfg)

	switch cfg.Mode {
	case ModeStream, ModeBoth:
		w, err := openOutput(cfg)
		if err != nil {
			return nil, err
		}
		s.out = w
		stream := NewStreamTracer(w, cfg.Level, s.format)
		s.tracer = stream
		if cfg.Mode == ModeBoth {
			s.tracer = &fanout{stream: stream, ring: NewRingTracer(cfg.RingSize, cfg.Level)}
		}
	case ModeRing:
		// вывод открывается только если кольцо будет сброшено
		s.tracer = NewRingTracer(cfg.RingSize, cfg.Level)
	default:
		return nil, fmt.Errorf("unknown storage mode: %v", cfg.Mode)
	}
	s.beat = startHeartbeat(s.tracer, cfg.Heartbeat)
	return s, nil
}

// Tracer returns the tracer to install in the command context.
func (s *Session) Tracer() Tracer { return s.tracer }

// Close stops the heartbeat, dumps the ring when the mode asks for it and
// releases the output. failed tells whether the command failed: ring mode at
// LevelError and both mode dump only then, plain ring mode always dumps.
func (s *Session) Close(failed bool) error {
	if s == nil || s.tracer == Nop {
		return nil
	}
	s.beat.Stop()
	var firstErr error
	keep := func(err error) {
		if err != nil && firstErr == nil {
			firstErr = err
		}
	}
	if s.shouldDump(failed) {
		keep(s.dump())
	}
	keep(s.tracer.Close())
	// поток закрывает свой вывод сам; в режиме ring вывод наш
	if s.cfg.Mode == ModeRing && s.out != nil {
		keep(closeOutput(s.out))
	}
	return firstErr
}

func (s *Session) shouldDump(failed bool) bool {
	switch s.cfg.Mode {
	case ModeRing:
		return failed || s.cfg.Level > LevelError
	case ModeBoth:
		return failed
	default:
		return false
	}
}

func (s *Session) dump() error {
	d, ok := s.tracer.(Dumper)
	if !ok {
		return nil
	}
	if s.out == nil {
		w, err := openOutput(s.cfg)
		if err != nil {
			return err
		}
		s.out = w
	}
	if s.cfg.Mode == ModeBoth {
		// the stream may still buffer events that precede the dump
		if err := s.tracer.Flush(); err != nil {
			return err
		}
	}
	return d.Dump(s.out, s.format)
}

func resolveFormat(cfg Config) Format {
	if cfg.Format != FormatAuto {
		return cfg.Format
	}
	if strings.HasSuffix(cfg.OutputPath, ".ndjson") || strings.HasSuffix(cfg.OutputPath, ".json") {
		return FormatNDJSON
	}
	return FormatText
}

func openOutput(cfg Config) (io.Writer, error) {
	if cfg.Output != nil {
		return cfg.Output, nil
	}
	if cfg.OutputPath == "" || cfg.OutputPath == "-" {
		return os.Stderr, nil
	}
	f, err := os.Create(cfg.OutputPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open trace output: %w", err)
	}
	return f, nil
}

func closeOutput(w io.Writer) error {
	if w == os.Stderr || w == os.Stdout {
		return nil
	}
	if c, ok := w.(io.Closer); ok {
		return c.Close()
	}
	return nil
}
