package driver

import (
	"redux/internal/builtins"
)

// Stage is the last pass Compile runs.
type Stage uint8

const (
	// StageEmit runs the whole pipeline and produces output text.
	StageEmit Stage = iota
	// StageParse stops after the front end and require resolution.
	StageParse
	// StageAnalyze stops after the type annotator.
	StageAnalyze
)

// Options configures one compilation. The zero value compiles to text
// with the default host and no cache.
type Options struct {
	Stage          Stage
	MaxDiagnostics int
	// Host supplies predeclared globals; nil means builtins.Default().
	Host *builtins.Host
	// Cache is consulted for full compilations only.
	Cache         *DiskCache
	EnableTimings bool
	// PhaseObserver may be called from several goroutines by CompileFiles.
	PhaseObserver PhaseObserver
	// Jobs bounds CompileFiles parallelism; <= 0 means GOMAXPROCS.
	Jobs int
}

func (o *Options) host() *builtins.Host {
	if o.Host == nil {
		return builtins.Default()
	}
	return o.Host
}

func (o *Options) maxDiagnostics() int {
	if o.MaxDiagnostics <= 0 {
		return 100
	}
	return o.MaxDiagnostics
}
