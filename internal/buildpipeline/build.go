// Package buildpipeline orchestrates the compilation of a set of units
// and reports progress for them.
package buildpipeline

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"
	"time"

	"redux/internal/builtins"
	"redux/internal/driver"
)

// BuildRequest configures a build of independent compilation units.
type BuildRequest struct {
	Files []string
	// BaseDir shortens progress names and anchors the OutDir layout.
	BaseDir        string
	OutDir         string
	Jobs           int
	MaxDiagnostics int
	Host           *builtins.Host
	Cache          *driver.DiskCache
	EnableTimings  bool
	Progress       ProgressSink
	// Stdout, when set, receives generated text instead of .ais files.
	Stdout io.Writer
}

// UnitResult pairs a driver result with the file it was written to.
type UnitResult struct {
	*driver.Result
	Name       string
	OutputPath string
}

// BuildResult captures per-unit outcomes and timings.
type BuildResult struct {
	Units   []UnitResult
	Timings *Timings
	Failed  int
}

// ErrUnitsFailed is returned by Build when at least one unit reported errors.
var ErrUnitsFailed = errors.New("build failed")

// Build compiles every requested file and writes the generated text.
func Build(ctx context.Context, req *BuildRequest) (BuildResult, error) {
	result := BuildResult{Timings: &Timings{}}
	if ctx == nil {
		ctx = context.Background()
	}
	if req == nil {
		return result, fmt.Errorf("missing build request")
	}
	sink := req.Progress
	if sink == nil {
		sink = NopSink{}
	}
	names := DisplayNames(req.Files, req.BaseDir)
	byPath := make(map[string]string, len(req.Files))
	for i, file := range req.Files {
		byPath[filepath.ToSlash(filepath.Clean(file))] = names[i]
	}
	emitQueued(sink, names)

	obs := &phaseObserver{sink: sink, names: byPath, timings: result.Timings}
	opts := &driver.Options{
		MaxDiagnostics: req.MaxDiagnostics,
		Host:           req.Host,
		Cache:          req.Cache,
		EnableTimings:  req.EnableTimings,
		PhaseObserver:  obs.OnPhase,
		Jobs:           req.Jobs,
	}
	units, err := driver.CompileFiles(ctx, req.Files, opts)
	if err != nil {
		emitStage(sink, "", StageEmit, StatusError, err, 0)
		return result, err
	}

	var stdoutMu sync.Mutex
	for i, unit := range units {
		ur := UnitResult{Result: unit, Name: names[i]}
		switch {
		case unit.Failed():
			result.Failed++
			emitStage(sink, ur.Name, obs.lastStage(unit.Path), StatusError, ErrUnitsFailed, 0)
		case unit.Output == nil:
			// нечего писать: ранние стадии
		default:
			start := time.Now()
			emitStage(sink, ur.Name, StageWrite, StatusWorking, nil, 0)
			if req.Stdout != nil {
				stdoutMu.Lock()
				_, err = req.Stdout.Write(unit.Output)
				stdoutMu.Unlock()
			} else {
				ur.OutputPath = OutputPath(filepath.FromSlash(unit.Path), req.OutDir, req.BaseDir)
				err = writeOutput(ur.OutputPath, unit.Output)
			}
			elapsed := time.Since(start)
			result.Timings.Add(StageWrite, elapsed)
			if err != nil {
				emitStage(sink, ur.Name, StageWrite, StatusError, err, elapsed)
				return result, err
			}
			status := StatusDone
			if unit.Cached {
				status = StatusCached
			}
			emitStage(sink, ur.Name, StageWrite, status, nil, elapsed)
		}
		result.Units = append(result.Units, ur)
	}
	if result.Failed > 0 {
		return result, fmt.Errorf("%w: %d of %d units reported errors", ErrUnitsFailed, result.Failed, len(units))
	}
	return result, nil
}

func writeOutput(path string, data []byte) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
		return fmt.Errorf("failed to create output dir: %w", err)
	}
	if err := os.WriteFile(path, data, 0o600); err != nil {
		return fmt.Errorf("failed to write build output %q: %w", path, err)
	}
	return nil
}

// phaseObserver maps driver phases onto pipeline stages.
type phaseObserver struct {
	sink    ProgressSink
	names   map[string]string
	timings *Timings

	mu   sync.Mutex
	last map[string]Stage
}

func stageOf(phase string) Stage {
	switch phase {
	case driver.PhaseParse, driver.PhaseRequire:
		return StageParse
	case driver.PhaseAnalyze:
		return StageAnalyze
	case driver.PhaseInline:
		return StageInline
	default:
		return StageEmit
	}
}

// OnPhase updates progress based on compiler phase events.
func (p *phaseObserver) OnPhase(ev driver.PhaseEvent) {
	stage := stageOf(ev.Name)
	name, ok := p.names[ev.File]
	if !ok {
		name = ev.File
	}
	switch ev.Status {
	case driver.PhaseStart:
		p.mu.Lock()
		if p.last == nil {
			p.last = make(map[string]Stage)
		}
		prev, seen := p.last[ev.File]
		p.last[ev.File] = stage
		p.mu.Unlock()
		// parse и require сливаются в одну стадию
		if !seen || prev != stage {
			p.sink.OnEvent(Event{File: name, Stage: stage, Status: StatusWorking})
		}
	case driver.PhaseEnd:
		p.timings.Add(stage, ev.Elapsed)
	}
}

func (p *phaseObserver) lastStage(file string) Stage {
	p.mu.Lock()
	defer p.mu.Unlock()
	if stage, ok := p.last[file]; ok {
		return stage
	}
	return StageParse
}

func emitQueued(sink ProgressSink, files []string) {
	for _, file := range files {
		sink.OnEvent(Event{File: file, Stage: StageParse, Status: StatusQueued})
	}
}

func emitStage(sink ProgressSink, file string, stage Stage, status Status, err error, elapsed time.Duration) {
	sink.OnEvent(Event{File: file, Stage: stage, Status: status, Err: err, Elapsed: elapsed})
}
