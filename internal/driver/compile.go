package driver

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"redux/internal/ast"
	"redux/internal/codegen"
	"redux/internal/diag"
	"redux/internal/inline"
	"redux/internal/observ"
	"redux/internal/parser"
	"redux/internal/project"
	"redux/internal/sema"
	"redux/internal/source"
	"redux/internal/trace"
)

// Result is the outcome of one compilation unit.
type Result struct {
	Path    string
	FileSet *source.FileSet
	File    *source.File
	// Program is the tree after the last pass that ran; nil on a cache hit.
	Program *ast.Block
	// Output is the generated text; nil unless the whole pipeline ran.
	Output []byte
	Bag    *diag.Bag
	Cached bool
	Temps  int
	Timing *observ.Report
}

// Failed reports whether the unit produced any error.
func (r *Result) Failed() bool {
	return r.Bag.HasErrors()
}

// Compile loads path and runs the pipeline over it. Problems in the
// source end up in Result.Bag; the error is reserved for failures to read
// the file itself.
func Compile(ctx context.Context, path string, opts *Options) (*Result, error) {
	if opts == nil {
		opts = &Options{}
	}
	fs := source.NewFileSet()
	id, err := fs.Load(path)
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", path, err)
	}
	return compileUnit(ctx, fs, id, opts), nil
}

// CompileSource compiles in-memory content registered under name.
func CompileSource(ctx context.Context, name string, content []byte, opts *Options) *Result {
	if opts == nil {
		opts = &Options{}
	}
	fs := source.NewFileSet()
	id := fs.AddVirtual(name, content)
	return compileUnit(ctx, fs, id, opts)
}

type unit struct {
	ctx    context.Context
	opts   *Options
	res    *Result
	timer  *observ.Timer
	tracer trace.Tracer
	span   *trace.Span
}

func compileUnit(ctx context.Context, fs *source.FileSet, id source.FileID, opts *Options) *Result {
	if ctx == nil {
		ctx = context.Background()
	}
	file := fs.Get(id)
	u := unit{
		opts:   opts,
		timer:  observ.NewTimer(),
		tracer: trace.FromContext(ctx),
		res: &Result{
			Path:    file.Path,
			FileSet: fs,
			File:    file,
			Bag:     diag.NewBag(opts.maxDiagnostics()),
		},
	}
	u.ctx, u.span = trace.Start(ctx, trace.ScopeUnit, "unit:"+file.Path)
	u.run()
	status := "ok"
	switch {
	case u.res.Failed():
		status = "failed"
	case u.res.Cached:
		status = "cached"
	}
	u.span.End(status)
	if opts.EnableTimings {
		report := u.timer.Report()
		u.res.Timing = &report
		appendTimingDiagnostic(u.res.Bag, id, timingPayload{Path: file.Path, TotalMS: report.TotalMS, Phases: report.Phases})
	}
	return u.res
}

// pass is the handle a running phase reports through: counts go to both the
// unit timer and the trace span.
type pass struct {
	span *trace.Span
	lap  *observ.Lap
}

func (p pass) count(key string, n int) {
	p.lap.Count(key, n)
	p.span.WithExtra(key, strconv.Itoa(n))
}

// phase runs fn as a named, timed and traced pass.
func (u *unit) phase(name string, fn func(p pass)) {
	if u.opts.PhaseObserver != nil {
		u.opts.PhaseObserver(PhaseEvent{File: u.res.Path, Name: name, Status: PhaseStart})
	}
	_, sp := trace.Start(u.ctx, trace.ScopePass, name)
	p := pass{span: sp, lap: u.timer.Start(name)}
	fn(p)
	p.span.End("")
	elapsed := p.lap.Stop()
	if u.opts.PhaseObserver != nil {
		u.opts.PhaseObserver(PhaseEvent{File: u.res.Path, Name: name, Status: PhaseEnd, Elapsed: elapsed})
	}
}

func (u *unit) run() {
	res := u.res
	// восстановление парсера и require могут повторять одну и ту же ошибку
	reporter := diag.NewDedupReporter(diag.BagReporter{Bag: res.Bag})
	u.phase(PhaseParse, func(pass) {
		res.Program = parser.ParseSource(res.File, reporter, uint(u.opts.maxDiagnostics())).Program
	})
	reqs := project.NewRequires(res.FileSet, reporter, uint(u.opts.maxDiagnostics()))
	u.phase(PhaseRequire, func(p pass) {
		reqs.Resolve(res.Program, res.File)
		p.count("files", len(reqs.Files()))
	})
	// семантические проходы не запускаются по дереву с синтаксическими ошибками
	if res.Failed() || u.opts.Stage == StageParse {
		return
	}

	useCache := u.opts.Cache != nil && u.opts.Stage == StageEmit
	var key project.Digest
	if useCache {
		key = cacheKey(res.FileSet, res.File, reqs.Files(), u.opts.host())
		var payload DiskPayload
		if ok, err := u.opts.Cache.Get(key, &payload); err == nil && ok && payload.Schema == diskCacheSchemaVersion {
			res.Output, res.Temps, res.Cached, res.Program = payload.Output, payload.Temps, true, nil
			return
		}
	}

	host := u.opts.host()
	var semErr error
	u.phase(PhaseAnalyze, func(pass) {
		sema.Declare(res.Program, host)
		semErr = sema.Annotate(res.Program, host)
	})
	if semErr != nil {
		res.Bag.Add(semanticDiagnostic(semErr))
		return
	}
	if u.opts.Stage == StageAnalyze {
		return
	}

	ictx := inline.NewContext()
	u.phase(PhaseInline, func(p pass) {
		calls := 0
		ictx.OnInline = func(name string) {
			calls++
			trace.Point(u.tracer, trace.ScopeCall, "call:"+name, "", p.span.ID())
		}
		inline.Calls(ictx, res.Program)
		inline.Enums(res.Program)
		inline.Strings(res.Program)
		p.count("calls", calls)
		p.count("temps", ictx.Temps())
	})
	res.Temps = ictx.Temps()
	u.phase(PhaseEmit, func(p pass) {
		res.Output = codegen.Generate(res.Program, host)
		p.count("bytes", len(res.Output))
	})

	if useCache {
		// промах кэша не ошибка компиляции
		_ = u.opts.Cache.Put(key, &DiskPayload{
			Schema: diskCacheSchemaVersion,
			Path:   res.Path,
			Output: res.Output,
			Temps:  res.Temps,
		})
	}
}

// semanticDiagnostic turns an error of the semantic passes into a
// diagnostic. Anything that is not a *sema.Error is an internal error.
func semanticDiagnostic(err error) diag.Diagnostic {
	var se *sema.Error
	if errors.As(err, &se) {
		return se.Diagnostic()
	}
	return diag.NewError(diag.SemaInternal, source.Span{}, "internal error: "+err.Error())
}
