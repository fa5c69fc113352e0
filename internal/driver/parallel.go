package driver

import (
	"context"
	"runtime"

	"golang.org/x/sync/errgroup"

	"redux/internal/diag"
	"redux/internal/source"
	"redux/internal/trace"
)

// CompileFiles compiles independent units in parallel. Units share no
// state: each gets its own file set, diagnostics and inliner context.
// Results keep the order of paths; a file that cannot be read yields a
// result whose bag holds an IO diagnostic.
func CompileFiles(ctx context.Context, paths []string, opts *Options) ([]*Result, error) {
	if opts == nil {
		opts = &Options{}
	}
	jobs := opts.Jobs
	if jobs <= 0 {
		jobs = runtime.GOMAXPROCS(0)
	}
	results := make([]*Result, len(paths))
	if len(paths) == 0 {
		return results, nil
	}

	ctx, span := trace.Start(ctx, trace.ScopeDriver, "compile-files")
	defer span.End("")

	// Результаты (индексы уникальны для каждой горутины, мьютекс не нужен)
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(min(jobs, len(paths)))
	for i, path := range paths {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			res, err := Compile(gctx, path, opts)
			if err != nil {
				res = loadFailure(path, err, opts)
			}
			results[i] = res
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return results, err
	}
	return results, nil
}

func loadFailure(path string, err error, opts *Options) *Result {
	fs := source.NewFileSet()
	id := fs.AddVirtual(path, nil)
	bag := diag.NewBag(opts.maxDiagnostics())
	bag.Add(diag.NewError(diag.IOLoadFileError, source.Span{File: id}, err.Error()))
	return &Result{Path: path, FileSet: fs, File: fs.Get(id), Bag: bag}
}
