package project

import (
	"path/filepath"

	"redux/internal/ast"
	"redux/internal/diag"
	"redux/internal/parser"
	"redux/internal/source"
)

// Requires splices the files named by require statements into a program.
// Each file is included at most once per unit, which also breaks cycles.
type Requires struct {
	fs        *source.FileSet
	reporter  diag.Reporter
	maxErrors uint
	included  map[string]struct{}
	files     []source.FileID
}

func NewRequires(fs *source.FileSet, reporter diag.Reporter, maxErrors uint) *Requires {
	return &Requires{
		fs:        fs,
		reporter:  reporter,
		maxErrors: maxErrors,
		included:  make(map[string]struct{}),
	}
}

// Files returns the required files in the order they were included.
func (r *Requires) Files() []source.FileID {
	return r.files
}

// Resolve replaces every require statement under prog, which was parsed
// from file. Problems are reported, never returned.
func (r *Requires) Resolve(prog *ast.Block, file *source.File) {
	if file.Flags&source.FileVirtual == 0 {
		r.included[key(file.Path)] = struct{}{}
	}
	r.block(prog, file)
}

func (r *Requires) block(b *ast.Block, from *source.File) {
	b.Stmts = ast.RewriteStmts(b.Stmts, func(s ast.Stmt) []ast.Stmt {
		d, ok := s.Data.(*ast.RequireData)
		if !ok {
			for _, nested := range ast.StmtBlocks(&s) {
				r.block(nested, from)
			}
			return []ast.Stmt{s}
		}
		return r.require(s.Span, d.Path, from)
	})
}

func (r *Requires) require(sp source.Span, path string, from *source.File) []ast.Stmt {
	path = RequirePath(path, from.Dir())
	k := key(path)
	if _, seen := r.included[k]; seen {
		return nil
	}
	r.included[k] = struct{}{}

	id, err := r.fs.Load(path)
	if err != nil {
		diag.ReportError(r.reporter, diag.ProjRequireNotFound, sp, "cannot read required file "+path+": "+err.Error()).Emit()
		return nil
	}
	r.files = append(r.files, id)
	f := r.fs.Get(id)
	res := parser.ParseSource(f, r.reporter, r.maxErrors)
	for i := range res.Program.Stmts {
		s := &res.Program.Stmts[i]
		switch s.Kind {
		case ast.StmtFuncDef, ast.StmtBitfieldDef, ast.StmtEnumDef, ast.StmtRequire:
		default:
			diag.ReportError(r.reporter, diag.ProjRequireTopLevel, s.Span, "top-level code is not allowed in required file").
				WithNote(sp, "required here").
				Emit()
		}
	}
	r.block(res.Program, f)
	return res.Program.Stmts
}

// RequirePath resolves a required path against dir and appends the
// source extension when it is missing.
func RequirePath(path, dir string) string {
	if filepath.Ext(path) != SourceExt {
		path += SourceExt
	}
	if !filepath.IsAbs(path) {
		path = filepath.Join(dir, path)
	}
	return filepath.Clean(path)
}

func key(path string) string {
	if abs, err := filepath.Abs(path); err == nil {
		return abs
	}
	return path
}
