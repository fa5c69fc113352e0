package sema

import (
	"errors"
	"testing"

	"redux/internal/ast"
	"redux/internal/builtins"
	"redux/internal/diag"
	"redux/internal/parser"
	"redux/internal/source"
)

func parseProgram(t *testing.T, src string) *ast.Block {
	t.Helper()
	fs := source.NewFileSet()
	id := fs.AddVirtual("test.redux", []byte(src))
	bag := diag.NewBag(16)
	res := parser.ParseSource(fs.Get(id), diag.BagReporter{Bag: bag}, 0)
	if bag.HasErrors() {
		t.Fatalf("unexpected syntax errors for %q: %v", src, bag.Items())
	}
	return res.Program
}

func analyze(t *testing.T, src string) (*ast.Block, error) {
	t.Helper()
	prog := parseProgram(t, src)
	host := builtins.Default()
	Declare(prog, host)
	return prog, Annotate(prog, host)
}

func analyzeOK(t *testing.T, src string) *ast.Block {
	t.Helper()
	prog, err := analyze(t, src)
	if err != nil {
		t.Fatalf("unexpected error for %q: %v", src, err)
	}
	return prog
}

func expectKind(t *testing.T, src string, kind error) *Error {
	t.Helper()
	_, err := analyze(t, src)
	if !errors.Is(err, kind) {
		t.Fatalf("%q: expected %v, got %v", src, kind, err)
	}
	var semErr *Error
	if !errors.As(err, &semErr) {
		t.Fatalf("%q: expected *sema.Error, got %T", src, err)
	}
	return semErr
}

// assignValue returns the value of the i-th top-level statement, which must
// be an assignment.
func assignValue(t *testing.T, prog *ast.Block, i int) *ast.Expr {
	t.Helper()
	d, ok := prog.Stmts[i].Data.(*ast.AssignData)
	if !ok {
		t.Fatalf("statement %d is %s, not an assignment", i, prog.Stmts[i].Kind)
	}
	return d.Value
}
