package parser

import (
	"fmt"
	"strings"
	"testing"

	"redux/internal/ast"
	"redux/internal/diag"
	"redux/internal/source"
)

func diagnosticsSummary(bag *diag.Bag) string {
	if bag == nil {
		return "<nil bag>"
	}
	diags := bag.Items()
	if len(diags) == 0 {
		return "<none>"
	}
	lines := make([]string, len(diags))
	for i, d := range diags {
		lines[i] = fmt.Sprintf("[%s] %s", d.Code.ID(), d.Message)
	}
	return strings.Join(lines, "; ")
}

func parseInput(t *testing.T, input string) (*ast.Block, *diag.Bag) {
	t.Helper()
	fs := source.NewFileSet()
	id := fs.AddVirtual("test.redux", []byte(input))
	bag := diag.NewBag(100)
	res := ParseSource(fs.Get(id), diag.BagReporter{Bag: bag}, 0)
	return res.Program, bag
}

func parseOK(t *testing.T, input string) *ast.Block {
	t.Helper()
	prog, bag := parseInput(t, input)
	if bag.HasErrors() {
		t.Fatalf("unexpected diagnostics for %q: %s", input, diagnosticsSummary(bag))
	}
	return prog
}

func expectCode(t *testing.T, input string, code diag.Code) {
	t.Helper()
	_, bag := parseInput(t, input)
	for _, d := range bag.Items() {
		if d.Code == code {
			return
		}
	}
	t.Fatalf("expected %s for %q, got %s", code.ID(), input, diagnosticsSummary(bag))
}

func onlyStmt(t *testing.T, prog *ast.Block) ast.Stmt {
	t.Helper()
	if len(prog.Stmts) != 1 {
		t.Fatalf("expected 1 statement, got %d", len(prog.Stmts))
	}
	return prog.Stmts[0]
}
