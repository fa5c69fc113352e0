package testkit

import (
	"testing"

	"redux/internal/ast"
	"redux/internal/diag"
	"redux/internal/parser"
	"redux/internal/source"
)

func parse(t *testing.T, src string) (*ast.Block, *source.File) {
	t.Helper()
	fs := source.NewFileSet()
	f := fs.Get(fs.AddVirtual("inv.redux", []byte(src)))
	bag := diag.NewBag(16)
	res := parser.ParseSource(f, diag.BagReporter{Bag: bag}, 0)
	if bag.HasErrors() {
		t.Fatalf("syntax errors: %v", bag.Items())
	}
	return res.Program, f
}

func TestParsedSpansHold(t *testing.T) {
	for _, src := range []string{
		"a = 1 + 2",
		"def f(a) return a * 2 end x = f(3)",
		"for i = 0; i < 3; i = i + 1 if i say(i) end end",
		"bitfield B x:4 end b = B(1) b.x = 2",
	} {
		prog, f := parse(t, src)
		if err := CheckSpanInvariants(prog, f); err != nil {
			t.Errorf("%q: %v", src, err)
		}
	}
}

func TestForeignSpanRejected(t *testing.T) {
	prog, f := parse(t, "a = 1")
	prog.Stmts[0].Span = source.Span{File: f.ID + 1, Start: 0, End: 1}
	if err := CheckSpanInvariants(prog, f); err == nil {
		t.Fatal("expected a file mismatch")
	}
	prog.Stmts[0].Span = source.Span{File: f.ID, Start: 0, End: 100}
	if err := CheckSpanInvariants(prog, f); err == nil {
		t.Fatal("expected an out-of-bounds span")
	}
}
