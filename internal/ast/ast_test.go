package ast

import (
	"bytes"
	"strings"
	"testing"

	"redux/internal/source"
	"redux/internal/types"
)

var sp = source.Span{}

func sampleFunc() *FuncDef {
	body := &Block{Stmts: []Stmt{
		NewAssign("t", NewBinary(OpAdd, NewVarRef("a", sp), NewInt(1, sp)), true, sp),
		{Kind: StmtReturn, Data: &ReturnData{Value: NewVarRef("t", sp)}},
	}}
	return &FuncDef{Name: "f", Params: []Param{{Name: "a"}}, Body: body, Nontrivial: true}
}

func TestInstantiateIsDeep(t *testing.T) {
	tmpl := sampleFunc()
	inst := Instantiate(tmpl)

	inst.Body.Stmts[0].Data.(*AssignData).Name = "changed"
	inst.Body.Stmts[0].Data.(*AssignData).Value.Data.(*BinaryData).Left.Data.(*VarRefData).Name = "z"
	inst.Params[0].Name = "q"

	orig := tmpl.Body.Stmts[0].Data.(*AssignData)
	if orig.Name != "t" {
		t.Fatalf("template assignment mutated: %s", orig.Name)
	}
	if orig.Value.Data.(*BinaryData).Left.Name() != "a" {
		t.Fatalf("template expression mutated")
	}
	if tmpl.Params[0].Name != "a" {
		t.Fatalf("template params mutated")
	}
}

func TestCloneKeepsConstantType(t *testing.T) {
	c := CloneExpr(NewFloat(1.5, sp))
	if c.Type() != types.Float {
		t.Fatalf("constant type lost: %s", c.Type())
	}
}

func TestTypeReadBeforeAnnotationPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatalf("expected panic")
		}
	}()
	_ = NewVarRef("x", sp).Type()
}

func TestTrailingReturn(t *testing.T) {
	if _, ok := sampleFunc().Body.TrailingReturn(); !ok {
		t.Fatalf("expected trailing return")
	}
	if _, ok := (&Block{}).TrailingReturn(); ok {
		t.Fatalf("empty block has no return")
	}
}

func TestOperatorCapabilities(t *testing.T) {
	for _, op := range []BinaryOp{OpAdd, OpSub, OpMul, OpDiv, OpMod, OpPow} {
		if !op.IsNumericOp() || op.IsBitwiseOp() || op.IsRelationalOp() {
			t.Fatalf("%s must be numeric only", op)
		}
	}
	for _, op := range []BinaryOp{OpBitOr, OpBitXor, OpBitAnd, OpShl, OpShr} {
		if !op.IsBitwiseOp() || op.IsNumericOp() || op.IsRelationalOp() {
			t.Fatalf("%s must be bitwise only", op)
		}
	}
	for _, op := range []BinaryOp{OpLt, OpGt, OpLe, OpGe, OpEq, OpNe, OpAnd, OpOr} {
		if !op.IsRelationalOp() || op.IsNumericOp() || op.IsBitwiseOp() {
			t.Fatalf("%s must be relational only", op)
		}
	}
	if !OpEq.IsEqualityOp() || OpLt.IsEqualityOp() || !OpOr.IsLogicalOp() {
		t.Fatalf("equality/logical predicates broken")
	}
	if OpAnd.Symbol() != "&&" || OpShl.Symbol() != "<<" {
		t.Fatalf("unexpected symbols")
	}
}

func TestStackShadowAndSnapshot(t *testing.T) {
	s := NewStack[int]()
	s.Define("a", 1)
	s.Push()
	s.Define("a", 2)
	if v, _ := s.Lookup("a"); v != 2 {
		t.Fatalf("inner binding must win, got %d", v)
	}
	snap := s.Snapshot()
	s.Define("late", 3)
	if _, ok := snap.Lookup("late"); ok {
		t.Fatalf("snapshot must not see later bindings")
	}
	if v, _ := snap.Lookup("a"); v != 2 {
		t.Fatalf("snapshot must flatten with inner priority, got %d", v)
	}
	if !s.Rebind("a", 5) {
		t.Fatalf("rebind failed")
	}
	s.Pop()
	if v, _ := s.Lookup("a"); v != 1 {
		t.Fatalf("outer binding must survive pop, got %d", v)
	}
}

func TestRewriteStmtsSplices(t *testing.T) {
	in := []Stmt{NewBreak(sp), NewAssign("x", NewInt(1, sp), true, sp), NewBreak(sp)}
	out := RewriteStmts(in, func(s Stmt) []Stmt {
		switch s.Kind {
		case StmtBreak:
			return nil
		default:
			return []Stmt{NewBreak(sp), s, NewBreak(sp)}
		}
	})
	if len(out) != 3 || out[1].Kind != StmtAssign {
		t.Fatalf("unexpected splice result %v", out)
	}
}

func TestAnyExprStopsEarly(t *testing.T) {
	e := NewBinary(OpAdd, NewCall("f", sp, nil, sp), NewCall("g", sp, nil, sp))
	visited := 0
	found := AnyExpr(e, func(x *Expr) bool {
		visited++
		return x.Kind == ExprCall
	})
	if !found || visited != 2 {
		t.Fatalf("found=%v visited=%d", found, visited)
	}
}

func TestDump(t *testing.T) {
	var buf bytes.Buffer
	b := &Block{Stmts: []Stmt{{Kind: StmtFuncDef, Data: sampleFunc()}}}
	if err := Dump(&buf, b); err != nil {
		t.Fatalf("dump: %v", err)
	}
	out := buf.String()
	for _, want := range []string{"FuncDef f(a)", "Assign t declare", "Binary +", "Const 1 : int"} {
		if !strings.Contains(out, want) {
			t.Fatalf("dump missing %q:\n%s", want, out)
		}
	}
}

func TestMapExprBottomUp(t *testing.T) {
	e := NewBinary(OpAdd, NewVarRef("a", sp), NewUnary(OpNeg, NewVarRef("a", sp), sp))
	var order []ExprKind
	out := MapExpr(e, func(x *Expr) *Expr {
		order = append(order, x.Kind)
		if x.Name() == "a" {
			return NewInt(7, x.Span)
		}
		return x
	})
	if out != e {
		t.Fatalf("root must be kept when fn returns it")
	}
	b := out.Data.(*BinaryData)
	if b.Left.Kind != ExprConst || b.Right.Data.(*UnaryData).Operand.Kind != ExprConst {
		t.Fatalf("references were not replaced")
	}
	want := []ExprKind{ExprVarRef, ExprVarRef, ExprUnary, ExprBinary}
	if len(order) != len(want) {
		t.Fatalf("visit order %v", order)
	}
	for i := range want {
		if order[i] != want[i] {
			t.Fatalf("visit order %v", order)
		}
	}
}

func TestWalkVisitsForClauses(t *testing.T) {
	init := NewAssign("i", NewInt(0, sp), true, sp)
	step := NewAssign("i", NewVarRef("i", sp), false, sp)
	b := &Block{Stmts: []Stmt{{Kind: StmtFor, Data: &ForData{Init: &init, Step: &step, Body: &Block{}}}}}
	var names []string
	WalkBlock(b, func(s *Stmt) bool {
		if d, ok := s.Data.(*AssignData); ok {
			names = append(names, d.Name)
		}
		return true
	}, nil)
	if len(names) != 2 {
		t.Fatalf("expected init and step to be visited, got %v", names)
	}
}
