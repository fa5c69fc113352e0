package parser

import (
	"testing"

	"redux/internal/ast"
	"redux/internal/diag"
	"redux/internal/types"
)

func TestAssignment(t *testing.T) {
	s := onlyStmt(t, parseOK(t, "a = 1"))
	d, ok := s.Data.(*ast.AssignData)
	if !ok || d.Name != "a" {
		t.Fatalf("expected assignment to a, got %#v", s.Data)
	}
	c := d.Value.Data.(*ast.ConstData)
	if c.Kind != types.KindInt || c.Int != 1 {
		t.Fatalf("expected int 1, got %#v", c)
	}
	if d.Declare {
		t.Fatalf("parser must not decide declarations")
	}
}

func TestLiterals(t *testing.T) {
	tests := []struct {
		input string
		kind  types.Kind
	}{
		{"a = 42", types.KindInt},
		{"a = 0x1F", types.KindInt},
		{"a = 1.5", types.KindFloat},
		{`a = "s"`, types.KindString},
		{"a = 's'", types.KindString},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			d := onlyStmt(t, parseOK(t, tt.input)).Data.(*ast.AssignData)
			if got := d.Value.Data.(*ast.ConstData).Kind; got != tt.kind {
				t.Fatalf("expected %s, got %s", tt.kind, got)
			}
		})
	}
	d := onlyStmt(t, parseOK(t, "a = 0x1F")).Data.(*ast.AssignData)
	if v := d.Value.Data.(*ast.ConstData).Int; v != 31 {
		t.Fatalf("hex literal: got %d", v)
	}
}

func TestPrecedence(t *testing.T) {
	tests := []struct {
		input string
		top   ast.BinaryOp
	}{
		{"a = 1 + 2 * 3", ast.OpAdd},
		{"a = 1 * 2 + 3", ast.OpAdd},
		{"a = 1 < 2 and 3 > 2", ast.OpAnd},
		{"a = 1 and 2 or 3", ast.OpOr},
		{"a = 1 | 2 & 3", ast.OpBitOr},
		{"a = 1 << 2 + 3", ast.OpShl},
		{"a = 1 + 2 == 3", ast.OpEq},
		{"a = 2 ** 3 ** 2", ast.OpPow},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			v := onlyStmt(t, parseOK(t, tt.input)).Data.(*ast.AssignData).Value
			b, ok := v.Data.(*ast.BinaryData)
			if !ok || b.Op != tt.top {
				t.Fatalf("expected top operator %s, got %#v", tt.top, v.Data)
			}
		})
	}

	v := onlyStmt(t, parseOK(t, "a = 2 ** 3 ** 2")).Data.(*ast.AssignData).Value
	if r := v.Data.(*ast.BinaryData).Right; r.Kind != ast.ExprBinary {
		t.Fatalf("** must be right-associative")
	}
}

func TestUnary(t *testing.T) {
	v := onlyStmt(t, parseOK(t, "a = not 1 < 2")).Data.(*ast.AssignData).Value
	u, ok := v.Data.(*ast.UnaryData)
	if !ok || u.Op != ast.OpNot || u.Operand.Kind != ast.ExprBinary {
		t.Fatalf("not must wrap the comparison, got %#v", v.Data)
	}

	v = onlyStmt(t, parseOK(t, "a = -2 ** 2")).Data.(*ast.AssignData).Value
	u, ok = v.Data.(*ast.UnaryData)
	if !ok || u.Op != ast.OpNeg || u.Operand.Kind != ast.ExprBinary {
		t.Fatalf("unary minus must bind looser than **, got %#v", v.Data)
	}

	v = onlyStmt(t, parseOK(t, "a = ~x")).Data.(*ast.AssignData).Value
	if u := v.Data.(*ast.UnaryData); u.Op != ast.OpBitNot {
		t.Fatalf("expected ~")
	}
}

func TestChainedComparison(t *testing.T) {
	expectCode(t, "a = 1 < 2 < 3", diag.SynUnexpectedToken)
}

func TestCallStatement(t *testing.T) {
	s := onlyStmt(t, parseOK(t, "say(1, 2)"))
	call := s.Data.(*ast.ExprStmtData).X.Data.(*ast.CallData)
	if call.Name != "say" || len(call.Args) != 2 {
		t.Fatalf("unexpected call %#v", call)
	}
	s = onlyStmt(t, parseOK(t, "f()"))
	if n := len(s.Data.(*ast.ExprStmtData).X.Data.(*ast.CallData).Args); n != 0 {
		t.Fatalf("expected no args, got %d", n)
	}
}

func TestStrayIdentifier(t *testing.T) {
	expectCode(t, "a", diag.SynUnexpectedToken)
}

func TestIfElifElse(t *testing.T) {
	s := onlyStmt(t, parseOK(t, "if 1 a = 1 elif 2 a = 2 else a = 3 end"))
	outer := s.Data.(*ast.IfData)
	if len(outer.Then.Stmts) != 1 || outer.Else == nil {
		t.Fatalf("unexpected if shape")
	}
	nested, ok := outer.Else.Stmts[0].Data.(*ast.IfData)
	if !ok {
		t.Fatalf("elif must be an if nested in else, got %#v", outer.Else.Stmts[0].Data)
	}
	if nested.Else == nil || len(nested.Else.Stmts) != 1 {
		t.Fatalf("else must attach to the innermost if")
	}

	s = onlyStmt(t, parseOK(t, "if 2 > 1 else end"))
	d := s.Data.(*ast.IfData)
	if !d.Then.IsEmpty() || d.Else == nil || !d.Else.IsEmpty() {
		t.Fatalf("expected empty then/else blocks")
	}

	s = onlyStmt(t, parseOK(t, "if 1 end"))
	if s.Data.(*ast.IfData).Else != nil {
		t.Fatalf("missing else must be nil")
	}
}

func TestWhileAndBreak(t *testing.T) {
	s := onlyStmt(t, parseOK(t, "while 1 break end"))
	w := s.Data.(*ast.WhileData)
	if len(w.Body.Stmts) != 1 || w.Body.Stmts[0].Kind != ast.StmtBreak {
		t.Fatalf("unexpected while body")
	}
}

func TestFor(t *testing.T) {
	s := onlyStmt(t, parseOK(t, "for i = 0; i < 10; i = i + 1 say(i) end"))
	f := s.Data.(*ast.ForData)
	if f.Init == nil || f.Cond == nil || f.Step == nil || len(f.Body.Stmts) != 1 {
		t.Fatalf("unexpected for shape %#v", f)
	}
	s = onlyStmt(t, parseOK(t, "for ; ; break end"))
	f = s.Data.(*ast.ForData)
	if f.Init != nil || f.Cond != nil || f.Step != nil {
		t.Fatalf("empty clauses must stay nil")
	}
}

func TestFuncDef(t *testing.T) {
	s := onlyStmt(t, parseOK(t, "def f(a, b) x = a return x + b end"))
	fn := s.Data.(*ast.FuncDef)
	if fn.Name != "f" || len(fn.Params) != 2 || !fn.Nontrivial {
		t.Fatalf("unexpected function %#v", fn)
	}
	if _, ok := fn.Body.TrailingReturn(); !ok || len(fn.Body.Stmts) != 2 {
		t.Fatalf("return must be the trailing body statement")
	}
	s = onlyStmt(t, parseOK(t, "def g() end"))
	if fn := s.Data.(*ast.FuncDef); len(fn.Params) != 0 || !fn.Body.IsEmpty() {
		t.Fatalf("unexpected empty function")
	}
}

func TestReturnPlacement(t *testing.T) {
	expectCode(t, "return 1", diag.SynReturnNotLast)
	expectCode(t, "def f() return 1 x = 2 end", diag.SynReturnNotLast)
	expectCode(t, "def f() if 1 return 1 end end", diag.SynReturnNotLast)
}

func TestBitfieldDef(t *testing.T) {
	s := onlyStmt(t, parseOK(t, "bitfield A x : 8 y : 8 end"))
	b := s.Data.(*ast.BitfieldDef)
	if b.Name != "A" || len(b.Shape.Members) != 2 || b.Shape.Members[1].Length != 8 {
		t.Fatalf("unexpected bitfield %#v", b.Shape)
	}
	expectCode(t, "bitfield A x : 0 end", diag.SynBitfieldWidth)
}

func TestBitfieldAssignment(t *testing.T) {
	s := onlyStmt(t, parseOK(t, "a.x = 0"))
	d, ok := s.Data.(*ast.BitfieldAssignData)
	if !ok {
		t.Fatalf("expected bitfield assignment, got %#v", s.Data)
	}
	m := d.Target.Data.(*ast.MemberData)
	if d.Target.Kind != ast.ExprDotted || m.Member != "x" || m.Base.Name() != "a" {
		t.Fatalf("unexpected target %#v", m)
	}
	expectCode(t, "a.x", diag.SynBadAssignTarget)
}

func TestEnumDef(t *testing.T) {
	s := onlyStmt(t, parseOK(t, "enum X a = 1 b end"))
	e := s.Data.(*ast.EnumDef).Enum
	if e.Members[0].Value != 1 || e.Members[1].Value != 2 {
		t.Fatalf("unexpected members %#v", e.Members)
	}
	s = onlyStmt(t, parseOK(t, "enum X a b c d end"))
	for i, m := range s.Data.(*ast.EnumDef).Enum.Members {
		if m.Value != int64(i) {
			t.Fatalf("member %s: expected %d, got %d", m.Name, i, m.Value)
		}
	}
	expectCode(t, "enum X a = 5 b = 3 end", diag.SynEnumOrder)
}

func TestMemberAccess(t *testing.T) {
	v := onlyStmt(t, parseOK(t, "a = self.hp + self->age + b::cost")).Data.(*ast.AssignData).Value
	var kinds []ast.ExprKind
	ast.WalkExpr(v, func(e *ast.Expr) bool {
		switch e.Kind {
		case ast.ExprDotted, ast.ExprChronal, ast.ExprClass:
			kinds = append(kinds, e.Kind)
		}
		return true
	})
	if len(kinds) != 3 || kinds[0] != ast.ExprDotted || kinds[1] != ast.ExprChronal || kinds[2] != ast.ExprClass {
		t.Fatalf("unexpected member kinds %v", kinds)
	}
}

func TestQuery(t *testing.T) {
	v := onlyStmt(t, parseOK(t, "u = query UNIT [] MIN [query_unit.hp] where [query_unit.team == 1]")).Data.(*ast.AssignData).Value
	q := v.Data.(*ast.QueryData)
	if q.Kind != "UNIT" || q.Op != "MIN" || q.Unit != nil || q.OpExpr == nil || q.Where == nil {
		t.Fatalf("unexpected query %#v", q)
	}
	expectCode(t, "u = query UNIT [] MIN [1] [1]", diag.SynUnexpectedToken)
}

func TestCodeLiteralAndRequire(t *testing.T) {
	prog := parseOK(t, "require \"lib\" `raw;`")
	if len(prog.Stmts) != 2 {
		t.Fatalf("expected 2 statements, got %d", len(prog.Stmts))
	}
	if r := prog.Stmts[0].Data.(*ast.RequireData); r.Path != "lib" {
		t.Fatalf("unexpected require path %q", r.Path)
	}
	if c := prog.Stmts[1].Data.(*ast.CodeData); c.Text != "raw;" {
		t.Fatalf("unexpected code text %q", c.Text)
	}
	expectCode(t, "require lib", diag.SynExpectString)
}

func TestRecoveryReportsSeveralErrors(t *testing.T) {
	prog, bag := parseInput(t, "a = ) b = 2 c = ( d = 3")
	if bag.Len() < 2 {
		t.Fatalf("expected at least 2 diagnostics, got %s", diagnosticsSummary(bag))
	}
	found := false
	for _, s := range prog.Stmts {
		if d, ok := s.Data.(*ast.AssignData); ok && d.Name == "b" {
			found = true
		}
	}
	if !found {
		t.Fatalf("parser must recover and keep b = 2")
	}
}

func TestMissingEnd(t *testing.T) {
	expectCode(t, "while 1 a = 1", diag.SynExpectEnd)
	expectCode(t, "def f(a) a = 1", diag.SynExpectEnd)
}
