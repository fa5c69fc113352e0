package inline

import (
	"redux/internal/ast"
	"redux/internal/intrinsics"
	"redux/internal/source"
	"redux/internal/types"
)

// Calls replaces every call of a user function with its private body,
// hoisted in front of the statement that contained the call. Arguments are
// bound by declarations in the body's scope overrides; a trailing return
// becomes an assignment to a fresh temporary that replaces the call.
//
// Loops are normalized first so that calls in a loop condition run once per
// iteration. Function definitions are removed.
func Calls(ctx *Context, prog *ast.Block) {
	in := callInliner{ctx: ctx}
	in.block(prog)
}

type callInliner struct {
	ctx *Context
	// pre is the prepend list of the statement being rewritten.
	pre *[]ast.Stmt
}

func (in *callInliner) block(b *ast.Block) {
	b.Stmts = ast.RewriteStmts(b.Stmts, in.stmt)
}

// stmt rewrites s and splices its prepend list in front of it.
func (in *callInliner) stmt(s ast.Stmt) []ast.Stmt {
	var pre []ast.Stmt
	outer := in.pre
	in.pre = &pre
	out := in.rewrite(s)
	in.pre = outer
	if len(pre) == 0 {
		return out
	}
	return append(pre, out...)
}

func (in *callInliner) rewrite(s ast.Stmt) []ast.Stmt {
	switch d := s.Data.(type) {
	case *ast.Block:
		in.block(d)
	case *ast.ExprStmtData:
		if c, ok := d.X.Data.(*ast.CallData); ok && c.Nontrivial() {
			// only the hoisted body remains
			in.expr(d.X)
			return nil
		}
		d.X = in.expr(d.X)
	case *ast.AssignData:
		d.Value = in.expr(d.Value)
	case *ast.BitfieldAssignData:
		d.Target = in.expr(d.Target)
		d.Value = in.expr(d.Value)
	case *ast.IfData:
		d.Cond = in.expr(d.Cond)
		in.block(d.Then)
		if d.Else != nil {
			in.block(d.Else)
		}
	case *ast.WhileData:
		in.while(s.Span, d)
	case *ast.ForData:
		in.forStmt(s.Span, d)
	case *ast.ReturnData:
		d.Value = in.expr(d.Value)
	case *ast.BreakData, *ast.CodeData, *ast.BitfieldDef, *ast.EnumDef:
	case *ast.FuncDef:
		return nil
	case *ast.RequireData:
		panic("inline: unresolved require reached the call inliner")
	default:
		panic("inline: Calls: unhandled statement " + s.Kind.String())
	}
	return []ast.Stmt{s}
}

// while turns `while c body` into `while 1 { if c body else break }`.
func (in *callInliner) while(sp source.Span, d *ast.WhileData) {
	guard := ast.NewIf(d.Cond, d.Body, breakBlock(sp), sp)
	d.Cond = ast.NewInt(1, d.Cond.Span)
	d.Body = &ast.Block{Stmts: []ast.Stmt{guard}, Span: d.Body.Span}
	in.block(d.Body)
}

func breakBlock(sp source.Span) *ast.Block {
	return &ast.Block{Stmts: []ast.Stmt{ast.NewBreak(sp)}, Span: sp}
}

// forStmt folds a condition or step that needs inlining into the body; the
// header runs without a place for hoisted statements. The initializer runs
// once, so its hoisted statements go in front of the loop.
func (in *callInliner) forStmt(sp source.Span, d *ast.ForData) {
	if d.Init != nil {
		init := d.Init.Data.(*ast.AssignData)
		init.Value = in.expr(init.Value)
	}
	if d.Cond != nil && containsNontrivialCall(d.Cond) {
		guard := ast.NewIf(d.Cond, d.Body, breakBlock(sp), sp)
		d.Body = &ast.Block{Stmts: []ast.Stmt{guard}, Span: d.Body.Span}
		d.Cond = nil
	}
	if d.Step != nil && stmtHasNontrivialCall(d.Step) {
		d.Body.Stmts = append(d.Body.Stmts, *d.Step)
		d.Step = nil
	}
	in.block(d.Body)
}

func isNontrivialCall(e *ast.Expr) bool {
	c, ok := e.Data.(*ast.CallData)
	return ok && c.Nontrivial()
}

// containsNontrivialCall scans e without modifying it and stops at the
// first user call.
func containsNontrivialCall(e *ast.Expr) bool {
	return ast.AnyExpr(e, isNontrivialCall)
}

func stmtHasNontrivialCall(s *ast.Stmt) bool {
	for _, e := range ast.StmtExprs(s) {
		if containsNontrivialCall(e) {
			return true
		}
	}
	return false
}

// expr inlines the calls of e in evaluation order and returns the rewritten
// expression. A void user call returns nil.
func (in *callInliner) expr(e *ast.Expr) *ast.Expr {
	if e == nil {
		return nil
	}
	switch d := e.Data.(type) {
	case *ast.ConstData, *ast.VarRefData:
	case *ast.BinaryData:
		d.Left = in.expr(d.Left)
		d.Right = in.expr(d.Right)
	case *ast.UnaryData:
		d.Operand = in.expr(d.Operand)
	case *ast.MemberData:
		d.Base = in.expr(d.Base)
	case *ast.QueryData:
		d.Unit = in.expr(d.Unit)
		d.OpExpr = in.expr(d.OpExpr)
		d.Where = in.expr(d.Where)
	case *ast.CallData:
		for i := range d.Args {
			d.Args[i] = in.expr(d.Args[i])
		}
		if d.Nontrivial() {
			return in.call(e, d)
		}
	default:
		panic("inline: Calls: unhandled expression " + e.Kind.String())
	}
	return e
}

// call hoists the private body of a user call.
func (in *callInliner) call(e *ast.Expr, d *ast.CallData) *ast.Expr {
	if in.ctx.OnInline != nil {
		in.ctx.OnInline(d.Name)
	}
	body := d.Func.Body
	n := len(d.Args)
	overrides := make([]ast.Stmt, 0, n+len(body.Overrides))
	for i := 0; i < n; i++ {
		bind, ok := body.Stmts[i].Data.(*ast.AssignData)
		if !ok || !bind.Bind {
			panic("inline: call of " + d.Name + " has no parameter bindings")
		}
		bind.Value = d.Args[i]
		overrides = append(overrides, body.Stmts[i])
	}
	body.Overrides = append(overrides, body.Overrides...)
	body.Stmts = body.Stmts[n:]
	in.block(body)
	renameCaptures(in.ctx, body)

	ret, ok := body.TrailingReturn()
	if !ok {
		*in.pre = append(*in.pre, ast.NewBlockStmt(body))
		return nil
	}
	t := e.Type()
	temp := in.ctx.Temp()
	last := len(body.Stmts) - 1
	body.Stmts[last] = ast.NewAssign(temp, ret.Value, false, body.Stmts[last].Span)
	*in.pre = append(*in.pre,
		ast.NewAssign(temp, zeroValue(t, e.Span), true, e.Span),
		ast.NewBlockStmt(body),
	)
	ref := ast.NewVarRef(temp, e.Span)
	ref.SetType(t)
	return ref
}

// zeroValue is the initial value of a temporary of type t.
func zeroValue(t types.Type, sp source.Span) *ast.Expr {
	switch t.Kind {
	case types.KindInt:
		return ast.NewInt(0, sp)
	case types.KindBitfield:
		z := ast.NewInt(0, sp)
		z.SetType(t)
		return z
	case types.KindFloat:
		return ast.NewFloat(0, sp)
	case types.KindString:
		return ast.NewString("", sp)
	case types.KindObject:
		in, ok := intrinsics.Lookup("object")
		if !ok {
			panic("inline: object intrinsic is not registered")
		}
		call := ast.NewCall(in.Name, sp, []*ast.Expr{ast.NewInt(0, sp)}, sp)
		cd := call.Data.(*ast.CallData)
		cd.Target, cd.Intrinsic = ast.TargetIntrinsic, in
		call.SetType(types.Object)
		return call
	default:
		panic("inline: no zero value for " + t.String())
	}
}
