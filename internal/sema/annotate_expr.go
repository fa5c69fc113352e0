package sema

import (
	"errors"

	"redux/internal/ast"
	"redux/internal/builtins"
	"redux/internal/types"
)

// expr annotates e and returns its type, which may be types.Void for a call
// without a value.
func (a *annotator) expr(e *ast.Expr) (types.Type, error) {
	var (
		t   types.Type
		err error
	)
	switch d := e.Data.(type) {
	case *ast.ConstData:
		return e.Type(), nil
	case *ast.VarRefData:
		t, err = a.varRef(e, d)
	case *ast.BinaryData:
		t, err = a.binary(e, d)
	case *ast.UnaryData:
		t, err = a.unary(e, d)
	case *ast.CallData:
		t, err = a.call(e, d)
	case *ast.MemberData:
		t, err = a.member(e, d)
	case *ast.QueryData:
		t, err = a.query(e, d)
	default:
		panic("sema: Annotate: unhandled expression " + e.Kind.String())
	}
	if err != nil {
		return types.Invalid, err
	}
	e.SetType(t)
	return t, nil
}

// value annotates e and rejects calls that produce nothing.
func (a *annotator) value(e *ast.Expr) (types.Type, error) {
	t, err := a.expr(e)
	if err != nil {
		return types.Invalid, err
	}
	if t.Kind == types.KindVoid {
		return types.Invalid, errorf(ErrUndefinedType, e.Span, "%s produces no value", describeExpr(e))
	}
	return t, nil
}

func describeExpr(e *ast.Expr) string {
	if c, ok := e.Data.(*ast.CallData); ok {
		return "call of " + c.Name
	}
	return "expression"
}

func (a *annotator) varRef(e *ast.Expr, d *ast.VarRefData) (types.Type, error) {
	entry, ok := a.scope.Lookup(d.Name)
	if !ok {
		return types.Invalid, errorf(ErrUndefinedVariable, e.Span, "%s is not defined", d.Name)
	}
	switch entry.Kind {
	case ast.EntryVar, ast.EntryEnum:
		d.Entry = entry
		return entry.Type, nil
	default:
		return types.Invalid, errorf(ErrInvalidExpression, e.Span, "%s %s is not a value", entryTypeName(entry), d.Name)
	}
}

func (a *annotator) call(e *ast.Expr, d *ast.CallData) (types.Type, error) {
	args := make([]types.Type, len(d.Args))
	for i, arg := range d.Args {
		t, err := a.value(arg)
		if err != nil {
			return types.Invalid, err
		}
		args[i] = t
	}
	entry, ok := a.scope.Lookup(d.Name)
	if !ok {
		return types.Invalid, errorf(ErrUndefinedVariable, d.NameSpan, "%s is not defined", d.Name)
	}
	switch entry.Kind {
	case ast.EntryIntrinsic:
		t, err := entry.Intrinsic.Check(args)
		if err != nil {
			return types.Invalid, errorf(ErrInvalidExpression, e.Span, "%s", err)
		}
		d.Target, d.Intrinsic = ast.TargetIntrinsic, entry.Intrinsic
		return t, nil
	case ast.EntryBitfield:
		if len(args) != 1 || args[0].Kind != types.KindInt {
			return types.Invalid, errorf(ErrInvalidExpression, e.Span, "%s(...) expects one int argument", d.Name)
		}
		d.Target, d.Bitfield = ast.TargetBitfield, entry.Bitfield
		return types.BitfieldOf(entry.Bitfield.Shape), nil
	case ast.EntryFunc:
		return a.callFunc(e, d, entry.Func)
	default:
		return types.Invalid, errorf(ErrNotCallable, d.NameSpan, "%s is not callable", d.Name)
	}
}

// callFunc annotates a private instance of tmpl for this call site.
func (a *annotator) callFunc(e *ast.Expr, d *ast.CallData, tmpl *ast.FuncDef) (types.Type, error) {
	if len(d.Args) != len(tmpl.Params) {
		return types.Invalid, errorf(ErrInvalidExpression, e.Span, "%s expects %d arguments, got %d", d.Name, len(tmpl.Params), len(d.Args))
	}
	inst := ast.Instantiate(tmpl)
	binds := make([]ast.Stmt, 0, len(inst.Params)+len(inst.Body.Stmts))
	for i, prm := range inst.Params {
		binds = append(binds, ast.Stmt{
			Kind: ast.StmtAssign,
			Span: d.Args[i].Span,
			Data: &ast.AssignData{Name: prm.Name, NameSpan: prm.Span, Value: d.Args[i], Declare: true, Bind: true},
		})
	}
	inst.Body.Stmts = append(binds, inst.Body.Stmts...)

	site := a.scope
	a.scope = tmpl.Captured
	err := a.block(inst.Body)
	a.scope = site
	if err != nil {
		return types.Invalid, err
	}

	d.Target, d.Func = ast.TargetFunction, inst
	if ret, ok := inst.Body.TrailingReturn(); ok {
		return ret.Value.Type(), nil
	}
	return types.Void, nil
}

func (a *annotator) member(e *ast.Expr, d *ast.MemberData) (types.Type, error) {
	base, err := a.value(d.Base)
	if err != nil {
		return types.Invalid, err
	}
	switch {
	case base.Kind == types.KindBitfield && e.Kind == ast.ExprDotted:
		if _, _, err := base.Bitfield.MemberLimits(d.Member); err != nil {
			var lookup *types.LookupError
			if errors.As(err, &lookup) {
				return types.Invalid, errorf(ErrLookupFailure, d.MemberSpan, "%s", err)
			}
			if errors.Is(err, types.ErrTooWide) {
				return types.Invalid, errorf(ErrInvalidExpression, d.MemberSpan, "%s", err)
			}
			return types.Invalid, err
		}
		return types.Int, nil
	case base.Kind == types.KindObject:
		if !builtins.IsAttribute(e.Kind, d.Member) {
			return types.Invalid, errorf(ErrInvalidExpression, d.MemberSpan, "%s is not a %s attribute", d.Member, accessName(e.Kind))
		}
		return types.Int, nil
	default:
		return types.Invalid, errorf(ErrInvalidExpression, e.Span, "%s access on %s", accessName(e.Kind), base)
	}
}

func accessName(k ast.ExprKind) string {
	switch k {
	case ast.ExprChronal:
		return "chronal"
	case ast.ExprClass:
		return "class"
	default:
		return "dotted"
	}
}

func isBestMove(e *ast.Expr) bool {
	q, ok := e.Data.(*ast.QueryData)
	return ok && q.Kind == builtins.QueryBestMove
}

func (a *annotator) query(e *ast.Expr, d *ast.QueryData) (types.Type, error) {
	for _, sub := range ast.ExprChildren(e) {
		if ast.AnyExpr(sub, isBestMove) {
			return types.Invalid, errorf(ErrInvalidExpression, sub.Span, "BESTMOVE query cannot be nested in another query")
		}
	}
	if !builtins.IsQueryKind(d.Kind) {
		return types.Invalid, errorf(ErrInvalidExpression, e.Span, "unknown query kind %s", d.Kind)
	}
	if !builtins.IsQueryOp(d.Op) {
		return types.Invalid, errorf(ErrInvalidExpression, e.Span, "unknown query operation %s", d.Op)
	}
	if d.Unit != nil {
		t, err := a.value(d.Unit)
		if err != nil {
			return types.Invalid, err
		}
		if t.Kind != types.KindObject {
			return types.Invalid, errorf(ErrInvalidExpression, d.Unit.Span, "query unit must be an object, got %s", t)
		}
	}
	for _, x := range []*ast.Expr{d.OpExpr, d.Where} {
		if x == nil {
			continue
		}
		t, err := a.value(x)
		if err != nil {
			return types.Invalid, err
		}
		if !t.IsNumeric() {
			return types.Invalid, errorf(ErrInvalidExpression, x.Span, "query operand must be numeric, got %s", t)
		}
	}
	if d.Kind == builtins.QueryUnit {
		return types.Object, nil
	}
	return types.Int, nil
}
