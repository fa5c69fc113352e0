package sema

import (
	"redux/internal/ast"
	"redux/internal/builtins"
	"redux/internal/intrinsics"
	"redux/internal/types"
)

// Annotate types every expression of prog, validates every operation and
// resolves every call. User calls get a private instance of the function
// whose parameters are bound by prepended Bind assignments and whose body is
// annotated in the scope captured at the definition site.
//
// The first error aborts annotation and is returned as *Error.
func Annotate(prog *ast.Block, host *builtins.Host) error {
	a := newAnnotator(host)
	for _, fn := range builtins.AchronalFuncs() {
		a.funcDef(fn)
	}
	return a.block(prog)
}

type annotator struct {
	scope *ast.Scope
}

func newAnnotator(host *builtins.Host) *annotator {
	a := &annotator{scope: ast.NewStack[*ast.Entry]()}
	for _, g := range host.Globals {
		a.scope.Define(g.Name, &ast.Entry{Kind: ast.EntryVar, Type: g.Type})
	}
	for _, name := range intrinsics.Names() {
		in, _ := intrinsics.Lookup(name)
		a.scope.Define(name, &ast.Entry{Kind: ast.EntryIntrinsic, Immutable: true, Intrinsic: in})
	}
	return a
}

func (a *annotator) block(b *ast.Block) error {
	a.scope.Push()
	defer a.scope.Pop()
	return a.stmts(b)
}

func (a *annotator) stmts(b *ast.Block) error {
	for i := range b.Overrides {
		if err := a.stmt(&b.Overrides[i]); err != nil {
			return err
		}
	}
	for i := range b.Stmts {
		if err := a.stmt(&b.Stmts[i]); err != nil {
			return err
		}
	}
	return nil
}

func (a *annotator) stmt(s *ast.Stmt) error {
	switch d := s.Data.(type) {
	case *ast.Block:
		return a.block(d)
	case *ast.ExprStmtData:
		_, err := a.expr(d.X)
		return err
	case *ast.AssignData:
		return a.assign(s, d)
	case *ast.BitfieldAssignData:
		return a.bitfieldAssign(s, d)
	case *ast.IfData:
		if err := a.cond(d.Cond); err != nil {
			return err
		}
		if err := a.block(d.Then); err != nil {
			return err
		}
		if d.Else != nil {
			return a.block(d.Else)
		}
		return nil
	case *ast.WhileData:
		if err := a.cond(d.Cond); err != nil {
			return err
		}
		return a.block(d.Body)
	case *ast.ForData:
		return a.forStmt(d)
	case *ast.ReturnData:
		t, err := a.value(d.Value)
		if err != nil {
			return err
		}
		if t.Kind == types.KindEnum {
			return errorf(ErrIncompatibleType, d.Value.Span, "cannot return %s", t)
		}
		return nil
	case *ast.BreakData, *ast.CodeData:
		return nil
	case *ast.FuncDef:
		a.funcDef(d)
		return nil
	case *ast.BitfieldDef:
		a.scope.Define(d.Name, &ast.Entry{Kind: ast.EntryBitfield, Immutable: true, Bitfield: d})
		return nil
	case *ast.EnumDef:
		a.scope.Define(d.Name, &ast.Entry{Kind: ast.EntryEnum, Type: types.EnumOf(d.Enum), Immutable: true, Enum: d})
		for _, m := range d.Enum.Members {
			a.scope.Define(m.Name, &ast.Entry{
				Kind:      ast.EntryVar,
				Type:      types.Int,
				Immutable: true,
				Value:     ast.NewInt(m.Value, d.NameSpan),
			})
		}
		return nil
	case *ast.RequireData:
		panic("sema: unresolved require reached the type annotator")
	default:
		panic("sema: Annotate: unhandled statement " + s.Kind.String())
	}
}

// funcDef records the definition-site scope, then binds the name. The
// function cannot see itself or anything defined after it.
func (a *annotator) funcDef(fn *ast.FuncDef) {
	fn.Captured = a.scope.Snapshot()
	a.scope.Define(fn.Name, &ast.Entry{Kind: ast.EntryFunc, Immutable: true, Func: fn})
}

func varEntry(t types.Type, value *ast.Expr) *ast.Entry {
	if t.Kind == types.KindString {
		return &ast.Entry{Kind: ast.EntryVar, Type: t, Immutable: true, Value: value}
	}
	return &ast.Entry{Kind: ast.EntryVar, Type: t}
}

func (a *annotator) assign(s *ast.Stmt, d *ast.AssignData) error {
	if d.Bind {
		// value was annotated at the call site
		d.Entry = varEntry(d.Value.Type(), d.Value)
		a.scope.Define(d.Name, d.Entry)
		return nil
	}
	t, err := a.value(d.Value)
	if err != nil {
		return err
	}
	if t.Kind == types.KindEnum {
		return errorf(ErrIncompatibleType, d.Value.Span, "cannot store %s in %s", t, d.Name)
	}
	if d.Declare {
		d.Entry = varEntry(t, d.Value)
		a.scope.Define(d.Name, d.Entry)
		return nil
	}
	entry, ok := a.scope.Lookup(d.Name)
	if !ok {
		return errorf(ErrUndefinedVariable, d.NameSpan, "%s is not defined", d.Name)
	}
	d.Entry = entry
	if !types.Assignable(entry.Type, t) {
		return errorf(ErrIncompatibleType, s.Span, "cannot assign %s to %s of type %s", t, d.Name, entryTypeName(entry))
	}
	if entry.Immutable {
		return errorf(ErrImmutability, d.NameSpan, "%s cannot be reassigned", d.Name)
	}
	return nil
}

func entryTypeName(e *ast.Entry) string {
	switch e.Kind {
	case ast.EntryFunc:
		return "function"
	case ast.EntryBitfield:
		return "bitfield type"
	case ast.EntryIntrinsic:
		return "intrinsic"
	default:
		return e.Type.String()
	}
}

func (a *annotator) bitfieldAssign(s *ast.Stmt, d *ast.BitfieldAssignData) error {
	m, ok := d.Target.Data.(*ast.MemberData)
	if !ok || d.Target.Kind != ast.ExprDotted {
		return errorf(ErrInvalidExpression, d.Target.Span, "bitfield assignment needs a member target")
	}
	base, err := a.value(m.Base)
	if err != nil {
		return err
	}
	if base.Kind != types.KindBitfield {
		return errorf(ErrInvalidExpression, m.Base.Span, "cannot assign member %s of %s", m.Member, base)
	}
	if _, err := a.expr(d.Target); err != nil {
		return err
	}
	t, err := a.value(d.Value)
	if err != nil {
		return err
	}
	if t.Kind != types.KindInt {
		return errorf(ErrIncompatibleType, s.Span, "bitfield member %s needs int, got %s", m.Member, t)
	}
	return nil
}

func (a *annotator) forStmt(d *ast.ForData) error {
	a.scope.Push()
	defer a.scope.Pop()
	if d.Init != nil {
		if err := a.stmt(d.Init); err != nil {
			return err
		}
	}
	if d.Cond != nil {
		if err := a.cond(d.Cond); err != nil {
			return err
		}
	}
	if d.Step != nil {
		if err := a.stmt(d.Step); err != nil {
			return err
		}
	}
	return a.block(d.Body)
}

// cond annotates a loop or branch condition, which must be numeric.
func (a *annotator) cond(e *ast.Expr) error {
	t, err := a.value(e)
	if err != nil {
		return err
	}
	if !t.IsNumeric() {
		return errorf(ErrInvalidExpression, e.Span, "condition must be numeric, got %s", t)
	}
	return nil
}
