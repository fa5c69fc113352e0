package ast

import "slices"

// Instantiate returns a private deep copy of a function template. The call
// inliner rewrites bodies in place, so call sites must never share nodes.
func Instantiate(fn *FuncDef) *FuncDef {
	if fn == nil {
		return nil
	}
	out := *fn
	out.Params = slices.Clone(fn.Params)
	out.Body = CloneBlock(fn.Body)
	return &out
}

func CloneBlock(b *Block) *Block {
	if b == nil {
		return nil
	}
	return &Block{
		Overrides: cloneStmts(b.Overrides),
		Stmts:     cloneStmts(b.Stmts),
		Span:      b.Span,
	}
}

func cloneStmts(in []Stmt) []Stmt {
	if len(in) == 0 {
		return nil
	}
	out := make([]Stmt, len(in))
	for i := range in {
		out[i] = CloneStmt(in[i])
	}
	return out
}

func cloneStmtPtr(s *Stmt) *Stmt {
	if s == nil {
		return nil
	}
	c := CloneStmt(*s)
	return &c
}

// CloneStmt deep-copies a statement.
func CloneStmt(s Stmt) Stmt {
	out := s
	switch d := s.Data.(type) {
	case *Block:
		out.Data = CloneBlock(d)
	case *ExprStmtData:
		out.Data = &ExprStmtData{X: CloneExpr(d.X)}
	case *AssignData:
		c := *d
		c.Value = CloneExpr(d.Value)
		out.Data = &c
	case *BitfieldAssignData:
		out.Data = &BitfieldAssignData{Target: CloneExpr(d.Target), Value: CloneExpr(d.Value)}
	case *IfData:
		out.Data = &IfData{Cond: CloneExpr(d.Cond), Then: CloneBlock(d.Then), Else: CloneBlock(d.Else)}
	case *WhileData:
		out.Data = &WhileData{Cond: CloneExpr(d.Cond), Body: CloneBlock(d.Body)}
	case *ForData:
		out.Data = &ForData{
			Init: cloneStmtPtr(d.Init),
			Cond: CloneExpr(d.Cond),
			Step: cloneStmtPtr(d.Step),
			Body: CloneBlock(d.Body),
		}
	case *ReturnData:
		out.Data = &ReturnData{Value: CloneExpr(d.Value)}
	case *BreakData:
		out.Data = &BreakData{}
	case *CodeData:
		c := *d
		out.Data = &c
	case *FuncDef:
		out.Data = Instantiate(d)
	case *BitfieldDef:
		// layouts are immutable and shared
		c := *d
		out.Data = &c
	case *EnumDef:
		c := *d
		out.Data = &c
	case *RequireData:
		c := *d
		out.Data = &c
	default:
		panic("ast: CloneStmt: unhandled statement " + s.Kind.String())
	}
	return out
}

// CloneExpr deep-copies an expression, including any annotation.
func CloneExpr(e *Expr) *Expr {
	if e == nil {
		return nil
	}
	out := *e
	switch d := e.Data.(type) {
	case *ConstData:
		c := *d
		out.Data = &c
	case *VarRefData:
		c := *d
		out.Data = &c
	case *BinaryData:
		out.Data = &BinaryData{Op: d.Op, Left: CloneExpr(d.Left), Right: CloneExpr(d.Right)}
	case *UnaryData:
		out.Data = &UnaryData{Op: d.Op, Operand: CloneExpr(d.Operand)}
	case *CallData:
		c := *d
		c.Args = make([]*Expr, len(d.Args))
		for i, a := range d.Args {
			c.Args[i] = CloneExpr(a)
		}
		c.Func = Instantiate(d.Func)
		out.Data = &c
	case *MemberData:
		c := *d
		c.Base = CloneExpr(d.Base)
		out.Data = &c
	case *QueryData:
		out.Data = &QueryData{
			Kind:   d.Kind,
			Unit:   CloneExpr(d.Unit),
			Op:     d.Op,
			OpExpr: CloneExpr(d.OpExpr),
			Where:  CloneExpr(d.Where),
		}
	default:
		panic("ast: CloneExpr: unhandled expression " + e.Kind.String())
	}
	return &out
}
