package inline

import "redux/internal/ast"

// Enums replaces references to enum members with their integer values. A
// declaration of the same name in an inner scope hides the member.
func Enums(prog *ast.Block) {
	e := constInliner{scope: ast.NewStack[*ast.Expr]()}
	e.onAssign = func(d *ast.AssignData) bool {
		if d.Declare {
			e.scope.Define(d.Name, nil)
		}
		return true
	}
	e.block(prog)
}

// constInliner is the scope-stacked walk shared by the enum and string
// inliners. A nil binding marks a shadowing non-constant.
type constInliner struct {
	scope *ast.Stack[*ast.Expr]
	// onAssign runs after the value of an assignment was rewritten and
	// reports whether the assignment stays in the tree.
	onAssign func(d *ast.AssignData) bool
}

func (c *constInliner) block(b *ast.Block) {
	c.scope.Push()
	defer c.scope.Pop()
	b.Overrides = ast.RewriteStmts(b.Overrides, c.stmt)
	b.Stmts = ast.RewriteStmts(b.Stmts, c.stmt)
}

func (c *constInliner) subst(e *ast.Expr) *ast.Expr {
	d, ok := e.Data.(*ast.VarRefData)
	if !ok {
		return e
	}
	if v, found := c.scope.Lookup(d.Name); found && v != nil {
		out := ast.CloneExpr(v)
		out.Span = e.Span
		return out
	}
	return e
}

func (c *constInliner) stmt(s ast.Stmt) []ast.Stmt {
	switch d := s.Data.(type) {
	case *ast.Block:
		c.block(d)
	case *ast.AssignData:
		d.Value = ast.MapExpr(d.Value, c.subst)
		if !c.onAssign(d) {
			return nil
		}
	case *ast.ExprStmtData, *ast.BitfieldAssignData:
		ast.MapStmtExprs(&s, c.subst)
	case *ast.IfData:
		d.Cond = ast.MapExpr(d.Cond, c.subst)
		c.block(d.Then)
		if d.Else != nil {
			c.block(d.Else)
		}
	case *ast.WhileData:
		d.Cond = ast.MapExpr(d.Cond, c.subst)
		c.block(d.Body)
	case *ast.ForData:
		c.scope.Push()
		d.Init = c.clause(d.Init)
		d.Cond = ast.MapExpr(d.Cond, c.subst)
		d.Step = c.clause(d.Step)
		c.block(d.Body)
		c.scope.Pop()
	case *ast.EnumDef:
		for _, m := range d.Enum.Members {
			c.scope.Define(m.Name, ast.NewInt(m.Value, d.NameSpan))
		}
	case *ast.BreakData, *ast.CodeData, *ast.BitfieldDef:
	case *ast.ReturnData, *ast.FuncDef:
		panic("inline: " + s.Kind.String() + " survived call inlining")
	default:
		panic("inline: unhandled statement " + s.Kind.String())
	}
	return []ast.Stmt{s}
}

// clause rewrites a for header clause; a dropped clause becomes nil.
func (c *constInliner) clause(s *ast.Stmt) *ast.Stmt {
	if s == nil {
		return nil
	}
	out := c.stmt(*s)
	if len(out) == 0 {
		return nil
	}
	return &out[0]
}
