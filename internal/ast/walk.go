package ast

// ExprChildren returns the direct sub-expressions of e in field order.
// Nil optional operands are skipped.
func ExprChildren(e *Expr) []*Expr {
	switch d := e.Data.(type) {
	case *ConstData, *VarRefData:
		return nil
	case *BinaryData:
		return []*Expr{d.Left, d.Right}
	case *UnaryData:
		return []*Expr{d.Operand}
	case *CallData:
		return d.Args
	case *MemberData:
		return []*Expr{d.Base}
	case *QueryData:
		out := make([]*Expr, 0, 3)
		for _, x := range []*Expr{d.Unit, d.OpExpr, d.Where} {
			if x != nil {
				out = append(out, x)
			}
		}
		return out
	default:
		panic("ast: ExprChildren: unhandled expression " + e.Kind.String())
	}
}

// WalkExpr visits e depth-first, parent before children. Returning false
// from fn skips the children of that node.
func WalkExpr(e *Expr, fn func(*Expr) bool) {
	if e == nil || !fn(e) {
		return
	}
	for _, c := range ExprChildren(e) {
		WalkExpr(c, fn)
	}
}

// AnyExpr reports whether some node in e satisfies pred. It stops at the
// first match.
func AnyExpr(e *Expr, pred func(*Expr) bool) bool {
	found := false
	WalkExpr(e, func(x *Expr) bool {
		if found {
			return false
		}
		if pred(x) {
			found = true
			return false
		}
		return true
	})
	return found
}

// StmtExprs returns the expressions held directly by s (not by nested
// blocks or clause statements) in field order.
func StmtExprs(s *Stmt) []*Expr {
	switch d := s.Data.(type) {
	case *ExprStmtData:
		return []*Expr{d.X}
	case *AssignData:
		return []*Expr{d.Value}
	case *BitfieldAssignData:
		return []*Expr{d.Target, d.Value}
	case *IfData:
		return []*Expr{d.Cond}
	case *WhileData:
		return []*Expr{d.Cond}
	case *ForData:
		if d.Cond != nil {
			return []*Expr{d.Cond}
		}
		return nil
	case *ReturnData:
		return []*Expr{d.Value}
	default:
		return nil
	}
}

// StmtClauses returns the clause statements of a for header.
func StmtClauses(s *Stmt) []*Stmt {
	d, ok := s.Data.(*ForData)
	if !ok {
		return nil
	}
	var out []*Stmt
	if d.Init != nil {
		out = append(out, d.Init)
	}
	if d.Step != nil {
		out = append(out, d.Step)
	}
	return out
}

// StmtBlocks returns the blocks nested directly in s.
func StmtBlocks(s *Stmt) []*Block {
	switch d := s.Data.(type) {
	case *Block:
		return []*Block{d}
	case *IfData:
		if d.Else != nil {
			return []*Block{d.Then, d.Else}
		}
		return []*Block{d.Then}
	case *WhileData:
		return []*Block{d.Body}
	case *ForData:
		return []*Block{d.Body}
	case *FuncDef:
		return []*Block{d.Body}
	default:
		return nil
	}
}

// WalkBlock visits every statement and expression under b depth-first in
// source order: overrides, then statements; for each statement its own
// expressions, then its clause statements, then its nested blocks.
func WalkBlock(b *Block, stmtFn func(*Stmt) bool, exprFn func(*Expr) bool) {
	visit := func(list []Stmt) {
		for i := range list {
			walkStmt(&list[i], stmtFn, exprFn)
		}
	}
	visit(b.Overrides)
	visit(b.Stmts)
}

func walkStmt(s *Stmt, stmtFn func(*Stmt) bool, exprFn func(*Expr) bool) {
	if stmtFn != nil && !stmtFn(s) {
		return
	}
	if exprFn != nil {
		for _, e := range StmtExprs(s) {
			WalkExpr(e, exprFn)
		}
	}
	for _, c := range StmtClauses(s) {
		walkStmt(c, stmtFn, exprFn)
	}
	for _, b := range StmtBlocks(s) {
		WalkBlock(b, stmtFn, exprFn)
	}
}

// RewriteStmts maps every statement through fn and splices the results:
// an empty result removes the statement, several results replace it in order.
func RewriteStmts(in []Stmt, fn func(Stmt) []Stmt) []Stmt {
	out := make([]Stmt, 0, len(in))
	for _, s := range in {
		out = append(out, fn(s)...)
	}
	return out
}

// MapExpr rewrites e bottom-up: children first in field order, then e
// itself. fn returns the replacement node or its argument unchanged.
func MapExpr(e *Expr, fn func(*Expr) *Expr) *Expr {
	if e == nil {
		return nil
	}
	switch d := e.Data.(type) {
	case *ConstData, *VarRefData:
	case *BinaryData:
		d.Left = MapExpr(d.Left, fn)
		d.Right = MapExpr(d.Right, fn)
	case *UnaryData:
		d.Operand = MapExpr(d.Operand, fn)
	case *CallData:
		for i := range d.Args {
			d.Args[i] = MapExpr(d.Args[i], fn)
		}
	case *MemberData:
		d.Base = MapExpr(d.Base, fn)
	case *QueryData:
		d.Unit = MapExpr(d.Unit, fn)
		d.OpExpr = MapExpr(d.OpExpr, fn)
		d.Where = MapExpr(d.Where, fn)
	default:
		panic("ast: MapExpr: unhandled expression " + e.Kind.String())
	}
	return fn(e)
}

// MapStmtExprs applies MapExpr to every expression held directly by s.
func MapStmtExprs(s *Stmt, fn func(*Expr) *Expr) {
	switch d := s.Data.(type) {
	case *ExprStmtData:
		d.X = MapExpr(d.X, fn)
	case *AssignData:
		d.Value = MapExpr(d.Value, fn)
	case *BitfieldAssignData:
		d.Target = MapExpr(d.Target, fn)
		d.Value = MapExpr(d.Value, fn)
	case *IfData:
		d.Cond = MapExpr(d.Cond, fn)
	case *WhileData:
		d.Cond = MapExpr(d.Cond, fn)
	case *ForData:
		d.Cond = MapExpr(d.Cond, fn)
	case *ReturnData:
		d.Value = MapExpr(d.Value, fn)
	}
}
