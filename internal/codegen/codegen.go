package codegen

import (
	"fmt"

	"redux/internal/ast"
	"redux/internal/builtins"
	"redux/internal/types"
)

// Generate emits prog as one top-level block. Host globals are assignable
// without a declaration.
func Generate(prog *ast.Block, host *builtins.Host) []byte {
	g := generator{w: NewWriter(), vars: ast.NewStack[types.Type]()}
	g.vars.Push()
	for _, gl := range host.Globals {
		g.vars.Define(gl.Name, gl.Type)
	}
	g.block(prog)
	return g.w.Bytes()
}

type generator struct {
	w *Writer
	// vars tracks declared variables per block; it only guards against
	// assignments to names that were never declared.
	vars *ast.Stack[types.Type]
}

func (g *generator) block(b *ast.Block) {
	g.w.WriteString("{\n")
	g.vars.Push()
	for i := range b.Overrides {
		g.stmt(&b.Overrides[i])
	}
	for i := range b.Stmts {
		g.stmt(&b.Stmts[i])
	}
	g.vars.Pop()
	g.w.WriteString("}\n")
}

func (g *generator) stmt(s *ast.Stmt) {
	mark := g.w.Len()
	g.emitStmt(s)
	g.w.Terminate(mark)
}

func (g *generator) emitStmt(s *ast.Stmt) {
	switch d := s.Data.(type) {
	case *ast.Block:
		g.block(d)
	case *ast.ExprStmtData:
		g.w.WriteString(g.expr(d.X))
	case *ast.AssignData:
		g.assign(d)
	case *ast.BitfieldAssignData:
		g.w.WriteString(g.expr(d.Target) + " = " + g.expr(d.Value))
	case *ast.IfData:
		g.w.WriteString("if(" + g.expr(d.Cond) + ")")
		g.block(d.Then)
		if d.Else != nil {
			g.w.WriteString("else ")
			g.block(d.Else)
		}
	case *ast.WhileData:
		g.w.WriteString("while(" + g.expr(d.Cond) + ")")
		g.block(d.Body)
	case *ast.ForData:
		g.forStmt(d)
	case *ast.BreakData:
		g.w.WriteString("break")
	case *ast.CodeData:
		g.w.WriteString(d.Text)
	case *ast.BitfieldDef, *ast.EnumDef:
		// только описание типов, в выводе их нет
	case *ast.FuncDef, *ast.ReturnData, *ast.RequireData:
		panic(fmt.Sprintf("codegen: %s must not reach code generation", s.Kind))
	default:
		panic(fmt.Sprintf("codegen: unhandled statement %s", s.Kind))
	}
}

// assign writes `[type ]name = value` without the terminator.
func (g *generator) assign(d *ast.AssignData) {
	t := d.Value.Type()
	if d.Declare {
		name, ok := t.StorageName()
		if !ok {
			panic(fmt.Sprintf("codegen: cannot declare %s of type %s", d.Name, t))
		}
		g.vars.Define(d.Name, t)
		g.w.WriteString(name + " ")
	} else if _, ok := g.vars.Lookup(d.Name); !ok {
		panic("codegen: assignment to undeclared " + d.Name)
	}
	g.w.WriteString(d.Name + " = " + g.expr(d.Value))
}

// forStmt emits the header on one line; cleared clauses leave empty slots.
// The header gets its own scope so the loop variable does not leak.
func (g *generator) forStmt(d *ast.ForData) {
	g.vars.Push()
	defer g.vars.Pop()
	g.w.WriteString("for(")
	if d.Init != nil {
		g.assign(d.Init.Data.(*ast.AssignData))
	}
	g.w.WriteString("; ")
	if d.Cond != nil {
		g.w.WriteString(g.expr(d.Cond))
	}
	g.w.WriteString("; ")
	if d.Step != nil {
		g.assign(d.Step.Data.(*ast.AssignData))
	}
	g.w.WriteString(")")
	g.block(d.Body)
}
