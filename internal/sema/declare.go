package sema

import (
	"redux/internal/ast"
	"redux/internal/builtins"
)

// Declare decides for every assignment whether it introduces a new binding.
// An assignment declares when its name is not visible in any open frame.
// Function, bitfield and enum definitions register their names (and enum
// members) without being assignments. Parameters are bound in the frame of
// the function body. Declare must run exactly once, before Annotate.
func Declare(prog *ast.Block, host *builtins.Host) {
	d := declarer{names: ast.NewStack[struct{}]()}
	for _, name := range host.Names() {
		d.names.Define(name, struct{}{})
	}
	d.block(prog)
}

type declarer struct {
	names *ast.Stack[struct{}]
}

func (d *declarer) block(b *ast.Block) {
	d.names.Push()
	d.stmts(b)
	d.names.Pop()
}

func (d *declarer) stmts(b *ast.Block) {
	for i := range b.Overrides {
		d.stmt(&b.Overrides[i])
	}
	for i := range b.Stmts {
		d.stmt(&b.Stmts[i])
	}
}

func (d *declarer) stmt(s *ast.Stmt) {
	switch data := s.Data.(type) {
	case *ast.Block:
		d.block(data)
	case *ast.AssignData:
		if !data.Declare {
			_, used := d.names.Lookup(data.Name)
			data.Declare = !used
		}
		if data.Declare {
			d.names.Define(data.Name, struct{}{})
		}
	case *ast.IfData:
		d.block(data.Then)
		if data.Else != nil {
			d.block(data.Else)
		}
	case *ast.WhileData:
		d.block(data.Body)
	case *ast.ForData:
		// the header gets its own frame around the body
		d.names.Push()
		if data.Init != nil {
			d.stmt(data.Init)
		}
		if data.Step != nil {
			d.stmt(data.Step)
		}
		d.block(data.Body)
		d.names.Pop()
	case *ast.FuncDef:
		d.names.Define(data.Name, struct{}{})
		d.names.Push()
		for _, prm := range data.Params {
			d.names.Define(prm.Name, struct{}{})
		}
		d.stmts(data.Body)
		d.names.Pop()
	case *ast.BitfieldDef:
		d.names.Define(data.Name, struct{}{})
	case *ast.EnumDef:
		d.names.Define(data.Name, struct{}{})
		for _, m := range data.Enum.Members {
			d.names.Define(m.Name, struct{}{})
		}
	case *ast.ExprStmtData, *ast.BitfieldAssignData, *ast.ReturnData, *ast.BreakData, *ast.CodeData:
	case *ast.RequireData:
		panic("sema: unresolved require reached the declaration analyzer")
	default:
		panic("sema: Declare: unhandled statement " + s.Kind.String())
	}
}
