package builtins

import (
	"redux/internal/ast"
	"redux/internal/source"
)

const (
	GetAchronalField = "__get_achronal_field"
	SetAchronalField = "__set_achronal_field"
)

// AchronalFuncs builds fresh definitions of the achronal field accessors.
// They behave like user functions defined before the first statement.
func AchronalFuncs() []*ast.FuncDef {
	var sp source.Span
	code := func(text string) ast.Stmt {
		return ast.Stmt{Kind: ast.StmtCode, Data: &ast.CodeData{Text: text}}
	}
	get := &ast.FuncDef{
		Name:   GetAchronalField,
		Params: []ast.Param{{Name: "num"}},
		Body: &ast.Block{Stmts: []ast.Stmt{
			code("PERFORM GET_ACHRONAL_FIELD num;"),
			{Kind: ast.StmtReturn, Data: &ast.ReturnData{Value: ast.NewVarRef("perf_ret", sp)}},
		}},
		Nontrivial: true,
	}
	set := &ast.FuncDef{
		Name:   SetAchronalField,
		Params: []ast.Param{{Name: "num"}, {Name: "value"}},
		Body: &ast.Block{Stmts: []ast.Stmt{
			code("target = num; PERFORM SET_ACHRONAL_FIELD value;"),
		}},
		Nontrivial: true,
	}
	return []*ast.FuncDef{get, set}
}
