package inline

import (
	"redux/internal/ast"
	"redux/internal/types"
)

// Strings removes every string-typed assignment and replaces references to
// string variables with the recorded literal. A declaring assignment binds
// in the current scope; a plain assignment (only a temporary receiving a
// string return value) rebinds where the name was declared. A non-string
// declaration of the same name hides the string.
func Strings(prog *ast.Block) {
	s := constInliner{scope: ast.NewStack[*ast.Expr]()}
	s.onAssign = func(d *ast.AssignData) bool {
		if d.Value.Type().Kind != types.KindString {
			if d.Declare {
				s.scope.Define(d.Name, nil)
			}
			return true
		}
		if d.Declare || !s.scope.Rebind(d.Name, d.Value) {
			s.scope.Define(d.Name, d.Value)
		}
		return false
	}
	s.block(prog)
}
