package inline

import "redux/internal/ast"

// renameCaptures keeps a hoisted body from capturing names it does not own.
// Once the body sits at the call site, a declaration in it (a parameter
// override or a local) shadows every same-named reference in its subtree,
// including references that the annotator resolved to a binding outside the
// body: a global read by a nested instance, or an argument of the caller.
// Each such declaration and all references to it get a fresh name;
// uncontested declarations keep theirs.
func renameCaptures(ctx *Context, body *ast.Block) {
	declared := make(map[*ast.Entry]bool)
	byName := make(map[string][]*ast.Entry)
	var order []string // first appearance, keeps renaming deterministic
	note := func(name string, e *ast.Entry) {
		if e == nil {
			return
		}
		if _, ok := byName[name]; !ok {
			order = append(order, name)
		}
		for _, seen := range byName[name] {
			if seen == e {
				return
			}
		}
		byName[name] = append(byName[name], e)
	}
	ast.WalkBlock(body, func(s *ast.Stmt) bool {
		if d, ok := s.Data.(*ast.AssignData); ok {
			if d.Declare && d.Entry != nil {
				declared[d.Entry] = true
			}
			note(d.Name, d.Entry)
		}
		return true
	}, func(e *ast.Expr) bool {
		if d, ok := e.Data.(*ast.VarRefData); ok {
			note(d.Name, d.Entry)
		}
		return true
	})

	renames := make(map[*ast.Entry]string)
	for _, name := range order {
		entries := byName[name]
		foreign := false
		for _, e := range entries {
			if !declared[e] {
				foreign = true
				break
			}
		}
		if !foreign {
			continue
		}
		for _, e := range entries {
			if declared[e] {
				renames[e] = ctx.Rename(name)
			}
		}
	}
	if len(renames) == 0 {
		return
	}
	ast.WalkBlock(body, func(s *ast.Stmt) bool {
		if d, ok := s.Data.(*ast.AssignData); ok {
			if to, ok := renames[d.Entry]; ok {
				d.Name = to
			}
		}
		return true
	}, func(e *ast.Expr) bool {
		if d, ok := e.Data.(*ast.VarRefData); ok {
			if to, ok := renames[d.Entry]; ok {
				d.Name = to
			}
		}
		return true
	})
}
