package builtins

import (
	"slices"
	"testing"

	"redux/internal/ast"
	"redux/internal/types"
)

func TestWithGlobalsDoesNotTouchDefault(t *testing.T) {
	h := Default().WithGlobals(map[string]types.Type{"zeta": types.Float, "alpha": types.Int, "self": types.Int})
	if !h.Lookup("alpha") || !h.Lookup("zeta") {
		t.Fatalf("extra globals missing")
	}
	if Default().Lookup("alpha") {
		t.Fatalf("default host must not see extra globals")
	}
	n := len(h.Globals)
	if h.Globals[n-2].Name != "alpha" || h.Globals[n-1].Name != "zeta" {
		t.Fatalf("extra globals must be appended in name order")
	}
	for _, g := range h.Globals {
		if g.Name == "self" && g.Type != types.Object {
			t.Fatalf("existing global must keep its type")
		}
	}
}

func TestNamesIncludeIntrinsicsAndAchronal(t *testing.T) {
	names := Default().Names()
	for _, want := range []string{"perf_ret", "say", "sqrt", GetAchronalField, SetAchronalField} {
		if !slices.Contains(names, want) {
			t.Fatalf("missing predeclared name %s", want)
		}
	}
}

func TestAttributes(t *testing.T) {
	if !IsAttribute(ast.ExprDotted, "hp") || IsAttribute(ast.ExprDotted, "age") {
		t.Fatalf("dotted set broken")
	}
	if !IsAttribute(ast.ExprChronal, "age") || IsAttribute(ast.ExprChronal, "hp") {
		t.Fatalf("chronal set broken")
	}
	if !IsAttribute(ast.ExprClass, "cost") || IsAttribute(ast.ExprClass, "timeline") {
		t.Fatalf("class set broken")
	}
	if !IsQueryKind("BESTMOVE") || IsQueryKind("MIN") || !IsQueryOp("COUNT") {
		t.Fatalf("query vocabulary broken")
	}
}

func TestAchronalFuncsAreFresh(t *testing.T) {
	a, b := AchronalFuncs(), AchronalFuncs()
	if a[0] == b[0] || a[0].Body == b[0].Body {
		t.Fatalf("each call must build new definitions")
	}
	if _, ok := a[0].Body.TrailingReturn(); !ok {
		t.Fatalf("getter must return perf_ret")
	}
	if _, ok := a[1].Body.TrailingReturn(); ok {
		t.Fatalf("setter has no value")
	}
}
