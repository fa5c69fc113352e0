package sema

import (
	"testing"

	"redux/internal/ast"
	"redux/internal/builtins"
)

func declareFlags(t *testing.T, src string) []bool {
	t.Helper()
	prog := parseProgram(t, src)
	Declare(prog, builtins.Default())
	var flags []bool
	ast.WalkBlock(prog, func(s *ast.Stmt) bool {
		if d, ok := s.Data.(*ast.AssignData); ok {
			flags = append(flags, d.Declare)
		}
		return true
	}, nil)
	return flags
}

func TestDeclareFlags(t *testing.T) {
	tests := []struct {
		src  string
		want []bool
	}{
		{"a = 1 a = 2", []bool{true, false}},
		{"a = 1 if 1 a = 2 b = 1 end b = 2", []bool{true, false, true, true}},
		{"perf_ret = 1", []bool{false}},
		{"def f(a) a = a + 1 b = a return b end", []bool{false, true}},
		{"x = 1 def f() x = 2 end", []bool{true, false}},
		{"for i = 0; i < 3; i = i + 1 j = i end j = 1", []bool{true, false, true, true}},
		{"enum E a b end a = 1", []bool{false}},
	}
	for _, tt := range tests {
		t.Run(tt.src, func(t *testing.T) {
			got := declareFlags(t, tt.src)
			if len(got) != len(tt.want) {
				t.Fatalf("expected %d assignments, got %d", len(tt.want), len(got))
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Fatalf("assignment %d: expected declare=%v, got %v", i, tt.want[i], got[i])
				}
			}
		})
	}
}

func TestDeclareRejectsRequire(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatalf("expected panic on unresolved require")
		}
	}()
	Declare(parseProgram(t, `require "x"`), builtins.Default())
}
