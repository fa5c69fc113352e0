package intrinsics

import (
	"errors"
	"testing"

	"redux/internal/types"
)

func mustLookup(t *testing.T, name string) *Intrinsic {
	t.Helper()
	in, ok := Lookup(name)
	if !ok {
		t.Fatalf("intrinsic %s not registered", name)
	}
	return in
}

func TestEmitTemplates(t *testing.T) {
	cases := []struct {
		name string
		args []string
		want string
	}{
		{"say", []string{"1", "2"}, "say 1, 2"},
		{"sqrt", []string{"2"}, "(|/2)"},
		{"int", []string{"x"}, "(trunc x)"},
		{"rad2rot", []string{"x"}, "(radtorot x)"},
		{"object", []string{"0"}, "(to_object 0)"},
		{"atan2", []string{"a", "b"}, "(a atan2 b)"},
		{"max", []string{"a", "b"}, "(a|>b)"},
		{"min", []string{"a", "b"}, "(a<|b)"},
		{"dist_sq", []string{"a", "b"}, "(a<=>b)"},
		{"hdist_sq", []string{"a", "b"}, "(a<_>b)"},
		{"vdist_sq", []string{"a", "b"}, "(a<^>b)"},
		{"set_say_target", []string{`"v"`}, `(say_to_var "v")`},
		{"say_config_var", []string{`"v"`}, `(say_from_config "v")`},
	}
	for _, tc := range cases {
		if got := mustLookup(t, tc.name).Emit(tc.args); got != tc.want {
			t.Fatalf("%s: got %q, want %q", tc.name, got, tc.want)
		}
	}
}

func TestTypeRules(t *testing.T) {
	cases := []struct {
		name string
		args []types.Type
		want types.Type
	}{
		{"say", []types.Type{types.Int, types.String}, types.Void},
		{"sqrt", []types.Type{types.Int}, types.Float},
		{"int", []types.Type{types.Float}, types.Int},
		{"max", []types.Type{types.Int, types.Int}, types.Int},
		{"max", []types.Type{types.Int, types.Float}, types.Float},
		{"object", []types.Type{types.Int}, types.Object},
		{"dist_sq", []types.Type{types.Object, types.Object}, types.Float},
	}
	for _, tc := range cases {
		got, err := mustLookup(t, tc.name).Check(tc.args)
		if err != nil {
			t.Fatalf("%s: unexpected error %v", tc.name, err)
		}
		if got != tc.want {
			t.Fatalf("%s: got %s, want %s", tc.name, got, tc.want)
		}
	}
}

func TestTypeRuleViolations(t *testing.T) {
	cases := []struct {
		name string
		args []types.Type
	}{
		{"say", nil},
		{"say", []types.Type{types.Void}},
		{"sqrt", []types.Type{types.String}},
		{"sqrt", []types.Type{types.Int, types.Int}},
		{"object", []types.Type{types.Float}},
		{"set_say_target", []types.Type{types.Int}},
		{"dist_sq", []types.Type{types.Object, types.Int}},
		{"atan2", []types.Type{types.Int}},
	}
	for _, tc := range cases {
		_, err := mustLookup(t, tc.name).Check(tc.args)
		var ae *ArgError
		if !errors.As(err, &ae) {
			t.Fatalf("%s%v: expected ArgError, got %v", tc.name, tc.args, err)
		}
	}
}

func TestNamesSorted(t *testing.T) {
	names := Names()
	for i := 1; i < len(names); i++ {
		if names[i-1] >= names[i] {
			t.Fatalf("names not sorted: %v", names)
		}
	}
}
