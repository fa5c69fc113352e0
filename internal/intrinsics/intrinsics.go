// Package intrinsics holds the closed table of host operations that calls
// may resolve to. Intrinsics are never inlined: each one validates its own
// argument types and renders itself from already emitted arguments.
package intrinsics

import (
	"fmt"
	"sort"
	"strings"

	"redux/internal/types"
)

// Intrinsic describes one built-in operation.
type Intrinsic struct {
	Name string
	// Check validates argument types and returns the result type, or
	// types.Void when the call produces no value.
	Check func(args []types.Type) (types.Type, error)
	// Emit renders the call from its emitted arguments.
	Emit func(args []string) string
}

// ArgError is a call that violates the intrinsic's signature.
type ArgError struct {
	Name string
	Msg  string
}

func (e *ArgError) Error() string {
	return fmt.Sprintf("%s: %s", e.Name, e.Msg)
}

var table = map[string]*Intrinsic{}

func register(in *Intrinsic) {
	if _, dup := table[in.Name]; dup {
		panic("intrinsics: duplicate " + in.Name)
	}
	table[in.Name] = in
}

// Lookup finds an intrinsic by name.
func Lookup(name string) (*Intrinsic, bool) {
	in, ok := table[name]
	return in, ok
}

// Names lists all intrinsic names in sorted order.
func Names() []string {
	out := make([]string, 0, len(table))
	for name := range table {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}

func init() {
	register(&Intrinsic{
		Name: "say",
		Check: func(args []types.Type) (types.Type, error) {
			if len(args) == 0 {
				return types.Invalid, &ArgError{Name: "say", Msg: "expected at least one argument"}
			}
			for i, a := range args {
				if !a.IsValue() {
					return types.Invalid, &ArgError{Name: "say", Msg: fmt.Sprintf("argument %d has type %s", i+1, a)}
				}
			}
			return types.Void, nil
		},
		Emit: func(args []string) string {
			return "say " + strings.Join(args, ", ")
		},
	})
	register(stringSink("set_say_target", "say_to_var"))
	register(stringSink("say_config_var", "say_from_config"))

	register(unaryNumeric("sqrt", "|/", types.Float))
	register(unaryNumeric("int", "trunc", types.Int))
	register(unaryNumeric("float", "to_float", types.Float))
	register(unaryNumeric("abs", "abs", types.Float))
	register(unaryNumeric("sin", "sin", types.Float))
	register(unaryNumeric("cos", "cos", types.Float))
	register(unaryNumeric("tan", "tan", types.Float))
	register(unaryNumeric("log", "log", types.Float))
	register(unaryNumeric("asin", "asin", types.Float))
	register(unaryNumeric("acos", "acos", types.Float))
	register(unaryNumeric("rad2rot", "radtorot", types.Int))
	register(unaryNumeric("rot2rad", "rottorad", types.Float))

	register(&Intrinsic{
		Name: "object",
		Check: func(args []types.Type) (types.Type, error) {
			if err := arity("object", args, 1); err != nil {
				return types.Invalid, err
			}
			if args[0].Kind != types.KindInt {
				return types.Invalid, &ArgError{Name: "object", Msg: "expected int argument, got " + args[0].String()}
			}
			return types.Object, nil
		},
		Emit: func(args []string) string { return "(to_object " + args[0] + ")" },
	})

	register(binaryNumeric("atan2", " atan2 ", func(types.Type, types.Type) types.Type { return types.Float }))
	register(binaryNumeric("max", "|>", types.CommonArithmetic))
	register(binaryNumeric("min", "<|", types.CommonArithmetic))

	register(objectPair("dist_sq", "<=>"))
	register(objectPair("hdist_sq", "<_>"))
	register(objectPair("vdist_sq", "<^>"))
}

func arity(name string, args []types.Type, n int) error {
	if len(args) != n {
		return &ArgError{Name: name, Msg: fmt.Sprintf("expected %d arguments, got %d", n, len(args))}
	}
	return nil
}

func stringSink(name, op string) *Intrinsic {
	return &Intrinsic{
		Name: name,
		Check: func(args []types.Type) (types.Type, error) {
			if err := arity(name, args, 1); err != nil {
				return types.Invalid, err
			}
			if args[0].Kind != types.KindString {
				return types.Invalid, &ArgError{Name: name, Msg: "expected string argument, got " + args[0].String()}
			}
			return types.Void, nil
		},
		Emit: func(args []string) string { return "(" + op + " " + args[0] + ")" },
	}
}

func unaryNumeric(name, op string, result types.Type) *Intrinsic {
	sep := ""
	if last := op[len(op)-1]; last >= 'a' && last <= 'z' {
		sep = " "
	}
	return &Intrinsic{
		Name: name,
		Check: func(args []types.Type) (types.Type, error) {
			if err := arity(name, args, 1); err != nil {
				return types.Invalid, err
			}
			if !args[0].IsNumeric() {
				return types.Invalid, &ArgError{Name: name, Msg: "expected numeric argument, got " + args[0].String()}
			}
			return result, nil
		},
		Emit: func(args []string) string { return "(" + op + sep + args[0] + ")" },
	}
}

func binaryNumeric(name, op string, result func(a, b types.Type) types.Type) *Intrinsic {
	return &Intrinsic{
		Name: name,
		Check: func(args []types.Type) (types.Type, error) {
			if err := arity(name, args, 2); err != nil {
				return types.Invalid, err
			}
			if !args[0].IsNumeric() || !args[1].IsNumeric() {
				return types.Invalid, &ArgError{Name: name, Msg: fmt.Sprintf("expected numeric arguments, got %s and %s", args[0], args[1])}
			}
			return result(args[0], args[1]), nil
		},
		Emit: func(args []string) string { return "(" + args[0] + op + args[1] + ")" },
	}
}

func objectPair(name, op string) *Intrinsic {
	return &Intrinsic{
		Name: name,
		Check: func(args []types.Type) (types.Type, error) {
			if err := arity(name, args, 2); err != nil {
				return types.Invalid, err
			}
			if args[0].Kind != types.KindObject || args[1].Kind != types.KindObject {
				return types.Invalid, &ArgError{Name: name, Msg: fmt.Sprintf("expected object arguments, got %s and %s", args[0], args[1])}
			}
			return types.Float, nil
		},
		Emit: func(args []string) string { return "(" + args[0] + op + args[1] + ")" },
	}
}
