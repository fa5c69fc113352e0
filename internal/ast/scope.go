package ast

import (
	"redux/internal/intrinsics"
	"redux/internal/types"
)

// Stack is a lexical scope stack: one map per open block, innermost last.
// Every pass keeps its own Stack with its own payload type.
type Stack[T any] struct {
	frames []map[string]T
}

// NewStack returns a stack with a single (global) frame.
func NewStack[T any]() *Stack[T] {
	s := &Stack[T]{}
	s.Push()
	return s
}

func (s *Stack[T]) Push() {
	s.frames = append(s.frames, make(map[string]T))
}

// Pop drops the innermost frame. The global frame is never popped.
func (s *Stack[T]) Pop() {
	if len(s.frames) <= 1 {
		panic("ast: scope stack underflow")
	}
	s.frames = s.frames[:len(s.frames)-1]
}

func (s *Stack[T]) Depth() int { return len(s.frames) }

// Define binds name in the innermost frame.
func (s *Stack[T]) Define(name string, v T) {
	s.frames[len(s.frames)-1][name] = v
}

// Lookup searches frames from innermost to outermost.
func (s *Stack[T]) Lookup(name string) (T, bool) {
	for i := len(s.frames) - 1; i >= 0; i-- {
		if v, ok := s.frames[i][name]; ok {
			return v, true
		}
	}
	var zero T
	return zero, false
}

// InCurrent reports whether name is bound in the innermost frame.
func (s *Stack[T]) InCurrent(name string) bool {
	_, ok := s.frames[len(s.frames)-1][name]
	return ok
}

// Rebind replaces the binding of name in the frame that defines it.
func (s *Stack[T]) Rebind(name string, v T) bool {
	for i := len(s.frames) - 1; i >= 0; i-- {
		if _, ok := s.frames[i][name]; ok {
			s.frames[i][name] = v
			return true
		}
	}
	return false
}

// Snapshot flattens all visible frames into a new single-frame stack. Later
// bindings in s are not visible through the snapshot.
func (s *Stack[T]) Snapshot() *Stack[T] {
	flat := make(map[string]T)
	for _, f := range s.frames {
		for k, v := range f {
			flat[k] = v
		}
	}
	return &Stack[T]{frames: []map[string]T{flat}}
}

// EntryKind classifies what a name is bound to.
type EntryKind uint8

const (
	EntryVar EntryKind = iota
	EntryFunc
	EntryBitfield
	EntryEnum
	EntryIntrinsic
)

// Entry is the type annotator's view of a name. Immutable entries never
// accept reassignment; for strings and enum constants Value holds the
// substitution expression.
type Entry struct {
	Kind      EntryKind
	Type      types.Type
	Immutable bool
	Value     *Expr

	Func      *FuncDef
	Bitfield  *BitfieldDef
	Enum      *EnumDef
	Intrinsic *intrinsics.Intrinsic
}

// Scope is the annotator's scope stack.
type Scope = Stack[*Entry]
