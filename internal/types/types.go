package types

import "fmt"

// Kind enumerates all supported kinds of types.
type Kind uint8

const (
	KindInvalid Kind = iota
	KindInt
	KindFloat
	KindString
	KindObject
	KindBitfield
	KindEnum
	// KindVoid is the "type" of a call that produces no value. It is never a
	// valid operand, only a marker that annotation happened.
	KindVoid
)

func (k Kind) String() string {
	switch k {
	case KindInvalid:
		return "invalid"
	case KindInt:
		return "int"
	case KindFloat:
		return "float"
	case KindString:
		return "string"
	case KindObject:
		return "object"
	case KindBitfield:
		return "bitfield"
	case KindEnum:
		return "enum"
	case KindVoid:
		return "void"
	default:
		return fmt.Sprintf("Kind(%d)", k)
	}
}

// Type is a comparable value. Bitfield and enum types are nominal: two of
// them are equal only when they point to the same definition.
type Type struct {
	Kind     Kind
	Bitfield *Bitfield
	Enum     *Enum
}

var (
	Invalid = Type{}
	Int     = Type{Kind: KindInt}
	Float   = Type{Kind: KindFloat}
	String  = Type{Kind: KindString}
	Object  = Type{Kind: KindObject}
	Void    = Type{Kind: KindVoid}
)

// BitfieldOf returns the nominal type of values built by the bitfield constructor.
func BitfieldOf(b *Bitfield) Type {
	return Type{Kind: KindBitfield, Bitfield: b}
}

// EnumOf returns the type of a reference to the enum name itself.
func EnumOf(e *Enum) Type {
	return Type{Kind: KindEnum, Enum: e}
}

func (t Type) String() string {
	switch t.Kind {
	case KindBitfield:
		if t.Bitfield != nil {
			return "bitfield " + t.Bitfield.Name
		}
	case KindEnum:
		if t.Enum != nil {
			return "enum " + t.Enum.Name
		}
	}
	return t.Kind.String()
}

// IsNumeric reports int or float.
func (t Type) IsNumeric() bool {
	return t.Kind == KindInt || t.Kind == KindFloat
}

// IsValue reports whether the type may be stored in a variable.
func (t Type) IsValue() bool {
	switch t.Kind {
	case KindInt, KindFloat, KindString, KindObject, KindBitfield:
		return true
	default:
		return false
	}
}

// CommonArithmetic returns int when both operands are int, float otherwise.
// Callers must check IsNumeric first.
func CommonArithmetic(a, b Type) Type {
	if a.Kind == KindInt && b.Kind == KindInt {
		return Int
	}
	return Float
}

// Assignable reports whether a value of type src may be stored into a
// binding of type dst.
//
//	numeric  <- numeric
//	bitfield <- int, int <- bitfield, bitfield B <- bitfield B
//	object   <- object
//	string   <- string
func Assignable(dst, src Type) bool {
	switch {
	case dst.IsNumeric() && src.IsNumeric():
		return true
	case dst.Kind == KindBitfield && src.Kind == KindInt,
		dst.Kind == KindInt && src.Kind == KindBitfield:
		return true
	case dst.Kind == KindBitfield && src.Kind == KindBitfield:
		return dst.Bitfield == src.Bitfield
	case dst.Kind == KindObject, dst.Kind == KindString:
		return src.Kind == dst.Kind
	default:
		return false
	}
}

// StorageName is the type prefix used when a variable is declared in the
// emitted code. Bitfields are plain ints at runtime.
func (t Type) StorageName() (string, bool) {
	switch t.Kind {
	case KindInt, KindBitfield:
		return "int", true
	case KindFloat:
		return "float", true
	case KindObject:
		return "object", true
	default:
		return "", false
	}
}
