package types

// FamilyMask describes broad categories of types an operator accepts.
type FamilyMask uint8

const (
	FamilyNone FamilyMask = 0
	FamilyInt  FamilyMask = 1 << iota
	FamilyFloat
	FamilyString
	FamilyObject
	FamilyBitfield
	FamilyEnum
)

const (
	FamilyNumeric = FamilyInt | FamilyFloat
	FamilyAny     = FamilyNumeric | FamilyString | FamilyObject | FamilyBitfield | FamilyEnum
)

// Family maps a type onto its operator family.
func (t Type) Family() FamilyMask {
	switch t.Kind {
	case KindInt:
		return FamilyInt
	case KindFloat:
		return FamilyFloat
	case KindString:
		return FamilyString
	case KindObject:
		return FamilyObject
	case KindBitfield:
		return FamilyBitfield
	case KindEnum:
		return FamilyEnum
	default:
		return FamilyNone
	}
}

// In reports whether t belongs to any family of mask.
func (t Type) In(mask FamilyMask) bool {
	return t.Family()&mask != 0
}

// BinaryResult describes how to derive the result type for an operator.
type BinaryResult uint8

const (
	BinaryResultUnknown BinaryResult = iota
	// BinaryResultNumeric: int if both operands are int, float otherwise.
	BinaryResultNumeric
	// BinaryResultInt: always int (truth values and bit patterns).
	BinaryResultInt
)

// Apply computes the result type for operands l and r.
func (r BinaryResult) Apply(l, rt Type) Type {
	switch r {
	case BinaryResultNumeric:
		return CommonArithmetic(l, rt)
	case BinaryResultInt:
		return Int
	default:
		return Invalid
	}
}
