package ast

// BinaryOp is the flattened set of binary operators. Capability predicates
// replace any notion of operator class hierarchy.
type BinaryOp uint8

const (
	OpAdd BinaryOp = iota
	OpSub
	OpMul
	OpDiv
	OpMod
	OpPow
	OpBitOr
	OpBitXor
	OpBitAnd
	OpShl
	OpShr
	OpLt
	OpGt
	OpLe
	OpGe
	OpEq
	OpNe
	OpAnd
	OpOr
)

var binarySymbols = [...]string{
	OpAdd:    "+",
	OpSub:    "-",
	OpMul:    "*",
	OpDiv:    "/",
	OpMod:    "%",
	OpPow:    "**",
	OpBitOr:  "|",
	OpBitXor: "^",
	OpBitAnd: "&",
	OpShl:    "<<",
	OpShr:    ">>",
	OpLt:     "<",
	OpGt:     ">",
	OpLe:     "<=",
	OpGe:     ">=",
	OpEq:     "==",
	OpNe:     "!=",
	OpAnd:    "&&",
	OpOr:     "||",
}

// Symbol is the operator as written in the emitted code.
func (op BinaryOp) Symbol() string {
	if int(op) < len(binarySymbols) {
		return binarySymbols[op]
	}
	return "?"
}

func (op BinaryOp) String() string { return op.Symbol() }

// IsNumericOp: arithmetic producing the common arithmetic type.
func (op BinaryOp) IsNumericOp() bool {
	return op <= OpPow
}

// IsBitwiseOp: integer-only bit manipulation.
func (op BinaryOp) IsBitwiseOp() bool {
	return op >= OpBitOr && op <= OpShr
}

// IsRelationalOp covers comparisons and the logical connectives; all of
// them yield an int truth value.
func (op BinaryOp) IsRelationalOp() bool {
	return op >= OpLt && op <= OpOr
}

// IsEqualityOp: == and !=, which also accept equal non-numeric operands.
func (op BinaryOp) IsEqualityOp() bool {
	return op == OpEq || op == OpNe
}

// IsLogicalOp: and / or.
func (op BinaryOp) IsLogicalOp() bool {
	return op == OpAnd || op == OpOr
}

type UnaryOp uint8

const (
	OpNot UnaryOp = iota
	OpNeg
	OpBitNot
)

func (op UnaryOp) Symbol() string {
	switch op {
	case OpNot:
		return "!"
	case OpNeg:
		return "-"
	case OpBitNot:
		return "~"
	default:
		return "?"
	}
}

func (op UnaryOp) String() string { return op.Symbol() }
