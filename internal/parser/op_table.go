package parser

import (
	"redux/internal/ast"
	"redux/internal/token"
)

// Таблица приоритетов для бинарных операторов
// Чем больше число, тем выше приоритет
const (
	precLogicalOr      = 1 // or
	precLogicalAnd     = 2 // and
	precNot            = 3 // not (prefix)
	precComparison     = 4 // < <= > >= == != (non-assoc)
	precBitwiseOr      = 5 // |
	precBitwiseXor     = 6 // ^
	precBitwiseAnd     = 7 // &
	precShift          = 8 // << >>
	precAdditive       = 9 // + -
	precMultiplicative = 10
)

// binaryPrec returns the precedence of a binary operator token, or -1.
// `**` is handled separately: it binds tighter than the unary prefixes.
func binaryPrec(kind token.Kind) int {
	switch kind {
	case token.KwOr:
		return precLogicalOr
	case token.KwAnd:
		return precLogicalAnd
	case token.Lt, token.LtEq, token.Gt, token.GtEq, token.EqEq, token.BangEq:
		return precComparison
	case token.Pipe:
		return precBitwiseOr
	case token.Caret:
		return precBitwiseXor
	case token.Amp:
		return precBitwiseAnd
	case token.Shl, token.Shr:
		return precShift
	case token.Plus, token.Minus:
		return precAdditive
	case token.Star, token.Slash, token.Percent:
		return precMultiplicative
	default:
		return -1
	}
}

var binaryOps = map[token.Kind]ast.BinaryOp{
	token.Plus:     ast.OpAdd,
	token.Minus:    ast.OpSub,
	token.Star:     ast.OpMul,
	token.Slash:    ast.OpDiv,
	token.Percent:  ast.OpMod,
	token.StarStar: ast.OpPow,
	token.Pipe:     ast.OpBitOr,
	token.Caret:    ast.OpBitXor,
	token.Amp:      ast.OpBitAnd,
	token.Shl:      ast.OpShl,
	token.Shr:      ast.OpShr,
	token.Lt:       ast.OpLt,
	token.Gt:       ast.OpGt,
	token.LtEq:     ast.OpLe,
	token.GtEq:     ast.OpGe,
	token.EqEq:     ast.OpEq,
	token.BangEq:   ast.OpNe,
	token.KwAnd:    ast.OpAnd,
	token.KwOr:     ast.OpOr,
}

// tokenKindToBinaryOp преобразует токен в тип бинарного оператора
func tokenKindToBinaryOp(kind token.Kind) ast.BinaryOp {
	op, ok := binaryOps[kind]
	if !ok {
		panic("parser: no binary operator for token " + kind.String())
	}
	return op
}

var memberKinds = map[token.Kind]ast.ExprKind{
	token.Dot:        ast.ExprDotted,
	token.Arrow:      ast.ExprChronal,
	token.ColonColon: ast.ExprClass,
}
