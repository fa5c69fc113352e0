package token

import (
	"redux/internal/source"
)

// Token represents a single source token with its location.
type Token struct {
	Kind Kind
	Span source.Span
	Text string
}

// IsLiteral reports whether the token is a number, string or code literal.
func (t Token) IsLiteral() bool {
	switch t.Kind {
	case IntLit, FloatLit, StringLit, CodeLit:
		return true
	default:
		return false
	}
}

// IsKeyword reports whether the token is a language keyword.
func (t Token) IsKeyword() bool {
	return t.Kind >= KwIf && t.Kind <= KwWhere
}

// IsPunctOrOp reports whether the token is a punctuation or operator.
func (t Token) IsPunctOrOp() bool {
	return t.Kind >= Plus && t.Kind <= RBracket
}

// StartsStatement reports tokens that may begin a statement. The parser uses
// it to resynchronize after an error.
func (t Token) StartsStatement() bool {
	switch t.Kind {
	case Ident, CodeLit, KwIf, KwWhile, KwFor, KwDef, KwBitfield, KwEnum, KwRequire, KwBreak, KwReturn:
		return true
	default:
		return false
	}
}
