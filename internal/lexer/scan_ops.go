package lexer

import (
	"redux/internal/diag"
	"redux/internal/token"
)

// scanOperatorOrPunct matches the longest operator at the cursor.
func (lx *Lexer) scanOperatorOrPunct() token.Token {
	start := lx.cursor.Mark()
	kind := token.Invalid

	switch {
	case lx.try2('*', '*'):
		kind = token.StarStar
	case lx.try2('<', '<'):
		kind = token.Shl
	case lx.try2('>', '>'):
		kind = token.Shr
	case lx.try2('<', '='):
		kind = token.LtEq
	case lx.try2('>', '='):
		kind = token.GtEq
	case lx.try2('=', '='):
		kind = token.EqEq
	case lx.try2('!', '='):
		kind = token.BangEq
	case lx.try2('-', '>'):
		kind = token.Arrow
	case lx.try2(':', ':'):
		kind = token.ColonColon
	default:
		b := lx.cursor.Bump()
		kind = singleByteKinds[b]
	}

	sp := lx.cursor.SpanFrom(start)
	if kind == token.Invalid {
		r, _ := lx.runeAt(start)
		if r >= utf8RuneSelf {
			// consume the rest of a multibyte rune so the next token starts cleanly
			lx.cursor.Reset(start)
			lx.bumpRune()
			sp = lx.cursor.SpanFrom(start)
		}
		lx.errLex(diag.LexUnknownChar, sp, "unknown character "+quoteRune(r))
	}
	return token.Token{Kind: kind, Span: sp, Text: lx.text(sp)}
}

var singleByteKinds = [256]token.Kind{
	'+': token.Plus,
	'-': token.Minus,
	'*': token.Star,
	'/': token.Slash,
	'%': token.Percent,
	'|': token.Pipe,
	'^': token.Caret,
	'&': token.Amp,
	'~': token.Tilde,
	'<': token.Lt,
	'>': token.Gt,
	'=': token.Assign,
	',': token.Comma,
	';': token.Semicolon,
	':': token.Colon,
	'.': token.Dot,
	'(': token.LParen,
	')': token.RParen,
	'[': token.LBracket,
	']': token.RBracket,
}

func (lx *Lexer) try2(a, b byte) bool {
	b0, b1, ok := lx.cursor.Peek2()
	if !ok || b0 != a || b1 != b {
		return false
	}
	lx.cursor.Bump()
	lx.cursor.Bump()
	return true
}
