package lexer

import (
	"strings"

	"golang.org/x/text/unicode/norm"

	"redux/internal/diag"
	"redux/internal/token"
)

// scanString reads a "..." or '...' literal and decodes its escapes
// (\n \t \r \0 \\ \" \' \xNN). Token.Text is the decoded NFC payload.
func (lx *Lexer) scanString(quote byte) token.Token {
	start := lx.cursor.Mark()
	lx.cursor.Bump()
	var sb strings.Builder
	for !lx.cursor.EOF() {
		b := lx.cursor.Peek()
		switch b {
		case quote:
			lx.cursor.Bump()
			sp := lx.cursor.SpanFrom(start)
			return token.Token{Kind: token.StringLit, Span: sp, Text: norm.NFC.String(sb.String())}
		case '\n':
			sp := lx.cursor.SpanFrom(start)
			lx.errLex(diag.LexUnterminatedString, sp, "newline in string literal")
			return token.Token{Kind: token.Invalid, Span: sp, Text: lx.text(sp)}
		case '\\':
			lx.scanEscape(&sb)
		default:
			sb.WriteByte(lx.cursor.Bump())
		}
	}
	sp := lx.cursor.SpanFrom(start)
	lx.errLex(diag.LexUnterminatedString, sp, "unterminated string literal")
	return token.Token{Kind: token.Invalid, Span: sp, Text: lx.text(sp)}
}

func (lx *Lexer) scanEscape(sb *strings.Builder) {
	start := lx.cursor.Mark()
	lx.cursor.Bump() // '\'
	b := lx.cursor.Bump()
	switch b {
	case 'n':
		sb.WriteByte('\n')
	case 't':
		sb.WriteByte('\t')
	case 'r':
		sb.WriteByte('\r')
	case '0':
		sb.WriteByte(0)
	case '\\', '"', '\'':
		sb.WriteByte(b)
	case 'x':
		hi, lo := lx.cursor.Peek(), byte(0)
		if isHex(hi) {
			lx.cursor.Bump()
			lo = lx.cursor.Peek()
		}
		if !isHex(hi) || !isHex(lo) {
			lx.errLex(diag.LexBadEscape, lx.cursor.SpanFrom(start), `\x expects two hex digits`)
			return
		}
		lx.cursor.Bump()
		sb.WriteByte(hexVal(hi)<<4 | hexVal(lo))
	default:
		lx.errLex(diag.LexBadEscape, lx.cursor.SpanFrom(start), "unknown escape sequence")
	}
}

// scanCode reads a `...` passthrough literal. It may span lines and has no escapes.
func (lx *Lexer) scanCode() token.Token {
	start := lx.cursor.Mark()
	lx.cursor.Bump()
	body := lx.cursor.Off
	for !lx.cursor.EOF() {
		if lx.cursor.Peek() == '`' {
			text := string(lx.file.Content[body:lx.cursor.Off])
			lx.cursor.Bump()
			return token.Token{Kind: token.CodeLit, Span: lx.cursor.SpanFrom(start), Text: text}
		}
		lx.cursor.Bump()
	}
	sp := lx.cursor.SpanFrom(start)
	lx.errLex(diag.LexUnterminatedCode, sp, "unterminated code literal")
	return token.Token{Kind: token.Invalid, Span: sp, Text: lx.text(sp)}
}
