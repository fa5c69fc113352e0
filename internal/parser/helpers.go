package parser

import (
	"redux/internal/diag"
	"redux/internal/source"
	"redux/internal/token"
)

// advance: съедает следующий токен и обновляет lastSpan
func (p *Parser) advance() token.Token {
	tok := p.lx.Next()
	if tok.Kind != token.EOF {
		p.lastSpan = tok.Span
	}
	return tok
}

// getDiagnosticSpan: лучший span для диагностики: на EOF указываем сразу
// за последним съеденным токеном.
func (p *Parser) getDiagnosticSpan() source.Span {
	peek := p.lx.Peek()
	if peek.Kind == token.EOF && p.lastSpan.End > 0 {
		return source.Span{File: p.lastSpan.File, Start: p.lastSpan.End, End: p.lastSpan.End}
	}
	return peek.Span
}

// expect: ожидаем конкретный токен. Если нет: репортим и возвращаем (invalid,false).
func (p *Parser) expect(k token.Kind, code diag.Code, msg string) (token.Token, bool) {
	if p.at(k) {
		return p.advance(), true
	}
	diagSpan := p.getDiagnosticSpan()
	p.report(code, diag.SevError, diagSpan, msg)
	return token.Token{Kind: token.Invalid, Span: diagSpan, Text: p.lx.Peek().Text}, false
}

// expectEnd closes a construct opened at open.
func (p *Parser) expectEnd(what string, open source.Span) (token.Token, bool) {
	if p.at(token.KwEnd) {
		return p.advance(), true
	}
	diagSpan := p.getDiagnosticSpan()
	p.report(diag.SynExpectEnd, diag.SevError, diagSpan, "expected 'end' to close "+what,
		diag.Note{Span: open, Msg: what + " starts here"})
	return token.Token{Kind: token.Invalid, Span: diagSpan}, false
}

// репортует ошибку и передает текущий спан
func (p *Parser) err(code diag.Code, msg string) bool {
	return p.report(code, diag.SevError, p.getDiagnosticSpan(), msg)
}

func (p *Parser) report(code diag.Code, sev diag.Severity, sp source.Span, msg string, notes ...diag.Note) bool {
	if sev == diag.SevError {
		enough := p.opts.Enough()
		p.opts.CurrentErrors++
		if enough {
			return false // достигли максимального количества ошибок
		}
	}
	if p.opts.Reporter == nil {
		return false
	}
	p.opts.Reporter.Report(code, sev, sp, msg, notes)
	return true
}

func describe(tok token.Token) string {
	switch tok.Kind {
	case token.EOF:
		return "end of file"
	case token.StringLit:
		return "string literal"
	case token.CodeLit:
		return "code literal"
	default:
		return "'" + tok.Text + "'"
	}
}
