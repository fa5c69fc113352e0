package parser

import (
	"strconv"

	"redux/internal/ast"
	"redux/internal/diag"
	"redux/internal/token"
)

// parseExpr - главная точка входа для парсинга выражений
func (p *Parser) parseExpr() (*ast.Expr, bool) {
	return p.parseBinaryExpr(precLogicalOr)
}

// parseBinaryExpr реализует precedence climbing; minPrec - минимальный
// приоритет для текущего уровня
func (p *Parser) parseBinaryExpr(minPrec int) (*ast.Expr, bool) {
	left, ok := p.parseNotExpr()
	if !ok {
		return nil, false
	}
	for {
		tok := p.lx.Peek()
		prec := binaryPrec(tok.Kind)
		if prec < minPrec {
			break
		}
		p.advance()
		right, ok := p.parseBinaryExpr(prec + 1)
		if !ok {
			return nil, false
		}
		left = ast.NewBinary(tokenKindToBinaryOp(tok.Kind), left, right)
		if prec == precComparison && binaryPrec(p.lx.Peek().Kind) == precComparison {
			p.err(diag.SynUnexpectedToken, "comparison operators cannot be chained")
			return nil, false
		}
	}
	return left, true
}

// parseNotExpr: `not` binds looser than comparisons and tighter than `and`.
func (p *Parser) parseNotExpr() (*ast.Expr, bool) {
	if !p.at(token.KwNot) {
		return p.parseUnaryExpr()
	}
	notTok := p.advance()
	operand, ok := p.parseBinaryExpr(precComparison)
	if !ok {
		return nil, false
	}
	return ast.NewUnary(ast.OpNot, operand, notTok.Span), true
}

// parseUnaryExpr обрабатывает префиксы - и ~
func (p *Parser) parseUnaryExpr() (*ast.Expr, bool) {
	var op ast.UnaryOp
	switch {
	case p.at(token.Minus):
		op = ast.OpNeg
	case p.at(token.Tilde):
		op = ast.OpBitNot
	default:
		return p.parsePowerExpr()
	}
	opTok := p.advance()
	operand, ok := p.parseUnaryExpr()
	if !ok {
		return nil, false
	}
	return ast.NewUnary(op, operand, opTok.Span), true
}

// parsePowerExpr: a ** b, right-associative, exponent may carry a prefix.
func (p *Parser) parsePowerExpr() (*ast.Expr, bool) {
	base, ok := p.parsePostfixExpr()
	if !ok {
		return nil, false
	}
	if !p.at(token.StarStar) {
		return base, true
	}
	p.advance()
	exp, ok := p.parseUnaryExpr()
	if !ok {
		return nil, false
	}
	return ast.NewBinary(ast.OpPow, base, exp), true
}

// parsePostfixExpr обрабатывает доступ к членам: . -> ::
func (p *Parser) parsePostfixExpr() (*ast.Expr, bool) {
	expr, ok := p.parsePrimaryExpr()
	if !ok {
		return nil, false
	}
	for {
		kind, isMember := memberKinds[p.lx.Peek().Kind]
		if !isMember {
			return expr, true
		}
		opTok := p.advance()
		memberTok, ok := p.expect(token.Ident, diag.SynExpectIdentifier, "expected member name after '"+opTok.Text+"'")
		if !ok {
			return nil, false
		}
		expr = ast.NewMember(kind, expr, memberTok.Text, memberTok.Span)
	}
}

func (p *Parser) parsePrimaryExpr() (*ast.Expr, bool) {
	tok := p.lx.Peek()
	switch tok.Kind {
	case token.IntLit:
		p.advance()
		v, err := parseInt(tok.Text)
		if err != nil {
			p.report(diag.SynExpectNumber, diag.SevError, tok.Span, "integer literal out of range")
			return nil, false
		}
		return ast.NewInt(v, tok.Span), true
	case token.FloatLit:
		p.advance()
		v, err := strconv.ParseFloat(tok.Text, 64)
		if err != nil {
			p.report(diag.SynExpectNumber, diag.SevError, tok.Span, "float literal out of range")
			return nil, false
		}
		return ast.NewFloat(v, tok.Span), true
	case token.StringLit:
		p.advance()
		return ast.NewString(tok.Text, tok.Span), true
	case token.Ident:
		p.advance()
		if p.at(token.LParen) {
			return p.parseCallRest(tok)
		}
		return ast.NewVarRef(tok.Text, tok.Span), true
	case token.LParen:
		p.advance()
		inner, ok := p.parseExpr()
		if !ok {
			return nil, false
		}
		if _, ok := p.expect(token.RParen, diag.SynUnclosedParen, "expected ')'"); !ok {
			return nil, false
		}
		return inner, true
	case token.KwQuery:
		return p.parseQuery()
	case token.Invalid:
		p.advance()
		return nil, false
	default:
		p.err(diag.SynExpectExpression, "expected expression, got "+describe(tok))
		return nil, false
	}
}

// parseCallRest parses `(args)` after the callee name.
func (p *Parser) parseCallRest(nameTok token.Token) (*ast.Expr, bool) {
	p.advance() // '('
	var args []*ast.Expr
	for !p.at(token.RParen) && !p.at(token.EOF) {
		arg, ok := p.parseExpr()
		if !ok {
			return nil, false
		}
		args = append(args, arg)
		if p.at(token.Comma) {
			p.advance()
			continue
		}
		if !p.at(token.RParen) {
			p.err(diag.SynUnexpectedToken, "expected ',' after argument "+strconv.Itoa(len(args)))
			return nil, false
		}
	}
	closeTok, ok := p.expect(token.RParen, diag.SynUnclosedParen, "expected ')' to close call of "+nameTok.Text)
	if !ok {
		return nil, false
	}
	return ast.NewCall(nameTok.Text, nameTok.Span, args, nameTok.Span.Cover(closeTok.Span)), true
}

// parseQuery: query KIND [unit] OP [op_expr] where [cond]
func (p *Parser) parseQuery() (*ast.Expr, bool) {
	qTok := p.advance()
	kindTok, ok := p.expect(token.Ident, diag.SynExpectIdentifier, "expected query kind")
	if !ok {
		return nil, false
	}
	unit, ok := p.parseBracketed()
	if !ok {
		return nil, false
	}
	opTok, ok := p.expect(token.Ident, diag.SynExpectIdentifier, "expected query operation")
	if !ok {
		return nil, false
	}
	opExpr, ok := p.parseBracketed()
	if !ok {
		return nil, false
	}
	if _, ok := p.expect(token.KwWhere, diag.SynUnexpectedToken, "expected 'where' in query"); !ok {
		return nil, false
	}
	where, ok := p.parseBracketed()
	if !ok {
		return nil, false
	}
	d := &ast.QueryData{Kind: kindTok.Text, Unit: unit, Op: opTok.Text, OpExpr: opExpr, Where: where}
	return ast.NewQuery(d, qTok.Span.Cover(p.lastSpan)), true
}

// parseBracketed reads `[expr]` or `[]`; the latter yields nil.
func (p *Parser) parseBracketed() (*ast.Expr, bool) {
	if _, ok := p.expect(token.LBracket, diag.SynUnexpectedToken, "expected '['"); !ok {
		return nil, false
	}
	var inner *ast.Expr
	if !p.at(token.RBracket) {
		var ok bool
		if inner, ok = p.parseExpr(); !ok {
			return nil, false
		}
	}
	if _, ok := p.expect(token.RBracket, diag.SynUnclosedBracket, "expected ']'"); !ok {
		return nil, false
	}
	return inner, true
}
