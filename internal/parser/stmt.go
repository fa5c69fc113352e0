package parser

import (
	"errors"
	"strconv"

	"redux/internal/ast"
	"redux/internal/diag"
	"redux/internal/source"
	"redux/internal/token"
	"redux/internal/types"
)

// parseStmt выбирает по первому токену нужный распознаватель.
func (p *Parser) parseStmt() (ast.Stmt, bool) {
	switch tok := p.lx.Peek(); tok.Kind {
	case token.Ident:
		return p.parseIdentStmt()
	case token.KwIf:
		return p.parseIfTail(p.advance())
	case token.KwWhile:
		return p.parseWhile()
	case token.KwFor:
		return p.parseFor()
	case token.KwDef:
		return p.parseFuncDef()
	case token.KwBitfield:
		return p.parseBitfieldDef()
	case token.KwEnum:
		return p.parseEnumDef()
	case token.KwRequire:
		return p.parseRequire()
	case token.CodeLit:
		p.advance()
		return ast.Stmt{Kind: ast.StmtCode, Span: tok.Span, Data: &ast.CodeData{Text: tok.Text}}, true
	case token.KwBreak:
		p.advance()
		return ast.NewBreak(tok.Span), true
	case token.Invalid:
		// уже отрепорчено лексером
		return ast.Stmt{}, false
	default:
		p.report(diag.SynUnexpectedToken, diag.SevError, tok.Span, "unexpected "+describe(tok)+", expected statement")
		return ast.Stmt{}, false
	}
}

// parseIdentStmt handles the three statements that start with a name:
// assignment, bitfield member assignment and a call.
func (p *Parser) parseIdentStmt() (ast.Stmt, bool) {
	nameTok := p.advance()
	switch {
	case p.at(token.Assign):
		return p.parseAssignRest(nameTok)
	case p.at(token.LParen):
		call, ok := p.parseCallRest(nameTok)
		if !ok {
			return ast.Stmt{}, false
		}
		return ast.Stmt{Kind: ast.StmtExpr, Span: call.Span, Data: &ast.ExprStmtData{X: call}}, true
	case p.at(token.Dot):
		p.advance()
		memberTok, ok := p.expect(token.Ident, diag.SynExpectIdentifier, "expected member name after '.'")
		if !ok {
			return ast.Stmt{}, false
		}
		if _, ok := p.expect(token.Assign, diag.SynBadAssignTarget, "member access is not a statement, expected '='"); !ok {
			return ast.Stmt{}, false
		}
		value, ok := p.parseExpr()
		if !ok {
			return ast.Stmt{}, false
		}
		target := ast.NewMember(ast.ExprDotted, ast.NewVarRef(nameTok.Text, nameTok.Span), memberTok.Text, memberTok.Span)
		return ast.Stmt{
			Kind: ast.StmtBitfieldAssign,
			Span: nameTok.Span.Cover(value.Span),
			Data: &ast.BitfieldAssignData{Target: target, Value: value},
		}, true
	default:
		p.report(diag.SynUnexpectedToken, diag.SevError, nameTok.Span, "stray identifier '"+nameTok.Text+"'")
		return ast.Stmt{}, false
	}
}

func (p *Parser) parseAssignment() (ast.Stmt, bool) {
	nameTok, ok := p.expect(token.Ident, diag.SynExpectIdentifier, "expected assignment")
	if !ok {
		return ast.Stmt{}, false
	}
	if !p.at(token.Assign) {
		p.err(diag.SynBadAssignTarget, "expected '=' after '"+nameTok.Text+"'")
		return ast.Stmt{}, false
	}
	return p.parseAssignRest(nameTok)
}

func (p *Parser) parseAssignRest(nameTok token.Token) (ast.Stmt, bool) {
	p.advance() // '='
	value, ok := p.parseExpr()
	if !ok {
		return ast.Stmt{}, false
	}
	return ast.Stmt{
		Kind: ast.StmtAssign,
		Span: nameTok.Span.Cover(value.Span),
		Data: &ast.AssignData{Name: nameTok.Text, NameSpan: nameTok.Span, Value: value},
	}, true
}

// parseIfTail parses everything after `if` or `elif`. An elif chain becomes
// an if nested in the else block; only the outermost statement eats `end`.
func (p *Parser) parseIfTail(kwTok token.Token) (ast.Stmt, bool) {
	cond, ok := p.parseExpr()
	if !ok {
		return ast.Stmt{}, false
	}
	then := p.parseBlock(false, token.KwElif, token.KwElse, token.KwEnd)
	var els *ast.Block
	switch {
	case p.at(token.KwElif):
		nested, ok := p.parseIfTail(p.advance())
		if !ok {
			return ast.Stmt{}, false
		}
		els = &ast.Block{Stmts: []ast.Stmt{nested}, Span: nested.Span}
	case p.at(token.KwElse):
		p.advance()
		els = p.parseBlock(false, token.KwEnd)
		if _, ok := p.expectEnd("if", kwTok.Span); !ok {
			return ast.Stmt{}, false
		}
	default:
		if _, ok := p.expectEnd("if", kwTok.Span); !ok {
			return ast.Stmt{}, false
		}
	}
	return ast.NewIf(cond, then, els, kwTok.Span.Cover(p.lastSpan)), true
}

func (p *Parser) parseWhile() (ast.Stmt, bool) {
	whileTok := p.advance()
	cond, ok := p.parseExpr()
	if !ok {
		return ast.Stmt{}, false
	}
	body := p.parseBlock(false, token.KwEnd)
	if _, ok := p.expectEnd("while", whileTok.Span); !ok {
		return ast.Stmt{}, false
	}
	return ast.Stmt{
		Kind: ast.StmtWhile,
		Span: whileTok.Span.Cover(p.lastSpan),
		Data: &ast.WhileData{Cond: cond, Body: body},
	}, true
}

// parseFor: for [init] ; [cond] ; [step] body end. A name followed by '='
// right after the second ';' is always read as the step clause.
func (p *Parser) parseFor() (ast.Stmt, bool) {
	forTok := p.advance()
	data := &ast.ForData{}
	if !p.at(token.Semicolon) {
		init, ok := p.parseAssignment()
		if !ok {
			return ast.Stmt{}, false
		}
		data.Init = &init
	}
	if _, ok := p.expect(token.Semicolon, diag.SynUnexpectedToken, "expected ';' after for initializer"); !ok {
		return ast.Stmt{}, false
	}
	if !p.at(token.Semicolon) {
		cond, ok := p.parseExpr()
		if !ok {
			return ast.Stmt{}, false
		}
		data.Cond = cond
	}
	if _, ok := p.expect(token.Semicolon, diag.SynUnexpectedToken, "expected ';' after for condition"); !ok {
		return ast.Stmt{}, false
	}
	if p.at(token.Ident) {
		nameTok := p.advance()
		if p.at(token.Assign) {
			step, ok := p.parseAssignRest(nameTok)
			if !ok {
				return ast.Stmt{}, false
			}
			data.Step = &step
		} else {
			p.report(diag.SynBadAssignTarget, diag.SevError, nameTok.Span, "expected assignment as for step")
			return ast.Stmt{}, false
		}
	}
	data.Body = p.parseBlock(false, token.KwEnd)
	if _, ok := p.expectEnd("for", forTok.Span); !ok {
		return ast.Stmt{}, false
	}
	return ast.Stmt{Kind: ast.StmtFor, Span: forTok.Span.Cover(p.lastSpan), Data: data}, true
}

func (p *Parser) parseFuncDef() (ast.Stmt, bool) {
	defTok := p.advance()
	nameTok, ok := p.expect(token.Ident, diag.SynExpectIdentifier, "expected function name after 'def'")
	if !ok {
		return ast.Stmt{}, false
	}
	if _, ok := p.expect(token.LParen, diag.SynUnexpectedToken, "expected '(' after function name"); !ok {
		return ast.Stmt{}, false
	}
	var params []ast.Param
	for !p.at(token.RParen) {
		prm, ok := p.expect(token.Ident, diag.SynExpectIdentifier, "expected parameter name")
		if !ok {
			return ast.Stmt{}, false
		}
		params = append(params, ast.Param{Name: prm.Text, Span: prm.Span})
		if !p.at(token.Comma) {
			break
		}
		p.advance()
	}
	if _, ok := p.expect(token.RParen, diag.SynUnclosedParen, "expected ')' after parameters"); !ok {
		return ast.Stmt{}, false
	}
	body := p.parseBlock(true, token.KwEnd)
	if _, ok := p.expectEnd("function "+nameTok.Text, defTok.Span); !ok {
		return ast.Stmt{}, false
	}
	fn := &ast.FuncDef{
		Name:       nameTok.Text,
		NameSpan:   nameTok.Span,
		Params:     params,
		Body:       body,
		Nontrivial: true,
	}
	return ast.Stmt{Kind: ast.StmtFuncDef, Span: defTok.Span.Cover(p.lastSpan), Data: fn}, true
}

func (p *Parser) parseBitfieldDef() (ast.Stmt, bool) {
	kwTok := p.advance()
	nameTok, ok := p.expect(token.Ident, diag.SynExpectIdentifier, "expected bitfield name")
	if !ok {
		return ast.Stmt{}, false
	}
	shape := &types.Bitfield{Name: nameTok.Text}
	seen := make(map[string]bool)
	for p.at(token.Ident) {
		memberTok := p.advance()
		if _, ok := p.expect(token.Colon, diag.SynUnexpectedToken, "expected ':' after bitfield member name"); !ok {
			return ast.Stmt{}, false
		}
		widthTok, ok := p.expect(token.IntLit, diag.SynExpectNumber, "expected bit length")
		if !ok {
			return ast.Stmt{}, false
		}
		width, err := parseInt(widthTok.Text)
		if err != nil || width <= 0 {
			p.report(diag.SynBitfieldWidth, diag.SevError, widthTok.Span, "bit length must be a positive integer")
			continue
		}
		if seen[memberTok.Text] {
			p.report(diag.SynUnexpectedToken, diag.SevError, memberTok.Span, "duplicate bitfield member '"+memberTok.Text+"'")
			continue
		}
		seen[memberTok.Text] = true
		shape.Members = append(shape.Members, types.BitfieldMember{Name: memberTok.Text, Length: uint(width)})
	}
	if len(seen) == 0 {
		p.err(diag.SynExpectIdentifier, "bitfield "+nameTok.Text+" needs at least one member")
	}
	if _, ok := p.expectEnd("bitfield", kwTok.Span); !ok {
		return ast.Stmt{}, false
	}
	def := &ast.BitfieldDef{Name: nameTok.Text, NameSpan: nameTok.Span, Shape: shape}
	return ast.Stmt{Kind: ast.StmtBitfieldDef, Span: kwTok.Span.Cover(p.lastSpan), Data: def}, true
}

func (p *Parser) parseEnumDef() (ast.Stmt, bool) {
	kwTok := p.advance()
	nameTok, ok := p.expect(token.Ident, diag.SynExpectIdentifier, "expected enum name")
	if !ok {
		return ast.Stmt{}, false
	}
	var (
		specs []types.EnumSpec
		spans []source.Span
	)
	for p.at(token.Ident) {
		memberTok := p.advance()
		spec := types.EnumSpec{Name: memberTok.Text}
		if p.at(token.Assign) {
			p.advance()
			neg := false
			if p.at(token.Minus) {
				p.advance()
				neg = true
			}
			valTok, ok := p.expect(token.IntLit, diag.SynExpectNumber, "expected integer value for enum member")
			if !ok {
				return ast.Stmt{}, false
			}
			v, err := parseInt(valTok.Text)
			if err != nil {
				p.report(diag.SynExpectNumber, diag.SevError, valTok.Span, "integer literal out of range")
				return ast.Stmt{}, false
			}
			if neg {
				v = -v
			}
			spec.Value, spec.Explicit = v, true
		}
		specs = append(specs, spec)
		spans = append(spans, memberTok.Span)
	}
	if len(specs) == 0 {
		p.err(diag.SynExpectIdentifier, "enum "+nameTok.Text+" needs at least one member")
	}
	if _, ok := p.expectEnd("enum", kwTok.Span); !ok {
		return ast.Stmt{}, false
	}
	def, err := ast.NewEnumDef(nameTok.Text, nameTok.Span, specs)
	var order *types.OrderError
	if errors.As(err, &order) {
		p.report(diag.SynEnumOrder, diag.SevError, spans[len(def.Enum.Members)], order.Error())
		return ast.Stmt{}, false
	}
	return ast.Stmt{Kind: ast.StmtEnumDef, Span: kwTok.Span.Cover(p.lastSpan), Data: def}, true
}

func (p *Parser) parseRequire() (ast.Stmt, bool) {
	kwTok := p.advance()
	pathTok, ok := p.expect(token.StringLit, diag.SynExpectString, "expected file path string after 'require'")
	if !ok {
		return ast.Stmt{}, false
	}
	return ast.Stmt{
		Kind: ast.StmtRequire,
		Span: kwTok.Span.Cover(pathTok.Span),
		Data: &ast.RequireData{Path: pathTok.Text},
	}, true
}

// parseInt reads a decimal or 0x-prefixed literal.
func parseInt(text string) (int64, error) {
	if len(text) > 2 && text[0] == '0' && (text[1] == 'x' || text[1] == 'X') {
		return strconv.ParseInt(text[2:], 16, 64)
	}
	return strconv.ParseInt(text, 10, 64)
}
