package parser

import (
	"slices"

	"redux/internal/ast"
	"redux/internal/diag"
	"redux/internal/lexer"
	"redux/internal/source"
	"redux/internal/token"
)

type Options struct {
	MaxErrors     uint
	CurrentErrors uint
	Reporter      diag.Reporter
}

// Enough - проверить, достигли ли мы максимального количества ошибок
func (o *Options) Enough() bool {
	if o.MaxErrors == 0 {
		return false
	}
	return o.CurrentErrors >= o.MaxErrors
}

type Result struct {
	Program *ast.Block
	// Errors is the number of syntax errors reported by the parser itself;
	// lexical errors go straight to the reporter.
	Errors uint
}

// Parser: состояние парсера на один файл
type Parser struct {
	lx       *lexer.Lexer
	file     *source.File
	opts     Options
	lastSpan source.Span // span последнего съеденного токена
}

// ParseFile parses one file into its top-level block.
func ParseFile(file *source.File, lx *lexer.Lexer, opts Options) Result {
	p := Parser{
		lx:       lx,
		file:     file,
		opts:     opts,
		lastSpan: source.Span{File: file.ID},
	}
	start := p.lx.Peek().Span
	prog := p.parseBlock(false, token.EOF)
	prog.Span = start.Cover(p.lx.Peek().Span)
	return Result{Program: prog, Errors: p.opts.CurrentErrors}
}

// ParseSource lexes and parses f with a shared reporter.
func ParseSource(f *source.File, reporter diag.Reporter, maxErrors uint) Result {
	lx := lexer.New(f, lexer.Options{Reporter: reporter})
	return ParseFile(f, lx, Options{Reporter: reporter, MaxErrors: maxErrors})
}

func (p *Parser) at(k token.Kind) bool {
	return p.lx.Peek().Kind == k
}

func (p *Parser) atOr(kinds ...token.Kind) bool {
	return slices.Contains(kinds, p.lx.Peek().Kind)
}

func (p *Parser) IsError() bool {
	return p.opts.CurrentErrors != 0
}

// parseBlock reads statements until one of the terminators (not consumed)
// or EOF. fnBody allows a trailing return.
func (p *Parser) parseBlock(fnBody bool, terminators ...token.Kind) *ast.Block {
	b := &ast.Block{Span: p.lx.Peek().Span}
	for !p.atOr(terminators...) && !p.at(token.EOF) {
		before := p.lx.Peek().Span
		if p.at(token.KwReturn) {
			if ret, ok := p.parseReturn(fnBody); ok {
				b.Stmts = append(b.Stmts, ret)
			}
			continue
		}
		stmt, ok := p.parseStmt()
		if ok {
			b.Stmts = append(b.Stmts, stmt)
			continue
		}
		p.resyncStmt(before)
	}
	b.Span = b.Span.Cover(p.lastSpan)
	return b
}

// parseReturn accepts `return expr` only as the final statement of a
// function body.
func (p *Parser) parseReturn(fnBody bool) (ast.Stmt, bool) {
	retTok := p.advance()
	value, ok := p.parseExpr()
	if !ok {
		p.resyncStmt(retTok.Span)
		return ast.Stmt{}, false
	}
	if !fnBody || !p.at(token.KwEnd) {
		p.report(diag.SynReturnNotLast, diag.SevError, retTok.Span, "return must be the last statement of a function")
		return ast.Stmt{}, false
	}
	return ast.Stmt{Kind: ast.StmtReturn, Span: retTok.Span.Cover(value.Span), Data: &ast.ReturnData{Value: value}}, true
}

// resyncStmt skips tokens until something that can start a statement or
// close a block. It always makes progress past `from`.
func (p *Parser) resyncStmt(from source.Span) {
	if p.lx.Peek().Span == from && !p.at(token.EOF) {
		p.advance()
	}
	for !p.at(token.EOF) {
		tok := p.lx.Peek()
		if tok.StartsStatement() || tok.Kind == token.KwEnd || tok.Kind == token.KwElse || tok.Kind == token.KwElif {
			return
		}
		p.advance()
	}
}
