package parser

import (
	"climb/internal/diag"
	"climb/internal/source"
	"climb/internal/token"
)

func (p *Parser) advance() token.Token {
	tok := p.lx.Next()
	if tok.Kind != token.EOF && tok.Kind != token.Invalid {
		p.lastSpan = tok.Span
	}
	return tok
}

func (p *Parser) at(k token.Kind) bool {
	return p.lx.Peek().Kind == k
}

// diagnosticSpan points EOF diagnostics just past the last consumed token.
func (p *Parser) diagnosticSpan(tok token.Token) source.Span {
	if tok.Kind == token.EOF && p.lastSpan.End > 0 {
		return source.Span{File: p.lastSpan.File, Start: p.lastSpan.End, End: p.lastSpan.End}
	}
	return tok.Span
}

// expect consumes a token of kind k or records an error with code.
func (p *Parser) expect(k token.Kind, code diag.Code, msg string) (token.Token, bool) {
	if p.at(k) {
		return p.advance(), true
	}
	tok := p.lx.Peek()
	if tok.Kind == token.Invalid {
		return tok, p.lexFailure()
	}
	return tok, p.fail(diag.Errorf(code, p.diagnosticSpan(tok), "%s, found %s", msg, tok.Describe()))
}

// fail records err as the parse error. It always returns false.
func (p *Parser) fail(err *diag.Error) bool {
	if p.err == nil {
		p.err = err
	}
	return false
}

// lexFailure adopts the lexer's error; the lexer reports it itself.
func (p *Parser) lexFailure() bool {
	if p.err == nil {
		if de, ok := diag.AsError(p.lx.Err()); ok {
			p.err = de
			p.fromLexer = true
		}
	}
	return false
}
