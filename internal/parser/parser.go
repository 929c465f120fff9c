package parser

import (
	"climb/internal/ast"
	"climb/internal/diag"
	"climb/internal/lexer"
	"climb/internal/source"
	"climb/internal/token"
)

// Parser holds the state of one expression parse.
type Parser struct {
	lx       *lexer.Lexer
	exprs    *ast.Exprs
	opts     Options
	lastSpan source.Span // span of the last consumed token
	depth    int
	heights  map[ast.ExprID]int // operator node -> tree height; leaves are 1

	err       *diag.Error
	fromLexer bool
}

// ParseFile lexes and parses the whole content of file as one expression.
func ParseFile(file *source.File, opts Options) (*ast.Tree, error) {
	lx := lexer.New(file, lexer.Options{Reporter: opts.Reporter})
	return ParseExpr(lx, ast.NewExprs(0), opts)
}

// ParseBytes parses src as a virtual file. Spans refer to a private FileSet.
func ParseBytes(src []byte) (*ast.Tree, error) {
	fs := source.NewFileSet()
	return ParseFile(fs.Get(fs.AddVirtual("<input>", src)), Options{})
}

// ParseExpr parses one expression from lx into exprs. Tokens after the
// expression are left unread unless opts.Strict is set.
func ParseExpr(lx *lexer.Lexer, exprs *ast.Exprs, opts Options) (*ast.Tree, error) {
	p := Parser{
		lx:    lx,
		exprs: exprs,
		opts:  opts,
	}
	root, ok := p.parseExpr(bpNone)
	if ok && opts.Strict {
		ok = p.expectEOF()
	}
	if !ok {
		if p.err == nil {
			p.err = diag.Errorf(diag.UnknownCode, p.lastSpan, "parse failed")
		}
		if !p.fromLexer {
			diag.ReportErr(opts.Reporter, p.err)
		}
		return nil, p.err
	}
	return &ast.Tree{Exprs: exprs, Root: root}, nil
}

// parseExpr is the binding-power loop: read a primary, then fold in
// postfix and infix operators whose left power is at least minBP.
func (p *Parser) parseExpr(minBP int) (ast.ExprID, bool) {
	p.depth++
	defer func() { p.depth-- }()
	if p.depth > p.opts.maxDepth() {
		return ast.NoExprID, p.fail(diag.Errorf(diag.SynTooDeep, p.lx.Peek().Span,
			"expression nested deeper than %d levels", p.opts.maxDepth()))
	}

	lhs, ok := p.parsePrimary()
	if !ok {
		return ast.NoExprID, false
	}

	for {
		tok := p.lx.Peek()
		switch tok.Kind {
		case token.EOF, token.RParen:
			return lhs, true
		case token.Invalid:
			return ast.NoExprID, p.lexFailure()
		case token.IntLit, token.Ident, token.LParen:
			return ast.NoExprID, p.fail(diag.Errorf(diag.SynExpectOperator, tok.Span,
				"expected operator, found %s", tok.Describe()))
		}

		if op, leftBP, ok := postfixPower(tok.Kind); ok {
			if leftBP < minBP {
				return lhs, true
			}
			opTok := p.advance()
			if lhs, ok = p.newOp(p.spanOf(lhs).Cover(opTok.Span), op, lhs); !ok {
				return ast.NoExprID, false
			}
			continue
		}

		op, leftBP, rightBP, ok := infixPower(tok.Kind)
		if !ok || leftBP < minBP {
			return lhs, true
		}
		p.advance()
		rhs, ok := p.parseExpr(rightBP)
		if !ok {
			return ast.NoExprID, false
		}
		if lhs, ok = p.newOp(p.spanOf(lhs).Cover(p.spanOf(rhs)), op, lhs, rhs); !ok {
			return ast.NoExprID, false
		}
	}
}

// parsePrimary reads a literal, a parenthesised expression or a prefix operator.
func (p *Parser) parsePrimary() (ast.ExprID, bool) {
	tok := p.advance()
	switch tok.Kind {
	case token.IntLit:
		return p.exprs.NewInt(tok.Span, tok.Int), true
	case token.Ident:
		return p.exprs.NewSym(tok.Span, tok.Text), true
	case token.LParen:
		inner, ok := p.parseExpr(bpNone)
		if !ok {
			return ast.NoExprID, false
		}
		closing, ok := p.expect(token.RParen, diag.SynUnclosedParen, "expected ')'")
		if !ok {
			if !p.fromLexer {
				p.err.WithNote(tok.Span, "unclosed '(' opened here")
			}
			return ast.NoExprID, false
		}
		if expr := p.exprs.Get(inner); expr != nil {
			expr.Span = tok.Span.Cover(closing.Span)
		}
		return inner, true
	case token.Invalid:
		return ast.NoExprID, p.lexFailure()
	}

	if op, rightBP, ok := prefixPower(tok.Kind); ok {
		operand, ok := p.parseExpr(rightBP)
		if !ok {
			return ast.NoExprID, false
		}
		return p.newOp(tok.Span.Cover(p.spanOf(operand)), op, operand)
	}

	return ast.NoExprID, p.fail(diag.Errorf(diag.SynExpectExpression, p.diagnosticSpan(tok),
		"expected literal, found %s", tok.Describe()))
}

// newOp allocates an operator node unless the tree would grow taller than
// MaxDepth. Postfix and left-associative chains are folded by the loop in
// parseExpr without recursing, so the recursion guard alone does not bound
// the height that evaluation and rendering walk.
func (p *Parser) newOp(span source.Span, op ast.Op, children ...ast.ExprID) (ast.ExprID, bool) {
	height := 0
	for _, child := range children {
		height = max(height, p.height(child))
	}
	height++
	if height > p.opts.maxDepth() {
		return ast.NoExprID, p.fail(diag.Errorf(diag.SynTooDeep, span,
			"expression tree deeper than %d levels", p.opts.maxDepth()))
	}
	id := p.exprs.NewOp(span, op, children...)
	if p.heights == nil {
		p.heights = make(map[ast.ExprID]int)
	}
	p.heights[id] = height
	return id, true
}

func (p *Parser) height(id ast.ExprID) int {
	if h, ok := p.heights[id]; ok {
		return h
	}
	return 1
}

func (p *Parser) expectEOF() bool {
	tok := p.lx.Peek()
	if tok.Kind == token.EOF {
		return true
	}
	return p.fail(diag.Errorf(diag.SynTrailingInput, tok.Span,
		"unexpected %s after expression", tok.Describe()))
}

func (p *Parser) spanOf(id ast.ExprID) source.Span {
	if expr := p.exprs.Get(id); expr != nil {
		return expr.Span
	}
	return p.lastSpan
}
