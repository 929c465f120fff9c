package lexer

import (
	"climb/internal/token"
)

// scanIdent reads a letter followed by letters and digits.
func (lx *Lexer) scanIdent() token.Token {
	start := lx.cursor.Mark()
	lx.cursor.Bump()
	lx.cursor.BumpWhile(isAlnum)
	sp := lx.cursor.SpanFrom(start)
	return token.Token{Kind: token.Ident, Span: sp, Text: lx.text(sp)}
}
