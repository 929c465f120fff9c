package lexer

import (
	"strconv"

	"climb/internal/diag"
	"climb/internal/token"
)

// scanNumber reads a greedy run of decimal digits. The value must fit in
// int32; signs are operators and never part of the literal.
func (lx *Lexer) scanNumber() token.Token {
	start := lx.cursor.Mark()
	lx.cursor.BumpWhile(isDec)
	sp := lx.cursor.SpanFrom(start)
	text := lx.text(sp)

	v, err := strconv.ParseInt(text, 10, 32)
	if err != nil {
		return lx.fail(diag.Errorf(diag.LexNumberOverflow, sp,
			"integer literal %s does not fit in 32 bits", text))
	}
	return token.Token{Kind: token.IntLit, Span: sp, Text: text, Int: int32(v)}
}
