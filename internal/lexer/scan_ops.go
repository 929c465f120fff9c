package lexer

import (
	"climb/internal/diag"
	"climb/internal/token"
)

func (lx *Lexer) scanOperator() token.Token {
	start := lx.cursor.Mark()
	emit := func(k token.Kind) token.Token {
		sp := lx.cursor.SpanFrom(start)
		return token.Token{Kind: k, Span: sp, Text: lx.text(sp)}
	}

	ch := lx.cursor.Bump()
	switch ch {
	case '+':
		return emit(token.Plus)
	case '-':
		return emit(token.Minus)
	case '*':
		return emit(token.Star)
	case '/':
		return emit(token.Slash)
	case '^':
		return emit(token.Caret)
	case '!':
		return emit(token.Bang)
	case '(':
		return emit(token.LParen)
	case ')':
		return emit(token.RParen)
	}

	sp := lx.cursor.SpanFrom(start)
	return lx.fail(diag.Errorf(diag.LexUnknownChar, sp,
		"unexpected character %s at %d", describeByte(ch), sp.Start))
}
