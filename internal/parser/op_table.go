package parser

import (
	"climb/internal/ast"
	"climb/internal/token"
)

// Binding powers. A larger number binds tighter. Infix operators carry a
// left and a right power; left > right makes an operator right-associative.
const (
	bpNone = 0

	bpAdditiveLeft  = 1 // + -
	bpAdditiveRight = 2

	bpMultiplicativeLeft  = 3 // * /
	bpMultiplicativeRight = 4

	bpPrefix  = 5 // unary + -
	bpPostfix = 6 // !

	bpPowerLeft  = 8 // ^
	bpPowerRight = 7
)

// prefixPower returns the operator and right binding power of a prefix token.
func prefixPower(kind token.Kind) (ast.Op, int, bool) {
	switch kind {
	case token.Plus:
		return ast.OpAdd, bpPrefix, true
	case token.Minus:
		return ast.OpSub, bpPrefix, true
	default:
		return 0, 0, false
	}
}

// postfixPower returns the operator and left binding power of a postfix token.
func postfixPower(kind token.Kind) (ast.Op, int, bool) {
	if kind == token.Bang {
		return ast.OpFac, bpPostfix, true
	}
	return 0, 0, false
}

// infixPower returns the operator and its left/right binding powers.
func infixPower(kind token.Kind) (op ast.Op, left, right int, ok bool) {
	switch kind {
	case token.Plus:
		return ast.OpAdd, bpAdditiveLeft, bpAdditiveRight, true
	case token.Minus:
		return ast.OpSub, bpAdditiveLeft, bpAdditiveRight, true
	case token.Star:
		return ast.OpMul, bpMultiplicativeLeft, bpMultiplicativeRight, true
	case token.Slash:
		return ast.OpDiv, bpMultiplicativeLeft, bpMultiplicativeRight, true
	case token.Caret:
		return ast.OpExp, bpPowerLeft, bpPowerRight, true
	default:
		return 0, 0, 0, false
	}
}
