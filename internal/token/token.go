package token

import (
	"fmt"

	"climb/internal/source"
)

// Token represents a single source token with its location.
type Token struct {
	Kind Kind
	Span source.Span
	Text string
	Int  int32
}

// IsLiteral reports whether the token is an integer literal or a symbol.
func (t Token) IsLiteral() bool {
	return t.Kind == IntLit || t.Kind == Ident
}

// IsOperator reports whether the token is an operator or a parenthesis.
func (t Token) IsOperator() bool {
	return t.Kind.Symbol() != ""
}

// IsEOF reports whether the token ends the input.
func (t Token) IsEOF() bool { return t.Kind == EOF }

// Describe renders the token for "expected X, found Y" messages.
func (t Token) Describe() string {
	switch t.Kind {
	case EOF:
		return "end of input"
	case IntLit:
		return fmt.Sprintf("literal %s", t.Text)
	case Ident:
		return fmt.Sprintf("symbol %s", t.Text)
	case Invalid:
		return fmt.Sprintf("invalid token %q", t.Text)
	default:
		return fmt.Sprintf("'%s'", t.Kind.Symbol())
	}
}
