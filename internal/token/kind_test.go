package token_test

import (
	"testing"

	"climb/internal/source"
	"climb/internal/token"
)

func tok(k token.Kind) token.Token {
	return token.Token{Kind: k, Span: source.Span{Start: 0, End: 0}}
}

func TestIsLiteral(t *testing.T) {
	for _, k := range []token.Kind{token.IntLit, token.Ident} {
		if !tok(k).IsLiteral() {
			t.Fatalf("%v should be literal", k)
		}
	}
	for _, k := range []token.Kind{token.EOF, token.Invalid, token.Plus, token.LParen} {
		if tok(k).IsLiteral() {
			t.Fatalf("%v must NOT be literal", k)
		}
	}
}

func TestIsOperator(t *testing.T) {
	ops := []token.Kind{
		token.Plus, token.Minus, token.Star, token.Slash,
		token.Caret, token.Bang, token.LParen, token.RParen,
	}
	for _, k := range ops {
		if !tok(k).IsOperator() {
			t.Fatalf("%v should be operator", k)
		}
	}
	for _, k := range []token.Kind{token.IntLit, token.Ident, token.EOF, token.Invalid} {
		if tok(k).IsOperator() {
			t.Fatalf("%v must NOT be operator", k)
		}
	}
}

func TestKindString(t *testing.T) {
	if token.Caret.String() != "Caret" || token.EOF.String() != "EOF" {
		t.Fatalf("unexpected names %s %s", token.Caret, token.EOF)
	}
	if token.Kind(200).String() != "Kind(?)" {
		t.Fatalf("out of range kind must not panic")
	}
}

func TestDescribe(t *testing.T) {
	tests := []struct {
		tok  token.Token
		want string
	}{
		{token.Token{Kind: token.IntLit, Text: "42"}, "literal 42"},
		{token.Token{Kind: token.Ident, Text: "x1"}, "symbol x1"},
		{token.Token{Kind: token.EOF}, "end of input"},
		{token.Token{Kind: token.RParen, Text: ")"}, "')'"},
	}
	for _, tt := range tests {
		if got := tt.tok.Describe(); got != tt.want {
			t.Errorf("Describe(%v) = %q, want %q", tt.tok.Kind, got, tt.want)
		}
	}
}
