// Package token defines the lexical token kinds of the expression language.
// Invariants:
//   - Token.Text is the exact source text covered by Token.Span.
//   - IntLit tokens carry their decoded value in Token.Int.
//   - EOF has an empty span at the end of input and is returned repeatedly.
//   - Invalid is produced only together with a lexer error.
package token
