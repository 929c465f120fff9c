// Package diag defines the diagnostic model shared by the lexer, parser and
// evaluator.
//
// Diagnostic is the central record: Severity, a numeric Code with a stable
// string id (LEX1001, SYN2006, EVL3003, ...), a short Message, the Primary
// span and optional Notes pointing at related source.
//
// Phases report through a Reporter so emission is decoupled from storage;
// BagReporter collects into a Bag, which sorts and deduplicates. Every
// failing operation also returns an *Error so library callers can branch on
// Kind without inspecting a Bag.
//
// Rendering lives in internal/diagfmt.
package diag
