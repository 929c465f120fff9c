// Package fuzztests houses Go fuzz harnesses that push arbitrary bytes
// through the whole pipeline (source -> lexer -> parser -> eval) and check
// that it terminates with either a well-formed tree and a value or a typed
// diagnostic, never a panic or a hang.
package fuzztests
