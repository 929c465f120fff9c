package diag

import "strings"

// Severity of a diagnostic. Lexer, parser and evaluator failures are all
// errors; notes attached to them carry no severity of their own.
type Severity uint8

const SevError Severity = 1

func (s Severity) String() string {
	if s == SevError {
		return "ERROR"
	}
	return "UNKNOWN"
}

// Label is the lowercase form used in one-line output.
func (s Severity) Label() string {
	return strings.ToLower(s.String())
}
