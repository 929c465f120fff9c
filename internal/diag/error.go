package diag

import (
	"errors"
	"fmt"

	"climb/internal/source"
)

// Error is a single failure of the lexer, parser or evaluator.
type Error struct {
	Code    Code
	Span    source.Span
	Message string
	Notes   []Note
}

// Errorf builds an *Error with a formatted message.
func Errorf(code Code, span source.Span, format string, args ...any) *Error {
	return &Error{Code: code, Span: span, Message: fmt.Sprintf(format, args...)}
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s at %d: %s", e.Code.Kind(), e.Span.Start, e.Message)
}

// Kind reports the class of the failure.
func (e *Error) Kind() Kind {
	return e.Code.Kind()
}

// WithNote returns e with an extra note attached.
func (e *Error) WithNote(sp source.Span, msg string) *Error {
	e.Notes = append(e.Notes, Note{Span: sp, Msg: msg})
	return e
}

// Diagnostic converts e into an error-severity Diagnostic.
func (e *Error) Diagnostic() Diagnostic {
	return Diagnostic{
		Severity: SevError,
		Code:     e.Code,
		Message:  e.Message,
		Primary:  e.Span,
		Notes:    e.Notes,
	}
}

// AsError unwraps err to an *Error.
func AsError(err error) (*Error, bool) {
	var de *Error
	if errors.As(err, &de) {
		return de, true
	}
	return nil, false
}

// CodeOf returns the code carried by err, or UnknownCode.
func CodeOf(err error) Code {
	if de, ok := AsError(err); ok {
		return de.Code
	}
	return UnknownCode
}

// KindOf returns the kind carried by err, or KindUnknown.
func KindOf(err error) Kind {
	return CodeOf(err).Kind()
}
