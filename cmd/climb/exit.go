package main

import (
	"errors"

	"climb/internal/diag"
)

// Exit statuses follow sysexits(3).
const (
	exitOK       = 0
	exitFailure  = 1
	exitDataErr  = 65 // lex and parse errors
	exitSoftware = 70 // evaluation errors
)

// reportedError marks an error whose diagnostics were already printed.
type reportedError struct {
	err error
}

func (e *reportedError) Error() string { return e.err.Error() }
func (e *reportedError) Unwrap() error { return e.err }

func reported(err error) error {
	if err == nil {
		return nil
	}
	return &reportedError{err: err}
}

func exitCode(err error) int {
	if err == nil {
		return exitOK
	}
	var de *diag.Error
	if !errors.As(err, &de) {
		return exitFailure
	}
	switch de.Kind() {
	case diag.KindLex, diag.KindNumberFormat, diag.KindParse:
		return exitDataErr
	case diag.KindEval:
		return exitSoftware
	default:
		return exitFailure
	}
}

func isReported(err error) bool {
	var r *reportedError
	return errors.As(err, &r)
}
