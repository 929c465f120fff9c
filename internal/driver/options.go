package driver

import (
	"climb/internal/diag"
	"climb/internal/eval"
	"climb/internal/observ"
	"climb/internal/parser"
	"climb/internal/source"
)

// Options configures one pipeline run.
type Options struct {
	MaxDiagnostics int
	Overflow       eval.Overflow
	Strict         bool
	MaxDepth       int
	Normalize      source.Normalization
	// Timer receives one phase per pipeline step. May be nil.
	Timer *observ.Timer
}

func (o Options) parserOptions(bag *diag.Bag) parser.Options {
	return parser.Options{
		Reporter: diag.BagReporter{Bag: bag},
		Strict:   o.Strict,
		MaxDepth: o.MaxDepth,
	}
}

func (o Options) newFileSet() *source.FileSet {
	fs := source.NewFileSet()
	fs.SetNormalization(o.Normalize)
	return fs
}

// loadError wraps a read failure as an IO diagnostic error.
func loadError(path string, err error) *diag.Error {
	return diag.Errorf(diag.IOLoadFileError, source.Span{}, "failed to load %s: %v", path, err)
}
