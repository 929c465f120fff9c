package driver

import (
	"context"
	"strconv"

	"climb/internal/ast"
	"climb/internal/diag"
	"climb/internal/eval"
	"climb/internal/parser"
	"climb/internal/source"
	"climb/internal/trace"
)

// Result is the outcome of parsing, and optionally evaluating, one file.
type Result struct {
	FileSet *source.FileSet
	File    *source.File
	Tree    *ast.Tree // nil when parsing failed
	Value   int32
	// Evaluated is set when Value holds a result.
	Evaluated bool
	Bag       *diag.Bag
	// Err is the first lex, parse or eval error.
	Err error
}

// Failed reports whether any stage produced an error.
func (r *Result) Failed() bool {
	return r.Err != nil
}

// Parse loads path and builds its expression tree.
func Parse(ctx context.Context, path string, opts Options) (*Result, error) {
	fs := opts.newFileSet()
	idx := opts.Timer.Begin("load")
	fileID, err := fs.Load(path)
	opts.Timer.End(idx, path)
	if err != nil {
		return nil, loadError(path, err)
	}
	res := newResult(fs, fs.Get(fileID), opts)
	runParse(ctx, res, opts)
	return res, nil
}

// Eval loads path, parses it and evaluates the tree.
func Eval(ctx context.Context, path string, opts Options) (*Result, error) {
	fs := opts.newFileSet()
	idx := opts.Timer.Begin("load")
	fileID, err := fs.Load(path)
	opts.Timer.End(idx, path)
	if err != nil {
		return nil, loadError(path, err)
	}
	return evalFile(ctx, fs, fs.Get(fileID), opts), nil
}

// EvalSource evaluates in-memory source registered under name.
func EvalSource(ctx context.Context, name string, src []byte, opts Options) *Result {
	fs := opts.newFileSet()
	return evalFile(ctx, fs, fs.Get(fs.AddVirtual(name, src)), opts)
}

func newResult(fs *source.FileSet, file *source.File, opts Options) *Result {
	return &Result{
		FileSet: fs,
		File:    file,
		Bag:     diag.NewBag(opts.MaxDiagnostics),
	}
}

func evalFile(ctx context.Context, fs *source.FileSet, file *source.File, opts Options) *Result {
	tracer := trace.FromContext(ctx)
	span := trace.Begin(tracer, trace.ScopeFile, "file", trace.CurrentSpan(ctx)).
		WithExtra("path", file.Path)
	ctx = trace.WithSpan(ctx, span)

	res := newResult(fs, file, opts)
	if runParse(ctx, res, opts) {
		runEval(ctx, res, opts)
	}

	detail := "ok"
	if res.Failed() {
		detail = diag.KindOf(res.Err).String()
	}
	span.End(detail)
	return res
}

func runParse(ctx context.Context, res *Result, opts Options) bool {
	span := trace.Begin(trace.FromContext(ctx), trace.ScopePass, "parse", trace.CurrentSpan(ctx))
	idx := opts.Timer.Begin("parse")

	tree, err := parser.ParseFile(res.File, opts.parserOptions(res.Bag))

	opts.Timer.End(idx, "")
	if err != nil {
		res.Err = err
		span.Fail(diag.CodeOf(err).ID())
		return false
	}
	res.Tree = tree
	span.WithExtra("nodes", itoa(tree.Len())).End("")
	return true
}

func runEval(ctx context.Context, res *Result, opts Options) {
	tracer := trace.FromContext(ctx)
	span := trace.Begin(tracer, trace.ScopePass, "eval", trace.CurrentSpan(ctx))
	idx := opts.Timer.Begin("eval")

	v, err := eval.Eval(res.Tree, eval.Options{
		Overflow: opts.Overflow,
		Tracer:   tracer,
		Parent:   span.ID(),
	})

	opts.Timer.End(idx, "")
	if err != nil {
		res.Err = err
		if de, ok := diag.AsError(err); ok {
			diag.ReportErr(diag.BagReporter{Bag: res.Bag}, de)
		}
		span.Fail(diag.CodeOf(err).ID())
		return
	}
	res.Value = v
	res.Evaluated = true
	span.End(strconv.FormatInt(int64(v), 10))
}

func itoa(n int) string {
	return strconv.Itoa(n)
}
