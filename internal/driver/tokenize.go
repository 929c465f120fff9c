package driver

import (
	"context"

	"climb/internal/diag"
	"climb/internal/lexer"
	"climb/internal/source"
	"climb/internal/token"
	"climb/internal/trace"
)

type TokenizeResult struct {
	FileSet *source.FileSet
	File    *source.File
	Tokens  []token.Token
	Bag     *diag.Bag
	// Err is the lexer's first error, nil when the whole file lexed.
	Err error
}

// Tokenize loads path and lexes it to EOF or to the first invalid token.
func Tokenize(ctx context.Context, path string, opts Options) (*TokenizeResult, error) {
	fs := opts.newFileSet()
	idx := opts.Timer.Begin("load")
	fileID, err := fs.Load(path)
	opts.Timer.End(idx, path)
	if err != nil {
		return nil, loadError(path, err)
	}
	file := fs.Get(fileID)

	span := trace.Begin(trace.FromContext(ctx), trace.ScopePass, "tokenize", trace.CurrentSpan(ctx))
	idx = opts.Timer.Begin("tokenize")

	bag := diag.NewBag(opts.MaxDiagnostics)
	lx := lexer.New(file, lexer.Options{Reporter: diag.BagReporter{Bag: bag}})
	var tokens []token.Token
	for {
		tok := lx.Next()
		tokens = append(tokens, tok)
		if tok.Kind == token.EOF || tok.Kind == token.Invalid {
			break
		}
	}

	opts.Timer.End(idx, "")
	span.WithExtra("tokens", itoa(len(tokens))).End("")

	return &TokenizeResult{
		FileSet: fs,
		File:    file,
		Tokens:  tokens,
		Bag:     bag,
		Err:     lx.Err(),
	}, nil
}
