package driver

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"climb/internal/diag"
	"climb/internal/eval"
	"climb/internal/observ"
	"climb/internal/source"
	"climb/internal/token"
	"climb/internal/trace"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestEvalFile(t *testing.T) {
	path := writeFile(t, t.TempDir(), "a.calc", "2 * (3 + 4)\n")
	res, err := Eval(context.Background(), path, Options{MaxDiagnostics: 10})
	require.NoError(t, err)
	require.False(t, res.Failed())
	assert.True(t, res.Evaluated)
	assert.Equal(t, int32(14), res.Value)
	assert.Equal(t, "(* 2 (+ 3 4))", res.Tree.String())
	assert.Zero(t, res.Bag.Len())
}

func TestEvalMissingFile(t *testing.T) {
	_, err := Eval(context.Background(), filepath.Join(t.TempDir(), "nope.calc"), Options{})
	require.Error(t, err)
	assert.Equal(t, diag.IOLoadFileError, diag.CodeOf(err))
	assert.Equal(t, diag.KindIO, diag.KindOf(err))
}

func TestEvalStageErrors(t *testing.T) {
	tests := []struct {
		name string
		src  string
		code diag.Code
		tree bool
	}{
		{"lex", "1 # 2", diag.LexUnknownChar, false},
		{"parse", "2 * (1 + 3", diag.SynUnclosedParen, false},
		{"div zero", "1 / (2 - 2)", diag.EvlDivByZero, true},
		{"symbol", "x + 1", diag.EvlUnboundSymbol, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := EvalSource(context.Background(), "<test>", []byte(tt.src), Options{MaxDiagnostics: 10})
			require.True(t, res.Failed())
			assert.Equal(t, tt.code, diag.CodeOf(res.Err))
			assert.Equal(t, tt.tree, res.Tree != nil)
			assert.False(t, res.Evaluated)
			require.Equal(t, 1, res.Bag.Len())
			assert.Equal(t, tt.code, res.Bag.Items()[0].Code)
		})
	}
}

func TestEvalSourceOverflowModes(t *testing.T) {
	src := []byte("2147483647 + 1")
	res := EvalSource(context.Background(), "<expr>", src, Options{})
	require.NoError(t, res.Err)
	assert.Equal(t, int32(-2147483648), res.Value)

	res = EvalSource(context.Background(), "<expr>", src, Options{Overflow: eval.OverflowTrap})
	assert.Equal(t, diag.EvlOverflow, diag.CodeOf(res.Err))
}

func TestEvalSourceStrict(t *testing.T) {
	res := EvalSource(context.Background(), "<expr>", []byte("1 2"), Options{})
	require.NoError(t, res.Err)
	assert.Equal(t, int32(1), res.Value)

	res = EvalSource(context.Background(), "<expr>", []byte("1 2"), Options{Strict: true})
	assert.Equal(t, diag.SynTrailingInput, diag.CodeOf(res.Err))
}

func TestEvalSourceNormalize(t *testing.T) {
	res := EvalSource(context.Background(), "<expr>", []byte("６＊７"), Options{Normalize: source.NormNFKC})
	require.NoError(t, res.Err)
	assert.Equal(t, int32(42), res.Value)
	assert.NotZero(t, res.File.Flags&source.FileNormalizedUnicode)
}

func TestParseOnly(t *testing.T) {
	path := writeFile(t, t.TempDir(), "p.calc", "1 / 0")
	res, err := Parse(context.Background(), path, Options{})
	require.NoError(t, err)
	require.NoError(t, res.Err)
	assert.False(t, res.Evaluated)
	assert.Equal(t, "(/ 1 0)", res.Tree.String())
}

func TestTokenize(t *testing.T) {
	path := writeFile(t, t.TempDir(), "t.calc", "3! ^ y")
	res, err := Tokenize(context.Background(), path, Options{MaxDiagnostics: 4})
	require.NoError(t, err)
	require.NoError(t, res.Err)
	kinds := make([]token.Kind, 0, len(res.Tokens))
	for _, tok := range res.Tokens {
		kinds = append(kinds, tok.Kind)
	}
	assert.Equal(t, []token.Kind{token.IntLit, token.Bang, token.Caret, token.Ident, token.EOF}, kinds)

	bad := writeFile(t, t.TempDir(), "bad.calc", "1 + @")
	res, err = Tokenize(context.Background(), bad, Options{MaxDiagnostics: 4})
	require.NoError(t, err)
	assert.Equal(t, diag.LexUnknownChar, diag.CodeOf(res.Err))
	assert.Equal(t, token.Invalid, res.Tokens[len(res.Tokens)-1].Kind)
	assert.Equal(t, 1, res.Bag.Len())
}

func TestEvalRecordsPhases(t *testing.T) {
	path := writeFile(t, t.TempDir(), "a.calc", "1+1")
	timer := observ.NewTimer()
	_, err := Eval(context.Background(), path, Options{Timer: timer})
	require.NoError(t, err)

	var names []string
	for _, p := range timer.Report().Phases {
		names = append(names, p.Name)
	}
	assert.Equal(t, []string{"load", "parse", "eval"}, names)
}

func TestEvalTracing(t *testing.T) {
	ring := trace.NewRingTracer(64, trace.LevelDebug)
	ctx := trace.WithTracer(context.Background(), ring)
	res := EvalSource(ctx, "<expr>", []byte("2 * 3 + 1"), Options{})
	require.NoError(t, res.Err)

	var begins, points []string
	for _, ev := range ring.Snapshot() {
		switch ev.Kind {
		case trace.KindSpanBegin:
			begins = append(begins, ev.Name)
		case trace.KindPoint:
			points = append(points, ev.Name)
		}
	}
	assert.Equal(t, []string{"file", "parse", "eval"}, begins)
	assert.Equal(t, []string{"mul", "add"}, points)
}
