package lexer_test

import (
	"testing"

	"climb/internal/diag"
	"climb/internal/lexer"
	"climb/internal/source"
	"climb/internal/token"
)

// testReporter collects every diagnostic the lexer reports.
type testReporter struct {
	diagnostics []diag.Diagnostic
}

func (r *testReporter) Report(code diag.Code, sev diag.Severity, primary source.Span, msg string, notes []diag.Note) {
	r.diagnostics = append(r.diagnostics, diag.Diagnostic{
		Severity: sev,
		Code:     code,
		Message:  msg,
		Primary:  primary,
		Notes:    notes,
	})
}

func makeTestLexer(input string) (*lexer.Lexer, *testReporter) {
	fs := source.NewFileSet()
	fileID := fs.AddVirtual("test.calc", []byte(input))
	reporter := &testReporter{}
	return lexer.New(fs.Get(fileID), lexer.Options{Reporter: reporter}), reporter
}

// collectAllTokens reads until EOF or Invalid, inclusive.
func collectAllTokens(lx *lexer.Lexer) []token.Token {
	var tokens []token.Token
	for {
		tok := lx.Next()
		tokens = append(tokens, tok)
		if tok.Kind == token.EOF || tok.Kind == token.Invalid {
			return tokens
		}
	}
}

func kinds(toks []token.Token) []token.Kind {
	out := make([]token.Kind, len(toks))
	for i, t := range toks {
		out[i] = t.Kind
	}
	return out
}

func TestLexerKinds(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []token.Kind
	}{
		{"empty", "", []token.Kind{token.EOF}},
		{"blank", " \t\r\n\f", []token.Kind{token.EOF}},
		{"operators", "+-*/()^!", []token.Kind{
			token.Plus, token.Minus, token.Star, token.Slash,
			token.LParen, token.RParen, token.Caret, token.Bang, token.EOF,
		}},
		{"expression", "1 + 2 * 3", []token.Kind{
			token.IntLit, token.Plus, token.IntLit, token.Star, token.IntLit, token.EOF,
		}},
		{"symbol then digits", "a1b2 9", []token.Kind{token.Ident, token.IntLit, token.EOF}},
		{"digits then symbol", "12ab", []token.Kind{token.IntLit, token.Ident, token.EOF}},
		{"negative is two tokens", "-5", []token.Kind{token.Minus, token.IntLit, token.EOF}},
		{"factorial", "9!", []token.Kind{token.IntLit, token.Bang, token.EOF}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			lx, rep := makeTestLexer(tt.input)
			got := kinds(collectAllTokens(lx))
			if len(got) != len(tt.want) {
				t.Fatalf("got %v, want %v", got, tt.want)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Fatalf("token %d: got %v, want %v (all: %v)", i, got[i], tt.want[i], got)
				}
			}
			if len(rep.diagnostics) != 0 {
				t.Errorf("unexpected diagnostics: %+v", rep.diagnostics)
			}
		})
	}
}

func TestLexerValuesAndSpans(t *testing.T) {
	lx, _ := makeTestLexer("  42 *abc")
	n := lx.Next()
	if n.Kind != token.IntLit || n.Int != 42 || n.Text != "42" {
		t.Fatalf("got %+v", n)
	}
	if n.Span.Start != 2 || n.Span.End != 4 {
		t.Errorf("span = %v", n.Span)
	}
	star := lx.Next()
	if star.Span.Start != 5 || star.Span.End != 6 {
		t.Errorf("star span = %v", star.Span)
	}
	sym := lx.Next()
	if sym.Kind != token.Ident || sym.Text != "abc" {
		t.Fatalf("got %+v", sym)
	}
	eof := lx.Next()
	if eof.Kind != token.EOF || !eof.Span.Empty() || eof.Span.Start != 9 {
		t.Errorf("eof = %+v", eof)
	}
}

func TestLexerMaxInt(t *testing.T) {
	lx, _ := makeTestLexer("2147483647 0007")
	if tok := lx.Next(); tok.Int != 2147483647 {
		t.Errorf("max int32 = %d", tok.Int)
	}
	if tok := lx.Next(); tok.Int != 7 || tok.Text != "0007" {
		t.Errorf("leading zeros = %+v", tok)
	}
}

func TestPeekThenNext(t *testing.T) {
	lx, _ := makeTestLexer("7 +")
	p1 := lx.Peek()
	p2 := lx.Peek()
	n := lx.Next()
	if p1 != p2 || p1 != n {
		t.Fatalf("peek/next mismatch: %+v %+v %+v", p1, p2, n)
	}
	if lx.Next().Kind != token.Plus {
		t.Fatal("expected plus after literal")
	}
}

func TestEOFIsIdempotent(t *testing.T) {
	lx, _ := makeTestLexer("x")
	lx.Next()
	for i := 0; i < 3; i++ {
		if k := lx.Next().Kind; k != token.EOF {
			t.Fatalf("call %d: got %v", i, k)
		}
		if k := lx.Peek().Kind; k != token.EOF {
			t.Fatalf("peek %d: got %v", i, k)
		}
	}
}

func TestLexerErrors(t *testing.T) {
	tests := []struct {
		name   string
		input  string
		code   diag.Code
		kind   diag.Kind
		offset uint32
	}{
		{"unknown char", "1 % 2", diag.LexUnknownChar, diag.KindLex, 2},
		{"underscore", "a_b", diag.LexUnknownChar, diag.KindLex, 1},
		{"bracket", "[1]", diag.LexUnknownChar, diag.KindLex, 0},
		{"non ascii", "1 + é", diag.LexUnknownChar, diag.KindLex, 4},
		{"vertical tab", "1\v", diag.LexUnknownChar, diag.KindLex, 1},
		{"overflow", "1 + 2147483648", diag.LexNumberOverflow, diag.KindNumberFormat, 4},
		{"huge", "99999999999999999999999", diag.LexNumberOverflow, diag.KindNumberFormat, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			lx, rep := makeTestLexer(tt.input)
			toks := collectAllTokens(lx)
			last := toks[len(toks)-1]
			if last.Kind != token.Invalid {
				t.Fatalf("expected Invalid token, got %v", kinds(toks))
			}
			err := lx.Err()
			if err == nil {
				t.Fatal("expected lexer error")
			}
			de, ok := diag.AsError(err)
			if !ok || de.Code != tt.code || de.Kind() != tt.kind {
				t.Fatalf("error = %v", err)
			}
			if de.Span.Start != tt.offset {
				t.Errorf("offset = %d, want %d", de.Span.Start, tt.offset)
			}
			if len(rep.diagnostics) != 1 || rep.diagnostics[0].Code != tt.code {
				t.Errorf("reported %+v", rep.diagnostics)
			}
			// sticky: no recovery after an error
			if lx.Next().Kind != token.Invalid || lx.Peek().Kind != token.Invalid {
				t.Error("lexer must stay on Invalid after an error")
			}
			if len(rep.diagnostics) != 1 {
				t.Error("error must be reported once")
			}
		})
	}
}

func TestLexerWithoutReporter(t *testing.T) {
	fs := source.NewFileSet()
	lx := lexer.New(fs.Get(fs.AddVirtual("x", []byte("#"))), lexer.Options{})
	if lx.Next().Kind != token.Invalid || lx.Err() == nil {
		t.Fatal("expected error without reporter")
	}
}

func FuzzLexer(f *testing.F) {
	for _, seed := range []string{"1 + 2", "--f ^ g", "(((0)))", "2147483648", "a%b", ""} {
		f.Add(seed)
	}
	f.Fuzz(func(t *testing.T, input string) {
		lx, _ := makeTestLexer(input)
		prev := uint32(0)
		for i := 0; i <= len(input)+1; i++ {
			tok := lx.Next()
			if tok.Span.Start < prev {
				t.Fatalf("spans went backwards at %v", tok)
			}
			prev = tok.Span.Start
			if tok.Kind == token.EOF || tok.Kind == token.Invalid {
				if (tok.Kind == token.Invalid) != (lx.Err() != nil) {
					t.Fatalf("Invalid token and Err disagree")
				}
				return
			}
		}
		t.Fatalf("lexer did not terminate on %q", input)
	})
}
