package diag

import (
	"errors"
	"fmt"
	"testing"

	"climb/internal/source"
)

func TestCodeIDAndKind(t *testing.T) {
	tests := []struct {
		code Code
		id   string
		kind Kind
	}{
		{LexUnknownChar, "LEX1001", KindLex},
		{LexNumberOverflow, "LEX1004", KindNumberFormat},
		{SynUnclosedParen, "SYN2006", KindParse},
		{EvlDivByZero, "EVL3003", KindEval},
		{IOLoadFileError, "IO4001", KindIO},
		{UnknownCode, "E0000", KindUnknown},
	}
	for _, tt := range tests {
		if got := tt.code.ID(); got != tt.id {
			t.Errorf("%d.ID() = %q, want %q", tt.code, got, tt.id)
		}
		if got := tt.code.Kind(); got != tt.kind {
			t.Errorf("%d.Kind() = %v, want %v", tt.code, got, tt.kind)
		}
	}
	if Code(1999).Title() != "Unknown error" {
		t.Errorf("unregistered code must fall back to unknown title")
	}
}

func TestBagLimitAndSort(t *testing.T) {
	b := NewBag(2)
	b.Add(New(SevError, SynExpectOperator, source.Span{Start: 5, End: 6}, "second"))
	b.Add(New(SevError, LexUnknownChar, source.Span{Start: 1, End: 2}, "first"))
	if b.Add(New(SevError, EvlArity, source.Span{}, "dropped")) {
		t.Fatal("bag must reject items beyond its limit")
	}
	b.Sort()
	if b.Items()[0].Message != "first" {
		t.Errorf("Sort did not order by start: %+v", b.Items())
	}
	if !b.HasErrors() {
		t.Error("bag with errors must report HasErrors")
	}
}

func TestBagNegativeAndHugeLimits(t *testing.T) {
	d := New(SevError, LexUnknownChar, source.Span{}, "x")
	if NewBag(-1).Add(d) {
		t.Error("negative limit must clamp to 0")
	}
	huge := NewBag(1 << 20)
	for i := 0; i < int(^uint16(0)); i++ {
		if !huge.Add(d) {
			t.Fatalf("huge bag rejected item %d", i)
		}
	}
	if huge.Add(d) {
		t.Error("huge limit must clamp to max uint16")
	}
}

func TestBagMergeAndDedup(t *testing.T) {
	a := NewBag(1)
	a.Add(New(SevError, LexUnknownChar, source.Span{Start: 1, End: 2}, "x"))
	b := NewBag(4)
	b.Add(New(SevError, LexUnknownChar, source.Span{Start: 1, End: 2}, "x again"))
	b.Add(New(SevError, SynExpectExpression, source.Span{Start: 3, End: 3}, "y"))
	a.Merge(b)
	if a.Len() != 3 {
		t.Fatalf("Merge len = %d, want 3", a.Len())
	}
	a.Dedup()
	if a.Len() != 2 {
		t.Fatalf("Dedup len = %d, want 2", a.Len())
	}
}

func TestReportBuilderEmitsOnce(t *testing.T) {
	bag := NewBag(10)
	rb := ReportError(BagReporter{Bag: bag}, SynUnclosedParen, source.Span{Start: 4, End: 4}, "expected ')'").
		WithNote(source.Span{Start: 0, End: 1}, "opened here")
	rb.Emit()
	rb.Emit()
	if bag.Len() != 1 {
		t.Fatalf("emitted %d times", bag.Len())
	}
	if len(bag.Items()[0].Notes) != 1 {
		t.Error("note lost")
	}
}

func TestErrorHelpers(t *testing.T) {
	err := Errorf(EvlDivByZero, source.Span{Start: 2, End: 5}, "division by zero")
	wrapped := fmt.Errorf("eval main.calc: %w", err)
	if CodeOf(wrapped) != EvlDivByZero || KindOf(wrapped) != KindEval {
		t.Fatalf("CodeOf/KindOf failed through wrapping")
	}
	if CodeOf(errors.New("plain")) != UnknownCode {
		t.Error("plain errors have no code")
	}
	if got := err.Error(); got != "eval error at 2: division by zero" {
		t.Errorf("Error() = %q", got)
	}
	var sink []Diagnostic
	ReportErr(reporterFunc(func(c Code, _ Severity, sp source.Span, msg string, _ []Note) {
		sink = append(sink, New(SevError, c, sp, msg))
	}), err)
	ReportErr(nil, err)
	if len(sink) != 1 || sink[0].Code != EvlDivByZero {
		t.Errorf("ReportErr forwarded %+v", sink)
	}
}

type reporterFunc func(Code, Severity, source.Span, string, []Note)

func (f reporterFunc) Report(c Code, s Severity, sp source.Span, m string, n []Note) {
	f(c, s, sp, m, n)
}

func TestFormatShort(t *testing.T) {
	fs := source.NewFileSet()
	id := fs.Add("./testdata/sample.calc", []byte("1 +\n(2"), 0)
	diags := []Diagnostic{
		New(SevError, SynUnclosedParen, source.Span{File: id, Start: 6, End: 6}, "expected ')'\nfound end").
			WithNote(source.Span{File: id, Start: 4, End: 5}, "opened here"),
		New(SevError, LexUnknownChar, source.Span{File: id, Start: 0, End: 1}, "unknown character"),
	}
	want := "error LEX1001 testdata/sample.calc:1:1 unknown character\n" +
		"note SYN2006 testdata/sample.calc:2:1 opened here\n" +
		"error SYN2006 testdata/sample.calc:2:3 expected ')' found end"
	if got := FormatShort(diags, fs, true); got != want {
		t.Fatalf("FormatShort:\nwant:\n%s\ngot:\n%s", want, got)
	}
}
