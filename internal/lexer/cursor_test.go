package lexer

import (
	"testing"

	"climb/internal/source"
)

func TestCursor(t *testing.T) {
	fs := source.NewFileSet()
	c := NewCursor(fs.Get(fs.AddVirtual("c", []byte("ab12"))))
	m := c.Mark()
	if c.Peek() != 'a' || c.Bump() != 'a' || c.Off != 1 {
		t.Fatalf("bump failed at %d", c.Off)
	}
	c.BumpWhile(isAlpha)
	if c.Off != 2 {
		t.Fatalf("BumpWhile stopped at %d", c.Off)
	}
	if sp := c.SpanFrom(m); sp.Start != 0 || sp.End != 2 {
		t.Errorf("SpanFrom = %v", sp)
	}
	c.BumpWhile(isDec)
	if !c.EOF() || c.Peek() != 0 || c.Bump() != 0 {
		t.Error("cursor must saturate at the end")
	}
}
