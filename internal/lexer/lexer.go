package lexer

import (
	"climb/internal/diag"
	"climb/internal/source"
	"climb/internal/token"
)

// Lexer turns file content into tokens on demand.
// After the first error it keeps returning an Invalid token.
type Lexer struct {
	file   *source.File
	cursor Cursor
	opts   Options
	look   *token.Token // one-token lookahead
	err    *diag.Error
	bad    token.Token
}

func New(file *source.File, opts Options) *Lexer {
	return &Lexer{
		file:   file,
		cursor: NewCursor(file),
		opts:   opts,
	}
}

// Next consumes and returns the next token. EOF is returned forever once
// the input is exhausted.
func (lx *Lexer) Next() token.Token {
	if lx.look != nil {
		tok := *lx.look
		lx.look = nil
		return tok
	}
	if lx.err != nil {
		return lx.bad
	}

	lx.skipWhitespace()
	if lx.cursor.EOF() {
		return token.Token{Kind: token.EOF, Span: lx.emptySpan()}
	}

	ch := lx.cursor.Peek()
	switch {
	case isDec(ch):
		return lx.scanNumber()
	case isAlpha(ch):
		return lx.scanIdent()
	default:
		return lx.scanOperator()
	}
}

// Peek returns the next token without consuming it.
func (lx *Lexer) Peek() token.Token {
	if lx.look != nil {
		return *lx.look
	}
	t := lx.Next()
	lx.look = &t
	return t
}

// Err returns the lexical error that stopped the lexer, or nil.
func (lx *Lexer) Err() error {
	if lx.err == nil {
		return nil
	}
	return lx.err
}

// Offset is the byte offset of the next unread byte.
func (lx *Lexer) Offset() uint32 {
	return lx.cursor.Off
}

func (lx *Lexer) File() *source.File {
	return lx.file
}

func (lx *Lexer) emptySpan() source.Span {
	return source.Span{File: lx.file.ID, Start: lx.cursor.Off, End: lx.cursor.Off}
}

func (lx *Lexer) text(sp source.Span) string {
	return string(lx.file.Content[sp.Start:sp.End])
}

// fail records err, reports it and returns the sticky Invalid token.
func (lx *Lexer) fail(err *diag.Error) token.Token {
	lx.err = err
	lx.bad = token.Token{Kind: token.Invalid, Span: err.Span, Text: lx.text(err.Span)}
	diag.ReportErr(lx.opts.Reporter, err)
	return lx.bad
}

func (lx *Lexer) skipWhitespace() {
	lx.cursor.BumpWhile(isSpace)
}
