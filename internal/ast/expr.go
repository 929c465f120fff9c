package ast

import (
	"climb/internal/source"
)

type ExprKind uint8

const (
	// ExprInt is an integer leaf.
	ExprInt ExprKind = iota
	// ExprSym is a symbol leaf.
	ExprSym
	// ExprOp is an operator applied to one or more children.
	ExprOp
)

func (k ExprKind) String() string {
	switch k {
	case ExprInt:
		return "Int"
	case ExprSym:
		return "Sym"
	case ExprOp:
		return "Op"
	}
	return "?"
}

// Expr is the common header; Payload indexes the per-kind arena.
type Expr struct {
	Kind    ExprKind
	Span    source.Span
	Payload PayloadID
}

type ExprIntData struct {
	Value int32
}

type ExprSymData struct {
	Name source.StringID
}

type ExprOpData struct {
	Op       Op
	Children []ExprID
}
