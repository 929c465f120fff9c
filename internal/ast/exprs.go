package ast

import (
	"climb/internal/source"
)

// Exprs manages allocation of expressions.
type Exprs struct {
	Arena   *Arena[Expr]
	Ints    *Arena[ExprIntData]
	Syms    *Arena[ExprSymData]
	Ops     *Arena[ExprOpData]
	Strings *source.Interner
}

// NewExprs creates per-kind arenas with capHint initial capacity (64 when 0).
func NewExprs(capHint uint) *Exprs {
	if capHint == 0 {
		capHint = 1 << 6
	}
	return &Exprs{
		Arena:   NewArena[Expr](capHint),
		Ints:    NewArena[ExprIntData](capHint),
		Syms:    NewArena[ExprSymData](capHint / 4),
		Ops:     NewArena[ExprOpData](capHint),
		Strings: source.NewInterner(),
	}
}

func (e *Exprs) new(kind ExprKind, span source.Span, payload PayloadID) ExprID {
	return ExprID(e.Arena.Allocate(Expr{
		Kind:    kind,
		Span:    span,
		Payload: payload,
	}))
}

func (e *Exprs) Get(id ExprID) *Expr {
	return e.Arena.Get(uint32(id))
}

func (e *Exprs) NewInt(span source.Span, v int32) ExprID {
	payload := PayloadID(e.Ints.Allocate(ExprIntData{Value: v}))
	return e.new(ExprInt, span, payload)
}

func (e *Exprs) NewSym(span source.Span, name string) ExprID {
	payload := PayloadID(e.Syms.Allocate(ExprSymData{Name: e.Strings.Intern(name)}))
	return e.new(ExprSym, span, payload)
}

// NewOp allocates an operator node. The children slice is retained.
func (e *Exprs) NewOp(span source.Span, op Op, children ...ExprID) ExprID {
	payload := PayloadID(e.Ops.Allocate(ExprOpData{Op: op, Children: children}))
	return e.new(ExprOp, span, payload)
}

func (e *Exprs) Int(id ExprID) (*ExprIntData, bool) {
	expr := e.Get(id)
	if expr == nil || expr.Kind != ExprInt {
		return nil, false
	}
	return e.Ints.Get(uint32(expr.Payload)), true
}

func (e *Exprs) Sym(id ExprID) (*ExprSymData, bool) {
	expr := e.Get(id)
	if expr == nil || expr.Kind != ExprSym {
		return nil, false
	}
	return e.Syms.Get(uint32(expr.Payload)), true
}

func (e *Exprs) OpData(id ExprID) (*ExprOpData, bool) {
	expr := e.Get(id)
	if expr == nil || expr.Kind != ExprOp {
		return nil, false
	}
	return e.Ops.Get(uint32(expr.Payload)), true
}

// SymName returns the text of a symbol leaf.
func (e *Exprs) SymName(id ExprID) (string, bool) {
	data, ok := e.Sym(id)
	if !ok {
		return "", false
	}
	return e.Strings.Lookup(data.Name)
}
