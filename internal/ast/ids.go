package ast

// ExprID indexes Exprs.Arena; ids start at 1 so the zero value means "none".
type ExprID uint32

// NoExprID marks a missing node, e.g. the root of a failed parse.
const NoExprID ExprID = 0

func (id ExprID) IsValid() bool { return id != NoExprID }

// PayloadID indexes the per-kind payload arena (Ints, Syms or Ops) that
// Expr.Kind selects.
type PayloadID uint32
