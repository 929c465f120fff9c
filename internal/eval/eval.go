// Package eval reduces an expression tree to a 32-bit integer.
package eval

import (
	"strconv"

	"climb/internal/ast"
	"climb/internal/diag"
	"climb/internal/source"
	"climb/internal/trace"
)

var emptySpan source.Span

type evaluator struct {
	tree *ast.Tree
	opts Options
}

// Eval computes the value of tree in post-order. Symbols have no value and
// are an error, as are division by zero, negative exponents, negative
// factorials, malformed operator arity and, in trap mode, overflow.
func Eval(tree *ast.Tree, opts Options) (int32, error) {
	if tree == nil || tree.Exprs == nil {
		return 0, diag.Errorf(diag.EvlArity, emptySpan, "nothing to evaluate")
	}
	if opts.Tracer == nil {
		opts.Tracer = trace.Nop
	}
	e := &evaluator{tree: tree, opts: opts}
	v, err := e.eval(tree.Root)
	if err != nil {
		return 0, err
	}
	return v, nil
}

func (e *evaluator) eval(id ast.ExprID) (int32, *diag.Error) {
	exprs := e.tree.Exprs
	expr := exprs.Get(id)
	if expr == nil {
		return 0, diag.Errorf(diag.EvlArity, emptySpan, "missing operand")
	}

	switch expr.Kind {
	case ast.ExprInt:
		data, _ := exprs.Int(id)
		return data.Value, nil
	case ast.ExprSym:
		name, _ := exprs.SymName(id)
		return 0, diag.Errorf(diag.EvlUnboundSymbol, expr.Span, "cannot evaluate symbol %s", name)
	}

	data, ok := exprs.OpData(id)
	if !ok {
		return 0, diag.Errorf(diag.EvlArity, expr.Span, "unknown node kind %s", expr.Kind)
	}
	args := make([]int32, len(data.Children))
	for i, child := range data.Children {
		v, err := e.eval(child)
		if err != nil {
			return 0, err
		}
		args[i] = v
	}

	v, err := e.apply(data.Op, args, id, expr)
	if err != nil {
		return 0, err
	}
	if e.opts.Tracer.Enabled() {
		trace.Point(e.opts.Tracer, trace.ScopeNode, data.Op.Name(), strconv.FormatInt(int64(v), 10), e.opts.Parent)
	}
	return v, nil
}

func (e *evaluator) apply(op ast.Op, args []int32, id ast.ExprID, expr *ast.Expr) (int32, *diag.Error) {
	overflow := func() (int32, *diag.Error) {
		return 0, diag.Errorf(diag.EvlOverflow, expr.Span, "result of %s overflows int32", e.tree.Format(id))
	}

	switch op {
	case ast.OpAdd:
		if len(args) == 0 {
			return 0, arityError(op, expr, "at least 1", len(args))
		}
		acc := args[0]
		for _, v := range args[1:] {
			var ok bool
			if acc, ok = e.add(acc, v); !ok {
				return overflow()
			}
		}
		return acc, nil

	case ast.OpSub:
		switch len(args) {
		case 1:
			v, ok := e.neg(args[0])
			if !ok {
				return overflow()
			}
			return v, nil
		case 2:
			v, ok := e.sub(args[0], args[1])
			if !ok {
				return overflow()
			}
			return v, nil
		}
		return 0, arityError(op, expr, "1 or 2", len(args))

	case ast.OpMul:
		if len(args) == 0 {
			return 0, arityError(op, expr, "at least 1", len(args))
		}
		acc := args[0]
		for _, v := range args[1:] {
			var ok bool
			if acc, ok = e.mul(acc, v); !ok {
				return overflow()
			}
		}
		return acc, nil

	case ast.OpDiv:
		if len(args) != 2 {
			return 0, arityError(op, expr, "2", len(args))
		}
		if args[1] == 0 {
			return 0, diag.Errorf(diag.EvlDivByZero, expr.Span, "division by zero")
		}
		v, ok := e.div(args[0], args[1])
		if !ok {
			return overflow()
		}
		return v, nil

	case ast.OpExp:
		if len(args) != 2 {
			return 0, arityError(op, expr, "2", len(args))
		}
		if args[1] < 0 {
			return 0, diag.Errorf(diag.EvlNegativeExponent, expr.Span, "negative exponent %d", args[1])
		}
		v, ok := e.pow(args[0], args[1])
		if !ok {
			return overflow()
		}
		return v, nil

	case ast.OpFac:
		if len(args) != 1 {
			return 0, arityError(op, expr, "1", len(args))
		}
		if args[0] < 0 {
			return 0, diag.Errorf(diag.EvlNegativeFactorial, expr.Span, "factorial of negative number %d", args[0])
		}
		v, ok := e.factorial(args[0])
		if !ok {
			return overflow()
		}
		return v, nil
	}
	return 0, diag.Errorf(diag.EvlArity, expr.Span, "unknown operator %s", op)
}

func arityError(op ast.Op, expr *ast.Expr, want string, got int) *diag.Error {
	return diag.Errorf(diag.EvlArity, expr.Span, "operator %s takes %s operand(s), got %d", op, want, got)
}
