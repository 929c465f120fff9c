package ast

import (
	"strconv"
	"strings"
)

// Tree is a parsed expression: the arena plus its root.
type Tree struct {
	Exprs *Exprs
	Root  ExprID
}

// String renders the fully parenthesised prefix form, e.g. "(+ 1 (* 2 3))".
func (t *Tree) String() string {
	if t == nil || t.Exprs == nil || !t.Root.IsValid() {
		return ""
	}
	var sb strings.Builder
	t.write(&sb, t.Root)
	return sb.String()
}

// Format renders the subtree rooted at id.
func (t *Tree) Format(id ExprID) string {
	var sb strings.Builder
	t.write(&sb, id)
	return sb.String()
}

func (t *Tree) write(sb *strings.Builder, id ExprID) {
	expr := t.Exprs.Get(id)
	if expr == nil {
		sb.WriteString("<nil>")
		return
	}
	switch expr.Kind {
	case ExprInt:
		data, _ := t.Exprs.Int(id)
		sb.WriteString(strconv.FormatInt(int64(data.Value), 10))
	case ExprSym:
		name, _ := t.Exprs.SymName(id)
		sb.WriteString(name)
	case ExprOp:
		data, _ := t.Exprs.OpData(id)
		sb.WriteByte('(')
		sb.WriteString(data.Op.String())
		for _, child := range data.Children {
			sb.WriteByte(' ')
			t.write(sb, child)
		}
		sb.WriteByte(')')
	}
}

// Walk visits every node below and including id in post-order.
// Returning false from fn stops the walk.
func (t *Tree) Walk(id ExprID, fn func(id ExprID, expr *Expr) bool) bool {
	expr := t.Exprs.Get(id)
	if expr == nil {
		return true
	}
	if data, ok := t.Exprs.OpData(id); ok {
		for _, child := range data.Children {
			if !t.Walk(child, fn) {
				return false
			}
		}
	}
	return fn(id, expr)
}

// Len counts the nodes reachable from the root.
func (t *Tree) Len() int {
	n := 0
	t.Walk(t.Root, func(ExprID, *Expr) bool {
		n++
		return true
	})
	return n
}

// Depth is the number of nodes on the longest root-to-leaf path.
func (t *Tree) Depth() int {
	return t.depth(t.Root)
}

func (t *Tree) depth(id ExprID) int {
	if t.Exprs.Get(id) == nil {
		return 0
	}
	best := 0
	if data, ok := t.Exprs.OpData(id); ok {
		for _, child := range data.Children {
			best = max(best, t.depth(child))
		}
	}
	return best + 1
}
