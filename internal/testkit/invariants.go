// Package testkit holds structural checks shared by parser, driver and
// fuzz tests.
package testkit

import (
	"fmt"

	"fortio.org/safecast"

	"climb/internal/ast"
	"climb/internal/source"
)

// CheckTreeInvariants runs the span invariants of a parsed tree:
// 1) every node span is non-empty, belongs to sf and lies within its content
// 2) an operator node span covers the spans of all its children
// 3) children appear in source order without overlapping
// 4) no node is reachable twice
func CheckTreeInvariants(tree *ast.Tree, sf *source.File) error {
	if tree == nil || tree.Exprs == nil || sf == nil {
		return fmt.Errorf("nil tree or file")
	}
	if tree.Exprs.Get(tree.Root) == nil {
		return fmt.Errorf("root %d not found", tree.Root)
	}
	lenContent, err := safecast.Conv[uint32](len(sf.Content))
	if err != nil {
		return fmt.Errorf("len content overflow: %w", err)
	}

	seen := make(map[ast.ExprID]bool)
	var walkErr error
	tree.Walk(tree.Root, func(id ast.ExprID, expr *ast.Expr) bool {
		walkErr = checkNode(tree, id, expr, sf.ID, lenContent, seen)
		return walkErr == nil
	})
	return walkErr
}

func checkNode(tree *ast.Tree, id ast.ExprID, expr *ast.Expr, file source.FileID, lenContent uint32, seen map[ast.ExprID]bool) error {
	if seen[id] {
		return fmt.Errorf("node %d reachable twice", id)
	}
	seen[id] = true

	sp := expr.Span
	if sp.End <= sp.Start {
		return fmt.Errorf("node %d: empty span %v", id, sp)
	}
	if sp.File != file {
		return fmt.Errorf("node %d: span points to file %d, want %d", id, sp.File, file)
	}
	if sp.End > lenContent {
		return fmt.Errorf("node %d: span end beyond content: %d > %d", id, sp.End, lenContent)
	}
	if expr.Kind != ast.ExprOp {
		return nil
	}

	data, ok := tree.Exprs.OpData(id)
	if !ok {
		return fmt.Errorf("node %d: missing operator payload", id)
	}
	var prev source.Span
	for i, child := range data.Children {
		csp := tree.Exprs.Get(child).Span
		if csp.Start < sp.Start || csp.End > sp.End {
			return fmt.Errorf("node %d (%s): child span %v escapes %v", id, data.Op.Name(), csp, sp)
		}
		if i > 0 && csp.Start < prev.End {
			return fmt.Errorf("node %d (%s): child spans %v and %v overlap", id, data.Op.Name(), prev, csp)
		}
		prev = csp
	}
	return nil
}
