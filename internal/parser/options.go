package parser

import "climb/internal/diag"

// DefaultMaxDepth bounds nesting of parentheses and operators and the
// height of the resulting tree.
const DefaultMaxDepth = 10000

type Options struct {
	// Reporter receives the error that stopped the parse. May be nil.
	Reporter diag.Reporter
	// Strict rejects tokens left after the top-level expression.
	Strict bool
	// MaxDepth limits parser recursion and tree height; 0 means DefaultMaxDepth.
	MaxDepth int
}

func (o Options) maxDepth() int {
	if o.MaxDepth <= 0 {
		return DefaultMaxDepth
	}
	return o.MaxDepth
}
