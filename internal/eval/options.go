package eval

import (
	"fmt"

	"climb/internal/trace"
)

// Overflow selects what happens when a result does not fit in int32.
type Overflow uint8

const (
	// OverflowWrap wraps results modulo 2^32.
	OverflowWrap Overflow = iota
	// OverflowTrap fails with EvlOverflow.
	OverflowTrap
)

func (o Overflow) String() string {
	if o == OverflowTrap {
		return "trap"
	}
	return "wrap"
}

// ParseOverflow converts a flag or config value.
func ParseOverflow(s string) (Overflow, error) {
	switch s {
	case "", "wrap":
		return OverflowWrap, nil
	case "trap":
		return OverflowTrap, nil
	}
	return OverflowWrap, fmt.Errorf("invalid overflow mode: %q (expected: wrap|trap)", s)
}

type Options struct {
	Overflow Overflow
	// Tracer receives one node-scope event per evaluated operator. May be nil.
	Tracer trace.Tracer
	// Parent is the span id node events are attached to.
	Parent uint64
}
