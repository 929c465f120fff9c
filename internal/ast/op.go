package ast

// Op is an arithmetic operator carried by an interior node.
type Op uint8

const (
	OpAdd Op = iota
	OpSub
	OpMul
	OpDiv
	OpExp
	OpFac
)

func (op Op) String() string {
	switch op {
	case OpAdd:
		return "+"
	case OpSub:
		return "-"
	case OpMul:
		return "*"
	case OpDiv:
		return "/"
	case OpExp:
		return "^"
	case OpFac:
		return "!"
	}
	return "?"
}

// Name is the long form used in JSON output.
func (op Op) Name() string {
	switch op {
	case OpAdd:
		return "add"
	case OpSub:
		return "sub"
	case OpMul:
		return "mul"
	case OpDiv:
		return "div"
	case OpExp:
		return "exp"
	case OpFac:
		return "fac"
	}
	return "unknown"
}
