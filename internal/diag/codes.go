package diag

import (
	"fmt"
)

type Code uint16

const (
	UnknownCode Code = 0

	// Lexical
	LexInfo           Code = 1000
	LexUnknownChar    Code = 1001
	LexNumberOverflow Code = 1004

	// Syntax
	SynInfo             Code = 2000
	SynExpectExpression Code = 2001
	SynExpectOperator   Code = 2002
	SynUnclosedParen    Code = 2006
	SynTrailingInput    Code = 2007
	SynTooDeep          Code = 2008

	// Evaluation
	EvlInfo              Code = 3000
	EvlUnboundSymbol     Code = 3001
	EvlArity             Code = 3002
	EvlDivByZero         Code = 3003
	EvlNegativeExponent  Code = 3004
	EvlNegativeFactorial Code = 3005
	EvlOverflow          Code = 3006

	// IO
	IOLoadFileError Code = 4001
	IOConfigError   Code = 4002
)

var codeDescription = map[Code]string{
	UnknownCode:          "Unknown error",
	LexInfo:              "Lexical information",
	LexUnknownChar:       "Unknown character",
	LexNumberOverflow:    "Integer literal out of range",
	SynInfo:              "Syntax information",
	SynExpectExpression:  "Expected expression",
	SynExpectOperator:    "Expected operator",
	SynUnclosedParen:     "Unclosed parenthesis",
	SynTrailingInput:     "Unexpected input after expression",
	SynTooDeep:           "Expression nested too deeply",
	EvlInfo:              "Evaluation information",
	EvlUnboundSymbol:     "Symbol has no value",
	EvlArity:             "Wrong number of operands",
	EvlDivByZero:         "Division by zero",
	EvlNegativeExponent:  "Negative exponent",
	EvlNegativeFactorial: "Factorial of negative number",
	EvlOverflow:          "Integer overflow",
	IOLoadFileError:      "I/O load file error",
	IOConfigError:        "Invalid configuration",
}

func (c Code) ID() string {
	switch ic := int(c); {
	case ic >= 1000 && ic < 2000:
		return fmt.Sprintf("LEX%04d", ic)
	case ic >= 2000 && ic < 3000:
		return fmt.Sprintf("SYN%04d", ic)
	case ic >= 3000 && ic < 4000:
		return fmt.Sprintf("EVL%04d", ic)
	case ic >= 4000 && ic < 5000:
		return fmt.Sprintf("IO%04d", ic)
	}
	return "E0000"
}

func (c Code) Title() string {
	desc, ok := codeDescription[c]
	if !ok {
		return codeDescription[UnknownCode]
	}
	return desc
}

func (c Code) String() string {
	return fmt.Sprintf("[%s]: %s", c.ID(), c.Title())
}

// Kind groups codes by the phase that produced them.
type Kind uint8

const (
	KindUnknown Kind = iota
	// KindLex covers characters the lexer cannot start a token with.
	KindLex
	// KindNumberFormat covers integer literals that do not fit in int32.
	KindNumberFormat
	KindParse
	KindEval
	KindIO
)

func (k Kind) String() string {
	switch k {
	case KindLex:
		return "lex error"
	case KindNumberFormat:
		return "number format error"
	case KindParse:
		return "parse error"
	case KindEval:
		return "eval error"
	case KindIO:
		return "io error"
	}
	return "error"
}

// Kind classifies the code.
func (c Code) Kind() Kind {
	switch ic := int(c); {
	case c == LexNumberOverflow:
		return KindNumberFormat
	case ic >= 1000 && ic < 2000:
		return KindLex
	case ic >= 2000 && ic < 3000:
		return KindParse
	case ic >= 3000 && ic < 4000:
		return KindEval
	case ic >= 4000 && ic < 5000:
		return KindIO
	}
	return KindUnknown
}
