package token

// Kind represents the category of a source token.
type Kind uint8

const (
	// Invalid indicates an erroneous token.
	Invalid Kind = iota
	// EOF marks the end of the source input.
	EOF

	// IntLit is a decimal integer literal.
	IntLit
	// Ident is a symbol: a letter followed by letters or digits.
	Ident

	Plus   // +
	Minus  // -
	Star   // *
	Slash  // /
	Caret  // ^
	Bang   // !
	LParen // (
	RParen // )
)

var kindNames = [...]string{
	Invalid: "Invalid",
	EOF:     "EOF",
	IntLit:  "IntLit",
	Ident:   "Ident",
	Plus:    "Plus",
	Minus:   "Minus",
	Star:    "Star",
	Slash:   "Slash",
	Caret:   "Caret",
	Bang:    "Bang",
	LParen:  "LParen",
	RParen:  "RParen",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "Kind(?)"
}

// Symbol returns the punctuation text of an operator kind, or "" for other kinds.
func (k Kind) Symbol() string {
	switch k {
	case Plus:
		return "+"
	case Minus:
		return "-"
	case Star:
		return "*"
	case Slash:
		return "/"
	case Caret:
		return "^"
	case Bang:
		return "!"
	case LParen:
		return "("
	case RParen:
		return ")"
	default:
		return ""
	}
}
