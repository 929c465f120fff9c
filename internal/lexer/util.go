package lexer

import (
	"fmt"
	"unicode/utf8"
)

// isSpace matches ASCII whitespace: space, tab, LF, FF and CR.
func isSpace(b byte) bool {
	return b == ' ' || b == '\t' || b == '\n' || b == '\f' || b == '\r'
}

func isDec(b byte) bool { return b >= '0' && b <= '9' }

func isAlpha(b byte) bool {
	return (b >= 'A' && b <= 'Z') || (b >= 'a' && b <= 'z')
}

func isAlnum(b byte) bool {
	return isAlpha(b) || isDec(b)
}

func describeByte(b byte) string {
	if b < utf8.RuneSelf && b >= 0x20 && b != 0x7f {
		return fmt.Sprintf("'%c'", b)
	}
	return fmt.Sprintf("byte 0x%02x", b)
}
