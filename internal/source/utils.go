package source

import (
	"bytes"
	"path/filepath"
	"slices"
	"sort"

	"golang.org/x/text/unicode/norm"
)

// normalizeCRLF replaces every \r\n with \n and leaves lone \r alone.
func normalizeCRLF(content []byte) ([]byte, bool) {
	if !slices.Contains(content, '\r') {
		return content, false
	}
	out := make([]byte, 0, len(content))
	for i := 0; i < len(content); i++ {
		if content[i] == '\r' && i+1 < len(content) && content[i+1] == '\n' {
			continue
		}
		out = append(out, content[i])
	}
	return out, len(out) != len(content)
}

func removeBOM(content []byte) ([]byte, bool) {
	if bytes.HasPrefix(content, []byte{0xEF, 0xBB, 0xBF}) {
		return content[3:], true
	}
	return content, false
}

// normalizeUnicode applies the requested form. Pure ASCII input is returned as is.
func normalizeUnicode(content []byte, n Normalization) ([]byte, bool) {
	var form norm.Form
	switch n {
	case NormNFC:
		form = norm.NFC
	case NormNFKC:
		form = norm.NFKC
	default:
		return content, false
	}
	if form.IsNormal(content) {
		return content, false
	}
	out := form.Bytes(content)
	return out, !bytes.Equal(out, content)
}

// ParseNormalization maps a config value to a Normalization.
func ParseNormalization(s string) (Normalization, bool) {
	switch s {
	case "", "none":
		return NormNone, true
	case "nfc":
		return NormNFC, true
	case "nfkc":
		return NormNFKC, true
	}
	return NormNone, false
}

func buildLineIndex(content []byte) []uint32 {
	out := make([]uint32, 0, bytes.Count(content, []byte{'\n'}))
	for i, b := range content {
		if b == '\n' {
			out = append(out, uint32(i)) // #nosec G115 -- file size is bounded by FileSet.Add
		}
	}
	return out
}

// toLineCol maps a byte offset to a 1-based line and column.
// lineIdx holds the offsets of every '\n' in ascending order.
func toLineCol(lineIdx []uint32, off uint32) LineCol {
	// number of newlines strictly before off
	line := sort.Search(len(lineIdx), func(i int) bool { return lineIdx[i] >= off })
	var startOff uint32
	if line > 0 {
		startOff = lineIdx[line-1] + 1
	}
	return LineCol{Line: uint32(line + 1), Col: off - startOff + 1} // #nosec G115
}

func normalizePath(p string) string {
	return filepath.ToSlash(filepath.Clean(p))
}
