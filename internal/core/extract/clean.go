package extract

import (
	"strings"
	"unicode"
)

// CleanText drops the BOM, replacement and non-printable runes and collapses
// every whitespace run into a single space. CleanText(CleanText(s)) ==
// CleanText(s).
func CleanText(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	space := false
	for _, r := range s {
		switch {
		case r == '\uFEFF' || r == unicode.ReplacementChar:
			continue
		case unicode.IsSpace(r):
			space = true
			continue
		case !unicode.IsPrint(r):
			continue
		}
		if space && b.Len() > 0 {
			b.WriteByte(' ')
		}
		space = false
		b.WriteRune(r)
	}
	return b.String()
}
