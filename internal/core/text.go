package core

import (
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"
)

// CleanText normalizes imported free text to printable ASCII: the
// string is Unicode-decomposed, combining diacritical marks are
// dropped ("Café" -> "Cafe"), anything outside 0x20-0x7E is removed
// and surrounding whitespace is trimmed.
func CleanText(s string) string {
	decomposed := norm.NFD.String(s)
	var b strings.Builder
	b.Grow(len(decomposed))
	for _, r := range decomposed {
		if unicode.Is(unicode.Mn, r) {
			continue
		}
		if r < 0x20 || r > 0x7E {
			continue
		}
		b.WriteRune(r)
	}
	return strings.TrimSpace(b.String())
}
