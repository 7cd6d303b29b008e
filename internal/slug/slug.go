// Package slug derives filesystem-safe identifiers from user-supplied
// set names. Sanitization is deterministic and total, but not injective:
// distinct display names may collide on the same slug.
package slug

import (
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"
)

// Sanitize normalizes text to NFKD, strips combining marks, replaces
// every character outside [A-Za-z0-9_-] with an underscore, and trims
// leading/trailing underscores.
func Sanitize(text string) string {
	decomposed := norm.NFKD.String(text)

	var b strings.Builder
	b.Grow(len(decomposed))
	for _, r := range decomposed {
		if unicode.Is(unicode.Mn, r) {
			continue
		}
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '_', r == '-':
			b.WriteRune(r)
		default:
			b.WriteByte('_')
		}
	}
	return strings.Trim(b.String(), "_")
}
