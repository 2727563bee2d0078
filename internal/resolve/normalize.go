package resolve

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var stripAccents = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// normalize folds a free-text reference into its canonical matching form:
// lowercase, accents stripped (Dončić -> doncic), punctuation replaced by
// spaces, whitespace collapsed.
func normalize(s string) string {
	folded, _, _ := transform.String(stripAccents, strings.ToLower(s))

	var b strings.Builder
	b.Grow(len(folded))
	lastSpace := true
	for _, r := range folded {
		switch {
		case unicode.IsLetter(r) || unicode.IsDigit(r):
			b.WriteRune(r)
			lastSpace = false
		default:
			if !lastSpace {
				b.WriteByte(' ')
				lastSpace = true
			}
		}
	}
	return strings.TrimSpace(b.String())
}

func tokens(s string) []string {
	if s == "" {
		return nil
	}
	return strings.Fields(s)
}
