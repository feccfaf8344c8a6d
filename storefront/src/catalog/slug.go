package catalog

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var dStroke = strings.NewReplacer("đ", "d", "Đ", "d")

// Slugify turns a Vietnamese label into a URL path segment:
// "Lúa - Gạo Lứt" becomes "lua-gao-lut".
func Slugify(s string) string {
	s = fold(strings.TrimSpace(s))

	var b strings.Builder
	dash := false
	for _, r := range s {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
			dash = false
			continue
		}
		if b.Len() > 0 && !dash {
			b.WriteByte('-')
			dash = true
		}
	}
	return strings.TrimSuffix(b.String(), "-")
}

// fold lowercases s and drops Vietnamese diacritics, so "Gạo Nếp" and
// "gao nep" compare equal.
func fold(s string) string {
	s = dStroke.Replace(strings.ToLower(s))

	// transformers carry state, so build one per call
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	if stripped, _, err := transform.String(t, s); err == nil {
		s = stripped
	}
	return s
}
