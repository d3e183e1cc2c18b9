package types

import (
	"strings"
	"unicode"
)

// maxSlugLength caps document identifiers derived from titles.
const maxSlugLength = 35

// Slug derives a document identifier from a title: lowercase, alphanumeric
// runs joined by single dashes, capped at 35 characters. When truncation
// would cut inside a word, the slug is shortened to the last full word unless
// that would drop more than half of it.
func Slug(title string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(title) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteRune(r)
		} else {
			b.WriteRune('-')
		}
	}

	var parts []string
	for _, p := range strings.Split(b.String(), "-") {
		if p != "" {
			parts = append(parts, p)
		}
	}
	slug := strings.Join(parts, "-")

	runes := []rune(slug)
	if len(runes) <= maxSlugLength {
		return slug
	}

	truncated := string(runes[:maxSlugLength])
	if i := strings.LastIndex(truncated, "-"); i > maxSlugLength/2 {
		return truncated[:i]
	}
	return strings.TrimSuffix(truncated, "-")
}
