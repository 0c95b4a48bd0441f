package markdown

import (
	"strconv"
	"strings"
	"unicode"
)

// Slugify converts a heading text into its GitHub-style anchor:
// lowercase, spaces collapsed to hyphens, punctuation stripped,
// letters, digits, hyphens and underscores preserved.
func Slugify(text string) string {
	var sb strings.Builder
	for _, r := range strings.ToLower(strings.TrimSpace(text)) {
		switch {
		case unicode.IsLetter(r) || unicode.IsDigit(r) || r == '-' || r == '_':
			sb.WriteRune(r)
		case unicode.IsSpace(r):
			sb.WriteRune('-')
		}
		// Everything else (punctuation, symbols) is dropped.
	}
	return sb.String()
}

// slugger deduplicates slugs within a single document the way GitHub does:
// repeated headings get "-1", "-2", ... suffixes.
type slugger struct {
	seen map[string]int
}

func newSlugger() *slugger {
	return &slugger{seen: make(map[string]int)}
}

func (s *slugger) slug(text string) string {
	base := Slugify(text)
	n, dup := s.seen[base]
	s.seen[base] = n + 1
	if !dup {
		return base
	}
	return base + "-" + strconv.Itoa(n)
}
