package scan

import (
	"fmt"
	"regexp"
	"strings"
	"unicode"
)

// Inline markup that must not leak into slugs. Link and image syntax keeps
// the visible text, HTML tags disappear entirely.
var (
	imageMarkupRe = regexp.MustCompile(`!\[([^\]]*)\]\([^)]*\)`)
	linkMarkupRe  = regexp.MustCompile(`\[([^\]]*)\]\([^)]*\)`)
	refMarkupRe   = regexp.MustCompile(`\[([^\]]*)\]\[[^\]]*\]`)
	htmlTagRe     = regexp.MustCompile(`<[^>]*>`)
	emphasisChars = strings.NewReplacer("`", "", "*", "", "~", "")
)

// Slugify derives a GitHub-style anchor slug from heading text: markup is
// stripped, the result lowercased, letters/digits/hyphens/underscores kept,
// whitespace turned into hyphens one-for-one, everything else dropped.
// Empty input yields an empty slug, which is still a valid anchor.
func Slugify(text string) string {
	s := stripMarkup(text)
	s = strings.ToLower(s)

	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		switch {
		case unicode.IsLetter(r) || unicode.IsDigit(r) || r == '-' || r == '_':
			b.WriteRune(r)
		case unicode.IsSpace(r):
			b.WriteByte('-')
		}
	}
	return b.String()
}

func stripMarkup(s string) string {
	s = imageMarkupRe.ReplaceAllString(s, "$1")
	s = linkMarkupRe.ReplaceAllString(s, "$1")
	s = refMarkupRe.ReplaceAllString(s, "$1")
	s = htmlTagRe.ReplaceAllString(s, "")
	s = emphasisChars.Replace(s)
	return strings.TrimSpace(s)
}

// slugger deduplicates slugs within one document: the Nth repeat of a base
// slug gets an "-N" suffix, in encounter order.
type slugger struct {
	seen map[string]int
}

func newSlugger() *slugger {
	return &slugger{seen: make(map[string]int)}
}

func (s *slugger) slug(text string) string {
	base := Slugify(text)
	n := s.seen[base]
	s.seen[base] = n + 1
	if n == 0 {
		return base
	}
	return fmt.Sprintf("%s-%d", base, n)
}
