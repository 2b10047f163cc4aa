package content

import (
	"regexp"
	"strings"
	"unicode"

	"courtside/config"
)

var newlineRuns = regexp.MustCompile(`\n+`)

// Slugify converts a title into a URL-safe identifier: lower-cased, every
// rune outside a-z/0-9/whitespace/hyphen dropped, whitespace and hyphen runs
// collapsed to a single hyphen, no leading or trailing hyphens. An input
// with no alphanumeric runes yields an empty slug; callers must guard.
func Slugify(title string) string {
	var b strings.Builder
	pendingSep := false
	for _, r := range strings.ToLower(title) {
		switch {
		case (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9'):
			if pendingSep && b.Len() > 0 {
				b.WriteByte('-')
			}
			pendingSep = false
			b.WriteRune(r)
		case unicode.IsSpace(r) || r == '-':
			pendingSep = true
		}
	}
	return b.String()
}

// Excerpt derives a length-bounded summary from markdown content. Emphasis,
// heading and code markers are stripped, newline runs collapse to a space,
// then whole sentences are accumulated greedily while the running length
// stays under max. When no sentence fits, the cleaned text is hard-truncated
// at max with a trailing ellipsis. The result never exceeds
// max + len(ExcerptEllipsis).
func Excerpt(markdown string, max int) string {
	clean := strings.Map(func(r rune) rune {
		switch r {
		case '#', '*', '_', '`':
			return -1
		}
		return r
	}, markdown)
	clean = newlineRuns.ReplaceAllString(clean, " ")

	var b strings.Builder
	for _, sentence := range strings.Split(clean, ". ") {
		if b.Len()+len(sentence) >= max {
			break
		}
		b.WriteString(sentence)
		b.WriteString(". ")
	}

	excerpt := strings.TrimSpace(b.String())
	if excerpt == "" {
		runes := []rune(clean)
		if len(runes) > max {
			return strings.TrimSpace(string(runes[:max])) + config.ExcerptEllipsis
		}
		return strings.TrimSpace(clean)
	}
	return excerpt
}
