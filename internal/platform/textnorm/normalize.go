// Package textnorm canonicalizes free-text team and player names so that
// differently formatted spellings of the same name compare equal.
package textnorm

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var whitespaceRun = regexp.MustCompile(`\s+`)

// StripAccents decomposes s (NFKD) and drops every rune outside ASCII.
// Combining marks vanish with the rest, so "Atlético" becomes "Atletico"
// and symbols without an ASCII decomposition are removed.
func StripAccents(s string) string {
	if s == "" {
		return ""
	}
	t := transform.Chain(norm.NFKD, runes.Remove(runes.Predicate(func(r rune) bool {
		return r > unicode.MaxASCII
	})))
	out, _, err := transform.String(t, s)
	if err != nil {
		return ""
	}
	return out
}

// Normalize returns the join key form of a name: accent-folded, lower-case,
// hyphens as spaces, whitespace collapsed and trimmed. Empty input yields "".
// Normalize(Normalize(s)) == Normalize(s) for every s.
func Normalize(s string) string {
	if s == "" {
		return ""
	}
	s = strings.ToLower(StripAccents(s))
	s = strings.ReplaceAll(s, "-", " ")
	s = whitespaceRun.ReplaceAllString(s, " ")
	return strings.TrimSpace(s)
}

// Equal reports whether two names share the same normalized form.
func Equal(a, b string) bool {
	return Normalize(a) == Normalize(b)
}
