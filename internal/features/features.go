// Package features turns free-text product titles into the canonical form
// shared by the rule engine and the trained vectorizer.
package features

import (
	"strings"
	"unicode"
)

// Normalize lower-cases s, drops everything except ASCII letters and
// whitespace, and collapses whitespace runs into single spaces.
// It never fails and Normalize(Normalize(s)) == Normalize(s).
func Normalize(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range strings.ToLower(s) {
		switch {
		case r >= 'a' && r <= 'z':
			b.WriteRune(r)
		case unicode.IsSpace(r):
			b.WriteByte(' ')
		}
	}
	return strings.Join(strings.Fields(b.String()), " ")
}

// NormalizeAll normalizes each keyword, dropping those that normalize to empty
func NormalizeAll(keywords []string) []string {
	out := make([]string, 0, len(keywords))
	for _, k := range keywords {
		if n := Normalize(k); n != "" {
			out = append(out, n)
		}
	}
	return out
}

// Title carries a raw title alongside its normalized form
type Title struct {
	Raw        string
	Normalized string
}

// NewTitle normalizes raw once for every downstream consumer
func NewTitle(raw string) Title {
	return Title{Raw: raw, Normalized: Normalize(raw)}
}

// WordCount returns the number of whitespace-delimited words in the raw title
func (t Title) WordCount() int {
	return len(strings.Fields(t.Raw))
}

// Tokens splits the normalized title into words
func (t Title) Tokens() []string {
	return strings.Fields(t.Normalized)
}
