// Package textnorm holds the string normalisation shared by column names and
// free-text cells: diacritic stripping, identifier folding and symbol removal.
package textnorm

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var (
	nonIdent    = regexp.MustCompile(`[^a-zA-Z0-9_]`)
	underscores = regexp.MustCompile(`_+`)
	nonAlnum    = regexp.MustCompile(`[^a-zA-Z0-9\s]`)
	spaces      = regexp.MustCompile(`\s+`)
)

// StripAccents decomposes s (NFKD), drops combining marks and anything left
// outside ASCII. "São Paulo" -> "Sao Paulo", "ﬁ" -> "fi".
func StripAccents(s string) string {
	t := transform.Chain(norm.NFKD, runes.Remove(runes.In(unicode.Mn)), runes.Remove(runes.Predicate(nonASCII)))
	out, _, err := transform.String(t, s)
	if err != nil {
		return s
	}
	return out
}

func nonASCII(r rune) bool { return r > unicode.MaxASCII }

// Identifier folds an arbitrary header into a lowercase snake_case ASCII name
// with no leading, trailing or repeated underscores. It may return "".
func Identifier(s string) string {
	s = StripAccents(s)
	s = nonIdent.ReplaceAllString(s, "_")
	s = strings.ToLower(s)
	s = underscores.ReplaceAllString(s, "_")
	return strings.Trim(s, "_")
}

// CleanText trims, strips accents, removes everything but letters, digits and
// whitespace, then collapses whitespace runs to one space.
func CleanText(s string) string {
	s = strings.TrimSpace(s)
	s = StripAccents(s)
	s = nonAlnum.ReplaceAllString(s, "")
	s = spaces.ReplaceAllString(s, " ")
	return strings.TrimSpace(s)
}

// Fold lowercases and trims; vocabulary lookups key on this form.
func Fold(s string) string { return strings.ToLower(strings.TrimSpace(s)) }

// ContainsAny reports whether name contains any of tokens.
func ContainsAny(name string, tokens []string) bool {
	for _, t := range tokens {
		if t != "" && strings.Contains(name, t) {
			return true
		}
	}
	return false
}
