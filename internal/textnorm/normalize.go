// Package textnorm holds the text normalization steps shared by the profilers.
package textnorm

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Punctuation is the ASCII punctuation set.
const Punctuation = "!\"#$%&'()*+,-./:;<=>?@[\\]^_`{|}~"

// ASCII transliterates text to ASCII: compatibility decomposition, removal of
// combining marks, then removal of any rune still outside ASCII. Accented
// Latin letters keep their base letter; other scripts are dropped.
func ASCII(text string) string {
	t := transform.Chain(norm.NFKD, runes.Remove(runes.In(unicode.Mn)), runes.Remove(runes.Predicate(isNonASCII)))
	out, _, err := transform.String(t, text)
	if err != nil {
		// transform.String only fails on malformed transformers
		return strings.Map(func(r rune) rune {
			if isNonASCII(r) {
				return -1
			}
			return r
		}, text)
	}
	return out
}

func isNonASCII(r rune) bool {
	return r > unicode.MaxASCII
}

// IsPunctuation reports whether r is ASCII punctuation.
func IsPunctuation(r rune) bool {
	return r < unicode.MaxASCII && strings.ContainsRune(Punctuation, r)
}

// StripPunctuation removes ASCII punctuation.
func StripPunctuation(text string) string {
	return strings.Map(func(r rune) rune {
		if IsPunctuation(r) {
			return -1
		}
		return r
	}, text)
}

// WhitespaceToSpace replaces every whitespace rune with a single space,
// keeping the rune count.
func WhitespaceToSpace(text string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return ' '
		}
		return r
	}, text)
}

// NormalizeText applies NFKC normalization, trims the ends and removes
// control characters other than newline and tab.
func NormalizeText(text string) string {
	normed := norm.NFKC.String(text)
	normed = strings.TrimSpace(normed)
	return strings.Map(func(r rune) rune {
		if r == '\n' || r == '\t' {
			return r
		}
		if unicode.IsControl(r) {
			return -1
		}
		return r
	}, normed)
}
