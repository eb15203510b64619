// Package lexical profiles authors by the relative frequencies of their
// most common lemmas and compares texts by cosine or angular similarity.
package lexical

import (
	"cmp"
	"slices"
	"strings"

	"github.com/tphakala/authorid/internal/textnorm"
)

// Tokenize lowercases text, transliterates it to ASCII, removes
// punctuation, splits on whitespace and lemmatizes every token.
func Tokenize(text string, lemmatizer Lemmatizer) []string {
	text = textnorm.WhitespaceToSpace(text)
	text = strings.ToLower(text)
	text = textnorm.ASCII(text)
	text = textnorm.StripPunctuation(text)

	tokens := strings.Fields(text)
	for i, tok := range tokens {
		if lemma := lemmatizer.Lemma(tok); lemma != "" {
			tokens[i] = lemma
		}
	}
	return tokens
}

// Term is a lemma with its relative frequency.
type Term struct {
	Lemma     string
	Frequency float64
}

// Profile returns the topN most frequent lemmas, ties broken by lemma,
// each with its count divided by the total token count.
func Profile(tokens []string, topN int) []Term {
	if len(tokens) == 0 || topN < 1 {
		return nil
	}

	counts := make(map[string]int)
	for _, tok := range tokens {
		counts[tok]++
	}

	lemmas := make([]string, 0, len(counts))
	for lemma := range counts {
		lemmas = append(lemmas, lemma)
	}
	slices.SortFunc(lemmas, func(a, b string) int {
		if c := cmp.Compare(counts[b], counts[a]); c != 0 {
			return c
		}
		return cmp.Compare(a, b)
	})

	total := float64(len(tokens))
	n := min(topN, len(lemmas))
	terms := make([]Term, n)
	for i, lemma := range lemmas[:n] {
		terms[i] = Term{Lemma: lemma, Frequency: float64(counts[lemma]) / total}
	}
	return terms
}
