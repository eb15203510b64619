// Package ngram profiles texts by character n-gram counts and classifies
// them with a linear support vector machine.
package ngram

import (
	"fmt"
	"strings"

	"github.com/tphakala/authorid/internal/textnorm"
)

const lowercaseLetters = "abcdefghijklmnopqrstuvwxyz"

// Alphabet is an ordered, immutable set of symbols. A symbol's position is
// its digit in the n-gram index.
type Alphabet struct {
	name    string
	symbols []rune
	index   map[rune]int
}

// NewAlphabet builds an alphabet from distinct symbols.
func NewAlphabet(name, symbols string) (*Alphabet, error) {
	a := &Alphabet{name: name, index: make(map[rune]int)}
	for _, r := range symbols {
		if _, dup := a.index[r]; dup {
			return nil, fmt.Errorf("alphabet %q: duplicate symbol %q", name, r)
		}
		a.index[r] = len(a.symbols)
		a.symbols = append(a.symbols, r)
	}
	if len(a.symbols) == 0 {
		return nil, fmt.Errorf("alphabet %q is empty", name)
	}
	return a, nil
}

func mustAlphabet(name, symbols string) *Alphabet {
	a, err := NewAlphabet(name, symbols)
	if err != nil {
		panic(err)
	}
	return a
}

var (
	// LowercaseAlphabet holds the letters a-z.
	LowercaseAlphabet = mustAlphabet("lowercase", lowercaseLetters)
	// ExtendedAlphabet adds ASCII punctuation and space to the letters.
	ExtendedAlphabet = mustAlphabet("extended", lowercaseLetters+textnorm.Punctuation+" ")
)

// AlphabetByName returns one of the predefined alphabets.
func AlphabetByName(name string) (*Alphabet, error) {
	switch name {
	case LowercaseAlphabet.name:
		return LowercaseAlphabet, nil
	case ExtendedAlphabet.name:
		return ExtendedAlphabet, nil
	}
	return nil, fmt.Errorf("unknown alphabet %q", name)
}

// Name returns the alphabet name.
func (a *Alphabet) Name() string { return a.name }

// Size returns the number of symbols.
func (a *Alphabet) Size() int { return len(a.symbols) }

// Index returns the position of r.
func (a *Alphabet) Index(r rune) (int, bool) {
	i, ok := a.index[r]
	return i, ok
}

// Symbol returns the symbol at position i.
func (a *Alphabet) Symbol(i int) rune { return a.symbols[i] }

// Contains reports whether r is in the alphabet.
func (a *Alphabet) Contains(r rune) bool {
	_, ok := a.index[r]
	return ok
}

// Normalize lowercases and transliterates text to ASCII, then keeps only
// alphabet symbols. Line breaks and tabs are always removed; unknown
// characters are dropped.
func (a *Alphabet) Normalize(text string) string {
	text = strings.ToLower(textnorm.ASCII(text))
	return strings.Map(func(r rune) rune {
		if r == '\n' || r == '\r' || r == '\t' {
			return -1
		}
		if !a.Contains(r) {
			return -1
		}
		return r
	}, text)
}
