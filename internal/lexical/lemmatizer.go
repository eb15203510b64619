package lexical

import (
	"fmt"
	"sync"

	"github.com/aaaton/golem/v4"
	"github.com/aaaton/golem/v4/dicts/en"
)

// Lemmatizer maps a lowercase word to its dictionary form.
type Lemmatizer interface {
	Lemma(word string) string
}

// LemmatizerFunc adapts a function to Lemmatizer.
type LemmatizerFunc func(word string) string

// Lemma implements Lemmatizer.
func (f LemmatizerFunc) Lemma(word string) string { return f(word) }

// IdentityLemmatizer leaves words unchanged.
var IdentityLemmatizer = LemmatizerFunc(func(word string) string { return word })

var (
	english     *golem.Lemmatizer
	englishErr  error
	englishOnce sync.Once
)

// EnglishLemmatizer returns the shared dictionary lemmatizer for English.
// The dictionary is loaded on first use.
func EnglishLemmatizer() (Lemmatizer, error) {
	englishOnce.Do(func() {
		english, englishErr = golem.New(en.New())
		if englishErr != nil {
			englishErr = fmt.Errorf("failed to load english lemma dictionary: %w", englishErr)
		}
	})
	if englishErr != nil {
		return nil, englishErr
	}
	return english, nil
}
