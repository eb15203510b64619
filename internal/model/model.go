// Package model defines the contract shared by every authorship classifier
// and the probability distribution they return.
package model

import (
	"context"
	"slices"
	"strings"

	"github.com/tphakala/authorid/internal/errors"
)

// Sentinel errors shared by all models. Returned errors wrap them, so use errors.Is.
var (
	ErrNotTrained       = errors.NewStd("model not trained")
	ErrAuthorMismatch   = errors.NewStd("author mismatch between models")
	ErrDegenerateInput  = errors.NewStd("degenerate input")
	ErrEmptyCorpus      = errors.NewStd("empty corpus")
	ErrInvalidParameter = errors.NewStd("invalid parameter")
)

// Model is an authorship classifier. Train replaces any previous state;
// Identify returns one entry per trained author, sorted by probability.
type Model interface {
	Name() string
	Train(ctx context.Context, corpus Corpus) error
	Identify(ctx context.Context, text string) (Distribution, error)
}

// Corpus maps an author label to that author's texts.
type Corpus map[string][]string

// Authors returns the author labels in ascending order.
func (c Corpus) Authors() []string {
	authors := make([]string, 0, len(c))
	for author := range c {
		authors = append(authors, author)
	}
	slices.Sort(authors)
	return authors
}

// TextCount returns the total number of texts across authors.
func (c Corpus) TextCount() int {
	n := 0
	for _, texts := range c {
		n += len(texts)
	}
	return n
}

// Validate checks that the corpus can be trained on.
func (c Corpus) Validate() error {
	if len(c) == 0 {
		return ErrEmptyCorpus
	}
	for author, texts := range c {
		if strings.TrimSpace(author) == "" {
			return errors.Join(ErrEmptyCorpus, errors.NewStd("author label is empty"))
		}
		if len(texts) == 0 {
			return errors.Join(ErrEmptyCorpus, errors.NewStd("author "+author+" has no texts"))
		}
	}
	return nil
}
