package model

import (
	"cmp"
	"fmt"
	"math"
	"slices"
)

// Prediction is the probability assigned to one author.
type Prediction struct {
	Author      string  `json:"author" yaml:"author"`
	Probability float64 `json:"probability" yaml:"probability"`
}

// Distribution is a list of predictions, normally sorted by probability
// descending with ties broken by author ascending.
type Distribution []Prediction

// NewDistribution pairs authors with probabilities and sorts the result.
func NewDistribution(authors []string, probs []float64) (Distribution, error) {
	if len(authors) != len(probs) {
		return nil, fmt.Errorf("mismatched authors and probabilities lengths: %d vs %d", len(authors), len(probs))
	}

	d := make(Distribution, len(authors))
	for i, author := range authors {
		d[i] = Prediction{Author: author, Probability: probs[i]}
	}
	d.Sort()
	return d, nil
}

func compareByProbability(a, b Prediction) int {
	if c := cmp.Compare(b.Probability, a.Probability); c != 0 {
		return c
	}
	return cmp.Compare(a.Author, b.Author)
}

// Sort orders the distribution by probability descending, then author ascending.
func (d Distribution) Sort() {
	slices.SortStableFunc(d, compareByProbability)
}

// SortedByAuthor returns a copy ordered by author label.
func (d Distribution) SortedByAuthor() Distribution {
	out := slices.Clone(d)
	slices.SortStableFunc(out, func(a, b Prediction) int {
		return cmp.Compare(a.Author, b.Author)
	})
	return out
}

// Top returns the most probable prediction.
func (d Distribution) Top() (Prediction, bool) {
	if len(d) == 0 {
		return Prediction{}, false
	}
	return d[0], true
}

// Sum returns the total probability mass.
func (d Distribution) Sum() float64 {
	total := 0.0
	for _, p := range d {
		total += p.Probability
	}
	return total
}

// Authors returns the author labels in distribution order.
func (d Distribution) Authors() []string {
	out := make([]string, len(d))
	for i, p := range d {
		out[i] = p.Author
	}
	return out
}

// Probability returns the probability of author, if present.
func (d Distribution) Probability(author string) (float64, bool) {
	for _, p := range d {
		if p.Author == author {
			return p.Probability, true
		}
	}
	return 0, false
}

// Softmax returns exp(x_i) / Σ exp(x_j), shifted by max(x) for stability.
func Softmax(xs []float64) ([]float64, error) {
	if len(xs) == 0 {
		return nil, fmt.Errorf("softmax of empty vector: %w", ErrDegenerateInput)
	}

	maxX := math.Inf(-1)
	for _, x := range xs {
		if math.IsNaN(x) || math.IsInf(x, 0) {
			return nil, fmt.Errorf("softmax input is not finite: %w", ErrDegenerateInput)
		}
		maxX = max(maxX, x)
	}

	out := make([]float64, len(xs))
	total := 0.0
	for i, x := range xs {
		out[i] = math.Exp(x - maxX)
		total += out[i]
	}
	if total <= 0 || math.IsInf(total, 0) {
		return nil, fmt.Errorf("softmax denominator is %v: %w", total, ErrDegenerateInput)
	}

	for i := range out {
		out[i] /= total
	}
	return out, nil
}

// Normalize scales non-negative weights to sum to 1.
func Normalize(xs []float64) ([]float64, error) {
	total := 0.0
	for _, x := range xs {
		if x < 0 || math.IsNaN(x) || math.IsInf(x, 0) {
			return nil, fmt.Errorf("cannot normalize value %v: %w", x, ErrDegenerateInput)
		}
		total += x
	}
	if total <= 0 {
		return nil, fmt.Errorf("cannot normalize vector with zero sum: %w", ErrDegenerateInput)
	}

	out := make([]float64, len(xs))
	for i, x := range xs {
		out[i] = x / total
	}
	return out, nil
}
