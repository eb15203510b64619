package ngram

import (
	"fmt"
	"maps"
	"math"
	"slices"
)

// Counts holds the non-zero n-gram counts of a text keyed by n-gram index.
// The feature space can reach tens of millions of positions while a chunk
// holds a few thousand distinct n-grams, so counts stay sparse throughout.
type Counts map[int]float64

// indices returns the counted positions in ascending order.
func (c Counts) indices() []int {
	return slices.Sorted(maps.Keys(c))
}

// add accumulates o into c.
func (c Counts) add(o Counts) {
	for idx, v := range o {
		c[idx] += v
	}
}

func (c Counts) dot(o Counts) float64 {
	if len(o) < len(c) {
		c, o = o, c
	}
	sum := 0.0
	for idx, v := range c {
		sum += v * o[idx]
	}
	return sum
}

func (c Counts) norm() float64 {
	return math.Sqrt(c.dot(c))
}

// sumCounts adds every vector into a new Counts.
func sumCounts(vectors []Counts) Counts {
	out := make(Counts)
	for _, vec := range vectors {
		out.add(vec)
	}
	return out
}

// cosine returns the cosine similarity of two count vectors.
func cosine(a, b Counts) (float64, error) {
	na, nb := a.norm(), b.norm()
	if na == 0 || nb == 0 {
		return 0, fmt.Errorf("cosine similarity of a zero vector")
	}
	return a.dot(b) / (na * nb), nil
}
