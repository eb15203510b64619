package model

import (
	"fmt"
	"math"
)

// CosineSimilarity returns a·b / (|a||b|). A zero-norm vector has no direction,
// so it is reported as ErrDegenerateInput instead of producing NaN.
func CosineSimilarity(a, b []float64) (float64, error) {
	if len(a) != len(b) {
		return 0, fmt.Errorf("vector lengths differ: %d vs %d", len(a), len(b))
	}

	var dot, na, nb float64
	for i := range a {
		dot += a[i] * b[i]
		na += a[i] * a[i]
		nb += b[i] * b[i]
	}
	if na == 0 || nb == 0 {
		return 0, fmt.Errorf("cosine similarity of zero-norm vector: %w", ErrDegenerateInput)
	}

	cos := dot / (math.Sqrt(na) * math.Sqrt(nb))
	// rounding can push |cos| slightly past 1
	return max(-1, min(1, cos)), nil
}

// AngularSimilarity maps a cosine similarity to π/2 − arccos(cos), which is
// linear in the angle between the vectors.
func AngularSimilarity(cos float64) float64 {
	return math.Pi/2 - math.Acos(max(-1, min(1, cos)))
}
