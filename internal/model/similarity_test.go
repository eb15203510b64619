package model

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCosineSimilarity(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		a, b []float64
		want float64
	}{
		{"self", []float64{0.3, 0.5, 0.2}, []float64{0.3, 0.5, 0.2}, 1},
		{"scaled", []float64{1, 2}, []float64{2, 4}, 1},
		{"orthogonal", []float64{1, 0}, []float64{0, 1}, 0},
		{"opposite", []float64{1, 1}, []float64{-1, -1}, -1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got, err := CosineSimilarity(tt.a, tt.b)
			require.NoError(t, err)
			assert.InDelta(t, tt.want, got, 1e-12)
		})
	}

	_, err := CosineSimilarity([]float64{0, 0}, []float64{1, 1})
	require.ErrorIs(t, err, ErrDegenerateInput)

	_, err = CosineSimilarity([]float64{1}, []float64{1, 1})
	require.Error(t, err)
}

func TestAngularSimilarity(t *testing.T) {
	t.Parallel()

	assert.InDelta(t, math.Pi/2, AngularSimilarity(1), 1e-12)
	assert.InDelta(t, 0, AngularSimilarity(0), 1e-12)
	assert.InDelta(t, -math.Pi/2, AngularSimilarity(-1), 1e-12)
	assert.False(t, math.IsNaN(AngularSimilarity(1.0000001)))
}
