package ensemble

import (
	"fmt"
	"math"

	"github.com/tphakala/authorid/internal/compression"
	"github.com/tphakala/authorid/internal/lexical"
	"github.com/tphakala/authorid/internal/ngram"
)

// Weights are the per-model contributions to the combined distribution.
type Weights struct {
	Lexical     float64
	Compression float64
	NGram       float64
}

// DefaultWeights weighs the three models equally.
func DefaultWeights() Weights {
	return Weights{Lexical: 1.0 / 3, Compression: 1.0 / 3, NGram: 1.0 / 3}
}

// Total returns the sum of the weights.
func (w Weights) Total() float64 {
	return w.Lexical + w.Compression + w.NGram
}

func (w Weights) validate() error {
	for name, v := range map[string]float64{"lexical": w.Lexical, "compression": w.Compression, "ngram": w.NGram} {
		if v < 0 || math.IsNaN(v) || math.IsInf(v, 0) {
			return fmt.Errorf("%s weight must be a non-negative number, got %v", name, v)
		}
	}
	if w.Total() <= 0 {
		return fmt.Errorf("weights must not all be zero")
	}
	return nil
}

// Config configures the ensemble and its constituent models.
type Config struct {
	Weights     Weights
	NGram       ngram.Config
	Lexical     lexical.Config
	Compression compression.Config
}

// DefaultConfig returns equal weights and each model's defaults.
func DefaultConfig() Config {
	return Config{
		Weights: DefaultWeights(),
		NGram:   ngram.DefaultConfig(),
		Lexical: lexical.DefaultConfig(),
	}
}
