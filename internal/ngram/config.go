package ngram

import (
	"fmt"
	"runtime"
)

// Config configures the n-gram models.
type Config struct {
	Order     int       // n-gram length
	Alphabet  *Alphabet // symbol set, LowercaseAlphabet when nil
	Features  int       // high-variance positions kept, 0 keeps all
	ChunkSize int       // lines per chunk
	SVM       SVMParams
	Workers   int // parallel authors, 0 uses GOMAXPROCS
}

// DefaultConfig returns bigrams over a-z, all features, 100-line chunks.
func DefaultConfig() Config {
	return Config{
		Order:     2,
		Alphabet:  LowercaseAlphabet,
		ChunkSize: 100,
		SVM:       DefaultSVMParams(),
	}
}

func (c *Config) applyDefaults() {
	if c.Alphabet == nil {
		c.Alphabet = LowercaseAlphabet
	}
	if c.ChunkSize == 0 {
		c.ChunkSize = 100
	}
	if c.SVM == (SVMParams{}) {
		c.SVM = DefaultSVMParams()
	}
}

func (c *Config) validate() error {
	if c.ChunkSize < 1 {
		return fmt.Errorf("chunk size must be >= 1, got %d", c.ChunkSize)
	}
	if c.Features < 0 {
		return fmt.Errorf("features must be >= 0, got %d", c.Features)
	}
	if c.Workers < 0 {
		return fmt.Errorf("workers must be >= 0, got %d", c.Workers)
	}
	return c.SVM.validate()
}

func (c *Config) workers() int {
	if c.Workers > 0 {
		return c.Workers
	}
	return runtime.GOMAXPROCS(0)
}
