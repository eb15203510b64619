// Package compression attributes texts by how much they add to the LZW
// compressed size of each author's reference text.
package compression

import (
	"context"
	"fmt"
	"runtime"
	"strings"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/tphakala/authorid/internal/errors"
	"github.com/tphakala/authorid/internal/logger"
	"github.com/tphakala/authorid/internal/lzw"
	"github.com/tphakala/authorid/internal/model"
)

const componentName = "compression"

// SizeFunc returns the compressed size of text in bits.
type SizeFunc func(text string) int

// Config configures the compression model.
type Config struct {
	Size    SizeFunc // lzw.CompressionSize when nil
	Workers int      // parallel authors, 0 uses GOMAXPROCS
}

// Model scores each author with softmax(−inc/max inc), where inc is the
// growth in compressed size when the unseen text is appended to the
// author's reference text.
type Model struct {
	size    SizeFunc
	workers int
	log     logger.Logger

	mu    sync.RWMutex
	state *state
}

type state struct {
	authors    []string
	references []string
	baseSizes  []int
}

// New returns an untrained model.
func New(cfg Config) (*Model, error) {
	if cfg.Workers < 0 {
		return nil, fmt.Errorf("workers must be >= 0, got %d", cfg.Workers)
	}
	if cfg.Workers == 0 {
		cfg.Workers = runtime.GOMAXPROCS(0)
	}
	if cfg.Size == nil {
		cfg.Size = lzw.CompressionSize
	}
	return &Model{size: cfg.Size, workers: cfg.Workers, log: GetLogger()}, nil
}

// Name implements model.Model.
func (m *Model) Name() string { return "compression" }

// Train implements model.Model.
func (m *Model) Train(ctx context.Context, corpus model.Corpus) error {
	if err := corpus.Validate(); err != nil {
		return model.CorpusError(componentName, err)
	}

	start := time.Now()
	authors := corpus.Authors()
	references := make([]string, len(authors))
	for i, author := range authors {
		references[i] = strings.Join(corpus[author], "\n")
	}

	baseSizes, err := m.sizes(ctx, references, "")
	if err != nil {
		return err
	}

	m.mu.Lock()
	m.state = &state{authors: authors, references: references, baseSizes: baseSizes}
	m.mu.Unlock()

	m.log.Debug("model trained",
		logger.Int("authors", len(authors)),
		logger.Duration("elapsed", time.Since(start)))
	return nil
}

// Identify implements model.Model.
func (m *Model) Identify(ctx context.Context, text string) (model.Distribution, error) {
	m.mu.RLock()
	st := m.state
	m.mu.RUnlock()
	if st == nil {
		return nil, model.NotTrainedError(componentName)
	}

	combined, err := m.sizes(ctx, st.references, "\n"+text)
	if err != nil {
		return nil, err
	}

	increments := make([]float64, len(st.authors))
	maxInc := 0.0
	for i := range combined {
		increments[i] = float64(combined[i] - st.baseSizes[i])
		maxInc = max(maxInc, increments[i])
	}
	if maxInc <= 0 {
		return nil, model.DegenerateError(componentName, errors.CategoryIdentification,
			"text adds nothing to any compressed reference")
	}

	scores := make([]float64, len(increments))
	for i, inc := range increments {
		scores[i] = -inc / maxInc
	}
	probs, err := model.Softmax(scores)
	if err != nil {
		return nil, err
	}
	return model.NewDistribution(st.authors, probs)
}

// increments returns the compressed-size growth per author.
func (m *Model) increments(ctx context.Context, text string) (map[string]int, error) {
	m.mu.RLock()
	st := m.state
	m.mu.RUnlock()
	if st == nil {
		return nil, model.NotTrainedError(componentName)
	}

	combined, err := m.sizes(ctx, st.references, "\n"+text)
	if err != nil {
		return nil, err
	}
	out := make(map[string]int, len(st.authors))
	for i, author := range st.authors {
		out[author] = combined[i] - st.baseSizes[i]
	}
	return out, nil
}

// sizes compresses every reference with suffix appended, in parallel.
func (m *Model) sizes(ctx context.Context, references []string, suffix string) ([]int, error) {
	out := make([]int, len(references))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(m.workers)
	for i, ref := range references {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return errors.Cancelled(err)
			}
			out[i] = m.size(ref + suffix)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}
