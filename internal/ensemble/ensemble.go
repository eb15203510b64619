// Package ensemble combines the lexical, compression and n-gram models into
// a single weighted authorship distribution.
package ensemble

import (
	"context"
	"fmt"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/tphakala/authorid/internal/compression"
	"github.com/tphakala/authorid/internal/errors"
	"github.com/tphakala/authorid/internal/lexical"
	"github.com/tphakala/authorid/internal/logger"
	"github.com/tphakala/authorid/internal/model"
	"github.com/tphakala/authorid/internal/ngram"
)

const componentName = "ensemble"

// Member is one weighted constituent of the ensemble.
type Member struct {
	Model  model.Model
	Weight float64
}

// Ensemble is a model.Model whose output is the weighted average of its
// members' distributions.
type Ensemble struct {
	factories []Factory
	weights   []float64
	log       logger.Logger

	mu      sync.RWMutex
	members []Member
}

// ModelResult is one member's contribution to an identification.
type ModelResult struct {
	Name         string
	Weight       float64
	Distribution model.Distribution
	Elapsed      time.Duration
}

// Breakdown is the combined distribution together with every member's output.
type Breakdown struct {
	Combined model.Distribution
	Models   []ModelResult
}

// Factory builds an untrained member model.
type Factory func() (model.Model, error)

// Option customizes an Ensemble.
type Option func(*options)

type options struct {
	lexical     Factory
	compression Factory
	ngram       Factory
}

// WithFactories replaces the constructors of the constituent models. Nil
// arguments keep the default.
func WithFactories(lexical, compression, ngram Factory) Option {
	return func(o *options) {
		o.lexical = lexical
		o.compression = compression
		o.ngram = ngram
	}
}

// New builds the ensemble from cfg.
func New(cfg Config, opts ...Option) (*Ensemble, error) {
	if err := cfg.Weights.validate(); err != nil {
		return nil, errors.New(fmt.Errorf("invalid ensemble weights: %w", err)).
			Component(componentName).
			Category(errors.CategoryConfiguration).
			Build()
	}

	var o options
	for _, opt := range opts {
		opt(&o)
	}

	if o.lexical == nil {
		o.lexical = func() (model.Model, error) {
			m, err := lexical.New(cfg.Lexical)
			if err != nil {
				return nil, fmt.Errorf("lexical model: %w", err)
			}
			return m, nil
		}
	}
	if o.compression == nil {
		o.compression = func() (model.Model, error) {
			m, err := compression.New(cfg.Compression)
			if err != nil {
				return nil, fmt.Errorf("compression model: %w", err)
			}
			return m, nil
		}
	}
	if o.ngram == nil {
		o.ngram = func() (model.Model, error) {
			m, err := ngram.NewSVMModel(cfg.NGram)
			if err != nil {
				return nil, fmt.Errorf("n-gram model: %w", err)
			}
			return m, nil
		}
	}

	e := &Ensemble{
		factories: []Factory{o.lexical, o.compression, o.ngram},
		weights:   []float64{cfg.Weights.Lexical, cfg.Weights.Compression, cfg.Weights.NGram},
		log:       GetLogger(),
	}

	// untrained members, so configuration errors surface here and Identify
	// reports ErrNotTrained until the first successful Train
	members, err := e.build()
	if err != nil {
		return nil, err
	}
	e.members = members
	return e, nil
}

// build returns a fresh, untrained set of members.
func (e *Ensemble) build() ([]Member, error) {
	members := make([]Member, len(e.factories))
	for i, factory := range e.factories {
		m, err := factory()
		if err != nil {
			return nil, err
		}
		members[i] = Member{Model: m, Weight: e.weights[i]}
	}
	return members, nil
}

// Name implements model.Model.
func (e *Ensemble) Name() string { return "ensemble" }

// Members returns the constituent models with their weights.
func (e *Ensemble) Members() []Member {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return append([]Member(nil), e.members...)
}

// Train trains a fresh set of members on the same corpus concurrently and
// replaces the current members only when all of them succeed. On failure the
// previously trained members keep serving Identify.
func (e *Ensemble) Train(ctx context.Context, corpus model.Corpus) error {
	if err := corpus.Validate(); err != nil {
		return model.CorpusError(componentName, err)
	}

	members, err := e.build()
	if err != nil {
		return errors.New(err).
			Component(componentName).
			Category(errors.CategoryConfiguration).
			Build()
	}

	g, gctx := errgroup.WithContext(ctx)
	for _, member := range members {
		g.Go(func() error {
			start := time.Now()
			if err := member.Model.Train(gctx, corpus); err != nil {
				return fmt.Errorf("%s: %w", member.Model.Name(), err)
			}
			e.log.Debug("member trained",
				logger.String("model", member.Model.Name()),
				logger.Duration("elapsed", time.Since(start)))
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	e.mu.Lock()
	e.members = members
	e.mu.Unlock()
	return nil
}

// Identify implements model.Model.
func (e *Ensemble) Identify(ctx context.Context, text string) (model.Distribution, error) {
	b, err := e.IdentifyDetailed(ctx, text)
	if err != nil {
		return nil, err
	}
	return b.Combined, nil
}

// IdentifyDetailed runs every member on text and returns the combined
// distribution with each member's result.
func (e *Ensemble) IdentifyDetailed(ctx context.Context, text string) (*Breakdown, error) {
	members := e.Members()
	results := make([]ModelResult, len(members))

	g, gctx := errgroup.WithContext(ctx)
	for i, member := range members {
		g.Go(func() error {
			start := time.Now()
			dist, err := member.Model.Identify(gctx, text)
			if err != nil {
				return fmt.Errorf("%s: %w", member.Model.Name(), err)
			}
			results[i] = ModelResult{
				Name:         member.Model.Name(),
				Weight:       member.Weight,
				Distribution: dist,
				Elapsed:      time.Since(start),
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	combined, err := combine(results)
	if err != nil {
		return nil, err
	}
	return &Breakdown{Combined: combined, Models: results}, nil
}

// combine sums the weighted member distributions author by author and
// divides by the weight total.
func combine(results []ModelResult) (model.Distribution, error) {
	if len(results) == 0 {
		return nil, errors.Newf("no member results to combine").
			Component(componentName).
			Category(errors.CategoryIdentification).
			Build()
	}

	reference := results[0].Distribution.SortedByAuthor()
	authors := reference.Authors()
	sums := make([]float64, len(authors))
	total := 0.0

	for _, r := range results {
		dist := r.Distribution.SortedByAuthor()
		if !sameAuthors(authors, dist) {
			return nil, errors.New(fmt.Errorf("%s returned authors %v, %s returned %v: %w",
				results[0].Name, authors, r.Name, dist.Authors(), model.ErrAuthorMismatch)).
				Component(componentName).
				Category(errors.CategoryIdentification).
				Context("model", r.Name).
				Build()
		}
		for i, p := range dist {
			sums[i] += r.Weight * p.Probability
		}
		total += r.Weight
	}

	for i := range sums {
		sums[i] /= total
	}
	return model.NewDistribution(authors, sums)
}

func sameAuthors(authors []string, dist model.Distribution) bool {
	if len(authors) != len(dist) {
		return false
	}
	for i, p := range dist {
		if p.Author != authors[i] {
			return false
		}
	}
	return true
}
