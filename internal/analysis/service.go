package analysis

import (
	"context"
	"crypto/sha1"
	"encoding/hex"
	"fmt"
	"slices"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/patrickmn/go-cache"

	"github.com/tphakala/authorid/internal/conf"
	"github.com/tphakala/authorid/internal/ensemble"
	"github.com/tphakala/authorid/internal/errors"
	"github.com/tphakala/authorid/internal/logger"
	"github.com/tphakala/authorid/internal/model"
	"github.com/tphakala/authorid/internal/ngram"
	"github.com/tphakala/authorid/internal/observability/metrics"
)

// ModelScores is one ensemble member's distribution for a text.
type ModelScores struct {
	Name         string             `json:"name" yaml:"name"`
	Weight       float64            `json:"weight" yaml:"weight"`
	Distribution model.Distribution `json:"distribution" yaml:"distribution"`
}

// Result is the outcome of identifying one text.
type Result struct {
	TraceID      string             `json:"trace_id" yaml:"trace_id"`
	Source       string             `json:"source,omitempty" yaml:"source,omitempty"`
	Top          model.Prediction   `json:"top" yaml:"top"`
	Distribution model.Distribution `json:"distribution" yaml:"distribution"`
	Models       []ModelScores      `json:"models" yaml:"models"`
	Elapsed      time.Duration      `json:"elapsed" yaml:"elapsed"`
	Cached       bool               `json:"cached" yaml:"cached"`
}

// clone returns a copy of r that shares no slices with it.
func (r *Result) clone() *Result {
	out := *r
	out.Distribution = slices.Clone(r.Distribution)
	if r.Models != nil {
		out.Models = make([]ModelScores, len(r.Models))
		for i, m := range r.Models {
			m.Distribution = slices.Clone(m.Distribution)
			out.Models[i] = m
		}
	}
	return &out
}

// Service trains the ensemble and serves identifications.
type Service struct {
	ensemble *ensemble.Ensemble
	baseline model.Model
	cache    *cache.Cache
	metrics  *metrics.StylometryMetrics
	log      logger.Logger

	mu      sync.RWMutex
	trained bool
}

// Option customizes a Service.
type Option func(*Service)

// WithMetrics records training and identification metrics.
func WithMetrics(m *metrics.StylometryMetrics) Option {
	return func(s *Service) { s.metrics = m }
}

// WithEnsemble uses a prebuilt ensemble instead of one built from settings.
func WithEnsemble(e *ensemble.Ensemble) Option {
	return func(s *Service) { s.ensemble = e }
}

// New builds a Service from settings.
func New(settings *conf.Settings, opts ...Option) (*Service, error) {
	if settings == nil {
		return nil, errors.ValidationError("settings are required")
	}

	s := &Service{log: GetLogger()}
	for _, opt := range opts {
		opt(s)
	}

	cfg, err := EnsembleConfig(settings)
	if err != nil {
		return nil, err
	}
	if s.ensemble == nil {
		if s.ensemble, err = ensemble.New(cfg); err != nil {
			return nil, err
		}
	}
	if s.baseline, err = ngram.NewProfileModel(cfg.NGram); err != nil {
		return nil, err
	}

	if settings.Output.Cache.Enabled {
		s.cache = cache.New(settings.Output.Cache.TTL, settings.Output.Cache.TTL*2)
	}
	return s, nil
}

// Train fits every ensemble member on corpus and clears cached results.
func (s *Service) Train(ctx context.Context, corpus model.Corpus) error {
	start := time.Now()
	err := s.ensemble.Train(ctx, corpus)
	elapsed := time.Since(start)

	if s.metrics != nil {
		s.metrics.RecordTrain(metrics.LabelEnsemble, elapsed.Seconds(), err)
	}
	if err != nil {
		s.log.Error("training failed", logger.Error(err), logger.Duration("elapsed", elapsed))
		return err
	}

	if s.cache != nil {
		s.cache.Flush()
	}
	if s.metrics != nil {
		s.metrics.SetCorpusSize(len(corpus), corpus.TextCount())
	}

	s.mu.Lock()
	s.trained = true
	s.mu.Unlock()

	s.log.Info("ensemble trained",
		logger.Int("authors", len(corpus)),
		logger.Int("texts", corpus.TextCount()),
		logger.Duration("elapsed", elapsed))
	return nil
}

// Identify attributes text to the trained authors. Repeated texts are served
// from the result cache when it is enabled.
func (s *Service) Identify(ctx context.Context, text string) (*Result, error) {
	s.mu.RLock()
	trained := s.trained
	s.mu.RUnlock()
	if !trained {
		return nil, model.NotTrainedError("analysis")
	}

	traceID := uuid.New().String()
	ctx = logger.WithTraceID(ctx, traceID)
	log := s.log.WithContext(ctx)

	key := cacheKey(text)
	if s.cache != nil {
		if cached, found := s.cache.Get(key); found {
			if r, ok := cached.(*Result); ok {
				s.recordCache(metrics.StatusHit)
				log.Debug("result cache hit", logger.String("key", key))
				hit := r.clone()
				hit.TraceID = traceID
				hit.Cached = true
				return hit, nil
			}
		}
		s.recordCache(metrics.StatusMiss)
	}

	start := time.Now()
	b, err := s.ensemble.IdentifyDetailed(ctx, text)
	elapsed := time.Since(start)
	if err != nil {
		if s.metrics != nil {
			s.metrics.RecordIdentify(metrics.LabelEnsemble, elapsed.Seconds(), err)
		}
		log.Warn("identification failed", logger.Error(err))
		return nil, err
	}

	result := &Result{
		TraceID:      traceID,
		Distribution: b.Combined,
		Elapsed:      elapsed,
	}
	result.Top, _ = b.Combined.Top()
	for _, m := range b.Models {
		result.Models = append(result.Models, ModelScores{Name: m.Name, Weight: m.Weight, Distribution: m.Distribution})
		if s.metrics != nil {
			s.metrics.RecordIdentify(m.Name, m.Elapsed.Seconds(), nil)
		}
	}
	if s.metrics != nil {
		s.metrics.RecordIdentify(metrics.LabelEnsemble, elapsed.Seconds(), nil)
		s.metrics.RecordTopAuthor(result.Top.Author)
	}

	if s.cache != nil {
		s.cache.Set(key, result.clone(), cache.DefaultExpiration)
	}

	log.Debug("text identified",
		logger.String("author", result.Top.Author),
		logger.Float64("probability", result.Top.Probability),
		logger.Duration("elapsed", elapsed))
	return result, nil
}

func (s *Service) recordCache(status string) {
	if s.metrics != nil {
		s.metrics.RecordOperation(metrics.OpCacheGet, status)
	}
}

// cacheKey derives a fixed-size cache key from text.
func cacheKey(text string) string {
	sum := sha1.Sum([]byte(text))
	return fmt.Sprintf("identify:%s", hex.EncodeToString(sum[:]))
}
