package ngram

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/tphakala/authorid/internal/errors"
	"github.com/tphakala/authorid/internal/logger"
	"github.com/tphakala/authorid/internal/model"
)

const componentName = "ngram"

// SVMModel classifies texts by the character n-gram counts of their chunks.
// Training cuts each author's joined texts into line chunks, keeps the
// highest-variance n-gram positions and fits a linear SVM on the chunk
// vectors; identification averages the chunk probabilities of the unseen
// text.
type SVMModel struct {
	cfg       Config
	extractor *extractor
	log       logger.Logger

	mu    sync.RWMutex
	state *svmState
}

type svmState struct {
	authors    []string
	selected   []int // nil keeps every position
	classifier *classifier
}

// NewSVMModel returns an untrained model.
func NewSVMModel(cfg Config) (*SVMModel, error) {
	cfg.applyDefaults()
	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("invalid n-gram config: %w", err)
	}

	vectorizer, err := NewVectorizer(cfg.Alphabet, cfg.Order)
	if err != nil {
		return nil, err
	}
	if cfg.Features > vectorizer.Dim() {
		return nil, fmt.Errorf("features %d exceed feature space %d", cfg.Features, vectorizer.Dim())
	}

	return &SVMModel{
		cfg:       cfg,
		extractor: &extractor{vectorizer: vectorizer, chunkSize: cfg.ChunkSize, workers: cfg.workers()},
		log:       GetLogger().Module("svm"),
	}, nil
}

// Name implements model.Model.
func (m *SVMModel) Name() string { return "ngram-svm" }

// Train implements model.Model.
func (m *SVMModel) Train(ctx context.Context, corpus model.Corpus) error {
	if err := corpus.Validate(); err != nil {
		return model.CorpusError(componentName, err)
	}

	start := time.Now()
	authors := corpus.Authors()

	perAuthor, err := m.extractor.perAuthor(ctx, authors, corpus)
	if err != nil {
		return err
	}

	var x []Counts
	var y []int
	for i, vectors := range perAuthor {
		if len(vectors) == 0 {
			return model.DegenerateError(componentName, errors.CategoryFeatureExtraction,
				"author %q has no chunk with at least %d alphabet symbols", authors[i], m.cfg.Order)
		}
		for _, vec := range vectors {
			x = append(x, vec)
			y = append(y, i)
		}
	}

	selected, err := SelectFeatures(x, y, len(authors), m.extractor.vectorizer.Dim(), m.cfg.Features)
	if err != nil {
		return errors.New(err).
			Component(componentName).
			Category(errors.CategoryFeatureExtraction).
			Build()
	}
	for i := range x {
		x[i] = Project(x[i], selected)
	}

	classifier, err := fitClassifier(ctx, x, y, len(authors), m.cfg.SVM)
	if err != nil {
		if errors.IsCategory(err, errors.CategoryCancellation) {
			return err
		}
		return errors.New(fmt.Errorf("svm training failed: %w", err)).
			Component(componentName).
			Category(errors.CategoryModelTraining).
			Context("authors", len(authors)).
			Context("chunks", len(x)).
			Timing("train", time.Since(start)).
			Build()
	}

	m.mu.Lock()
	m.state = &svmState{authors: authors, selected: selected, classifier: classifier}
	m.mu.Unlock()

	m.log.Debug("model trained",
		logger.Int("authors", len(authors)),
		logger.Int("chunks", len(x)),
		logger.Int("features", len(selected)),
		logger.Bool("calibrated", classifier.calibrated),
		logger.Duration("elapsed", time.Since(start)))
	return nil
}

// Identify implements model.Model.
func (m *SVMModel) Identify(ctx context.Context, text string) (model.Distribution, error) {
	m.mu.RLock()
	state := m.state
	m.mu.RUnlock()
	if state == nil {
		return nil, model.NotTrainedError(componentName)
	}
	if err := ctx.Err(); err != nil {
		return nil, errors.Cancelled(err)
	}

	vectors := m.extractor.chunkVectors(text)
	if len(vectors) == 0 {
		return nil, model.DegenerateError(componentName, errors.CategoryIdentification,
			"text has no chunk with at least %d alphabet symbols", m.cfg.Order)
	}

	avg := make([]float64, len(state.authors))
	for _, vec := range vectors {
		probs, err := state.classifier.probabilities(Project(vec, state.selected))
		if err != nil {
			return nil, errors.New(err).
				Component(componentName).
				Category(errors.CategoryIdentification).
				Build()
		}
		for i, p := range probs {
			avg[i] += p / float64(len(vectors))
		}
	}

	return model.NewDistribution(state.authors, avg)
}

// selectedFeatures returns the n-grams kept by training. It is nil when
// untrained or when every position is kept.
func (m *SVMModel) selectedFeatures() []string {
	m.mu.RLock()
	state := m.state
	m.mu.RUnlock()
	if state == nil || state.selected == nil {
		return nil
	}

	out := make([]string, 0, len(state.selected))
	for _, idx := range state.selected {
		if w, err := m.extractor.vectorizer.Window(idx); err == nil {
			out = append(out, w)
		}
	}
	return out
}
