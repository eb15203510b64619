package ngram

import (
	"context"
	"fmt"
	"sync"

	"github.com/tphakala/authorid/internal/errors"
	"github.com/tphakala/authorid/internal/model"
)

// ProfileModel compares the summed n-gram profile of an unseen text with
// each author's summed profile by cosine similarity. It needs no feature
// selection or classifier and serves as a baseline for SVMModel.
type ProfileModel struct {
	extractor *extractor

	mu       sync.RWMutex
	authors  []string
	profiles []Counts
}

// NewProfileModel returns an untrained profile model. Features and SVM
// settings in cfg are ignored.
func NewProfileModel(cfg Config) (*ProfileModel, error) {
	cfg.applyDefaults()
	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("invalid n-gram config: %w", err)
	}

	vectorizer, err := NewVectorizer(cfg.Alphabet, cfg.Order)
	if err != nil {
		return nil, err
	}

	return &ProfileModel{
		extractor: &extractor{vectorizer: vectorizer, chunkSize: cfg.ChunkSize, workers: cfg.workers()},
	}, nil
}

// Name implements model.Model.
func (m *ProfileModel) Name() string { return "ngram-profile" }

// Train implements model.Model.
func (m *ProfileModel) Train(ctx context.Context, corpus model.Corpus) error {
	if err := corpus.Validate(); err != nil {
		return model.CorpusError(componentName, err)
	}

	authors := corpus.Authors()
	perAuthor, err := m.extractor.perAuthor(ctx, authors, corpus)
	if err != nil {
		return err
	}

	profiles := make([]Counts, len(authors))
	for i, vectors := range perAuthor {
		if len(vectors) == 0 {
			return model.DegenerateError(componentName, errors.CategoryFeatureExtraction,
				"author %q has no usable n-grams", authors[i])
		}
		profiles[i] = sumCounts(vectors)
	}

	m.mu.Lock()
	m.authors, m.profiles = authors, profiles
	m.mu.Unlock()
	return nil
}

// Identify implements model.Model.
func (m *ProfileModel) Identify(ctx context.Context, text string) (model.Distribution, error) {
	m.mu.RLock()
	authors, profiles := m.authors, m.profiles
	m.mu.RUnlock()
	if authors == nil {
		return nil, model.NotTrainedError(componentName)
	}
	if err := ctx.Err(); err != nil {
		return nil, errors.Cancelled(err)
	}

	vectors := m.extractor.chunkVectors(text)
	if len(vectors) == 0 {
		return nil, model.DegenerateError(componentName, errors.CategoryIdentification, "text has no usable n-grams")
	}
	query := sumCounts(vectors)

	scores := make([]float64, len(authors))
	for i, profile := range profiles {
		cos, err := cosine(query, profile)
		if err != nil {
			return nil, errors.New(err).Component(componentName).Category(errors.CategoryIdentification).Build()
		}
		// counts are non-negative, so cos >= 0
		scores[i] = cos
	}

	probs, err := model.Normalize(scores)
	if err != nil {
		return nil, errors.New(fmt.Errorf("text shares no n-grams with any author: %w", err)).
			Component(componentName).
			Category(errors.CategoryIdentification).
			Build()
	}
	return model.NewDistribution(authors, probs)
}
