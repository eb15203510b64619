package lexical

import (
	"context"
	"fmt"
	"runtime"
	"slices"
	"strings"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/tphakala/authorid/internal/errors"
	"github.com/tphakala/authorid/internal/logger"
	"github.com/tphakala/authorid/internal/model"
)

const componentName = "lexical"

// Config configures the bag-of-words model.
type Config struct {
	TopN       int        // lemmas kept per author
	Angular    bool       // score with π/2 − arccos(cos) instead of cos
	Lemmatizer Lemmatizer // EnglishLemmatizer when nil
	Workers    int        // parallel authors, 0 uses GOMAXPROCS
}

// DefaultConfig returns the top 100 lemmas with plain cosine similarity.
func DefaultConfig() Config {
	return Config{TopN: 100}
}

// Model is the bag-of-words authorship model.
type Model struct {
	cfg Config
	log logger.Logger

	mu    sync.RWMutex
	state *state
}

type state struct {
	authors []string
	vocab   map[string]int // lemma -> column
	rows    [][]float64    // author x vocabulary relative frequencies
}

// New returns an untrained model.
func New(cfg Config) (*Model, error) {
	if cfg.TopN < 1 {
		return nil, fmt.Errorf("topN must be >= 1, got %d", cfg.TopN)
	}
	if cfg.Workers < 0 {
		return nil, fmt.Errorf("workers must be >= 0, got %d", cfg.Workers)
	}
	if cfg.Workers == 0 {
		cfg.Workers = runtime.GOMAXPROCS(0)
	}
	if cfg.Lemmatizer == nil {
		l, err := EnglishLemmatizer()
		if err != nil {
			return nil, err
		}
		cfg.Lemmatizer = l
	}

	return &Model{cfg: cfg, log: GetLogger()}, nil
}

// Name implements model.Model.
func (m *Model) Name() string { return "lexical" }

// Train implements model.Model.
func (m *Model) Train(ctx context.Context, corpus model.Corpus) error {
	if err := corpus.Validate(); err != nil {
		return model.CorpusError(componentName, err)
	}

	start := time.Now()
	authors := corpus.Authors()
	profiles := make([][]Term, len(authors))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(m.cfg.Workers)
	for i, author := range authors {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return errors.Cancelled(err)
			}
			tokens := Tokenize(strings.Join(corpus[author], "\n"), m.cfg.Lemmatizer)
			if len(tokens) == 0 {
				return model.DegenerateError(componentName, errors.CategoryFeatureExtraction,
					"author %q has no words", author)
			}
			profiles[i] = Profile(tokens, m.cfg.TopN)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	var lemmas []string
	for _, profile := range profiles {
		for _, term := range profile {
			lemmas = append(lemmas, term.Lemma)
		}
	}
	slices.Sort(lemmas)
	lemmas = slices.Compact(lemmas)

	vocab := make(map[string]int, len(lemmas))
	for i, lemma := range lemmas {
		vocab[lemma] = i
	}

	rows := make([][]float64, len(authors))
	for i, profile := range profiles {
		rows[i] = make([]float64, len(lemmas))
		for _, term := range profile {
			rows[i][vocab[term.Lemma]] = term.Frequency
		}
	}

	m.mu.Lock()
	m.state = &state{authors: authors, vocab: vocab, rows: rows}
	m.mu.Unlock()

	m.log.Debug("model trained",
		logger.Int("authors", len(authors)),
		logger.Int("vocabulary", len(lemmas)),
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
	if err := ctx.Err(); err != nil {
		return nil, errors.Cancelled(err)
	}

	query, err := m.queryVector(st, text)
	if err != nil {
		return nil, err
	}

	scores := make([]float64, len(st.authors))
	for i, row := range st.rows {
		cos, err := model.CosineSimilarity(query, row)
		if err != nil {
			return nil, errors.New(err).Component(componentName).Category(errors.CategoryIdentification).Build()
		}
		score := cos
		if m.cfg.Angular {
			score = model.AngularSimilarity(cos)
		}
		scores[i] = max(score, 0)
	}

	probs, err := model.Normalize(scores)
	if err != nil {
		return nil, errors.New(fmt.Errorf("text shares no vocabulary with any author: %w", err)).
			Component(componentName).
			Category(errors.CategoryIdentification).
			Build()
	}
	return model.NewDistribution(st.authors, probs)
}

// queryVector returns the unseen text's relative frequencies over the training vocabulary.
func (m *Model) queryVector(st *state, text string) ([]float64, error) {
	tokens := Tokenize(text, m.cfg.Lemmatizer)
	if len(tokens) == 0 {
		return nil, model.DegenerateError(componentName, errors.CategoryIdentification, "text has no words")
	}

	query := make([]float64, len(st.vocab))
	hits := 0
	for _, tok := range tokens {
		if col, ok := st.vocab[tok]; ok {
			query[col]++
			hits++
		}
	}
	if hits == 0 {
		return nil, model.DegenerateError(componentName, errors.CategoryIdentification,
			"none of the %d words is in the training vocabulary", len(tokens))
	}

	total := float64(len(tokens))
	for i := range query {
		query[i] /= total
	}
	return query, nil
}

// vocabulary returns the training vocabulary in column order, or nil if untrained.
func (m *Model) vocabulary() []string {
	m.mu.RLock()
	st := m.state
	m.mu.RUnlock()
	if st == nil {
		return nil
	}

	out := make([]string, len(st.vocab))
	for lemma, col := range st.vocab {
		out[col] = lemma
	}
	return out
}
