package ensemble

import (
	"context"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"github.com/tphakala/authorid/internal/errors"
	"github.com/tphakala/authorid/internal/lexical"
	"github.com/tphakala/authorid/internal/model"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

// fakeModel returns a fixed distribution.
type fakeModel struct {
	name     string
	dist     map[string]float64
	trainErr error
	trained  atomic.Int32
}

func (f *fakeModel) Name() string { return f.name }

func (f *fakeModel) Train(ctx context.Context, corpus model.Corpus) error {
	f.trained.Add(1)
	return f.trainErr
}

// countingModel counts Train calls across every instance sharing calls.
type countingModel struct {
	*fakeModel
	calls *atomic.Int32
}

func (c *countingModel) Train(ctx context.Context, corpus model.Corpus) error {
	c.calls.Add(1)
	return c.fakeModel.Train(ctx, corpus)
}

func (f *fakeModel) Identify(ctx context.Context, text string) (model.Distribution, error) {
	authors := make([]string, 0, len(f.dist))
	probs := make([]float64, 0, len(f.dist))
	for a, p := range f.dist {
		authors = append(authors, a)
		probs = append(probs, p)
	}
	return model.NewDistribution(authors, probs)
}

// fixed is a factory that always returns m.
func fixed(m model.Model) Factory {
	return func() (model.Model, error) { return m, nil }
}

func newFakeEnsemble(t *testing.T, w Weights, lex, comp, ng *fakeModel) *Ensemble {
	t.Helper()
	e, err := New(Config{Weights: w}, WithFactories(fixed(lex), fixed(comp), fixed(ng)))
	require.NoError(t, err)
	return e
}

func sanityConfig() Config {
	cfg := DefaultConfig()
	cfg.Lexical.Lemmatizer = lexical.IdentityLemmatizer
	return cfg
}

func TestEnsembleSanity(t *testing.T) {
	t.Parallel()

	e, err := New(sanityConfig())
	require.NoError(t, err)

	ctx := context.Background()
	require.NoError(t, e.Train(ctx, model.Corpus{
		"A": {"aaaa bbbb aaaa"},
		"B": {"cccc dddd cccc"},
	}))

	b, err := e.IdentifyDetailed(ctx, "aaaa bbbb")
	require.NoError(t, err)
	require.Len(t, b.Combined, 2)
	assert.Equal(t, "A", b.Combined[0].Author)
	assert.InDelta(t, 1.0, b.Combined.Sum(), 1e-9)

	require.Len(t, b.Models, 3)
	assert.Equal(t, "lexical", b.Models[0].Name)
	assert.Equal(t, "compression", b.Models[1].Name)
	assert.Equal(t, "ngram-svm", b.Models[2].Name)
	for _, r := range b.Models {
		assert.Equal(t, "A", r.Distribution[0].Author, r.Name)
	}

	dist, err := e.Identify(ctx, "aaaa bbbb")
	require.NoError(t, err)
	assert.Equal(t, b.Combined, dist)
}

func TestEnsembleWeightedAverage(t *testing.T) {
	t.Parallel()

	lex := &fakeModel{name: "lex", dist: map[string]float64{"A": 0.2, "B": 0.8}}
	comp := &fakeModel{name: "comp", dist: map[string]float64{"B": 0.4, "A": 0.6}}
	ng := &fakeModel{name: "ng", dist: map[string]float64{"A": 1.0, "B": 0.0}}

	e := newFakeEnsemble(t, Weights{Lexical: 1, Compression: 1, NGram: 2}, lex, comp, ng)
	dist, err := e.Identify(context.Background(), "x")
	require.NoError(t, err)

	// A = (0.2 + 0.6 + 2*1.0) / 4, B = (0.8 + 0.4 + 0) / 4
	require.Len(t, dist, 2)
	assert.Equal(t, "A", dist[0].Author)
	assert.InDelta(t, 0.7, dist[0].Probability, 1e-12)
	assert.InDelta(t, 0.3, dist[1].Probability, 1e-12)
}

func TestEnsembleOrderingIsStable(t *testing.T) {
	t.Parallel()

	even := map[string]float64{"C": 0.25, "A": 0.25, "B": 0.5}
	e := newFakeEnsemble(t, DefaultWeights(),
		&fakeModel{name: "lex", dist: even},
		&fakeModel{name: "comp", dist: even},
		&fakeModel{name: "ng", dist: even})

	for range 5 {
		dist, err := e.Identify(context.Background(), "x")
		require.NoError(t, err)
		assert.Equal(t, []string{"B", "A", "C"}, dist.Authors())
		for i := 1; i < len(dist); i++ {
			assert.GreaterOrEqual(t, dist[i-1].Probability, dist[i].Probability)
		}
	}
}

func TestEnsembleAuthorMismatch(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		ng   map[string]float64
	}{
		{"different author", map[string]float64{"A": 0.5, "C": 0.5}},
		{"missing author", map[string]float64{"A": 1}},
		{"extra author", map[string]float64{"A": 0.4, "B": 0.4, "C": 0.2}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			ab := map[string]float64{"A": 0.5, "B": 0.5}
			e := newFakeEnsemble(t, DefaultWeights(),
				&fakeModel{name: "lex", dist: ab},
				&fakeModel{name: "comp", dist: ab},
				&fakeModel{name: "ng", dist: tt.ng})

			_, err := e.Identify(context.Background(), "x")
			require.ErrorIs(t, err, model.ErrAuthorMismatch)
			assert.True(t, errors.IsCategory(err, errors.CategoryIdentification))
		})
	}
}

func TestEnsembleTrainsEveryMember(t *testing.T) {
	t.Parallel()

	ab := map[string]float64{"A": 0.5, "B": 0.5}
	lex := &fakeModel{name: "lex", dist: ab}
	comp := &fakeModel{name: "comp", dist: ab}
	ng := &fakeModel{name: "ng", dist: ab, trainErr: model.ErrDegenerateInput}
	e := newFakeEnsemble(t, DefaultWeights(), lex, comp, ng)

	err := e.Train(context.Background(), model.Corpus{"A": {"a"}, "B": {"b"}})
	require.ErrorIs(t, err, model.ErrDegenerateInput)
	assert.Contains(t, err.Error(), "ng")
	assert.Equal(t, int32(1), ng.trained.Load())

	require.ErrorIs(t, e.Train(context.Background(), model.Corpus{}), model.ErrEmptyCorpus)
	assert.Equal(t, int32(1), lex.trained.Load())
}

func TestEnsembleTrainKeepsMembersOnFailure(t *testing.T) {
	t.Parallel()

	// every factory call builds a new generation; the second Train fails in
	// the n-gram member only
	var trainCalls atomic.Int32
	generation := func(name string, fail bool) Factory {
		var built atomic.Int32
		return func() (model.Model, error) {
			n := built.Add(1)
			f := &fakeModel{name: name, dist: map[string]float64{"A": 0.9, "B": 0.1}}
			if n > 2 {
				f.dist = map[string]float64{"A": 0.1, "B": 0.9}
				if fail {
					f.trainErr = model.ErrDegenerateInput
				}
			}
			return &countingModel{fakeModel: f, calls: &trainCalls}, nil
		}
	}

	e, err := New(Config{Weights: DefaultWeights()},
		WithFactories(generation("lex", false), generation("comp", false), generation("ng", true)))
	require.NoError(t, err)

	ctx := context.Background()
	corpus := model.Corpus{"A": {"a"}, "B": {"b"}}
	require.NoError(t, e.Train(ctx, corpus))
	trained := e.Members()

	err = e.Train(ctx, corpus)
	require.ErrorIs(t, err, model.ErrDegenerateInput)
	assert.Equal(t, int32(6), trainCalls.Load())

	after := e.Members()
	require.Len(t, after, len(trained))
	for i := range trained {
		assert.Same(t, trained[i].Model, after[i].Model)
	}

	dist, err := e.Identify(ctx, "x")
	require.NoError(t, err)
	assert.Equal(t, "A", dist[0].Author)
	assert.InDelta(t, 0.9, dist[0].Probability, 1e-12)
}

func TestEnsembleFactoryError(t *testing.T) {
	t.Parallel()

	var built atomic.Int32
	ng := func() (model.Model, error) {
		if built.Add(1) > 1 {
			return nil, errors.NewStd("out of memory")
		}
		return &fakeModel{name: "ng"}, nil
	}
	ab := map[string]float64{"A": 0.5, "B": 0.5}
	e, err := New(Config{Weights: DefaultWeights()},
		WithFactories(fixed(&fakeModel{name: "lex", dist: ab}), fixed(&fakeModel{name: "comp", dist: ab}), ng))
	require.NoError(t, err)

	before := e.Members()
	err = e.Train(context.Background(), model.Corpus{"A": {"a"}, "B": {"b"}})
	require.Error(t, err)
	assert.True(t, errors.IsCategory(err, errors.CategoryConfiguration))
	assert.Same(t, before[2].Model, e.Members()[2].Model)
}

func TestEnsembleUntrained(t *testing.T) {
	t.Parallel()

	e, err := New(sanityConfig())
	require.NoError(t, err)
	_, err = e.Identify(context.Background(), "text")
	require.ErrorIs(t, err, model.ErrNotTrained)
}

func TestNewValidatesWeights(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		w    Weights
	}{
		{"all zero", Weights{}},
		{"negative", Weights{Lexical: -1, Compression: 1, NGram: 1}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			_, err := New(Config{Weights: tt.w})
			require.Error(t, err)
			assert.True(t, errors.IsCategory(err, errors.CategoryConfiguration))
		})
	}

	assert.InDelta(t, 1.0, DefaultWeights().Total(), 1e-12)
}
