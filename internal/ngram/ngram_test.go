package ngram

import (
	"context"
	"math"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tphakala/authorid/internal/model"
)

func TestAlphabets(t *testing.T) {
	t.Parallel()

	assert.Equal(t, 26, LowercaseAlphabet.Size())
	assert.Equal(t, 59, ExtendedAlphabet.Size())
	assert.True(t, ExtendedAlphabet.Contains(' '))

	i, ok := LowercaseAlphabet.Index('c')
	assert.True(t, ok)
	assert.Equal(t, 2, i)

	_, err := NewAlphabet("dup", "abca")
	require.Error(t, err)
	_, err = NewAlphabet("empty", "")
	require.Error(t, err)

	a, err := AlphabetByName("extended")
	require.NoError(t, err)
	assert.Same(t, ExtendedAlphabet, a)
	_, err = AlphabetByName("cyrillic")
	require.Error(t, err)
}

func TestNormalize(t *testing.T) {
	t.Parallel()

	text := "Sing, O Muse!\n\tOf Achillēs' wrath 42"
	assert.Equal(t, "singomuseofachilleswrath", LowercaseAlphabet.Normalize(text))
	assert.Equal(t, "sing, o muse!of achilles' wrath ", ExtendedAlphabet.Normalize(text))
}

func TestIndexWindowBijection(t *testing.T) {
	t.Parallel()

	for _, alphabet := range []*Alphabet{LowercaseAlphabet, ExtendedAlphabet} {
		for order := 1; order <= 2; order++ {
			v, err := NewVectorizer(alphabet, order)
			require.NoError(t, err)

			for idx := range v.Dim() {
				w, err := v.Window(idx)
				require.NoError(t, err)
				back, err := v.Index(w)
				require.NoError(t, err)
				require.Equal(t, idx, back, "alphabet %s order %d window %q", alphabet.Name(), order, w)
			}
		}
	}
}

func TestIndexLeastSignificantFirst(t *testing.T) {
	t.Parallel()

	v, err := NewVectorizer(LowercaseAlphabet, 3)
	require.NoError(t, err)
	assert.Equal(t, 26*26*26, v.Dim())

	idx, err := v.Index("bca")
	require.NoError(t, err)
	assert.Equal(t, 1+26*2+26*26*0, idx)

	_, err = v.Index("ab")
	require.Error(t, err)
	_, err = v.Index("ab!")
	require.Error(t, err)
	_, err = v.Window(v.Dim())
	require.Error(t, err)
}

func TestNewVectorizerErrors(t *testing.T) {
	t.Parallel()

	_, err := NewVectorizer(LowercaseAlphabet, 0)
	require.Error(t, err)
	_, err = NewVectorizer(nil, 2)
	require.Error(t, err)
	_, err = NewVectorizer(ExtendedAlphabet, 5)
	require.Error(t, err)
}

func TestVectorSparseOverLargeSpace(t *testing.T) {
	t.Parallel()

	v, err := NewVectorizer(ExtendedAlphabet, 4)
	require.NoError(t, err)
	assert.Equal(t, 59*59*59*59, v.Dim())

	vec := v.Vector("sing, o muse")
	assert.Len(t, vec, 9)
	for idx := range vec {
		assert.Less(t, idx, v.Dim())
	}
}

func TestVectorCounts(t *testing.T) {
	t.Parallel()

	v, err := NewVectorizer(LowercaseAlphabet, 2)
	require.NoError(t, err)

	vec := v.Vector("abab")
	ab, _ := v.Index("ab")
	ba, _ := v.Index("ba")
	assert.InDelta(t, 2, vec[ab], 0)
	assert.InDelta(t, 1, vec[ba], 0)

	assert.Len(t, vec, 2)
	assert.Empty(t, v.Vector("a"))
	assert.Empty(t, v.Vector("a!b"))
}

func TestChunks(t *testing.T) {
	t.Parallel()

	text := "l1\nl2\nl3\nl4\nl5"
	assert.Equal(t, []string{"l1\nl2", "l3\nl4", "l5"}, Chunks(text, 2))
	assert.Equal(t, []string{text}, Chunks(text, 100))
	assert.Equal(t, []string{""}, Chunks("", 3))
}

func TestPerAuthorJoinsTextsBeforeChunking(t *testing.T) {
	t.Parallel()

	v, err := NewVectorizer(LowercaseAlphabet, 2)
	require.NoError(t, err)
	e := &extractor{vectorizer: v, chunkSize: 2, workers: 2}

	texts := map[string][]string{"A": {"ab", "ab", "ab"}, "B": {"cd"}}
	got, err := e.perAuthor(context.Background(), []string{"A", "B"}, texts)
	require.NoError(t, err)
	require.Len(t, got, 2)

	// "ab\nab\nab" in chunks of two lines, not one chunk per text
	require.Len(t, got[0], 2)
	ab, _ := v.Index("ab")
	ba, _ := v.Index("ba")
	assert.Equal(t, Counts{ab: 2, ba: 1}, got[0][0])
	assert.Equal(t, Counts{ab: 1}, got[0][1])
	require.Len(t, got[1], 1)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = e.perAuthor(ctx, []string{"A", "B"}, texts)
	require.ErrorIs(t, err, context.Canceled)
}

func TestSelectFeaturesKeepsAll(t *testing.T) {
	t.Parallel()

	vectors := []Counts{{0: 1, 2: 3}, {1: 2, 2: 1}, {0: 4, 1: 4}}
	groups := []int{0, 1, 1}

	for _, k := range []int{0, 3, 10} {
		selected, err := SelectFeatures(vectors, groups, 2, 3, k)
		require.NoError(t, err)
		assert.Nil(t, selected)
		for _, vec := range vectors {
			assert.Equal(t, vec, Project(vec, selected))
		}
	}
}

func TestSelectFeaturesByVariance(t *testing.T) {
	t.Parallel()

	// group profiles: g0 = {1, 5, 2, 7}, g1 = {1, 1, 2, 0}
	vectors := []Counts{{0: 1, 1: 2, 2: 1, 3: 3}, {1: 3, 2: 1, 3: 4}, {0: 1, 1: 1, 2: 2}}
	groups := []int{0, 0, 1}

	selected, err := SelectFeatures(vectors, groups, 2, 6, 2)
	require.NoError(t, err)
	assert.Equal(t, []int{1, 3}, selected)
	assert.Equal(t, Counts{0: 2, 1: 3}, Project(vectors[0], selected))

	selected, err = SelectFeatures(vectors, groups, 2, 6, 1)
	require.NoError(t, err)
	assert.Equal(t, []int{3}, selected)

	// two ranked positions, the rest filled from the lowest zero-variance ones
	selected, err = SelectFeatures(vectors, groups, 2, 6, 4)
	require.NoError(t, err)
	assert.Equal(t, []int{0, 1, 2, 3}, selected)
	selected, err = SelectFeatures(vectors, groups, 2, 6, 5)
	require.NoError(t, err)
	assert.Equal(t, []int{0, 1, 2, 3, 4}, selected)

	_, err = SelectFeatures(vectors, []int{0, 0}, 2, 6, 1)
	require.Error(t, err)
	_, err = SelectFeatures(vectors, []int{0, 0, 5}, 2, 6, 1)
	require.Error(t, err)
	_, err = SelectFeatures([]Counts{{7: 1}}, []int{0}, 1, 6, 1)
	require.Error(t, err)
	_, err = SelectFeatures(nil, nil, 2, 6, 1)
	require.Error(t, err)
}

func TestVariance(t *testing.T) {
	t.Parallel()

	v := Variance([]Counts{{0: 1, 1: 2}, {0: 3, 1: 2}, {0: 2, 1: 2, 5: 3}})
	assert.InDelta(t, 2.0/3, v[0], 1e-12)
	assert.InDelta(t, 0, v[1], 1e-12)
	assert.InDelta(t, 2, v[5], 1e-12)
	assert.Len(t, v, 3)
	assert.Nil(t, Variance(nil))
}

func TestCosine(t *testing.T) {
	t.Parallel()

	got, err := cosine(Counts{0: 1, 1: 1}, Counts{1: 2})
	require.NoError(t, err)
	assert.InDelta(t, 1/math.Sqrt2, got, 1e-12)

	_, err = cosine(Counts{}, Counts{1: 2})
	require.Error(t, err)
	assert.Equal(t, Counts{0: 2, 1: 1, 3: 4}, sumCounts([]Counts{{0: 1, 1: 1}, {0: 1, 3: 4}}))
}

func sanityCorpus() model.Corpus {
	return model.Corpus{
		"A": {"aaaa bbbb aaaa"},
		"B": {"cccc dddd cccc"},
	}
}

func TestSVMModelSanity(t *testing.T) {
	t.Parallel()

	m, err := NewSVMModel(DefaultConfig())
	require.NoError(t, err)
	require.NoError(t, m.Train(context.Background(), sanityCorpus()))

	dist, err := m.Identify(context.Background(), "aaaa bbbb")
	require.NoError(t, err)
	require.Len(t, dist, 2)
	assert.Equal(t, "A", dist[0].Author)
	assert.InDelta(t, 1.0, dist.Sum(), 1e-9)
	assert.Nil(t, m.selectedFeatures())
}

func TestSVMModelAveragesChunkProbabilities(t *testing.T) {
	t.Parallel()

	cfg := DefaultConfig()
	cfg.ChunkSize = 1
	m, err := NewSVMModel(cfg)
	require.NoError(t, err)
	require.NoError(t, m.Train(context.Background(), sanityCorpus()))

	tests := []struct {
		name  string
		text  string
		wantA float64
	}{
		{"single chunk", "aaaa bbbb", 1},
		{"even split", "aaaa\ncccc", 0.5},
		{"two of three", "aaaa\naaaa bbbb\ncccc", 2.0 / 3},
		{"short chunk skipped", "aaaa\nx\ncccc dddd", 0.5},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			dist, err := m.Identify(context.Background(), tt.text)
			require.NoError(t, err)
			pA, ok := dist.Probability("A")
			require.True(t, ok)
			pB, ok := dist.Probability("B")
			require.True(t, ok)
			assert.InDelta(t, tt.wantA, pA, 1e-12)
			assert.InDelta(t, 1-tt.wantA, pB, 1e-12)
		})
	}
}

func authorCorpus() model.Corpus {
	homer := strings.Repeat("sing goddess the wrath of achilles son of peleus\nthat brought countless woes upon the achaeans\n", 20)
	virgil := strings.Repeat("arms and the man i sing who first from the coasts of troy\nexiled by fate came to italy\n", 20)
	return model.Corpus{
		"homer":  {homer, homer[:400]},
		"virgil": {virgil, virgil[:400]},
	}
}

func TestSVMModelFeatureSelectionAndChunking(t *testing.T) {
	t.Parallel()

	cfg := DefaultConfig()
	cfg.Features = 50
	cfg.ChunkSize = 5
	cfg.Alphabet = ExtendedAlphabet

	m, err := NewSVMModel(cfg)
	require.NoError(t, err)
	require.NoError(t, m.Train(context.Background(), authorCorpus()))
	assert.Len(t, m.selectedFeatures(), 50)
	assert.True(t, m.state.classifier.calibrated)

	dist, err := m.Identify(context.Background(), "the wrath of achilles brought woes upon the achaeans\nsing goddess")
	require.NoError(t, err)
	assert.Equal(t, "homer", dist[0].Author)

	dist, err = m.Identify(context.Background(), "exiled by fate he came from troy to italy\narms and the man")
	require.NoError(t, err)
	assert.Equal(t, "virgil", dist[0].Author)
}

func TestSVMModelDeterministic(t *testing.T) {
	t.Parallel()

	train := func(workers int) model.Distribution {
		cfg := DefaultConfig()
		// one chunk per author keeps the vote path, which has no random folds
		cfg.Workers = workers
		m, err := NewSVMModel(cfg)
		require.NoError(t, err)
		require.NoError(t, m.Train(context.Background(), authorCorpus()))
		dist, err := m.Identify(context.Background(), "countless woes came to italy")
		require.NoError(t, err)
		return dist
	}

	assert.Equal(t, train(1), train(4))
}

func TestSVMModelErrors(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	m, err := NewSVMModel(DefaultConfig())
	require.NoError(t, err)

	_, err = m.Identify(ctx, "anything")
	require.ErrorIs(t, err, model.ErrNotTrained)

	require.ErrorIs(t, m.Train(ctx, model.Corpus{}), model.ErrEmptyCorpus)
	require.ErrorIs(t, m.Train(ctx, model.Corpus{"A": {"ab"}, "B": {"12 34"}}), model.ErrDegenerateInput)

	require.NoError(t, m.Train(ctx, sanityCorpus()))
	_, err = m.Identify(ctx, "1 2 3 !")
	require.ErrorIs(t, err, model.ErrDegenerateInput)

	cfg := DefaultConfig()
	cfg.Features = 26*26 + 1
	_, err = NewSVMModel(cfg)
	require.Error(t, err)
}

func TestProfileModel(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	m, err := NewProfileModel(DefaultConfig())
	require.NoError(t, err)
	assert.Equal(t, "ngram-profile", m.Name())

	_, err = m.Identify(ctx, "aaaa")
	require.ErrorIs(t, err, model.ErrNotTrained)

	require.NoError(t, m.Train(ctx, sanityCorpus()))

	dist, err := m.Identify(ctx, "aaaa bbbb")
	require.NoError(t, err)
	assert.Equal(t, "A", dist[0].Author)
	assert.InDelta(t, 1.0, dist[0].Probability, 1e-12)
	assert.InDelta(t, 1.0, dist.Sum(), 1e-12)

	// no shared bigram with either author
	_, err = m.Identify(ctx, "xyz")
	require.ErrorIs(t, err, model.ErrDegenerateInput)
}
