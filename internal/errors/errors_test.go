package errors

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var errSentinel = NewStd("sentinel")

func TestBuilderCarriesMetadata(t *testing.T) {
	t.Parallel()

	ee := New(fmt.Errorf("scoring failed: %w", errSentinel)).
		Component("ensemble").
		Category(CategoryIdentification).
		Priority(PriorityHigh).
		Context("authors", 3).
		Timing("identify", 1500*time.Millisecond).
		Build()

	assert.Equal(t, "scoring failed: sentinel", ee.Error())
	assert.Equal(t, "ensemble", ee.GetComponent())
	assert.Equal(t, CategoryIdentification, ee.Category)
	assert.Equal(t, PriorityHigh, ee.GetPriority())
	assert.Equal(t, 3, ee.GetContext()["authors"])
	assert.Equal(t, int64(1500), ee.GetContext()["duration_ms"])
	assert.False(t, ee.GetTimestamp().IsZero())
	assert.True(t, Is(ee, errSentinel))
}

func TestIsMatchesCategory(t *testing.T) {
	t.Parallel()

	a := New(NewStd("a")).Category(CategoryState).Build()
	b := New(NewStd("b")).Category(CategoryState).Build()
	c := New(NewStd("c")).Category(CategoryCorpus).Build()

	assert.True(t, Is(a, b))
	assert.False(t, Is(a, c))
	assert.True(t, IsCategory(fmt.Errorf("wrapped: %w", c), CategoryCorpus))
	assert.Equal(t, CategoryCorpus, CategoryOf(fmt.Errorf("wrapped: %w", c)))
	assert.Equal(t, CategoryGeneric, CategoryOf(NewStd("plain")))
}

func TestInvalidPriorityFallsBackToMedium(t *testing.T) {
	t.Parallel()

	ee := New(NewStd("x")).Priority("urgent").Build()
	assert.Equal(t, PriorityMedium, ee.Priority)
}

func TestDetectCategory(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		err  error
		want ErrorCategory
	}{
		{"not trained", NewStd("model not trained"), CategoryState},
		{"mismatch", NewStd("author mismatch between models"), CategoryValidation},
		{"file", NewStd("cannot read file"), CategoryFileIO},
		{"context", context.Canceled, CategoryCancellation},
		{"nested category", New(NewStd("x")).Category(CategoryCorpus).Build(), CategoryCorpus},
		{"unknown", NewStd("something odd"), CategoryGeneric},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, New(tt.err).Build().Category)
		})
	}
}

func TestCancelled(t *testing.T) {
	t.Parallel()

	err := Cancelled(context.DeadlineExceeded)
	require.Error(t, err)
	assert.True(t, Is(err, ErrCancelled))
	assert.True(t, Is(err, context.DeadlineExceeded))
	assert.Equal(t, CategoryCancellation, err.Category)
}

func TestFileError(t *testing.T) {
	t.Parallel()

	ee := FileError(NewStd("permission denied"), "corpus/homer/iliad.txt", 2048)
	assert.Equal(t, CategoryFileIO, ee.Category)
	assert.Equal(t, "txt", ee.GetContext()["file_extension"])
	assert.Equal(t, "small", ee.GetContext()["file_size_category"])
}

func TestLookupComponentPrefersLongestPattern(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "ngram", lookupComponent("github.com/tphakala/authorid/internal/ngram.(*SVMModel).Train"))
	assert.Equal(t, "configuration", lookupComponent("github.com/tphakala/authorid/internal/conf.Load"))
	assert.Empty(t, lookupComponent("main.main"))
}
