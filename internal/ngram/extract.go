package ngram

import (
	"context"
	"strings"
	"unicode/utf8"

	"golang.org/x/sync/errgroup"

	"github.com/tphakala/authorid/internal/errors"
)

// extractor turns raw texts into chunk vectors.
type extractor struct {
	vectorizer *Vectorizer
	chunkSize  int
	workers    int
}

// chunkVectors cuts text into line chunks, normalizes each chunk and counts
// its n-grams. Chunks too short to hold one n-gram are skipped.
func (e *extractor) chunkVectors(text string) []Counts {
	var out []Counts
	for _, chunk := range Chunks(text, e.chunkSize) {
		normalized := e.vectorizer.Alphabet().Normalize(chunk)
		if utf8.RuneCountInString(normalized) < e.vectorizer.Order() {
			continue
		}
		out = append(out, e.vectorizer.Vector(normalized))
	}
	return out
}

// perAuthor joins each author's texts with newlines and extracts the chunk
// vectors of the result, so chunks run across text boundaries. Authors are
// processed in parallel; result i belongs to authors[i] regardless of
// scheduling.
func (e *extractor) perAuthor(ctx context.Context, authors []string, texts map[string][]string) ([][]Counts, error) {
	results := make([][]Counts, len(authors))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(e.workers)
	for i, author := range authors {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return errors.Cancelled(err)
			}
			results[i] = e.chunkVectors(strings.Join(texts[author], "\n"))
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}
