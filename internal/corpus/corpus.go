// Package corpus reads author-labelled training texts from a directory tree
// laid out as root/<author>/<file>.
package corpus

import (
	"fmt"
	"path/filepath"
	"slices"
	"strings"

	"github.com/spf13/afero"

	"github.com/tphakala/authorid/internal/conf"
	"github.com/tphakala/authorid/internal/errors"
	"github.com/tphakala/authorid/internal/logger"
	"github.com/tphakala/authorid/internal/model"
	"github.com/tphakala/authorid/internal/textclean"
)

const paragraphSeparator = "\n\n"

// Options controls how files become texts.
type Options struct {
	// Fs is the filesystem to read from, the OS filesystem when nil.
	Fs afero.Fs
	// Authors restricts loading to these sub-directories. Empty loads all.
	Authors []string
	// PrimaryMarker marks files that are kept whole and placed first.
	PrimaryMarker string
	// SplitParagraphs splits non-primary files on blank lines.
	SplitParagraphs bool
	// Cleaner is applied to every file before splitting when set.
	Cleaner *textclean.Cleaner
}

func (o *Options) fs() afero.Fs {
	if o.Fs == nil {
		return afero.NewOsFs()
	}
	return o.Fs
}

// Authors lists the author directories under root in ascending order.
func Authors(fs afero.Fs, root string) ([]string, error) {
	if fs == nil {
		fs = afero.NewOsFs()
	}
	entries, err := afero.ReadDir(fs, root)
	if err != nil {
		return nil, errors.FileError(fmt.Errorf("failed to list corpus directory: %w", err), root, 0)
	}

	var authors []string
	for _, e := range entries {
		if e.IsDir() && !strings.HasPrefix(e.Name(), ".") {
			authors = append(authors, e.Name())
		}
	}
	slices.Sort(authors)
	return authors, nil
}

// Load reads the corpus under root.
func Load(root string, opts Options) (model.Corpus, error) {
	fs := opts.fs()
	log := GetLogger()

	authors := opts.Authors
	if len(authors) == 0 {
		var err error
		if authors, err = Authors(fs, root); err != nil {
			return nil, err
		}
	}
	if len(authors) == 0 {
		return nil, errors.New(fmt.Errorf("no author directories under %s: %w", root, model.ErrEmptyCorpus)).
			Component("corpus").
			Category(errors.CategoryCorpus).
			Build()
	}

	c := make(model.Corpus, len(authors))
	for _, author := range authors {
		texts, err := loadAuthor(fs, filepath.Join(root, author), &opts)
		if err != nil {
			return nil, err
		}
		if len(texts) == 0 {
			return nil, errors.New(fmt.Errorf("author %q has no non-empty texts: %w", author, model.ErrEmptyCorpus)).
				Component("corpus").
				Category(errors.CategoryCorpus).
				Context("author", author).
				Build()
		}
		c[author] = texts
		log.Debug("author loaded", logger.String("author", author), logger.Int("texts", len(texts)))
	}
	return c, nil
}

func loadAuthor(fs afero.Fs, dir string, opts *Options) ([]string, error) {
	entries, err := afero.ReadDir(fs, dir)
	if err != nil {
		return nil, errors.FileError(fmt.Errorf("failed to list author directory: %w", err), dir, 0)
	}

	var primary, rest []string
	for _, e := range entries {
		if !e.Mode().IsRegular() || strings.HasPrefix(e.Name(), ".") {
			continue
		}

		file := filepath.Join(dir, e.Name())
		data, err := afero.ReadFile(fs, file)
		if err != nil {
			return nil, errors.FileError(fmt.Errorf("failed to read text: %w", err), file, e.Size())
		}

		text := string(data)
		if opts.Cleaner != nil {
			text = opts.Cleaner.Clean(text)
		}
		text = strings.TrimSpace(text)

		switch {
		case opts.PrimaryMarker != "" && strings.Contains(e.Name(), opts.PrimaryMarker):
			if text != "" {
				primary = append(primary, text)
			}
		case opts.SplitParagraphs:
			for _, p := range strings.Split(text, paragraphSeparator) {
				if p = strings.TrimSpace(p); p != "" {
					rest = append(rest, p)
				}
			}
		default:
			if text != "" {
				rest = append(rest, text)
			}
		}
	}
	return append(primary, rest...), nil
}

// HoldOut moves the last n texts of every author into a separate corpus.
// Every author must keep at least one training text.
func HoldOut(c model.Corpus, n int) (train, heldOut model.Corpus, err error) {
	if n < 1 {
		return nil, nil, errors.ValidationError(fmt.Sprintf("hold-out size must be >= 1, got %d", n))
	}

	train = make(model.Corpus, len(c))
	heldOut = make(model.Corpus, len(c))
	for _, author := range c.Authors() {
		texts := c[author]
		if len(texts) <= n {
			return nil, nil, errors.New(fmt.Errorf("author %q has %d texts, need more than %d: %w",
				author, len(texts), n, model.ErrEmptyCorpus)).
				Component("corpus").
				Category(errors.CategoryCorpus).
				Build()
		}
		cut := len(texts) - n
		train[author] = slices.Clone(texts[:cut])
		heldOut[author] = slices.Clone(texts[cut:])
	}
	return train, heldOut, nil
}

// FromSettings loads the corpus described by s from the OS filesystem.
func FromSettings(s *conf.CorpusSettings) (model.Corpus, error) {
	opts := Options{
		Authors:         s.Authors,
		PrimaryMarker:   s.PrimaryMarker,
		SplitParagraphs: s.SplitParagraphs,
	}
	if s.Clean {
		opts.Cleaner = textclean.New(textclean.DefaultRules())
	}
	return Load(s.Path, opts)
}
