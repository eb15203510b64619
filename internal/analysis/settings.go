package analysis

import (
	"fmt"

	"github.com/tphakala/authorid/internal/conf"
	"github.com/tphakala/authorid/internal/ensemble"
	"github.com/tphakala/authorid/internal/lexical"
	"github.com/tphakala/authorid/internal/ngram"
)

// EnsembleConfig translates settings into the ensemble configuration.
func EnsembleConfig(settings *conf.Settings) (ensemble.Config, error) {
	alphabet, err := ngram.AlphabetByName(settings.NGram.Alphabet)
	if err != nil {
		return ensemble.Config{}, fmt.Errorf("invalid n-gram alphabet: %w", err)
	}

	params := ngram.SVMParams{
		C:   settings.NGram.SVM.C,
		Eps: settings.NGram.SVM.Eps,
	}

	return ensemble.Config{
		Weights: ensemble.Weights{
			Lexical:     settings.Ensemble.Weights.Lexical,
			Compression: settings.Ensemble.Weights.Compression,
			NGram:       settings.Ensemble.Weights.NGram,
		},
		NGram: ngram.Config{
			Order:     settings.NGram.Order,
			Alphabet:  alphabet,
			Features:  settings.NGram.Features,
			ChunkSize: settings.NGram.ChunkSize,
			SVM:       params,
			Workers:   settings.Workers,
		},
		Lexical: lexical.Config{
			TopN:    settings.Lexical.TopN,
			Angular: settings.Lexical.Angular,
			Workers: settings.Workers,
		},
	}, nil
}
