// conf/validate.go

package conf

import (
	"fmt"
	"math"
	"slices"
	"strings"
)

// ValidationError represents a collection of validation errors
type ValidationError struct {
	Errors []string
}

// Error returns a string representation of the validation errors
func (ve ValidationError) Error() string {
	return fmt.Sprintf("Validation errors: %v", ve.Errors)
}

// ValidateSettings validates the entire Settings struct
func ValidateSettings(settings *Settings) error {
	ve := ValidationError{}

	if err := validateEnsembleSettings(&settings.Ensemble.Weights); err != nil {
		ve.Errors = append(ve.Errors, err.Error())
	}

	if err := validateNGramSettings(&settings.NGram); err != nil {
		ve.Errors = append(ve.Errors, err.Error())
	}

	if err := validateLexicalSettings(&settings.Lexical); err != nil {
		ve.Errors = append(ve.Errors, err.Error())
	}

	if err := validateOutputSettings(&settings.Output); err != nil {
		ve.Errors = append(ve.Errors, err.Error())
	}

	if settings.Workers < 0 {
		ve.Errors = append(ve.Errors, "workers must be >= 0")
	}

	if !slices.Contains([]string{"trace", "debug", "info", "warn", "error"}, settings.Log.Level) {
		ve.Errors = append(ve.Errors, fmt.Sprintf("unknown log level %q", settings.Log.Level))
	}

	if len(ve.Errors) > 0 {
		return ve
	}
	return nil
}

// validateEnsembleSettings checks that weights are non-negative with a positive sum
func validateEnsembleSettings(w *WeightSettings) error {
	var errs []string

	total := 0.0
	for name, v := range map[string]float64{"lexical": w.Lexical, "compression": w.Compression, "ngram": w.NGram} {
		if v < 0 || math.IsNaN(v) || math.IsInf(v, 0) {
			errs = append(errs, fmt.Sprintf("ensemble weight %s must be a non-negative number, got %v", name, v))
			continue
		}
		total += v
	}
	if len(errs) == 0 && total <= 0 {
		errs = append(errs, "ensemble weights must not all be zero")
	}

	if len(errs) > 0 {
		slices.Sort(errs)
		return fmt.Errorf("ensemble settings errors: %s", strings.Join(errs, ", "))
	}
	return nil
}

// validateNGramSettings validates the n-gram profiler and classifier settings
func validateNGramSettings(s *NGramSettings) error {
	var errs []string

	if s.Order < 1 || s.Order > MaxNGramOrder {
		errs = append(errs, fmt.Sprintf("order must be between 1 and %d", MaxNGramOrder))
	}

	size := AlphabetSize(s.Alphabet)
	if size == 0 {
		errs = append(errs, fmt.Sprintf("alphabet must be %q or %q", AlphabetLowercase, AlphabetExtended))
	}

	if s.Features < 0 {
		errs = append(errs, "features must be >= 0")
	} else if size > 0 && s.Order >= 1 && s.Order <= MaxNGramOrder {
		if dim := int(math.Pow(float64(size), float64(s.Order))); s.Features > dim {
			errs = append(errs, fmt.Sprintf("features must not exceed %d for this alphabet and order", dim))
		}
	}

	if s.ChunkSize < 1 {
		errs = append(errs, "chunk size must be >= 1")
	}
	if s.SVM.C <= 0 {
		errs = append(errs, "svm c must be > 0")
	}
	if s.SVM.Eps <= 0 {
		errs = append(errs, "svm eps must be > 0")
	}

	if len(errs) > 0 {
		return fmt.Errorf("ngram settings errors: %s", strings.Join(errs, ", "))
	}
	return nil
}

// validateLexicalSettings validates the bag-of-words settings
func validateLexicalSettings(s *LexicalSettings) error {
	if s.TopN < 1 {
		return fmt.Errorf("lexical settings errors: topn must be >= 1")
	}
	return nil
}

// validateOutputSettings validates report settings
func validateOutputSettings(s *OutputSettings) error {
	var errs []string

	if !slices.Contains([]string{FormatTable, FormatCSV, FormatJSON, FormatYAML}, s.Format) {
		errs = append(errs, fmt.Sprintf("unknown format %q", s.Format))
	}
	if s.Cache.Enabled && s.Cache.TTL <= 0 {
		errs = append(errs, "cache ttl must be > 0 when the cache is enabled")
	}

	if len(errs) > 0 {
		return fmt.Errorf("output settings errors: %s", strings.Join(errs, ", "))
	}
	return nil
}
