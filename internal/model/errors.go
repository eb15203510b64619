package model

import (
	"fmt"

	"github.com/tphakala/authorid/internal/errors"
)

// NotTrainedError reports an Identify call on a model without trained state.
func NotTrainedError(component string) error {
	return errors.New(ErrNotTrained).
		Component(component).
		Category(errors.CategoryState).
		Build()
}

// DegenerateError reports input that would make a computation undefined.
func DegenerateError(component string, category errors.ErrorCategory, format string, args ...any) error {
	return errors.New(fmt.Errorf("%s: %w", fmt.Sprintf(format, args...), ErrDegenerateInput)).
		Component(component).
		Category(category).
		Build()
}

// CorpusError reports a corpus that cannot be trained on.
func CorpusError(component string, err error) error {
	return errors.New(fmt.Errorf("invalid training corpus: %w", err)).
		Component(component).
		Category(errors.CategoryValidation).
		Build()
}
