package analysis

import (
	"context"
	"time"

	"github.com/tphakala/authorid/internal/errors"
	"github.com/tphakala/authorid/internal/logger"
	"github.com/tphakala/authorid/internal/model"
	"github.com/tphakala/authorid/internal/observability/metrics"
)

const excerptLen = 60

// ModelAccuracy is the top-1 accuracy of one model on held-out texts.
type ModelAccuracy struct {
	Name     string  `json:"name" yaml:"name"`
	Correct  int     `json:"correct" yaml:"correct"`
	Total    int     `json:"total" yaml:"total"`
	Accuracy float64 `json:"accuracy" yaml:"accuracy"`
}

// Miss is a held-out text the ensemble attributed to the wrong author.
// Predicted is empty when the text could not be scored.
type Miss struct {
	Author    string `json:"author" yaml:"author"`
	Predicted string `json:"predicted" yaml:"predicted"`
	Excerpt   string `json:"excerpt" yaml:"excerpt"`
}

// Evaluation summarizes a held-out run. Models lists the ensemble members,
// the n-gram profile baseline and finally the ensemble itself.
type Evaluation struct {
	Texts   int             `json:"texts" yaml:"texts"`
	Models  []ModelAccuracy `json:"models" yaml:"models"`
	Misses  []Miss          `json:"misses" yaml:"misses"`
	Elapsed time.Duration   `json:"elapsed" yaml:"elapsed"`
}

type tally struct {
	order   []string
	correct map[string]int
}

func (t *tally) add(name string, ok bool) {
	if _, seen := t.correct[name]; !seen {
		t.order = append(t.order, name)
		t.correct[name] = 0
	}
	if ok {
		t.correct[name]++
	}
}

// Evaluate trains on train and attributes every text of heldOut, scoring
// top-1 accuracy per model. Texts a model cannot score count as misses.
func (s *Service) Evaluate(ctx context.Context, train, heldOut model.Corpus) (*Evaluation, error) {
	start := time.Now()
	eval, err := s.evaluate(ctx, train, heldOut)
	if s.metrics != nil {
		status := metrics.StatusSuccess
		if err != nil {
			status = metrics.StatusError
		}
		s.metrics.RecordOperation(metrics.OpEvaluate, status)
		s.metrics.RecordDuration(metrics.OpEvaluate, time.Since(start).Seconds())
	}
	if err != nil {
		return nil, err
	}

	eval.Elapsed = time.Since(start)
	for _, m := range eval.Models {
		if s.metrics != nil {
			s.metrics.SetAccuracy(m.Name, m.Accuracy)
		}
		s.log.Info("evaluation accuracy",
			logger.String("model", m.Name),
			logger.Int("correct", m.Correct),
			logger.Int("total", m.Total),
			logger.Float64("accuracy", m.Accuracy))
	}
	return eval, nil
}

func (s *Service) evaluate(ctx context.Context, train, heldOut model.Corpus) (*Evaluation, error) {
	if err := heldOut.Validate(); err != nil {
		return nil, model.CorpusError("analysis", err)
	}
	if err := s.Train(ctx, train); err != nil {
		return nil, err
	}
	if err := s.baseline.Train(ctx, train); err != nil {
		return nil, err
	}

	memberNames := make([]string, 0, 3)
	for _, m := range s.ensemble.Members() {
		memberNames = append(memberNames, m.Model.Name())
	}

	t := &tally{correct: make(map[string]int)}
	eval := &Evaluation{}

	for _, author := range heldOut.Authors() {
		for _, text := range heldOut[author] {
			if err := ctx.Err(); err != nil {
				return nil, errors.Cancelled(err)
			}
			eval.Texts++

			b, err := s.ensemble.IdentifyDetailed(ctx, text)
			if err != nil && !errors.Is(err, model.ErrDegenerateInput) {
				return nil, err
			}
			if err != nil {
				s.log.Debug("held-out text not scored", logger.String("author", author), logger.Error(err))
				for _, name := range memberNames {
					t.add(name, false)
				}
				t.add(metrics.LabelEnsemble, false)
				eval.Misses = append(eval.Misses, Miss{Author: author, Excerpt: excerpt(text)})
			} else {
				for _, m := range b.Models {
					top, _ := m.Distribution.Top()
					t.add(m.Name, top.Author == author)
				}
				top, _ := b.Combined.Top()
				t.add(metrics.LabelEnsemble, top.Author == author)
				if top.Author != author {
					eval.Misses = append(eval.Misses, Miss{Author: author, Predicted: top.Author, Excerpt: excerpt(text)})
				}
			}

			dist, err := s.baseline.Identify(ctx, text)
			if err != nil && !errors.Is(err, model.ErrDegenerateInput) {
				return nil, err
			}
			top, _ := dist.Top()
			t.add(s.baseline.Name(), err == nil && top.Author == author)
		}
	}

	// ensemble last
	names := make([]string, 0, len(t.order))
	for _, name := range t.order {
		if name != metrics.LabelEnsemble {
			names = append(names, name)
		}
	}
	names = append(names, metrics.LabelEnsemble)

	for _, name := range names {
		eval.Models = append(eval.Models, ModelAccuracy{
			Name:     name,
			Correct:  t.correct[name],
			Total:    eval.Texts,
			Accuracy: float64(t.correct[name]) / float64(eval.Texts),
		})
	}
	return eval, nil
}

// excerpt returns the first characters of text for reports.
func excerpt(text string) string {
	runes := []rune(text)
	if len(runes) <= excerptLen {
		return string(runes)
	}
	return string(runes[:excerptLen]) + "..."
}
