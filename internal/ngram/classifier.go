package ngram

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"slices"
	"strconv"

	libsvm "github.com/ewalker544/libsvm-go"

	"github.com/tphakala/authorid/internal/errors"
)

// minCalibrationChunks is the smallest class size for which probabilities
// come from libsvm's Platt estimates. libsvm fits them on five-fold
// cross-validated decision values, which for smaller classes leaves folds
// whose training part holds a single class and inverts the sigmoid.
const minCalibrationChunks = 5

// SVMParams configures the linear support vector classifier.
type SVMParams struct {
	C   float64 // regularization parameter
	Eps float64 // stopping tolerance
}

// DefaultSVMParams returns the libsvm defaults.
func DefaultSVMParams() SVMParams {
	return SVMParams{C: 1, Eps: 0.001}
}

func (p SVMParams) validate() error {
	if p.C <= 0 {
		return fmt.Errorf("svm C must be > 0, got %v", p.C)
	}
	if p.Eps <= 0 {
		return fmt.Errorf("svm eps must be > 0, got %v", p.Eps)
	}
	return nil
}

// classifier is a C-SVC with a linear kernel. Class i of the training
// problem is label i.
type classifier struct {
	model      *libsvm.Model
	nClass     int
	calibrated bool
}

// fitClassifier trains on x with class labels y in [0, nClass). Samples must
// be ordered by class: libsvm numbers classes by first occurrence, and its
// probability estimates follow that order.
func fitClassifier(ctx context.Context, x []Counts, y []int, nClass int, p SVMParams) (*classifier, error) {
	if len(x) == 0 || len(x) != len(y) {
		return nil, fmt.Errorf("invalid training problem: %d samples, %d labels", len(x), len(y))
	}
	if !slices.IsSorted(y) || y[0] != 0 || y[len(y)-1] != nClass-1 {
		return nil, fmt.Errorf("labels must be sorted and cover [0, %d)", nClass)
	}
	if nClass == 1 {
		return &classifier{nClass: 1, calibrated: true}, nil
	}

	sizes := make([]int, nClass)
	for _, label := range y {
		sizes[label]++
	}

	param := libsvm.NewParameter()
	param.SvmType = libsvm.C_SVC
	param.KernelType = libsvm.LINEAR
	param.C = p.C
	param.Eps = p.Eps
	param.Probability = slices.Min(sizes) >= minCalibrationChunks
	param.QuietMode = true

	problem, err := newProblem(x, y, param)
	if err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, errors.Cancelled(err)
	}

	m := libsvm.NewModel(param)
	if err := m.Train(problem); err != nil {
		return nil, fmt.Errorf("libsvm: %w", err)
	}
	return &classifier{model: m, nClass: nClass, calibrated: param.Probability}, nil
}

// newProblem writes the samples in libsvm's sparse text format and loads
// them back. libsvm-go reads training problems only from files.
func newProblem(x []Counts, y []int, param *libsvm.Parameter) (*libsvm.Problem, error) {
	f, err := os.CreateTemp("", "authorid-*.svm")
	if err != nil {
		return nil, errors.New(fmt.Errorf("failed to create training problem file: %w", err)).
			Component(componentName).
			Category(errors.CategoryFileIO).
			Build()
	}
	defer os.Remove(f.Name())

	w := bufio.NewWriter(f)
	for i, vec := range x {
		w.WriteString(strconv.Itoa(y[i]))
		for _, idx := range vec.indices() {
			// libsvm feature numbers start at 1
			fmt.Fprintf(w, " %d:%s", idx+1, strconv.FormatFloat(vec[idx], 'g', -1, 64))
		}
		w.WriteByte('\n')
	}
	if err := w.Flush(); err != nil {
		f.Close()
		return nil, errors.FileError(fmt.Errorf("failed to write training problem: %w", err), f.Name(), 0)
	}
	if err := f.Close(); err != nil {
		return nil, errors.FileError(fmt.Errorf("failed to write training problem: %w", err), f.Name(), 0)
	}

	problem, err := libsvm.NewProblem(f.Name(), param)
	if err != nil {
		return nil, fmt.Errorf("libsvm: failed to load training problem: %w", err)
	}
	return problem, nil
}

// probabilities returns the class probabilities of one sample. Without
// calibration the predicted class gets probability 1, so averaging over
// chunks yields the share of chunks voting for each class.
func (c *classifier) probabilities(x Counts) ([]float64, error) {
	if c.nClass == 1 {
		return []float64{1}, nil
	}

	features := make(map[int]float64, len(x))
	for idx, v := range x {
		features[idx+1] = v
	}

	if !c.calibrated {
		label := int(c.model.Predict(features))
		if label < 0 || label >= c.nClass {
			return nil, fmt.Errorf("libsvm predicted unknown label %d", label)
		}
		probs := make([]float64, c.nClass)
		probs[label] = 1
		return probs, nil
	}

	_, probs := c.model.PredictProbability(features)
	if len(probs) != c.nClass {
		return nil, fmt.Errorf("libsvm returned %d probabilities for %d classes", len(probs), c.nClass)
	}
	return probs, nil
}
