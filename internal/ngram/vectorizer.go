package ngram

import (
	"fmt"
	"strings"
)

// maxDimension bounds |alphabet|^order so n-gram indices stay small enough
// for the classifier's feature numbering.
const maxDimension = 1 << 24

// Vectorizer counts overlapping n-grams of a normalized text into sparse
// Counts over a feature space of |alphabet|^order positions.
type Vectorizer struct {
	alphabet *Alphabet
	order    int
	dim      int
	powers   []int // powers[k] = |alphabet|^k
}

// NewVectorizer returns a vectorizer for n-grams of the given order.
func NewVectorizer(alphabet *Alphabet, order int) (*Vectorizer, error) {
	if alphabet == nil {
		return nil, fmt.Errorf("alphabet is required")
	}
	if order < 1 {
		return nil, fmt.Errorf("n-gram order must be >= 1, got %d", order)
	}

	powers := make([]int, order)
	dim := 1
	for k := range order {
		powers[k] = dim
		dim *= alphabet.Size()
		if dim > maxDimension {
			return nil, fmt.Errorf("feature space %d^%d exceeds %d", alphabet.Size(), order, maxDimension)
		}
	}

	return &Vectorizer{alphabet: alphabet, order: order, dim: dim, powers: powers}, nil
}

// Dim returns the size of the feature space.
func (v *Vectorizer) Dim() int { return v.dim }

// Order returns n.
func (v *Vectorizer) Order() int { return v.order }

// Alphabet returns the symbol set.
func (v *Vectorizer) Alphabet() *Alphabet { return v.alphabet }

// Index maps an n-gram to its position. The first symbol is the least
// significant digit: idx(c₀) + |A|·idx(c₁) + |A|²·idx(c₂) + ...
func (v *Vectorizer) Index(window string) (int, error) {
	runes := []rune(window)
	if len(runes) != v.order {
		return 0, fmt.Errorf("window %q has length %d, expected %d", window, len(runes), v.order)
	}

	loc := 0
	for k, r := range runes {
		i, ok := v.alphabet.Index(r)
		if !ok {
			return 0, fmt.Errorf("symbol %q not in alphabet %s", r, v.alphabet.Name())
		}
		loc += i * v.powers[k]
	}
	return loc, nil
}

// Window is the inverse of Index.
func (v *Vectorizer) Window(index int) (string, error) {
	if index < 0 || index >= v.dim {
		return "", fmt.Errorf("index %d out of range [0, %d)", index, v.dim)
	}

	var sb strings.Builder
	size := v.alphabet.Size()
	for range v.order {
		sb.WriteRune(v.alphabet.Symbol(index % size))
		index /= size
	}
	return sb.String(), nil
}

// Vector counts the n-grams of an already normalized text. Runes outside
// the alphabet break the window. Texts shorter than the order give empty
// counts.
func (v *Vectorizer) Vector(normalized string) Counts {
	vec := make(Counts)

	digits := make([]int, 0, len(normalized))
	for _, r := range normalized {
		i, ok := v.alphabet.Index(r)
		if !ok {
			v.count(vec, digits)
			digits = digits[:0]
			continue
		}
		digits = append(digits, i)
	}
	v.count(vec, digits)

	return vec
}

func (v *Vectorizer) count(vec Counts, digits []int) {
	for start := 0; start+v.order <= len(digits); start++ {
		loc := 0
		for k := range v.order {
			loc += digits[start+k] * v.powers[k]
		}
		vec[loc]++
	}
}

// Chunks splits text into groups of size lines. The last group may be shorter.
func Chunks(text string, size int) []string {
	if size < 1 {
		size = 1
	}

	lines := strings.Split(text, "\n")
	chunks := make([]string, 0, (len(lines)+size-1)/size)
	for start := 0; start < len(lines); start += size {
		end := min(start+size, len(lines))
		chunks = append(chunks, strings.Join(lines[start:end], "\n"))
	}
	return chunks
}
