package lzw

import (
	"math/bits"
	"math/rand/v2"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCompressionSizeEmpty(t *testing.T) {
	t.Parallel()
	assert.Equal(t, 0, CompressionSize(""))
}

func TestCompressionSizeKnownValues(t *testing.T) {
	t.Parallel()

	tests := []struct {
		text  string
		codes []int
		bits  int
	}{
		// single rune: seed code 1
		{"a", []int{1}, 1},
		// "aa": emit 1, add (1,a)=2, final prefix 1
		{"aa", []int{1, 1}, 2},
		// "aaa": emit 1, add 2; then "aa" matches code 2
		{"aaa", []int{1, 2}, 3},
		// "abab": a=1 b=2; emit 1 add ab=3; emit 2 add ba=4; ab=3 at end
		{"abab", []int{1, 2, 3}, 1 + 2 + 2},
	}

	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, tt.codes, encoder{}.codes(tt.text))
			assert.Equal(t, tt.bits, CompressionSize(tt.text))
		})
	}
}

func TestCompressionSizeMatchesCodeBitLengths(t *testing.T) {
	t.Parallel()

	text := "sing, goddess, the anger of peleus' son achilleus\nand its devastation"
	want := 0
	for _, code := range (encoder{}).codes(text) {
		want += bits.Len(uint(code))
	}
	assert.Equal(t, want, CompressionSize(text))
}

func TestCompressionSizeDeterministic(t *testing.T) {
	t.Parallel()

	text := "ἄνδρα μοι ἔννεπε, μοῦσα, πολύτροπον"
	first := CompressionSize(text)
	for range 10 {
		assert.Equal(t, first, CompressionSize(text))
	}
}

func TestCompressionSizeMonotoneForRepeatedRune(t *testing.T) {
	t.Parallel()

	prev := 0
	for n := 1; n <= 500; n++ {
		size := CompressionSize(strings.Repeat("x", n))
		assert.GreaterOrEqual(t, size, prev, "length %d", n)
		prev = size
	}
}

func TestRepetitiveTextCompressesBetter(t *testing.T) {
	t.Parallel()

	repetitive := strings.Repeat("the wrath ", 50)

	rng := rand.New(rand.NewPCG(1, 2))
	var sb strings.Builder
	for range len(repetitive) {
		sb.WriteByte(byte('a' + rng.IntN(26)))
	}
	random := sb.String()

	assert.Less(t, CompressionSize(repetitive), CompressionSize(random))
}
