// Package lzw measures how many bits a Lempel-Ziv-Welch coder needs for a text.
// Only the size is computed; no encoded stream is kept.
package lzw

import "math/bits"

// entry is a dictionary key: an existing code extended by one rune.
type entry struct {
	prefix int
	r      rune
}

// encoder walks a text through an LZW dictionary. The zero value is ready to use.
type encoder struct {
	// emit is called with every output code when set
	emit func(code int)
}

// CompressionSize returns the number of bits an LZW coder emits for text.
// Each code costs its own bit length, so the dictionary grows the cost
// of later codes. An empty text has size 0.
func CompressionSize(text string) int {
	var e encoder
	return e.size(text)
}

// codes returns the code sequence the coder emits for text.
func (e encoder) codes(text string) []int {
	var codes []int
	e.emit = func(code int) { codes = append(codes, code) }
	e.size(text)
	return codes
}

func (e encoder) size(text string) int {
	if text == "" {
		return 0
	}

	// Seed codes follow first occurrence so the same text always gets the same codes.
	dict := make(map[entry]int, len(text))
	next := 1
	for _, r := range text {
		k := entry{0, r}
		if _, ok := dict[k]; !ok {
			dict[k] = next
			next++
		}
	}

	total := 0
	prefix := 0
	for _, r := range text {
		if code, ok := dict[entry{prefix, r}]; ok {
			prefix = code
			continue
		}

		total += e.output(prefix)
		dict[entry{prefix, r}] = next
		next++
		prefix = dict[entry{0, r}]
	}

	if prefix != 0 {
		total += e.output(prefix)
	}
	return total
}

func (e encoder) output(code int) int {
	if e.emit != nil {
		e.emit(code)
	}
	return bits.Len(uint(code))
}
