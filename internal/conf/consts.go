package conf

// Alphabet names accepted by ngram.alphabet
const (
	AlphabetLowercase = "lowercase"
	AlphabetExtended  = "extended"
)

// Report formats accepted by output.format
const (
	FormatTable = "table"
	FormatCSV   = "csv"
	FormatJSON  = "json"
	FormatYAML  = "yaml"
)

// MaxNGramOrder bounds the feature space at |alphabet|^order.
const MaxNGramOrder = 4

// AlphabetSize returns the symbol count of a named alphabet, or 0 if unknown.
// The extended alphabet is a-z, 32 ASCII punctuation marks and space.
func AlphabetSize(name string) int {
	switch name {
	case AlphabetLowercase:
		return 26
	case AlphabetExtended:
		return 26 + 32 + 1
	default:
		return 0
	}
}
