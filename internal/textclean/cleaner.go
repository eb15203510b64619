// Package textclean strips editorial apparatus (notes, footnotes, line
// numbers, stanza markers) from translated texts before they enter a corpus.
package textclean

import "regexp"

// Rules selects which cleaning steps run. Steps always run in field order.
type Rules struct {
	Notes               bool // bracketed notes, possibly spanning lines
	Footnotes           bool // *marker* footnote references
	Numbers             bool // every run of digits with trailing dots
	RomanNumerals       bool // stanza markers such as "IV."
	Indentation         bool // whitespace at the start of lines
	TrailingLineNumbers bool // numbers at the end of lines
	LeadingLineNumbers  bool // numbers at the start of lines
}

// DefaultRules removes notes, indentation and line numbers but keeps
// numbers inside the text.
func DefaultRules() Rules {
	return Rules{
		Notes:               true,
		Indentation:         true,
		TrailingLineNumbers: true,
		LeadingLineNumbers:  true,
	}
}

// AllRules enables every step.
func AllRules() Rules {
	return Rules{
		Notes:               true,
		Footnotes:           true,
		Numbers:             true,
		RomanNumerals:       true,
		Indentation:         true,
		TrailingLineNumbers: true,
		LeadingLineNumbers:  true,
	}
}

type rule struct {
	pattern     *regexp.Regexp
	replacement string
}

var (
	notesRe       = regexp.MustCompile(`(?s)\[.*?\]`)
	footnotesRe   = regexp.MustCompile(`\*\s*\w*\*`)
	numbersRe     = regexp.MustCompile(`[0-9]+\.*`)
	romanRe       = regexp.MustCompile(`[IVXLCM]+\.`)
	indentRe      = regexp.MustCompile(`\n[\r\t\f\v ]+`)
	trailingNumRe = regexp.MustCompile(`[ \t]*\d+[ \t]*\n`)
	leadingNumRe  = regexp.MustCompile(`\n[ \t]*\d+[ \t]*`)
)

// Cleaner applies a fixed sequence of regular expression rewrites.
// It is safe for concurrent use.
type Cleaner struct {
	rules []rule
}

// New returns a Cleaner for the selected rules.
func New(r Rules) *Cleaner {
	steps := []struct {
		enabled bool
		rule
	}{
		{r.Notes, rule{notesRe, ""}},
		{r.Footnotes, rule{footnotesRe, ""}},
		{r.Numbers, rule{numbersRe, ""}},
		{r.RomanNumerals, rule{romanRe, ""}},
		{r.Indentation, rule{indentRe, "\n"}},
		{r.TrailingLineNumbers, rule{trailingNumRe, "\n"}},
		{r.LeadingLineNumbers, rule{leadingNumRe, "\n"}},
	}

	c := &Cleaner{}
	for _, s := range steps {
		if s.enabled {
			c.rules = append(c.rules, s.rule)
		}
	}
	return c
}

// Clean returns text with every enabled rule applied.
func (c *Cleaner) Clean(text string) string {
	for _, r := range c.rules {
		text = r.pattern.ReplaceAllLiteralString(text, r.replacement)
	}
	return text
}
