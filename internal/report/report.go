// Package report renders identification results and evaluation summaries.
package report

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"slices"
	"strconv"
	"text/tabwriter"

	"github.com/fatih/color"
	"gopkg.in/yaml.v3"

	"github.com/tphakala/authorid/internal/analysis"
	"github.com/tphakala/authorid/internal/conf"
	"github.com/tphakala/authorid/internal/errors"
)

var formats = []string{conf.FormatTable, conf.FormatCSV, conf.FormatJSON, conf.FormatYAML}

// Writer renders reports in one format.
type Writer struct {
	format  string
	verbose bool

	author *color.Color
	miss   *color.Color
	header *color.Color
}

// New returns a Writer for format. Color only affects the table format.
func New(format string, colored, verbose bool) (*Writer, error) {
	if !slices.Contains(formats, format) {
		return nil, errors.Newf("unknown output format %q, expected one of %v", format, formats).
			Component("report").
			Category(errors.CategoryOutput).
			Build()
	}

	w := &Writer{
		format:  format,
		verbose: verbose,
		author:  color.New(color.FgGreen, color.Bold),
		miss:    color.New(color.FgRed),
		header:  color.New(color.Bold),
	}
	for _, c := range []*color.Color{w.author, w.miss, w.header} {
		if colored {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
	}
	return w, nil
}

// Write renders results to out without color.
func Write(out io.Writer, format string, results []*analysis.Result) error {
	w, err := New(format, false, false)
	if err != nil {
		return err
	}
	return w.Write(out, results)
}

// WriteEvaluation renders eval to out without color.
func WriteEvaluation(out io.Writer, format string, eval *analysis.Evaluation) error {
	w, err := New(format, false, false)
	if err != nil {
		return err
	}
	return w.WriteEvaluation(out, eval)
}

// Write renders identification results.
func (w *Writer) Write(out io.Writer, results []*analysis.Result) error {
	var err error
	switch w.format {
	case conf.FormatTable:
		err = w.resultsTable(out, results)
	case conf.FormatCSV:
		err = resultsCSV(out, results)
	case conf.FormatJSON:
		err = writeJSON(out, results)
	case conf.FormatYAML:
		err = writeYAML(out, results)
	}
	if err != nil {
		return outputError(err)
	}
	return nil
}

// WriteEvaluation renders an evaluation summary.
func (w *Writer) WriteEvaluation(out io.Writer, eval *analysis.Evaluation) error {
	var err error
	switch w.format {
	case conf.FormatTable:
		err = w.evaluationTable(out, eval)
	case conf.FormatCSV:
		err = evaluationCSV(out, eval)
	case conf.FormatJSON:
		err = writeJSON(out, eval)
	case conf.FormatYAML:
		err = writeYAML(out, eval)
	}
	if err != nil {
		return outputError(err)
	}
	return nil
}

func outputError(err error) error {
	return errors.New(fmt.Errorf("failed to write report: %w", err)).
		Component("report").
		Category(errors.CategoryOutput).
		Build()
}

func (w *Writer) resultsTable(out io.Writer, results []*analysis.Result) error {
	tw := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)

	header := "SOURCE\tAUTHOR\tPROBABILITY"
	if len(results) > 0 {
		for _, m := range results[0].Models {
			header += "\t" + m.Name
		}
	}
	fmt.Fprintln(tw, w.header.Sprint(header))

	for _, r := range results {
		line := fmt.Sprintf("%s\t%s\t%.4f", r.Source, w.author.Sprint(r.Top.Author), r.Top.Probability)
		for _, m := range r.Models {
			top, _ := m.Distribution.Top()
			line += fmt.Sprintf("\t%s %.2f", top.Author, top.Probability)
		}
		fmt.Fprintln(tw, line)
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	if !w.verbose {
		return nil
	}
	for _, r := range results {
		if _, err := fmt.Fprintf(out, "\n%s (trace %s, %s)\n", r.Source, r.TraceID, r.Elapsed); err != nil {
			return err
		}
		for i, p := range r.Distribution {
			if _, err := fmt.Fprintf(out, "  %2d. %-20s %.4f\n", i+1, p.Author, p.Probability); err != nil {
				return err
			}
		}
	}
	return nil
}

// resultsCSV writes one row per source and author with the ensemble and
// member probabilities.
func resultsCSV(out io.Writer, results []*analysis.Result) error {
	cw := csv.NewWriter(out)

	header := []string{"source", "rank", "author", "ensemble"}
	if len(results) > 0 {
		for _, m := range results[0].Models {
			header = append(header, m.Name)
		}
	}
	if err := cw.Write(header); err != nil {
		return err
	}

	for _, r := range results {
		for i, p := range r.Distribution {
			row := []string{r.Source, strconv.Itoa(i + 1), p.Author, formatFloat(p.Probability)}
			for _, m := range r.Models {
				prob, _ := m.Distribution.Probability(p.Author)
				row = append(row, formatFloat(prob))
			}
			if err := cw.Write(row); err != nil {
				return err
			}
		}
	}

	cw.Flush()
	return cw.Error()
}

func (w *Writer) evaluationTable(out io.Writer, eval *analysis.Evaluation) error {
	tw := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, w.header.Sprint("MODEL\tCORRECT\tTOTAL\tACCURACY"))
	for _, m := range eval.Models {
		fmt.Fprintf(tw, "%s\t%d\t%d\t%.2f%%\n", m.Name, m.Correct, m.Total, m.Accuracy*100)
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	if len(eval.Misses) == 0 {
		return nil
	}
	if _, err := fmt.Fprintf(out, "\n%d misattributed texts:\n", len(eval.Misses)); err != nil {
		return err
	}
	for _, m := range eval.Misses {
		predicted := m.Predicted
		if predicted == "" {
			predicted = "(unscored)"
		}
		if _, err := fmt.Fprintf(out, "  %s -> %s: %q\n", m.Author, w.miss.Sprint(predicted), m.Excerpt); err != nil {
			return err
		}
	}
	return nil
}

func evaluationCSV(out io.Writer, eval *analysis.Evaluation) error {
	cw := csv.NewWriter(out)
	if err := cw.Write([]string{"model", "correct", "total", "accuracy"}); err != nil {
		return err
	}
	for _, m := range eval.Models {
		row := []string{m.Name, strconv.Itoa(m.Correct), strconv.Itoa(m.Total), formatFloat(m.Accuracy)}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

func writeJSON(out io.Writer, v any) error {
	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func writeYAML(out io.Writer, v any) error {
	enc := yaml.NewEncoder(out)
	enc.SetIndent(2)
	if err := enc.Encode(v); err != nil {
		return err
	}
	return enc.Close()
}

func formatFloat(f float64) string {
	return strconv.FormatFloat(f, 'f', 6, 64)
}
