package report

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/tphakala/authorid/internal/analysis"
	"github.com/tphakala/authorid/internal/errors"
	"github.com/tphakala/authorid/internal/model"
)

func testResults() []*analysis.Result {
	dist := model.Distribution{{Author: "Pope", Probability: 0.7}, {Author: "Chapman", Probability: 0.3}}
	return []*analysis.Result{{
		TraceID:      "trace-1",
		Source:       "book1.txt",
		Top:          dist[0],
		Distribution: dist,
		Models: []analysis.ModelScores{
			{Name: "lexical", Weight: 0.5, Distribution: model.Distribution{{Author: "Pope", Probability: 0.9}, {Author: "Chapman", Probability: 0.1}}},
			{Name: "compression", Weight: 0.5, Distribution: model.Distribution{{Author: "Pope", Probability: 0.5}, {Author: "Chapman", Probability: 0.5}}},
		},
		Elapsed: 1500 * time.Millisecond,
	}}
}

func testEvaluation() *analysis.Evaluation {
	return &analysis.Evaluation{
		Texts: 4,
		Models: []analysis.ModelAccuracy{
			{Name: "lexical", Correct: 3, Total: 4, Accuracy: 0.75},
			{Name: "ensemble", Correct: 4, Total: 4, Accuracy: 1},
		},
		Misses: []analysis.Miss{{Author: "Pope", Excerpt: "1234"}},
	}
}

func TestNewRejectsUnknownFormat(t *testing.T) {
	t.Parallel()

	_, err := New("xml", false, false)
	require.Error(t, err)
	assert.True(t, errors.IsCategory(err, errors.CategoryOutput))

	err = Write(&bytes.Buffer{}, "xml", nil)
	require.Error(t, err)
}

func TestWriteTable(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	w, err := New("table", false, true)
	require.NoError(t, err)
	require.NoError(t, w.Write(&buf, testResults()))

	out := buf.String()
	lines := strings.Split(out, "\n")
	assert.Equal(t, []string{"SOURCE", "AUTHOR", "PROBABILITY", "lexical", "compression"}, strings.Fields(lines[0]))
	assert.Equal(t, []string{"book1.txt", "Pope", "0.7000", "Pope", "0.90", "Pope", "0.50"}, strings.Fields(lines[1]))
	assert.Contains(t, out, "book1.txt (trace trace-1, 1.5s)")
	assert.Contains(t, out, "2. Chapman")
	assert.NotContains(t, out, "\x1b[", "color disabled")
}

func TestWriteTableColored(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	w, err := New("table", true, false)
	require.NoError(t, err)
	require.NoError(t, w.Write(&buf, testResults()))
	assert.Contains(t, buf.String(), "\x1b[")
}

func TestWriteCSV(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	require.NoError(t, Write(&buf, "csv", testResults()))

	records, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 3)
	assert.Equal(t, []string{"source", "rank", "author", "ensemble", "lexical", "compression"}, records[0])
	assert.Equal(t, []string{"book1.txt", "1", "Pope", "0.700000", "0.900000", "0.500000"}, records[1])
	assert.Equal(t, []string{"book1.txt", "2", "Chapman", "0.300000", "0.100000", "0.500000"}, records[2])
}

func TestWriteJSON(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	require.NoError(t, Write(&buf, "json", testResults()))

	var decoded []analysis.Result
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
	require.Len(t, decoded, 1)
	assert.Equal(t, "Pope", decoded[0].Top.Author)
	assert.Equal(t, "trace-1", decoded[0].TraceID)
}

func TestWriteYAML(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	require.NoError(t, Write(&buf, "yaml", testResults()))
	assert.Contains(t, buf.String(), "trace_id: trace-1")

	var decoded []map[string]any
	require.NoError(t, yaml.Unmarshal(buf.Bytes(), &decoded))
	require.Len(t, decoded, 1)
	assert.Equal(t, "book1.txt", decoded[0]["source"])
}

func TestWriteEvaluation(t *testing.T) {
	t.Parallel()

	var table bytes.Buffer
	require.NoError(t, WriteEvaluation(&table, "table", testEvaluation()))
	assert.Contains(t, table.String(), "75.00%")
	assert.Contains(t, table.String(), `Pope -> (unscored): "1234"`)

	var csvOut bytes.Buffer
	require.NoError(t, WriteEvaluation(&csvOut, "csv", testEvaluation()))
	records, err := csv.NewReader(&csvOut).ReadAll()
	require.NoError(t, err)
	assert.Equal(t, []string{"ensemble", "4", "4", "1.000000"}, records[2])

	var yamlOut bytes.Buffer
	require.NoError(t, WriteEvaluation(&yamlOut, "yaml", testEvaluation()))
	var decoded analysis.Evaluation
	require.NoError(t, yaml.Unmarshal(yamlOut.Bytes(), &decoded))
	assert.Equal(t, 4, decoded.Texts)
	require.Len(t, decoded.Models, 2)
	assert.InDelta(t, 0.75, decoded.Models[0].Accuracy, 1e-12)
}
