package observability

import (
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestNewMetricsConcurrency verifies that NewMetrics can be called concurrently
// since every instance owns its registry
func TestNewMetricsConcurrency(t *testing.T) {
	const numGoroutines = 50

	var wg sync.WaitGroup
	wg.Add(numGoroutines)

	for range numGoroutines {
		go func() {
			defer wg.Done()

			metrics, err := NewMetrics()
			if err != nil {
				t.Errorf("NewMetrics failed: %v", err)
				return
			}
			if metrics.registry == nil {
				t.Error("metrics.registry is nil")
			}
			if metrics.Stylometry == nil {
				t.Error("metrics.Stylometry is nil")
			}
			metrics.Stylometry.RecordTopAuthor("homer")
		}()
	}

	wg.Wait()
}

func TestWriteToTextfile(t *testing.T) {
	t.Parallel()

	m, err := NewMetrics()
	require.NoError(t, err)
	m.Stylometry.SetCorpusSize(3, 42)
	m.Stylometry.RecordIdentify("lexical", 0.01, nil)

	path := filepath.Join(t.TempDir(), "authorid.prom")
	require.NoError(t, m.WriteToTextfile(path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "authorid_trained_authors 3")
	assert.Contains(t, string(data), "authorid_training_texts 42")
	assert.Contains(t, string(data), `authorid_identifications_total{model="lexical",status="success"} 1`)

	err = m.WriteToTextfile(filepath.Join(t.TempDir(), "missing", "dir", "x.prom"))
	require.Error(t, err)
}
