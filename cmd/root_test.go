package cmd

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tphakala/authorid/internal/conf"
)

func writeCorpus(t *testing.T) string {
	t.Helper()

	root := t.TempDir()
	files := map[string]string{
		"Homer/odyssey.txt":   "Tell me, O muse, of that ingenious hero.\n\nSo they spoke.",
		"Virgil/aeneid.txt":   "Arms, and the man I sing.",
		".hidden/ignored.txt": "not an author",
	}
	for name, text := range files {
		path := filepath.Join(root, name)
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, []byte(text), 0o600))
	}
	return root
}

func TestAuthorsCommandUsesFlags(t *testing.T) {
	root := writeCorpus(t)
	settings := &conf.Settings{}

	var out bytes.Buffer
	rootCmd := RootCommand(settings)
	rootCmd.SetOut(&out)
	rootCmd.SetArgs([]string{"authors", "--corpus", root, "--workers", "2"})
	require.NoError(t, rootCmd.Execute())

	assert.Equal(t, root, settings.Corpus.Path)
	assert.Equal(t, 2, settings.Workers)

	lines := bytes.Split(bytes.TrimSpace(out.Bytes()), []byte("\n"))
	require.Len(t, lines, 3)
	assert.Equal(t, []string{"AUTHOR", "TEXTS"}, fields(lines[0]))
	assert.Equal(t, []string{"Homer", "2"}, fields(lines[1]))
	assert.Equal(t, []string{"Virgil", "1"}, fields(lines[2]))
}

func TestRootCommandRejectsInvalidSettings(t *testing.T) {
	settings := &conf.Settings{}

	rootCmd := RootCommand(settings)
	rootCmd.SetOut(&bytes.Buffer{})
	rootCmd.SetArgs([]string{"authors", "--corpus", writeCorpus(t), "--order", "0"})
	assert.Error(t, rootCmd.Execute())
}

func fields(line []byte) []string {
	var out []string
	for _, f := range bytes.Fields(line) {
		out = append(out, string(f))
	}
	return out
}
