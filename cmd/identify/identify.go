package identify

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/tphakala/authorid/internal/analysis"
	"github.com/tphakala/authorid/internal/conf"
	"github.com/tphakala/authorid/internal/corpus"
	"github.com/tphakala/authorid/internal/report"
	"github.com/tphakala/authorid/pkg/spinner"
)

// Command creates a new identify command that trains on a corpus and
// attributes each input file.
func Command(settings *conf.Settings) *cobra.Command {
	var verbose bool

	cmd := &cobra.Command{
		Use:   "identify [file...]",
		Short: "Identify the author of one or more texts",
		Long:  "Train the ensemble on the corpus directory, then attribute each file. Use - to read standard input.",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, settings, args, verbose)
		},
	}

	setupFlags(cmd, &verbose)

	return cmd
}

// setupFlags configures flags specific to the identify command.
func setupFlags(cmd *cobra.Command, verbose *bool) {
	cmd.Flags().String("corpus", "data", "Corpus directory with one sub-directory per author")
	cmd.Flags().StringSlice("authors", nil, "Only load these authors")
	cmd.Flags().Bool("clean", false, "Strip notes and line numbers from corpus texts")
	cmd.Flags().Bool("cache", true, "Cache results of repeated texts")
	cmd.Flags().BoolVarP(verbose, "verbose", "v", false, "Print the full distribution for each text")
}

func run(cmd *cobra.Command, settings *conf.Settings, files []string, verbose bool) error {
	ctx := cmd.Context()

	writer, err := report.New(settings.Output.Format, settings.Output.Color, verbose)
	if err != nil {
		return err
	}

	texts := make([]string, len(files))
	for i, f := range files {
		if texts[i], err = readText(cmd.InOrStdin(), f); err != nil {
			return err
		}
	}

	training, err := corpus.FromSettings(&settings.Corpus)
	if err != nil {
		return err
	}

	svc, m, err := analysis.NewWithMetrics(settings)
	if err != nil {
		return err
	}
	sp := spinner.ForWriter(cmd.ErrOrStderr())
	sp.Start(fmt.Sprintf("training on %d texts", training.TextCount()))
	err = svc.Train(ctx, training)
	sp.Stop()
	if err != nil {
		return err
	}

	results := make([]*analysis.Result, 0, len(files))
	for i, f := range files {
		r, err := svc.Identify(ctx, texts[i])
		if err != nil {
			return fmt.Errorf("%s: %w", f, err)
		}
		r.Source = filepath.Base(f)
		results = append(results, r)
	}

	if err := writer.Write(cmd.OutOrStdout(), results); err != nil {
		return err
	}
	return analysis.ExportMetrics(settings, m)
}

// readText reads a file, or stdin for "-".
func readText(stdin io.Reader, path string) (string, error) {
	if path == "-" {
		data, err := io.ReadAll(stdin)
		if err != nil {
			return "", fmt.Errorf("failed to read standard input: %w", err)
		}
		return string(data), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("failed to read %s: %w", path, err)
	}
	return string(data), nil
}
