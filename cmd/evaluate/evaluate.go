package evaluate

import (
	"github.com/spf13/cobra"

	"github.com/tphakala/authorid/internal/analysis"
	"github.com/tphakala/authorid/internal/conf"
	"github.com/tphakala/authorid/internal/corpus"
	"github.com/tphakala/authorid/internal/report"
	"github.com/tphakala/authorid/pkg/spinner"
)

// Command creates a new evaluate command that scores the models on texts
// held out from the corpus.
func Command(settings *conf.Settings) *cobra.Command {
	var holdOut int

	cmd := &cobra.Command{
		Use:   "evaluate",
		Short: "Measure attribution accuracy on held-out texts",
		Long:  "Hold out the last texts of every author, train on the rest and report top-1 accuracy per model.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, settings, holdOut)
		},
	}

	cmd.Flags().String("corpus", "data", "Corpus directory with one sub-directory per author")
	cmd.Flags().StringSlice("authors", nil, "Only load these authors")
	cmd.Flags().Bool("clean", false, "Strip notes and line numbers from corpus texts")
	cmd.Flags().IntVarP(&holdOut, "holdout", "n", 1, "Texts held out per author")

	return cmd
}

func run(cmd *cobra.Command, settings *conf.Settings, holdOut int) error {
	full, err := corpus.FromSettings(&settings.Corpus)
	if err != nil {
		return err
	}
	train, heldOut, err := corpus.HoldOut(full, holdOut)
	if err != nil {
		return err
	}

	// Every held-out text is distinct, so caching would only cost memory
	settings.Output.Cache.Enabled = false
	svc, m, err := analysis.NewWithMetrics(settings)
	if err != nil {
		return err
	}

	sp := spinner.ForWriter(cmd.ErrOrStderr())
	sp.Start("evaluating")
	eval, err := svc.Evaluate(cmd.Context(), train, heldOut)
	sp.Stop()
	if err != nil {
		return err
	}

	writer, err := report.New(settings.Output.Format, settings.Output.Color, false)
	if err != nil {
		return err
	}
	if err := writer.WriteEvaluation(cmd.OutOrStdout(), eval); err != nil {
		return err
	}
	return analysis.ExportMetrics(settings, m)
}
