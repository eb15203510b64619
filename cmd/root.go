package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/tphakala/authorid/cmd/authors"
	"github.com/tphakala/authorid/cmd/clean"
	"github.com/tphakala/authorid/cmd/evaluate"
	"github.com/tphakala/authorid/cmd/identify"
	"github.com/tphakala/authorid/internal/conf"
	"github.com/tphakala/authorid/internal/logger"
)

// RootCommand creates and returns the root command. settings is filled in
// before any sub-command runs.
func RootCommand(settings *conf.Settings) *cobra.Command {
	var configFile string

	rootCmd := &cobra.Command{
		Use:           "authorid",
		Short:         "Stylometric authorship attribution",
		Long:          "Attribute texts to authors by combining word frequency, compression and character n-gram models.",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	// Set up the global flags for the root command.
	setupFlags(rootCmd, &configFile)

	cleanCmd := clean.Command()
	rootCmd.AddCommand(
		identify.Command(settings),
		evaluate.Command(settings),
		authors.Command(settings),
		cleanCmd,
	)

	rootCmd.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		// The cleaner needs no settings
		if cmd.Name() == cleanCmd.Name() {
			return nil
		}
		bindFlags(cmd)
		return initialize(configFile, settings)
	}

	return rootCmd
}

// initialize loads settings with command line flags taking precedence and
// installs the central logger.
func initialize(configFile string, settings *conf.Settings) error {
	loaded, err := conf.Load(configFile)
	if err != nil {
		return err
	}
	*settings = *loaded

	central, err := logger.NewCentralLogger(settings.LoggingConfig())
	if err != nil {
		return fmt.Errorf("failed to initialize logging: %w", err)
	}
	logger.SetGlobal(central)
	return nil
}

// flagBinding ties a persistent flag to its configuration key
type flagBinding struct {
	flag string
	key  string
}

// flagBindings lists every flag, global or sub-command, backed by a configuration key
var flagBindings = []flagBinding{
	{"debug", "debug"},
	{"workers", "workers"},
	{"order", "ngram.order"},
	{"features", "ngram.features"},
	{"alphabet", "ngram.alphabet"},
	{"chunk-size", "ngram.chunksize"},
	{"topn", "lexical.topn"},
	{"angular", "lexical.angular"},
	{"format", "output.format"},
	{"color", "output.color"},
	{"log-file", "log.file"},
	{"metrics-file", "metrics.file"},
	{"corpus", "corpus.path"},
	{"authors", "corpus.authors"},
	{"clean", "corpus.clean"},
	{"cache", "output.cache.enabled"},
}

// bindFlags binds the flags of the command being run to viper. Sub-commands
// share flag names, so only the running command's flags are bound.
func bindFlags(cmd *cobra.Command) {
	for _, b := range flagBindings {
		if f := cmd.Flags().Lookup(b.flag); f != nil {
			// BindPFlag only fails for a nil flag
			_ = viper.BindPFlag(b.key, f)
		}
	}
}

// setupFlags defines flags that are global to the command line interface
func setupFlags(rootCmd *cobra.Command, configFile *string) {
	flags := rootCmd.PersistentFlags()
	flags.StringVarP(configFile, "config", "c", "", "Path to a config file (default: search the standard locations)")
	flags.BoolP("debug", "d", false, "Enable debug output")
	flags.Int("workers", 0, "Parallel workers for per-author work, 0 uses all CPUs")
	flags.Int("order", 2, "Character n-gram length")
	flags.Int("features", 0, "High-variance n-gram features to keep, 0 keeps all")
	flags.String("alphabet", conf.AlphabetLowercase, "N-gram alphabet: lowercase or extended")
	flags.Int("chunk-size", 100, "Lines per n-gram training chunk")
	flags.Int("topn", 100, "Most frequent lemmas kept per author")
	flags.Bool("angular", false, "Use angular instead of cosine similarity for word frequencies")
	flags.StringP("format", "f", conf.FormatTable, "Output format: table, csv, json or yaml")
	flags.Bool("color", true, "Highlight table output")
	flags.String("log-file", "", "Also write JSON logs to this file")
	flags.String("metrics-file", "", "Write Prometheus metrics to this file after the run")
}
