// conf/defaults.go default values for settings
package conf

import (
	"time"

	"github.com/spf13/viper"
)

const oneThird = 1.0 / 3.0

// Sets default values for the configuration.
func setDefaultConfig() {
	viper.SetDefault("debug", false)
	viper.SetDefault("workers", 0)

	viper.SetDefault("log.level", "info")
	viper.SetDefault("log.file", "")

	viper.SetDefault("ensemble.weights.lexical", oneThird)
	viper.SetDefault("ensemble.weights.compression", oneThird)
	viper.SetDefault("ensemble.weights.ngram", oneThird)

	viper.SetDefault("ngram.order", 2)
	viper.SetDefault("ngram.features", 0)
	viper.SetDefault("ngram.alphabet", AlphabetLowercase)
	viper.SetDefault("ngram.chunksize", 100)
	viper.SetDefault("ngram.svm.c", 1.0)
	viper.SetDefault("ngram.svm.eps", 0.001)

	viper.SetDefault("lexical.topn", 100)
	viper.SetDefault("lexical.angular", false)

	viper.SetDefault("corpus.path", "data")
	viper.SetDefault("corpus.authors", []string{})
	viper.SetDefault("corpus.primarymarker", "iliad")
	viper.SetDefault("corpus.splitparagraphs", true)
	viper.SetDefault("corpus.clean", false)

	viper.SetDefault("output.format", FormatTable)
	viper.SetDefault("output.color", true)
	viper.SetDefault("output.cache.enabled", true)
	viper.SetDefault("output.cache.ttl", 10*time.Minute)

	viper.SetDefault("metrics.file", "")
}
