// Package conf provides configuration management for authorid.
package conf

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/spf13/viper"

	"github.com/tphakala/authorid/internal/logger"
)

// WeightSettings holds the per-model ensemble weights
type WeightSettings struct {
	Lexical     float64 // weight of the bag-of-words model
	Compression float64 // weight of the compression model
	NGram       float64 // weight of the character n-gram classifier
}

// SVMSettings holds the linear support-vector classifier parameters
type SVMSettings struct {
	C   float64 // regularization parameter
	Eps float64 // stopping tolerance
}

// NGramSettings configures the character n-gram profiler
type NGramSettings struct {
	Order     int    // n-gram length N
	Features  int    // number of high-variance features kept, 0 keeps all
	Alphabet  string // "lowercase" or "extended"
	ChunkSize int    // lines per training chunk
	SVM       SVMSettings
}

// LexicalSettings configures the bag-of-words profiler
type LexicalSettings struct {
	TopN    int  // most frequent lemmas kept per text
	Angular bool // use angular similarity instead of raw cosine
}

// CorpusSettings configures the filesystem corpus loader
type CorpusSettings struct {
	Path            string   // root directory holding one sub-directory per author
	Authors         []string // restrict loading to these authors, empty loads all
	PrimaryMarker   string   // files whose name contains this are kept whole and placed first
	SplitParagraphs bool     // split other files on blank lines
	Clean           bool     // run the text cleaner on every file
}

// CacheSettings configures the identification result cache
type CacheSettings struct {
	Enabled bool
	TTL     time.Duration
}

// OutputSettings configures report rendering
type OutputSettings struct {
	Format string // table, csv, json or yaml
	Color  bool
	Cache  CacheSettings
}

// LogSettings configures logging
type LogSettings struct {
	Level string // trace, debug, info, warn or error
	File  string // optional JSON log file
}

// MetricsSettings configures metric export
type MetricsSettings struct {
	File string // write Prometheus text format here after a run
}

// Settings contains all configuration options for authorid
type Settings struct {
	Debug   bool
	Workers int // parallel workers for per-author work, 0 uses GOMAXPROCS

	Log LogSettings

	Ensemble struct {
		Weights WeightSettings
	}

	NGram   NGramSettings
	Lexical LexicalSettings
	Corpus  CorpusSettings
	Output  OutputSettings
	Metrics MetricsSettings
}

var (
	settingsInstance *Settings
	settingsMutex    sync.RWMutex
)

// Load reads the configuration file and environment variables into Settings.
// An explicit configFile overrides the default search paths; a missing
// default config is not an error.
func Load(configFile string) (*Settings, error) {
	settingsMutex.Lock()
	defer settingsMutex.Unlock()

	if err := initViper(configFile); err != nil {
		return nil, fmt.Errorf("error initializing viper: %w", err)
	}

	settings := &Settings{}
	if err := viper.Unmarshal(settings); err != nil {
		return nil, fmt.Errorf("error unmarshaling config into struct: %w", err)
	}

	if err := ValidateSettings(settings); err != nil {
		return nil, fmt.Errorf("error validating settings: %w", err)
	}

	settingsInstance = settings
	return settingsInstance, nil
}

// initViper sets defaults, search paths and environment bindings, then reads the config file
func initViper(configFile string) error {
	setDefaultConfig()

	if err := configureEnvironmentVariables(); err != nil {
		return err
	}

	if configFile != "" {
		viper.SetConfigFile(configFile)
		if err := viper.ReadInConfig(); err != nil {
			return fmt.Errorf("fatal error reading config file %s: %w", configFile, err)
		}
		return nil
	}

	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	for _, path := range GetDefaultConfigPaths() {
		viper.AddConfigPath(path)
	}

	if err := viper.ReadInConfig(); err != nil {
		var configFileNotFoundError viper.ConfigFileNotFoundError
		if errors.As(err, &configFileNotFoundError) {
			GetLogger().Debug("no config file found, using defaults")
			return nil
		}
		return fmt.Errorf("fatal error reading config file: %w", err)
	}

	GetLogger().Debug("config file loaded", logger.String("path", viper.ConfigFileUsed()))
	return nil
}

// GetSettings returns the most recently loaded settings, or nil
func GetSettings() *Settings {
	settingsMutex.RLock()
	defer settingsMutex.RUnlock()
	return settingsInstance
}
