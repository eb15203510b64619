package conf

import "github.com/tphakala/authorid/internal/logger"

// GetLogger returns the config package logger scoped to the config module.
// The logger is fetched from the global logger each time so it follows
// a central logger installed after package init.
func GetLogger() logger.Logger {
	return logger.Global().Module("config")
}

// LoggingConfig translates log settings into a logger configuration.
// Console output goes to stderr so reports on stdout stay machine readable.
func (s *Settings) LoggingConfig() *logger.LoggingConfig {
	level := s.Log.Level
	if s.Debug {
		level = string(logger.LogLevelDebug)
	}

	cfg := &logger.LoggingConfig{
		DefaultLevel: level,
		Timezone:     "Local",
		Console: &logger.ConsoleOutput{
			Enabled: true,
			Level:   level,
			Stderr:  true,
		},
	}
	if s.Log.File != "" {
		cfg.FileOutput = &logger.FileOutput{
			Enabled: true,
			Path:    s.Log.File,
			Level:   level,
		}
	}
	return cfg
}
