// Package analysis wraps the ensemble with result caching, tracing and metrics.
package analysis

import (
	"sync"

	"github.com/tphakala/authorid/internal/logger"
)

var (
	serviceLogger logger.Logger
	initOnce      sync.Once
)

// GetLogger returns the analysis package logger scoped to the analysis module.
func GetLogger() logger.Logger {
	initOnce.Do(func() {
		serviceLogger = logger.Global().Module("analysis")
	})
	return serviceLogger
}
