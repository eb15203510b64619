package compression

import (
	"sync"

	"github.com/tphakala/authorid/internal/logger"
)

var (
	serviceLogger logger.Logger
	initOnce      sync.Once
)

// GetLogger returns the compression package logger scoped to the compression module.
func GetLogger() logger.Logger {
	initOnce.Do(func() {
		serviceLogger = logger.Global().Module("compression")
	})
	return serviceLogger
}
