package corpus

import (
	"sync"

	"github.com/tphakala/authorid/internal/logger"
)

var (
	serviceLogger logger.Logger
	initOnce      sync.Once
)

// GetLogger returns the corpus package logger scoped to the corpus module.
func GetLogger() logger.Logger {
	initOnce.Do(func() {
		serviceLogger = logger.Global().Module("corpus")
	})
	return serviceLogger
}
