package ensemble

import (
	"sync"

	"github.com/tphakala/authorid/internal/logger"
)

var (
	serviceLogger logger.Logger
	initOnce      sync.Once
)

// GetLogger returns the ensemble package logger scoped to the ensemble module.
func GetLogger() logger.Logger {
	initOnce.Do(func() {
		serviceLogger = logger.Global().Module("ensemble")
	})
	return serviceLogger
}
