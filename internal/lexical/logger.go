package lexical

import (
	"sync"

	"github.com/tphakala/authorid/internal/logger"
)

var (
	serviceLogger logger.Logger
	initOnce      sync.Once
)

// GetLogger returns the lexical package logger scoped to the lexical module.
func GetLogger() logger.Logger {
	initOnce.Do(func() {
		serviceLogger = logger.Global().Module("lexical")
	})
	return serviceLogger
}
