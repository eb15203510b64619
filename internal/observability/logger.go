// Package observability provides metrics for authorid runs.
package observability

import "github.com/tphakala/authorid/internal/logger"

// getLogger follows the global logger, which the CLI replaces after loading settings.
func getLogger() logger.Logger {
	return logger.Global().Module("telemetry")
}
