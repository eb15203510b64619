// Package metrics provides custom Prometheus metrics for authorid.
package metrics

// Recorder defines a minimal interface for recording metrics.
type Recorder interface {
	// RecordOperation records an operation (e.g. "train", "identify") with its status.
	RecordOperation(operation, status string)

	// RecordDuration records the duration of an operation in seconds.
	RecordDuration(operation string, seconds float64)

	// RecordError records an error occurrence with its category.
	RecordError(operation, errorType string)
}

// NoOpRecorder is a no-op implementation of the Recorder interface.
type NoOpRecorder struct{}

// RecordOperation does nothing.
func (n *NoOpRecorder) RecordOperation(operation, status string) {}

// RecordDuration does nothing.
func (n *NoOpRecorder) RecordDuration(operation string, seconds float64) {}

// RecordError does nothing.
func (n *NoOpRecorder) RecordError(operation, errorType string) {}

var (
	_ Recorder = (*StylometryMetrics)(nil)
	_ Recorder = (*NoOpRecorder)(nil)
)
