package analysis

import (
	"fmt"

	"github.com/tphakala/authorid/internal/conf"
	"github.com/tphakala/authorid/internal/observability"
)

// NewWithMetrics builds a Service that records into a fresh metrics registry.
func NewWithMetrics(settings *conf.Settings, opts ...Option) (*Service, *observability.Metrics, error) {
	m, err := observability.NewMetrics()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create metrics: %w", err)
	}

	s, err := New(settings, append([]Option{WithMetrics(m.Stylometry)}, opts...)...)
	if err != nil {
		return nil, nil, err
	}
	return s, m, nil
}

// ExportMetrics writes m to the configured metrics file, if any.
func ExportMetrics(settings *conf.Settings, m *observability.Metrics) error {
	if settings.Metrics.File == "" || m == nil {
		return nil
	}
	return m.WriteToTextfile(settings.Metrics.File)
}
