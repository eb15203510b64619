// Package observability provides metrics for authorid runs.
package observability

import (
	"fmt"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/tphakala/authorid/internal/logger"
	"github.com/tphakala/authorid/internal/observability/metrics"
)

// Metrics holds all the metric collectors for the application.
type Metrics struct {
	registry   *prometheus.Registry
	Stylometry *metrics.StylometryMetrics
}

// NewMetrics creates a new instance of Metrics on a private registry.
func NewMetrics() (*Metrics, error) {
	registry := prometheus.NewRegistry()

	stylometryMetrics, err := metrics.NewStylometryMetrics(registry)
	if err != nil {
		return nil, fmt.Errorf("failed to create stylometry metrics: %w", err)
	}

	return &Metrics{
		registry:   registry,
		Stylometry: stylometryMetrics,
	}, nil
}

// Registry returns the registry the collectors are registered with.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// WriteToTextfile writes every collected metric to path in the Prometheus
// text exposition format, for pickup by a node exporter textfile collector.
func (m *Metrics) WriteToTextfile(path string) error {
	if err := prometheus.WriteToTextfile(path, m.registry); err != nil {
		return fmt.Errorf("failed to write metrics to %s: %w", path, err)
	}
	getLogger().Debug("metrics written", logger.String("path", path))
	return nil
}
