// Package metrics provides custom Prometheus metrics for authorid.
package metrics

import (
	"fmt"
	"strings"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/tphakala/authorid/internal/errors"
)

// StylometryMetrics contains all Prometheus metrics related to training and identification.
type StylometryMetrics struct {
	// Performance metrics
	TrainDuration     *prometheus.HistogramVec
	IdentifyDuration  *prometheus.HistogramVec
	OperationDuration *prometheus.HistogramVec

	// Operation counters
	OperationTotal *prometheus.CounterVec
	IdentifyTotal  *prometheus.CounterVec
	ErrorsTotal    *prometheus.CounterVec
	TopAuthorTotal *prometheus.CounterVec

	// Current state gauges
	TrainedAuthorsGauge prometheus.Gauge
	TrainingTextsGauge  prometheus.Gauge
	AccuracyGauge       *prometheus.GaugeVec

	registry *prometheus.Registry
}

// NewStylometryMetrics creates a new instance of StylometryMetrics.
// It requires a Prometheus registry to register the metrics.
func NewStylometryMetrics(registry *prometheus.Registry) (*StylometryMetrics, error) {
	m := &StylometryMetrics{registry: registry}
	m.initMetrics()
	if err := registry.Register(m); err != nil {
		return nil, fmt.Errorf("failed to register stylometry metrics: %w", err)
	}
	return m, nil
}

func (m *StylometryMetrics) initMetrics() {
	m.TrainDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "authorid_train_duration_seconds",
			Help:    "Time taken to train a model",
			Buckets: prometheus.ExponentialBuckets(BucketStart10ms, BucketFactor2, BucketCount16),
		},
		[]string{"model"},
	)

	m.IdentifyDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "authorid_identify_duration_seconds",
			Help:    "Time taken to identify the author of one text",
			Buckets: prometheus.ExponentialBuckets(BucketStart1ms, BucketFactor2, BucketCount15),
		},
		[]string{"model"},
	)

	m.OperationDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "authorid_operation_duration_seconds",
			Help:    "Time taken by service operations",
			Buckets: prometheus.ExponentialBuckets(BucketStart1ms, BucketFactor2, BucketCount16),
		},
		[]string{"operation"},
	)

	m.OperationTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "authorid_operations_total",
			Help: "Total number of service operations by outcome",
		},
		[]string{"operation", "status"},
	)

	m.IdentifyTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "authorid_identifications_total",
			Help: "Total number of identifications per model by outcome",
		},
		[]string{"model", "status"},
	)

	m.ErrorsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "authorid_errors_total",
			Help: "Total number of errors by operation and error category",
		},
		[]string{"operation", "category"},
	)

	m.TopAuthorTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "authorid_top_author_total",
			Help: "Number of texts attributed to each author by the ensemble",
		},
		[]string{"author"},
	)

	m.TrainedAuthorsGauge = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "authorid_trained_authors",
			Help: "Number of authors in the most recent training corpus",
		},
	)

	m.TrainingTextsGauge = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "authorid_training_texts",
			Help: "Number of texts in the most recent training corpus",
		},
	)

	m.AccuracyGauge = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "authorid_evaluation_accuracy_ratio",
			Help: "Top-1 accuracy of the most recent evaluation",
		},
		[]string{"model"},
	)
}

// RecordTrain records a training run of one model.
func (m *StylometryMetrics) RecordTrain(model string, durationSeconds float64, err error) {
	if err != nil {
		m.RecordOperation(OpTrain, StatusError)
		m.RecordError(OpTrain, categorizeError(err))
		return
	}
	m.RecordOperation(OpTrain, StatusSuccess)
	m.TrainDuration.WithLabelValues(model).Observe(durationSeconds)
}

// RecordIdentify records one model's identification of a text.
func (m *StylometryMetrics) RecordIdentify(model string, durationSeconds float64, err error) {
	if err != nil {
		m.IdentifyTotal.WithLabelValues(model, StatusError).Inc()
		m.RecordError(OpIdentify, categorizeError(err))
		return
	}
	m.IdentifyTotal.WithLabelValues(model, StatusSuccess).Inc()
	m.IdentifyDuration.WithLabelValues(model).Observe(durationSeconds)
}

// RecordTopAuthor counts an ensemble attribution.
func (m *StylometryMetrics) RecordTopAuthor(author string) {
	m.TopAuthorTotal.WithLabelValues(author).Inc()
}

// SetCorpusSize records the size of the training corpus.
func (m *StylometryMetrics) SetCorpusSize(authors, texts int) {
	m.TrainedAuthorsGauge.Set(float64(authors))
	m.TrainingTextsGauge.Set(float64(texts))
}

// SetAccuracy records an evaluation's top-1 accuracy for a model.
func (m *StylometryMetrics) SetAccuracy(model string, ratio float64) {
	m.AccuracyGauge.WithLabelValues(model).Set(ratio)
}

// RecordOperation implements Recorder.
func (m *StylometryMetrics) RecordOperation(operation, status string) {
	m.OperationTotal.WithLabelValues(operation, status).Inc()
}

// RecordDuration implements Recorder.
func (m *StylometryMetrics) RecordDuration(operation string, seconds float64) {
	m.OperationDuration.WithLabelValues(operation).Observe(seconds)
}

// RecordError implements Recorder.
func (m *StylometryMetrics) RecordError(operation, errorType string) {
	m.ErrorsTotal.WithLabelValues(operation, errorType).Inc()
}

// categorizeError returns the error's category as a label value.
func categorizeError(err error) string {
	if err == nil {
		return "none"
	}
	return strings.ReplaceAll(string(errors.CategoryOf(err)), "-", "_")
}

// Describe implements the prometheus.Collector interface.
func (m *StylometryMetrics) Describe(ch chan<- *prometheus.Desc) {
	m.TrainDuration.Describe(ch)
	m.IdentifyDuration.Describe(ch)
	m.OperationDuration.Describe(ch)

	m.OperationTotal.Describe(ch)
	m.IdentifyTotal.Describe(ch)
	m.ErrorsTotal.Describe(ch)
	m.TopAuthorTotal.Describe(ch)

	ch <- m.TrainedAuthorsGauge.Desc()
	ch <- m.TrainingTextsGauge.Desc()
	m.AccuracyGauge.Describe(ch)
}

// Collect implements the prometheus.Collector interface.
func (m *StylometryMetrics) Collect(ch chan<- prometheus.Metric) {
	m.TrainDuration.Collect(ch)
	m.IdentifyDuration.Collect(ch)
	m.OperationDuration.Collect(ch)

	m.OperationTotal.Collect(ch)
	m.IdentifyTotal.Collect(ch)
	m.ErrorsTotal.Collect(ch)
	m.TopAuthorTotal.Collect(ch)

	ch <- m.TrainedAuthorsGauge
	ch <- m.TrainingTextsGauge
	m.AccuracyGauge.Collect(ch)
}
