package metrics

import (
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/ppiankov/nirnay/internal/model"
)

const namespace = "nirnay"

// Metrics collects extraction and batch counters in a private registry
type Metrics struct {
	registry *prometheus.Registry

	extractionsTotal   *prometheus.CounterVec
	extractionDuration *prometheus.HistogramVec
	extractedRunes     *prometheus.HistogramVec
	documentsTotal     *prometheus.CounterVec
	documentDuration   *prometheus.HistogramVec
	breakerTransitions *prometheus.CounterVec
}

// New creates the metric set.
func New() *Metrics {
	registry := prometheus.NewRegistry()

	extractionsTotal := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "extract",
			Name:      "documents_total",
			Help:      "Dispatched extractions by handler and the method that produced text.",
		},
		[]string{"handler", "method"},
	)
	extractionDuration := prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "extract",
			Name:      "duration_seconds",
			Help:      "Extraction duration in seconds by handler.",
			Buckets:   []float64{0.01, 0.05, 0.1, 0.5, 1, 2, 5, 10, 30, 60},
		},
		[]string{"handler"},
	)
	extractedRunes := prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "extract",
			Name:      "text_runes",
			Help:      "Characters of extracted text by handler.",
			Buckets:   prometheus.ExponentialBuckets(10, 4, 8),
		},
		[]string{"handler"},
	)
	documentsTotal := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "batch",
			Name:      "cases_total",
			Help:      "Analysed case files by status.",
		},
		[]string{"status"},
	)
	documentDuration := prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "batch",
			Name:      "case_duration_seconds",
			Help:      "Case analysis duration in seconds by status.",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"status"},
	)
	breakerTransitions := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "exec",
			Name:      "breaker_transitions_total",
			Help:      "Circuit breaker state changes by binary and target state.",
		},
		[]string{"binary", "to"},
	)

	registry.MustRegister(extractionsTotal, extractionDuration, extractedRunes,
		documentsTotal, documentDuration, breakerTransitions)

	return &Metrics{
		registry:           registry,
		extractionsTotal:   extractionsTotal,
		extractionDuration: extractionDuration,
		extractedRunes:     extractedRunes,
		documentsTotal:     documentsTotal,
		documentDuration:   documentDuration,
		breakerTransitions: breakerTransitions,
	}
}

// Registry exposes the underlying registry
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// ObserveExtraction records one dispatched extraction.
func (m *Metrics) ObserveExtraction(handler string, method model.Method, runes int, elapsed time.Duration) {
	label := string(method)
	if method == model.MethodNone {
		label = "none"
	}
	m.extractionsTotal.WithLabelValues(handler, label).Inc()
	m.extractionDuration.WithLabelValues(handler).Observe(elapsed.Seconds())
	m.extractedRunes.WithLabelValues(handler).Observe(float64(runes))
}

// FinishCase records one analysed case file
func (m *Metrics) FinishCase(duration time.Duration, err error) {
	status := "success"
	if err != nil {
		status = "error"
	}
	m.documentsTotal.WithLabelValues(status).Inc()
	m.documentDuration.WithLabelValues(status).Observe(duration.Seconds())
}

// ObserveBreaker records a breaker state change
func (m *Metrics) ObserveBreaker(binary, to string) {
	m.breakerTransitions.WithLabelValues(binary, to).Inc()
}

// WriteTextfile writes the registry in the node_exporter textfile format.
func (m *Metrics) WriteTextfile(path string) error {
	if err := prometheus.WriteToTextfile(path, m.registry); err != nil {
		return fmt.Errorf("write metrics: %w", err)
	}
	return nil
}
