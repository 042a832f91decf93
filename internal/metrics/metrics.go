// Package metrics provides Prometheus metrics for the flight delay service:
// prediction traffic, request validation failures, model training runs and
// general system health, exposed on the metrics endpoint.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all Prometheus metrics for the delay service.
type Metrics struct {
	// Serving metrics
	PredictionsTotal   prometheus.Counter   // Prediction batches served
	PredictionRows     prometheus.Counter   // Individual flights scored
	DelayedPredictions prometheus.Counter   // Flights scored as delayed
	PredictionLatency  prometheus.Histogram // End-to-end /predict latency in seconds
	ValidationFailures prometheus.Counter   // Requests rejected before reaching the core

	// Training metrics
	TrainingsTotal   prometheus.Counter   // Model fits completed
	TrainingFailures prometheus.Counter   // Model fits that errored
	TrainingDuration prometheus.Histogram // Fit duration in seconds
	TrainingRows     prometheus.Gauge     // Rows in the last training set
	ModelReady       prometheus.Gauge     // 1 once a model has been published

	// System metrics
	ErrorsTotal prometheus.Counter // Total number of errors encountered
}

// New creates and registers all metrics using the default registry.
func New() *Metrics {
	return NewWithRegistry(prometheus.DefaultRegisterer)
}

// NewWithRegistry creates metrics with a custom registry (useful for testing).
// This allows isolated metric collection in tests without touching the
// global Prometheus registry.
func NewWithRegistry(registerer prometheus.Registerer) *Metrics {
	factory := promauto.With(registerer)
	return &Metrics{
		PredictionsTotal: factory.NewCounter(prometheus.CounterOpts{
			Name: "predictions_total",
			Help: "Total number of prediction batches served",
		}),
		PredictionRows: factory.NewCounter(prometheus.CounterOpts{
			Name: "prediction_rows_total",
			Help: "Total number of individual flights scored",
		}),
		DelayedPredictions: factory.NewCounter(prometheus.CounterOpts{
			Name: "delayed_predictions_total",
			Help: "Total number of flights predicted as delayed",
		}),
		PredictionLatency: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "prediction_latency_seconds",
			Help:    "End-to-end prediction request latency in seconds",
			Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1.0, 2.5, 5.0},
		}),
		ValidationFailures: factory.NewCounter(prometheus.CounterOpts{
			Name: "validation_failures_total",
			Help: "Total number of requests rejected by input validation",
		}),
		TrainingsTotal: factory.NewCounter(prometheus.CounterOpts{
			Name: "trainings_total",
			Help: "Total number of completed model training runs",
		}),
		TrainingFailures: factory.NewCounter(prometheus.CounterOpts{
			Name: "training_failures_total",
			Help: "Total number of failed model training runs",
		}),
		TrainingDuration: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "training_duration_seconds",
			Help:    "Model training duration in seconds",
			Buckets: prometheus.ExponentialBuckets(0.01, 2, 12),
		}),
		TrainingRows: factory.NewGauge(prometheus.GaugeOpts{
			Name: "training_rows",
			Help: "Number of rows in the most recent training set",
		}),
		ModelReady: factory.NewGauge(prometheus.GaugeOpts{
			Name: "model_ready",
			Help: "Whether a fitted model has been published (0 or 1)",
		}),
		ErrorsTotal: factory.NewCounter(prometheus.CounterOpts{
			Name: "errors_total",
			Help: "Total number of errors encountered",
		}),
	}
}
