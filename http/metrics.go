package http

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics covers predictions and request latency. A nil *Metrics is a no-op.
type Metrics struct {
	Predictions      *prometheus.CounterVec
	PredictionErrors *prometheus.CounterVec
	RequestDuration  *prometheus.HistogramVec
}

// NewMetrics registers the collectors on reg.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		Predictions: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "loanrisk_predictions_total",
			Help: "Predictions served by verdict",
		}, []string{"verdict"}), // verdict: "repay", "default"

		PredictionErrors: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "loanrisk_prediction_errors_total",
			Help: "Prediction requests that ended in an error, by kind",
		}, []string{"kind"}), // kind: "validation", "division", "schema", "internal"

		RequestDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "loanrisk_http_request_duration_seconds",
			Help:    "HTTP request duration by route pattern and status code",
			Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1},
		}, []string{"route", "code"}),
	}
}

func (m *Metrics) IncrementPrediction(verdict string) {
	if m != nil {
		m.Predictions.WithLabelValues(verdict).Inc()
	}
}

func (m *Metrics) IncrementError(kind string) {
	if m != nil {
		m.PredictionErrors.WithLabelValues(kind).Inc()
	}
}

func (m *Metrics) ObserveRequest(route, code string, d time.Duration) {
	if m != nil {
		m.RequestDuration.WithLabelValues(route, code).Observe(d.Seconds())
	}
}
