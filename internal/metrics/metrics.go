// Package metrics records service use cases as Prometheus metrics and serves
// them in the text exposition format.
package metrics

import (
	"context"
	"net/http"

	"github.com/alexanderramin/shiftpay/internal/service"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "shiftpay"

// UseCaseMetrics is a service.UseCaseObserver backed by Prometheus.
type UseCaseMetrics struct {
	// Total counts use cases by name and outcome (success, error).
	Total *prometheus.CounterVec
	// Duration observes use-case latency by name.
	Duration *prometheus.HistogramVec
	// DispatchFailures counts per-user report delivery failures.
	DispatchFailures prometheus.Counter

	gatherer prometheus.Gatherer
}

// NewUseCaseMetrics registers the metrics on reg. Pass a fresh
// prometheus.NewRegistry() in tests to avoid global state.
func NewUseCaseMetrics(reg *prometheus.Registry) *UseCaseMetrics {
	factory := promauto.With(reg)
	return &UseCaseMetrics{
		Total: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "use_case_total",
			Help:      "Service use cases executed, by name and outcome.",
		}, []string{"use_case", "outcome"}),
		Duration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "use_case_duration_seconds",
			Help:      "Service use-case latency in seconds.",
			Buckets:   []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1, 5},
		}, []string{"use_case"}),
		DispatchFailures: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "report_dispatch_failures_total",
			Help:      "Monthly reports that could not be delivered to a user.",
		}),
		gatherer: reg,
	}
}

var _ service.UseCaseObserver = (*UseCaseMetrics)(nil)

func (m *UseCaseMetrics) ObserveUseCase(_ context.Context, event service.UseCaseEvent) {
	outcome := "success"
	if !event.Success {
		outcome = "error"
	}
	m.Total.WithLabelValues(event.Name, outcome).Inc()
	m.Duration.WithLabelValues(event.Name).Observe(event.Duration.Seconds())

	if event.Name == "dispatch-month" {
		if failed, ok := event.Fields["failed"].(int); ok && failed > 0 {
			m.DispatchFailures.Add(float64(failed))
		}
	}
}

// Handler serves the registry's metrics.
func (m *UseCaseMetrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.gatherer, promhttp.HandlerOpts{})
}
