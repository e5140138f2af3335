package relay

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Request outcomes recorded in quoterelay_requests_total.
const (
	OutcomeSent             = "sent"
	OutcomeMethodNotAllowed = "method_not_allowed"
	OutcomeInvalidBody      = "invalid_body"
	OutcomeMissingFields    = "missing_fields"
	OutcomeNotConfigured    = "not_configured"
	OutcomeProviderError    = "provider_error"
	OutcomeInternalError    = "internal_error"
)

// Metrics holds the relay collectors. A nil *Metrics records nothing.
type Metrics struct {
	requests *prometheus.CounterVec
	provider *prometheus.HistogramVec
}

// NewMetrics registers the relay collectors with reg.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)

	return &Metrics{
		requests: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: "quoterelay",
			Name:      "requests_total",
			Help:      "Relay requests by outcome.",
		}, []string{"outcome"}),
		provider: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "quoterelay",
			Name:      "provider_duration_seconds",
			Help:      "Duration of the outbound mail provider call.",
			Buckets:   []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30},
		}, []string{"outcome"}),
	}
}

func (m *Metrics) request(outcome string) {
	if m == nil {
		return
	}
	m.requests.WithLabelValues(outcome).Inc()
}

func (m *Metrics) providerCall(outcome string, d time.Duration) {
	if m == nil {
		return
	}
	m.provider.WithLabelValues(outcome).Observe(d.Seconds())
}
