package siwe

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Verification outcomes, used as the outcome label value.
const (
	OutcomeVerified         = "verified"
	OutcomeMismatch         = "mismatch"
	OutcomeNotYetActive     = "not_yet_active"
	OutcomeExpired          = "expired"
	OutcomeDifferentNetwork = "different_network"
	OutcomeInvalidMessage   = "invalid_message"
	OutcomeInvalidSignature = "invalid_signature"
)

// Metrics contains the Prometheus metrics of a Verifier.
type Metrics struct {
	Verifications *prometheus.CounterVec
}

// NewMetrics initializes and registers the metrics with the default registerer.
func NewMetrics() *Metrics {
	return NewMetricsWithRegistry(nil)
}

// NewMetricsWithRegistry initializes and registers the metrics with a custom registry.
func NewMetricsWithRegistry(registry prometheus.Registerer) *Metrics {
	if registry == nil {
		registry = prometheus.DefaultRegisterer
	}
	factory := promauto.With(registry)

	return &Metrics{
		Verifications: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "siwe_verifications_total",
				Help: "The total number of SIWE verifications by outcome",
			},
			[]string{"outcome"},
		),
	}
}

func (m *Metrics) recordOutcome(outcome string) {
	if m == nil {
		return
	}
	m.Verifications.WithLabelValues(outcome).Inc()
}
