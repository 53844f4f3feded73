package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics provides observability for the boarding-house module.
// Tracks registrations, verification outcomes, and compliance path durations.
type Metrics struct {
	Registrations  prometheus.Counter
	Verifications  *prometheus.CounterVec
	VerifyDuration prometheus.Histogram
}

// New creates a new Metrics instance with all boarding-house metrics registered.
func New() *Metrics {
	return &Metrics{
		Registrations: promauto.NewCounter(prometheus.CounterOpts{
			Name: "bahay_registrations_total",
			Help: "Total number of boarding houses registered",
		}),
		Verifications: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "bahay_verifications_total",
			Help: "Total number of compliance decisions by outcome",
		}, []string{"outcome"}),
		VerifyDuration: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "bahay_verify_duration_seconds",
			Help:    "Duration of Verify operations (load, evaluate, persist, notify)",
			Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1},
		}),
	}
}

// IncrementRegistered records a successful registration.
func (m *Metrics) IncrementRegistered() {
	m.Registrations.Inc()
}

// RecordDecision records a compliance decision outcome
// (approved, expired, reviewed, rejected).
func (m *Metrics) RecordDecision(outcome string) {
	m.Verifications.WithLabelValues(outcome).Inc()
}

// ObserveVerify records the duration of a Verify operation.
// Call with time.Now() at the start of the operation.
func (m *Metrics) ObserveVerify(start time.Time) {
	m.VerifyDuration.Observe(time.Since(start).Seconds())
}
