// Package metrics tracks notification delivery volume.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

type Metrics struct {
	Emitted *prometheus.CounterVec
}

func New() *Metrics {
	return &Metrics{
		Emitted: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "bahay_notifications_emitted_total",
			Help: "Total number of notifications emitted by type",
		}, []string{"type"}),
	}
}

// RecordEmitted counts one delivered notification of the given type.
func (m *Metrics) RecordEmitted(kind string) {
	m.Emitted.WithLabelValues(kind).Inc()
}
