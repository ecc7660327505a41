package worker

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics counts worker activity. One instance is shared by all workers in a
// process; pass a fresh registry in tests to avoid duplicate registration.
type Metrics struct {
	TicksTotal        *prometheus.CounterVec
	FetchSuccessTotal *prometheus.CounterVec
	FetchFailureTotal *prometheus.CounterVec
}

func NewMetrics(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		TicksTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "worker_ticks_total",
				Help: "Total number of completed worker iterations",
			},
			[]string{"worker"},
		),
		FetchSuccessTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "rate_fetch_success_total",
				Help: "Total number of successfully fetched exchange rates",
			},
			[]string{"pair"},
		),
		FetchFailureTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "rate_fetch_failure_total",
				Help: "Total number of failed exchange rate fetches",
			},
			[]string{"pair"},
		),
	}
}
