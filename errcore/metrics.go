package errcore

import "github.com/prometheus/client_golang/prometheus"

// Metrics exposes the handler/fail counters a long-running aurora process
// wants scraped. Each Runtime gets its own registry rather than reaching
// for the global default, so multiple runtimes (e.g. in tests) never
// collide on metric registration.
type Metrics struct {
	Registry       *prometheus.Registry
	FailsTotal     *prometheus.CounterVec
	HaltsTotal     prometheus.Counter
	HandlersActive prometheus.Gauge
}

func NewMetrics() *Metrics {
	reg := prometheus.NewRegistry()
	m := &Metrics{
		Registry: reg,
		FailsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "aurora_fails_total",
			Help: "Total number of fail() invocations, by error category.",
		}, []string{"category"}),
		HaltsTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "aurora_halts_total",
			Help: "Total number of halt errors raised.",
		}),
		HandlersActive: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "aurora_handlers_active",
			Help: "Number of handlers currently installed on the handler stack.",
		}),
	}
	reg.MustRegister(m.FailsTotal, m.HaltsTotal, m.HandlersActive)
	return m
}
