package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

// Registry holds all Prometheus metrics.
type Registry struct {
	*prometheus.Registry

	backtestsTotal   *prometheus.CounterVec
	backtestDuration prometheus.Histogram
	signalsTotal     *prometheus.CounterVec
	comparisonsTotal prometheus.Counter
	comparisonSize   prometheus.Histogram
}

// NewRegistry creates a new metrics registry with all metrics registered.
func NewRegistry() *Registry {
	reg := prometheus.NewRegistry()

	// Register Go runtime metrics
	reg.MustRegister(collectors.NewGoCollector())
	reg.MustRegister(collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	r := &Registry{
		Registry: reg,

		backtestsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "hindsight_backtests_total",
				Help: "Total number of backtest runs",
			},
			[]string{"status"},
		),
		backtestDuration: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "hindsight_backtest_duration_seconds",
				Help:    "Backtest run duration in seconds",
				Buckets: prometheus.DefBuckets,
			},
		),
		signalsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "hindsight_signals_total",
				Help: "Total number of signals produced during backtests",
			},
			[]string{"strategy", "action"},
		),
		comparisonsTotal: prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: "hindsight_comparisons_total",
				Help: "Total number of strategy comparisons",
			},
		),
		comparisonSize: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "hindsight_comparison_strategies",
				Help:    "Number of strategies per comparison",
				Buckets: []float64{2, 3, 5, 8, 13, 21},
			},
		),
	}

	reg.MustRegister(r.backtestsTotal)
	reg.MustRegister(r.backtestDuration)
	reg.MustRegister(r.signalsTotal)
	reg.MustRegister(r.comparisonsTotal)
	reg.MustRegister(r.comparisonSize)

	return r
}

// ObserveBacktest records one completed (or failed) backtest run.
func (r *Registry) ObserveBacktest(ok bool, d time.Duration) {
	status := "success"
	if !ok {
		status = "error"
	}
	r.backtestsTotal.WithLabelValues(status).Inc()
	r.backtestDuration.Observe(d.Seconds())
}

// CountSignal records one signal produced during a backtest.
func (r *Registry) CountSignal(strategy, action string) {
	r.signalsTotal.WithLabelValues(strategy, action).Inc()
}

// CountComparison records one strategy comparison of the given size.
func (r *Registry) CountComparison(strategies int) {
	r.comparisonsTotal.Inc()
	r.comparisonSize.Observe(float64(strategies))
}
