package services

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics tracks analysis run outcomes for the /metrics endpoint.
type Metrics struct {
	RunsTotal     *prometheus.CounterVec
	RunDuration   prometheus.Histogram
	ItemsetsMined prometheus.Gauge
	RulesDerived  prometheus.Gauge
}

// NewMetrics registers the analysis metrics on the given registerer.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		RunsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: "retail",
			Subsystem: "analysis",
			Name:      "runs_total",
			Help:      "Number of analysis runs by outcome.",
		}, []string{"status"}),
		RunDuration: factory.NewHistogram(prometheus.HistogramOpts{
			Namespace: "retail",
			Subsystem: "analysis",
			Name:      "run_duration_seconds",
			Help:      "Wall-clock duration of analysis runs.",
			Buckets:   prometheus.DefBuckets,
		}),
		ItemsetsMined: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: "retail",
			Subsystem: "analysis",
			Name:      "frequent_itemsets",
			Help:      "Frequent itemsets found by the most recent run.",
		}),
		RulesDerived: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: "retail",
			Subsystem: "analysis",
			Name:      "association_rules",
			Help:      "Association rules derived by the most recent run.",
		}),
	}
}
