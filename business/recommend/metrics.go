package recommend

import (
	"github.com/prometheus/client_golang/prometheus"
)

var (
	RecommendRequestsTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "recommend_requests_total",
			Help: "Total number of recommendation requests served.",
		},
	)

	RecommendFailuresTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "recommend_failures_total",
			Help: "Count of failed recommendation requests by reason.",
		},
		[]string{"reason"},
	)

	RecommendLatency = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "recommend_latency_seconds",
			Help:    "End-to-end latency of the recommendation pipeline.",
			Buckets: prometheus.DefBuckets,
		},
	)

	SnapshotReloadsTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "recommend_snapshot_reloads_total",
			Help: "How many times the transform snapshot was rebuilt.",
		},
	)
)

func init() {
	prometheus.MustRegister(
		RecommendRequestsTotal,
		RecommendFailuresTotal,
		RecommendLatency,
		SnapshotReloadsTotal,
	)
}
