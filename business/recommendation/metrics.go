package recommendation

import (
	"github.com/prometheus/client_golang/prometheus"
)

var (
	RecommendationRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "recommendation_requests_total",
			Help: "Recommendation requests by failure reason (none on success).",
		},
		[]string{"status"},
	)

	RecommendationCandidatesRejectedTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "recommendation_candidates_rejected_total",
			Help: "Catalog candidates dropped before scoring, by reason.",
		},
		[]string{"reason"},
	)

	RecommendationDegradedTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "recommendation_degraded_total",
			Help: "Profile sub-computations that fell back to empty.",
		},
		[]string{"part"},
	)

	RecommendationDuration = prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "recommendation_duration_seconds",
		Help:    "Latency of a full recommendation pass.",
		Buckets: prometheus.DefBuckets,
	})
)

func init() {
	prometheus.MustRegister(
		RecommendationRequestsTotal,
		RecommendationCandidatesRejectedTotal,
		RecommendationDegradedTotal,
		RecommendationDuration,
	)
}
