// internal/match/metrics.go

package match

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	matchRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "match_requests_total",
			Help: "Total number of match feed requests",
		},
		[]string{"status"},
	)

	scoringFallbacksTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "match_scoring_fallbacks_total",
			Help: "Total number of scoring calls that degraded to the location fallback",
		},
		[]string{"mode"},
	)

	compatibilityScores = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "match_compatibility_scores",
			Help:    "Distribution of compatibility scores",
			Buckets: prometheus.LinearBuckets(0, 10, 11),
		},
	)

	scoringDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "match_scoring_duration_seconds",
			Help:    "Duration of scoring calls",
			Buckets: prometheus.DefBuckets,
		},
	)
)
