// internal/common/metrics/metrics.go
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	KeywordsAnalyzed = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "aso_keywords_analyzed_total",
			Help: "Total number of keywords analyzed",
		},
		[]string{"status"},
	)

	AnalysisDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name: "aso_keyword_analysis_duration_seconds",
			Help: "Duration of a single keyword analysis in seconds",
		},
		[]string{"status"},
	)

	CacheLookups = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "aso_score_cache_lookups_total",
			Help: "Score cache lookups by outcome",
		},
		[]string{"kind", "outcome"},
	)

	StoreRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "aso_store_requests_total",
			Help: "Upstream app store requests by endpoint and status",
		},
		[]string{"endpoint", "status"},
	)
)
