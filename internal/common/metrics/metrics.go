// internal/common/metrics/metrics.go
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	SearchRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "pipeline_search_requests_total",
			Help: "Total number of category search requests by outcome",
		},
		[]string{"category", "status"},
	)

	EnrichmentFetches = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "pipeline_enrichment_fetches_total",
			Help: "Total number of enrichment content fetches by outcome",
		},
		[]string{"status"},
	)

	StageDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name: "pipeline_stage_duration_seconds",
			Help: "Duration of pipeline stages in seconds",
		},
		[]string{"stage"},
	)

	EventsEmitted = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "pipeline_events_emitted_total",
			Help: "Total number of stream events emitted by type",
		},
		[]string{"type"},
	)

	CacheOps = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "pipeline_search_cache_ops_total",
			Help: "Search response cache lookups by result",
		},
		[]string{"result"},
	)

	RequestsActive = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "pipeline_requests_active",
			Help: "Number of chat requests currently streaming",
		},
	)
)
