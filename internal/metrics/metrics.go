package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	Calculations = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "roi_calculations_total",
			Help: "Total number of ROI calculations by industry",
		},
		[]string{"industry"},
	)

	NarrativeRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "roi_narrative_requests_total",
			Help: "Narrative requests sent to the relay by outcome",
		},
		[]string{"outcome"},
	)

	NarrativeDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "roi_narrative_request_duration_seconds",
			Help:    "Duration of narrative requests in seconds",
			Buckets: []float64{0.25, 0.5, 1, 2, 4, 8, 16, 32},
		},
	)

	NarrativesSuperseded = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "roi_narratives_superseded_total",
			Help: "Narratives discarded because a newer submission replaced theirs",
		},
	)

	RelayGenerations = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "roi_relay_generations_total",
			Help: "Generation calls made by the relay endpoint by outcome",
		},
		[]string{"outcome"},
	)

	ActiveSessions = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "roi_active_sessions",
			Help: "Number of sessions holding a current submission",
		},
	)

	SessionsDropped = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "roi_sessions_dropped_total",
			Help: "Sessions dropped to stay under the session limit",
		},
	)

	Exports = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "roi_exports_total",
			Help: "Report exports by format",
		},
		[]string{"format"},
	)
)

const (
	OutcomeOK       = "ok"
	OutcomeFallback = "fallback"
	OutcomeError    = "error"
)
