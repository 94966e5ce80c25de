package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	LabelMethod    = "method"
	LabelPath      = "path"
	LabelStatus    = "status"
	LabelRegion    = "region"
	LabelAction    = "action"
	LabelMode      = "mode"
	LabelComponent = "component"
	LabelOperation = "operation"
	LabelResult    = "result"
)

// HTTP Metrics
var (
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "gamecatalog_http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{LabelMethod, LabelPath, LabelStatus},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "gamecatalog_http_request_duration_seconds",
			Help:    "HTTP request latency in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{LabelMethod, LabelPath},
	)
)

// State Metrics
var (
	StateUpdates = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "gamecatalog_state_updates_total",
			Help: "Reducer applications per state region",
		},
		[]string{LabelRegion},
	)

	FavoriteToggles = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "gamecatalog_favorite_toggles_total",
			Help: "Favorite toggles, counted even when two toggles cancel out",
		},
		[]string{LabelAction, LabelMode},
	)

	FavoriteRollbacks = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "gamecatalog_favorite_rollbacks_total",
			Help: "Optimistic favorite toggles undone after the data service rejected them",
		},
	)

	CatalogSize = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "gamecatalog_catalog_games",
			Help: "Number of games in the loaded catalog",
		},
	)
)

// Backend Metrics
var (
	RemoteCalls = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "gamecatalog_remote_calls_total",
			Help: "Calls to the hosted backend by component, operation and result",
		},
		[]string{LabelComponent, LabelOperation, LabelResult},
	)

	GameCacheHits = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "gamecatalog_game_cache_lookups_total",
			Help: "Game detail lookups by source",
		},
		[]string{LabelResult},
	)
)

// ObserveRemote records the outcome of one backend call.
func ObserveRemote(component, operation string, err error) {
	result := "ok"
	if err != nil {
		result = "error"
	}
	RemoteCalls.WithLabelValues(component, operation, result).Inc()
}
