package observability

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// APIRequests counts backend calls by endpoint and outcome.
	APIRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "yalah_api_requests_total",
		Help: "Total number of backend API requests by endpoint and outcome",
	}, []string{"endpoint", "outcome"})

	// APIRequestLatency records backend call latency by endpoint.
	APIRequestLatency = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "yalah_api_request_latency_seconds",
		Help:    "Backend API request latency in seconds",
		Buckets: prometheus.DefBuckets,
	}, []string{"endpoint"})

	// PollTicks counts badge poll cycles by counter kind.
	PollTicks = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "yalah_poll_ticks_total",
		Help: "Total number of badge poll cycles by counter",
	}, []string{"counter"})

	// FeedBuildLatency records how long a full feed aggregation takes.
	FeedBuildLatency = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "yalah_feed_build_latency_seconds",
		Help:    "Notification feed aggregation latency in seconds",
		Buckets: prometheus.DefBuckets,
	})

	// FeedItems is the gauge of items in the last built feed.
	FeedItems = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "yalah_feed_items",
		Help: "Number of items in the most recent aggregated feed",
	})

	// BadgeCount is the gauge of the current badge counters.
	BadgeCount = promauto.NewGaugeVec(prometheus.GaugeOpts{
		Name: "yalah_badge_count",
		Help: "Current badge counter values",
	}, []string{"counter"})

	// SourceSkips counts per-source fetch failures tolerated by a cycle.
	SourceSkips = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "yalah_source_skips_total",
		Help: "Total number of per-source fetch failures skipped",
	}, []string{"component"})
)

// ObserveAPIRequest records one backend call.
func ObserveAPIRequest(endpoint string, err error, start time.Time) {
	outcome := "ok"
	if err != nil {
		outcome = "error"
	}
	APIRequests.WithLabelValues(endpoint, outcome).Inc()
	APIRequestLatency.WithLabelValues(endpoint).Observe(time.Since(start).Seconds())
}

// TrackFeedBuild returns a function that records feed build latency when
// called (e.g. defer).
func TrackFeedBuild() func(items int) {
	start := time.Now()
	return func(items int) {
		FeedBuildLatency.Observe(time.Since(start).Seconds())
		FeedItems.Set(float64(items))
	}
}
