// Package telemetry holds the process-wide metrics and tracer names used by
// the optimizer. Metrics are registered on the default Prometheus registry.
package telemetry

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// TracerName is the instrumentation scope for optimizer spans.
const TracerName = "github.com/katalvlaran/mixpath"

var (
	// optimizeTotal counts optimization calls by result status.
	optimizeTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "mixpath_optimize_total",
		Help: "Total playlist optimizations by status",
	}, []string{"status"})

	// optimizeDuration tracks wall time spent per optimization.
	optimizeDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "mixpath_optimize_duration_seconds",
		Help:    "Playlist optimization duration in seconds",
		Buckets: prometheus.ExponentialBuckets(0.0001, 4, 12), // 0.1ms to ~7min
	})

	// searchNodes tracks branch-and-bound nodes expanded per optimization.
	searchNodes = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "mixpath_search_nodes",
		Help:    "Search nodes expanded per optimization",
		Buckets: prometheus.ExponentialBuckets(1, 10, 9),
	})

	// playlistLength tracks the number of tracks in returned playlists.
	playlistLength = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "mixpath_playlist_length",
		Help:    "Tracks per returned playlist",
		Buckets: []float64{0, 1, 2, 5, 10, 20, 50, 100, 200},
	})
)

// ObserveOptimize records one finished optimization.
func ObserveOptimize(status string, elapsed time.Duration, nodes int64, length int) {
	optimizeTotal.WithLabelValues(status).Inc()
	optimizeDuration.Observe(elapsed.Seconds())
	searchNodes.Observe(float64(nodes))
	playlistLength.Observe(float64(length))
}
