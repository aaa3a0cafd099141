package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// RequestsTotal tracks API requests per resource and method
	RequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "seam_api_requests_total",
			Help: "Total number of API requests",
		},
		[]string{"resource", "method"},
	)

	// ErrorsTotal tracks classified API failures per resource and error kind
	ErrorsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "seam_api_errors_total",
			Help: "Total number of classified API errors",
		},
		[]string{"resource", "method", "kind"},
	)

	// RetriesTotal tracks retry attempts beyond the first try
	RetriesTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "seam_retries_total",
			Help: "Total number of retry attempts",
		},
	)

	// CacheHits tracks cache fallback hits per resource
	CacheHits = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "seam_cache_hits_total",
			Help: "Total number of cache hits",
		},
		[]string{"resource"},
	)

	// CacheMisses tracks cache fallback misses per resource
	CacheMisses = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "seam_cache_misses_total",
			Help: "Total number of cache misses",
		},
		[]string{"resource"},
	)

	// NetworkOnline reports the tracker's current view of connectivity
	NetworkOnline = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "seam_network_online",
			Help: "1 if the network tracker considers the device online",
		},
	)

	// RequestLatency tracks API request latency per resource
	RequestLatency = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "seam_api_request_latency_seconds",
			Help:    "API request latency in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"resource", "method"},
	)
)
