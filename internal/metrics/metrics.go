package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

type Metrics struct {
	SearchesTotal   *prometheus.CounterVec
	GeocodeRequests *prometheus.CounterVec
	GeocodeCache    *prometheus.CounterVec
	RequestSeconds  *prometheus.HistogramVec
	StatsRefreshes  *prometheus.CounterVec
}

func NewMetrics(reg prometheus.Registerer) *Metrics {
	return &Metrics{
		SearchesTotal: promauto.With(reg).NewCounterVec(prometheus.CounterOpts{
			Name: "matching_searches_total",
			Help: "Total number of provider search requests.",
		}, []string{"status"}),
		GeocodeRequests: promauto.With(reg).NewCounterVec(prometheus.CounterOpts{
			Name: "matching_geocode_requests_total",
			Help: "Total number of outbound geocoding lookups.",
		}, []string{"provider", "outcome"}),
		GeocodeCache: promauto.With(reg).NewCounterVec(prometheus.CounterOpts{
			Name: "matching_geocode_cache_total",
			Help: "Geocode cache lookups by result.",
		}, []string{"result"}),
		RequestSeconds: promauto.With(reg).NewHistogramVec(prometheus.HistogramOpts{
			Name:    "matching_geocode_request_duration_seconds",
			Help:    "Duration of requests to the geocoding provider API.",
			Buckets: prometheus.DefBuckets,
		}, []string{"provider"}),
		StatsRefreshes: promauto.With(reg).NewCounterVec(prometheus.CounterOpts{
			Name: "matching_stats_refreshes_total",
			Help: "Total number of dashboard statistics computations.",
		}, []string{"status"}),
	}
}
