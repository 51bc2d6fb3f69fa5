package geocoder

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	GeocoderRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "geocoder_request_duration_seconds",
			Help:    "Duration of geocoder requests including retries",
			Buckets: []float64{.01, .025, .05, .1, .25, .5, 1, 2.5, 5},
		},
		[]string{"result"},
	)

	GeocoderRetriesTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "geocoder_retries_total",
			Help: "Total number of geocoder request retries",
		},
	)

	GeocodeCacheTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "geocode_cache_requests_total",
			Help: "Geocode cache lookups by result",
		},
		[]string{"result"},
	)
)
