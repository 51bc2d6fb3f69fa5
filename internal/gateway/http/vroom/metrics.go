package vroom

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var SolverRequestDuration = promauto.NewHistogramVec(
	prometheus.HistogramOpts{
		Name:    "solver_request_duration_seconds",
		Help:    "Duration of route solver requests",
		Buckets: []float64{.05, .1, .25, .5, 1, 2.5, 5, 10, 30, 60},
	},
	[]string{"code"},
)
