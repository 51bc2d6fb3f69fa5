package route_stats

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var RoutesByStatus = promauto.NewGaugeVec(
	prometheus.GaugeOpts{
		Name: "routes_by_status",
		Help: "Number of routes in each lifecycle status",
	},
	[]string{"status"},
)
