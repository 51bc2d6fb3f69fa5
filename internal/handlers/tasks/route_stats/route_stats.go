package route_stats

import (
	"context"
	"fmt"
	"time"

	"routing/pkg/logger"
)

type RouteStats struct {
	log      taskLogger
	service  Service
	interval time.Duration
}

func NewRouteStats(log taskLogger, service Service, interval time.Duration) *RouteStats {
	return &RouteStats{
		log:      log,
		service:  service,
		interval: interval,
	}
}

func (r *RouteStats) TTL() time.Duration {
	return r.interval
}

// Do обновляет gauge только чтением, маршруты не меняет.
func (r *RouteStats) Do(ctx context.Context) error {
	ctxWithTimeout, cancel := context.WithTimeout(ctx, r.interval)
	defer cancel()

	counts, err := r.service.CountRoutesByStatus(ctxWithTimeout)
	if err != nil {
		return fmt.Errorf("count routes by status: %w", err)
	}

	var total int64
	for _, c := range counts {
		RoutesByStatus.WithLabelValues(c.Status.String()).Set(float64(c.Count))
		total += c.Count
	}

	r.log.Debug("route stats refreshed",
		logger.NewField("routes_total", total),
	)
	return nil
}

func (r *RouteStats) Info() string {
	return "route stats"
}
