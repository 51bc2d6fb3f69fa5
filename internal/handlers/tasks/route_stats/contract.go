//go:generate mockgen -source=contract.go -destination=./contract_mocks_test.go -package=route_stats_test
package route_stats

import (
	"context"

	"routing/internal/entities"
	"routing/pkg/logger"
)

type taskLogger interface {
	Debug(msg string, fields ...logger.Field)
}

type Service interface {
	CountRoutesByStatus(ctx context.Context) ([]entities.RouteStatusCount, error)
}
