//go:generate mockgen -source=contract.go -destination=./contract_mocks_test.go -package=route_cancel_post_test
package route_cancel_post

import (
	"context"

	"routing/internal/entities"
	"routing/pkg/logger"
)

type handlerLogger interface {
	Debug(msg string, fields ...logger.Field)
	Info(msg string, fields ...logger.Field)
	Warn(msg string, fields ...logger.Field)
	Error(msg string, fields ...logger.Field)
	With(fields ...logger.Field) logger.Logger
}

type Service interface {
	CancelRoute(ctx context.Context, routeID int64) (*entities.RouteCancellation, error)
}
