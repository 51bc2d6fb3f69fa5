//go:generate mockgen -source=contract.go -destination=./contract_mocks_test.go -package=order_failed_post_test
package order_failed_post

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
	MarkFailed(ctx context.Context, orderID int64, reason, note string) (*entities.DeliveryOutcome, error)
}
