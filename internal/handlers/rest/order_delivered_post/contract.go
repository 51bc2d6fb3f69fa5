//go:generate mockgen -source=contract.go -destination=./contract_mocks_test.go -package=order_delivered_post_test
package order_delivered_post

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
	MarkDelivered(ctx context.Context, orderID int64, proofRef string) (*entities.DeliveryOutcome, error)
}
