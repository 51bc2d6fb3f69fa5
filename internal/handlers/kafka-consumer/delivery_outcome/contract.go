//go:generate mockgen -source=contract.go -destination=./contract_mocks_test.go -package=delivery_outcome_test
package delivery_outcome

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
	MarkFailed(ctx context.Context, orderID int64, reason, note string) (*entities.DeliveryOutcome, error)
}
