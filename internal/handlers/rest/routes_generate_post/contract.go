//go:generate mockgen -source=contract.go -destination=./contract_mocks_test.go -package=routes_generate_post_test
package routes_generate_post

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
	GenerateRoutes(ctx context.Context) (*entities.GenerationResult, error)
}
