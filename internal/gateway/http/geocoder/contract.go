//go:generate mockgen -source=contract.go -destination=./contract_mocks_test.go -package=geocoder_test
package geocoder

import (
	"context"

	"routing/internal/entities"
	"routing/pkg/logger"
)

type cache interface {
	Get(ctx context.Context, key string) (entities.GeoPoint, bool, error)
	Set(ctx context.Context, key string, point entities.GeoPoint) error
}

type retrier interface {
	ExecuteWithContext(ctx context.Context, fn func(context.Context) error) error
}

type clientLogger interface {
	Warn(msg string, fields ...logger.Field)
}
