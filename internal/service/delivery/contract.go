//go:generate mockgen -source=contract.go -destination=./contract_mocks_test.go -package=delivery_test
package delivery

import (
	"context"

	"routing/internal/entities"
)

type OrderRepository interface {
	GetByID(ctx context.Context, orderID int64) (*entities.Order, error)
	MarkDelivered(ctx context.Context, orderID int64, proofRef string) (int64, error)
	MarkFailed(ctx context.Context, orderID int64, reason entities.FailureReason, note *string) (int64, error)
	CountOpenByRoute(ctx context.Context, routeID int64) (int64, error)
}

type RouteRepository interface {
	Transition(ctx context.Context, routeID int64, from []entities.RouteStatus, to entities.RouteStatus) (bool, error)
}

type VehicleRepository interface {
	ReleaseForRoute(ctx context.Context, routeID int64) error
}

type TxManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
}
