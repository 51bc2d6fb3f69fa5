//go:generate mockgen -source=contract.go -destination=./contract_mocks_test.go -package=planning_test
package planning

import (
	"context"

	"routing/internal/entities"
	"routing/pkg/logger"
)

type OrderRepository interface {
	ListBacklog(ctx context.Context) ([]entities.Order, error)
	SaveGeocode(ctx context.Context, orderID int64, point entities.GeoPoint) error
	SetStatus(ctx context.Context, orderIDs []int64, from []entities.OrderStatus, to entities.OrderStatus) (int64, error)
}

type VehicleRepository interface {
	ListAvailable(ctx context.Context) ([]entities.Vehicle, error)
}

type RouteRepository interface {
	Create(ctx context.Context, vehicleID int64) (int64, error)
	CreateStops(ctx context.Context, routeID int64, orderIDs []int64) error
}

type Geocoder interface {
	Geocode(ctx context.Context, addressLine, city, region string) (entities.GeoPoint, error)
}

type Solver interface {
	Solve(ctx context.Context, vehicles []entities.Vehicle, orders []entities.Order) (*entities.RoutePlan, error)
}

type TxManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
}

type serviceLogger interface {
	Info(msg string, fields ...logger.Field)
	Warn(msg string, fields ...logger.Field)
}
