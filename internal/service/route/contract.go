//go:generate mockgen -source=contract.go -destination=./contract_mocks_test.go -package=route_test
package route

import (
	"context"

	"routing/internal/entities"
	"routing/pkg/logger"
)

type Repository interface {
	AssignDriver(ctx context.Context, routeID, driverID int64) (bool, error)
	Transition(ctx context.Context, routeID int64, from []entities.RouteStatus, to entities.RouteStatus) (bool, error)
	GetByID(ctx context.Context, routeID int64) (*entities.Route, error)
	SoftDeleteStops(ctx context.Context, routeID int64) (int64, error)
	List(ctx context.Context, filter entities.RouteFilter) ([]entities.Route, error)
	CountByStatus(ctx context.Context) ([]entities.RouteStatusCount, error)
}

type VehicleRepository interface {
	MarkAssignedForRoute(ctx context.Context, routeID int64, plate string) error
	ReleaseForRoute(ctx context.Context, routeID int64) error
}

type OrderRepository interface {
	ReleaseByRoute(ctx context.Context, routeID int64) (int64, error)
	ListContactsByRoute(ctx context.Context, routeID int64) ([]entities.OrderContact, error)
}

type DriverRepository interface {
	GetByID(ctx context.Context, driverID int64) (*entities.Driver, error)
}

type Notifier interface {
	SendEmail(ctx context.Context, to, subject, htmlBody string) error
}

type TxManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
}

type serviceLogger interface {
	Info(msg string, fields ...logger.Field)
	Warn(msg string, fields ...logger.Field)
}
