package planning

import (
	"context"
	"errors"
	"fmt"

	"github.com/AlekSi/pointer"
	"routing/internal/entities"
	"routing/pkg/logger"
)

var backlogStatuses = entities.BacklogOrderStatuses()

type Planning struct {
	orders    OrderRepository
	vehicles  VehicleRepository
	routes    RouteRepository
	geocoder  Geocoder
	solver    Solver
	txManager TxManager
	log       serviceLogger
}

func New(
	orders OrderRepository,
	vehicles VehicleRepository,
	routes RouteRepository,
	geocoder Geocoder,
	solver Solver,
	txManager TxManager,
	log serviceLogger,
) *Planning {
	return &Planning{
		orders:    orders,
		vehicles:  vehicles,
		routes:    routes,
		geocoder:  geocoder,
		solver:    solver,
		txManager: txManager,
		log:       log,
	}
}

type geocodedOrder struct {
	OrderID int64
	Point   entities.GeoPoint
}

// GenerateRoutes строит маршруты из бэклога и свободного парка. До коммита в БД ничего не пишется:
// ошибка солвера или геокодера оставляет заказы и машины как были.
func (p *Planning) GenerateRoutes(ctx context.Context) (*entities.GenerationResult, error) {
	backlog, err := p.orders.ListBacklog(ctx)
	if err != nil {
		return nil, fmt.Errorf("list backlog: %w", err)
	}
	if len(backlog) == 0 {
		return nil, ErrNoPendingOrders
	}

	vehicles, err := p.vehicles.ListAvailable(ctx)
	if err != nil {
		return nil, fmt.Errorf("list available vehicles: %w", err)
	}
	if len(vehicles) == 0 {
		return nil, ErrNoAvailableVehicles
	}

	routable, geocoded, skipped, err := p.resolveCoordinates(ctx, backlog)
	if err != nil {
		return nil, err
	}
	if len(routable) == 0 {
		return nil, fmt.Errorf("%w: %d orders without coordinates", ErrNoRoutableOrders, skipped)
	}

	plan, err := p.solver.Solve(ctx, vehicles, routable)
	if err != nil {
		return nil, fmt.Errorf("solve: %w", err)
	}

	plan, err = normalizePlan(plan, vehicles, routable)
	if err != nil {
		return nil, err
	}

	result, err := p.commit(ctx, plan, geocoded)
	if err != nil {
		return nil, err
	}
	result.OrdersSkipped = skipped

	p.log.Info("routes generated",
		logger.NewField("routes", result.RoutesCreated),
		logger.NewField("programmed", result.OrdersProgrammed),
		logger.NewField("rescheduled", result.OrdersRescheduled),
		logger.NewField("skipped", result.OrdersSkipped),
	)

	return result, nil
}

func (p *Planning) resolveCoordinates(ctx context.Context, backlog []entities.Order) ([]entities.Order, []geocodedOrder, int, error) {
	routable := make([]entities.Order, 0, len(backlog))
	geocoded := make([]geocodedOrder, 0)
	skipped := 0

	for _, order := range backlog {
		if order.HasCoordinates() {
			routable = append(routable, order)
			continue
		}

		point, err := p.geocoder.Geocode(ctx, order.AddressLine, order.City, order.Region)
		if err != nil {
			if errors.Is(err, ErrGeocodeNotFound) {
				p.log.Warn("order skipped, address not found",
					logger.NewField("order_id", order.ID),
					logger.NewField("address", order.Address()),
				)
				skipped++
				continue
			}
			return nil, nil, 0, fmt.Errorf("geocode order %d: %w", order.ID, err)
		}

		order.Lat = pointer.To(point.Lat)
		order.Lon = pointer.To(point.Lon)
		if order.PostalCode == "" {
			order.PostalCode = point.PostalCode
		}

		routable = append(routable, order)
		geocoded = append(geocoded, geocodedOrder{OrderID: order.ID, Point: point})
	}

	return routable, geocoded, skipped, nil
}

func (p *Planning) commit(ctx context.Context, plan *entities.RoutePlan, geocoded []geocodedOrder) (*entities.GenerationResult, error) {
	var result entities.GenerationResult

	err := p.txManager.Do(ctx, func(ctx context.Context) error {
		// Do может повторить fn при конфликте сериализации
		result = entities.GenerationResult{}

		for _, g := range geocoded {
			err := p.orders.SaveGeocode(ctx, g.OrderID, g.Point)
			if err != nil {
				return fmt.Errorf("save geocode: %w", err)
			}
		}

		programmed := make([]int64, 0)
		for _, planned := range plan.Routes {
			routeID, err := p.routes.Create(ctx, planned.VehicleID)
			if err != nil {
				return fmt.Errorf("create route: %w", err)
			}

			err = p.routes.CreateStops(ctx, routeID, planned.OrderIDs)
			if err != nil {
				return fmt.Errorf("create route stops: %w", err)
			}

			programmed = append(programmed, planned.OrderIDs...)
			result.RouteIDs = append(result.RouteIDs, routeID)
		}

		err := p.setStatus(ctx, programmed, entities.OrderProgrammed)
		if err != nil {
			return err
		}

		err = p.setStatus(ctx, plan.Unassigned, entities.OrderRescheduled)
		if err != nil {
			return err
		}

		result.RoutesCreated = len(result.RouteIDs)
		result.OrdersProgrammed = len(programmed)
		result.OrdersRescheduled = len(plan.Unassigned)
		return nil
	})
	if err != nil {
		return nil, err
	}

	return &result, nil
}

func (p *Planning) setStatus(ctx context.Context, orderIDs []int64, to entities.OrderStatus) error {
	if len(orderIDs) == 0 {
		return nil
	}

	affected, err := p.orders.SetStatus(ctx, orderIDs, backlogStatuses, to)
	if err != nil {
		return fmt.Errorf("set orders %s: %w", to, err)
	}
	if affected != int64(len(orderIDs)) {
		return fmt.Errorf("%w: %d of %d orders left the backlog", ErrBacklogChanged, int64(len(orderIDs))-affected, len(orderIDs))
	}
	return nil
}
