package route

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"

	"golang.org/x/sync/errgroup"
	"routing/internal/entities"
	"routing/pkg/logger"
)

const notifyConcurrency = 4

type Route struct {
	repository Repository
	vehicles   VehicleRepository
	orders     OrderRepository
	drivers    DriverRepository
	notifier   Notifier
	txManager  TxManager
	log        serviceLogger
}

func New(
	repository Repository,
	vehicles VehicleRepository,
	orders OrderRepository,
	drivers DriverRepository,
	notifier Notifier,
	txManager TxManager,
	log serviceLogger,
) *Route {
	return &Route{
		repository: repository,
		vehicles:   vehicles,
		orders:     orders,
		drivers:    drivers,
		notifier:   notifier,
		txManager:  txManager,
		log:        log,
	}
}

// AssignDriver письмо водителю отправляется внутри транзакции: если оно не ушло,
// назначение и пометка машины откатываются.
func (r *Route) AssignDriver(ctx context.Context, routeID, driverID int64, vehiclePlate string) (*entities.Assignment, error) {
	if !isValidID(routeID) {
		return nil, ErrInvalidRouteID
	}
	if !isValidID(driverID) {
		return nil, ErrInvalidDriverID
	}
	plate, ok := normalizePlate(vehiclePlate)
	if !ok {
		return nil, ErrInvalidPlate
	}

	err := r.txManager.Do(ctx, func(ctx context.Context) error {
		assigned, err := r.repository.AssignDriver(ctx, routeID, driverID)
		if err != nil {
			return fmt.Errorf("assign driver: %w", err)
		}
		if !assigned {
			return r.rejectTransition(ctx, routeID, ErrRouteNotAssignable, entities.RouteUnassigned)
		}

		err = r.vehicles.MarkAssignedForRoute(ctx, routeID, plate)
		if err != nil {
			return fmt.Errorf("mark vehicle assigned: %w", err)
		}

		driver, err := r.drivers.GetByID(ctx, driverID)
		if err != nil {
			return fmt.Errorf("get driver: %w", err)
		}

		route, err := r.repository.GetByID(ctx, routeID)
		if err != nil {
			return fmt.Errorf("get route: %w", err)
		}

		subject, body, err := assignmentEmail(route, driver, plate)
		if err != nil {
			return err
		}

		err = r.notifier.SendEmail(ctx, driver.Email, subject, body)
		if err != nil {
			return fmt.Errorf("%w: driver %d: %w", ErrNotificationFailed, driverID, err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return &entities.Assignment{
		RouteID:      routeID,
		DriverID:     driverID,
		VehiclePlate: plate,
	}, nil
}

// StartRoute уведомления клиентам отправляются после коммита; их ошибки не откатывают старт.
func (r *Route) StartRoute(ctx context.Context, routeID int64) (*entities.RouteStart, error) {
	if !isValidID(routeID) {
		return nil, ErrInvalidRouteID
	}

	err := r.txManager.Do(ctx, func(ctx context.Context) error {
		started, err := r.repository.Transition(
			ctx,
			routeID,
			[]entities.RouteStatus{entities.RouteAwaitingStart},
			entities.RouteInProgress,
		)
		if err != nil {
			return fmt.Errorf("start route: %w", err)
		}
		if !started {
			return r.rejectTransition(ctx, routeID, ErrRouteNotStartable, entities.RouteAwaitingStart)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	result := &entities.RouteStart{RouteID: routeID}

	contacts, err := r.orders.ListContactsByRoute(ctx, routeID)
	if err != nil {
		r.log.Warn("route started without client notifications",
			logger.NewField("route_id", routeID),
			logger.NewField("error", err),
		)
		result.Warning = "route started, but clients could not be notified"
		return result, nil
	}

	result.Notified, result.NotificationsFailed = r.notifyClients(ctx, routeID, contacts)
	if result.NotificationsFailed > 0 {
		result.Warning = fmt.Sprintf(
			"route started, but %d of %d client notifications failed",
			result.NotificationsFailed,
			len(contacts),
		)
	}

	return result, nil
}

func (r *Route) notifyClients(ctx context.Context, routeID int64, contacts []entities.OrderContact) (int, int) {
	var notified, failed atomic.Int64

	g := errgroup.Group{}
	g.SetLimit(notifyConcurrency)

	for _, contact := range contacts {
		g.Go(func() error {
			err := r.notifyClient(ctx, contact)
			if err != nil {
				failed.Add(1)
				r.log.Warn("client notification failed",
					logger.NewField("route_id", routeID),
					logger.NewField("order_id", contact.OrderID),
					logger.NewField("error", err),
				)
				return nil
			}
			notified.Add(1)
			return nil
		})
	}
	_ = g.Wait()

	return int(notified.Load()), int(failed.Load())
}

func (r *Route) notifyClient(ctx context.Context, contact entities.OrderContact) error {
	if contact.Email == "" {
		return errors.New("client has no email")
	}

	subject, body, err := enRouteEmail(contact)
	if err != nil {
		return err
	}
	return r.notifier.SendEmail(ctx, contact.Email, subject, body)
}

// CancelRoute заказы маршрута, еще не доставленные, возвращаются в бэклог как Reprogramado.
func (r *Route) CancelRoute(ctx context.Context, routeID int64) (*entities.RouteCancellation, error) {
	if !isValidID(routeID) {
		return nil, ErrInvalidRouteID
	}

	var released int64
	err := r.txManager.Do(ctx, func(ctx context.Context) error {
		cancelled, err := r.repository.Transition(ctx, routeID, entities.ActiveRouteStatuses, entities.RouteCancelled)
		if err != nil {
			return fmt.Errorf("cancel route: %w", err)
		}
		if !cancelled {
			return r.rejectTransition(ctx, routeID, ErrRouteNotCancellable, entities.ActiveRouteStatuses...)
		}

		// до удаления остановок: освобождение идет по ним
		released, err = r.orders.ReleaseByRoute(ctx, routeID)
		if err != nil {
			return fmt.Errorf("release orders: %w", err)
		}

		_, err = r.repository.SoftDeleteStops(ctx, routeID)
		if err != nil {
			return fmt.Errorf("delete route stops: %w", err)
		}

		err = r.vehicles.ReleaseForRoute(ctx, routeID)
		if err != nil {
			return fmt.Errorf("release vehicle: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	r.log.Info("route cancelled",
		logger.NewField("route_id", routeID),
		logger.NewField("orders_released", released),
	)

	return &entities.RouteCancellation{
		RouteID:        routeID,
		OrdersReleased: released,
	}, nil
}

func (r *Route) GetRoute(ctx context.Context, routeID int64) (*entities.Route, error) {
	if !isValidID(routeID) {
		return nil, ErrInvalidRouteID
	}

	route, err := r.repository.GetByID(ctx, routeID)
	if err != nil {
		return nil, fmt.Errorf("get route: %w", err)
	}
	return route, nil
}

func (r *Route) ListRoutes(ctx context.Context, filter entities.RouteFilter) ([]entities.Route, error) {
	if !isValidLimit(filter.Limit) {
		return nil, fmt.Errorf("%w: limit over %d", ErrInvalidFilter, maxListLimit)
	}
	if filter.VehicleID != nil && !isValidID(*filter.VehicleID) {
		return nil, fmt.Errorf("%w: vehicle id", ErrInvalidFilter)
	}
	if filter.DriverID != nil && !isValidID(*filter.DriverID) {
		return nil, fmt.Errorf("%w: driver id", ErrInvalidFilter)
	}

	routes, err := r.repository.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("list routes: %w", err)
	}
	return routes, nil
}

// CountRoutesByStatus по строке на каждый известный статус, отсутствующие - с нулем.
func (r *Route) CountRoutesByStatus(ctx context.Context) ([]entities.RouteStatusCount, error) {
	counts, err := r.repository.CountByStatus(ctx)
	if err != nil {
		return nil, fmt.Errorf("count routes: %w", err)
	}

	byStatus := make(map[entities.RouteStatus]int64, len(counts))
	for _, c := range counts {
		byStatus[c.Status] = c.Count
	}

	all := []entities.RouteStatus{
		entities.RouteUnassigned,
		entities.RouteAwaitingStart,
		entities.RouteInProgress,
		entities.RouteFinalized,
		entities.RouteCancelled,
	}

	result := make([]entities.RouteStatusCount, 0, len(all))
	for _, s := range all {
		result = append(result, entities.RouteStatusCount{Status: s, Count: byStatus[s]})
	}
	return result, nil
}

// rejectTransition объясняет, почему условный переход не прошел: маршрута нет или статус не тот.
func (r *Route) rejectTransition(ctx context.Context, routeID int64, reason error, expected ...entities.RouteStatus) error {
	route, err := r.repository.GetByID(ctx, routeID)
	if err != nil {
		return fmt.Errorf("get route: %w", err)
	}

	if len(expected) == 1 {
		return fmt.Errorf("%w: route is %q, expected %q", reason, route.Status.Label(), expected[0].Label())
	}
	return fmt.Errorf("%w: route is %q", reason, route.Status.Label())
}
