package delivery

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"routing/internal/entities"
)

type Delivery struct {
	orders    OrderRepository
	routes    RouteRepository
	vehicles  VehicleRepository
	txManager TxManager
}

func New(
	orders OrderRepository,
	routes RouteRepository,
	vehicles VehicleRepository,
	txManager TxManager,
) *Delivery {
	return &Delivery{
		orders:    orders,
		routes:    routes,
		vehicles:  vehicles,
		txManager: txManager,
	}
}

func (d *Delivery) MarkDelivered(ctx context.Context, orderID int64, proofRef string) (*entities.DeliveryOutcome, error) {
	if !isValidOrderID(orderID) {
		return nil, ErrInvalidOrderID
	}
	proofRef = strings.TrimSpace(proofRef)
	if proofRef == "" {
		return nil, ErrMissingProof
	}

	return d.complete(ctx, orderID, entities.OrderDelivered, func(ctx context.Context) (int64, error) {
		return d.orders.MarkDelivered(ctx, orderID, proofRef)
	})
}

func (d *Delivery) MarkFailed(ctx context.Context, orderID int64, reason, note string) (*entities.DeliveryOutcome, error) {
	if !isValidOrderID(orderID) {
		return nil, ErrInvalidOrderID
	}
	failureReason, failureNote, err := parseFailure(reason, note)
	if err != nil {
		return nil, err
	}

	return d.complete(ctx, orderID, entities.OrderFailed, func(ctx context.Context) (int64, error) {
		return d.orders.MarkFailed(ctx, orderID, failureReason, failureNote)
	})
}

// complete переводит заказ в терминальный статус и, если на маршруте не осталось открытых
// остановок, финализирует маршрут и освобождает машину.
func (d *Delivery) complete(
	ctx context.Context,
	orderID int64,
	status entities.OrderStatus,
	mark func(ctx context.Context) (int64, error),
) (*entities.DeliveryOutcome, error) {
	var outcome entities.DeliveryOutcome

	err := d.txManager.Do(ctx, func(ctx context.Context) error {
		routeID, err := mark(ctx)
		if err != nil {
			if errors.Is(err, ErrOrderNotInProgress) {
				return d.describeNotInProgress(ctx, orderID)
			}
			return fmt.Errorf("mark order %s: %w", status, err)
		}

		finalized, err := d.finalizeIfComplete(ctx, routeID)
		if err != nil {
			return err
		}

		outcome = entities.DeliveryOutcome{
			OrderID:        orderID,
			RouteID:        routeID,
			Status:         status,
			RouteFinalized: finalized,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return &outcome, nil
}

func (d *Delivery) finalizeIfComplete(ctx context.Context, routeID int64) (bool, error) {
	open, err := d.orders.CountOpenByRoute(ctx, routeID)
	if err != nil {
		return false, fmt.Errorf("count open stops: %w", err)
	}
	if open > 0 {
		return false, nil
	}

	finalized, err := d.routes.Transition(
		ctx,
		routeID,
		[]entities.RouteStatus{entities.RouteInProgress},
		entities.RouteFinalized,
	)
	if err != nil {
		return false, fmt.Errorf("finalize route: %w", err)
	}
	if !finalized {
		return false, nil
	}

	err = d.vehicles.ReleaseForRoute(ctx, routeID)
	if err != nil {
		return false, fmt.Errorf("release vehicle: %w", err)
	}
	return true, nil
}

func (d *Delivery) describeNotInProgress(ctx context.Context, orderID int64) error {
	order, err := d.orders.GetByID(ctx, orderID)
	if err != nil {
		return fmt.Errorf("get order: %w", err)
	}

	if order.Status != entities.OrderProgrammed {
		return fmt.Errorf("%w: order is %q", ErrOrderNotInProgress, order.Status.Label())
	}
	return fmt.Errorf("%w: route of the order is not %q", ErrOrderNotInProgress, entities.RouteInProgress.Label())
}
