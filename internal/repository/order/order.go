package order

import (
	"context"
	"errors"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"routing/internal/entities"
	"routing/internal/repository"
	"routing/internal/service/delivery"
)

var qb sq.StatementBuilderType = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

const orderColumns = `o.id, o.client_id, o.weight, o.width, o.length, o.height,
	o.address_line, o.city, o.region, o.postal_code, o.lat, o.lon,
	o.status, o.proof_ref, o.failure_reason, o.failure_note, o.updated_at`

type Repository struct {
	querier repository.Querier
}

func New(querier repository.Querier) *Repository {
	return &Repository{
		querier: querier,
	}
}

// ListBacklog заказы в статусах Pendiente/Reprogramado, которые не стоят в активной остановке.
func (r *Repository) ListBacklog(ctx context.Context) ([]entities.Order, error) {
	query := `
		SELECT ` + orderColumns + `
		FROM orders o
		WHERE NOT o.deleted
		  AND o.status = ANY($1)
		  AND NOT EXISTS (
		      SELECT 1 FROM route_stops s
		      WHERE s.order_id = o.id AND NOT s.deleted
		  )
		ORDER BY o.id
	`

	backlog := labels(entities.BacklogOrderStatuses())

	rows, err := r.querier.Query(ctx, query, backlog)
	if err != nil {
		return nil, fmt.Errorf("unexpected order repository list backlog error: %w", err)
	}
	defer rows.Close()

	orders := make([]entities.Order, 0, 32)
	for rows.Next() {
		model, err := scanOrder(rows)
		if err != nil {
			return nil, fmt.Errorf("unexpected order repository list backlog error: %w", err)
		}
		order, err := ToDomain(model)
		if err != nil {
			return nil, fmt.Errorf("unexpected order repository list backlog error: %w", err)
		}
		orders = append(orders, *order)
	}

	err = rows.Err()
	if err != nil {
		return nil, fmt.Errorf("unexpected order repository list backlog error: %w", err)
	}

	return orders, nil
}

func (r *Repository) GetByID(ctx context.Context, orderID int64) (*entities.Order, error) {
	query := `
		SELECT ` + orderColumns + `
		FROM orders o
		WHERE o.id = $1 AND NOT o.deleted
	`

	model, err := scanOrder(r.querier.QueryRow(ctx, query, orderID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, delivery.ErrOrderNotFound
		}
		return nil, fmt.Errorf("unexpected order repository get error: %w", err)
	}

	order, err := ToDomain(model)
	if err != nil {
		return nil, fmt.Errorf("unexpected order repository get error: %w", err)
	}
	return order, nil
}

func (r *Repository) SaveGeocode(ctx context.Context, orderID int64, point entities.GeoPoint) error {
	builder := qb.
		Update("orders").
		Set("lat", point.Lat).
		Set("lon", point.Lon).
		Set("updated_at", sq.Expr("NOW()")).
		Where(sq.Eq{"id": orderID})

	if point.PostalCode != "" {
		builder = builder.Set("postal_code", point.PostalCode)
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return fmt.Errorf("unexpected order repository save geocode error: %w", err)
	}

	_, err = r.querier.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("unexpected order repository save geocode error: %w", err)
	}
	return nil
}

// SetStatus переводит заказы из одного из статусов from в to. Возвращает число обновленных строк,
// заказы в других статусах не трогаются.
func (r *Repository) SetStatus(ctx context.Context, orderIDs []int64, from []entities.OrderStatus, to entities.OrderStatus) (int64, error) {
	if len(orderIDs) == 0 {
		return 0, nil
	}

	query, args, err := qb.
		Update("orders").
		Set("status", to.Label()).
		Set("updated_at", sq.Expr("NOW()")).
		Where(sq.Eq{"id": orderIDs, "status": labels(from)}).
		Where("NOT deleted").
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("unexpected order repository set status error: %w", err)
	}

	affected, err := r.querier.ExecAffected(ctx, query, args...)
	if err != nil {
		return 0, fmt.Errorf("unexpected order repository set status error: %w", err)
	}
	return affected, nil
}

// MarkDelivered возвращает id маршрута. Заказ должен быть Programado в активной остановке маршрута En Curso.
func (r *Repository) MarkDelivered(ctx context.Context, orderID int64, proofRef string) (int64, error) {
	query := `
		UPDATE orders o
		SET status = $2,
		    proof_ref = $3,
		    updated_at = NOW()
		FROM route_stops s
		JOIN routes r ON r.id = s.route_id
		WHERE o.id = $1
		  AND NOT o.deleted
		  AND o.status = $4
		  AND s.order_id = o.id
		  AND NOT s.deleted
		  AND r.status = $5
		RETURNING s.route_id
	`

	var routeID int64
	err := r.querier.QueryRow(
		ctx,
		query,
		orderID,
		entities.OrderDelivered.Label(),
		proofRef,
		entities.OrderProgrammed.Label(),
		entities.RouteInProgress.Label(),
	).Scan(&routeID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, delivery.ErrOrderNotInProgress
		}
		return 0, fmt.Errorf("unexpected order repository mark delivered error: %w", err)
	}
	return routeID, nil
}

func (r *Repository) MarkFailed(ctx context.Context, orderID int64, reason entities.FailureReason, note *string) (int64, error) {
	query := `
		UPDATE orders o
		SET status = $2,
		    failure_reason = $3,
		    failure_note = $4,
		    updated_at = NOW()
		FROM route_stops s
		JOIN routes r ON r.id = s.route_id
		WHERE o.id = $1
		  AND NOT o.deleted
		  AND o.status = $5
		  AND s.order_id = o.id
		  AND NOT s.deleted
		  AND r.status = $6
		RETURNING s.route_id
	`

	var routeID int64
	err := r.querier.QueryRow(
		ctx,
		query,
		orderID,
		entities.OrderFailed.Label(),
		reason.String(),
		note,
		entities.OrderProgrammed.Label(),
		entities.RouteInProgress.Label(),
	).Scan(&routeID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, delivery.ErrOrderNotInProgress
		}
		return 0, fmt.Errorf("unexpected order repository mark failed error: %w", err)
	}
	return routeID, nil
}

// ReleaseByRoute возвращает в бэклог (Reprogramado) все еще не доставленные заказы маршрута.
func (r *Repository) ReleaseByRoute(ctx context.Context, routeID int64) (int64, error) {
	query := `
		UPDATE orders o
		SET status = $2,
		    updated_at = NOW()
		FROM route_stops s
		WHERE s.route_id = $1
		  AND s.order_id = o.id
		  AND NOT s.deleted
		  AND o.status = $3
	`

	affected, err := r.querier.ExecAffected(
		ctx,
		query,
		routeID,
		entities.OrderRescheduled.Label(),
		entities.OrderProgrammed.Label(),
	)
	if err != nil {
		return 0, fmt.Errorf("unexpected order repository release error: %w", err)
	}
	return affected, nil
}

// CountOpenByRoute остановки маршрута, заказ которых еще не в терминальном статусе.
func (r *Repository) CountOpenByRoute(ctx context.Context, routeID int64) (int64, error) {
	query := `
		SELECT COUNT(*)
		FROM route_stops s
		JOIN orders o ON o.id = s.order_id
		WHERE s.route_id = $1
		  AND NOT s.deleted
		  AND o.status <> ALL($2)
	`

	terminal := labels(entities.TerminalOrderStatuses())

	var count int64
	err := r.querier.QueryRow(ctx, query, routeID, terminal).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("unexpected order repository count open error: %w", err)
	}
	return count, nil
}

// ListContactsByRoute клиенты маршрута в порядке объезда.
func (r *Repository) ListContactsByRoute(ctx context.Context, routeID int64) ([]entities.OrderContact, error) {
	query := `
		SELECT o.id, c.name, c.email, o.address_line, o.city, o.region
		FROM route_stops s
		JOIN orders o ON o.id = s.order_id
		JOIN clients c ON c.id = o.client_id
		WHERE s.route_id = $1
		  AND NOT s.deleted
		ORDER BY s.sequence
	`

	rows, err := r.querier.Query(ctx, query, routeID)
	if err != nil {
		return nil, fmt.Errorf("unexpected order repository list contacts error: %w", err)
	}
	defer rows.Close()

	contacts := make([]entities.OrderContact, 0, 16)
	for rows.Next() {
		var model OrderContactDB
		err := rows.Scan(
			&model.OrderID,
			&model.ClientName,
			&model.Email,
			&model.AddressLine,
			&model.City,
			&model.Region,
		)
		if err != nil {
			return nil, fmt.Errorf("unexpected order repository list contacts error: %w", err)
		}
		contacts = append(contacts, ContactToDomain(&model))
	}

	err = rows.Err()
	if err != nil {
		return nil, fmt.Errorf("unexpected order repository list contacts error: %w", err)
	}

	return contacts, nil
}

func scanOrder(row pgx.Row) (*OrderDB, error) {
	var model OrderDB
	err := row.Scan(
		&model.ID,
		&model.ClientID,
		&model.Weight,
		&model.Width,
		&model.Length,
		&model.Height,
		&model.AddressLine,
		&model.City,
		&model.Region,
		&model.PostalCode,
		&model.Lat,
		&model.Lon,
		&model.Status,
		&model.ProofRef,
		&model.FailureReason,
		&model.FailureNote,
		&model.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &model, nil
}
