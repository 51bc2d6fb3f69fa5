package route

import (
	"context"
	"errors"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"routing/internal/entities"
	"routing/internal/repository"
	"routing/internal/service/planning"
	"routing/internal/service/route"
)

var qb sq.StatementBuilderType = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

const defaultListLimit = 100

type Repository struct {
	querier repository.Querier
}

func New(querier repository.Querier) *Repository {
	return &Repository{
		querier: querier,
	}
}

// Create новый маршрут в статусе Sin Asignar.
func (r *Repository) Create(ctx context.Context, vehicleID int64) (int64, error) {
	query := `
		INSERT INTO routes (vehicle_id, status)
		VALUES ($1, $2)
		RETURNING id
	`

	var id int64
	err := r.querier.QueryRow(ctx, query, vehicleID, entities.RouteUnassigned.Label()).Scan(&id)
	if err != nil {
		if repository.IsPgErrorWithCode(err, repository.PgErrUniqueViolation) {
			return 0, planning.ErrVehicleBusy
		}
		return 0, fmt.Errorf("unexpected route repository create error: %w", err)
	}
	return id, nil
}

// CreateStops остановки нумеруются с 1 в порядке orderIDs.
func (r *Repository) CreateStops(ctx context.Context, routeID int64, orderIDs []int64) error {
	if len(orderIDs) == 0 {
		return nil
	}

	builder := qb.
		Insert("route_stops").
		Columns("route_id", "order_id", "sequence")

	for i, orderID := range orderIDs {
		builder = builder.Values(routeID, orderID, i+1)
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return fmt.Errorf("unexpected route repository create stops error: %w", err)
	}

	_, err = r.querier.Exec(ctx, query, args...)
	if err != nil {
		if repository.IsPgErrorWithCode(err, repository.PgErrUniqueViolation) {
			return planning.ErrOrderAlreadyRouted
		}
		return fmt.Errorf("unexpected route repository create stops error: %w", err)
	}
	return nil
}

// AssignDriver false - маршрут не найден или уже не Sin Asignar.
func (r *Repository) AssignDriver(ctx context.Context, routeID, driverID int64) (bool, error) {
	query := `
		UPDATE routes
		SET driver_id = $2,
		    status = $3,
		    updated_at = NOW()
		WHERE id = $1
		  AND status = $4
		  AND driver_id IS NULL
	`

	affected, err := r.querier.ExecAffected(
		ctx,
		query,
		routeID,
		driverID,
		entities.RouteAwaitingStart.Label(),
		entities.RouteUnassigned.Label(),
	)
	if err != nil {
		switch {
		case repository.IsPgErrorWithCode(err, repository.PgErrUniqueViolation):
			return false, route.ErrDriverBusy
		case repository.IsPgErrorWithCode(err, repository.PgErrForeignKeyViolation):
			return false, route.ErrDriverNotFound
		}
		return false, fmt.Errorf("unexpected route repository assign driver error: %w", err)
	}
	return affected > 0, nil
}

// Transition условный переход статуса: false - маршрут не найден или его статус не из from.
func (r *Repository) Transition(ctx context.Context, routeID int64, from []entities.RouteStatus, to entities.RouteStatus) (bool, error) {
	query, args, err := qb.
		Update("routes").
		Set("status", to.Label()).
		Set("updated_at", sq.Expr("NOW()")).
		Where(sq.Eq{"id": routeID, "status": labels(from)}).
		ToSql()
	if err != nil {
		return false, fmt.Errorf("unexpected route repository transition error: %w", err)
	}

	affected, err := r.querier.ExecAffected(ctx, query, args...)
	if err != nil {
		return false, fmt.Errorf("unexpected route repository transition error: %w", err)
	}
	return affected > 0, nil
}

func (r *Repository) GetByID(ctx context.Context, routeID int64) (*entities.Route, error) {
	query := `
		SELECT r.id, r.vehicle_id, v.plate, r.driver_id, r.status, r.created_at
		FROM routes r
		JOIN vehicles v ON v.id = r.vehicle_id
		WHERE r.id = $1
	`

	var model RouteDB
	err := r.querier.QueryRow(ctx, query, routeID).Scan(
		&model.ID,
		&model.VehicleID,
		&model.VehiclePlate,
		&model.DriverID,
		&model.Status,
		&model.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, route.ErrRouteNotFound
		}
		return nil, fmt.Errorf("unexpected route repository get error: %w", err)
	}

	result, err := ToDomain(&model)
	if err != nil {
		return nil, fmt.Errorf("unexpected route repository get error: %w", err)
	}

	result.Stops, err = r.ListStops(ctx, routeID)
	if err != nil {
		return nil, err
	}
	return result, nil
}

func (r *Repository) ListStops(ctx context.Context, routeID int64) ([]entities.RouteStop, error) {
	query := `
		SELECT id, route_id, order_id, sequence, deleted
		FROM route_stops
		WHERE route_id = $1 AND NOT deleted
		ORDER BY sequence
	`

	rows, err := r.querier.Query(ctx, query, routeID)
	if err != nil {
		return nil, fmt.Errorf("unexpected route repository list stops error: %w", err)
	}
	defer rows.Close()

	stops := make([]entities.RouteStop, 0, 16)
	for rows.Next() {
		var model RouteStopDB
		err := rows.Scan(&model.ID, &model.RouteID, &model.OrderID, &model.Sequence, &model.Deleted)
		if err != nil {
			return nil, fmt.Errorf("unexpected route repository list stops error: %w", err)
		}
		stops = append(stops, StopToDomain(&model))
	}

	err = rows.Err()
	if err != nil {
		return nil, fmt.Errorf("unexpected route repository list stops error: %w", err)
	}

	return stops, nil
}

// SoftDeleteStops освобождает заказы маршрута для следующих генераций.
func (r *Repository) SoftDeleteStops(ctx context.Context, routeID int64) (int64, error) {
	query := `
		UPDATE route_stops
		SET deleted = TRUE
		WHERE route_id = $1 AND NOT deleted
	`

	affected, err := r.querier.ExecAffected(ctx, query, routeID)
	if err != nil {
		return 0, fmt.Errorf("unexpected route repository soft delete stops error: %w", err)
	}
	return affected, nil
}

// List без стопов, новые маршруты первыми.
func (r *Repository) List(ctx context.Context, filter entities.RouteFilter) ([]entities.Route, error) {
	builder := qb.
		Select("r.id", "r.vehicle_id", "v.plate", "r.driver_id", "r.status", "r.created_at").
		From("routes r").
		Join("vehicles v ON v.id = r.vehicle_id")

	if filter.Status != nil {
		builder = builder.Where(sq.Eq{"r.status": filter.Status.Label()})
	}
	if filter.VehicleID != nil {
		builder = builder.Where(sq.Eq{"r.vehicle_id": *filter.VehicleID})
	}
	if filter.DriverID != nil {
		builder = builder.Where(sq.Eq{"r.driver_id": *filter.DriverID})
	}

	limit := filter.Limit
	if limit == 0 {
		limit = defaultListLimit
	}

	query, args, err := builder.
		OrderBy("r.id DESC").
		Limit(limit).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("unexpected route repository list error: %w", err)
	}

	rows, err := r.querier.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("unexpected route repository list error: %w", err)
	}
	defer rows.Close()

	routes := make([]entities.Route, 0, limit)
	for rows.Next() {
		var model RouteDB
		err := rows.Scan(
			&model.ID,
			&model.VehicleID,
			&model.VehiclePlate,
			&model.DriverID,
			&model.Status,
			&model.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("unexpected route repository list error: %w", err)
		}
		result, err := ToDomain(&model)
		if err != nil {
			return nil, fmt.Errorf("unexpected route repository list error: %w", err)
		}
		routes = append(routes, *result)
	}

	err = rows.Err()
	if err != nil {
		return nil, fmt.Errorf("unexpected route repository list error: %w", err)
	}

	return routes, nil
}

func (r *Repository) CountByStatus(ctx context.Context) ([]entities.RouteStatusCount, error) {
	query := `
		SELECT status, COUNT(*)
		FROM routes
		GROUP BY status
		ORDER BY status
	`

	rows, err := r.querier.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("unexpected route repository count by status error: %w", err)
	}
	defer rows.Close()

	counts := make([]entities.RouteStatusCount, 0, 5)
	for rows.Next() {
		var model StatusCountDB
		err := rows.Scan(&model.Status, &model.Count)
		if err != nil {
			return nil, fmt.Errorf("unexpected route repository count by status error: %w", err)
		}
		status, err := entities.RouteStatusFromLabel(model.Status)
		if err != nil {
			return nil, fmt.Errorf("unexpected route repository count by status error: %w", err)
		}
		counts = append(counts, entities.RouteStatusCount{Status: status, Count: model.Count})
	}

	err = rows.Err()
	if err != nil {
		return nil, fmt.Errorf("unexpected route repository count by status error: %w", err)
	}

	return counts, nil
}
