package vehicle

import (
	"context"
	"fmt"

	"routing/internal/entities"
	"routing/internal/repository"
	"routing/internal/service/route"
)

type Repository struct {
	querier repository.Querier
}

func New(querier repository.Querier) *Repository {
	return &Repository{
		querier: querier,
	}
}

// ListAvailable машины, которые можно отдать солверу: не удалены, не закреплены за водителем
// и не стоят ни в одном активном маршруте.
func (r *Repository) ListAvailable(ctx context.Context) ([]entities.Vehicle, error) {
	query := `
		SELECT v.id, v.plate, v.max_weight, v.max_volume, v.width, v.length, v.height,
		       v.start_lat, v.start_lon, v.assigned, v.deleted
		FROM vehicles v
		WHERE NOT v.deleted
		  AND NOT v.assigned
		  AND NOT EXISTS (
		      SELECT 1 FROM routes r
		      WHERE r.vehicle_id = v.id AND r.status = ANY($1)
		  )
		ORDER BY v.id
	`

	rows, err := r.querier.Query(ctx, query, entities.ActiveRouteLabels())
	if err != nil {
		return nil, fmt.Errorf("unexpected vehicle repository list available error: %w", err)
	}
	defer rows.Close()

	models := make([]VehicleDB, 0, 8)
	for rows.Next() {
		var model VehicleDB
		err := rows.Scan(
			&model.ID,
			&model.Plate,
			&model.MaxWeight,
			&model.MaxVolume,
			&model.Width,
			&model.Length,
			&model.Height,
			&model.StartLat,
			&model.StartLon,
			&model.Assigned,
			&model.Deleted,
		)
		if err != nil {
			return nil, fmt.Errorf("unexpected vehicle repository list available error: %w", err)
		}
		models = append(models, model)
	}

	err = rows.Err()
	if err != nil {
		return nil, fmt.Errorf("unexpected vehicle repository list available error: %w", err)
	}

	return ToDomainList(models), nil
}

// MarkAssignedForRoute помечает машину занятой. Номер должен принадлежать машине маршрута.
func (r *Repository) MarkAssignedForRoute(ctx context.Context, routeID int64, plate string) error {
	query := `
		UPDATE vehicles v
		SET assigned = TRUE,
		    updated_at = NOW()
		FROM routes r
		WHERE r.id = $1
		  AND v.id = r.vehicle_id
		  AND v.plate = $2
		  AND NOT v.deleted
	`

	affected, err := r.querier.ExecAffected(ctx, query, routeID, plate)
	if err != nil {
		return fmt.Errorf("unexpected vehicle repository mark assigned error: %w", err)
	}
	if affected == 0 {
		return route.ErrVehicleNotFound
	}
	return nil
}

func (r *Repository) ReleaseForRoute(ctx context.Context, routeID int64) error {
	query := `
		UPDATE vehicles v
		SET assigned = FALSE,
		    updated_at = NOW()
		FROM routes r
		WHERE r.id = $1
		  AND v.id = r.vehicle_id
		  AND v.assigned
	`

	_, err := r.querier.Exec(ctx, query, routeID)
	if err != nil {
		return fmt.Errorf("unexpected vehicle repository release error: %w", err)
	}
	return nil
}
