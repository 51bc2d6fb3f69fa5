package driver

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"routing/internal/entities"
	"routing/internal/repository"
	"routing/internal/service/route"
)

type DriverDB struct {
	ID    int64
	Name  string
	Email string
}

type Repository struct {
	querier repository.Querier
}

func New(querier repository.Querier) *Repository {
	return &Repository{
		querier: querier,
	}
}

func (r *Repository) GetByID(ctx context.Context, driverID int64) (*entities.Driver, error) {
	query := `
		SELECT id, name, email
		FROM drivers
		WHERE id = $1
	`

	var model DriverDB
	err := r.querier.QueryRow(ctx, query, driverID).Scan(&model.ID, &model.Name, &model.Email)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, route.ErrDriverNotFound
		}
		return nil, fmt.Errorf("unexpected driver repository get error: %w", err)
	}

	return &entities.Driver{
		ID:    model.ID,
		Name:  model.Name,
		Email: model.Email,
	}, nil
}
