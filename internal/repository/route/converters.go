package route

import (
	"fmt"

	"routing/internal/entities"
)

func ToDomain(r *RouteDB) (*entities.Route, error) {
	if r == nil {
		return nil, nil
	}

	status, err := entities.RouteStatusFromLabel(r.Status)
	if err != nil {
		return nil, fmt.Errorf("route %d: %w", r.ID, err)
	}

	return &entities.Route{
		ID:           r.ID,
		VehicleID:    r.VehicleID,
		VehiclePlate: r.VehiclePlate,
		DriverID:     r.DriverID,
		Status:       status,
		CreatedAt:    r.CreatedAt,
	}, nil
}

func StopToDomain(s *RouteStopDB) entities.RouteStop {
	return entities.RouteStop{
		ID:       s.ID,
		RouteID:  s.RouteID,
		OrderID:  s.OrderID,
		Sequence: s.Sequence,
		Deleted:  s.Deleted,
	}
}

func labels(statuses []entities.RouteStatus) []string {
	out := make([]string, 0, len(statuses))
	for _, s := range statuses {
		out = append(out, s.Label())
	}
	return out
}
