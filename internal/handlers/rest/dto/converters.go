package dto

import "routing/internal/entities"

func NewRoute(route entities.Route) Route {
	stops := make([]RouteStop, 0, len(route.Stops))
	for _, s := range route.Stops {
		stops = append(stops, RouteStop{
			OrderID:  s.OrderID,
			Sequence: s.Sequence,
		})
	}

	return Route{
		ID:           route.ID,
		VehicleID:    route.VehicleID,
		VehiclePlate: route.VehiclePlate,
		DriverID:     route.DriverID,
		Status:       route.Status.String(),
		StatusLabel:  route.Status.Label(),
		CreatedAt:    route.CreatedAt,
		Stops:        stops,
	}
}
