package planning

import (
	"fmt"

	"routing/internal/entities"
)

// normalizePlan проверяет ответ солвера против запроса. Заказы, которые солвер не упомянул,
// считаются неназначенными.
func normalizePlan(plan *entities.RoutePlan, vehicles []entities.Vehicle, orders []entities.Order) (*entities.RoutePlan, error) {
	if plan == nil {
		return nil, fmt.Errorf("%w: empty solver plan", ErrRouteGenerationFailed)
	}

	knownVehicles := make(map[int64]struct{}, len(vehicles))
	for _, v := range vehicles {
		knownVehicles[v.ID] = struct{}{}
	}

	knownOrders := make(map[int64]struct{}, len(orders))
	for _, o := range orders {
		knownOrders[o.ID] = struct{}{}
	}

	seen := make(map[int64]struct{}, len(orders))
	usedVehicles := make(map[int64]struct{}, len(plan.Routes))

	normalized := &entities.RoutePlan{
		Routes:     make([]entities.PlannedRoute, 0, len(plan.Routes)),
		Unassigned: make([]int64, 0, len(plan.Unassigned)),
	}

	for _, route := range plan.Routes {
		if _, ok := knownVehicles[route.VehicleID]; !ok {
			return nil, fmt.Errorf("%w: unknown vehicle %d in solver plan", ErrRouteGenerationFailed, route.VehicleID)
		}
		if _, ok := usedVehicles[route.VehicleID]; ok {
			return nil, fmt.Errorf("%w: vehicle %d has more than one route", ErrRouteGenerationFailed, route.VehicleID)
		}
		usedVehicles[route.VehicleID] = struct{}{}

		for _, orderID := range route.OrderIDs {
			if err := checkOrder(orderID, knownOrders, seen); err != nil {
				return nil, err
			}
		}

		// маршрут без остановок не сохраняется
		if len(route.OrderIDs) > 0 {
			normalized.Routes = append(normalized.Routes, route)
		}
	}

	for _, orderID := range plan.Unassigned {
		if err := checkOrder(orderID, knownOrders, seen); err != nil {
			return nil, err
		}
		normalized.Unassigned = append(normalized.Unassigned, orderID)
	}

	for _, o := range orders {
		if _, ok := seen[o.ID]; !ok {
			normalized.Unassigned = append(normalized.Unassigned, o.ID)
		}
	}

	return normalized, nil
}

func checkOrder(orderID int64, known, seen map[int64]struct{}) error {
	if _, ok := known[orderID]; !ok {
		return fmt.Errorf("%w: unknown order %d in solver plan", ErrRouteGenerationFailed, orderID)
	}
	if _, ok := seen[orderID]; ok {
		return fmt.Errorf("%w: order %d appears twice in solver plan", ErrRouteGenerationFailed, orderID)
	}
	seen[orderID] = struct{}{}
	return nil
}
