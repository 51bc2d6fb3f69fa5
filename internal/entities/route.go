package entities

import (
	"fmt"
	"time"
)

type Route struct {
	ID           int64
	VehicleID    int64
	VehiclePlate string
	DriverID     *int64
	Status       RouteStatus
	CreatedAt    time.Time
	Stops        []RouteStop
}

type RouteStop struct {
	ID       int64
	RouteID  int64
	OrderID  int64
	Sequence int
	Deleted  bool
}

type RouteFilter struct {
	Status    *RouteStatus
	VehicleID *int64
	DriverID  *int64
	Limit     uint64
}

type RouteStatus int

const (
	RouteUnknown RouteStatus = iota
	RouteUnassigned
	RouteAwaitingStart
	RouteInProgress
	RouteFinalized
	RouteCancelled
)

var routeStatusLabels = map[RouteStatus]string{
	RouteUnassigned:    "Sin Asignar",
	RouteAwaitingStart: "Pendiente",
	RouteInProgress:    "En Curso",
	RouteFinalized:     "Finalizada",
	RouteCancelled:     "Cancelada",
}

// routeStatuses все известные статусы в порядке жизненного цикла.
var routeStatuses = []RouteStatus{RouteUnassigned, RouteAwaitingStart, RouteInProgress, RouteFinalized, RouteCancelled}

// ActiveRouteStatuses маршрут в одном из этих статусов держит машину и водителя.
var ActiveRouteStatuses = selectRouteStatuses(RouteStatus.IsActive)

func selectRouteStatuses(keep func(RouteStatus) bool) []RouteStatus {
	selected := make([]RouteStatus, 0, len(routeStatuses))
	for _, s := range routeStatuses {
		if keep(s) {
			selected = append(selected, s)
		}
	}
	return selected
}

func (s RouteStatus) Label() string {
	if label, ok := routeStatusLabels[s]; ok {
		return label
	}
	return "Unknown"
}

func (s RouteStatus) String() string {
	switch s {
	case RouteUnassigned:
		return "unassigned"
	case RouteAwaitingStart:
		return "awaiting_start"
	case RouteInProgress:
		return "in_progress"
	case RouteFinalized:
		return "finalized"
	case RouteCancelled:
		return "cancelled"
	default:
		return "unknown"
	}
}

func (s RouteStatus) IsActive() bool {
	return s == RouteUnassigned || s == RouteAwaitingStart || s == RouteInProgress
}

func RouteStatusFromLabel(label string) (RouteStatus, error) {
	for status, l := range routeStatusLabels {
		if l == label {
			return status, nil
		}
	}
	return RouteUnknown, fmt.Errorf("unknown route status label %q", label)
}

// RouteStatusFromString разбирает внешнее (API) имя статуса.
func RouteStatusFromString(s string) (RouteStatus, error) {
	for status := range routeStatusLabels {
		if status.String() == s {
			return status, nil
		}
	}
	return RouteUnknown, fmt.Errorf("unknown route status %q", s)
}

func ActiveRouteLabels() []string {
	labels := make([]string, 0, len(ActiveRouteStatuses))
	for _, s := range ActiveRouteStatuses {
		labels = append(labels, s.Label())
	}
	return labels
}

// RoutePlan решение солвера в терминах домена.
type RoutePlan struct {
	Routes     []PlannedRoute
	Unassigned []int64
}

type PlannedRoute struct {
	VehicleID int64
	// OrderIDs в порядке объезда.
	OrderIDs []int64
}

type GenerationResult struct {
	RoutesCreated     int
	OrdersProgrammed  int
	OrdersRescheduled int
	OrdersSkipped     int
	RouteIDs          []int64
}

type Assignment struct {
	RouteID      int64
	DriverID     int64
	VehiclePlate string
}

type RouteStart struct {
	RouteID             int64
	Notified            int
	NotificationsFailed int
	Warning             string
}

type RouteCancellation struct {
	RouteID        int64
	OrdersReleased int64
}

type RouteStatusCount struct {
	Status RouteStatus
	Count  int64
}
