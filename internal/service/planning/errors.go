package planning

import "errors"

var (
	ErrNoPendingOrders     = errors.New("no pending orders")
	ErrNoAvailableVehicles = errors.New("no available vehicles")
	ErrNoRoutableOrders    = errors.New("no routable orders")

	ErrNoVehicles            = errors.New("no vehicles in solver request")
	ErrNoOrders              = errors.New("no orders in solver request")
	ErrRouteGenerationFailed = errors.New("route generation failed")
	ErrGeocodeNotFound       = errors.New("address not found")

	ErrVehicleBusy        = errors.New("vehicle already has an active route")
	ErrOrderAlreadyRouted = errors.New("order already on an active route")
	ErrBacklogChanged     = errors.New("backlog changed during generation")
)
