package route

import "errors"

var (
	ErrInvalidRouteID  = errors.New("invalid route id")
	ErrInvalidDriverID = errors.New("invalid driver id")
	ErrInvalidPlate    = errors.New("invalid vehicle plate")
	ErrInvalidFilter   = errors.New("invalid route filter")

	ErrRouteNotFound       = errors.New("route not found")
	ErrDriverNotFound      = errors.New("driver not found")
	ErrVehicleNotFound     = errors.New("vehicle not found for route")
	ErrRouteNotAssignable  = errors.New("route is not assignable")
	ErrRouteNotStartable   = errors.New("route is not startable")
	ErrRouteNotCancellable = errors.New("route is not cancellable")
	ErrDriverBusy          = errors.New("driver already has an active route")

	ErrNotificationFailed = errors.New("notification failed")
)
