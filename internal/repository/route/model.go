package route

import "time"

type RouteDB struct {
	ID           int64
	VehicleID    int64
	VehiclePlate string
	DriverID     *int64
	Status       string
	CreatedAt    time.Time
}

type RouteStopDB struct {
	ID       int64
	RouteID  int64
	OrderID  int64
	Sequence int
	Deleted  bool
}

type StatusCountDB struct {
	Status string
	Count  int64
}
