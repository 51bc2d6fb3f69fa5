// Package dto тела запросов и ответов REST API. Любой ответ содержит success и message.
package dto

import (
	"encoding/json"
	"net/http"
	"time"
)

type Result struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

type GenerateRoutesResponse struct {
	Result
	RoutesCreated     int     `json:"routes_created"`
	OrdersProgrammed  int     `json:"orders_programmed"`
	OrdersRescheduled int     `json:"orders_rescheduled"`
	OrdersSkipped     int     `json:"orders_skipped"`
	RouteIDs          []int64 `json:"route_ids"`
}

// SolverFailureResponse ответ на неудачный вызов солвера.
type SolverFailureResponse struct {
	Result
	SolverCode     int `json:"solver_code"`
	OrdersUnplaced int `json:"orders_unplaced"`
}

type RouteStop struct {
	OrderID  int64 `json:"order_id"`
	Sequence int   `json:"sequence"`
}

type Route struct {
	ID           int64       `json:"id"`
	VehicleID    int64       `json:"vehicle_id"`
	VehiclePlate string      `json:"vehicle_plate"`
	DriverID     *int64      `json:"driver_id"`
	Status       string      `json:"status"`
	StatusLabel  string      `json:"status_label"`
	CreatedAt    time.Time   `json:"created_at"`
	Stops        []RouteStop `json:"stops,omitempty"`
}

type RouteResponse struct {
	Result
	Route Route `json:"route"`
}

type RoutesResponse struct {
	Result
	Count  int     `json:"count"`
	Routes []Route `json:"routes"`
}

type AssignDriverRequest struct {
	DriverID     int64  `json:"driver_id"`
	VehiclePlate string `json:"vehicle_plate"`
}

type AssignDriverResponse struct {
	Result
	RouteID      int64  `json:"route_id"`
	DriverID     int64  `json:"driver_id"`
	VehiclePlate string `json:"vehicle_plate"`
}

type StartRouteResponse struct {
	Result
	RouteID             int64 `json:"route_id"`
	Notified            int   `json:"notified"`
	NotificationsFailed int   `json:"notifications_failed"`
}

type CancelRouteResponse struct {
	Result
	RouteID        int64 `json:"route_id"`
	OrdersReleased int64 `json:"orders_released"`
}

type OrderDeliveredRequest struct {
	ProofRef string `json:"proof_ref"`
}

type OrderFailedRequest struct {
	Reason string `json:"reason"`
	Note   string `json:"note"`
}

type DeliveryOutcomeResponse struct {
	Result
	OrderID        int64  `json:"order_id"`
	RouteID        int64  `json:"route_id"`
	Status         string `json:"status"`
	RouteFinalized bool   `json:"route_finalized"`
}

func Fail(message string) Result {
	return Result{Success: false, Message: message}
}

func OK(message string) Result {
	return Result{Success: true, Message: message}
}

// WriteJSON пишет заголовки и тело. Ошибку кодирования логирует вызывающий.
func WriteJSON(w http.ResponseWriter, status int, body any) error {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	return json.NewEncoder(w).Encode(body)
}
