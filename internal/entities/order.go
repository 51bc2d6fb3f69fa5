package entities

import (
	"fmt"
	"strings"
	"time"
)

type Order struct {
	ID       int64
	ClientID int64

	Weight float64
	Width  float64
	Length float64
	Height float64

	AddressLine string
	City        string
	Region      string
	PostalCode  string
	Lat         *float64
	Lon         *float64

	Status        OrderStatus
	ProofRef      *string
	FailureReason *FailureReason
	FailureNote   *string
	UpdatedAt     time.Time
}

// HasCoordinates false - адрес заказа еще не прошел геокодирование.
func (o *Order) HasCoordinates() bool {
	return o.Lat != nil && o.Lon != nil
}

// Volume объем в тех же единицах, что и габариты (l*w*h).
func (o *Order) Volume() float64 {
	return o.Length * o.Width * o.Height
}

type OrderStatus int

const (
	OrderUnknown OrderStatus = iota
	OrderPending
	OrderProgrammed
	OrderRescheduled
	OrderDelivered
	OrderFailed
)

// Метки статусов в том виде, в каком они лежат в БД.
var orderStatusLabels = map[OrderStatus]string{
	OrderPending:     "Pendiente",
	OrderProgrammed:  "Programado",
	OrderRescheduled: "Reprogramado",
	OrderDelivered:   "Entregado",
	OrderFailed:      "Fallido",
}

func (s OrderStatus) Label() string {
	if label, ok := orderStatusLabels[s]; ok {
		return label
	}
	return "Unknown"
}

func (s OrderStatus) String() string {
	switch s {
	case OrderPending:
		return "pending"
	case OrderProgrammed:
		return "programmed"
	case OrderRescheduled:
		return "rescheduled"
	case OrderDelivered:
		return "delivered"
	case OrderFailed:
		return "failed"
	default:
		return "unknown"
	}
}

func (s OrderStatus) IsTerminal() bool {
	return s == OrderDelivered || s == OrderFailed
}

// InBacklog статусы, из которых заказ попадает в следующую генерацию маршрутов.
func (s OrderStatus) InBacklog() bool {
	return s == OrderPending || s == OrderRescheduled
}

var orderStatuses = []OrderStatus{OrderPending, OrderProgrammed, OrderRescheduled, OrderDelivered, OrderFailed}

func selectOrderStatuses(keep func(OrderStatus) bool) []OrderStatus {
	selected := make([]OrderStatus, 0, len(orderStatuses))
	for _, s := range orderStatuses {
		if keep(s) {
			selected = append(selected, s)
		}
	}
	return selected
}

// BacklogOrderStatuses статусы, которые забирает генерация маршрутов.
func BacklogOrderStatuses() []OrderStatus {
	return selectOrderStatuses(OrderStatus.InBacklog)
}

func TerminalOrderStatuses() []OrderStatus {
	return selectOrderStatuses(OrderStatus.IsTerminal)
}

func OrderStatusFromLabel(label string) (OrderStatus, error) {
	for status, l := range orderStatusLabels {
		if l == label {
			return status, nil
		}
	}
	return OrderUnknown, fmt.Errorf("unknown order status label %q", label)
}

type FailureReason string

const (
	FailureClientAbsent FailureReason = "client_absent"
	FailureWrongAddress FailureReason = "wrong_address"
	FailureRefused      FailureReason = "refused"
	FailureDamaged      FailureReason = "damaged"
	FailureOther        FailureReason = "other"
)

func (r FailureReason) String() string {
	return string(r)
}

func (r FailureReason) IsValid() bool {
	switch r {
	case FailureClientAbsent, FailureWrongAddress, FailureRefused, FailureDamaged, FailureOther:
		return true
	default:
		return false
	}
}

// Address строка для геокодера.
func (o *Order) Address() string {
	parts := make([]string, 0, 3)
	for _, p := range []string{o.AddressLine, o.City, o.Region} {
		if p = strings.TrimSpace(p); p != "" {
			parts = append(parts, p)
		}
	}
	return strings.Join(parts, ", ")
}

type DeliveryOutcome struct {
	OrderID        int64
	RouteID        int64
	Status         OrderStatus
	RouteFinalized bool
}
