package order

import (
	"fmt"

	"routing/internal/entities"
)

func ToDomain(o *OrderDB) (*entities.Order, error) {
	if o == nil {
		return nil, nil
	}

	status, err := entities.OrderStatusFromLabel(o.Status)
	if err != nil {
		return nil, fmt.Errorf("order %d: %w", o.ID, err)
	}

	var reason *entities.FailureReason
	if o.FailureReason != nil {
		r := entities.FailureReason(*o.FailureReason)
		reason = &r
	}

	return &entities.Order{
		ID:            o.ID,
		ClientID:      o.ClientID,
		Weight:        o.Weight,
		Width:         o.Width,
		Length:        o.Length,
		Height:        o.Height,
		AddressLine:   o.AddressLine,
		City:          o.City,
		Region:        o.Region,
		PostalCode:    o.PostalCode,
		Lat:           o.Lat,
		Lon:           o.Lon,
		Status:        status,
		ProofRef:      o.ProofRef,
		FailureReason: reason,
		FailureNote:   o.FailureNote,
		UpdatedAt:     o.UpdatedAt,
	}, nil
}

func ContactToDomain(c *OrderContactDB) entities.OrderContact {
	address := (&entities.Order{AddressLine: c.AddressLine, City: c.City, Region: c.Region}).Address()

	return entities.OrderContact{
		OrderID:    c.OrderID,
		ClientName: c.ClientName,
		Email:      c.Email,
		Address:    address,
	}
}

func labels(statuses []entities.OrderStatus) []string {
	out := make([]string, 0, len(statuses))
	for _, s := range statuses {
		out = append(out, s.Label())
	}
	return out
}
