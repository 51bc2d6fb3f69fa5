package order

import "time"

type OrderDB struct {
	ID            int64
	ClientID      int64
	Weight        float64
	Width         float64
	Length        float64
	Height        float64
	AddressLine   string
	City          string
	Region        string
	PostalCode    string
	Lat           *float64
	Lon           *float64
	Status        string
	ProofRef      *string
	FailureReason *string
	FailureNote   *string
	UpdatedAt     time.Time
}

type OrderContactDB struct {
	OrderID     int64
	ClientName  string
	Email       string
	AddressLine string
	City        string
	Region      string
}
