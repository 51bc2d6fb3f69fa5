package delivery

import "errors"

var (
	ErrInvalidOrderID       = errors.New("invalid order id")
	ErrMissingProof         = errors.New("missing proof of delivery")
	ErrInvalidFailureReason = errors.New("invalid failure reason")

	ErrOrderNotFound      = errors.New("order not found")
	ErrOrderNotInProgress = errors.New("order is not in progress")
)
