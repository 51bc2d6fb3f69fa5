package delivery

import (
	"fmt"
	"strings"

	"routing/internal/entities"
)

func isValidOrderID(orderID int64) bool {
	return orderID > 0
}

func parseFailure(reason, note string) (entities.FailureReason, *string, error) {
	r := entities.FailureReason(strings.ToLower(strings.TrimSpace(reason)))
	if !r.IsValid() {
		return "", nil, fmt.Errorf("%w: %q", ErrInvalidFailureReason, reason)
	}

	note = strings.TrimSpace(note)
	if r == entities.FailureOther && note == "" {
		return "", nil, fmt.Errorf("%w: note is required for reason %q", ErrInvalidFailureReason, r)
	}
	if note == "" {
		return r, nil, nil
	}
	return r, &note, nil
}
