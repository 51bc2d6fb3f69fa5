package vroom

import (
	"fmt"

	"routing/internal/service/planning"
)

const (
	CodeMalformedResponse = -1
	CodeTransport         = -2
)

// SolverError любая неудача вызова солвера. Code - HTTP статус, код солвера
// или одна из отрицательных констант выше.
type SolverError struct {
	Code       int
	Message    string
	Unassigned int

	err error
}

func (e *SolverError) Error() string {
	return fmt.Sprintf("%s: solver code %d: %s", planning.ErrRouteGenerationFailed, e.Code, e.Message)
}

func (e *SolverError) Is(target error) bool {
	return target == planning.ErrRouteGenerationFailed
}

func (e *SolverError) Unwrap() error {
	return e.err
}

func (e *SolverError) SolverCode() int {
	return e.Code
}

func (e *SolverError) UnplacedCount() int {
	return e.Unassigned
}
