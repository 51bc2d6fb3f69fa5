//go:generate mockgen -source=contract.go -destination=./contract_mocks_test.go -package=vroom_test
package vroom

import "routing/pkg/logger"

type clientLogger interface {
	Warn(msg string, fields ...logger.Field)
}
