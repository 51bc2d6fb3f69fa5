//go:generate mockgen -source=contract.go -destination=./contract_mocks_test.go -package=healthcheck_head_test
package healthcheck_head

import "context"

// pinger - пул postgres.
type pinger interface {
	Ping(ctx context.Context) error
}
