package graceful_shutdown

import (
	"context"
	"net/http"
	"sync/atomic"

	"routing/internal/handlers/rest/dto"
)

// Middleware после сигнала остановки новые запросы получают 503, уже начатые дорабатывают.
func Middleware(isShuttingDown *atomic.Bool, ongoingCtx context.Context) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if isShuttingDown.Load() || ongoingCtx.Err() != nil {
				w.Header().Set("Connection", "close")
				_ = dto.WriteJSON(w, http.StatusServiceUnavailable, dto.Fail("service is shutting down"))
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
