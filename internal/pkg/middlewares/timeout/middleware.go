package timeout

import (
	"context"
	"net/http"
	"time"
)

// Middleware ограничивает время запроса. Базовый контекст r.Context() - ongoingCtx сервера,
// так что SIGTERM сам по себе запрос не обрывает.
func Middleware(timeout time.Duration) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if timeout <= 0 {
				next.ServeHTTP(w, r)
				return
			}

			ctx, cancel := context.WithTimeout(r.Context(), timeout)
			defer cancel()

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
