package middleware

import (
	"context"
	"net/http"
	"time"
)

// DefaultRequestTimeout bounds handler execution when no explicit timeout is given
const DefaultRequestTimeout = 30 * time.Second

// Timeout enforces a deadline on request handling. The request context carries
// the same deadline so downstream queries get cancelled with the handler.
func Timeout(timeout time.Duration) func(http.Handler) http.Handler {
	if timeout <= 0 {
		timeout = DefaultRequestTimeout
	}

	return func(next http.Handler) http.Handler {
		handler := http.TimeoutHandler(next, timeout, "Request Timeout")
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx, cancel := context.WithTimeout(r.Context(), timeout)
			defer cancel()
			handler.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
