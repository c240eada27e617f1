package middleware

import (
	"net/http"
	"strings"
)

// ContentType rejects body-carrying requests that are not application/json.
// A charset suffix is allowed.
func ContentType(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodPost, http.MethodPatch, http.MethodPut:
			ct := r.Header.Get("Content-Type")
			if ct == "" {
				http.Error(w, "Content-Type header is required", http.StatusBadRequest)
				return
			}
			if !strings.HasPrefix(strings.ToLower(ct), "application/json") {
				http.Error(w, "Content-Type must be application/json", http.StatusUnsupportedMediaType)
				return
			}
		}

		next.ServeHTTP(w, r)
	})
}
