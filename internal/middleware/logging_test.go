package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func TestLogging(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name          string
		method        string
		path          string
		handlerStatus int
	}{
		{"GET request", "GET", "/test", http.StatusOK},
		{"POST request", "POST", "/api/v1/habits", http.StatusCreated},
		{"404 request", "GET", "/notfound", http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			core, logs := observer.New(zap.InfoLevel)
			handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.handlerStatus)
			})

			wrapped := Logging(zap.New(core))(handler)

			req := httptest.NewRequest(tt.method, tt.path, nil)
			w := httptest.NewRecorder()

			wrapped.ServeHTTP(w, req)

			resp := w.Result()
			defer func() {
				_ = resp.Body.Close()
			}()

			if resp.StatusCode != tt.handlerStatus {
				t.Errorf("Expected status %d, got %d", tt.handlerStatus, resp.StatusCode)
			}

			entries := logs.FilterMessage("http_request").All()
			if len(entries) != 1 {
				t.Fatalf("Expected one http_request entry, got %d", len(entries))
			}
			fields := entries[0].ContextMap()
			if fields["method"] != tt.method {
				t.Errorf("Expected method %q, got %v", tt.method, fields["method"])
			}
			if fields["status_code"] != int64(tt.handlerStatus) {
				t.Errorf("Expected status_code %d, got %v", tt.handlerStatus, fields["status_code"])
			}
		})
	}
}

func TestLoggingResponseWriter(t *testing.T) {
	t.Parallel()

	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte("test"))
	})

	wrapped := Logging(zap.NewNop())(handler)

	req := httptest.NewRequest("GET", "/test", nil)
	w := httptest.NewRecorder()

	wrapped.ServeHTTP(w, req)

	resp := w.Result()
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode != http.StatusCreated {
		t.Errorf("Expected status 201, got %d", resp.StatusCode)
	}
}
