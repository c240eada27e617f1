package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestHealthCheck_BasicMode(t *testing.T) {
	t.Parallel()

	// Basic mode touches no dependencies.
	checker := NewHealthChecker(nil, nil, nil)

	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	rec := httptest.NewRecorder()

	checker.HealthCheck(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}

	var response HealthResponse
	if err := json.NewDecoder(rec.Body).Decode(&response); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if response.Status != "healthy" {
		t.Errorf("Status = %s, want healthy", response.Status)
	}
	if response.Checks != nil {
		t.Errorf("Checks = %v, want none in basic mode", response.Checks)
	}
}
