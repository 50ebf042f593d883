package handler

import (
	"encoding/json"
	"net/http"
	"testing"
	"time"
)

func TestHealth(t *testing.T) {
	api := newTestAPI(t)

	rec := api.do(t, http.MethodGet, "/api/health", "", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}

	var resp struct {
		Status    string `json:"status"`
		Timestamp string `json:"timestamp"`
		Uptime    string `json:"uptime"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid health response: %v\n%s", err, rec.Body.String())
	}

	if resp.Status != "healthy" {
		t.Errorf("status = %q, want healthy", resp.Status)
	}
	if _, err := time.Parse(time.RFC3339, resp.Timestamp); err != nil {
		t.Errorf("timestamp %q is not RFC 3339: %v", resp.Timestamp, err)
	}
	if _, err := time.ParseDuration(resp.Uptime); err != nil {
		t.Errorf("uptime %q is not a duration: %v", resp.Uptime, err)
	}
}

func TestHealthSkipsAuth(t *testing.T) {
	api := newTestAPI(t)

	// No Authorization header, yet the endpoint must answer.
	rec := api.do(t, http.MethodGet, "/api/health", "", nil)
	if rec.Code != http.StatusOK {
		t.Errorf("health must be public, got %d", rec.Code)
	}
}
