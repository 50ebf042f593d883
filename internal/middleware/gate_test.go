package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
)

func runGate(t *testing.T, method, path string, headers map[string]string) (*httptest.ResponseRecorder, bool) {
	t.Helper()
	reached := false
	handler := RequestGate(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		reached = true
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest(method, path, nil)
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	return rec, reached
}

func gateCode(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	var body struct {
		Code string `json:"code"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("response is not JSON: %v", err)
	}
	return body.Code
}

func TestRequestGateContentType(t *testing.T) {
	rec, reached := runGate(t, http.MethodPost, "/api/auth/login", map[string]string{
		"Content-Type": "text/plain",
	})
	if reached {
		t.Error("request with wrong content type should not reach the handler")
	}
	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rec.Code)
	}
	if code := gateCode(t, rec); code != "INVALID_CONTENT_TYPE" {
		t.Errorf("code = %q, want INVALID_CONTENT_TYPE", code)
	}

	for _, ct := range []string{"application/json", "application/json; charset=utf-8", "multipart/form-data; boundary=x"} {
		if _, reached := runGate(t, http.MethodPost, "/api/auth/login", map[string]string{"Content-Type": ct}); !reached {
			t.Errorf("content type %q should pass the gate", ct)
		}
	}
}

func TestRequestGateAuthorizationHeader(t *testing.T) {
	tests := []struct {
		name    string
		method  string
		path    string
		headers map[string]string
		pass    bool
	}{
		{"public GET passes", http.MethodGet, "/api/hero", nil, true},
		{"health passes", http.MethodGet, "/api/health", nil, true},
		{"images listing passes", http.MethodGet, "/api/images", nil, true},
		{"auth routes pass", http.MethodPost, "/api/auth/login", map[string]string{"Content-Type": "application/json"}, true},
		{"mutating route without header blocked", http.MethodPut, "/api/hero/1", map[string]string{"Content-Type": "application/json"}, false},
		{"delete without header blocked", http.MethodDelete, "/api/work/1", nil, false},
		{"upload without header blocked", http.MethodPost, "/api/upload", map[string]string{"Content-Type": "multipart/form-data; boundary=x"}, false},
		{"mutating route with header passes", http.MethodPut, "/api/hero/1", map[string]string{
			"Content-Type": "application/json", "Authorization": "Bearer x",
		}, true},
		{"non-api path untouched", http.MethodGet, "/images/logo.png", nil, true},
		{"public sub-path passes", http.MethodGet, "/api/hero/anything", nil, true},
		{"prefix lookalike blocked", http.MethodGet, "/api/heroes-fake", nil, false},
		{"health lookalike blocked", http.MethodGet, "/api/healthz", nil, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec, reached := runGate(t, tt.method, tt.path, tt.headers)
			if reached != tt.pass {
				t.Fatalf("reached = %v, want %v (status %d)", reached, tt.pass, rec.Code)
			}
			if !tt.pass {
				if rec.Code != http.StatusUnauthorized {
					t.Errorf("status = %d, want 401", rec.Code)
				}
				if code := gateCode(t, rec); code != "MISSING_AUTH_HEADER" {
					t.Errorf("code = %q, want MISSING_AUTH_HEADER", code)
				}
			}
		})
	}
}
