package handler

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/studiopickens/studio-api/internal/auth"
	"github.com/studiopickens/studio-api/internal/config"
	"github.com/studiopickens/studio-api/internal/store"
)

// testAPI wires a full router against temp directories so tests exercise the
// real middleware chain end to end.
type testAPI struct {
	cfg    *config.Config
	docs   *store.Documents
	users  *store.Users
	router http.Handler
}

func newTestAPI(t *testing.T) *testAPI {
	return newTestAPIConfigured(t, nil)
}

// newTestAPIConfigured lets a test adjust the config before wiring.
func newTestAPIConfigured(t *testing.T, adjust func(*config.Config)) *testAPI {
	t.Helper()

	cfg := &config.Config{
		ServerHost:         "localhost",
		ServerPort:         3001,
		Env:                "development",
		LogLevel:           "error",
		DataDir:            t.TempDir(),
		PublicDir:          t.TempDir(),
		JWTSecret:          "test-secret",
		AdminUsername:      "admin",
		AdminPassword:      "admin123",
		AdminEmail:         "admin@studiopickens.com",
		CORSOrigins:        []string{"http://localhost:3000"},
		UploadMaxSize:      10485760,
		UploadAllowedTypes: []string{"image/jpeg", "image/jpg", "image/png", "image/gif", "image/webp"},
		// Generous budgets so tests never trip the limiter.
		AuthRateMax:    1000,
		AuthRateWindow: 900,
		APIRateMax:     100000,
		APIRateWindow:  900,
	}
	if adjust != nil {
		adjust(cfg)
	}

	users := store.NewUsers(cfg.UsersFile())
	if err := users.BootstrapAdmin(cfg.AdminUsername, cfg.AdminPassword, cfg.AdminEmail); err != nil {
		t.Fatalf("BootstrapAdmin() error = %v", err)
	}

	docs := store.NewDocuments(cfg.DataDir)
	tokens := auth.NewTokenService(cfg.JWTSecret)
	h := New(cfg, docs, users, tokens)

	return &testAPI{
		cfg:    cfg,
		docs:   docs,
		users:  users,
		router: h.Routes(),
	}
}

// do performs a request against the test router. A non-nil body is encoded
// as JSON; a non-empty token becomes a bearer Authorization header.
func (a *testAPI) do(t *testing.T, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshaling request body: %v", err)
		}
		reader = bytes.NewReader(data)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	rec := httptest.NewRecorder()
	a.router.ServeHTTP(rec, req)
	return rec
}

// login returns a valid admin bearer token.
func (a *testAPI) login(t *testing.T) string {
	t.Helper()

	rec := a.do(t, http.MethodPost, "/api/auth/login", "", map[string]string{
		"username": "admin",
		"password": "admin123",
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("login failed: status %d, body %s", rec.Code, rec.Body.String())
	}

	var resp struct {
		Token string `json:"token"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil || resp.Token == "" {
		t.Fatalf("login response missing token: %s", rec.Body.String())
	}
	return resp.Token
}

// decodeEnvelope unpacks the common response envelope.
func decodeEnvelope(t *testing.T, rec *httptest.ResponseRecorder) envelope {
	t.Helper()

	var env envelope
	if err := json.Unmarshal(rec.Body.Bytes(), &env); err != nil {
		t.Fatalf("response is not a JSON envelope: %v\n%s", err, rec.Body.String())
	}
	return env
}
