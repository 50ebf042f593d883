package handler

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
)

func runWrapped(t *testing.T, production bool, fn HandlerFunc) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, "/test", nil)
	rec := httptest.NewRecorder()
	Wrap(production, fn)(rec, req)
	return rec
}

func TestWrap(t *testing.T) {
	t.Run("nil error writes nothing extra", func(t *testing.T) {
		rec := runWrapped(t, false, func(w http.ResponseWriter, r *http.Request) error {
			WriteMessage(w, "done")
			return nil
		})
		if rec.Code != http.StatusOK {
			t.Errorf("status = %d", rec.Code)
		}
		if env := decodeEnvelope(t, rec); !env.Success || env.Message != "done" {
			t.Errorf("envelope = %+v", env)
		}
	})

	t.Run("api error keeps status and code", func(t *testing.T) {
		rec := runWrapped(t, false, func(http.ResponseWriter, *http.Request) error {
			return NotFoundError("Hero data not found")
		})
		if rec.Code != http.StatusNotFound {
			t.Errorf("status = %d, want 404", rec.Code)
		}
		env := decodeEnvelope(t, rec)
		if env.Code != CodeNotFound || env.Error != "Hero data not found" {
			t.Errorf("envelope = %+v", env)
		}
	})

	t.Run("wrapped api error is unwrapped", func(t *testing.T) {
		rec := runWrapped(t, false, func(http.ResponseWriter, *http.Request) error {
			return fmt.Errorf("while loading: %w", NewError(http.StatusBadRequest, CodeInvalidID, "Invalid ID parameter"))
		})
		if rec.Code != http.StatusBadRequest {
			t.Errorf("status = %d, want 400", rec.Code)
		}
		if env := decodeEnvelope(t, rec); env.Code != CodeInvalidID {
			t.Errorf("code = %q", env.Code)
		}
	})

	t.Run("unknown error becomes internal", func(t *testing.T) {
		rec := runWrapped(t, false, func(http.ResponseWriter, *http.Request) error {
			return errors.New("disk exploded")
		})
		if rec.Code != http.StatusInternalServerError {
			t.Errorf("status = %d, want 500", rec.Code)
		}
		env := decodeEnvelope(t, rec)
		if env.Code != CodeInternal {
			t.Errorf("code = %q", env.Code)
		}
		// Development keeps the real message for debugging.
		if env.Error != "disk exploded" {
			t.Errorf("error = %q", env.Error)
		}
	})

	t.Run("production hides server error detail", func(t *testing.T) {
		rec := runWrapped(t, true, func(http.ResponseWriter, *http.Request) error {
			return StorageError("Failed to read hero data", errors.New("open /data/hero.json: permission denied"))
		})
		if rec.Code != http.StatusInternalServerError {
			t.Errorf("status = %d, want 500", rec.Code)
		}
		env := decodeEnvelope(t, rec)
		if env.Code != CodeDatabase {
			t.Errorf("code = %q, want %q", env.Code, CodeDatabase)
		}
		if env.Error != "Internal server error" {
			t.Errorf("error = %q, internal detail must not leak", env.Error)
		}
	})

	t.Run("production keeps client error messages", func(t *testing.T) {
		rec := runWrapped(t, true, func(http.ResponseWriter, *http.Request) error {
			return NewError(http.StatusBadRequest, CodeMissingCredentials, "Username and password are required")
		})
		if env := decodeEnvelope(t, rec); env.Error != "Username and password are required" {
			t.Errorf("error = %q, client messages stay intact", env.Error)
		}
	})
}
