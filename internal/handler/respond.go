// Copyright (c) 2025-2026 Studio Pickens
// SPDX-License-Identifier: GPL-3.0-or-later

// Package handler implements the HTTP API: auth, content CRUD, uploads and
// health, all speaking the same JSON response envelope.
package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/studiopickens/studio-api/internal/schema"
)

// envelope is the common JSON response shape. Every endpoint, success or
// failure, answers with it.
type envelope struct {
	Success   bool                `json:"success"`
	Data      any                 `json:"data,omitempty"`
	Message   string              `json:"message,omitempty"`
	Error     string              `json:"error,omitempty"`
	Code      string              `json:"code,omitempty"`
	Details   []schema.FieldError `json:"details,omitempty"`
	Timestamp string              `json:"timestamp"`
}

func writeJSON(w http.ResponseWriter, status int, env envelope) {
	env.Timestamp = time.Now().UTC().Format(time.RFC3339)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(env)
}

// WriteData writes a success envelope carrying a payload.
func WriteData(w http.ResponseWriter, data any) {
	writeJSON(w, http.StatusOK, envelope{Success: true, Data: data})
}

// WriteMessage writes a success envelope carrying only a message.
func WriteMessage(w http.ResponseWriter, message string) {
	writeJSON(w, http.StatusOK, envelope{Success: true, Message: message})
}

// WriteError writes a failure envelope for an API error.
func WriteError(w http.ResponseWriter, apiErr *Error) {
	writeJSON(w, apiErr.Status, envelope{
		Success: false,
		Error:   apiErr.Message,
		Code:    apiErr.Code,
		Details: apiErr.Details,
	})
}

// HandlerFunc is a handler that reports failures by returning an error
// instead of writing the response itself.
type HandlerFunc func(w http.ResponseWriter, r *http.Request) error

// Wrap is the single error translation boundary. Returned *Error values
// keep their status and code; anything else becomes a 500. Server errors
// are logged, and in production their message is replaced so internal
// detail never leaks to a client.
func Wrap(production bool, fn HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		err := fn(w, r)
		if err == nil {
			return
		}

		var apiErr *Error
		if !errors.As(err, &apiErr) {
			apiErr = &Error{
				Status:  http.StatusInternalServerError,
				Code:    CodeInternal,
				Message: err.Error(),
				err:     err,
			}
		}

		if apiErr.Status >= http.StatusInternalServerError {
			slog.Error("request failed",
				"method", r.Method,
				"path", r.URL.Path,
				"code", apiErr.Code,
				"error", apiErr.Error())
			if production {
				apiErr = NewError(apiErr.Status, apiErr.Code, "Internal server error")
			}
		}

		WriteError(w, apiErr)
	}
}
