// Copyright (c) 2025-2026 Studio Pickens
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"net/http"
	"strconv"
	"time"

	"github.com/studiopickens/studio-api/internal/auth"
	"github.com/studiopickens/studio-api/internal/config"
	"github.com/studiopickens/studio-api/internal/store"

	"github.com/go-chi/chi/v5"
)

// Handler carries the dependencies shared by all API endpoints.
type Handler struct {
	cfg     *config.Config
	docs    *store.Documents
	users   *store.Users
	tokens  *auth.TokenService
	started time.Time
}

// New creates a Handler.
func New(cfg *config.Config, docs *store.Documents, users *store.Users, tokens *auth.TokenService) *Handler {
	return &Handler{
		cfg:     cfg,
		docs:    docs,
		users:   users,
		tokens:  tokens,
		started: time.Now(),
	}
}

// idParam parses a positive integer id from the named URL parameter.
func idParam(r *http.Request, name string) (int64, *Error) {
	raw := chi.URLParam(r, name)
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, NewError(http.StatusBadRequest, CodeInvalidID, "Invalid ID parameter")
	}
	return id, nil
}
