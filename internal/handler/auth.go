// Copyright (c) 2025-2026 Studio Pickens
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/studiopickens/studio-api/internal/auth"
	"github.com/studiopickens/studio-api/internal/middleware"
	"github.com/studiopickens/studio-api/internal/model"
	"github.com/studiopickens/studio-api/internal/store"
)

// MinPasswordLength is the minimum accepted password length on change.
const MinPasswordLength = 6

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// loginResponse carries the token and profile at the top level, the shape
// the admin frontend expects.
type loginResponse struct {
	Success bool          `json:"success"`
	Token   string        `json:"token"`
	User    model.Profile `json:"user"`
}

// Login authenticates by username or email and issues a bearer token.
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) error {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Username == "" || req.Password == "" {
		return NewError(http.StatusBadRequest, CodeMissingCredentials, "Username and password are required")
	}

	user, err := h.users.FindByLogin(req.Username)
	if err != nil {
		if errors.Is(err, store.ErrUserNotFound) {
			slog.Warn("login failed", "category", "auth", "username", req.Username)
			return NewError(http.StatusUnauthorized, CodeInvalidCredentials, "Invalid credentials")
		}
		return StorageError("Failed to read user store", err)
	}

	if !auth.CheckPassword(req.Password, user.PasswordHash) {
		slog.Warn("login failed", "category", "auth", "username", req.Username)
		return NewError(http.StatusUnauthorized, CodeInvalidCredentials, "Invalid credentials")
	}

	token, err := h.tokens.Issue(user)
	if err != nil {
		return StorageError("Failed to issue token", err)
	}

	if updated, err := h.users.RecordLogin(user.ID); err != nil {
		// Login still succeeds; the stale lastLogin is cosmetic.
		slog.Warn("failed to record login time", "category", "auth", "error", err)
	} else {
		user = updated
	}

	slog.Info("user logged in", "category", "auth", "username", user.Username)

	w.Header().Set("Content-Type", "application/json")
	return json.NewEncoder(w).Encode(loginResponse{
		Success: true,
		Token:   token,
		User:    user.Profile(),
	})
}

// Logout acknowledges the request. Tokens are stateless; the client simply
// discards its copy and the token dies at expiry.
func (h *Handler) Logout(w http.ResponseWriter, _ *http.Request) error {
	WriteMessage(w, "Logged out successfully")
	return nil
}

// Me returns the profile of the authenticated user.
func (h *Handler) Me(w http.ResponseWriter, r *http.Request) error {
	claims, ok := middleware.ClaimsFrom(r)
	if !ok {
		return NewError(http.StatusUnauthorized, CodeNoToken, "Access token required")
	}

	user, err := h.users.FindByID(claims.UserID())
	if err != nil {
		if errors.Is(err, store.ErrUserNotFound) {
			return NewError(http.StatusNotFound, CodeUserNotFound, "User not found")
		}
		return StorageError("Failed to read user store", err)
	}

	WriteData(w, map[string]any{"user": user.Profile()})
	return nil
}

type changePasswordRequest struct {
	CurrentPassword string `json:"currentPassword"`
	NewPassword     string `json:"newPassword"`
}

// ChangePassword verifies the current password and stores a new hash.
func (h *Handler) ChangePassword(w http.ResponseWriter, r *http.Request) error {
	claims, ok := middleware.ClaimsFrom(r)
	if !ok {
		return NewError(http.StatusUnauthorized, CodeNoToken, "Access token required")
	}

	var req changePasswordRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.CurrentPassword == "" || req.NewPassword == "" {
		return NewError(http.StatusBadRequest, CodeMissingPasswords, "Current and new passwords are required")
	}
	if len(req.NewPassword) < MinPasswordLength {
		return NewError(http.StatusBadRequest, CodePasswordTooShort, "New password must be at least 6 characters long")
	}

	user, err := h.users.FindByID(claims.UserID())
	if err != nil {
		if errors.Is(err, store.ErrUserNotFound) {
			return NewError(http.StatusNotFound, CodeUserNotFound, "User not found")
		}
		return StorageError("Failed to read user store", err)
	}

	if !auth.CheckPassword(req.CurrentPassword, user.PasswordHash) {
		slog.Warn("password change rejected", "category", "auth", "username", user.Username)
		return NewError(http.StatusUnauthorized, CodeInvalidCurrent, "Current password is incorrect")
	}

	newHash, err := auth.HashPassword(req.NewPassword)
	if err != nil {
		return StorageError("Failed to hash password", err)
	}
	if _, err := h.users.ChangePassword(user.ID, newHash); err != nil {
		return StorageError("Failed to update password", err)
	}

	slog.Info("password changed", "category", "auth", "username", user.Username)
	WriteMessage(w, "Password changed successfully")
	return nil
}
