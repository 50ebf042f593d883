// Copyright (c) 2025-2026 Studio Pickens
// SPDX-License-Identifier: GPL-3.0-or-later

package middleware

import (
	"context"
	"log/slog"
	"net/http"
	"strings"

	"github.com/studiopickens/studio-api/internal/auth"
)

// ContextKey is a type for context keys to avoid collisions.
type ContextKey string

// ContextKeyClaims is the context key for the verified token claims.
const ContextKeyClaims ContextKey = "claims"

// bearerToken extracts the token from an "Authorization: Bearer <token>"
// header. Returns "" when the header is absent or malformed.
func bearerToken(r *http.Request) string {
	header := r.Header.Get("Authorization")
	if header == "" {
		return ""
	}
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
		return ""
	}
	return strings.TrimSpace(parts[1])
}

// RequireAuth creates middleware that verifies the bearer token and stores
// the claims in the request context.
func RequireAuth(tokens *auth.TokenService) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			raw := bearerToken(r)
			if raw == "" {
				writeError(w, http.StatusUnauthorized, "NO_TOKEN", "Access token required")
				return
			}

			claims, err := tokens.Verify(raw)
			if err != nil {
				slog.Warn("token verification failed",
					"category", "auth",
					"ip", getClientIP(r),
					"path", r.URL.Path)
				writeError(w, http.StatusUnauthorized, "INVALID_TOKEN", "Invalid or expired token")
				return
			}

			ctx := context.WithValue(r.Context(), ContextKeyClaims, *claims)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequireAdmin creates middleware that only lets admin tokens through.
// It must run after RequireAuth.
func RequireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		claims, ok := ClaimsFrom(r)
		if !ok {
			writeError(w, http.StatusUnauthorized, "NO_TOKEN", "Access token required")
			return
		}
		if claims.Role != "admin" {
			slog.Warn("admin route denied",
				"category", "auth",
				"username", claims.Username,
				"path", r.URL.Path)
			writeError(w, http.StatusForbidden, "INSUFFICIENT_PERMISSIONS", "Admin access required")
			return
		}
		next.ServeHTTP(w, r)
	})
}

// ClaimsFrom retrieves the verified claims stored by RequireAuth.
func ClaimsFrom(r *http.Request) (auth.Claims, bool) {
	claims, ok := r.Context().Value(ContextKeyClaims).(auth.Claims)
	return claims, ok
}
