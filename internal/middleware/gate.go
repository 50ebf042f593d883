// Copyright (c) 2025-2026 Studio Pickens
// SPDX-License-Identifier: GPL-3.0-or-later

package middleware

import (
	"net/http"
	"strings"
)

// Paths under /api/ that never require an Authorization header.
var publicPrefixes = []string{"/api/auth/", "/api/health"}

// Paths whose GET variants are public reads.
var publicGetPrefixes = []string{
	"/api/hero",
	"/api/work",
	"/api/process",
	"/api/story",
	"/api/locations",
	"/api/contact",
	"/api/faq",
	"/api/images",
}

// RequestGate rejects obviously malformed API requests before they reach a
// handler: mutating requests must declare a JSON or multipart body, and
// protected routes must at least carry an Authorization header. Token
// verification itself happens later in RequireAuth.
func RequestGate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodPost || r.Method == http.MethodPut {
			ct := r.Header.Get("Content-Type")
			if !strings.HasPrefix(ct, "application/json") && !strings.HasPrefix(ct, "multipart/form-data") {
				writeError(w, http.StatusBadRequest, "INVALID_CONTENT_TYPE", "Invalid content type")
				return
			}
		}

		if strings.HasPrefix(r.URL.Path, "/api/") && !isPublic(r) {
			if r.Header.Get("Authorization") == "" {
				writeError(w, http.StatusUnauthorized, "MISSING_AUTH_HEADER", "Authorization header required")
				return
			}
		}

		next.ServeHTTP(w, r)
	})
}

func isPublic(r *http.Request) bool {
	for _, prefix := range publicPrefixes {
		if pathMatches(r.URL.Path, prefix) {
			return true
		}
	}
	if r.Method != http.MethodGet {
		return false
	}
	for _, prefix := range publicGetPrefixes {
		if pathMatches(r.URL.Path, prefix) {
			return true
		}
	}
	return false
}

// pathMatches accepts the prefix itself or a sub-path under it, so
// "/api/hero" covers "/api/hero" and "/api/hero/..." but not "/api/heroes".
func pathMatches(path, prefix string) bool {
	if strings.HasSuffix(prefix, "/") {
		return strings.HasPrefix(path, prefix)
	}
	return path == prefix || strings.HasPrefix(path, prefix+"/")
}
