// Copyright (c) 2025-2026 Studio Pickens
// SPDX-License-Identifier: GPL-3.0-or-later

package middleware

import (
	"net/http"
	"strconv"
)

// SecurityHeadersConfig holds configuration for security headers.
type SecurityHeadersConfig struct {
	// IsDevelopment indicates if the application is running in development
	// mode. When true, HSTS and the stricter production headers are disabled.
	IsDevelopment bool

	// HSTSMaxAge is the max-age for Strict-Transport-Security in seconds.
	// Set to 0 to disable HSTS.
	HSTSMaxAge int

	// HSTSIncludeSubDomains includes subdomains in the HSTS policy.
	HSTSIncludeSubDomains bool

	// HSTSPreload enables HSTS preload list eligibility.
	HSTSPreload bool

	// FrameOptions controls the X-Frame-Options header.
	// Valid values: "DENY", "SAMEORIGIN", or empty to disable.
	FrameOptions string

	// ReferrerPolicy controls the Referrer-Policy header.
	ReferrerPolicy string
}

// DefaultSecurityHeadersConfig returns a SecurityHeadersConfig with the
// defaults for a JSON API that is never embedded in a frame.
func DefaultSecurityHeadersConfig(isDev bool) SecurityHeadersConfig {
	cfg := SecurityHeadersConfig{
		IsDevelopment:  isDev,
		HSTSMaxAge:     31536000, // 1 year
		FrameOptions:   "DENY",
		ReferrerPolicy: "strict-origin-when-cross-origin",
	}
	if !isDev {
		cfg.HSTSIncludeSubDomains = true
		cfg.HSTSPreload = true
	}
	return cfg
}

// SecurityHeaders returns a middleware that adds security headers to
// responses.
func SecurityHeaders(cfg SecurityHeadersConfig) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			h := w.Header()

			// Prevent MIME sniffing.
			h.Set("X-Content-Type-Options", "nosniff")

			// Legacy but still useful for older browsers.
			h.Set("X-XSS-Protection", "1; mode=block")

			if cfg.FrameOptions != "" {
				h.Set("X-Frame-Options", cfg.FrameOptions)
			}
			if cfg.ReferrerPolicy != "" {
				h.Set("Referrer-Policy", cfg.ReferrerPolicy)
			}

			if !cfg.IsDevelopment {
				if cfg.HSTSMaxAge > 0 {
					hsts := "max-age=" + strconv.Itoa(cfg.HSTSMaxAge)
					if cfg.HSTSIncludeSubDomains {
						hsts += "; includeSubDomains"
					}
					if cfg.HSTSPreload {
						hsts += "; preload"
					}
					h.Set("Strict-Transport-Security", hsts)
				}
				h.Set("X-Permitted-Cross-Domain-Policies", "none")
				h.Set("X-Download-Options", "noopen")
				h.Set("X-DNS-Prefetch-Control", "off")
			}

			next.ServeHTTP(w, r)
		})
	}
}
