// Copyright (c) 2025-2026 Studio Pickens
// SPDX-License-Identifier: GPL-3.0-or-later

// Package config loads the application configuration from environment
// variables.
package config

import (
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"

	"github.com/caarlos0/env/v11"
)

// DevJWTSecret is the development-only fallback signing secret. Production
// deployments must set STUDIO_JWT_SECRET; Load refuses to start without it.
const DevJWTSecret = "studio-pickens-secret-key-change-in-production"

// Config holds the application configuration loaded from environment variables.
type Config struct {
	ServerHost string `env:"STUDIO_SERVER_HOST" envDefault:"localhost"`
	ServerPort int    `env:"STUDIO_SERVER_PORT" envDefault:"3001"`
	Env        string `env:"STUDIO_ENV" envDefault:"development"`
	LogLevel   string `env:"STUDIO_LOG_LEVEL" envDefault:"info"`

	// Storage paths. DataDir holds the JSON content documents and the
	// credential store; PublicDir is the web root for served images.
	DataDir   string `env:"STUDIO_DATA_DIR" envDefault:"./data"`
	PublicDir string `env:"STUDIO_PUBLIC_DIR" envDefault:"./public"`

	// Token signing secret. Defaults to a development-only constant.
	JWTSecret string `env:"STUDIO_JWT_SECRET"`

	// Bootstrap admin credentials, used only when the credential store is
	// created for the first time.
	AdminUsername string `env:"STUDIO_ADMIN_USERNAME" envDefault:"admin"`
	AdminPassword string `env:"STUDIO_ADMIN_PASSWORD" envDefault:"admin123"`
	AdminEmail    string `env:"STUDIO_ADMIN_EMAIL" envDefault:"admin@studiopickens.com"`

	// CORS allow-list.
	CORSOrigins []string `env:"STUDIO_CORS_ORIGINS" envSeparator:"," envDefault:"http://localhost:3000,http://127.0.0.1:3000"`

	// Upload constraints.
	UploadMaxSize      int64    `env:"STUDIO_UPLOAD_MAX_SIZE" envDefault:"10485760"`
	UploadAllowedTypes []string `env:"STUDIO_UPLOAD_ALLOWED_TYPES" envSeparator:"," envDefault:"image/jpeg,image/jpg,image/png,image/gif,image/webp"`

	// Rate limits, expressed as max requests per window. Auth endpoints get
	// the stricter budget.
	AuthRateMax    int `env:"STUDIO_AUTH_RATE_MAX" envDefault:"5"`
	AuthRateWindow int `env:"STUDIO_AUTH_RATE_WINDOW" envDefault:"900"`
	APIRateMax     int `env:"STUDIO_API_RATE_MAX" envDefault:"100"`
	APIRateWindow  int `env:"STUDIO_API_RATE_WINDOW" envDefault:"900"`
}

// IsDevelopment returns true if the application is running in development mode.
func (c Config) IsDevelopment() bool {
	return c.Env == "development"
}

// IsProduction returns true if the application is running in production mode.
func (c Config) IsProduction() bool {
	return c.Env == "production"
}

// ServerAddr returns the full server address in host:port format.
func (c Config) ServerAddr() string {
	return fmt.Sprintf("%s:%d", c.ServerHost, c.ServerPort)
}

// UsersFile returns the path of the credential store file.
func (c Config) UsersFile() string {
	return filepath.Join(c.DataDir, "users.json")
}

// ImagesDir returns the root of the public image tree.
func (c Config) ImagesDir() string {
	return filepath.Join(c.PublicDir, "images")
}

// UploadsDir returns the directory uploaded images are stored in.
func (c Config) UploadsDir() string {
	return filepath.Join(c.ImagesDir(), "uploads")
}

// Load parses environment variables and returns a Config struct.
func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}

	if cfg.JWTSecret == "" {
		if cfg.IsProduction() {
			return nil, fmt.Errorf("STUDIO_JWT_SECRET is required in production; " +
				"generate one with: openssl rand -base64 32")
		}
		cfg.JWTSecret = DevJWTSecret
		slog.Warn("STUDIO_JWT_SECRET not set, using the built-in development secret; " +
			"do not deploy this configuration")
	} else if cfg.IsProduction() && cfg.JWTSecret == DevJWTSecret {
		return nil, fmt.Errorf("STUDIO_JWT_SECRET is the known development value and must not be used in production")
	}

	for i, origin := range cfg.CORSOrigins {
		cfg.CORSOrigins[i] = strings.TrimSpace(origin)
	}

	if cfg.AuthRateWindow <= 0 || cfg.APIRateWindow <= 0 {
		return nil, fmt.Errorf("rate limit windows must be positive")
	}

	return cfg, nil
}
