// Copyright (c) 2025-2026 Studio Pickens
// SPDX-License-Identifier: GPL-3.0-or-later

// Command studio-api serves the Studio Pickens content management API:
// JSON content documents, admin authentication and image uploads.
package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/studiopickens/studio-api/internal/auth"
	"github.com/studiopickens/studio-api/internal/config"
	"github.com/studiopickens/studio-api/internal/handler"
	"github.com/studiopickens/studio-api/internal/logging"
	"github.com/studiopickens/studio-api/internal/store"
)

func main() {
	if err := run(); err != nil {
		slog.Error("fatal", "error", err)
		os.Exit(1)
	}
}

func run() error {
	// Load .env if present (development)
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	logLevel := slog.LevelInfo
	switch cfg.LogLevel {
	case "debug":
		logLevel = slog.LevelDebug
	case "warn":
		logLevel = slog.LevelWarn
	case "error":
		logLevel = slog.LevelError
	}

	textHandler := slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: logLevel,
	})
	slog.SetDefault(slog.New(textHandler))

	// Ensure the data and public image directories exist
	for _, dir := range []string{cfg.DataDir, cfg.ImagesDir(), cfg.UploadsDir()} {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("creating directory %s: %w", dir, err)
		}
	}

	// Upgrade logger to also keep WARN and ERROR records in the audit file
	auditHandler, err := logging.NewAuditHandler(textHandler, filepath.Join(cfg.DataDir, "audit.log"))
	if err != nil {
		return fmt.Errorf("opening audit log: %w", err)
	}
	defer func() {
		if err := auditHandler.Close(); err != nil {
			slog.Error("error closing audit log", "error", err)
		}
	}()
	slog.SetDefault(slog.New(auditHandler))
	slog.Info("audit log enabled", "min_level", "warn")

	users := store.NewUsers(cfg.UsersFile())
	if err := users.BootstrapAdmin(cfg.AdminUsername, cfg.AdminPassword, cfg.AdminEmail); err != nil {
		return fmt.Errorf("bootstrapping admin user: %w", err)
	}

	docs := store.NewDocuments(cfg.DataDir)
	tokens := auth.NewTokenService(cfg.JWTSecret)

	h := handler.New(cfg, docs, users, tokens)

	srv := &http.Server{
		Addr:              cfg.ServerAddr(),
		Handler:           h.Routes(),
		ReadTimeout:       15 * time.Second,
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      60 * time.Second, // Longer to allow for large uploads and slow connections
		IdleTimeout:       60 * time.Second,
		MaxHeaderBytes:    1 << 20,
	}

	go func() {
		slog.Info("starting server", "addr", cfg.ServerAddr(), "env", cfg.Env)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("server error", "error", err)
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	slog.Info("shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		return fmt.Errorf("server shutdown: %w", err)
	}

	slog.Info("server stopped")
	return nil
}
