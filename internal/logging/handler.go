// Copyright (c) 2025-2026 Studio Pickens
// SPDX-License-Identifier: GPL-3.0-or-later

// Package logging provides a custom slog handler that keeps an audit trail.
// It forwards logs at WARN level and above to an append-only JSONL file so
// security-relevant events survive log rotation of the main output.
package logging

import (
	"context"
	"encoding/json"
	"log/slog"
	"os"
	"strings"
	"sync"
	"time"
)

// Audit event categories.
const (
	CategoryAuth    = "auth"
	CategoryContent = "content"
	CategoryUpload  = "upload"
	CategoryConfig  = "config"
	CategorySystem  = "system"
)

// AuditHandler is a slog.Handler that wraps another handler and also appends
// WARN and ERROR level records to an audit file, one JSON object per line.
type AuditHandler struct {
	inner slog.Handler
	level slog.Level

	// mu and file are shared across WithAttrs/WithGroup clones.
	mu   *sync.Mutex
	file *os.File
}

type auditEntry struct {
	Time     time.Time      `json:"time"`
	Level    string         `json:"level"`
	Category string         `json:"category"`
	Message  string         `json:"message"`
	Attrs    map[string]any `json:"attrs,omitempty"`
}

// NewAuditHandler creates an AuditHandler that wraps the given handler.
// Records at WARN level and above are also appended to the file at path.
func NewAuditHandler(inner slog.Handler, path string) (*AuditHandler, error) {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, err
	}
	return &AuditHandler{
		inner: inner,
		level: slog.LevelWarn,
		mu:    &sync.Mutex{},
		file:  f,
	}, nil
}

// Close closes the underlying audit file.
func (h *AuditHandler) Close() error {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.file.Close()
}

// Enabled implements slog.Handler.
func (h *AuditHandler) Enabled(ctx context.Context, level slog.Level) bool {
	return h.inner.Enabled(ctx, level)
}

// Handle implements slog.Handler.
func (h *AuditHandler) Handle(ctx context.Context, r slog.Record) error {
	if err := h.inner.Handle(ctx, r); err != nil {
		return err
	}
	if r.Level >= h.level {
		h.writeAudit(r)
	}
	return nil
}

// WithAttrs implements slog.Handler.
func (h *AuditHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &AuditHandler{
		inner: h.inner.WithAttrs(attrs),
		level: h.level,
		mu:    h.mu,
		file:  h.file,
	}
}

// WithGroup implements slog.Handler.
func (h *AuditHandler) WithGroup(name string) slog.Handler {
	return &AuditHandler{
		inner: h.inner.WithGroup(name),
		level: h.level,
		mu:    h.mu,
		file:  h.file,
	}
}

func (h *AuditHandler) writeAudit(r slog.Record) {
	entry := auditEntry{
		Time:     r.Time,
		Level:    levelName(r.Level),
		Category: extractCategory(r),
		Message:  r.Message,
	}
	if r.NumAttrs() > 0 {
		entry.Attrs = make(map[string]any, r.NumAttrs())
		r.Attrs(func(a slog.Attr) bool {
			if a.Key != "category" {
				entry.Attrs[a.Key] = a.Value.Any()
			}
			return true
		})
	}

	line, err := json.Marshal(entry)
	if err != nil {
		return
	}
	line = append(line, '\n')

	h.mu.Lock()
	defer h.mu.Unlock()
	_, _ = h.file.Write(line)
}

func levelName(level slog.Level) string {
	switch {
	case level >= slog.LevelError:
		return "error"
	case level >= slog.LevelWarn:
		return "warning"
	default:
		return "info"
	}
}

// extractCategory looks for a "category" attribute and falls back to
// inferring one from the message.
func extractCategory(r slog.Record) string {
	var category string
	r.Attrs(func(a slog.Attr) bool {
		if a.Key == "category" {
			category = a.Value.String()
			return false
		}
		return true
	})
	if category != "" {
		return category
	}

	msg := strings.ToLower(r.Message)
	switch {
	case strings.Contains(msg, "auth") || strings.Contains(msg, "login") || strings.Contains(msg, "token") || strings.Contains(msg, "password"):
		return CategoryAuth
	case strings.Contains(msg, "document") || strings.Contains(msg, "content"):
		return CategoryContent
	case strings.Contains(msg, "upload") || strings.Contains(msg, "image") || strings.Contains(msg, "file"):
		return CategoryUpload
	case strings.Contains(msg, "config") || strings.Contains(msg, "setting"):
		return CategoryConfig
	default:
		return CategorySystem
	}
}
