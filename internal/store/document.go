// Copyright (c) 2025-2026 Studio Pickens
// SPDX-License-Identifier: GPL-3.0-or-later

// Package store implements the flat-file persistence layer: one JSON document
// per content resource, plus the credential store. There is no cross-process
// locking; concurrent writers to the same document are last-writer-wins,
// which is an accepted limitation for single-admin use.
package store

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
)

// Document kinds. Each maps to <dir>/<kind>.json.
const (
	KindHero      = "hero"
	KindWork      = "work"
	KindProcess   = "process"
	KindStory     = "story"
	KindLocations = "locations"
	KindContact   = "contact"
	KindFAQ       = "faq"
)

// Kinds lists every content document kind the store manages.
var Kinds = []string{KindHero, KindWork, KindProcess, KindStory, KindLocations, KindContact, KindFAQ}

// Documents is the repository for content documents. Swapping the flat-file
// layout for another backend only requires replacing this type; the router
// and validator layers never touch the filesystem.
type Documents struct {
	dir string
}

// NewDocuments creates a document repository rooted at dir.
func NewDocuments(dir string) *Documents {
	return &Documents{dir: dir}
}

// Path returns the file path backing a document kind.
func (d *Documents) Path(kind string) string {
	return filepath.Join(d.dir, kind+".json")
}

// Get reads and decodes a document. Failures are classified: ErrNotFound for
// an absent file, ErrCorrupt for unparsable content, and a wrapped I/O error
// for anything else.
func (d *Documents) Get(kind string) (map[string]any, error) {
	return readJSONFile(d.Path(kind))
}

// Put validates that the document serializes, backs up the current file
// contents, and writes the new document. Serialization failure surfaces as
// ErrSerialization before any file is touched; backup failure is logged and
// ignored; the write itself goes through a temp file and rename so readers
// never observe a partial document.
func (d *Documents) Put(kind string, doc map[string]any) error {
	return writeJSONFile(d.Path(kind), doc)
}

// readJSONFile decodes target into a generic map with classified errors.
func readJSONFile(path string) (map[string]any, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("%s: %w", filepath.Base(path), ErrNotFound)
		}
		return nil, fmt.Errorf("reading %s: %w", filepath.Base(path), err)
	}

	var doc map[string]any
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("%s: %w", filepath.Base(path), ErrCorrupt)
	}
	return doc, nil
}

// writeJSONFile serializes doc and replaces path with its contents.
func writeJSONFile(path string, doc any) error {
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("%s: %w", filepath.Base(path), ErrSerialization)
	}

	backupFile(path)

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating data directory: %w", err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(path), filepath.Base(path)+".tmp-*")
	if err != nil {
		return fmt.Errorf("creating temp file for %s: %w", filepath.Base(path), err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpName)
		return fmt.Errorf("writing %s: %w", filepath.Base(path), err)
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpName)
		return fmt.Errorf("writing %s: %w", filepath.Base(path), err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		_ = os.Remove(tmpName)
		return fmt.Errorf("replacing %s: %w", filepath.Base(path), err)
	}
	return nil
}

// backupFile copies the current contents of path to path+".backup".
// Best-effort: a failed backup never blocks the write.
func backupFile(path string) {
	src, err := os.Open(path)
	if err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			slog.Warn("failed to open document for backup", "path", path, "error", err)
		}
		return
	}
	defer func() { _ = src.Close() }()

	dst, err := os.Create(path + ".backup")
	if err != nil {
		slog.Warn("failed to create backup file", "path", path, "error", err)
		return
	}
	defer func() { _ = dst.Close() }()

	if _, err := io.Copy(dst, src); err != nil {
		slog.Warn("failed to write backup file", "path", path, "error", err)
	}
}
