// Copyright (c) 2025-2026 Studio Pickens
// SPDX-License-Identifier: GPL-3.0-or-later

package store

import "errors"

// Read and write failures are classified so handlers can map them to
// distinct HTTP errors. Callers never see a raw parse error.
var (
	// ErrNotFound means the document file does not exist.
	ErrNotFound = errors.New("document not found")

	// ErrCorrupt means the file exists but does not contain valid JSON.
	ErrCorrupt = errors.New("document contains invalid JSON")

	// ErrSerialization means the document could not be encoded before any
	// I/O was attempted.
	ErrSerialization = errors.New("document cannot be serialized")
)
