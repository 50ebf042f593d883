// Copyright (c) 2025-2026 Studio Pickens
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/studiopickens/studio-api/internal/schema"
)

// uploadField is the multipart form field carrying the image.
const uploadField = "image"

var imageExtRe = regexp.MustCompile(`(?i)\.(jpg|jpeg|png|gif|webp)$`)

// uploadResponse echoes where the stored file can be fetched from. The path
// is web-relative; the server's directory layout never leaks.
type uploadResponse struct {
	Path         string `json:"path"`
	Filename     string `json:"filename"`
	OriginalName string `json:"originalName"`
	Size         int64  `json:"size"`
	Mimetype     string `json:"mimetype"`
	UploadedAt   string `json:"uploadedAt"`
}

// Upload accepts a multipart image, validates its metadata and stores it
// under the public uploads directory with a collision-free name.
func (h *Handler) Upload(w http.ResponseWriter, r *http.Request) error {
	r.Body = http.MaxBytesReader(w, r.Body, h.cfg.UploadMaxSize+1024)

	if err := r.ParseMultipartForm(h.cfg.UploadMaxSize); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			return NewError(http.StatusBadRequest, CodeFileTooLarge, "Uploaded file is too large")
		}
		return NewError(http.StatusBadRequest, CodeNoFile, "No file uploaded")
	}

	file, header, err := r.FormFile(uploadField)
	if err != nil {
		return NewError(http.StatusBadRequest, CodeNoFile, "No file uploaded")
	}
	defer file.Close()

	mimetype := header.Header.Get("Content-Type")
	metadata := map[string]any{
		"mimetype": mimetype,
		"size":     float64(header.Size),
		"filename": filepath.Base(header.Filename),
	}
	if _, fieldErrs := schema.Upload(h.cfg.UploadAllowedTypes, h.cfg.UploadMaxSize).Validate(metadata); len(fieldErrs) > 0 {
		// A size violation gets the same code whether the transport cap or
		// the metadata rule caught it.
		for _, fe := range fieldErrs {
			if fe.Field == "size" {
				return NewError(http.StatusBadRequest, CodeFileTooLarge, "Uploaded file is too large")
			}
		}
		return &Error{
			Status:  http.StatusBadRequest,
			Code:    CodeInvalidFile,
			Message: "Invalid file upload",
			Details: fieldErrs,
		}
	}

	uploadsDir := h.cfg.UploadsDir()
	if err := os.MkdirAll(uploadsDir, 0o755); err != nil {
		return FileError("Failed to prepare uploads directory", err)
	}

	ext := strings.ToLower(filepath.Ext(header.Filename))
	name := fmt.Sprintf("%s_%d_%s%s", uploadField, time.Now().UnixMilli(), uuid.NewString()[:8], ext)
	target := filepath.Join(uploadsDir, name)

	dst, err := os.Create(target)
	if err != nil {
		return FileError("Failed to store uploaded file", err)
	}
	defer dst.Close()

	if _, err := io.Copy(dst, file); err != nil {
		os.Remove(target)
		return FileError("Failed to store uploaded file", err)
	}

	slog.Info("image uploaded", "category", "upload", "filename", name, "size", header.Size)

	WriteData(w, uploadResponse{
		Path:         "/images/uploads/" + name,
		Filename:     name,
		OriginalName: header.Filename,
		Size:         header.Size,
		Mimetype:     mimetype,
		UploadedAt:   time.Now().UTC().Format(time.RFC3339),
	})
	return nil
}

// imageEntry describes one file found under the public images tree.
type imageEntry struct {
	Name     string    `json:"name"`
	Path     string    `json:"path"`
	Size     int64     `json:"size"`
	Modified time.Time `json:"modified"`
	Folder   string    `json:"folder"`
}

// ListImages walks the public images directory and returns every image as
// a flat list. An unreadable or missing directory degrades to an empty
// list rather than an error.
func (h *Handler) ListImages(w http.ResponseWriter, _ *http.Request) error {
	root := h.cfg.ImagesDir()
	images := make([]imageEntry, 0)

	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			// Skip what cannot be read; partial listings beat a 500.
			if d != nil && d.IsDir() {
				return fs.SkipDir
			}
			return nil
		}
		if d.IsDir() || !imageExtRe.MatchString(d.Name()) {
			return nil
		}

		info, err := d.Info()
		if err != nil {
			return nil
		}

		rel, err := filepath.Rel(root, path)
		if err != nil {
			return nil
		}
		rel = filepath.ToSlash(rel)

		folder := "root"
		if dir := filepath.ToSlash(filepath.Dir(rel)); dir != "." {
			folder = dir
		}

		images = append(images, imageEntry{
			Name:     d.Name(),
			Path:     "/images/" + rel,
			Size:     info.Size(),
			Modified: info.ModTime(),
			Folder:   folder,
		})
		return nil
	})
	if err != nil {
		slog.Warn("image listing incomplete", "category", "upload", "error", err)
	}

	WriteData(w, images)
	return nil
}
