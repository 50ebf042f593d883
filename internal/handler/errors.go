// Copyright (c) 2025-2026 Studio Pickens
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"fmt"
	"net/http"

	"github.com/studiopickens/studio-api/internal/schema"
)

// Error codes returned in the response envelope. Clients branch on these,
// so they are part of the API contract.
const (
	CodeNoToken            = "NO_TOKEN"
	CodeValidation         = "VALIDATION_ERROR"
	CodeNotFound           = "NOT_FOUND"
	CodeInvalidID          = "INVALID_ID"
	CodeMissingCredentials = "MISSING_CREDENTIALS"
	CodeInvalidCredentials = "INVALID_CREDENTIALS"
	CodeMissingPasswords   = "MISSING_PASSWORDS"
	CodePasswordTooShort   = "PASSWORD_TOO_SHORT"
	CodeInvalidCurrent     = "INVALID_CURRENT_PASSWORD"
	CodeUserNotFound       = "USER_NOT_FOUND"
	CodeNoFile             = "NO_FILE"
	CodeInvalidFile        = "INVALID_FILE"
	CodeFileTooLarge       = "FILE_TOO_LARGE"
	CodeRouteNotFound      = "ROUTE_NOT_FOUND"
	CodeDatabase           = "DATABASE_ERROR"
	CodeFile               = "FILE_ERROR"
	CodeInternal           = "INTERNAL_ERROR"
)

// Error is an API failure carrying the HTTP status and envelope code.
// Handlers return it from their error path and Wrap translates it.
type Error struct {
	Status  int
	Code    string
	Message string
	Details []schema.FieldError
	err     error
}

func (e *Error) Error() string {
	if e.err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.err)
	}
	return e.Message
}

func (e *Error) Unwrap() error { return e.err }

// NewError builds an API error with an explicit status and code.
func NewError(status int, code, message string) *Error {
	return &Error{Status: status, Code: code, Message: message}
}

// ValidationError reports schema violations with field-level details.
func ValidationError(details []schema.FieldError) *Error {
	return &Error{
		Status:  http.StatusBadRequest,
		Code:    CodeValidation,
		Message: "Validation failed",
		Details: details,
	}
}

// NotFoundError reports a missing document or collection item.
func NotFoundError(message string) *Error {
	return &Error{Status: http.StatusNotFound, Code: CodeNotFound, Message: message}
}

// StorageError wraps a document store failure as a 500.
func StorageError(message string, err error) *Error {
	return &Error{
		Status:  http.StatusInternalServerError,
		Code:    CodeDatabase,
		Message: message,
		err:     err,
	}
}

// FileError wraps a filesystem failure outside the document store.
func FileError(message string, err error) *Error {
	return &Error{
		Status:  http.StatusInternalServerError,
		Code:    CodeFile,
		Message: message,
		err:     err,
	}
}
