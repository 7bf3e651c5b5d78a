// Package apperror provides structured error handling following RFC 7807 Problem Details.
// Every failure surfaced by the client core is an AppError so callers can branch on Code.
package apperror

import (
	"errors"
	"fmt"
	"net/http"
)

// Error codes
const (
	// Infrastructure errors
	CodeInternal    = "INTERNAL_ERROR"
	CodeRemoteRead  = "REMOTE_READ_ERROR"
	CodeRemoteWrite = "REMOTE_WRITE_ERROR"

	// Validation errors (400)
	CodeValidation = "VALIDATION_ERROR"

	// Data integrity
	CodeCyclicHierarchy = "CYCLIC_HIERARCHY"

	// Not found (404)
	CodeNotFound = "NOT_FOUND"
)

// AppError is the standard error type for the client core and the mock backend.
type AppError struct {
	// Code is a machine-readable error identifier
	Code string `json:"code"`

	// Message is a human-readable error description
	Message string `json:"message"`

	// Details contains additional context (entity, id, remote status, ...)
	Details map[string]any `json:"details,omitempty"`

	// HTTPStatus is the suggested HTTP status code
	HTTPStatus int `json:"-"`

	// Err is the underlying error (not exposed in JSON)
	Err error `json:"-"`
}

// Error implements error interface
func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s (caused by: %v)", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap returns the underlying error for errors.Is/As support
func (e *AppError) Unwrap() error {
	return e.Err
}

// WithDetail adds a key-value pair to error details
func (e *AppError) WithDetail(key string, value any) *AppError {
	if e.Details == nil {
		e.Details = make(map[string]any)
	}
	e.Details[key] = value
	return e
}

// WithCause sets the underlying error
func (e *AppError) WithCause(err error) *AppError {
	e.Err = err
	return e
}

// --- Factory functions ---

// NewValidation creates a validation error (400)
func NewValidation(message string) *AppError {
	return &AppError{
		Code:       CodeValidation,
		Message:    message,
		HTTPStatus: http.StatusBadRequest,
	}
}

// NewNotFound creates a not found error (404)
func NewNotFound(entity string, id any) *AppError {
	return &AppError{
		Code:       CodeNotFound,
		Message:    fmt.Sprintf("%s not found", entity),
		HTTPStatus: http.StatusNotFound,
		Details:    map[string]any{"entity": entity, "id": id},
	}
}

// NewRemoteRead creates an error for a failed fetch or an undecodable response.
// status is the remote HTTP status, 0 when the request never completed.
func NewRemoteRead(path string, status int) *AppError {
	return &AppError{
		Code:       CodeRemoteRead,
		Message:    fmt.Sprintf("read %s failed", path),
		HTTPStatus: http.StatusBadGateway,
		Details:    map[string]any{"path": path, "status": status},
	}
}

// NewRemoteWrite creates an error for a rejected create, update or delete.
func NewRemoteWrite(method, path string, status int) *AppError {
	return &AppError{
		Code:       CodeRemoteWrite,
		Message:    fmt.Sprintf("%s %s failed", method, path),
		HTTPStatus: http.StatusBadGateway,
		Details:    map[string]any{"method": method, "path": path, "status": status},
	}
}

// NewCyclicHierarchy is returned when walking parent links revisits a node.
func NewCyclicHierarchy(entity string, id any) *AppError {
	return &AppError{
		Code:       CodeCyclicHierarchy,
		Message:    fmt.Sprintf("%s hierarchy contains a cycle", entity),
		HTTPStatus: http.StatusUnprocessableEntity,
		Details:    map[string]any{"entity": entity, "id": id},
	}
}

// NewInternal creates an internal error (hides details from clients)
func NewInternal(err error) *AppError {
	return &AppError{
		Code:       CodeInternal,
		Message:    "Internal server error",
		HTTPStatus: http.StatusInternalServerError,
		Err:        err,
	}
}

// --- Helper functions ---

// IsAppError checks if error is AppError
func IsAppError(err error) bool {
	var appErr *AppError
	return errors.As(err, &appErr)
}

// AsAppError extracts AppError from error chain
func AsAppError(err error) (*AppError, bool) {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr, true
	}
	return nil, false
}

// GetHTTPStatus returns appropriate HTTP status for any error
func GetHTTPStatus(err error) int {
	if appErr, ok := AsAppError(err); ok {
		return appErr.HTTPStatus
	}
	return http.StatusInternalServerError
}

func hasCode(err error, code string) bool {
	if appErr, ok := AsAppError(err); ok {
		return appErr.Code == code
	}
	return false
}

// IsNotFound checks if error is CodeNotFound
func IsNotFound(err error) bool { return hasCode(err, CodeNotFound) }

// IsRemoteRead checks if error is CodeRemoteRead
func IsRemoteRead(err error) bool { return hasCode(err, CodeRemoteRead) }

// IsRemoteWrite checks if error is CodeRemoteWrite
func IsRemoteWrite(err error) bool { return hasCode(err, CodeRemoteWrite) }

// IsCyclicHierarchy checks if error is CodeCyclicHierarchy
func IsCyclicHierarchy(err error) bool { return hasCode(err, CodeCyclicHierarchy) }

// IsValidation checks if error is CodeValidation
func IsValidation(err error) bool { return hasCode(err, CodeValidation) }
