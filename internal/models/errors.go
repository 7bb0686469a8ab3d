package models

import (
	"errors"
	"fmt"
)

// AppError represents a custom application error
type AppError struct {
	Code    string
	Message string
	Err     error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// Predefined error constructors
func NewValidationError(message string) *AppError {
	return &AppError{
		Code:    "VALIDATION_ERROR",
		Message: message,
	}
}

func NewUnauthorizedError(message string) *AppError {
	return &AppError{
		Code:    "UNAUTHORIZED",
		Message: message,
	}
}

// NewNetworkError wraps a transport-level failure (connection refused, DNS,
// timeout). These degrade reads to empty results instead of crashing views.
func NewNetworkError(err error) *AppError {
	return &AppError{
		Code:    "NETWORK_ERROR",
		Message: "Request failed",
		Err:     err,
	}
}

// NewAPIError represents a non-2xx response from the backend.
func NewAPIError(status int, body string) *AppError {
	return &AppError{
		Code:    "API_ERROR",
		Message: fmt.Sprintf("backend returned status %d: %s", status, body),
	}
}

// NewDecodeError wraps a malformed response body.
func NewDecodeError(err error) *AppError {
	return &AppError{
		Code:    "DECODE_ERROR",
		Message: "Malformed response from backend",
		Err:     err,
	}
}

// IsUnauthorized reports whether err carries the UNAUTHORIZED code.
func IsUnauthorized(err error) bool {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Code == "UNAUTHORIZED"
	}
	return false
}
