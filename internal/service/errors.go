package service

import (
	"errors"
	"fmt"

	"github.com/phrazzld/scry-lite/internal/store"
)

// Common service errors - sentinel errors used across service implementations.
// Callers use errors.Is; the API layer maps them to HTTP status codes.
var (
	// ErrInputTooShort indicates the text is below the configured minimum length.
	// API layer should map this to HTTP 400 Bad Request.
	ErrInputTooShort = errors.New("input text is too short")

	// ErrPackNotFound indicates that the study pack does not exist.
	// API layer should map this to HTTP 404 Not Found.
	ErrPackNotFound = errors.New("study pack not found")
)

// PackServiceError wraps errors from the pack service with context.
type PackServiceError struct {
	// Operation is the operation that failed (e.g., "save_pack", "list_packs")
	Operation string
	// Message is a human-readable description of the error
	Message string
	// Err is the underlying error that caused the failure
	Err error
}

// Error implements the error interface for PackServiceError.
func (e *PackServiceError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("pack service %s failed: %s: %v", e.Operation, e.Message, e.Err)
	}
	return fmt.Sprintf("pack service %s failed: %s", e.Operation, e.Message)
}

// Unwrap returns the wrapped error to support errors.Is/errors.As.
func (e *PackServiceError) Unwrap() error {
	return e.Err
}

// NewPackServiceError creates a new PackServiceError.
// It returns known sentinel errors directly without wrapping.
func NewPackServiceError(operation, message string, err error) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, ErrPackNotFound) || errors.Is(err, store.ErrPackNotFound) {
		return ErrPackNotFound
	}
	if errors.Is(err, ErrInputTooShort) {
		return err
	}

	return &PackServiceError{
		Operation: operation,
		Message:   message,
		Err:       err,
	}
}
