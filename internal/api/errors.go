package api

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/phrazzld/scry-lite/internal/api/shared"
	"github.com/phrazzld/scry-lite/internal/domain"
	"github.com/phrazzld/scry-lite/internal/extract"
	"github.com/phrazzld/scry-lite/internal/service"
	"github.com/phrazzld/scry-lite/internal/store"
)

// MapErrorToStatusCode maps internal errors to HTTP status codes without
// exposing internal error types to clients.
func MapErrorToStatusCode(err error) int {
	switch {
	case errors.Is(err, service.ErrPackNotFound),
		errors.Is(err, store.ErrPackNotFound):
		return http.StatusNotFound

	case errors.Is(err, service.ErrInputTooShort),
		errors.Is(err, domain.ErrInvalidLanguage),
		errors.Is(err, domain.ErrInvalidID),
		errors.Is(err, domain.ErrValidation),
		errors.Is(err, store.ErrInvalidEntity),
		errors.Is(err, extract.ErrInvalidURL):
		return http.StatusBadRequest

	case errors.Is(err, extract.ErrNoReadableText):
		return http.StatusUnprocessableEntity

	case errors.Is(err, extract.ErrFetchFailed):
		return http.StatusBadGateway

	default:
		return http.StatusInternalServerError
	}
}

// GetSafeErrorMessage returns a user-facing message for err.
func GetSafeErrorMessage(err error) string {
	if err == nil {
		return "An unexpected error occurred"
	}

	switch {
	case errors.Is(err, service.ErrPackNotFound),
		errors.Is(err, store.ErrPackNotFound):
		return "Study pack not found"
	case errors.Is(err, service.ErrInputTooShort):
		return "Text is too short"
	case errors.Is(err, domain.ErrInvalidLanguage):
		return "Unsupported language"
	case errors.Is(err, domain.ErrInvalidID):
		return "Invalid ID"
	case errors.Is(err, domain.ErrValidation),
		errors.Is(err, store.ErrInvalidEntity):
		return "Invalid request data"
	case errors.Is(err, extract.ErrInvalidURL):
		return "Invalid or missing url param"
	case errors.Is(err, extract.ErrFetchFailed):
		return "Failed to fetch page"
	case errors.Is(err, extract.ErrNoReadableText):
		return "Could not extract readable text"
	default:
		return "An unexpected error occurred"
	}
}

// HandleAPIError writes the mapped status and message for err. A non-empty
// message overrides the mapped one.
func HandleAPIError(w http.ResponseWriter, r *http.Request, err error, message string) {
	status := MapErrorToStatusCode(err)
	if message == "" {
		message = GetSafeErrorMessage(err)
	}
	shared.RespondWithErrorAndLog(w, r, status, message, err)
}

// SanitizeValidationError turns a validator error into a short message that
// names the first failing field.
func SanitizeValidationError(err error) string {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		fe := verrs[0]
		return fmt.Sprintf("Invalid %s: %s", strings.ToLower(fe.Field()), getValidationTagMessage(fe.Tag()))
	}
	return "Validation error"
}

func getValidationTagMessage(tag string) string {
	switch tag {
	case "required":
		return "required field"
	case "min":
		return "too short"
	case "max":
		return "too long"
	case "oneof":
		return "invalid value"
	case "url", "http_url":
		return "invalid url"
	default:
		return "validation failed"
	}
}
