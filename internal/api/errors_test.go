package api

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/phrazzld/scry-lite/internal/api/shared"
	"github.com/phrazzld/scry-lite/internal/domain"
	"github.com/phrazzld/scry-lite/internal/extract"
	"github.com/phrazzld/scry-lite/internal/service"
	"github.com/phrazzld/scry-lite/internal/store"
	"github.com/stretchr/testify/assert"
)

func TestMapErrorToStatusCode(t *testing.T) {
	tests := []struct {
		name           string
		err            error
		expectedStatus int
	}{
		{"nil error", nil, http.StatusInternalServerError},
		{"pack not found", service.ErrPackNotFound, http.StatusNotFound},
		{"store pack not found", store.ErrPackNotFound, http.StatusNotFound},
		{"wrapped not found", fmt.Errorf("get: %w", service.ErrPackNotFound), http.StatusNotFound},
		{"input too short", fmt.Errorf("%w: got 3", service.ErrInputTooShort), http.StatusBadRequest},
		{"invalid language", domain.ErrInvalidLanguage, http.StatusBadRequest},
		{"invalid id", domain.ErrInvalidID, http.StatusBadRequest},
		{"invalid entity", store.ErrInvalidEntity, http.StatusBadRequest},
		{"domain validation", domain.ErrEmptyPackTitle, http.StatusBadRequest},
		{"wrapped domain validation", &service.PackServiceError{Operation: "generate_pack", Err: domain.ErrNilPackContent}, http.StatusBadRequest},
		{"invalid url", extract.ErrInvalidURL, http.StatusBadRequest},
		{"no readable text", extract.ErrNoReadableText, http.StatusUnprocessableEntity},
		{"fetch failed", extract.ErrFetchFailed, http.StatusBadGateway},
		{"service error", &service.PackServiceError{Operation: "list_packs", Err: errors.New("db")}, http.StatusInternalServerError},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expectedStatus, MapErrorToStatusCode(tc.err))
		})
	}
}

func TestGetSafeErrorMessage(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{"nil error", nil, "An unexpected error occurred"},
		{"pack not found", service.ErrPackNotFound, "Study pack not found"},
		{"input too short", service.ErrInputTooShort, "Text is too short"},
		{"invalid language", fmt.Errorf("%w: \"de\"", domain.ErrInvalidLanguage), "Unsupported language"},
		{"fetch failed", extract.ErrFetchFailed, "Failed to fetch page"},
		{"domain validation", domain.ErrEmptyPackInput, "Invalid request data"},
		{"internal details hidden", errors.New("pq: password authentication failed for user scry"), "An unexpected error occurred"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, GetSafeErrorMessage(tc.err))
		})
	}
}

func TestSanitizeValidationError(t *testing.T) {
	err := shared.ValidateRequest(&PackFromURLRequest{})
	assert.Equal(t, "Invalid url: required field", SanitizeValidationError(err))

	err = shared.ValidateRequest(&GeneratePackRequest{Text: "x", Lang: "english-language"})
	assert.Equal(t, "Invalid lang: too long", SanitizeValidationError(err))

	assert.Equal(t, "Validation error", SanitizeValidationError(errors.New("other")))
}
