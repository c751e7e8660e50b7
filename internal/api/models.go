package api

import (
	"time"

	"github.com/google/uuid"
	"github.com/phrazzld/scry-lite/internal/domain"
	"github.com/phrazzld/scry-lite/internal/litepack"
)

// GeneratePackRequest is the body of POST /api/packs.
type GeneratePackRequest struct {
	Text  string `json:"text"  validate:"required"`
	Lang  string `json:"lang"  validate:"omitempty,max=8"`
	Title string `json:"title" validate:"omitempty,max=1000"`
	Save  bool   `json:"save"`
}

// PackFromURLRequest is the body of POST /api/packs/from-url.
type PackFromURLRequest struct {
	URL  string `json:"url"  validate:"required,max=2048"`
	Lang string `json:"lang" validate:"omitempty,max=8"`
	Save bool   `json:"save"`
}

// PackResponse is a generated pack. ID and CreatedAt are only set once the
// pack has been stored.
type PackResponse struct {
	ID        *uuid.UUID         `json:"id,omitempty"`
	Title     string             `json:"title"`
	Lang      litepack.Language  `json:"lang"`
	Saved     bool               `json:"saved"`
	CreatedAt *time.Time         `json:"created_at,omitempty"`
	Pack      *litepack.LitePack `json:"pack"`
}

// PackListResponse wraps the stored pack summaries.
type PackListResponse struct {
	Packs []domain.PackSummary `json:"packs"`
}

// ExtractResponse is the body of GET /api/extract. Failures are reported
// with OK false and a message rather than an error status.
type ExtractResponse struct {
	OK    bool   `json:"ok"`
	Title string `json:"title,omitempty"`
	Text  string `json:"text,omitempty"`
	Error string `json:"error,omitempty"`
}

func packToResponse(sp *domain.StudyPack, saved bool) PackResponse {
	resp := PackResponse{
		Title: sp.Title,
		Lang:  sp.Lang,
		Saved: saved,
		Pack:  sp.Pack,
	}
	if saved {
		id, created := sp.ID, sp.CreatedAt
		resp.ID = &id
		resp.CreatedAt = &created
	}
	return resp
}
