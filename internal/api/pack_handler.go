package api

import (
	"log/slog"
	"mime"
	"net/http"
	"strconv"

	"github.com/phrazzld/scry-lite/internal/api/shared"
	"github.com/phrazzld/scry-lite/internal/litepack"
	"github.com/phrazzld/scry-lite/internal/platform/logger"
	"github.com/phrazzld/scry-lite/internal/redact"
	"github.com/phrazzld/scry-lite/internal/service"
)

// PackHandler handles study pack HTTP requests.
type PackHandler struct {
	packService service.PackService
	logger      *slog.Logger
}

// NewPackHandler creates a new PackHandler.
func NewPackHandler(packService service.PackService, logger *slog.Logger) *PackHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &PackHandler{
		packService: packService,
		logger:      logger.With("component", "pack_handler"),
	}
}

// GeneratePack handles POST /api/packs.
func (h *PackHandler) GeneratePack(w http.ResponseWriter, r *http.Request) {
	var req GeneratePackRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithErrorAndLog(w, r, http.StatusBadRequest, "Invalid request format", err)
		return
	}
	if err := shared.ValidateRequest(&req); err != nil {
		shared.RespondWithErrorAndLog(w, r, http.StatusBadRequest, SanitizeValidationError(err), err)
		return
	}

	res, err := h.packService.Generate(r.Context(), service.GenerateRequest{
		Text:  req.Text,
		Lang:  litepack.Language(req.Lang),
		Title: req.Title,
		Save:  req.Save,
	})
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	h.respondWithPack(w, r, res)
}

// GenerateFromURL handles POST /api/packs/from-url.
func (h *PackHandler) GenerateFromURL(w http.ResponseWriter, r *http.Request) {
	var req PackFromURLRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithErrorAndLog(w, r, http.StatusBadRequest, "Invalid request format", err)
		return
	}
	if err := shared.ValidateRequest(&req); err != nil {
		shared.RespondWithErrorAndLog(w, r, http.StatusBadRequest, SanitizeValidationError(err), err)
		return
	}

	res, err := h.packService.FromURL(r.Context(), service.URLRequest{
		URL:  req.URL,
		Lang: litepack.Language(req.Lang),
		Save: req.Save,
	})
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	h.respondWithPack(w, r, res)
}

func (h *PackHandler) respondWithPack(w http.ResponseWriter, r *http.Request, res *service.GenerateResult) {
	status := http.StatusOK
	if res.Saved {
		status = http.StatusCreated
	}
	shared.RespondWithJSON(w, r, status, packToResponse(res.StudyPack, res.Saved))
}

// ListPacks handles GET /api/packs.
func (h *PackHandler) ListPacks(w http.ResponseWriter, r *http.Request) {
	packs, err := h.packService.List(r.Context())
	if err != nil {
		HandleAPIError(w, r, err, "Failed to list study packs")
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, PackListResponse{Packs: packs})
}

// GetPack handles GET /api/packs/{id}.
func (h *PackHandler) GetPack(w http.ResponseWriter, r *http.Request) {
	id, err := getPathUUID(r, "id")
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	sp, err := h.packService.Get(r.Context(), id)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, packToResponse(sp, true))
}

// DeletePack handles DELETE /api/packs/{id}.
func (h *PackHandler) DeletePack(w http.ResponseWriter, r *http.Request) {
	id, err := getPathUUID(r, "id")
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	if err := h.packService.Delete(r.Context(), id); err != nil {
		HandleAPIError(w, r, err, "")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// DeleteAllPacks handles DELETE /api/packs.
func (h *PackHandler) DeleteAllPacks(w http.ResponseWriter, r *http.Request) {
	n, err := h.packService.DeleteAll(r.Context())
	if err != nil {
		HandleAPIError(w, r, err, "Failed to delete study packs")
		return
	}
	logger.FromContextOrDefault(r.Context(), h.logger).Info("study packs cleared", "count", n)
	w.WriteHeader(http.StatusNoContent)
}

// GetNarration handles GET /api/packs/{id}/narration.
func (h *PackHandler) GetNarration(w http.ResponseWriter, r *http.Request) {
	id, err := getPathUUID(r, "id")
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	plan, err := h.packService.Narration(r.Context(), id)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, plan)
}

// ExportPDF handles GET /api/packs/{id}/pdf and sends the pack as a PDF
// attachment.
func (h *PackHandler) ExportPDF(w http.ResponseWriter, r *http.Request) {
	id, err := getPathUUID(r, "id")
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	doc, err := h.packService.ExportPDF(r.Context(), id)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	w.Header().Set("Content-Type", doc.ContentType)
	w.Header().Set("Content-Length", strconv.Itoa(len(doc.Data)))
	w.Header().Set("Content-Disposition", mime.FormatMediaType("attachment", map[string]string{"filename": doc.FileName}))
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(doc.Data); err != nil {
		logger.FromContextOrDefault(r.Context(), h.logger).Error("failed to write document",
			"error", err,
			"pack_id", id)
	}
}

// Extract handles GET /api/extract?url=... and always answers 200; failures
// are reported in the body.
func (h *PackHandler) Extract(w http.ResponseWriter, r *http.Request) {
	article, err := h.packService.Extract(r.Context(), r.URL.Query().Get("url"))
	if err != nil {
		logger.FromContextOrDefault(r.Context(), h.logger).Debug("extraction failed",
			"error", redact.Error(err),
			"trace_id", shared.GetTraceID(r.Context()))
		msg := GetSafeErrorMessage(err)
		if MapErrorToStatusCode(err) == http.StatusInternalServerError {
			msg = "Unexpected error"
		}
		shared.RespondWithJSON(w, r, http.StatusOK, ExtractResponse{Error: msg})
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, ExtractResponse{
		OK:    true,
		Title: article.Title,
		Text:  article.Text,
	})
}
