package main

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/phrazzld/scry-lite/internal/api"
	apiMiddleware "github.com/phrazzld/scry-lite/internal/api/middleware"
)

// setupRouter creates the router with all routes and middleware.
func (app *application) setupRouter() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(apiMiddleware.Trace(app.logger))

	packHandler := api.NewPackHandler(app.packService, app.logger)

	r.Route("/api", func(r chi.Router) {
		r.Route("/packs", func(r chi.Router) {
			r.Post("/", packHandler.GeneratePack)
			r.Post("/from-url", packHandler.GenerateFromURL)
			r.Get("/", packHandler.ListPacks)
			r.Delete("/", packHandler.DeleteAllPacks)
			r.Get("/{id}", packHandler.GetPack)
			r.Delete("/{id}", packHandler.DeletePack)
			r.Get("/{id}/narration", packHandler.GetNarration)
			r.Get("/{id}/pdf", packHandler.ExportPDF)
		})
		r.Get("/extract", packHandler.Extract)

		if app.webhook != nil {
			r.Handle("/telegram", app.webhook)
		}
	})

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		if _, err := w.Write([]byte("OK")); err != nil {
			app.logger.Error("failed to write health check response", "error", err)
		}
	})

	return r
}
