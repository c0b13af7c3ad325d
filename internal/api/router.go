package api

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/httprate"
)

// NewRouter creates a chi router with all API routes mounted.
// authEnabled controls whether Bearer token auth is enforced.
// generateRPM caps POST /generate requests per client IP per minute.
// sseHandler, if non-nil, is mounted at GET /events inside the auth group.
func NewRouter(h *Handler, authEnabled bool, token string, generateRPM int, sseHandler http.Handler) chi.Router {
	r := chi.NewRouter()
	r.Use(AuthMiddleware(authEnabled, token))

	// Templates CRUD and transfer.
	r.Get("/templates", h.ListTemplates)
	r.Post("/templates", h.CreateTemplate)
	r.Get("/templates/export", h.ExportTemplates)
	r.Post("/templates/import", h.ImportTemplates)
	r.Put("/templates/{id}", h.UpdateTemplate)
	r.Delete("/templates/{id}", h.DeleteTemplate)

	// Draft autosave.
	r.Get("/draft", h.GetDraft)
	r.Put("/draft", h.PutDraft)
	r.Delete("/draft", h.DeleteDraft)

	// Compose pipeline.
	r.Post("/classify", h.Classify)
	r.Post("/preview", h.Preview)
	r.Post("/preview/test", h.PreviewTest)
	r.Get("/providers", h.ListProviders)

	// Generation may reach paid remote providers, so it is rate limited.
	r.Group(func(g chi.Router) {
		if generateRPM > 0 {
			g.Use(httprate.LimitByIP(generateRPM, time.Minute))
		}
		g.Post("/generate", h.Generate)
	})

	// SSE endpoint (protected by same auth middleware).
	if sseHandler != nil {
		r.Get("/events", sseHandler.ServeHTTP)
	}

	return r
}
