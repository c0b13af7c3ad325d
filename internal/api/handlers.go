package api

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/starford/ansuz/internal/apperr"
	"github.com/starford/ansuz/internal/classify"
	"github.com/starford/ansuz/internal/compose"
	"github.com/starford/ansuz/internal/draft"
	"github.com/starford/ansuz/internal/models"
	"github.com/starford/ansuz/internal/provider"
	"github.com/starford/ansuz/internal/sse"
	"github.com/starford/ansuz/internal/templatestore"
)

// Handler holds API route handlers.
type Handler struct {
	templates       *templatestore.Store
	drafts          *draft.Store
	gen             *compose.Generator
	registry        *provider.Registry
	defaultProvider string
	events          *sse.Broker
}

// NewHandler creates a new Handler. events may be nil when SSE is disabled.
func NewHandler(templates *templatestore.Store, drafts *draft.Store, gen *compose.Generator, registry *provider.Registry, defaultProvider string, events *sse.Broker) *Handler {
	return &Handler{
		templates:       templates,
		drafts:          drafts,
		gen:             gen,
		registry:        registry,
		defaultProvider: defaultProvider,
		events:          events,
	}
}

func (h *Handler) publish(kind, id string) {
	if h.events != nil {
		h.events.PublishTemplateEvent(kind, id)
	}
}

// ListTemplates handles GET /api/templates.
//
//	@Summary		List templates with optional substring search
//	@Tags			templates
//	@Produce		json
//	@Param			q	query		string	false	"Search query over title, tags, and body"
//	@Success		200	{object}	TemplateListResponse
//	@Security		BearerAuth
//	@Router			/templates [get]
func (h *Handler) ListTemplates(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query().Get("q")
	writeJSON(w, http.StatusOK, TemplateListResponse{Templates: h.templates.Search(q)})
}

// CreateTemplate handles POST /api/templates.
//
//	@Summary		Create a blank starter template
//	@Tags			templates
//	@Produce		json
//	@Success		201	{object}	models.Template
//	@Security		BearerAuth
//	@Router			/templates [post]
func (h *Handler) CreateTemplate(w http.ResponseWriter, r *http.Request) {
	t := h.templates.Create(r.Context())
	h.publish("created", t.ID)
	writeJSON(w, http.StatusCreated, t)
}

// UpdateTemplate handles PUT /api/templates/{id}.
//
// An unknown id is a silent no-op, matching the store semantics.
//
//	@Summary		Update template fields
//	@Tags			templates
//	@Accept			json
//	@Param			id		path	string					true	"Template id"
//	@Param			body	body	UpdateTemplateRequest	true	"Fields to update"
//	@Success		204		"Updated"
//	@Failure		400		{object}	errResponse
//	@Security		BearerAuth
//	@Router			/templates/{id} [put]
func (h *Handler) UpdateTemplate(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, 1<<20)
	id := chi.URLParam(r, "id")

	var req UpdateTemplateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody("invalid JSON body"))
		return
	}

	h.templates.Update(r.Context(), id, templatestore.Patch{
		Title:   req.Title,
		Body:    req.Body,
		TagsCSV: req.Tags,
	})
	h.publish("updated", id)
	w.WriteHeader(http.StatusNoContent)
}

// DeleteTemplate handles DELETE /api/templates/{id}.
//
//	@Summary		Delete a template
//	@Tags			templates
//	@Param			id	path	string	true	"Template id"
//	@Success		204	"Deleted"
//	@Security		BearerAuth
//	@Router			/templates/{id} [delete]
func (h *Handler) DeleteTemplate(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	h.templates.Delete(r.Context(), id)
	h.publish("deleted", id)
	w.WriteHeader(http.StatusNoContent)
}

// ExportTemplates handles GET /api/templates/export.
//
//	@Summary		Export all templates as a portable JSON payload
//	@Tags			templates
//	@Produce		json
//	@Success		200	{object}	TemplateListResponse
//	@Security		BearerAuth
//	@Router			/templates/export [get]
func (h *Handler) ExportTemplates(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Disposition", `attachment; filename="templates-export.json"`)
	writeJSON(w, http.StatusOK, h.templates.Export())
}

// ImportTemplates handles POST /api/templates/import.
//
//	@Summary		Merge an exported payload into the template list
//	@Tags			templates
//	@Accept			json
//	@Produce		json
//	@Success		200	{object}	TemplateListResponse
//	@Failure		400	{object}	errResponse
//	@Security		BearerAuth
//	@Router			/templates/import [post]
func (h *Handler) ImportTemplates(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, 10<<20)
	data, err := io.ReadAll(r.Body)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody("failed to read body"))
		return
	}

	incoming, err := templatestore.DecodeExport(data)
	if err != nil {
		if errors.Is(err, apperr.ErrInvalidImport) {
			writeJSON(w, http.StatusBadRequest, errorBody("invalid import payload"))
		} else {
			writeJSON(w, http.StatusBadRequest, errorBody("invalid JSON body"))
		}
		return
	}

	merged := h.templates.ImportMerge(r.Context(), incoming)
	for _, t := range merged {
		h.publish("imported", t.ID)
	}
	writeJSON(w, http.StatusOK, TemplateListResponse{Templates: h.templates.All()})
}

// GetDraft handles GET /api/draft.
//
//	@Summary		Load the autosaved draft
//	@Tags			draft
//	@Produce		json
//	@Success		200	{object}	models.Draft
//	@Security		BearerAuth
//	@Router			/draft [get]
func (h *Handler) GetDraft(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.drafts.Load(r.Context()))
}

// PutDraft handles PUT /api/draft.
//
//	@Summary		Save the working draft
//	@Tags			draft
//	@Accept			json
//	@Success		204	"Saved"
//	@Failure		400	{object}	errResponse
//	@Security		BearerAuth
//	@Router			/draft [put]
func (h *Handler) PutDraft(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, 1<<20)
	var d models.Draft
	if err := json.NewDecoder(r.Body).Decode(&d); err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody("invalid JSON body"))
		return
	}
	if err := h.drafts.Save(r.Context(), d); err != nil {
		slog.Error("save draft failed", slog.String("error", err.Error()))
		writeJSON(w, http.StatusInternalServerError, errorBody("internal error"))
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// DeleteDraft handles DELETE /api/draft.
//
//	@Summary		Discard the autosaved draft
//	@Tags			draft
//	@Success		204	"Cleared"
//	@Security		BearerAuth
//	@Router			/draft [delete]
func (h *Handler) DeleteDraft(w http.ResponseWriter, r *http.Request) {
	if err := h.drafts.Clear(r.Context()); err != nil {
		slog.Error("clear draft failed", slog.String("error", err.Error()))
		writeJSON(w, http.StatusInternalServerError, errorBody("internal error"))
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// Classify handles POST /api/classify.
//
//	@Summary		Classify an issue summary into a category
//	@Tags			compose
//	@Accept			json
//	@Produce		json
//	@Success		200	{object}	ClassifyResponse
//	@Failure		400	{object}	errResponse
//	@Security		BearerAuth
//	@Router			/classify [post]
func (h *Handler) Classify(w http.ResponseWriter, r *http.Request) {
	var req ClassifyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody("invalid JSON body"))
		return
	}
	writeJSON(w, http.StatusOK, ClassifyResponse{IssueType: classify.Classify(req.IssueSummary)})
}

// Preview handles POST /api/preview.
//
//	@Summary		Render a template body with context values and a tone closing
//	@Tags			compose
//	@Accept			json
//	@Produce		json
//	@Success		200	{object}	PreviewResponse
//	@Failure		400	{object}	errResponse
//	@Security		BearerAuth
//	@Router			/preview [post]
func (h *Handler) Preview(w http.ResponseWriter, r *http.Request) {
	var req PreviewRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody("invalid JSON body"))
		return
	}
	if req.Body == "" {
		writeJSON(w, http.StatusBadRequest, errorBody("body is required"))
		return
	}
	preview := h.gen.Preview(req.Body, req.Context, models.Tone(req.Tone))
	writeJSON(w, http.StatusOK, PreviewResponse{Preview: preview})
}

// PreviewTest handles POST /api/preview/test.
//
//	@Summary		Render a template body with simulated sample values
//	@Tags			compose
//	@Accept			json
//	@Produce		json
//	@Success		200	{object}	PreviewResponse
//	@Failure		400	{object}	errResponse
//	@Security		BearerAuth
//	@Router			/preview/test [post]
func (h *Handler) PreviewTest(w http.ResponseWriter, r *http.Request) {
	var req PreviewRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody("invalid JSON body"))
		return
	}
	if req.Body == "" {
		writeJSON(w, http.StatusBadRequest, errorBody("body is required"))
		return
	}
	writeJSON(w, http.StatusOK, PreviewResponse{Preview: h.gen.TestPreview(req.Body, req.Context)})
}

// Generate handles POST /api/generate.
//
// The provider is resolved per request so a remote failure never changes
// the stored selection. An unknown provider name is a client error.
//
//	@Summary		Generate a full reply from the ticket context
//	@Tags			compose
//	@Accept			json
//	@Produce		json
//	@Success		200	{object}	GenerateResponse
//	@Failure		400	{object}	errResponse
//	@Failure		500	{object}	errResponse
//	@Security		BearerAuth
//	@Router			/generate [post]
func (h *Handler) Generate(w http.ResponseWriter, r *http.Request) {
	var req GenerateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody("invalid JSON body"))
		return
	}
	if req.Context == nil {
		writeJSON(w, http.StatusBadRequest, errorBody(`missing "context" object`))
		return
	}

	tone := models.Tone(req.Tone)
	if req.Tone == "" {
		tone = models.ToneFriendly
	}

	name := req.Provider
	if name == "" {
		name = h.defaultProvider
	}
	p, err := h.registry.Get(name)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody("unknown provider"))
		return
	}

	reply, err := p.Generate(r.Context(), *req.Context, tone)
	if err != nil {
		slog.Error("generate failed", slog.String("provider", name), slog.String("error", err.Error()))
		writeJSON(w, http.StatusInternalServerError, errorBody("generation failed"))
		return
	}
	writeJSON(w, http.StatusOK, GenerateResponse{Reply: reply, Provider: name})
}

// ListProviders handles GET /api/providers.
//
//	@Summary		List registered generation providers
//	@Tags			compose
//	@Produce		json
//	@Success		200	{object}	ProvidersResponse
//	@Security		BearerAuth
//	@Router			/providers [get]
func (h *Handler) ListProviders(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, ProvidersResponse{
		Providers: h.registry.List(),
		Active:    h.registry.Active(),
	})
}
