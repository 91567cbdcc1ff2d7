// AngelaMos | 2026
// handler.go

package catalog

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/reclutahq/recluta-backend/internal/core"
)

type Handler struct {
	service   *Service
	validator *validator.Validate
}

func NewHandler(service *Service) *Handler {
	return &Handler{
		service:   service,
		validator: validator.New(validator.WithRequiredStructEnabled()),
	}
}

func (h *Handler) RegisterRoutes(
	r chi.Router,
	authenticator, adminOnly func(http.Handler) http.Handler,
) {
	r.Route("/admin/pricing", func(r chi.Router) {
		r.Use(authenticator)
		r.Use(adminOnly)

		r.Get("/", h.ListEntries)
		r.Post("/", h.CreateEntry)
		r.Put("/{entryID}", h.UpdateEntry)
		r.Delete("/{entryID}", h.DeleteEntry)
	})
}

func (h *Handler) ListEntries(w http.ResponseWriter, r *http.Request) {
	entries, err := h.service.ListEntries(r.Context())
	if err != nil {
		core.RespondError(w, err)
		return
	}

	core.OK(w, ToEntryResponseList(entries))
}

func (h *Handler) CreateEntry(w http.ResponseWriter, r *http.Request) {
	var req CreateEntryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		core.BadRequest(w, "invalid request body")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		core.BadRequest(w, core.FormatValidationError(err))
		return
	}

	entry, err := h.service.CreateEntry(r.Context(), req)
	if err != nil {
		core.RespondError(w, err)
		return
	}

	core.Created(w, ToEntryResponse(entry))
}

func (h *Handler) UpdateEntry(w http.ResponseWriter, r *http.Request) {
	entryID := chi.URLParam(r, "entryID")

	var req UpdateEntryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		core.BadRequest(w, "invalid request body")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		core.BadRequest(w, core.FormatValidationError(err))
		return
	}

	entry, err := h.service.UpdateEntry(r.Context(), entryID, req)
	if err != nil {
		core.RespondError(w, err)
		return
	}

	core.OK(w, ToEntryResponse(entry))
}

func (h *Handler) DeleteEntry(w http.ResponseWriter, r *http.Request) {
	entryID := chi.URLParam(r, "entryID")

	if err := h.service.DeleteEntry(r.Context(), entryID); err != nil {
		core.RespondError(w, err)
		return
	}

	core.NoContent(w)
}
