// AngelaMos | 2026
// handler.go

package application

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/reclutahq/recluta-backend/internal/core"
	"github.com/reclutahq/recluta-backend/internal/middleware"
	"github.com/reclutahq/recluta-backend/internal/policy"
	"github.com/reclutahq/recluta-backend/internal/user"
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
	authenticator, optionalAuth func(http.Handler) http.Handler,
) {
	// Applying is open to unauthenticated candidates.
	r.With(optionalAuth).Post("/jobs/{jobID}/applications", h.Apply)

	r.Group(func(r chi.Router) {
		r.Use(authenticator)

		r.Get("/jobs/{jobID}/applications", h.ListForJob)
		r.Get("/applications/{applicationID}", h.Get)
		r.Post("/applications/{applicationID}/transition", h.Transition)
	})
}

func (h *Handler) Apply(w http.ResponseWriter, r *http.Request) {
	jobID := chi.URLParam(r, "jobID")
	actor := optionalPrincipal(r)

	var req ApplyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		core.BadRequest(w, "invalid request body")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		core.BadRequest(w, core.FormatValidationError(err))
		return
	}

	a, err := h.service.Apply(r.Context(), actor, jobID, req)
	if err != nil {
		core.RespondError(w, err)
		return
	}

	core.Created(w, ToApplicationResponse(a, nil))
}

func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	viewer := principalFromContext(r)
	applicationID := chi.URLParam(r, "applicationID")

	a, j, err := h.service.GetForViewer(r.Context(), viewer, applicationID)
	if err != nil {
		core.RespondError(w, err)
		return
	}

	core.OK(w, ToApplicationResponse(a, j))
}

func (h *Handler) ListForJob(w http.ResponseWriter, r *http.Request) {
	viewer := principalFromContext(r)
	jobID := chi.URLParam(r, "jobID")
	page := parseIntQuery(r, "page", 1)
	pageSize := parseIntQuery(r, "page_size", 20)

	apps, j, total, err := h.service.ListForViewer(
		r.Context(),
		viewer,
		jobID,
		page,
		pageSize,
	)
	if err != nil {
		core.RespondError(w, err)
		return
	}

	core.Paginated(w, ToApplicationResponseList(apps, j), page, pageSize, total)
}

func (h *Handler) Transition(w http.ResponseWriter, r *http.Request) {
	actor := principalFromContext(r)
	applicationID := chi.URLParam(r, "applicationID")

	var req TransitionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		core.BadRequest(w, "invalid request body")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		core.BadRequest(w, core.FormatValidationError(err))
		return
	}

	a, err := h.service.Transition(
		r.Context(),
		actor,
		applicationID,
		Status(req.Status),
	)
	if err != nil {
		core.RespondError(w, err)
		return
	}

	core.OK(w, ToApplicationResponse(a, nil))
}

func principalFromContext(r *http.Request) policy.Principal {
	return policy.Principal{
		UserID: middleware.GetUserID(r.Context()),
		Role:   user.Role(middleware.GetUserRole(r.Context())),
	}
}

func optionalPrincipal(r *http.Request) *policy.Principal {
	userID := middleware.GetUserID(r.Context())
	if userID == "" {
		return nil
	}

	p := principalFromContext(r)
	return &p
}

func parseIntQuery(r *http.Request, key string, defaultVal int) int {
	val := r.URL.Query().Get(key)
	if val == "" {
		return defaultVal
	}

	parsed, err := strconv.Atoi(val)
	if err != nil {
		return defaultVal
	}

	return parsed
}
