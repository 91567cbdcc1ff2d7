// AngelaMos | 2026
// handler.go

package job

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
	r.Route("/jobs", func(r chi.Router) {
		r.Group(func(r chi.Router) {
			r.Use(optionalAuth)

			r.Get("/", h.List)
			r.Get("/{jobID}", h.Get)
		})

		r.Group(func(r chi.Router) {
			r.Use(authenticator)

			r.Post("/", h.Create)
			r.Put("/{jobID}", h.Update)
			r.Post("/{jobID}/publish", h.Publish)
			r.Post("/{jobID}/status", h.ChangeStatus)
		})
	})
}

func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	actor := principalFromContext(r)

	var req CreateJobRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		core.BadRequest(w, "invalid request body")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		core.BadRequest(w, core.FormatValidationError(err))
		return
	}

	j, err := h.service.Create(r.Context(), actor, req)
	if err != nil {
		core.RespondError(w, err)
		return
	}

	core.Created(w, ToJobResponse(j))
}

func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	jobID := chi.URLParam(r, "jobID")
	viewer := optionalPrincipal(r)

	j, err := h.service.GetForViewer(r.Context(), viewer, jobID)
	if err != nil {
		core.RespondError(w, err)
		return
	}

	core.OK(w, ToJobResponse(j))
}

func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	viewer := optionalPrincipal(r)

	params := ListJobsParams{
		Page:      parseIntQuery(r, "page", 1),
		PageSize:  parseIntQuery(r, "page_size", 20),
		Status:    r.URL.Query().Get("status"),
		CompanyID: r.URL.Query().Get("company_id"),
	}

	jobs, total, err := h.service.List(r.Context(), viewer, params)
	if err != nil {
		core.RespondError(w, err)
		return
	}

	core.Paginated(
		w,
		ToJobResponseList(jobs),
		params.Page,
		params.PageSize,
		total,
	)
}

func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	actor := principalFromContext(r)
	jobID := chi.URLParam(r, "jobID")

	var req UpdateJobRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		core.BadRequest(w, "invalid request body")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		core.BadRequest(w, core.FormatValidationError(err))
		return
	}

	j, err := h.service.UpdateContent(r.Context(), actor, jobID, req)
	if err != nil {
		core.RespondError(w, err)
		return
	}

	core.OK(w, ToJobResponse(j))
}

func (h *Handler) Publish(w http.ResponseWriter, r *http.Request) {
	actor := principalFromContext(r)
	jobID := chi.URLParam(r, "jobID")

	j, err := h.service.Publish(r.Context(), actor, jobID)
	if err != nil {
		core.RespondError(w, err)
		return
	}

	core.OK(w, ToJobResponse(j))
}

func (h *Handler) ChangeStatus(w http.ResponseWriter, r *http.Request) {
	actor := principalFromContext(r)
	jobID := chi.URLParam(r, "jobID")

	var req ChangeStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		core.BadRequest(w, "invalid request body")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		core.BadRequest(w, core.FormatValidationError(err))
		return
	}

	j, err := h.service.ChangeStatus(r.Context(), actor, jobID, req)
	if err != nil {
		core.RespondError(w, err)
		return
	}

	core.OK(w, ToJobResponse(j))
}

func principalFromContext(r *http.Request) policy.Principal {
	return policy.Principal{
		UserID: middleware.GetUserID(r.Context()),
		Role:   user.Role(middleware.GetUserRole(r.Context())),
	}
}

// optionalPrincipal returns nil for unauthenticated requests.
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
