// AngelaMos | 2026
// handler.go

package assignment

import (
	"context"
	"encoding/json"
	"net/http"

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
	authenticator func(http.Handler) http.Handler,
) {
	r.Route("/assignments", func(r chi.Router) {
		r.Use(authenticator)

		r.Post("/{assignmentID}/start", h.StartReview)
		r.Post("/{assignmentID}/send-to-specialist", h.SendToSpecialist)
		r.Post("/{assignmentID}/send-to-company", h.SendToCompany)
		r.Put("/{assignmentID}/notes", h.UpdateNotes)
	})

	r.With(authenticator).Get("/jobs/{jobID}/assignment", h.GetForJob)
}

func (h *Handler) RegisterAdminRoutes(
	r chi.Router,
	authenticator, adminOnly func(http.Handler) http.Handler,
) {
	r.Route("/admin/jobs/{jobID}/assignment", func(r chi.Router) {
		r.Use(authenticator)
		r.Use(adminOnly)

		r.Post("/", h.Assign)
	})
}

func (h *Handler) Assign(w http.ResponseWriter, r *http.Request) {
	actor := principalFromContext(r)
	jobID := chi.URLParam(r, "jobID")

	var req AssignRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		core.BadRequest(w, "invalid request body")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		core.BadRequest(w, core.FormatValidationError(err))
		return
	}

	if req.RecruiterID == nil && req.SpecialistID == nil {
		core.BadRequest(w, "at least one of recruiter_id or specialist_id is required")
		return
	}

	a, err := h.service.Assign(
		r.Context(),
		actor,
		jobID,
		req.RecruiterID,
		req.SpecialistID,
	)
	if err != nil {
		core.RespondError(w, err)
		return
	}

	core.OK(w, ToAssignmentResponse(a))
}

func (h *Handler) GetForJob(w http.ResponseWriter, r *http.Request) {
	actor := principalFromContext(r)
	jobID := chi.URLParam(r, "jobID")

	a, err := h.service.GetForJob(r.Context(), actor, jobID)
	if err != nil {
		core.RespondError(w, err)
		return
	}

	core.OK(w, ToAssignmentResponse(a))
}

func (h *Handler) StartReview(w http.ResponseWriter, r *http.Request) {
	actor := principalFromContext(r)
	assignmentID := chi.URLParam(r, "assignmentID")

	var req StartReviewRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		core.BadRequest(w, "invalid request body")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		core.BadRequest(w, core.FormatValidationError(err))
		return
	}

	a, err := h.service.StartReview(
		r.Context(),
		actor,
		assignmentID,
		user.Role(req.Role),
	)
	if err != nil {
		core.RespondError(w, err)
		return
	}

	core.OK(w, ToAssignmentResponse(a))
}

func (h *Handler) SendToSpecialist(w http.ResponseWriter, r *http.Request) {
	h.sendBatch(w, r, h.service.SendBatchToSpecialist)
}

func (h *Handler) SendToCompany(w http.ResponseWriter, r *http.Request) {
	h.sendBatch(w, r, h.service.SendBatchToCompany)
}

func (h *Handler) sendBatch(
	w http.ResponseWriter,
	r *http.Request,
	send func(ctx context.Context, actor policy.Principal, id string, ids []string) (*JobAssignment, error),
) {
	actor := principalFromContext(r)
	assignmentID := chi.URLParam(r, "assignmentID")

	var req SendBatchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		core.BadRequest(w, "invalid request body")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		core.BadRequest(w, core.FormatValidationError(err))
		return
	}

	a, err := send(r.Context(), actor, assignmentID, req.CandidateIDs)
	if err != nil {
		core.RespondError(w, err)
		return
	}

	core.OK(w, ToAssignmentResponse(a))
}

func (h *Handler) UpdateNotes(w http.ResponseWriter, r *http.Request) {
	actor := principalFromContext(r)
	assignmentID := chi.URLParam(r, "assignmentID")

	var req NotesRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		core.BadRequest(w, "invalid request body")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		core.BadRequest(w, core.FormatValidationError(err))
		return
	}

	a, err := h.service.UpdateNotes(
		r.Context(),
		actor,
		assignmentID,
		user.Role(req.Role),
		req.Notes,
	)
	if err != nil {
		core.RespondError(w, err)
		return
	}

	core.OK(w, ToAssignmentResponse(a))
}

func principalFromContext(r *http.Request) policy.Principal {
	return policy.Principal{
		UserID: middleware.GetUserID(r.Context()),
		Role:   user.Role(middleware.GetUserRole(r.Context())),
	}
}
