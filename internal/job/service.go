// AngelaMos | 2026
// service.go

package job

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/reclutahq/recluta-backend/internal/catalog"
	"github.com/reclutahq/recluta-backend/internal/core"
	"github.com/reclutahq/recluta-backend/internal/notify"
	"github.com/reclutahq/recluta-backend/internal/policy"
	"github.com/reclutahq/recluta-backend/internal/user"
)

// CostResolver prices a posting from the catalog.
type CostResolver interface {
	ResolveCost(
		ctx context.Context,
		profile, seniority, workMode, location string,
	) (catalog.Cost, error)
}

type Service struct {
	repo       Repository
	costs      CostResolver
	policy     *policy.Policy
	dispatcher notify.Dispatcher
	editWindow time.Duration
}

func NewService(
	repo Repository,
	costs CostResolver,
	pol *policy.Policy,
	dispatcher notify.Dispatcher,
	editWindow time.Duration,
) *Service {
	return &Service{
		repo:       repo,
		costs:      costs,
		policy:     pol,
		dispatcher: dispatcher,
		editWindow: editWindow,
	}
}

// Create stores a new draft. Drafts cost nothing and stay invisible to
// candidates until published.
func (s *Service) Create(
	ctx context.Context,
	actor policy.Principal,
	req CreateJobRequest,
) (*Job, error) {
	if actor.Role != user.RoleCompany && !actor.IsAdmin() {
		return nil, core.ForbiddenError("only companies can create jobs")
	}

	if err := s.checkSalaryFloor(ctx, req.Profile, req.Seniority, req.WorkMode, req.Location, req.Salary); err != nil {
		return nil, err
	}

	// Admin-drafted jobs have no owning company.
	var companyID *string
	if actor.Role == user.RoleCompany {
		id := actor.UserID
		companyID = &id
	}

	j := &Job{
		ID:             uuid.New().String(),
		CompanyID:      companyID,
		Title:          req.Title,
		Description:    req.Description,
		Profile:        req.Profile,
		Seniority:      req.Seniority,
		WorkMode:       req.WorkMode,
		Location:       req.Location,
		Salary:         req.Salary,
		Status:         StatusDraft,
		IsConfidential: req.IsConfidential,
		CloseOnAccept:  req.CloseOnAccept,
	}

	if err := s.repo.Create(ctx, j); err != nil {
		return nil, err
	}

	return j, nil
}

// Publish activates a draft, capturing the current catalog price on the job
// and debiting it from the owner in the same transaction. A failed debit
// leaves the job a draft. Admins publish without a charge; the cost is
// still captured so reporting stays truthful.
func (s *Service) Publish(
	ctx context.Context,
	actor policy.Principal,
	jobID string,
) (*Job, error) {
	j, err := s.repo.GetByID(ctx, jobID)
	if err != nil {
		return nil, err
	}

	if err := s.policy.CanManageJob(actor, j.CompanyID); err != nil {
		return nil, err
	}

	if j.Status != StatusDraft {
		return nil, core.InvalidTransitionError(
			string(j.Status),
			string(StatusActive),
			allowedStatusTargets(j.Status),
		)
	}

	cost, err := s.costs.ResolveCost(
		ctx,
		j.Profile,
		j.Seniority,
		j.WorkMode,
		j.Location,
	)
	if err != nil {
		return nil, err
	}

	if cost.MinSalary != nil &&
		(j.Salary == nil || *j.Salary < *cost.MinSalary) {
		return nil, core.ValidationError(fmt.Sprintf(
			"salary must be at least %d for this profile",
			*cost.MinSalary,
		))
	}

	editableUntil := time.Now().Add(s.editWindow)

	var charge *Charge
	if !s.policy.BypassesCharge(actor) && j.CompanyID != nil {
		charge = &Charge{
			CompanyID:   *j.CompanyID,
			Description: fmt.Sprintf("publication of %q", j.Title),
		}
	}

	if err := s.repo.Publish(ctx, jobID, cost.Credits, editableUntil, charge); err != nil {
		return nil, err
	}

	published, err := s.repo.GetByID(ctx, jobID)
	if err != nil {
		return nil, err
	}

	if published.CompanyID != nil {
		s.dispatcher.Notify(ctx, notify.Event{
			UserID:  *published.CompanyID,
			Type:    notify.EventJobPublished,
			Message: fmt.Sprintf("Job %q is now live", published.Title),
			Link:    "/jobs/" + published.ID,
			At:      time.Now(),
		})
	}

	return published, nil
}

// UpdateContent edits the posting's content fields. Published jobs accept
// edits only inside the grace window captured at publish time.
func (s *Service) UpdateContent(
	ctx context.Context,
	actor policy.Principal,
	jobID string,
	req UpdateJobRequest,
) (*Job, error) {
	j, err := s.repo.GetByID(ctx, jobID)
	if err != nil {
		return nil, err
	}

	if err := s.policy.CanManageJob(actor, j.CompanyID); err != nil {
		return nil, err
	}

	if !j.ContentEditable(time.Now()) {
		return nil, core.ForbiddenError("edit window for this job has closed")
	}

	if req.Title != nil {
		j.Title = *req.Title
	}
	if req.Description != nil {
		j.Description = *req.Description
	}
	if req.Location != nil {
		j.Location = *req.Location
	}
	if req.Salary != nil {
		j.Salary = req.Salary
	}
	if req.IsConfidential != nil {
		j.IsConfidential = *req.IsConfidential
	}
	if req.CloseOnAccept != nil {
		j.CloseOnAccept = *req.CloseOnAccept
	}

	if j.Status == StatusDraft {
		if err := s.checkSalaryFloor(ctx, j.Profile, j.Seniority, j.WorkMode, j.Location, j.Salary); err != nil {
			return nil, err
		}
	}

	if err := s.repo.UpdateContent(ctx, j); err != nil {
		return nil, err
	}

	return j, nil
}

// ChangeStatus moves a job between active, paused and closed. Closing
// requires a reason; reopening a closed job does not re-charge and does not
// reopen the content edit window.
func (s *Service) ChangeStatus(
	ctx context.Context,
	actor policy.Principal,
	jobID string,
	req ChangeStatusRequest,
) (*Job, error) {
	j, err := s.repo.GetByID(ctx, jobID)
	if err != nil {
		return nil, err
	}

	if err := s.policy.CanManageJob(actor, j.CompanyID); err != nil {
		return nil, err
	}

	target := Status(req.Status)
	if !j.CanTransitionTo(target) {
		return nil, core.InvalidTransitionError(
			string(j.Status),
			string(target),
			allowedStatusTargets(j.Status),
		)
	}

	var closedReason *ClosedReason
	switch target {
	case StatusClosed:
		if req.ClosedReason == "" {
			return nil, core.ValidationError(
				"closed_reason is required when closing a job",
			)
		}
		reason := ClosedReason(req.ClosedReason)
		closedReason = &reason
	default:
		// Reopening and pausing clear any previous close reason.
	}

	if err := s.repo.UpdateStatus(ctx, jobID, target, closedReason); err != nil {
		return nil, err
	}

	j.Status = target
	j.ClosedReason = closedReason

	return j, nil
}

// GetForViewer loads a job with confidentiality redaction applied for the
// viewer. A nil viewer is an unauthenticated read.
func (s *Service) GetForViewer(
	ctx context.Context,
	viewer *policy.Principal,
	jobID string,
) (*Job, error) {
	j, err := s.repo.GetByID(ctx, jobID)
	if err != nil {
		return nil, err
	}

	sanitized := s.sanitizeFor(viewer, *j)
	return &sanitized, nil
}

func (s *Service) List(
	ctx context.Context,
	viewer *policy.Principal,
	params ListJobsParams,
) ([]Job, int, error) {
	jobs, total, err := s.repo.List(ctx, params)
	if err != nil {
		return nil, 0, err
	}

	for i := range jobs {
		jobs[i] = s.sanitizeFor(viewer, jobs[i])
	}

	return jobs, total, nil
}

// SanitizeFor applies the confidentiality transform for a viewer. Exposed
// so application reads can redact the job nested in their responses.
func (s *Service) SanitizeFor(viewer *policy.Principal, j Job) Job {
	return s.sanitizeFor(viewer, j)
}

func (s *Service) sanitizeFor(viewer *policy.Principal, j Job) Job {
	var role user.Role
	isOwner := false
	if viewer != nil {
		role = viewer.Role
		isOwner = j.IsOwnedBy(viewer.UserID)
	}
	return Sanitize(j, role, isOwner)
}

// Get loads a job with no redaction, for internal collaborators that need
// the real owner identity.
func (s *Service) Get(ctx context.Context, jobID string) (*Job, error) {
	return s.repo.GetByID(ctx, jobID)
}

func (s *Service) checkSalaryFloor(
	ctx context.Context,
	profile, seniority, workMode, location string,
	salary *int,
) error {
	cost, err := s.costs.ResolveCost(ctx, profile, seniority, workMode, location)
	if err != nil {
		return err
	}

	if cost.MinSalary != nil && (salary == nil || *salary < *cost.MinSalary) {
		return core.ValidationError(fmt.Sprintf(
			"salary must be at least %d for this profile",
			*cost.MinSalary,
		))
	}

	return nil
}
