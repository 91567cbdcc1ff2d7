// AngelaMos | 2026
// service.go

package application

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/reclutahq/recluta-backend/internal/assignment"
	"github.com/reclutahq/recluta-backend/internal/core"
	"github.com/reclutahq/recluta-backend/internal/job"
	"github.com/reclutahq/recluta-backend/internal/notify"
	"github.com/reclutahq/recluta-backend/internal/policy"
	"github.com/reclutahq/recluta-backend/internal/user"
)

// JobDirectory is the slice of the job service the pipeline needs: raw
// loads for authorization and the confidentiality transform for responses.
type JobDirectory interface {
	Get(ctx context.Context, jobID string) (*job.Job, error)
	SanitizeFor(viewer *policy.Principal, j job.Job) job.Job
}

// AssignmentDirectory answers who holds a job's pipeline stages.
type AssignmentDirectory interface {
	ForJob(ctx context.Context, jobID string) (*assignment.JobAssignment, error)
	SpecialistAssigned(ctx context.Context, jobID string) (bool, error)
}

type Service struct {
	repo         Repository
	jobs         JobDirectory
	assignments  AssignmentDirectory
	policy       *policy.Policy
	dispatcher   notify.Dispatcher
	followUpDays int
}

func NewService(
	repo Repository,
	jobs JobDirectory,
	assignments AssignmentDirectory,
	pol *policy.Policy,
	dispatcher notify.Dispatcher,
	followUpDays int,
) *Service {
	return &Service{
		repo:         repo,
		jobs:         jobs,
		assignments:  assignments,
		policy:       pol,
		dispatcher:   dispatcher,
		followUpDays: followUpDays,
	}
}

// Apply records a candidate's submission against an active job. Candidates
// do not hold accounts; an authenticated admin submitting on a candidate's
// behalf produces the injected_by_admin entry state instead of pending.
func (s *Service) Apply(
	ctx context.Context,
	actor *policy.Principal,
	jobID string,
	req ApplyRequest,
) (*Application, error) {
	j, err := s.jobs.Get(ctx, jobID)
	if err != nil {
		return nil, err
	}

	if j.Status != job.StatusActive {
		return nil, core.ValidationError("job is not accepting applications")
	}

	status := StatusPending
	if actor != nil && actor.IsAdmin() {
		status = StatusInjectedByAdmin
	}

	a := &Application{
		ID:             uuid.New().String(),
		JobID:          jobID,
		CandidateName:  req.Name,
		CandidateEmail: strings.ToLower(strings.TrimSpace(req.Email)),
		CandidatePhone: req.Phone,
		Status:         status,
	}

	if err := s.repo.Create(ctx, a); err != nil {
		if errors.Is(err, core.ErrDuplicateKey) {
			return nil, core.ConflictError(
				"an application with this email already exists for this job",
				map[string]any{"job_id": jobID},
			)
		}
		return nil, err
	}

	if j.CompanyID != nil {
		s.dispatcher.Notify(ctx, notify.Event{
			UserID:  *j.CompanyID,
			Type:    notify.EventApplicationReceived,
			Message: fmt.Sprintf("New application for %q", j.Title),
			Link:    "/jobs/" + jobID + "/applications",
			At:      time.Now(),
		})
	}

	return a, nil
}

// Transition moves an application along the pipeline. The edge must exist
// for the actor's role, the actor must own the stage they are acting from,
// and the row must still hold the status the caller saw.
func (s *Service) Transition(
	ctx context.Context,
	actor policy.Principal,
	applicationID string,
	target Status,
) (*Application, error) {
	if !target.Valid() {
		return nil, core.ValidationError("unknown target status")
	}

	a, err := s.repo.GetByID(ctx, applicationID)
	if err != nil {
		return nil, err
	}

	j, err := s.jobs.Get(ctx, a.JobID)
	if err != nil {
		return nil, err
	}

	if err := s.authorizeTransition(ctx, actor, a, j); err != nil {
		return nil, err
	}

	if !CanTransition(a.Status, target, actor.Role) {
		return nil, core.InvalidTransitionError(
			string(a.Status),
			string(target),
			AllowedTargets(a.Status, actor.Role),
		)
	}

	if target == StatusSentToSpecialist {
		assigned, err := s.assignments.SpecialistAssigned(ctx, a.JobID)
		if err != nil {
			return nil, err
		}
		if !assigned {
			return nil, core.ValidationError(
				"job has no specialist assigned to receive the application",
			)
		}
	}

	now := time.Now()

	var reviewedAt *time.Time
	if a.ReviewedAt == nil && stampsReview(target) {
		reviewedAt = &now
	}

	var followUpDate *time.Time
	if target == StatusSentToCompany {
		f := now.AddDate(0, 0, s.followUpDays)
		followUpDate = &f
	}

	// Accepting into a close_on_accept job also closes the job; both
	// writes must land together or not at all.
	if target == StatusAccepted && j.CloseOnAccept {
		err = s.repo.AcceptAndCloseJob(
			ctx,
			applicationID,
			a.Status,
			reviewedAt,
			a.JobID,
		)
	} else {
		err = s.repo.TransitionCAS(
			ctx,
			applicationID,
			a.Status,
			target,
			reviewedAt,
			followUpDate,
		)
	}
	if err != nil {
		return nil, err
	}

	a.Status = target
	if reviewedAt != nil {
		a.ReviewedAt = reviewedAt
	}
	if followUpDate != nil {
		a.FollowUpDate = followUpDate
	}

	if j.CompanyID != nil && companyVisible(target) {
		s.dispatcher.Notify(ctx, notify.Event{
			UserID:  *j.CompanyID,
			Type:    notify.EventApplicationMoved,
			Message: fmt.Sprintf("Application for %q moved to %s", j.Title, target),
			Link:    "/jobs/" + a.JobID + "/applications",
			At:      now,
		})
	}

	return a, nil
}

// authorizeTransition checks stage ownership. Role gating of the edge
// itself happens in the transition table; this only verifies the actor is
// who the pipeline says holds that stage.
func (s *Service) authorizeTransition(
	ctx context.Context,
	actor policy.Principal,
	a *Application,
	j *job.Job,
) error {
	switch actor.Role {
	case user.RoleAdmin:
		return nil

	case user.RoleCompany:
		return s.policy.CanManageJob(actor, j.CompanyID)

	case user.RoleRecruiter, user.RoleSpecialist:
		asgn, err := s.assignments.ForJob(ctx, a.JobID)
		if errors.Is(err, core.ErrNotFound) {
			return fmt.Errorf("not assigned to this job: %w", core.ErrForbidden)
		}
		if err != nil {
			return err
		}

		assignedID := asgn.RecruiterID
		if actor.Role == user.RoleSpecialist {
			assignedID = asgn.SpecialistID
		}
		return s.policy.CanActOnAssignment(actor, actor.Role, assignedID)

	default:
		return fmt.Errorf("transition application: %w", core.ErrForbidden)
	}
}

// ListForViewer returns a job's applications filtered to what the viewer's
// role may see. Companies get exactly the hand-off states; recruiters and
// specialists assigned to the job, and admins, see everything.
func (s *Service) ListForViewer(
	ctx context.Context,
	viewer policy.Principal,
	jobID string,
	page, pageSize int,
) ([]Application, *job.Job, int, error) {
	j, err := s.jobs.Get(ctx, jobID)
	if err != nil {
		return nil, nil, 0, err
	}

	statuses, err := s.visibleStatuses(ctx, viewer, j)
	if err != nil {
		return nil, nil, 0, err
	}

	if page < 1 {
		page = 1
	}
	if pageSize < 1 || pageSize > 100 {
		pageSize = 20
	}

	apps, total, err := s.repo.ListByJob(
		ctx,
		jobID,
		statuses,
		pageSize,
		(page-1)*pageSize,
	)
	if err != nil {
		return nil, nil, 0, err
	}

	sanitized := s.jobs.SanitizeFor(&viewer, *j)
	return apps, &sanitized, total, nil
}

// GetForViewer loads one application under the same visibility rules as
// the list. A company holding a direct id to an upstream application still
// gets not-found.
func (s *Service) GetForViewer(
	ctx context.Context,
	viewer policy.Principal,
	applicationID string,
) (*Application, *job.Job, error) {
	a, err := s.repo.GetByID(ctx, applicationID)
	if err != nil {
		return nil, nil, err
	}

	j, err := s.jobs.Get(ctx, a.JobID)
	if err != nil {
		return nil, nil, err
	}

	statuses, err := s.visibleStatuses(ctx, viewer, j)
	if err != nil {
		return nil, nil, err
	}

	if statuses != nil && !statusIn(a.Status, statuses) {
		return nil, nil, fmt.Errorf("get application: %w", core.ErrNotFound)
	}

	sanitized := s.jobs.SanitizeFor(&viewer, *j)
	return a, &sanitized, nil
}

// visibleStatuses resolves the viewer's visibility filter for a job. A nil
// slice means unrestricted.
func (s *Service) visibleStatuses(
	ctx context.Context,
	viewer policy.Principal,
	j *job.Job,
) ([]Status, error) {
	switch viewer.Role {
	case user.RoleAdmin:
		return nil, nil

	case user.RoleCompany:
		if err := s.policy.CanManageJob(viewer, j.CompanyID); err != nil {
			return nil, err
		}
		return CompanyVisibleStatuses, nil

	case user.RoleRecruiter, user.RoleSpecialist:
		asgn, err := s.assignments.ForJob(ctx, j.ID)
		if errors.Is(err, core.ErrNotFound) {
			return nil, fmt.Errorf("not assigned to this job: %w", core.ErrForbidden)
		}
		if err != nil {
			return nil, err
		}

		assignedID := asgn.RecruiterID
		if viewer.Role == user.RoleSpecialist {
			assignedID = asgn.SpecialistID
		}
		if err := s.policy.CanActOnAssignment(viewer, viewer.Role, assignedID); err != nil {
			return nil, err
		}
		return nil, nil

	default:
		return nil, fmt.Errorf("list applications: %w", core.ErrForbidden)
	}
}

func statusIn(s Status, set []Status) bool {
	for _, v := range set {
		if v == s {
			return true
		}
	}
	return false
}
