// AngelaMos | 2026
// service.go

package assignment

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/reclutahq/recluta-backend/internal/core"
	"github.com/reclutahq/recluta-backend/internal/job"
	"github.com/reclutahq/recluta-backend/internal/notify"
	"github.com/reclutahq/recluta-backend/internal/policy"
	"github.com/reclutahq/recluta-backend/internal/user"
)

type Service struct {
	repo         Repository
	jobs         *job.Service
	policy       *policy.Policy
	dispatcher   notify.Dispatcher
	db           *sqlx.DB
	followUpDays int
}

func NewService(
	repo Repository,
	jobs *job.Service,
	pol *policy.Policy,
	dispatcher notify.Dispatcher,
	db *sqlx.DB,
	followUpDays int,
) *Service {
	return &Service{
		repo:         repo,
		jobs:         jobs,
		policy:       pol,
		dispatcher:   dispatcher,
		db:           db,
		followUpDays: followUpDays,
	}
}

// Assign attaches a recruiter and/or specialist to a job, creating the
// assignment on first use. Re-assigning replaces only the ids provided.
func (s *Service) Assign(
	ctx context.Context,
	actor policy.Principal,
	jobID string,
	recruiterID, specialistID *string,
) (*JobAssignment, error) {
	if err := s.policy.CanAssign(actor); err != nil {
		return nil, err
	}

	if _, err := s.jobs.Get(ctx, jobID); err != nil {
		return nil, err
	}

	a, err := s.repo.GetByJobID(ctx, jobID)
	switch {
	case errors.Is(err, core.ErrNotFound):
		a = &JobAssignment{
			ID:               uuid.New().String(),
			JobID:            jobID,
			RecruiterID:      recruiterID,
			SpecialistID:     specialistID,
			RecruiterStatus:  RecruiterPending,
			SpecialistStatus: SpecialistPending,
		}
		if err := s.repo.Create(ctx, a); err != nil {
			return nil, err
		}
	case err != nil:
		return nil, err
	default:
		if recruiterID != nil {
			a.RecruiterID = recruiterID
		}
		if specialistID != nil {
			a.SpecialistID = specialistID
		}
		if err := s.repo.UpdateAssignees(ctx, a); err != nil {
			return nil, err
		}
	}

	for _, assigned := range []*string{recruiterID, specialistID} {
		if assigned == nil {
			continue
		}
		s.dispatcher.Notify(ctx, notify.Event{
			UserID:  *assigned,
			Type:    notify.EventAssignmentCreated,
			Message: "You have been assigned to a job pipeline",
			Link:    "/jobs/" + jobID,
			At:      time.Now(),
		})
	}

	return a, nil
}

// GetForJob loads a job's assignment for anyone with a stake in it: the
// owning company, the assigned recruiter or specialist, or an admin.
func (s *Service) GetForJob(
	ctx context.Context,
	actor policy.Principal,
	jobID string,
) (*JobAssignment, error) {
	a, err := s.repo.GetByJobID(ctx, jobID)
	if err != nil {
		return nil, err
	}

	if err := s.authorizeRead(ctx, actor, a); err != nil {
		return nil, err
	}

	return a, nil
}

func (s *Service) authorizeRead(
	ctx context.Context,
	actor policy.Principal,
	a *JobAssignment,
) error {
	if actor.IsAdmin() {
		return nil
	}
	if a.RecruiterID != nil && *a.RecruiterID == actor.UserID {
		return nil
	}
	if a.SpecialistID != nil && *a.SpecialistID == actor.UserID {
		return nil
	}

	j, err := s.jobs.Get(ctx, a.JobID)
	if err != nil {
		return err
	}
	if j.IsOwnedBy(actor.UserID) {
		return nil
	}

	return fmt.Errorf("read assignment: %w", core.ErrForbidden)
}

// StartReview advances the actor's sub-pipeline out of pending. The
// recruiter moves to reviewing, the specialist to evaluating.
func (s *Service) StartReview(
	ctx context.Context,
	actor policy.Principal,
	assignmentID string,
	as user.Role,
) (*JobAssignment, error) {
	a, err := s.repo.GetByID(ctx, assignmentID)
	if err != nil {
		return nil, err
	}

	switch as {
	case user.RoleRecruiter:
		if err := s.policy.CanActOnAssignment(actor, as, a.RecruiterID); err != nil {
			return nil, err
		}
		if a.RecruiterStatus != RecruiterPending {
			return nil, core.InvalidTransitionError(
				string(a.RecruiterStatus),
				string(RecruiterReviewing),
				recruiterTargets(a.RecruiterStatus),
			)
		}
		a.RecruiterStatus = RecruiterReviewing

	case user.RoleSpecialist:
		if err := s.policy.CanActOnAssignment(actor, as, a.SpecialistID); err != nil {
			return nil, err
		}
		if a.SpecialistStatus != SpecialistPending {
			return nil, core.InvalidTransitionError(
				string(a.SpecialistStatus),
				string(SpecialistEvaluating),
				specialistTargets(a.SpecialistStatus),
			)
		}
		a.SpecialistStatus = SpecialistEvaluating

	default:
		return nil, core.ValidationError("role must be recruiter or specialist")
	}

	if err := s.repo.UpdateStatuses(ctx, a); err != nil {
		return nil, err
	}

	return a, nil
}

// SendBatchToSpecialist unions the given candidate ids into the set already
// handed to the specialist. The union runs under a row lock so a
// concurrently-sent partial batch is never dropped.
func (s *Service) SendBatchToSpecialist(
	ctx context.Context,
	actor policy.Principal,
	assignmentID string,
	candidateIDs []string,
) (*JobAssignment, error) {
	a, err := s.repo.GetByID(ctx, assignmentID)
	if err != nil {
		return nil, err
	}

	if err := s.policy.CanActOnAssignment(actor, user.RoleRecruiter, a.RecruiterID); err != nil {
		return nil, err
	}

	if a.SpecialistID == nil {
		return nil, core.ValidationError(
			"no specialist assigned to receive the batch",
		)
	}

	err = core.InTx(ctx, s.db, func(tx *sqlx.Tx) error {
		locked, txErr := s.repo.GetByIDForUpdate(ctx, tx, assignmentID)
		if txErr != nil {
			return txErr
		}

		locked.SentToSpecialist = UnionIDSet(locked.SentToSpecialist, candidateIDs)
		locked.RecruiterStatus = RecruiterSentToSpecialist

		a = locked
		return s.repo.UpdateBatchesTx(ctx, tx, locked)
	})
	if err != nil {
		return nil, err
	}

	s.dispatcher.Notify(ctx, notify.Event{
		UserID:  *a.SpecialistID,
		Type:    notify.EventBatchHandedOff,
		Message: fmt.Sprintf("%d candidate(s) sent for evaluation", len(candidateIDs)),
		Link:    "/jobs/" + a.JobID,
		At:      time.Now(),
	})

	return a, nil
}

// SendBatchToCompany unions the ids into the company-facing set, advances
// the specialist sub-status and stamps the follow-up date.
func (s *Service) SendBatchToCompany(
	ctx context.Context,
	actor policy.Principal,
	assignmentID string,
	candidateIDs []string,
) (*JobAssignment, error) {
	a, err := s.repo.GetByID(ctx, assignmentID)
	if err != nil {
		return nil, err
	}

	if err := s.policy.CanActOnAssignment(actor, user.RoleSpecialist, a.SpecialistID); err != nil {
		return nil, err
	}

	followUp := time.Now().AddDate(0, 0, s.followUpDays)

	err = core.InTx(ctx, s.db, func(tx *sqlx.Tx) error {
		locked, txErr := s.repo.GetByIDForUpdate(ctx, tx, assignmentID)
		if txErr != nil {
			return txErr
		}

		locked.SentToCompany = UnionIDSet(locked.SentToCompany, candidateIDs)
		locked.SpecialistStatus = SpecialistSentToCompany
		locked.FollowUpDate = &followUp

		a = locked
		return s.repo.UpdateBatchesTx(ctx, tx, locked)
	})
	if err != nil {
		return nil, err
	}

	j, err := s.jobs.Get(ctx, a.JobID)
	if err == nil && j.CompanyID != nil {
		s.dispatcher.Notify(ctx, notify.Event{
			UserID:  *j.CompanyID,
			Type:    notify.EventBatchHandedOff,
			Message: fmt.Sprintf("%d candidate(s) ready for your review", len(candidateIDs)),
			Link:    "/jobs/" + a.JobID,
			At:      time.Now(),
		})
	}

	return a, nil
}

// UpdateNotes writes the actor's own note field. Admins may write either
// side by naming the role.
func (s *Service) UpdateNotes(
	ctx context.Context,
	actor policy.Principal,
	assignmentID string,
	as user.Role,
	notes string,
) (*JobAssignment, error) {
	a, err := s.repo.GetByID(ctx, assignmentID)
	if err != nil {
		return nil, err
	}

	switch as {
	case user.RoleRecruiter:
		if err := s.policy.CanActOnAssignment(actor, as, a.RecruiterID); err != nil {
			return nil, err
		}
		a.RecruiterNotes = &notes
	case user.RoleSpecialist:
		if err := s.policy.CanActOnAssignment(actor, as, a.SpecialistID); err != nil {
			return nil, err
		}
		a.SpecialistNotes = &notes
	default:
		return nil, core.ValidationError("role must be recruiter or specialist")
	}

	if err := s.repo.UpdateNotes(ctx, a); err != nil {
		return nil, err
	}

	return a, nil
}

// ForJob loads a job's assignment with no authorization, for internal
// collaborators that gate their own operations on the assignee identity.
func (s *Service) ForJob(
	ctx context.Context,
	jobID string,
) (*JobAssignment, error) {
	return s.repo.GetByJobID(ctx, jobID)
}

// SpecialistAssigned reports whether the job's assignment names a
// specialist. Used as a hard precondition before an application may move
// to the specialist stage. A job with no assignment at all has none.
func (s *Service) SpecialistAssigned(
	ctx context.Context,
	jobID string,
) (bool, error) {
	a, err := s.repo.GetByJobID(ctx, jobID)
	if errors.Is(err, core.ErrNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}

	return a.SpecialistID != nil, nil
}
