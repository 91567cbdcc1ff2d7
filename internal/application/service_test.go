// AngelaMos | 2026
// service_test.go

package application

import (
	"context"
	"fmt"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/reclutahq/recluta-backend/internal/assignment"
	"github.com/reclutahq/recluta-backend/internal/core"
	"github.com/reclutahq/recluta-backend/internal/job"
	"github.com/reclutahq/recluta-backend/internal/notify"
	"github.com/reclutahq/recluta-backend/internal/policy"
	"github.com/reclutahq/recluta-backend/internal/user"
)

type fakeRepository struct {
	apps       map[string]*Application
	casCalls   int
	closedJobs []string
}

func newFakeRepository(apps ...*Application) *fakeRepository {
	byID := make(map[string]*Application, len(apps))
	for _, a := range apps {
		byID[a.ID] = a
	}
	return &fakeRepository{apps: byID}
}

func (f *fakeRepository) Create(_ context.Context, a *Application) error {
	f.apps[a.ID] = a
	return nil
}

func (f *fakeRepository) GetByID(_ context.Context, id string) (*Application, error) {
	a, ok := f.apps[id]
	if !ok {
		return nil, fmt.Errorf("get application: %w", core.ErrNotFound)
	}
	copied := *a
	return &copied, nil
}

func (f *fakeRepository) ListByJob(
	_ context.Context,
	jobID string,
	statuses []Status,
	_, _ int,
) ([]Application, int, error) {
	var out []Application
	for _, a := range f.apps {
		if a.JobID != jobID {
			continue
		}
		if statuses != nil && !statusIn(a.Status, statuses) {
			continue
		}
		out = append(out, *a)
	}
	return out, len(out), nil
}

func (f *fakeRepository) TransitionCAS(
	_ context.Context,
	id string,
	from, to Status,
	reviewedAt, followUpDate *time.Time,
) error {
	f.casCalls++
	return f.move(id, from, to, reviewedAt, followUpDate)
}

func (f *fakeRepository) AcceptAndCloseJob(
	_ context.Context,
	id string,
	from Status,
	reviewedAt *time.Time,
	jobID string,
) error {
	if err := f.move(id, from, StatusAccepted, reviewedAt, nil); err != nil {
		return err
	}
	f.closedJobs = append(f.closedJobs, jobID)
	return nil
}

func (f *fakeRepository) move(
	id string,
	from, to Status,
	reviewedAt, followUpDate *time.Time,
) error {
	a, ok := f.apps[id]
	if !ok || a.Status != from {
		return fmt.Errorf("application changed concurrently: %w", core.ErrConflict)
	}
	a.Status = to
	if a.ReviewedAt == nil {
		a.ReviewedAt = reviewedAt
	}
	if followUpDate != nil {
		a.FollowUpDate = followUpDate
	}
	return nil
}

type fakeJobs struct {
	jobs map[string]*job.Job
}

func (f *fakeJobs) Get(_ context.Context, jobID string) (*job.Job, error) {
	j, ok := f.jobs[jobID]
	if !ok {
		return nil, fmt.Errorf("get job: %w", core.ErrNotFound)
	}
	return j, nil
}

func (f *fakeJobs) SanitizeFor(_ *policy.Principal, j job.Job) job.Job {
	return j
}

type fakeAssignments struct {
	assignment *assignment.JobAssignment
}

func (f *fakeAssignments) ForJob(
	_ context.Context,
	_ string,
) (*assignment.JobAssignment, error) {
	if f.assignment == nil {
		return nil, fmt.Errorf("get assignment: %w", core.ErrNotFound)
	}
	return f.assignment, nil
}

func (f *fakeAssignments) SpecialistAssigned(
	_ context.Context,
	_ string,
) (bool, error) {
	return f.assignment != nil && f.assignment.SpecialistID != nil, nil
}

func strPtr(s string) *string { return &s }

type pipelineFixture struct {
	svc  *Service
	repo *fakeRepository
}

func newPipeline(
	a *Application,
	j *job.Job,
	asgn *assignment.JobAssignment,
) pipelineFixture {
	repo := newFakeRepository(a)
	jobs := &fakeJobs{jobs: map[string]*job.Job{j.ID: j}}
	assignments := &fakeAssignments{assignment: asgn}
	dispatcher := notify.NewLogDispatcher(slog.Default())

	svc := NewService(repo, jobs, assignments, policy.New(), dispatcher, 45)
	return pipelineFixture{svc: svc, repo: repo}
}

func activeJob(closeOnAccept bool) *job.Job {
	return &job.Job{
		ID:            "job-1",
		CompanyID:     strPtr("c1"),
		Title:         "Backend Developer",
		Status:        job.StatusActive,
		CloseOnAccept: closeOnAccept,
	}
}

func pipelineApplication(status Status) *Application {
	return &Application{
		ID:             "app-1",
		JobID:          "job-1",
		CandidateName:  "Ana Torres",
		CandidateEmail: "ana@example.com",
		Status:         status,
	}
}

func staffedAssignment(recruiterID, specialistID *string) *assignment.JobAssignment {
	return &assignment.JobAssignment{
		ID:           "a1",
		JobID:        "job-1",
		RecruiterID:  recruiterID,
		SpecialistID: specialistID,
	}
}

func TestTransition(t *testing.T) {
	ctx := context.Background()
	recruiter := policy.Principal{UserID: "r1", Role: user.RoleRecruiter}
	specialist := policy.Principal{UserID: "s1", Role: user.RoleSpecialist}
	company := policy.Principal{UserID: "c1", Role: user.RoleCompany}

	t.Run("recruiter starts the review and it is stamped", func(t *testing.T) {
		fx := newPipeline(
			pipelineApplication(StatusPending),
			activeJob(false),
			staffedAssignment(strPtr("r1"), nil),
		)

		a, err := fx.svc.Transition(ctx, recruiter, "app-1", StatusReviewing)
		require.NoError(t, err)
		assert.Equal(t, StatusReviewing, a.Status)
		assert.NotNil(t, a.ReviewedAt)
	})

	t.Run("handoff requires a specialist on the job", func(t *testing.T) {
		fx := newPipeline(
			pipelineApplication(StatusReviewing),
			activeJob(false),
			staffedAssignment(strPtr("r1"), nil),
		)

		_, err := fx.svc.Transition(ctx, recruiter, "app-1", StatusSentToSpecialist)
		require.ErrorIs(t, err, core.ErrInvalidInput)
		assert.Equal(t, StatusReviewing, fx.repo.apps["app-1"].Status)
		assert.Zero(t, fx.repo.casCalls)
	})

	t.Run("handoff proceeds once a specialist is assigned", func(t *testing.T) {
		fx := newPipeline(
			pipelineApplication(StatusReviewing),
			activeJob(false),
			staffedAssignment(strPtr("r1"), strPtr("s1")),
		)

		a, err := fx.svc.Transition(ctx, recruiter, "app-1", StatusSentToSpecialist)
		require.NoError(t, err)
		assert.Equal(t, StatusSentToSpecialist, a.Status)
	})

	t.Run("missing edge is refused with the allowed set", func(t *testing.T) {
		fx := newPipeline(
			pipelineApplication(StatusSentToCompany),
			activeJob(false),
			staffedAssignment(strPtr("r1"), strPtr("s1")),
		)

		_, err := fx.svc.Transition(ctx, company, "app-1", StatusReviewing)
		require.ErrorIs(t, err, core.ErrInvalidTransition)

		var appErr *core.AppError
		require.ErrorAs(t, err, &appErr)
		assert.Equal(t, string(StatusSentToCompany), appErr.Details["from"])
		assert.NotEmpty(t, appErr.Details["allowed"])
	})

	t.Run("sending to the company stamps the follow-up date", func(t *testing.T) {
		fx := newPipeline(
			pipelineApplication(StatusEvaluating),
			activeJob(false),
			staffedAssignment(strPtr("r1"), strPtr("s1")),
		)

		a, err := fx.svc.Transition(ctx, specialist, "app-1", StatusSentToCompany)
		require.NoError(t, err)
		require.NotNil(t, a.FollowUpDate)
		expected := time.Now().AddDate(0, 0, 45)
		assert.WithinDuration(t, expected, *a.FollowUpDate, time.Minute)
	})

	t.Run("accepting closes a flagged job in the same write", func(t *testing.T) {
		fx := newPipeline(
			pipelineApplication(StatusSentToCompany),
			activeJob(true),
			staffedAssignment(strPtr("r1"), strPtr("s1")),
		)

		a, err := fx.svc.Transition(ctx, company, "app-1", StatusAccepted)
		require.NoError(t, err)
		assert.Equal(t, StatusAccepted, a.Status)
		assert.Equal(t, []string{"job-1"}, fx.repo.closedJobs)
		assert.Zero(t, fx.repo.casCalls)
	})

	t.Run("accepting an unflagged job leaves it open", func(t *testing.T) {
		fx := newPipeline(
			pipelineApplication(StatusSentToCompany),
			activeJob(false),
			staffedAssignment(strPtr("r1"), strPtr("s1")),
		)

		a, err := fx.svc.Transition(ctx, company, "app-1", StatusAccepted)
		require.NoError(t, err)
		assert.Equal(t, StatusAccepted, a.Status)
		assert.Empty(t, fx.repo.closedJobs)
		assert.Equal(t, 1, fx.repo.casCalls)
	})

	t.Run("unassigned recruiter is refused", func(t *testing.T) {
		fx := newPipeline(
			pipelineApplication(StatusPending),
			activeJob(false),
			staffedAssignment(strPtr("r2"), nil),
		)

		_, err := fx.svc.Transition(ctx, recruiter, "app-1", StatusReviewing)
		assert.ErrorIs(t, err, core.ErrForbidden)
	})

	t.Run("other company is refused", func(t *testing.T) {
		fx := newPipeline(
			pipelineApplication(StatusSentToCompany),
			activeJob(false),
			staffedAssignment(strPtr("r1"), strPtr("s1")),
		)

		rival := policy.Principal{UserID: "c2", Role: user.RoleCompany}
		_, err := fx.svc.Transition(ctx, rival, "app-1", StatusAccepted)
		assert.ErrorIs(t, err, core.ErrForbidden)
	})
}
