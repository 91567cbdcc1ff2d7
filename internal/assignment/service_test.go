// AngelaMos | 2026
// service_test.go

package assignment

import (
	"context"
	"fmt"
	"log/slog"
	"testing"

	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/reclutahq/recluta-backend/internal/core"
	"github.com/reclutahq/recluta-backend/internal/notify"
	"github.com/reclutahq/recluta-backend/internal/policy"
	"github.com/reclutahq/recluta-backend/internal/user"
)

type fakeRepository struct {
	byID map[string]*JobAssignment
}

func newFakeRepository(assignments ...*JobAssignment) *fakeRepository {
	byID := make(map[string]*JobAssignment, len(assignments))
	for _, a := range assignments {
		byID[a.ID] = a
	}
	return &fakeRepository{byID: byID}
}

func (f *fakeRepository) Create(_ context.Context, a *JobAssignment) error {
	f.byID[a.ID] = a
	return nil
}

func (f *fakeRepository) GetByID(_ context.Context, id string) (*JobAssignment, error) {
	a, ok := f.byID[id]
	if !ok {
		return nil, fmt.Errorf("get assignment: %w", core.ErrNotFound)
	}
	copied := *a
	return &copied, nil
}

func (f *fakeRepository) GetByJobID(_ context.Context, jobID string) (*JobAssignment, error) {
	for _, a := range f.byID {
		if a.JobID == jobID {
			copied := *a
			return &copied, nil
		}
	}
	return nil, fmt.Errorf("get assignment: %w", core.ErrNotFound)
}

func (f *fakeRepository) UpdateAssignees(_ context.Context, a *JobAssignment) error {
	f.byID[a.ID] = a
	return nil
}

func (f *fakeRepository) UpdateNotes(_ context.Context, a *JobAssignment) error {
	f.byID[a.ID] = a
	return nil
}

func (f *fakeRepository) UpdateStatuses(_ context.Context, a *JobAssignment) error {
	f.byID[a.ID] = a
	return nil
}

func (f *fakeRepository) GetByIDForUpdate(
	ctx context.Context,
	_ *sqlx.Tx,
	id string,
) (*JobAssignment, error) {
	return f.GetByID(ctx, id)
}

func (f *fakeRepository) UpdateBatchesTx(
	_ context.Context,
	_ *sqlx.Tx,
	a *JobAssignment,
) error {
	f.byID[a.ID] = a
	return nil
}

func strPtr(s string) *string { return &s }

func newReviewService(repo Repository) *Service {
	dispatcher := notify.NewLogDispatcher(slog.Default())
	return NewService(repo, nil, policy.New(), dispatcher, nil, 45)
}

func TestStartReview(t *testing.T) {
	ctx := context.Background()
	recruiter := policy.Principal{UserID: "r1", Role: user.RoleRecruiter}
	specialist := policy.Principal{UserID: "s1", Role: user.RoleSpecialist}

	pending := func() *JobAssignment {
		return &JobAssignment{
			ID:               "a1",
			JobID:            "job-1",
			RecruiterID:      strPtr("r1"),
			SpecialistID:     strPtr("s1"),
			RecruiterStatus:  RecruiterPending,
			SpecialistStatus: SpecialistPending,
		}
	}

	t.Run("recruiter moves pending to reviewing", func(t *testing.T) {
		svc := newReviewService(newFakeRepository(pending()))

		a, err := svc.StartReview(ctx, recruiter, "a1", user.RoleRecruiter)
		require.NoError(t, err)
		assert.Equal(t, RecruiterReviewing, a.RecruiterStatus)
		assert.Equal(t, SpecialistPending, a.SpecialistStatus)
	})

	t.Run("specialist moves pending to evaluating", func(t *testing.T) {
		svc := newReviewService(newFakeRepository(pending()))

		a, err := svc.StartReview(ctx, specialist, "a1", user.RoleSpecialist)
		require.NoError(t, err)
		assert.Equal(t, SpecialistEvaluating, a.SpecialistStatus)
	})

	t.Run("refusal names the reachable statuses", func(t *testing.T) {
		started := pending()
		started.RecruiterStatus = RecruiterReviewing
		svc := newReviewService(newFakeRepository(started))

		_, err := svc.StartReview(ctx, recruiter, "a1", user.RoleRecruiter)
		require.ErrorIs(t, err, core.ErrInvalidTransition)

		var appErr *core.AppError
		require.ErrorAs(t, err, &appErr)
		assert.Equal(t, "reviewing", appErr.Details["from"])
		assert.Equal(t,
			[]string{string(RecruiterSentToSpecialist)},
			appErr.Details["allowed"],
		)
	})

	t.Run("exhausted pipeline reports an empty allowed set", func(t *testing.T) {
		done := pending()
		done.SpecialistStatus = SpecialistSentToCompany
		svc := newReviewService(newFakeRepository(done))

		_, err := svc.StartReview(ctx, specialist, "a1", user.RoleSpecialist)
		require.ErrorIs(t, err, core.ErrInvalidTransition)

		var appErr *core.AppError
		require.ErrorAs(t, err, &appErr)
		allowed, ok := appErr.Details["allowed"].([]string)
		require.True(t, ok)
		assert.NotNil(t, allowed)
		assert.Empty(t, allowed)
	})

	t.Run("unassigned recruiter is refused", func(t *testing.T) {
		svc := newReviewService(newFakeRepository(pending()))
		other := policy.Principal{UserID: "r2", Role: user.RoleRecruiter}

		_, err := svc.StartReview(ctx, other, "a1", user.RoleRecruiter)
		assert.ErrorIs(t, err, core.ErrForbidden)
	})
}
