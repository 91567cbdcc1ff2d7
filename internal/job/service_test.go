// AngelaMos | 2026
// service_test.go

package job

import (
	"context"
	"fmt"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/reclutahq/recluta-backend/internal/catalog"
	"github.com/reclutahq/recluta-backend/internal/core"
	"github.com/reclutahq/recluta-backend/internal/notify"
	"github.com/reclutahq/recluta-backend/internal/policy"
	"github.com/reclutahq/recluta-backend/internal/user"
)

// fakeRepository keeps jobs and company balances in memory. Publish applies
// the same all-or-nothing rule as the SQL transaction: a refused debit
// leaves the job a draft.
type fakeRepository struct {
	jobs     map[string]*Job
	balances map[string]int
	charges  []Charge
}

func newTestRepository() *fakeRepository {
	return &fakeRepository{
		jobs:     make(map[string]*Job),
		balances: make(map[string]int),
	}
}

func (f *fakeRepository) Create(_ context.Context, j *Job) error {
	f.jobs[j.ID] = j
	return nil
}

func (f *fakeRepository) GetByID(_ context.Context, id string) (*Job, error) {
	j, ok := f.jobs[id]
	if !ok {
		return nil, fmt.Errorf("get job: %w", core.ErrNotFound)
	}
	copied := *j
	return &copied, nil
}

func (f *fakeRepository) UpdateContent(_ context.Context, j *Job) error {
	f.jobs[j.ID] = j
	return nil
}

func (f *fakeRepository) UpdateStatus(
	_ context.Context,
	id string,
	status Status,
	closedReason *ClosedReason,
) error {
	j, ok := f.jobs[id]
	if !ok {
		return fmt.Errorf("update job status: %w", core.ErrNotFound)
	}
	j.Status = status
	j.ClosedReason = closedReason
	return nil
}

func (f *fakeRepository) List(
	_ context.Context,
	_ ListJobsParams,
) ([]Job, int, error) {
	return nil, 0, nil
}

func (f *fakeRepository) Publish(
	_ context.Context,
	id string,
	creditCost int,
	editableUntil time.Time,
	charge *Charge,
) error {
	j, ok := f.jobs[id]
	if !ok {
		return fmt.Errorf("get job: %w", core.ErrNotFound)
	}
	if j.Status != StatusDraft {
		return fmt.Errorf("publish: no longer a draft: %w", core.ErrConflict)
	}

	if charge != nil {
		balance := f.balances[charge.CompanyID]
		if balance < creditCost {
			return fmt.Errorf(
				"apply debit: %w",
				core.InsufficientCreditsError(creditCost, balance),
			)
		}
		f.balances[charge.CompanyID] = balance - creditCost
		f.charges = append(f.charges, *charge)
	}

	j.Status = StatusActive
	j.CreditCost = creditCost
	j.EditableUntil = &editableUntil
	return nil
}

// fakeCosts answers every tuple with one fixed price.
type fakeCosts struct {
	cost catalog.Cost
}

func (f *fakeCosts) ResolveCost(
	_ context.Context,
	_, _, _, _ string,
) (catalog.Cost, error) {
	return f.cost, nil
}

func newPublishService(repo Repository, cost catalog.Cost) *Service {
	dispatcher := notify.NewLogDispatcher(slog.Default())
	return NewService(repo, &fakeCosts{cost: cost}, policy.New(), dispatcher, 4*time.Hour)
}

func draftJob(id, companyID string) *Job {
	owner := companyID
	salary := 50000
	return &Job{
		ID:        id,
		CompanyID: &owner,
		Title:     "Backend Developer",
		Profile:   "backend",
		Seniority: "senior",
		WorkMode:  "remote",
		Location:  "Monterrey",
		Salary:    &salary,
		Status:    StatusDraft,
	}
}

func TestPublish(t *testing.T) {
	ctx := context.Background()
	company := policy.Principal{UserID: "c1", Role: user.RoleCompany}
	admin := policy.Principal{UserID: "adm", Role: user.RoleAdmin}

	t.Run("company pays and the draft goes live", func(t *testing.T) {
		repo := newTestRepository()
		repo.jobs["j1"] = draftJob("j1", "c1")
		repo.balances["c1"] = 10
		svc := newPublishService(repo, catalog.Cost{Credits: 8})

		published, err := svc.Publish(ctx, company, "j1")
		require.NoError(t, err)
		assert.Equal(t, StatusActive, published.Status)
		assert.Equal(t, 8, published.CreditCost)
		require.NotNil(t, published.EditableUntil)

		assert.Equal(t, 2, repo.balances["c1"])
		require.Len(t, repo.charges, 1)
		assert.Equal(t, "c1", repo.charges[0].CompanyID)
	})

	t.Run("insufficient balance leaves the draft untouched", func(t *testing.T) {
		repo := newTestRepository()
		repo.jobs["j1"] = draftJob("j1", "c1")
		repo.balances["c1"] = 2
		svc := newPublishService(repo, catalog.Cost{Credits: 5})

		_, err := svc.Publish(ctx, company, "j1")
		require.ErrorIs(t, err, core.ErrInsufficientCredits)

		var appErr *core.AppError
		require.ErrorAs(t, err, &appErr)
		assert.Equal(t, 5, appErr.Details["required"])
		assert.Equal(t, 2, appErr.Details["balance"])

		assert.Equal(t, StatusDraft, repo.jobs["j1"].Status)
		assert.Equal(t, 2, repo.balances["c1"])
		assert.Empty(t, repo.charges)
	})

	t.Run("admin publishes free but the cost is still captured", func(t *testing.T) {
		repo := newTestRepository()
		repo.jobs["j1"] = draftJob("j1", "c1")
		svc := newPublishService(repo, catalog.Cost{Credits: 8})

		published, err := svc.Publish(ctx, admin, "j1")
		require.NoError(t, err)
		assert.Equal(t, StatusActive, published.Status)
		assert.Equal(t, 8, published.CreditCost)

		assert.Empty(t, repo.charges)
		assert.Equal(t, 0, repo.balances["c1"])
	})

	t.Run("only drafts publish", func(t *testing.T) {
		repo := newTestRepository()
		j := draftJob("j1", "c1")
		j.Status = StatusActive
		repo.jobs["j1"] = j
		svc := newPublishService(repo, catalog.Cost{Credits: 8})

		_, err := svc.Publish(ctx, company, "j1")
		assert.ErrorIs(t, err, core.ErrInvalidTransition)
	})

	t.Run("salary below the catalog floor is refused", func(t *testing.T) {
		repo := newTestRepository()
		repo.jobs["j1"] = draftJob("j1", "c1")
		repo.balances["c1"] = 10
		minSalary := 60000
		svc := newPublishService(repo, catalog.Cost{Credits: 8, MinSalary: &minSalary})

		_, err := svc.Publish(ctx, company, "j1")
		assert.ErrorIs(t, err, core.ErrInvalidInput)
		assert.Equal(t, StatusDraft, repo.jobs["j1"].Status)
	})

	t.Run("non-owner cannot publish", func(t *testing.T) {
		repo := newTestRepository()
		repo.jobs["j1"] = draftJob("j1", "c1")
		svc := newPublishService(repo, catalog.Cost{Credits: 8})

		other := policy.Principal{UserID: "c2", Role: user.RoleCompany}
		_, err := svc.Publish(ctx, other, "j1")
		assert.ErrorIs(t, err, core.ErrForbidden)
	})
}
