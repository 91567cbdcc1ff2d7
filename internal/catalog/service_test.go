// AngelaMos | 2026
// service_test.go

package catalog

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/reclutahq/recluta-backend/internal/core"
)

// fakeJob is the slice of the jobs table the delete guard inspects.
type fakeJob struct {
	ID        string
	Title     string
	Status    string
	Profile   string
	Seniority string
	WorkMode  string
	Location  string
}

type fakeRepository struct {
	entries map[string]*PricingEntry
	jobs    []fakeJob
	deleted []string
}

func newFakeRepository() *fakeRepository {
	return &fakeRepository{entries: make(map[string]*PricingEntry)}
}

func (f *fakeRepository) Create(_ context.Context, entry *PricingEntry) error {
	f.entries[entry.ID] = entry
	return nil
}

func (f *fakeRepository) GetByID(
	_ context.Context,
	id string,
) (*PricingEntry, error) {
	entry, ok := f.entries[id]
	if !ok {
		return nil, fmt.Errorf("get pricing entry: %w", core.ErrNotFound)
	}
	return entry, nil
}

func (f *fakeRepository) Update(_ context.Context, entry *PricingEntry) error {
	f.entries[entry.ID] = entry
	return nil
}

func (f *fakeRepository) Delete(_ context.Context, id string) error {
	delete(f.entries, id)
	f.deleted = append(f.deleted, id)
	return nil
}

func (f *fakeRepository) List(_ context.Context) ([]PricingEntry, error) {
	out := make([]PricingEntry, 0, len(f.entries))
	for _, e := range f.entries {
		out = append(out, *e)
	}
	return out, nil
}

func (f *fakeRepository) FindMatch(
	_ context.Context,
	profile, seniority, workMode, location string,
) (*PricingEntry, error) {
	var fallback *PricingEntry
	for _, e := range f.entries {
		if !e.IsActive || e.Profile != profile ||
			e.Seniority != seniority || e.WorkMode != workMode {
			continue
		}
		if e.Location != nil && *e.Location == location {
			return e, nil
		}
		if e.Location == nil {
			fallback = e
		}
	}
	if fallback != nil {
		return fallback, nil
	}
	return nil, fmt.Errorf("find pricing entry: %w", core.ErrNotFound)
}

// ReferencingJobs applies the same scoping the SQL implementation does: a
// located entry only sees jobs in its location, the location-less entry
// skips jobs covered by a more specific active entry.
func (f *fakeRepository) ReferencingJobs(
	_ context.Context,
	entry *PricingEntry,
) ([]JobRef, error) {
	var refs []JobRef
	for _, j := range f.jobs {
		if j.Profile != entry.Profile || j.Seniority != entry.Seniority ||
			j.WorkMode != entry.WorkMode {
			continue
		}
		if j.Status != "draft" && j.Status != "active" && j.Status != "paused" {
			continue
		}
		if entry.Location != nil {
			if j.Location != *entry.Location {
				continue
			}
		} else if f.coveredBySpecificEntry(entry, j) {
			continue
		}
		refs = append(refs, JobRef{ID: j.ID, Title: j.Title, Status: j.Status})
	}
	return refs, nil
}

func (f *fakeRepository) coveredBySpecificEntry(
	entry *PricingEntry,
	j fakeJob,
) bool {
	for _, e := range f.entries {
		if e.ID == entry.ID || !e.IsActive || e.Location == nil {
			continue
		}
		if e.Profile == j.Profile && e.Seniority == j.Seniority &&
			e.WorkMode == j.WorkMode && *e.Location == j.Location {
			return true
		}
	}
	return false
}

func TestResolveCost(t *testing.T) {
	ctx := context.Background()

	t.Run("matching entry wins", func(t *testing.T) {
		repo := newFakeRepository()
		minSalary := 30000
		repo.entries["e1"] = &PricingEntry{
			ID:        "e1",
			Profile:   "backend",
			Seniority: "senior",
			WorkMode:  "remote",
			Credits:   8,
			MinSalary: &minSalary,
			IsActive:  true,
		}

		svc := NewService(repo, 5)
		cost, err := svc.ResolveCost(ctx, "backend", "senior", "remote", "Monterrey")
		require.NoError(t, err)
		assert.Equal(t, 8, cost.Credits)
		require.NotNil(t, cost.MinSalary)
		assert.Equal(t, 30000, *cost.MinSalary)
	})

	t.Run("missing entry falls back to default", func(t *testing.T) {
		svc := NewService(newFakeRepository(), 5)

		cost, err := svc.ResolveCost(ctx, "design", "junior", "onsite", "")
		require.NoError(t, err)
		assert.Equal(t, 5, cost.Credits)
		assert.Nil(t, cost.MinSalary)
	})

	t.Run("inactive entry is invisible", func(t *testing.T) {
		repo := newFakeRepository()
		repo.entries["e1"] = &PricingEntry{
			ID:        "e1",
			Profile:   "backend",
			Seniority: "senior",
			WorkMode:  "remote",
			Credits:   8,
			IsActive:  false,
		}

		svc := NewService(repo, 5)
		cost, err := svc.ResolveCost(ctx, "backend", "senior", "remote", "")
		require.NoError(t, err)
		assert.Equal(t, 5, cost.Credits)
	})
}

func TestDeleteEntry(t *testing.T) {
	ctx := context.Background()

	entry := &PricingEntry{
		ID:        "e1",
		Profile:   "backend",
		Seniority: "senior",
		WorkMode:  "remote",
		Credits:   8,
		IsActive:  true,
	}

	backendJob := func(id, status, location string) fakeJob {
		return fakeJob{
			ID:        id,
			Title:     "Backend Dev",
			Status:    status,
			Profile:   "backend",
			Seniority: "senior",
			WorkMode:  "remote",
			Location:  location,
		}
	}

	t.Run("blocked while jobs reference the tuple", func(t *testing.T) {
		repo := newFakeRepository()
		repo.entries["e1"] = entry
		repo.jobs = []fakeJob{backendJob("j1", "active", "Monterrey")}

		svc := NewService(repo, 5)
		err := svc.DeleteEntry(ctx, "e1")

		var appErr *core.AppError
		require.True(t, errors.As(err, &appErr))
		assert.Equal(t, "CONFLICT", appErr.Code)
		assert.Empty(t, repo.deleted)
	})

	t.Run("located entry ignores jobs elsewhere", func(t *testing.T) {
		repo := newFakeRepository()
		location := "Monterrey"
		repo.entries["e2"] = &PricingEntry{
			ID:        "e2",
			Profile:   "backend",
			Seniority: "senior",
			WorkMode:  "remote",
			Location:  &location,
			Credits:   10,
			IsActive:  true,
		}
		repo.jobs = []fakeJob{backendJob("j1", "active", "Guadalajara")}

		svc := NewService(repo, 5)
		require.NoError(t, svc.DeleteEntry(ctx, "e2"))
		assert.Equal(t, []string{"e2"}, repo.deleted)
	})

	t.Run("fallback entry skips jobs priced by a located entry", func(t *testing.T) {
		repo := newFakeRepository()
		location := "Monterrey"
		repo.entries["e1"] = entry
		repo.entries["e2"] = &PricingEntry{
			ID:        "e2",
			Profile:   "backend",
			Seniority: "senior",
			WorkMode:  "remote",
			Location:  &location,
			Credits:   10,
			IsActive:  true,
		}
		repo.jobs = []fakeJob{backendJob("j1", "active", "Monterrey")}

		svc := NewService(repo, 5)
		require.NoError(t, svc.DeleteEntry(ctx, "e1"))
		assert.Equal(t, []string{"e1"}, repo.deleted)
	})

	t.Run("fallback entry still guards uncovered locations", func(t *testing.T) {
		repo := newFakeRepository()
		repo.entries["e1"] = entry
		repo.jobs = []fakeJob{backendJob("j1", "draft", "Guadalajara")}

		svc := NewService(repo, 5)
		err := svc.DeleteEntry(ctx, "e1")

		var appErr *core.AppError
		require.True(t, errors.As(err, &appErr))
		assert.Equal(t, "CONFLICT", appErr.Code)
	})

	t.Run("deletes when unreferenced", func(t *testing.T) {
		repo := newFakeRepository()
		repo.entries["e1"] = entry

		svc := NewService(repo, 5)
		require.NoError(t, svc.DeleteEntry(ctx, "e1"))
		assert.Equal(t, []string{"e1"}, repo.deleted)
	})

	t.Run("missing entry", func(t *testing.T) {
		svc := NewService(newFakeRepository(), 5)
		assert.ErrorIs(t, svc.DeleteEntry(ctx, "missing"), core.ErrNotFound)
	})
}
