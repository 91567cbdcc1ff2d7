// AngelaMos | 2026
// service.go

package catalog

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/reclutahq/recluta-backend/internal/core"
)

type Service struct {
	repo           Repository
	defaultCredits int
}

func NewService(repo Repository, defaultCredits int) *Service {
	return &Service{
		repo:           repo,
		defaultCredits: defaultCredits,
	}
}

// ResolveCost prices a job posting. A missing catalog entry is not an
// error: publication must never be blocked by catalog incompleteness, so
// the system default cost applies with no salary floor.
func (s *Service) ResolveCost(
	ctx context.Context,
	profile, seniority, workMode, location string,
) (Cost, error) {
	entry, err := s.repo.FindMatch(ctx, profile, seniority, workMode, location)
	if errors.Is(err, core.ErrNotFound) {
		return Cost{Credits: s.defaultCredits}, nil
	}
	if err != nil {
		return Cost{}, err
	}

	return Cost{Credits: entry.Credits, MinSalary: entry.MinSalary}, nil
}

func (s *Service) CreateEntry(
	ctx context.Context,
	req CreateEntryRequest,
) (*PricingEntry, error) {
	entry := &PricingEntry{
		ID:        uuid.New().String(),
		Profile:   req.Profile,
		Seniority: req.Seniority,
		WorkMode:  req.WorkMode,
		Location:  req.Location,
		Credits:   req.Credits,
		MinSalary: req.MinSalary,
		IsActive:  true,
	}

	if err := s.repo.Create(ctx, entry); err != nil {
		return nil, err
	}

	return entry, nil
}

func (s *Service) UpdateEntry(
	ctx context.Context,
	id string,
	req UpdateEntryRequest,
) (*PricingEntry, error) {
	entry, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Credits != nil {
		entry.Credits = *req.Credits
	}
	if req.MinSalary != nil {
		entry.MinSalary = req.MinSalary
	}
	if req.IsActive != nil {
		entry.IsActive = *req.IsActive
	}

	if err := s.repo.Update(ctx, entry); err != nil {
		return nil, err
	}

	return entry, nil
}

// DeleteEntry refuses while any draft, active or paused job still prices
// against this entry. Jobs priced by a more specific entry, jobs in other
// locations and closed jobs never block deletion.
func (s *Service) DeleteEntry(ctx context.Context, id string) error {
	entry, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}

	refs, err := s.repo.ReferencingJobs(ctx, entry)
	if err != nil {
		return err
	}

	if len(refs) > 0 {
		return core.ConflictError(
			fmt.Sprintf(
				"pricing entry is referenced by %d job(s)",
				len(refs),
			),
			map[string]any{"jobs": refs},
		)
	}

	return s.repo.Delete(ctx, id)
}

func (s *Service) ListEntries(ctx context.Context) ([]PricingEntry, error) {
	return s.repo.List(ctx)
}
