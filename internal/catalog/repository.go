// AngelaMos | 2026
// repository.go

package catalog

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"

	"github.com/reclutahq/recluta-backend/internal/core"
)

type Repository interface {
	Create(ctx context.Context, entry *PricingEntry) error
	GetByID(ctx context.Context, id string) (*PricingEntry, error)
	Update(ctx context.Context, entry *PricingEntry) error
	Delete(ctx context.Context, id string) error
	List(ctx context.Context) ([]PricingEntry, error)
	FindMatch(
		ctx context.Context,
		profile, seniority, workMode, location string,
	) (*PricingEntry, error)
	ReferencingJobs(ctx context.Context, entry *PricingEntry) ([]JobRef, error)
}

type repository struct {
	db core.DBTX
}

func NewRepository(db core.DBTX) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, entry *PricingEntry) error {
	query := `
		INSERT INTO pricing_entries
			(id, profile, seniority, work_mode, location, credits,
			 min_salary, is_active)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING created_at, updated_at`

	err := r.db.GetContext(ctx, entry, query,
		entry.ID,
		entry.Profile,
		entry.Seniority,
		entry.WorkMode,
		entry.Location,
		entry.Credits,
		entry.MinSalary,
		entry.IsActive,
	)
	if err != nil {
		if isDuplicateKeyError(err) {
			return fmt.Errorf("create pricing entry: %w", core.ErrDuplicateKey)
		}
		return fmt.Errorf("create pricing entry: %w", err)
	}

	return nil
}

func (r *repository) GetByID(
	ctx context.Context,
	id string,
) (*PricingEntry, error) {
	query := `
		SELECT id, profile, seniority, work_mode, location, credits,
		       min_salary, is_active, created_at, updated_at
		FROM pricing_entries
		WHERE id = $1`

	var entry PricingEntry
	err := r.db.GetContext(ctx, &entry, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("get pricing entry: %w", core.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get pricing entry: %w", err)
	}

	return &entry, nil
}

func (r *repository) Update(ctx context.Context, entry *PricingEntry) error {
	query := `
		UPDATE pricing_entries
		SET credits = $2, min_salary = $3, is_active = $4, updated_at = NOW()
		WHERE id = $1
		RETURNING updated_at`

	err := r.db.GetContext(ctx, &entry.UpdatedAt, query,
		entry.ID,
		entry.Credits,
		entry.MinSalary,
		entry.IsActive,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("update pricing entry: %w", core.ErrNotFound)
	}
	if err != nil {
		return fmt.Errorf("update pricing entry: %w", err)
	}

	return nil
}

func (r *repository) Delete(ctx context.Context, id string) error {
	result, err := r.db.ExecContext(
		ctx,
		`DELETE FROM pricing_entries WHERE id = $1`,
		id,
	)
	if err != nil {
		return fmt.Errorf("delete pricing entry: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete pricing entry: %w", err)
	}

	if rows == 0 {
		return fmt.Errorf("delete pricing entry: %w", core.ErrNotFound)
	}

	return nil
}

func (r *repository) List(ctx context.Context) ([]PricingEntry, error) {
	query := `
		SELECT id, profile, seniority, work_mode, location, credits,
		       min_salary, is_active, created_at, updated_at
		FROM pricing_entries
		ORDER BY profile, seniority, work_mode, location NULLS LAST`

	var entries []PricingEntry
	if err := r.db.SelectContext(ctx, &entries, query); err != nil {
		return nil, fmt.Errorf("list pricing entries: %w", err)
	}

	return entries, nil
}

// FindMatch returns the most specific active entry for the tuple: an exact
// location match wins over the location-less entry.
func (r *repository) FindMatch(
	ctx context.Context,
	profile, seniority, workMode, location string,
) (*PricingEntry, error) {
	query := `
		SELECT id, profile, seniority, work_mode, location, credits,
		       min_salary, is_active, created_at, updated_at
		FROM pricing_entries
		WHERE profile = $1 AND seniority = $2 AND work_mode = $3
		  AND is_active
		  AND (location = $4 OR location IS NULL)
		ORDER BY location NULLS LAST
		LIMIT 1`

	var entry PricingEntry
	err := r.db.GetContext(ctx, &entry, query,
		profile, seniority, workMode, location)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("find pricing entry: %w", core.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("find pricing entry: %w", err)
	}

	return &entry, nil
}

// ReferencingJobs lists open jobs that price against the entry. A
// location-bound entry only matches jobs in that location. The
// location-less fallback entry matches any open job on the tuple unless a
// more specific active entry covers that job's location instead.
func (r *repository) ReferencingJobs(
	ctx context.Context,
	entry *PricingEntry,
) ([]JobRef, error) {
	var refs []JobRef
	var err error

	if entry.Location != nil {
		query := `
			SELECT id, title, status
			FROM jobs
			WHERE profile = $1 AND seniority = $2 AND work_mode = $3
			  AND location = $4
			  AND status IN ('draft', 'active', 'paused')
			ORDER BY created_at`

		err = r.db.SelectContext(ctx, &refs, query,
			entry.Profile, entry.Seniority, entry.WorkMode, *entry.Location)
	} else {
		query := `
			SELECT j.id, j.title, j.status
			FROM jobs j
			WHERE j.profile = $1 AND j.seniority = $2 AND j.work_mode = $3
			  AND j.status IN ('draft', 'active', 'paused')
			  AND NOT EXISTS (
				SELECT 1
				FROM pricing_entries p
				WHERE p.profile = $1 AND p.seniority = $2
				  AND p.work_mode = $3
				  AND p.location = j.location
				  AND p.is_active
				  AND p.id <> $4
			  )
			ORDER BY j.created_at`

		err = r.db.SelectContext(ctx, &refs, query,
			entry.Profile, entry.Seniority, entry.WorkMode, entry.ID)
	}
	if err != nil {
		return nil, fmt.Errorf("list referencing jobs: %w", err)
	}

	return refs, nil
}

func isDuplicateKeyError(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23505"
	}
	return false
}
