// AngelaMos | 2026
// repository.go

package assignment

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/reclutahq/recluta-backend/internal/core"
)

const assignmentColumns = `
	id, job_id, recruiter_id, specialist_id, recruiter_status,
	specialist_status, recruiter_notes, specialist_notes,
	sent_to_specialist_ids, sent_to_company_ids, follow_up_date,
	created_at, updated_at`

type Repository interface {
	Create(ctx context.Context, a *JobAssignment) error
	GetByID(ctx context.Context, id string) (*JobAssignment, error)
	GetByJobID(ctx context.Context, jobID string) (*JobAssignment, error)
	UpdateAssignees(ctx context.Context, a *JobAssignment) error
	UpdateNotes(ctx context.Context, a *JobAssignment) error
	UpdateStatuses(ctx context.Context, a *JobAssignment) error

	// GetByIDForUpdate locks the assignment row inside a caller-owned
	// transaction so a batch union cannot drop ids added concurrently.
	GetByIDForUpdate(
		ctx context.Context,
		tx *sqlx.Tx,
		id string,
	) (*JobAssignment, error)
	UpdateBatchesTx(ctx context.Context, tx *sqlx.Tx, a *JobAssignment) error
}

type repository struct {
	db *sqlx.DB
}

func NewRepository(db *sqlx.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, a *JobAssignment) error {
	query := `
		INSERT INTO job_assignments
			(id, job_id, recruiter_id, specialist_id, recruiter_status,
			 specialist_status)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING created_at, updated_at`

	err := r.db.QueryRowxContext(ctx, query,
		a.ID,
		a.JobID,
		a.RecruiterID,
		a.SpecialistID,
		a.RecruiterStatus,
		a.SpecialistStatus,
	).Scan(&a.CreatedAt, &a.UpdatedAt)
	if err != nil {
		return fmt.Errorf("create assignment: %w", err)
	}

	return nil
}

func (r *repository) GetByID(
	ctx context.Context,
	id string,
) (*JobAssignment, error) {
	query := `SELECT` + assignmentColumns + ` FROM job_assignments WHERE id = $1`

	var a JobAssignment
	err := r.db.GetContext(ctx, &a, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("get assignment: %w", core.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get assignment: %w", err)
	}

	return &a, nil
}

func (r *repository) GetByJobID(
	ctx context.Context,
	jobID string,
) (*JobAssignment, error) {
	query := `SELECT` + assignmentColumns +
		` FROM job_assignments WHERE job_id = $1`

	var a JobAssignment
	err := r.db.GetContext(ctx, &a, query, jobID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("get assignment: %w", core.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get assignment: %w", err)
	}

	return &a, nil
}

func (r *repository) GetByIDForUpdate(
	ctx context.Context,
	tx *sqlx.Tx,
	id string,
) (*JobAssignment, error) {
	query := `SELECT` + assignmentColumns +
		` FROM job_assignments WHERE id = $1 FOR UPDATE`

	var a JobAssignment
	err := tx.GetContext(ctx, &a, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("get assignment: %w", core.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get assignment: %w", err)
	}

	return &a, nil
}

func (r *repository) UpdateAssignees(
	ctx context.Context,
	a *JobAssignment,
) error {
	query := `
		UPDATE job_assignments
		SET recruiter_id = $2, specialist_id = $3, updated_at = NOW()
		WHERE id = $1
		RETURNING updated_at`

	err := r.db.GetContext(ctx, &a.UpdatedAt, query,
		a.ID,
		a.RecruiterID,
		a.SpecialistID,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("update assignees: %w", core.ErrNotFound)
	}
	if err != nil {
		return fmt.Errorf("update assignees: %w", err)
	}

	return nil
}

func (r *repository) UpdateNotes(ctx context.Context, a *JobAssignment) error {
	query := `
		UPDATE job_assignments
		SET recruiter_notes = $2, specialist_notes = $3, updated_at = NOW()
		WHERE id = $1
		RETURNING updated_at`

	err := r.db.GetContext(ctx, &a.UpdatedAt, query,
		a.ID,
		a.RecruiterNotes,
		a.SpecialistNotes,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("update notes: %w", core.ErrNotFound)
	}
	if err != nil {
		return fmt.Errorf("update notes: %w", err)
	}

	return nil
}

func (r *repository) UpdateStatuses(
	ctx context.Context,
	a *JobAssignment,
) error {
	query := `
		UPDATE job_assignments
		SET recruiter_status = $2, specialist_status = $3, updated_at = NOW()
		WHERE id = $1
		RETURNING updated_at`

	err := r.db.GetContext(ctx, &a.UpdatedAt, query,
		a.ID,
		a.RecruiterStatus,
		a.SpecialistStatus,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("update statuses: %w", core.ErrNotFound)
	}
	if err != nil {
		return fmt.Errorf("update statuses: %w", err)
	}

	return nil
}

func (r *repository) UpdateBatchesTx(
	ctx context.Context,
	tx *sqlx.Tx,
	a *JobAssignment,
) error {
	query := `
		UPDATE job_assignments
		SET recruiter_status = $2, specialist_status = $3,
		    sent_to_specialist_ids = $4, sent_to_company_ids = $5,
		    follow_up_date = $6, updated_at = NOW()
		WHERE id = $1
		RETURNING updated_at`

	err := tx.GetContext(ctx, &a.UpdatedAt, query,
		a.ID,
		a.RecruiterStatus,
		a.SpecialistStatus,
		a.SentToSpecialist,
		a.SentToCompany,
		a.FollowUpDate,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("update batches: %w", core.ErrNotFound)
	}
	if err != nil {
		return fmt.Errorf("update batches: %w", err)
	}

	return nil
}
