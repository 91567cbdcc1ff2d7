// AngelaMos | 2026
// repository.go

package application

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jmoiron/sqlx"

	"github.com/reclutahq/recluta-backend/internal/core"
)

const applicationColumns = `
	id, job_id, candidate_name, candidate_email, candidate_phone, status,
	reviewed_at, follow_up_date, created_at, updated_at`

type Repository interface {
	Create(ctx context.Context, a *Application) error
	GetByID(ctx context.Context, id string) (*Application, error)
	ListByJob(
		ctx context.Context,
		jobID string,
		statuses []Status,
		limit, offset int,
	) ([]Application, int, error)

	// TransitionCAS applies the status change only if the row still holds
	// the expected status. A zero row count means another actor moved the
	// application first.
	TransitionCAS(
		ctx context.Context,
		id string,
		from, to Status,
		reviewedAt, followUpDate *time.Time,
	) error

	// AcceptAndCloseJob commits the accept and the close of a
	// close_on_accept job as one write, so a failure between them can
	// never leave an accepted application on an open job.
	AcceptAndCloseJob(
		ctx context.Context,
		id string,
		from Status,
		reviewedAt *time.Time,
		jobID string,
	) error
}

type repository struct {
	db *sqlx.DB
}

func NewRepository(db *sqlx.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, a *Application) error {
	query := `
		INSERT INTO applications
			(id, job_id, candidate_name, candidate_email, candidate_phone,
			 status)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING created_at, updated_at`

	err := r.db.QueryRowxContext(ctx, query,
		a.ID,
		a.JobID,
		a.CandidateName,
		a.CandidateEmail,
		a.CandidatePhone,
		a.Status,
	).Scan(&a.CreatedAt, &a.UpdatedAt)
	if isDuplicateKeyError(err) {
		return fmt.Errorf(
			"candidate already applied to this job: %w",
			core.ErrDuplicateKey,
		)
	}
	if err != nil {
		return fmt.Errorf("create application: %w", err)
	}

	return nil
}

func (r *repository) GetByID(
	ctx context.Context,
	id string,
) (*Application, error) {
	query := `SELECT` + applicationColumns + ` FROM applications WHERE id = $1`

	var a Application
	err := r.db.GetContext(ctx, &a, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("get application: %w", core.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get application: %w", err)
	}

	return &a, nil
}

func (r *repository) ListByJob(
	ctx context.Context,
	jobID string,
	statuses []Status,
	limit, offset int,
) ([]Application, int, error) {
	where := "job_id = ?"
	args := []any{jobID}

	if len(statuses) > 0 {
		where += " AND status IN (?)"
		args = append(args, statuses)
	}

	countQuery, countArgs, err := sqlx.In(
		"SELECT COUNT(*) FROM applications WHERE "+where,
		args...,
	)
	if err != nil {
		return nil, 0, fmt.Errorf("count applications: %w", err)
	}

	var total int
	err = r.db.GetContext(ctx, &total, r.db.Rebind(countQuery), countArgs...)
	if err != nil {
		return nil, 0, fmt.Errorf("count applications: %w", err)
	}

	listQuery, listArgs, err := sqlx.In(
		"SELECT "+applicationColumns+
			" FROM applications WHERE "+where+
			" ORDER BY created_at DESC LIMIT ? OFFSET ?",
		append(args, limit, offset)...,
	)
	if err != nil {
		return nil, 0, fmt.Errorf("list applications: %w", err)
	}

	var apps []Application
	err = r.db.SelectContext(ctx, &apps, r.db.Rebind(listQuery), listArgs...)
	if err != nil {
		return nil, 0, fmt.Errorf("list applications: %w", err)
	}

	return apps, total, nil
}

func (r *repository) TransitionCAS(
	ctx context.Context,
	id string,
	from, to Status,
	reviewedAt, followUpDate *time.Time,
) error {
	return transitionCAS(ctx, r.db, id, from, to, reviewedAt, followUpDate)
}

func (r *repository) AcceptAndCloseJob(
	ctx context.Context,
	id string,
	from Status,
	reviewedAt *time.Time,
	jobID string,
) error {
	return core.InTx(ctx, r.db, func(tx *sqlx.Tx) error {
		err := transitionCAS(ctx, tx, id, from, StatusAccepted, reviewedAt, nil)
		if err != nil {
			return err
		}

		_, err = tx.ExecContext(ctx, `
			UPDATE jobs
			SET status = 'closed', closed_reason = 'success',
			    updated_at = NOW()
			WHERE id = $1 AND close_on_accept AND status <> 'closed'`,
			jobID,
		)
		if err != nil {
			return fmt.Errorf("close job on accept: %w", err)
		}

		return nil
	})
}

func transitionCAS(
	ctx context.Context,
	db sqlx.ExtContext,
	id string,
	from, to Status,
	reviewedAt, followUpDate *time.Time,
) error {
	query := `
		UPDATE applications
		SET status = $3,
		    reviewed_at = COALESCE(reviewed_at, $4),
		    follow_up_date = COALESCE($5, follow_up_date),
		    updated_at = NOW()
		WHERE id = $1 AND status = $2`

	result, err := db.ExecContext(ctx, query,
		id, from, to, reviewedAt, followUpDate,
	)
	if err != nil {
		return fmt.Errorf("transition application: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("transition application: %w", err)
	}

	if rows == 0 {
		return fmt.Errorf(
			"application changed concurrently: %w",
			core.ErrConflict,
		)
	}

	return nil
}

func isDuplicateKeyError(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23505"
	}
	return false
}
