// AngelaMos | 2026
// repository.go

package job

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/reclutahq/recluta-backend/internal/core"
	"github.com/reclutahq/recluta-backend/internal/ledger"
)

const selectColumns = `
	j.id, j.company_id, j.title, j.description, j.profile, j.seniority,
	j.work_mode, j.location, j.salary, j.status, j.closed_reason,
	j.credit_cost, j.editable_until, j.is_confidential, j.close_on_accept,
	j.created_at, j.updated_at,
	u.company_name AS company_name, u.logo_url AS company_logo`

const fromClause = `
	FROM jobs j
	LEFT JOIN users u ON u.id = j.company_id`

// Charge identifies who pays for a publication. A nil charge publishes
// without touching the ledger.
type Charge struct {
	CompanyID   string
	Description string
}

type Repository interface {
	Create(ctx context.Context, job *Job) error
	GetByID(ctx context.Context, id string) (*Job, error)
	UpdateContent(ctx context.Context, job *Job) error
	UpdateStatus(
		ctx context.Context,
		id string,
		status Status,
		closedReason *ClosedReason,
	) error
	List(ctx context.Context, params ListJobsParams) ([]Job, int, error)

	// Publish captures the price on the job, debits the payer and flips
	// the draft to active in one transaction. A failed debit rolls the
	// whole thing back, leaving the job a draft.
	Publish(
		ctx context.Context,
		id string,
		creditCost int,
		editableUntil time.Time,
		charge *Charge,
	) error
}

type repository struct {
	db     *sqlx.DB
	ledger ledger.Repository
}

func NewRepository(db *sqlx.DB, ledgerRepo ledger.Repository) Repository {
	return &repository{db: db, ledger: ledgerRepo}
}

func (r *repository) Create(ctx context.Context, job *Job) error {
	query := `
		INSERT INTO jobs
			(id, company_id, title, description, profile, seniority,
			 work_mode, location, salary, status, is_confidential,
			 close_on_accept)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		RETURNING credit_cost, created_at, updated_at`

	err := r.db.GetContext(ctx, job, query,
		job.ID,
		job.CompanyID,
		job.Title,
		job.Description,
		job.Profile,
		job.Seniority,
		job.WorkMode,
		job.Location,
		job.Salary,
		job.Status,
		job.IsConfidential,
		job.CloseOnAccept,
	)
	if err != nil {
		return fmt.Errorf("create job: %w", err)
	}

	return nil
}

func (r *repository) GetByID(ctx context.Context, id string) (*Job, error) {
	query := `SELECT` + selectColumns + fromClause + ` WHERE j.id = $1`

	var job Job
	err := r.db.GetContext(ctx, &job, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("get job: %w", core.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get job: %w", err)
	}

	return &job, nil
}

func (r *repository) getByIDTx(
	ctx context.Context,
	tx *sqlx.Tx,
	id string,
) (*Job, error) {
	// FOR UPDATE OF j: the joined users row is locked by the ledger.
	query := `SELECT` + selectColumns + fromClause +
		` WHERE j.id = $1 FOR UPDATE OF j`

	var job Job
	err := tx.GetContext(ctx, &job, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("get job: %w", core.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get job: %w", err)
	}

	return &job, nil
}

func (r *repository) UpdateContent(ctx context.Context, job *Job) error {
	query := `
		UPDATE jobs
		SET title = $2, description = $3, location = $4, salary = $5,
		    is_confidential = $6, close_on_accept = $7, updated_at = NOW()
		WHERE id = $1
		RETURNING updated_at`

	err := r.db.GetContext(ctx, &job.UpdatedAt, query,
		job.ID,
		job.Title,
		job.Description,
		job.Location,
		job.Salary,
		job.IsConfidential,
		job.CloseOnAccept,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("update job: %w", core.ErrNotFound)
	}
	if err != nil {
		return fmt.Errorf("update job: %w", err)
	}

	return nil
}

func (r *repository) UpdateStatus(
	ctx context.Context,
	id string,
	status Status,
	closedReason *ClosedReason,
) error {
	query := `
		UPDATE jobs
		SET status = $2, closed_reason = $3, updated_at = NOW()
		WHERE id = $1`

	result, err := r.db.ExecContext(ctx, query, id, status, closedReason)
	if err != nil {
		return fmt.Errorf("update job status: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("update job status: %w", err)
	}

	if rows == 0 {
		return fmt.Errorf("update job status: %w", core.ErrNotFound)
	}

	return nil
}

func (r *repository) Publish(
	ctx context.Context,
	id string,
	creditCost int,
	editableUntil time.Time,
	charge *Charge,
) error {
	// Serializable: two concurrent publishes of the same draft must not
	// both debit.
	opts := &sql.TxOptions{Isolation: sql.LevelSerializable}
	return core.InTxWithOptions(ctx, r.db, opts, func(tx *sqlx.Tx) error {
		locked, err := r.getByIDTx(ctx, tx, id)
		if err != nil {
			return err
		}
		if locked.Status != StatusDraft {
			return fmt.Errorf("publish: no longer a draft: %w", core.ErrConflict)
		}

		if charge != nil {
			_, err := r.ledger.ApplyTx(
				ctx,
				tx,
				charge.CompanyID,
				-creditCost,
				ledger.TypeSpend,
				charge.Description,
				&id,
			)
			if err != nil {
				return err
			}
		}

		return r.publishTx(ctx, tx, id, creditCost, editableUntil)
	})
}

func (r *repository) publishTx(
	ctx context.Context,
	tx *sqlx.Tx,
	id string,
	creditCost int,
	editableUntil time.Time,
) error {
	query := `
		UPDATE jobs
		SET status = 'active', credit_cost = $2, editable_until = $3,
		    updated_at = NOW()
		WHERE id = $1 AND status = 'draft'`

	result, err := tx.ExecContext(ctx, query, id, creditCost, editableUntil)
	if err != nil {
		return fmt.Errorf("publish job: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("publish job: %w", err)
	}

	if rows == 0 {
		return fmt.Errorf("publish job: no longer a draft: %w", core.ErrConflict)
	}

	return nil
}

func (r *repository) List(
	ctx context.Context,
	params ListJobsParams,
) ([]Job, int, error) {
	params.Normalize()

	var conditions []string
	var args []any
	argIdx := 1

	conditions = append(conditions, "TRUE")

	if params.Status != "" {
		conditions = append(conditions, fmt.Sprintf("j.status = $%d", argIdx))
		args = append(args, params.Status)
		argIdx++
	}

	if params.CompanyID != "" {
		conditions = append(
			conditions,
			fmt.Sprintf("j.company_id = $%d", argIdx),
		)
		args = append(args, params.CompanyID)
		argIdx++
	}

	whereClause := strings.Join(conditions, " AND ")

	countQuery := fmt.Sprintf(
		"SELECT COUNT(*) FROM jobs j WHERE %s",
		whereClause,
	)
	var total int
	if err := r.db.GetContext(ctx, &total, countQuery, args...); err != nil {
		return nil, 0, fmt.Errorf("count jobs: %w", err)
	}

	query := fmt.Sprintf(
		`SELECT %s %s WHERE %s ORDER BY j.created_at DESC LIMIT $%d OFFSET $%d`,
		selectColumns, fromClause, whereClause, argIdx, argIdx+1,
	)

	args = append(args, params.PageSize, params.Offset())

	var jobs []Job
	if err := r.db.SelectContext(ctx, &jobs, query, args...); err != nil {
		return nil, 0, fmt.Errorf("list jobs: %w", err)
	}

	return jobs, total, nil
}
