// AngelaMos | 2026
// repository.go

package ledger

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/reclutahq/recluta-backend/internal/core"
)

type Repository interface {
	// Apply atomically moves a user's balance by the signed amount and
	// writes the matching ledger row in the same transaction. A negative
	// amount that would drive the balance below zero fails with
	// ErrInsufficientCredits and leaves both the balance and the log
	// untouched.
	Apply(
		ctx context.Context,
		userID string,
		amount int,
		txType TransactionType,
		description string,
		jobID *string,
	) (*CreditTransaction, error)

	// ApplyTx is Apply running inside a caller-owned transaction, for
	// operations that must commit a balance movement together with other
	// writes (publishing a job debits and activates atomically).
	ApplyTx(
		ctx context.Context,
		tx *sqlx.Tx,
		userID string,
		amount int,
		txType TransactionType,
		description string,
		jobID *string,
	) (*CreditTransaction, error)

	Balance(ctx context.Context, userID string) (int, error)
	ListByUser(
		ctx context.Context,
		userID string,
		limit, offset int,
	) ([]CreditTransaction, int, error)
}

type repository struct {
	db *sqlx.DB
}

func NewRepository(db *sqlx.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Apply(
	ctx context.Context,
	userID string,
	amount int,
	txType TransactionType,
	description string,
	jobID *string,
) (*CreditTransaction, error) {
	var record *CreditTransaction

	opts := &sql.TxOptions{Isolation: sql.LevelSerializable}

	err := core.InTxWithOptions(ctx, r.db, opts, func(tx *sqlx.Tx) error {
		var txErr error
		record, txErr = r.ApplyTx(
			ctx,
			tx,
			userID,
			amount,
			txType,
			description,
			jobID,
		)
		return txErr
	})
	if err != nil {
		return nil, err
	}

	return record, nil
}

func (r *repository) ApplyTx(
	ctx context.Context,
	tx *sqlx.Tx,
	userID string,
	amount int,
	txType TransactionType,
	description string,
	jobID *string,
) (*CreditTransaction, error) {
	record := &CreditTransaction{
		ID:          uuid.New().String(),
		UserID:      userID,
		Type:        txType,
		Amount:      amount,
		JobID:       jobID,
		Description: description,
	}

	// Row lock serializes concurrent debits against the same balance:
	// the second publisher observes the post-debit balance here.
	var balance int
	err := tx.GetContext(ctx, &balance,
		`SELECT credit_balance FROM users
		 WHERE id = $1 AND deleted_at IS NULL
		 FOR UPDATE`,
		userID,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("lock balance: %w", core.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("lock balance: %w", err)
	}

	newBalance := balance + amount
	if newBalance < 0 {
		// Carry the actual numbers so the handler reports how short
		// the balance is instead of a bare refusal.
		return nil, fmt.Errorf(
			"apply debit: %w",
			core.InsufficientCreditsError(-amount, balance),
		)
	}

	record.BalanceBefore = balance
	record.BalanceAfter = newBalance

	if _, err := tx.ExecContext(ctx,
		`UPDATE users SET credit_balance = $2, updated_at = NOW()
		 WHERE id = $1`,
		userID, newBalance,
	); err != nil {
		return nil, fmt.Errorf("update balance: %w", err)
	}

	if err := tx.GetContext(ctx, &record.CreatedAt,
		`INSERT INTO credit_transactions
			(id, user_id, type, amount, balance_before, balance_after,
			 job_id, description)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		 RETURNING created_at`,
		record.ID,
		record.UserID,
		record.Type,
		record.Amount,
		record.BalanceBefore,
		record.BalanceAfter,
		record.JobID,
		record.Description,
	); err != nil {
		return nil, fmt.Errorf("insert transaction: %w", err)
	}

	return record, nil
}

func (r *repository) Balance(
	ctx context.Context,
	userID string,
) (int, error) {
	var balance int
	err := r.db.GetContext(ctx, &balance,
		`SELECT credit_balance FROM users
		 WHERE id = $1 AND deleted_at IS NULL`,
		userID,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, fmt.Errorf("get balance: %w", core.ErrNotFound)
	}
	if err != nil {
		return 0, fmt.Errorf("get balance: %w", err)
	}

	return balance, nil
}

func (r *repository) ListByUser(
	ctx context.Context,
	userID string,
	limit, offset int,
) ([]CreditTransaction, int, error) {
	var total int
	err := r.db.GetContext(ctx, &total,
		`SELECT COUNT(*) FROM credit_transactions WHERE user_id = $1`,
		userID,
	)
	if err != nil {
		return nil, 0, fmt.Errorf("count transactions: %w", err)
	}

	var transactions []CreditTransaction
	err = r.db.SelectContext(ctx, &transactions,
		`SELECT id, user_id, type, amount, balance_before, balance_after,
		        job_id, description, created_at
		 FROM credit_transactions
		 WHERE user_id = $1
		 ORDER BY created_at DESC
		 LIMIT $2 OFFSET $3`,
		userID, limit, offset,
	)
	if err != nil {
		return nil, 0, fmt.Errorf("list transactions: %w", err)
	}

	return transactions, total, nil
}
