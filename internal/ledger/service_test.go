// AngelaMos | 2026
// service_test.go

package ledger

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

// fakeRepository keeps balances in memory and applies the same invariant
// checks the SQL implementation enforces.
type fakeRepository struct {
	balances map[string]int
	applied  []CreditTransaction
}

func newFakeRepository(balances map[string]int) *fakeRepository {
	return &fakeRepository{balances: balances}
}

func (f *fakeRepository) Apply(
	_ context.Context,
	userID string,
	amount int,
	txType TransactionType,
	description string,
	jobID *string,
) (*CreditTransaction, error) {
	balance, ok := f.balances[userID]
	if !ok {
		return nil, fmt.Errorf("lock balance: %w", core.ErrNotFound)
	}

	newBalance := balance + amount
	if newBalance < 0 {
		return nil, fmt.Errorf(
			"apply debit: %w",
			core.InsufficientCreditsError(-amount, balance),
		)
	}

	f.balances[userID] = newBalance
	record := CreditTransaction{
		UserID:        userID,
		Type:          txType,
		Amount:        amount,
		BalanceBefore: balance,
		BalanceAfter:  newBalance,
		JobID:         jobID,
		Description:   description,
	}
	f.applied = append(f.applied, record)
	return &record, nil
}

func (f *fakeRepository) ApplyTx(
	ctx context.Context,
	_ *sqlx.Tx,
	userID string,
	amount int,
	txType TransactionType,
	description string,
	jobID *string,
) (*CreditTransaction, error) {
	return f.Apply(ctx, userID, amount, txType, description, jobID)
}

func (f *fakeRepository) Balance(_ context.Context, userID string) (int, error) {
	balance, ok := f.balances[userID]
	if !ok {
		return 0, fmt.Errorf("get balance: %w", core.ErrNotFound)
	}
	return balance, nil
}

func (f *fakeRepository) ListByUser(
	_ context.Context,
	userID string,
	_, _ int,
) ([]CreditTransaction, int, error) {
	var out []CreditTransaction
	for _, t := range f.applied {
		if t.UserID == userID {
			out = append(out, t)
		}
	}
	return out, len(out), nil
}

func newTestService(balances map[string]int) (*Service, *fakeRepository) {
	repo := newFakeRepository(balances)
	dispatcher := notify.NewLogDispatcher(slog.Default())
	return NewService(repo, policy.New(), dispatcher), repo
}

func TestDebit(t *testing.T) {
	ctx := context.Background()

	t.Run("charges and records spend", func(t *testing.T) {
		svc, repo := newTestService(map[string]int{"u1": 10})

		jobID := "job-1"
		balance, err := svc.Debit(ctx, "u1", 3, "publication", &jobID)
		require.NoError(t, err)
		assert.Equal(t, 7, balance)

		require.Len(t, repo.applied, 1)
		record := repo.applied[0]
		assert.Equal(t, TypeSpend, record.Type)
		assert.Equal(t, -3, record.Amount)
		assert.Equal(t, 10, record.BalanceBefore)
		assert.Equal(t, 7, record.BalanceAfter)
		assert.True(t, record.Consistent())
	})

	t.Run("insufficient balance leaves ledger untouched", func(t *testing.T) {
		svc, repo := newTestService(map[string]int{"u1": 2})

		_, err := svc.Debit(ctx, "u1", 5, "publication", nil)
		assert.ErrorIs(t, err, core.ErrInsufficientCredits)
		assert.Equal(t, 2, repo.balances["u1"])
		assert.Empty(t, repo.applied)

		// The refusal names the actual shortfall, not placeholder zeros.
		var appErr *core.AppError
		require.ErrorAs(t, err, &appErr)
		assert.Equal(t, "INSUFFICIENT_CREDITS", appErr.Code)
		assert.Equal(t, 5, appErr.Details["required"])
		assert.Equal(t, 2, appErr.Details["balance"])
	})

	t.Run("rejects non-positive amounts", func(t *testing.T) {
		svc, repo := newTestService(map[string]int{"u1": 10})

		for _, amount := range []int{0, -5} {
			_, err := svc.Debit(ctx, "u1", amount, "publication", nil)
			assert.ErrorIs(t, err, core.ErrInvalidAmount)
		}
		assert.Empty(t, repo.applied)
	})

	t.Run("unknown user", func(t *testing.T) {
		svc, _ := newTestService(map[string]int{})

		_, err := svc.Debit(ctx, "missing", 1, "publication", nil)
		assert.ErrorIs(t, err, core.ErrNotFound)
	})
}

func TestCredit(t *testing.T) {
	ctx := context.Background()

	t.Run("adds and records purchase", func(t *testing.T) {
		svc, repo := newTestService(map[string]int{"u1": 1})

		balance, err := svc.Credit(ctx, "u1", 9, "credit purchase")
		require.NoError(t, err)
		assert.Equal(t, 10, balance)
		assert.Equal(t, TypePurchase, repo.applied[0].Type)
		assert.True(t, repo.applied[0].Consistent())
	})

	t.Run("rejects non-positive amounts", func(t *testing.T) {
		svc, _ := newTestService(map[string]int{"u1": 1})

		_, err := svc.Credit(ctx, "u1", 0, "credit purchase")
		assert.ErrorIs(t, err, core.ErrInvalidAmount)
	})
}

func TestGrant(t *testing.T) {
	ctx := context.Background()
	admin := policy.Principal{UserID: "admin-1", Role: user.RoleAdmin}
	company := policy.Principal{UserID: "c1", Role: user.RoleCompany}

	t.Run("admin grants to anyone", func(t *testing.T) {
		svc, _ := newTestService(map[string]int{"u1": 0})

		balance, err := svc.Grant(ctx, admin, "u1", 20, "welcome pack")
		require.NoError(t, err)
		assert.Equal(t, 20, balance)
	})

	t.Run("non-admin cannot grant to others", func(t *testing.T) {
		svc, repo := newTestService(map[string]int{"u1": 0})

		_, err := svc.Grant(ctx, company, "u1", 20, "nope")
		assert.ErrorIs(t, err, core.ErrForbidden)
		assert.Empty(t, repo.applied)
	})
}

func TestTransactionsPaging(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService(map[string]int{"u1": 100})

	for i := 0; i < 3; i++ {
		_, err := svc.Debit(ctx, "u1", 1, "publication", nil)
		require.NoError(t, err)
	}

	transactions, total, err := svc.Transactions(ctx, "u1", 0, -1)
	require.NoError(t, err)
	assert.Equal(t, 3, total)
	assert.Len(t, transactions, 3)
}
