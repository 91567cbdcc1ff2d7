// AngelaMos | 2026
// entity.go

package ledger

import (
	"time"
)

// TransactionType is the business reason for a ledger movement.
type TransactionType string

const (
	TypeSpend    TransactionType = "spend"
	TypePurchase TransactionType = "purchase"
)

// CreditTransaction is a single row in the append-only credit ledger.
// Amount is signed: spends are negative, purchases positive. For every row,
// BalanceAfter = BalanceBefore + Amount, and BalanceAfter equals the user's
// balance at the instant the row was committed. Rows are never edited;
// corrections are new offsetting transactions.
type CreditTransaction struct {
	ID            string          `db:"id"`
	UserID        string          `db:"user_id"`
	Type          TransactionType `db:"type"`
	Amount        int             `db:"amount"`
	BalanceBefore int             `db:"balance_before"`
	BalanceAfter  int             `db:"balance_after"`
	JobID         *string         `db:"job_id"`
	Description   string          `db:"description"`
	CreatedAt     time.Time       `db:"created_at"`
}

// Consistent reports whether the row satisfies the ledger invariant.
func (t *CreditTransaction) Consistent() bool {
	return t.BalanceAfter == t.BalanceBefore+t.Amount
}
