// AngelaMos | 2026
// dto.go

package ledger

import (
	"time"
)

type PurchaseRequest struct {
	Amount int `json:"amount" validate:"required,gt=0"`
}

type GrantRequest struct {
	UserID      string `json:"user_id"     validate:"required,uuid"`
	Amount      int    `json:"amount"      validate:"required,gt=0"`
	Description string `json:"description" validate:"required,min=1,max=255"`
}

type BalanceResponse struct {
	Balance int `json:"balance"`
}

type TransactionResponse struct {
	ID            string    `json:"id"`
	Type          string    `json:"type"`
	Amount        int       `json:"amount"`
	BalanceBefore int       `json:"balance_before"`
	BalanceAfter  int       `json:"balance_after"`
	JobID         *string   `json:"job_id,omitempty"`
	Description   string    `json:"description"`
	CreatedAt     time.Time `json:"created_at"`
}

func ToTransactionResponse(t *CreditTransaction) TransactionResponse {
	return TransactionResponse{
		ID:            t.ID,
		Type:          string(t.Type),
		Amount:        t.Amount,
		BalanceBefore: t.BalanceBefore,
		BalanceAfter:  t.BalanceAfter,
		JobID:         t.JobID,
		Description:   t.Description,
		CreatedAt:     t.CreatedAt,
	}
}

func ToTransactionResponseList(
	transactions []CreditTransaction,
) []TransactionResponse {
	responses := make([]TransactionResponse, 0, len(transactions))
	for i := range transactions {
		responses = append(responses, ToTransactionResponse(&transactions[i]))
	}
	return responses
}
