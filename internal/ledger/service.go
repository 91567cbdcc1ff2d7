// AngelaMos | 2026
// service.go

package ledger

import (
	"context"
	"fmt"

	"github.com/reclutahq/recluta-backend/internal/core"
	"github.com/reclutahq/recluta-backend/internal/notify"
	"github.com/reclutahq/recluta-backend/internal/policy"
)

type Service struct {
	repo       Repository
	policy     *policy.Policy
	dispatcher notify.Dispatcher
}

func NewService(
	repo Repository,
	pol *policy.Policy,
	dispatcher notify.Dispatcher,
) *Service {
	return &Service{
		repo:       repo,
		policy:     pol,
		dispatcher: dispatcher,
	}
}

// Debit charges credits from a user, recording a spend transaction. The
// amount is the positive number of credits to remove.
func (s *Service) Debit(
	ctx context.Context,
	userID string,
	amount int,
	description string,
	jobID *string,
) (int, error) {
	if amount <= 0 {
		return 0, fmt.Errorf(
			"debit amount must be positive, got %d: %w",
			amount,
			core.ErrInvalidAmount,
		)
	}

	record, err := s.repo.Apply(
		ctx,
		userID,
		-amount,
		TypeSpend,
		description,
		jobID,
	)
	if err != nil {
		return 0, err
	}

	return record.BalanceAfter, nil
}

// Credit adds credits to a user, recording a purchase transaction.
func (s *Service) Credit(
	ctx context.Context,
	userID string,
	amount int,
	description string,
) (int, error) {
	if amount <= 0 {
		return 0, fmt.Errorf(
			"credit amount must be positive, got %d: %w",
			amount,
			core.ErrInvalidAmount,
		)
	}

	record, err := s.repo.Apply(
		ctx,
		userID,
		amount,
		TypePurchase,
		description,
		nil,
	)
	if err != nil {
		return 0, err
	}

	return record.BalanceAfter, nil
}

// Grant is an admin-initiated credit adjustment. Corrections never rewrite
// history; they land as new offsetting transactions.
func (s *Service) Grant(
	ctx context.Context,
	actor policy.Principal,
	targetUserID string,
	amount int,
	description string,
) (int, error) {
	if err := s.policy.CanAdjustCredits(actor, targetUserID); err != nil {
		return 0, err
	}

	newBalance, err := s.Credit(ctx, targetUserID, amount, description)
	if err != nil {
		return 0, err
	}

	s.dispatcher.Notify(ctx, notify.Event{
		UserID:  targetUserID,
		Type:    notify.EventCreditsGranted,
		Message: fmt.Sprintf("%d credits were added to your account", amount),
	})

	return newBalance, nil
}

// Purchase records the internal ledger effect of a completed payment. The
// gateway interaction itself happens elsewhere.
func (s *Service) Purchase(
	ctx context.Context,
	userID string,
	amount int,
) (int, error) {
	return s.Credit(ctx, userID, amount, "credit purchase")
}

func (s *Service) Balance(ctx context.Context, userID string) (int, error) {
	return s.repo.Balance(ctx, userID)
}

func (s *Service) Transactions(
	ctx context.Context,
	userID string,
	page, pageSize int,
) ([]CreditTransaction, int, error) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 || pageSize > 100 {
		pageSize = 20
	}

	return s.repo.ListByUser(ctx, userID, pageSize, (page-1)*pageSize)
}
