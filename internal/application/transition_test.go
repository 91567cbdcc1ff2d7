// AngelaMos | 2026
// transition_test.go

package application

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/reclutahq/recluta-backend/internal/user"
)

func TestCanTransition(t *testing.T) {
	tests := []struct {
		name    string
		from    Status
		to      Status
		role    user.Role
		allowed bool
	}{
		{"recruiter starts review", StatusPending, StatusReviewing, user.RoleRecruiter, true},
		{"recruiter discards pending", StatusPending, StatusDiscarded, user.RoleRecruiter, true},
		{"recruiter reviews injected", StatusInjectedByAdmin, StatusReviewing, user.RoleRecruiter, true},
		{"recruiter sends to specialist", StatusReviewing, StatusSentToSpecialist, user.RoleRecruiter, true},
		{"recruiter reactivates discard", StatusDiscarded, StatusReviewing, user.RoleRecruiter, true},
		{"specialist reactivates discard", StatusDiscarded, StatusEvaluating, user.RoleSpecialist, true},
		{"specialist starts evaluating", StatusSentToSpecialist, StatusEvaluating, user.RoleSpecialist, true},
		{"specialist discards", StatusEvaluating, StatusDiscarded, user.RoleSpecialist, true},
		{"specialist hands to company", StatusEvaluating, StatusSentToCompany, user.RoleSpecialist, true},
		{"company marks interested", StatusSentToCompany, StatusCompanyInterested, user.RoleCompany, true},
		{"company accepts directly", StatusSentToCompany, StatusAccepted, user.RoleCompany, true},
		{"company rejects", StatusSentToCompany, StatusRejected, user.RoleCompany, true},
		{"company interviews", StatusCompanyInterested, StatusInterviewed, user.RoleCompany, true},
		{"company accepts after interview", StatusInterviewed, StatusAccepted, user.RoleCompany, true},
		{"company recovers rejection", StatusRejected, StatusCompanyInterested, user.RoleCompany, true},
		{"company accepts after rejection", StatusRejected, StatusAccepted, user.RoleCompany, true},

		{"admin may take recruiter edge", StatusPending, StatusReviewing, user.RoleAdmin, true},
		{"admin may take specialist edge", StatusEvaluating, StatusSentToCompany, user.RoleAdmin, true},
		{"admin may take company edge", StatusInterviewed, StatusAccepted, user.RoleAdmin, true},

		{"company cannot act upstream", StatusPending, StatusReviewing, user.RoleCompany, false},
		{"recruiter cannot hand to company", StatusEvaluating, StatusSentToCompany, user.RoleRecruiter, false},
		{"specialist cannot accept", StatusSentToCompany, StatusAccepted, user.RoleSpecialist, false},
		{"recruiter cannot recover rejection", StatusRejected, StatusCompanyInterested, user.RoleRecruiter, false},
		{"no skipping to company", StatusReviewing, StatusSentToCompany, user.RoleRecruiter, false},
		{"rejected cannot re-interview directly", StatusRejected, StatusInterviewed, user.RoleCompany, false},

		{"accepted is terminal for company", StatusAccepted, StatusRejected, user.RoleCompany, false},
		{"accepted is terminal even for admin", StatusAccepted, StatusReviewing, user.RoleAdmin, false},
		{"archived has no edges", StatusArchived, StatusReviewing, user.RoleAdmin, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.allowed, CanTransition(tt.from, tt.to, tt.role))
		})
	}
}

func TestAllowedTargets(t *testing.T) {
	t.Run("role sees only its own edges", func(t *testing.T) {
		assert.ElementsMatch(t,
			[]string{"reviewing", "discarded"},
			AllowedTargets(StatusPending, user.RoleRecruiter),
		)
		assert.Empty(t, AllowedTargets(StatusPending, user.RoleCompany))
	})

	t.Run("admin sees every edge", func(t *testing.T) {
		assert.ElementsMatch(t,
			[]string{"reviewing", "evaluating"},
			AllowedTargets(StatusDiscarded, user.RoleAdmin),
		)
	})

	t.Run("terminal state has no targets", func(t *testing.T) {
		assert.Empty(t, AllowedTargets(StatusAccepted, user.RoleAdmin))
	})
}

func TestStatusTerminal(t *testing.T) {
	assert.True(t, StatusAccepted.Terminal())
	assert.False(t, StatusRejected.Terminal())
	assert.False(t, StatusDiscarded.Terminal())
}

func TestCompanyVisible(t *testing.T) {
	visible := []Status{
		StatusSentToCompany,
		StatusCompanyInterested,
		StatusInterviewed,
		StatusRejected,
		StatusAccepted,
	}
	hidden := []Status{
		StatusPending,
		StatusInjectedByAdmin,
		StatusReviewing,
		StatusSentToSpecialist,
		StatusEvaluating,
		StatusDiscarded,
		StatusArchived,
	}

	for _, s := range visible {
		assert.True(t, companyVisible(s), "expected %s visible", s)
	}
	for _, s := range hidden {
		assert.False(t, companyVisible(s), "expected %s hidden", s)
	}
}

func TestStampsReview(t *testing.T) {
	assert.False(t, stampsReview(StatusPending))
	assert.False(t, stampsReview(StatusInjectedByAdmin))
	assert.True(t, stampsReview(StatusReviewing))
	assert.True(t, stampsReview(StatusDiscarded))
	assert.True(t, stampsReview(StatusAccepted))
}
