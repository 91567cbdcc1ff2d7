// AngelaMos | 2026
// policy.go

package policy

import (
	"fmt"

	"github.com/reclutahq/recluta-backend/internal/core"
	"github.com/reclutahq/recluta-backend/internal/user"
)

// Principal is the acting identity as supplied by the authenticator. The
// core trusts it as given and never re-derives role or ownership from it.
type Principal struct {
	UserID string
	Role   user.Role
}

func (p Principal) IsAdmin() bool {
	return p.Role == user.RoleAdmin
}

// Policy is the single place that answers "may this actor do that". Every
// ledger and pipeline operation consults it instead of re-implementing the
// admin special cases at each call site.
type Policy struct{}

func New() *Policy {
	return &Policy{}
}

// BypassesCharge reports whether publishing is free for the actor. Admins
// publish without being debited; the cost is still computed and captured on
// the job.
func (p *Policy) BypassesCharge(actor Principal) bool {
	return actor.IsAdmin()
}

// CanManageJob allows the owning company and admins to mutate a job.
func (p *Policy) CanManageJob(actor Principal, ownerID *string) error {
	if actor.IsAdmin() {
		return nil
	}

	if actor.Role == user.RoleCompany && ownerID != nil &&
		*ownerID == actor.UserID {
		return nil
	}

	return fmt.Errorf("manage job: %w", core.ErrForbidden)
}

// CanAssign restricts recruiter/specialist attachment to admins.
func (p *Policy) CanAssign(actor Principal) error {
	if actor.IsAdmin() {
		return nil
	}
	return fmt.Errorf("assign pipeline roles: %w", core.ErrForbidden)
}

// CanActOnAssignment checks that the actor owns the sub-pipeline they are
// advancing. Admins may act as either role.
func (p *Policy) CanActOnAssignment(
	actor Principal,
	as user.Role,
	assignedID *string,
) error {
	if actor.IsAdmin() {
		return nil
	}

	if actor.Role != as {
		return fmt.Errorf("act on assignment: %w", core.ErrForbidden)
	}

	if assignedID == nil || *assignedID != actor.UserID {
		return fmt.Errorf("act on assignment: not assigned: %w", core.ErrForbidden)
	}

	return nil
}

// CanAdjustCredits restricts manual grants to admins. Purchases credit the
// buyer's own account.
func (p *Policy) CanAdjustCredits(actor Principal, targetUserID string) error {
	if actor.IsAdmin() {
		return nil
	}

	if actor.UserID == targetUserID {
		return nil
	}

	return fmt.Errorf("adjust credits: %w", core.ErrForbidden)
}
