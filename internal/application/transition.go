// AngelaMos | 2026
// transition.go

package application

import (
	"github.com/reclutahq/recluta-backend/internal/user"
)

// transitionRule names one edge of the pipeline and the roles allowed to
// trigger it. Admins may trigger any edge; the table never needs to list
// them.
type transitionRule struct {
	target Status
	actors []user.Role
}

var (
	recruiterOnly  = []user.Role{user.RoleRecruiter}
	specialistOnly = []user.Role{user.RoleSpecialist}
	companyOnly    = []user.Role{user.RoleCompany}
)

// transitions is the full pipeline, keyed by current status. Reactivation
// out of discarded goes back into whichever actor's active stage, so both
// recruiter and specialist have an edge there. Company rejection is
// recoverable; recruiter/specialist discard is the separate state above.
var transitions = map[Status][]transitionRule{
	StatusPending: {
		{StatusReviewing, recruiterOnly},
		{StatusDiscarded, recruiterOnly},
	},
	StatusInjectedByAdmin: {
		{StatusReviewing, recruiterOnly},
		{StatusDiscarded, recruiterOnly},
	},
	StatusReviewing: {
		{StatusSentToSpecialist, recruiterOnly},
		{StatusDiscarded, recruiterOnly},
	},
	StatusDiscarded: {
		{StatusReviewing, recruiterOnly},
		{StatusEvaluating, specialistOnly},
	},
	StatusSentToSpecialist: {
		{StatusEvaluating, specialistOnly},
		{StatusDiscarded, specialistOnly},
	},
	StatusEvaluating: {
		{StatusSentToCompany, specialistOnly},
		{StatusDiscarded, specialistOnly},
	},
	StatusSentToCompany: {
		{StatusCompanyInterested, companyOnly},
		{StatusAccepted, companyOnly},
		{StatusRejected, companyOnly},
	},
	StatusCompanyInterested: {
		{StatusInterviewed, companyOnly},
		{StatusAccepted, companyOnly},
		{StatusRejected, companyOnly},
	},
	StatusInterviewed: {
		{StatusAccepted, companyOnly},
		{StatusRejected, companyOnly},
	},
	StatusRejected: {
		{StatusCompanyInterested, companyOnly},
		{StatusAccepted, companyOnly},
	},
	StatusAccepted: nil,
	StatusArchived: nil,
}

// CanTransition reports whether role may move an application from one
// status to another. Admins pass wherever any role could.
func CanTransition(from, to Status, role user.Role) bool {
	for _, rule := range transitions[from] {
		if rule.target != to {
			continue
		}
		if role == user.RoleAdmin {
			return true
		}
		for _, actor := range rule.actors {
			if actor == role {
				return true
			}
		}
	}
	return false
}

// AllowedTargets lists the statuses the role could move to from the given
// status, for error reporting.
func AllowedTargets(from Status, role user.Role) []string {
	var out []string
	for _, rule := range transitions[from] {
		if role == user.RoleAdmin {
			out = append(out, string(rule.target))
			continue
		}
		for _, actor := range rule.actors {
			if actor == role {
				out = append(out, string(rule.target))
				break
			}
		}
	}
	return out
}

// stampsReview reports whether entering the status counts as the first
// substantive human decision on the application.
func stampsReview(to Status) bool {
	return to != StatusPending && to != StatusInjectedByAdmin
}
