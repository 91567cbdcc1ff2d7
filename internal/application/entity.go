// AngelaMos | 2026
// entity.go

package application

import (
	"time"
)

type Status string

const (
	StatusPending           Status = "pending"
	StatusInjectedByAdmin   Status = "injected_by_admin"
	StatusReviewing         Status = "reviewing"
	StatusSentToSpecialist  Status = "sent_to_specialist"
	StatusEvaluating        Status = "evaluating"
	StatusSentToCompany     Status = "sent_to_company"
	StatusCompanyInterested Status = "company_interested"
	StatusInterviewed       Status = "interviewed"
	StatusDiscarded         Status = "discarded"
	StatusArchived          Status = "archived"
	StatusRejected          Status = "rejected"
	StatusAccepted          Status = "accepted"
)

func (s Status) Valid() bool {
	switch s {
	case StatusPending, StatusInjectedByAdmin, StatusReviewing,
		StatusSentToSpecialist, StatusEvaluating, StatusSentToCompany,
		StatusCompanyInterested, StatusInterviewed, StatusDiscarded,
		StatusArchived, StatusRejected, StatusAccepted:
		return true
	}
	return false
}

// Terminal reports whether the status has no outgoing transitions for any
// actor. Only accepted qualifies.
func (s Status) Terminal() bool {
	return s == StatusAccepted
}

// Application is one candidate's submission against one job. The candidate
// is identified by contact details, not an account: email, compared
// case-insensitively, de-duplicates submissions per job.
type Application struct {
	ID             string  `db:"id"`
	JobID          string  `db:"job_id"`
	CandidateName  string  `db:"candidate_name"`
	CandidateEmail string  `db:"candidate_email"`
	CandidatePhone *string `db:"candidate_phone"`
	Status         Status  `db:"status"`

	// ReviewedAt stamps the first substantive human decision on the
	// application and never changes afterwards.
	ReviewedAt   *time.Time `db:"reviewed_at"`
	FollowUpDate *time.Time `db:"follow_up_date"`

	CreatedAt time.Time `db:"created_at"`
	UpdatedAt time.Time `db:"updated_at"`
}

// CompanyVisibleStatuses is the exact set of states a company may see for
// its own job's applications. Everything upstream of the company hand-off
// stays invisible to that role even with a direct id.
var CompanyVisibleStatuses = []Status{
	StatusSentToCompany,
	StatusCompanyInterested,
	StatusInterviewed,
	StatusRejected,
	StatusAccepted,
}

func companyVisible(s Status) bool {
	for _, v := range CompanyVisibleStatuses {
		if v == s {
			return true
		}
	}
	return false
}
