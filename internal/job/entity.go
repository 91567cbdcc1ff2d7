// AngelaMos | 2026
// entity.go

package job

import (
	"time"
)

type Status string

const (
	StatusDraft  Status = "draft"
	StatusActive Status = "active"
	StatusPaused Status = "paused"
	StatusClosed Status = "closed"
)

func (s Status) Valid() bool {
	switch s {
	case StatusDraft, StatusActive, StatusPaused, StatusClosed:
		return true
	}
	return false
}

type ClosedReason string

const (
	ClosedSuccess   ClosedReason = "success"
	ClosedCancelled ClosedReason = "cancelled"
)

func (r ClosedReason) Valid() bool {
	return r == ClosedSuccess || r == ClosedCancelled
}

type Job struct {
	ID             string        `db:"id"`
	CompanyID      *string       `db:"company_id"`
	Title          string        `db:"title"`
	Description    string        `db:"description"`
	Profile        string        `db:"profile"`
	Seniority      string        `db:"seniority"`
	WorkMode       string        `db:"work_mode"`
	Location       string        `db:"location"`
	Salary         *int          `db:"salary"`
	Status         Status        `db:"status"`
	ClosedReason   *ClosedReason `db:"closed_reason"`
	CreditCost     int           `db:"credit_cost"`
	EditableUntil  *time.Time    `db:"editable_until"`
	IsConfidential bool          `db:"is_confidential"`
	CloseOnAccept  bool          `db:"close_on_accept"`
	CreatedAt      time.Time     `db:"created_at"`
	UpdatedAt      time.Time     `db:"updated_at"`

	// Joined from the owning company account for read paths. The
	// sanitizer redacts these for confidential jobs.
	CompanyName *string `db:"company_name"`
	CompanyLogo *string `db:"company_logo"`
}

// ContentEditable reports whether content fields may still change. Drafts
// are always editable; published jobs only until the capture window closes.
// Lifecycle (status) changes are not subject to this window.
func (j *Job) ContentEditable(now time.Time) bool {
	if j.Status == StatusDraft {
		return true
	}

	return j.EditableUntil != nil && now.Before(*j.EditableUntil)
}

func (j *Job) IsOwnedBy(userID string) bool {
	return j.CompanyID != nil && *j.CompanyID == userID
}

// statusTransitions is the job's own lifecycle, independent of the
// applications moving underneath it. Publishing (draft -> active) is not
// here: it goes through Publish so the cost capture and debit cannot be
// skipped.
var statusTransitions = map[Status][]Status{
	StatusActive: {StatusPaused, StatusClosed},
	StatusPaused: {StatusActive, StatusClosed},
	StatusClosed: {StatusActive}, // reopen; no re-charge, window not reset
}

func (j *Job) CanTransitionTo(target Status) bool {
	for _, allowed := range statusTransitions[j.Status] {
		if allowed == target {
			return true
		}
	}
	return false
}

func allowedStatusTargets(from Status) []string {
	targets := statusTransitions[from]
	out := make([]string, 0, len(targets))
	for _, t := range targets {
		out = append(out, string(t))
	}
	return out
}
