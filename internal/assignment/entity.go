// AngelaMos | 2026
// entity.go

package assignment

import (
	"strings"
	"time"
)

// RecruiterStatus tracks the recruiter's aggregate progress over their
// candidate batch for one job. It is independent of any single
// application's state.
type RecruiterStatus string

const (
	RecruiterPending          RecruiterStatus = "pending"
	RecruiterReviewing        RecruiterStatus = "reviewing"
	RecruiterSentToSpecialist RecruiterStatus = "sent_to_specialist"
)

func (s RecruiterStatus) Valid() bool {
	switch s {
	case RecruiterPending, RecruiterReviewing, RecruiterSentToSpecialist:
		return true
	}
	return false
}

// recruiterTargets lists where the recruiter sub-pipeline may move next.
func recruiterTargets(s RecruiterStatus) []string {
	switch s {
	case RecruiterPending:
		return []string{string(RecruiterReviewing)}
	case RecruiterReviewing:
		return []string{string(RecruiterSentToSpecialist)}
	default:
		return []string{}
	}
}

// SpecialistStatus is the specialist-side counterpart.
type SpecialistStatus string

const (
	SpecialistPending       SpecialistStatus = "pending"
	SpecialistEvaluating    SpecialistStatus = "evaluating"
	SpecialistSentToCompany SpecialistStatus = "sent_to_company"
)

func (s SpecialistStatus) Valid() bool {
	switch s {
	case SpecialistPending, SpecialistEvaluating, SpecialistSentToCompany:
		return true
	}
	return false
}

func specialistTargets(s SpecialistStatus) []string {
	switch s {
	case SpecialistPending:
		return []string{string(SpecialistEvaluating)}
	case SpecialistEvaluating:
		return []string{string(SpecialistSentToCompany)}
	default:
		return []string{}
	}
}

// JobAssignment pairs a job with at most one recruiter and one specialist
// and records the candidate-id batches handed down the chain. Batches are
// stored as comma-separated ids and only ever grow.
type JobAssignment struct {
	ID               string           `db:"id"`
	JobID            string           `db:"job_id"`
	RecruiterID      *string          `db:"recruiter_id"`
	SpecialistID     *string          `db:"specialist_id"`
	RecruiterStatus  RecruiterStatus  `db:"recruiter_status"`
	SpecialistStatus SpecialistStatus `db:"specialist_status"`
	RecruiterNotes   *string          `db:"recruiter_notes"`
	SpecialistNotes  *string          `db:"specialist_notes"`

	// SentToSpecialist / SentToCompany hold the union of every batch
	// handed off so far, in first-seen order.
	SentToSpecialist string     `db:"sent_to_specialist_ids"`
	SentToCompany    string     `db:"sent_to_company_ids"`
	FollowUpDate     *time.Time `db:"follow_up_date"`

	CreatedAt time.Time `db:"created_at"`
	UpdatedAt time.Time `db:"updated_at"`
}

// ParseIDSet splits a stored batch into ids, preserving order and dropping
// empty segments.
func ParseIDSet(csv string) []string {
	if csv == "" {
		return nil
	}

	parts := strings.Split(csv, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}

// UnionIDSet merges new ids into an existing stored batch. Ids already
// present keep their position; new ids append in the order given. The
// result never loses an id from an earlier hand-off.
func UnionIDSet(existing string, ids []string) string {
	current := ParseIDSet(existing)
	seen := make(map[string]struct{}, len(current))
	for _, id := range current {
		seen[id] = struct{}{}
	}

	for _, id := range ids {
		id = strings.TrimSpace(id)
		if id == "" {
			continue
		}
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		current = append(current, id)
	}

	return strings.Join(current, ",")
}
