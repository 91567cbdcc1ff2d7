// AngelaMos | 2026
// dto.go

package assignment

import (
	"time"
)

type AssignRequest struct {
	RecruiterID  *string `json:"recruiter_id,omitempty"  validate:"omitempty,uuid"`
	SpecialistID *string `json:"specialist_id,omitempty" validate:"omitempty,uuid"`
}

type SendBatchRequest struct {
	CandidateIDs []string `json:"candidate_ids" validate:"required,min=1,dive,uuid"`
}

type NotesRequest struct {
	Role  string `json:"role"  validate:"required,oneof=recruiter specialist"`
	Notes string `json:"notes" validate:"required,max=5000"`
}

type StartReviewRequest struct {
	Role string `json:"role" validate:"required,oneof=recruiter specialist"`
}

type AssignmentResponse struct {
	ID               string     `json:"id"`
	JobID            string     `json:"job_id"`
	RecruiterID      *string    `json:"recruiter_id,omitempty"`
	SpecialistID     *string    `json:"specialist_id,omitempty"`
	RecruiterStatus  string     `json:"recruiter_status"`
	SpecialistStatus string     `json:"specialist_status"`
	RecruiterNotes   *string    `json:"recruiter_notes,omitempty"`
	SpecialistNotes  *string    `json:"specialist_notes,omitempty"`
	SentToSpecialist []string   `json:"sent_to_specialist"`
	SentToCompany    []string   `json:"sent_to_company"`
	FollowUpDate     *time.Time `json:"follow_up_date,omitempty"`
	CreatedAt        time.Time  `json:"created_at"`
	UpdatedAt        time.Time  `json:"updated_at"`
}

func ToAssignmentResponse(a *JobAssignment) AssignmentResponse {
	return AssignmentResponse{
		ID:               a.ID,
		JobID:            a.JobID,
		RecruiterID:      a.RecruiterID,
		SpecialistID:     a.SpecialistID,
		RecruiterStatus:  string(a.RecruiterStatus),
		SpecialistStatus: string(a.SpecialistStatus),
		RecruiterNotes:   a.RecruiterNotes,
		SpecialistNotes:  a.SpecialistNotes,
		SentToSpecialist: ParseIDSet(a.SentToSpecialist),
		SentToCompany:    ParseIDSet(a.SentToCompany),
		FollowUpDate:     a.FollowUpDate,
		CreatedAt:        a.CreatedAt,
		UpdatedAt:        a.UpdatedAt,
	}
}
