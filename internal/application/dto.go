// AngelaMos | 2026
// dto.go

package application

import (
	"time"

	"github.com/reclutahq/recluta-backend/internal/job"
)

type ApplyRequest struct {
	Name  string  `json:"name"  validate:"required,min=2,max=200"`
	Email string  `json:"email" validate:"required,email"`
	Phone *string `json:"phone,omitempty" validate:"omitempty,min=7,max=20"`
}

type TransitionRequest struct {
	Status string `json:"status" validate:"required"`
}

type ApplicationResponse struct {
	ID             string     `json:"id"`
	JobID          string     `json:"job_id"`
	CandidateName  string     `json:"candidate_name"`
	CandidateEmail string     `json:"candidate_email"`
	CandidatePhone *string    `json:"candidate_phone,omitempty"`
	Status         string     `json:"status"`
	ReviewedAt     *time.Time `json:"reviewed_at,omitempty"`
	FollowUpDate   *time.Time `json:"follow_up_date,omitempty"`
	CreatedAt      time.Time  `json:"created_at"`
	UpdatedAt      time.Time  `json:"updated_at"`

	// Job carries the sanitized posting on viewer-facing reads.
	Job *job.JobResponse `json:"job,omitempty"`
}

func ToApplicationResponse(a *Application, j *job.Job) ApplicationResponse {
	resp := ApplicationResponse{
		ID:             a.ID,
		JobID:          a.JobID,
		CandidateName:  a.CandidateName,
		CandidateEmail: a.CandidateEmail,
		CandidatePhone: a.CandidatePhone,
		Status:         string(a.Status),
		ReviewedAt:     a.ReviewedAt,
		FollowUpDate:   a.FollowUpDate,
		CreatedAt:      a.CreatedAt,
		UpdatedAt:      a.UpdatedAt,
	}

	if j != nil {
		jr := job.ToJobResponse(j)
		resp.Job = &jr
	}

	return resp
}

func ToApplicationResponseList(
	apps []Application,
	j *job.Job,
) []ApplicationResponse {
	responses := make([]ApplicationResponse, 0, len(apps))
	for i := range apps {
		responses = append(responses, ToApplicationResponse(&apps[i], j))
	}
	return responses
}
