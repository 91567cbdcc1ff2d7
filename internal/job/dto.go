// AngelaMos | 2026
// dto.go

package job

import (
	"time"
)

type CreateJobRequest struct {
	Title          string `json:"title"       validate:"required,min=3,max=200"`
	Description    string `json:"description" validate:"required,min=10"`
	Profile        string `json:"profile"     validate:"required,min=1,max=100"`
	Seniority      string `json:"seniority"   validate:"required,min=1,max=50"`
	WorkMode       string `json:"work_mode"   validate:"required,oneof=onsite hybrid remote"`
	Location       string `json:"location"    validate:"required,min=1,max=200"`
	Salary         *int   `json:"salary,omitempty" validate:"omitempty,gt=0"`
	IsConfidential bool   `json:"is_confidential"`
	CloseOnAccept  bool   `json:"close_on_accept"`
}

type UpdateJobRequest struct {
	Title          *string `json:"title,omitempty"       validate:"omitempty,min=3,max=200"`
	Description    *string `json:"description,omitempty" validate:"omitempty,min=10"`
	Location       *string `json:"location,omitempty"    validate:"omitempty,min=1,max=200"`
	Salary         *int    `json:"salary,omitempty"      validate:"omitempty,gt=0"`
	IsConfidential *bool   `json:"is_confidential,omitempty"`
	CloseOnAccept  *bool   `json:"close_on_accept,omitempty"`
}

type ChangeStatusRequest struct {
	Status       string `json:"status"        validate:"required,oneof=active paused closed"`
	ClosedReason string `json:"closed_reason" validate:"omitempty,oneof=success cancelled"`
}

type ListJobsParams struct {
	Page      int
	PageSize  int
	Status    string
	CompanyID string
}

func (p *ListJobsParams) Normalize() {
	if p.Page < 1 {
		p.Page = 1
	}
	if p.PageSize < 1 {
		p.PageSize = 20
	}
	if p.PageSize > 100 {
		p.PageSize = 100
	}
}

func (p *ListJobsParams) Offset() int {
	return (p.Page - 1) * p.PageSize
}

type JobResponse struct {
	ID             string     `json:"id"`
	CompanyID      *string    `json:"company_id,omitempty"`
	CompanyName    *string    `json:"company_name,omitempty"`
	CompanyLogo    *string    `json:"company_logo,omitempty"`
	Title          string     `json:"title"`
	Description    string     `json:"description"`
	Profile        string     `json:"profile"`
	Seniority      string     `json:"seniority"`
	WorkMode       string     `json:"work_mode"`
	Location       string     `json:"location"`
	Salary         *int       `json:"salary,omitempty"`
	Status         string     `json:"status"`
	ClosedReason   *string    `json:"closed_reason,omitempty"`
	CreditCost     int        `json:"credit_cost"`
	EditableUntil  *time.Time `json:"editable_until,omitempty"`
	IsConfidential bool       `json:"is_confidential"`
	CloseOnAccept  bool       `json:"close_on_accept"`
	CreatedAt      time.Time  `json:"created_at"`
	UpdatedAt      time.Time  `json:"updated_at"`
}

func ToJobResponse(j *Job) JobResponse {
	var closedReason *string
	if j.ClosedReason != nil {
		s := string(*j.ClosedReason)
		closedReason = &s
	}

	return JobResponse{
		ID:             j.ID,
		CompanyID:      j.CompanyID,
		CompanyName:    j.CompanyName,
		CompanyLogo:    j.CompanyLogo,
		Title:          j.Title,
		Description:    j.Description,
		Profile:        j.Profile,
		Seniority:      j.Seniority,
		WorkMode:       j.WorkMode,
		Location:       j.Location,
		Salary:         j.Salary,
		Status:         string(j.Status),
		ClosedReason:   closedReason,
		CreditCost:     j.CreditCost,
		EditableUntil:  j.EditableUntil,
		IsConfidential: j.IsConfidential,
		CloseOnAccept:  j.CloseOnAccept,
		CreatedAt:      j.CreatedAt,
		UpdatedAt:      j.UpdatedAt,
	}
}

func ToJobResponseList(jobs []Job) []JobResponse {
	responses := make([]JobResponse, 0, len(jobs))
	for i := range jobs {
		responses = append(responses, ToJobResponse(&jobs[i]))
	}
	return responses
}
