// AngelaMos | 2026
// dto.go

package catalog

import (
	"time"
)

type CreateEntryRequest struct {
	Profile   string  `json:"profile"    validate:"required,min=1,max=100"`
	Seniority string  `json:"seniority"  validate:"required,min=1,max=50"`
	WorkMode  string  `json:"work_mode"  validate:"required,oneof=onsite hybrid remote"`
	Location  *string `json:"location,omitempty"   validate:"omitempty,min=1,max=150"`
	Credits   int     `json:"credits"    validate:"required,gt=0"`
	MinSalary *int    `json:"min_salary,omitempty" validate:"omitempty,gt=0"`
}

type UpdateEntryRequest struct {
	Credits   *int  `json:"credits,omitempty"    validate:"omitempty,gt=0"`
	MinSalary *int  `json:"min_salary,omitempty" validate:"omitempty,gt=0"`
	IsActive  *bool `json:"is_active,omitempty"`
}

type EntryResponse struct {
	ID        string    `json:"id"`
	Profile   string    `json:"profile"`
	Seniority string    `json:"seniority"`
	WorkMode  string    `json:"work_mode"`
	Location  *string   `json:"location,omitempty"`
	Credits   int       `json:"credits"`
	MinSalary *int      `json:"min_salary,omitempty"`
	IsActive  bool      `json:"is_active"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func ToEntryResponse(e *PricingEntry) EntryResponse {
	return EntryResponse{
		ID:        e.ID,
		Profile:   e.Profile,
		Seniority: e.Seniority,
		WorkMode:  e.WorkMode,
		Location:  e.Location,
		Credits:   e.Credits,
		MinSalary: e.MinSalary,
		IsActive:  e.IsActive,
		CreatedAt: e.CreatedAt,
		UpdatedAt: e.UpdatedAt,
	}
}

func ToEntryResponseList(entries []PricingEntry) []EntryResponse {
	responses := make([]EntryResponse, 0, len(entries))
	for i := range entries {
		responses = append(responses, ToEntryResponse(&entries[i]))
	}
	return responses
}
