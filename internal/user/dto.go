// AngelaMos | 2026
// dto.go

package user

import (
	"time"
)

type UpdateUserRequest struct {
	Name        *string `json:"name,omitempty"         validate:"omitempty,min=1,max=100"`
	Phone       *string `json:"phone,omitempty"        validate:"omitempty,max=20"`
	CompanyName *string `json:"company_name,omitempty" validate:"omitempty,min=1,max=150"`
	LogoURL     *string `json:"logo_url,omitempty"     validate:"omitempty,url,max=500"`
}

type UpdateUserRoleRequest struct {
	Role string `json:"role" validate:"required,oneof=user admin company recruiter specialist candidate"`
}

type UserResponse struct {
	ID            string    `json:"id"`
	Email         string    `json:"email"`
	Name          string    `json:"name"`
	Role          string    `json:"role"`
	Phone         string    `json:"phone,omitempty"`
	CompanyName   *string   `json:"company_name,omitempty"`
	RFC           *string   `json:"rfc,omitempty"`
	LogoURL       *string   `json:"logo_url,omitempty"`
	CreditBalance int       `json:"credit_balance"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

type ListUsersParams struct {
	Page     int    `json:"page"`
	PageSize int    `json:"page_size"`
	Search   string `json:"search"`
	Role     string `json:"role"`
}

func (p *ListUsersParams) Normalize() {
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

func (p *ListUsersParams) Offset() int {
	return (p.Page - 1) * p.PageSize
}

func ToUserResponse(u *User) UserResponse {
	return UserResponse{
		ID:            u.ID,
		Email:         u.Email,
		Name:          u.Name,
		Role:          u.Role.String(),
		Phone:         u.Phone,
		CompanyName:   u.CompanyName,
		RFC:           u.RFC,
		LogoURL:       u.LogoURL,
		CreditBalance: u.CreditBalance,
		CreatedAt:     u.CreatedAt,
		UpdatedAt:     u.UpdatedAt,
	}
}

func ToUserResponseList(users []User) []UserResponse {
	responses := make([]UserResponse, 0, len(users))
	for _, u := range users {
		responses = append(responses, ToUserResponse(&u))
	}
	return responses
}
