// AngelaMos | 2026
// entity.go

package user

import (
	"time"
)

type User struct {
	ID            string     `db:"id"`
	Email         string     `db:"email"`
	PasswordHash  string     `db:"password_hash"`
	Name          string     `db:"name"`
	Role          Role       `db:"role"`
	Phone         string     `db:"phone"`
	CompanyName   *string    `db:"company_name"`
	RFC           *string    `db:"rfc"`
	LogoURL       *string    `db:"logo_url"`
	CreditBalance int        `db:"credit_balance"`
	TokenVersion  int        `db:"token_version"`
	CreatedAt     time.Time  `db:"created_at"`
	UpdatedAt     time.Time  `db:"updated_at"`
	DeletedAt     *time.Time `db:"deleted_at"`
}

func (u *User) IsDeleted() bool {
	return u.DeletedAt != nil
}

func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

// Role is the closed set of actors in the marketplace. Authorization
// decisions key off this enumeration, never off ad hoc string comparisons.
type Role string

const (
	RoleAdmin      Role = "admin"
	RoleCompany    Role = "company"
	RoleRecruiter  Role = "recruiter"
	RoleSpecialist Role = "specialist"
	RoleCandidate  Role = "candidate"
	RoleUser       Role = "user"
)

var allRoles = map[Role]struct{}{
	RoleAdmin:      {},
	RoleCompany:    {},
	RoleRecruiter:  {},
	RoleSpecialist: {},
	RoleCandidate:  {},
	RoleUser:       {},
}

func (r Role) Valid() bool {
	_, ok := allRoles[r]
	return ok
}

func (r Role) String() string {
	return string(r)
}

func ParseRole(s string) (Role, bool) {
	r := Role(s)
	return r, r.Valid()
}
