// AngelaMos | 2026
// entity.go

package catalog

import (
	"time"
)

type PricingEntry struct {
	ID        string    `db:"id"`
	Profile   string    `db:"profile"`
	Seniority string    `db:"seniority"`
	WorkMode  string    `db:"work_mode"`
	Location  *string   `db:"location"`
	Credits   int       `db:"credits"`
	MinSalary *int      `db:"min_salary"`
	IsActive  bool      `db:"is_active"`
	CreatedAt time.Time `db:"created_at"`
	UpdatedAt time.Time `db:"updated_at"`
}

// Cost is the resolved price of publishing a job. MinSalary, when present,
// is a floor the job's offered salary must meet at creation time.
type Cost struct {
	Credits   int
	MinSalary *int
}

// JobRef identifies a job that references a pricing tuple. Returned in the
// conflict payload when a deletion is blocked.
type JobRef struct {
	ID     string `db:"id"     json:"id"`
	Title  string `db:"title"  json:"title"`
	Status string `db:"status" json:"status"`
}
