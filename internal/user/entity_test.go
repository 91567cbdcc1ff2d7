// AngelaMos | 2026
// entity_test.go

package user

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRoleValid(t *testing.T) {
	for _, r := range []Role{
		RoleAdmin, RoleCompany, RoleRecruiter,
		RoleSpecialist, RoleCandidate, RoleUser,
	} {
		assert.True(t, r.Valid(), "expected %s valid", r)
	}

	assert.False(t, Role("superuser").Valid())
	assert.False(t, Role("").Valid())
}

func TestParseRole(t *testing.T) {
	r, ok := ParseRole("recruiter")
	assert.True(t, ok)
	assert.Equal(t, RoleRecruiter, r)

	_, ok = ParseRole("owner")
	assert.False(t, ok)
}
