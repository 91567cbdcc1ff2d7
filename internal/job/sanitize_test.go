// AngelaMos | 2026
// sanitize_test.go

package job

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/reclutahq/recluta-backend/internal/user"
)

func confidentialJob() Job {
	name := "Acme de México"
	logo := "https://cdn.example.com/acme.png"
	owner := "company-1"
	return Job{
		ID:             "job-1",
		CompanyID:      &owner,
		CompanyName:    &name,
		CompanyLogo:    &logo,
		Location:       "Street 123, Monterrey, Nuevo León",
		IsConfidential: true,
	}
}

func TestSanitizeRedactsForOutsiders(t *testing.T) {
	got := Sanitize(confidentialJob(), user.RoleRecruiter, false)

	assert.Equal(t, ConfidentialCompanyName, *got.CompanyName)
	assert.Nil(t, got.CompanyLogo)
	assert.Equal(t, "Monterrey", got.Location)
}

func TestSanitizeSkipsOwnerAndAdmin(t *testing.T) {
	t.Run("owner", func(t *testing.T) {
		got := Sanitize(confidentialJob(), user.RoleCompany, true)
		assert.Equal(t, "Acme de México", *got.CompanyName)
		assert.NotNil(t, got.CompanyLogo)
		assert.Equal(t, "Street 123, Monterrey, Nuevo León", got.Location)
	})

	t.Run("admin", func(t *testing.T) {
		got := Sanitize(confidentialJob(), user.RoleAdmin, false)
		assert.Equal(t, "Acme de México", *got.CompanyName)
	})
}

func TestSanitizeSkipsPublicJobs(t *testing.T) {
	j := confidentialJob()
	j.IsConfidential = false

	got := Sanitize(j, user.RoleCandidate, false)
	assert.Equal(t, "Acme de México", *got.CompanyName)
	assert.Equal(t, "Street 123, Monterrey, Nuevo León", got.Location)
}

func TestSanitizeLocation(t *testing.T) {
	tests := []struct {
		name     string
		location string
		want     string
	}{
		{"street city state", "Street 123, Monterrey, Nuevo León", "Monterrey"},
		{"two segments", "Centro, Guadalajara", "Guadalajara"},
		{"no comma", "Monterrey", FallbackLocation},
		{"empty", "", FallbackLocation},
		{"empty second segment", "Centro, , Jalisco", FallbackLocation},
		{"whitespace trimmed", "Calle 5,  Mérida , Yucatán", "Mérida"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, sanitizeLocation(tt.location))
		})
	}
}

func TestSanitizeIsPure(t *testing.T) {
	original := confidentialJob()
	_ = Sanitize(original, user.RoleRecruiter, false)

	assert.Equal(t, "Acme de México", *original.CompanyName)
	assert.NotNil(t, original.CompanyLogo)
}
