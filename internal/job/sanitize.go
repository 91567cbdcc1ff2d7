// AngelaMos | 2026
// sanitize.go

package job

import (
	"strings"

	"github.com/reclutahq/recluta-backend/internal/user"
)

const (
	// ConfidentialCompanyName replaces the real company identity on
	// confidential postings.
	ConfidentialCompanyName = "Empresa confidencial"

	// FallbackLocation is shown when a confidential location cannot be
	// reduced to a region.
	FallbackLocation = "México"
)

// Sanitize redacts company identity from a confidential job for viewers who
// are neither the owner nor an admin. It is a pure transform applied at
// every read boundary, including job data nested inside application reads.
func Sanitize(j Job, viewerRole user.Role, isOwner bool) Job {
	if !j.IsConfidential || isOwner || viewerRole == user.RoleAdmin {
		return j
	}

	placeholder := ConfidentialCompanyName
	j.CompanyName = &placeholder
	j.CompanyLogo = nil
	j.Location = sanitizeLocation(j.Location)

	return j
}

// sanitizeLocation keeps only the region: the segment after the first comma
// of "street, city, state" style addresses. Anything without that structure
// degrades to the country-level fallback.
func sanitizeLocation(location string) string {
	parts := strings.Split(location, ",")
	if len(parts) < 2 {
		return FallbackLocation
	}

	region := strings.TrimSpace(parts[1])
	if region == "" {
		return FallbackLocation
	}

	return region
}
