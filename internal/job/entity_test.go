// AngelaMos | 2026
// entity_test.go

package job

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestContentEditable(t *testing.T) {
	now := time.Now()
	past := now.Add(-time.Hour)
	future := now.Add(time.Hour)

	tests := []struct {
		name          string
		status        Status
		editableUntil *time.Time
		want          bool
	}{
		{"draft always editable", StatusDraft, nil, true},
		{"draft editable even with stale window", StatusDraft, &past, true},
		{"active inside window", StatusActive, &future, true},
		{"active past window", StatusActive, &past, false},
		{"active without window", StatusActive, nil, false},
		{"closed past window", StatusClosed, &past, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			j := Job{Status: tt.status, EditableUntil: tt.editableUntil}
			assert.Equal(t, tt.want, j.ContentEditable(now))
		})
	}
}

func TestCanTransitionTo(t *testing.T) {
	tests := []struct {
		name string
		from Status
		to   Status
		want bool
	}{
		{"active to paused", StatusActive, StatusPaused, true},
		{"active to closed", StatusActive, StatusClosed, true},
		{"paused to active", StatusPaused, StatusActive, true},
		{"paused to closed", StatusPaused, StatusClosed, true},
		{"closed reopens", StatusClosed, StatusActive, true},
		{"closed cannot pause", StatusClosed, StatusPaused, false},
		{"draft cannot activate directly", StatusDraft, StatusActive, false},
		{"active cannot return to draft", StatusActive, StatusDraft, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			j := Job{Status: tt.from}
			assert.Equal(t, tt.want, j.CanTransitionTo(tt.to))
		})
	}
}

func TestIsOwnedBy(t *testing.T) {
	owner := "company-1"
	j := Job{CompanyID: &owner}

	assert.True(t, j.IsOwnedBy("company-1"))
	assert.False(t, j.IsOwnedBy("company-2"))

	orphan := Job{}
	assert.False(t, orphan.IsOwnedBy("company-1"))
}

func TestListJobsParamsNormalize(t *testing.T) {
	p := ListJobsParams{Page: 0, PageSize: 500}
	p.Normalize()

	assert.Equal(t, 1, p.Page)
	assert.Equal(t, 100, p.PageSize)
	assert.Equal(t, 0, p.Offset())

	p = ListJobsParams{Page: 3, PageSize: 20}
	p.Normalize()
	assert.Equal(t, 40, p.Offset())
}
