// AngelaMos | 2026
// entity_test.go

package assignment

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseIDSet(t *testing.T) {
	tests := []struct {
		name string
		csv  string
		want []string
	}{
		{"empty", "", nil},
		{"single", "a", []string{"a"}},
		{"many", "a,b,c", []string{"a", "b", "c"}},
		{"whitespace", " a , b ", []string{"a", "b"}},
		{"empty segments dropped", "a,,b,", []string{"a", "b"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseIDSet(tt.csv))
		})
	}
}

func TestUnionIDSet(t *testing.T) {
	tests := []struct {
		name     string
		existing string
		ids      []string
		want     string
	}{
		{"into empty", "", []string{"a", "b"}, "a,b"},
		{"appends new", "a,b", []string{"c"}, "a,b,c"},
		{"never drops earlier batch", "a,b", []string{"c", "d"}, "a,b,c,d"},
		{"idempotent resend", "a,b", []string{"a", "b"}, "a,b"},
		{"partial overlap", "a,b", []string{"b", "c"}, "a,b,c"},
		{"duplicate input collapsed", "", []string{"a", "a", "b"}, "a,b"},
		{"blank input ignored", "a", []string{"", " ", "b"}, "a,b"},
		{"order preserved", "c,a", []string{"b"}, "c,a,b"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, UnionIDSet(tt.existing, tt.ids))
		})
	}
}

func TestSubStatusValid(t *testing.T) {
	assert.True(t, RecruiterSentToSpecialist.Valid())
	assert.False(t, RecruiterStatus("sent_to_company").Valid())
	assert.True(t, SpecialistSentToCompany.Valid())
	assert.False(t, SpecialistStatus("reviewing").Valid())
}
