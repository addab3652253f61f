package domain

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateProjectNumber_Valid(t *testing.T) {
	cases := []string{"SB-1042", "HOSP24", "AB12", "BRIDGE-00001", "WH-99"}
	for _, n := range cases {
		p := &Project{ProjectNumber: n}
		assert.NoError(t, p.ValidateProjectNumber(), "should accept %q", n)
	}
}

func TestValidateProjectNumber_Empty(t *testing.T) {
	p := &Project{}
	err := p.ValidateProjectNumber()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "required")
	assert.True(t, errors.Is(err, ErrValidation))
}

func TestValidateProjectNumber_Invalid(t *testing.T) {
	for _, n := range []string{"sb-1042", "S-10", "SB-1", "SBSBSBS-10", "SB_1042", "1042"} {
		p := &Project{ProjectNumber: n}
		assert.Error(t, p.ValidateProjectNumber(), "should reject %q", n)
	}
}

func TestProjectValidate_TargetBeforeStart(t *testing.T) {
	start := time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)
	target := start.AddDate(0, 0, -1)
	p := &Project{ProjectNumber: "SB-100", Name: "Depot", StartDate: start, TargetCompletion: &target}
	err := p.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "before start date")
}

func TestProjectValidate_RequiresName(t *testing.T) {
	p := &Project{ProjectNumber: "SB-100", Name: "  "}
	assert.Error(t, p.Validate())
}

func TestDisplayID(t *testing.T) {
	p := &Project{ID: "550e8400-e29b-41d4-a716-446655440000", ProjectNumber: "SB-100"}
	assert.Equal(t, "SB-100", p.DisplayID())

	p.ProjectNumber = ""
	assert.Equal(t, "550e8400", p.DisplayID())
}

func TestHasUser_CaseInsensitive(t *testing.T) {
	p := &Project{AssignedUsers: []string{"pm@steel.example"}}
	assert.True(t, p.HasUser("PM@steel.example"))
	assert.False(t, p.HasUser("super@steel.example"))
}

func TestParseDate(t *testing.T) {
	d, err := ParseDate("2025-01-10")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2025, 1, 10, 0, 0, 0, 0, time.UTC), d)

	d, err = ParseDate("2025-01-10T18:30:00Z")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2025, 1, 10, 0, 0, 0, 0, time.UTC), d)

	_, err = ParseDate("")
	assert.Error(t, err)
	_, err = ParseDate("10/01/2025")
	assert.Error(t, err)
}

func TestWithinDays_Inclusive(t *testing.T) {
	start := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2025, 1, 10, 0, 0, 0, 0, time.UTC)
	assert.True(t, WithinDays(start, start, end))
	assert.True(t, WithinDays(end.Add(23*time.Hour), start, end))
	assert.False(t, WithinDays(end.AddDate(0, 0, 1), start, end))
}
