package cli

import (
	"testing"

	"github.com/alexanderramin/steelbuild/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResourceFormValues(t *testing.T) {
	r, err := resourceFormValues{Name: "Crane", Type: "equipment", MaxConcurrent: "2", HourlyRate: "185.5"}.resource()
	require.NoError(t, err)
	assert.Equal(t, domain.ResourceEquipment, r.Type)
	assert.Equal(t, 2, r.MaxConcurrentAssignments)
	assert.InDelta(t, 185.5, r.HourlyRate, 0.001)

	r, err = resourceFormValues{Name: "Crew", Type: "labor"}.resource()
	require.NoError(t, err)
	assert.Equal(t, domain.DefaultMaxConcurrentAssignments, r.MaxConcurrent())

	_, err = resourceFormValues{Name: "Crew", Type: "labor", MaxConcurrent: "two"}.resource()
	assert.Error(t, err)
}

func TestFormValidators(t *testing.T) {
	assert.Error(t, validateRequired(""))
	assert.NoError(t, validateNonNegativeInt(""))
	assert.NoError(t, validateNonNegativeInt("3"))
	assert.Error(t, validateNonNegativeInt("-1"))
	assert.Error(t, validateNonNegativeFloat("abc"))
	assert.NoError(t, validateNonNegativeFloat("12.5"))
}
