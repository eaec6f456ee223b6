package metrics

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/ternarybob/vitalog/internal/models"
)

func TestMergeMeasurements_DateUnion(t *testing.T) {
	mass := []models.MassEntry{
		{Date: "2025-03-03", MassKg: 82.5},
		{Date: "2025-03-05", MassKg: 82.0},
	}
	waist := []models.WaistEntry{
		{Date: "2025-03-03", WaistCm: 90.0},
		{Date: "2025-03-04", WaistCm: 89.5},
	}

	records := MergeMeasurements(mass, waist)
	require.Len(t, records, 3)

	// Sorted ascending by date.
	assert.Equal(t, "2025-03-03", records[0].Date)
	assert.Equal(t, "2025-03-04", records[1].Date)
	assert.Equal(t, "2025-03-05", records[2].Date)

	// Both sides present.
	require.NotNil(t, records[0].MassKg)
	require.NotNil(t, records[0].WaistCm)
	assert.Equal(t, 82.5, *records[0].MassKg)
	assert.Equal(t, 90.0, *records[0].WaistCm)

	// Waist only: mass stays nil, not zero.
	assert.Nil(t, records[1].MassKg)
	require.NotNil(t, records[1].WaistCm)
	assert.Equal(t, 89.5, *records[1].WaistCm)

	// Mass only.
	require.NotNil(t, records[2].MassKg)
	assert.Nil(t, records[2].WaistCm)
}

func TestMergeMeasurements_EmptyInputs(t *testing.T) {
	assert.Empty(t, MergeMeasurements(nil, nil))

	records := MergeMeasurements([]models.MassEntry{{Date: "2025-03-03", MassKg: 82.5}}, nil)
	require.Len(t, records, 1)
	assert.NotNil(t, records[0].MassKg)
	assert.Nil(t, records[0].WaistCm)
}

func TestMergeMeasurements_AssignsIDsAndTimestamps(t *testing.T) {
	records := MergeMeasurements(
		[]models.MassEntry{{Date: "2025-03-03", MassKg: 82.5}},
		[]models.WaistEntry{{Date: "2025-03-04", WaistCm: 90.0}},
	)
	require.Len(t, records, 2)
	assert.NotEmpty(t, records[0].ID)
	assert.NotEmpty(t, records[1].ID)
	assert.NotEqual(t, records[0].ID, records[1].ID)
	assert.False(t, records[0].CreatedAt.IsZero())
}
