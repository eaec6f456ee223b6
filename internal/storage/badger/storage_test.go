package badger

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/ternarybob/arbor"
	"github.com/ternarybob/vitalog/internal/common"
	"github.com/ternarybob/vitalog/internal/interfaces"
	"github.com/ternarybob/vitalog/internal/models"
)

func newTestManager(t *testing.T) interfaces.StorageManager {
	t.Helper()

	manager, err := NewManager(arbor.NewLogger(), &common.BadgerConfig{
		Path: t.TempDir(),
	})
	require.NoError(t, err)
	t.Cleanup(func() { manager.Close() })

	return manager
}

func floatPtr(v float64) *float64 { return &v }

func TestCalorieStorage_UpsertAndGet(t *testing.T) {
	storage := newTestManager(t).CalorieStorage()

	record := &models.CalorieRecord{
		ID:             common.NewRecordID(),
		Date:           "2025-03-03",
		CategoryTotals: map[string]float64{"Breakfast": 400},
		NetKcal:        400,
	}
	require.NoError(t, storage.Upsert(record))

	got, err := storage.GetByDate("2025-03-03")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, record.ID, got.ID)
	assert.Equal(t, 400.0, got.CategoryTotals["Breakfast"])
	assert.False(t, got.CreatedAt.IsZero())
}

func TestCalorieStorage_UpsertReplacesByDate(t *testing.T) {
	storage := newTestManager(t).CalorieStorage()

	first := &models.CalorieRecord{
		ID:             common.NewRecordID(),
		Date:           "2025-03-03",
		CategoryTotals: map[string]float64{"Breakfast": 400, "Lunch": 600},
		ExerciseKcal:   floatPtr(200),
		NetKcal:        800,
	}
	require.NoError(t, storage.Upsert(first))

	// Second scrape of the same day: fields are fully replaced, including
	// the exercise value going away.
	second := &models.CalorieRecord{
		ID:             common.NewRecordID(),
		Date:           "2025-03-03",
		CategoryTotals: map[string]float64{"Breakfast": 450},
		NetKcal:        450,
	}
	require.NoError(t, storage.Upsert(second))

	count, err := storage.Count()
	require.NoError(t, err)
	assert.Equal(t, 1, count)

	got, err := storage.GetByDate("2025-03-03")
	require.NoError(t, err)
	require.NotNil(t, got)
	// The stored key stays stable across upserts.
	assert.Equal(t, first.ID, got.ID)
	assert.Equal(t, 450.0, got.CategoryTotals["Breakfast"])
	assert.NotContains(t, got.CategoryTotals, "Lunch")
	assert.Nil(t, got.ExerciseKcal)
}

func TestCalorieStorage_GetByDateMissing(t *testing.T) {
	storage := newTestManager(t).CalorieStorage()

	got, err := storage.GetByDate("2025-01-01")
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestCalorieStorage_GetAllSorted(t *testing.T) {
	storage := newTestManager(t).CalorieStorage()

	for _, date := range []string{"2025-03-05", "2025-03-03", "2025-03-04"} {
		require.NoError(t, storage.Upsert(&models.CalorieRecord{
			ID:             common.NewRecordID(),
			Date:           date,
			CategoryTotals: map[string]float64{"Lunch": 500},
		}))
	}

	records, err := storage.GetAll()
	require.NoError(t, err)
	require.Len(t, records, 3)
	assert.Equal(t, "2025-03-03", records[0].Date)
	assert.Equal(t, "2025-03-04", records[1].Date)
	assert.Equal(t, "2025-03-05", records[2].Date)
}

func TestCalorieStorage_UpsertRequiresDateAndID(t *testing.T) {
	storage := newTestManager(t).CalorieStorage()

	assert.Error(t, storage.Upsert(&models.CalorieRecord{ID: common.NewRecordID()}))
	assert.Error(t, storage.Upsert(&models.CalorieRecord{Date: "2025-03-03"}))
}

func TestMeasurementStorage_UpsertAndGet(t *testing.T) {
	storage := newTestManager(t).MeasurementStorage()

	record := &models.BodyMeasurementRecord{
		ID:      common.NewRecordID(),
		Date:    "2025-03-03",
		MassKg:  floatPtr(82.5),
		WaistCm: floatPtr(90.0),
	}
	require.NoError(t, storage.Upsert(record))

	got, err := storage.GetByDate("2025-03-03")
	require.NoError(t, err)
	require.NotNil(t, got)
	require.NotNil(t, got.MassKg)
	assert.Equal(t, 82.5, *got.MassKg)
}

func TestMeasurementStorage_NilFieldsSurviveRoundTrip(t *testing.T) {
	storage := newTestManager(t).MeasurementStorage()

	record := &models.BodyMeasurementRecord{
		ID:     common.NewRecordID(),
		Date:   "2025-03-03",
		MassKg: floatPtr(82.5),
	}
	require.NoError(t, storage.Upsert(record))

	got, err := storage.GetByDate("2025-03-03")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Nil(t, got.WaistCm)
	assert.Nil(t, got.BodyFatPct)
}

func TestMeasurementStorage_UpsertReplacesByDate(t *testing.T) {
	storage := newTestManager(t).MeasurementStorage()

	first := &models.BodyMeasurementRecord{
		ID:      common.NewRecordID(),
		Date:    "2025-03-03",
		MassKg:  floatPtr(82.5),
		WaistCm: floatPtr(90.0),
	}
	require.NoError(t, storage.Upsert(first))

	second := &models.BodyMeasurementRecord{
		ID:     common.NewRecordID(),
		Date:   "2025-03-03",
		MassKg: floatPtr(82.0),
	}
	require.NoError(t, storage.Upsert(second))

	count, err := storage.Count()
	require.NoError(t, err)
	assert.Equal(t, 1, count)

	got, err := storage.GetByDate("2025-03-03")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, first.ID, got.ID)
	assert.Equal(t, 82.0, *got.MassKg)
	assert.Nil(t, got.WaistCm)
}

func TestSessionStorage_RoundTrip(t *testing.T) {
	storage := newTestManager(t).SessionStorage()

	state := &models.BrowserSessionState{
		SiteHost: "www.nutracheck.co.uk",
		Cookies: []models.BrowserCookie{
			{Name: "session", Value: "abc123", Domain: ".nutracheck.co.uk", Path: "/", Expires: time.Now().Add(24 * time.Hour)},
		},
	}
	require.NoError(t, storage.SaveSession(state))

	got, err := storage.GetSession("www.nutracheck.co.uk")
	require.NoError(t, err)
	require.NotNil(t, got)
	require.Len(t, got.Cookies, 1)
	assert.Equal(t, "abc123", got.Cookies[0].Value)

	require.NoError(t, storage.DeleteSession("www.nutracheck.co.uk"))
	got, err = storage.GetSession("www.nutracheck.co.uk")
	require.NoError(t, err)
	assert.Nil(t, got)
}
