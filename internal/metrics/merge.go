package metrics

import (
	"sort"
	"time"

	"github.com/ternarybob/vitalog/internal/common"
	"github.com/ternarybob/vitalog/internal/models"
)

// MergeMeasurements combines the mass and waist sub-series into one record
// per date present in either. Each side is applied only where it has an
// entry, so a date covered by a single sub-series keeps the other field nil
// rather than zero. The two sides contribute disjoint fields, making the
// merge commutative.
func MergeMeasurements(mass []models.MassEntry, waist []models.WaistEntry) []*models.BodyMeasurementRecord {
	massByDate := make(map[string]float64, len(mass))
	for _, entry := range mass {
		massByDate[entry.Date] = entry.MassKg
	}
	waistByDate := make(map[string]float64, len(waist))
	for _, entry := range waist {
		waistByDate[entry.Date] = entry.WaistCm
	}

	dates := make(map[string]bool, len(massByDate)+len(waistByDate))
	for date := range massByDate {
		dates[date] = true
	}
	for date := range waistByDate {
		dates[date] = true
	}

	now := time.Now()
	records := make([]*models.BodyMeasurementRecord, 0, len(dates))
	for date := range dates {
		record := &models.BodyMeasurementRecord{
			ID:        common.NewRecordID(),
			Date:      date,
			CreatedAt: now,
			UpdatedAt: now,
		}
		if value, ok := massByDate[date]; ok {
			v := value
			record.MassKg = &v
		}
		if value, ok := waistByDate[date]; ok {
			v := value
			record.WaistCm = &v
		}
		records = append(records, record)
	}

	sort.Slice(records, func(i, j int) bool { return records[i].Date < records[j].Date })
	return records
}
