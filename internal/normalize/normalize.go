package normalize

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/ternarybob/vitalog/internal/common"
	"github.com/ternarybob/vitalog/internal/models"
	"github.com/ternarybob/vitalog/internal/parser"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// ParseMeasurementValue strips a unit suffix ("Kg", "cm", case-insensitive)
// and converts the remainder to a float.
func ParseMeasurementValue(text, unit string) (float64, error) {
	cleaned := strings.TrimSpace(text)
	if unit != "" {
		lower := strings.ToLower(cleaned)
		if idx := strings.LastIndex(lower, strings.ToLower(unit)); idx >= 0 {
			cleaned = strings.TrimSpace(cleaned[:idx] + cleaned[idx+len(unit):])
		}
	}

	value, err := strconv.ParseFloat(cleaned, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid measurement value %q: %w", text, err)
	}
	return value, nil
}

// parseKcal converts a diary subtotal cell to a float.
func parseKcal(text string) (float64, error) {
	value, err := strconv.ParseFloat(strings.TrimSpace(text), 64)
	if err != nil {
		return 0, fmt.Errorf("invalid kcal value %q: %w", text, err)
	}
	return value, nil
}

// CalorieRecords converts parsed diary days into validated records keyed by
// canonical date. NetKcal is left zero here; the metrics package derives it
// before persistence. A malformed date aborts the whole page's ingestion.
func CalorieRecords(days []parser.DiaryDay) ([]*models.CalorieRecord, error) {
	records := make([]*models.CalorieRecord, 0, len(days))

	for _, day := range days {
		date, err := ParseSiteDate(day.DateText)
		if err != nil {
			return nil, fmt.Errorf("diary: %w", err)
		}

		record := &models.CalorieRecord{
			ID:             common.NewRecordID(),
			Date:           date,
			CategoryTotals: make(map[string]float64, len(day.Occasions)),
		}

		for _, occasion := range day.Occasions {
			kcal, err := parseKcal(occasion.KcalText)
			if err != nil {
				return nil, fmt.Errorf("diary %s, occasion %s: %w", date, occasion.Name, err)
			}
			record.CategoryTotals[occasion.Name] = kcal
		}

		if day.ExerciseText != "" {
			kcal, err := parseKcal(day.ExerciseText)
			if err != nil {
				return nil, fmt.Errorf("diary %s, exercise: %w", date, err)
			}
			record.ExerciseKcal = &kcal
		}

		if err := validate.Struct(record); err != nil {
			return nil, fmt.Errorf("diary %s failed validation: %w", date, err)
		}

		records = append(records, record)
	}

	return records, nil
}

// MassEntries converts parsed mass rows (values suffixed " Kg") into
// normalized entries.
func MassEntries(rows []parser.MeasurementRow) ([]models.MassEntry, error) {
	entries := make([]models.MassEntry, 0, len(rows))
	for _, row := range rows {
		date, err := ParseSiteDate(row.DateText)
		if err != nil {
			return nil, fmt.Errorf("mass table: %w", err)
		}
		value, err := ParseMeasurementValue(row.ValueText, "Kg")
		if err != nil {
			return nil, fmt.Errorf("mass table %s: %w", date, err)
		}
		entries = append(entries, models.MassEntry{Date: date, MassKg: value})
	}
	return entries, nil
}

// WaistEntries converts parsed waist rows (values suffixed "cm") into
// normalized entries.
func WaistEntries(rows []parser.MeasurementRow) ([]models.WaistEntry, error) {
	entries := make([]models.WaistEntry, 0, len(rows))
	for _, row := range rows {
		date, err := ParseSiteDate(row.DateText)
		if err != nil {
			return nil, fmt.Errorf("waist table: %w", err)
		}
		value, err := ParseMeasurementValue(row.ValueText, "cm")
		if err != nil {
			return nil, fmt.Errorf("waist table %s: %w", date, err)
		}
		entries = append(entries, models.WaistEntry{Date: date, WaistCm: value})
	}
	return entries, nil
}

// ValidateMeasurement runs the struct-level validation on a merged record
// before it is persisted.
func ValidateMeasurement(record *models.BodyMeasurementRecord) error {
	if err := validate.Struct(record); err != nil {
		return fmt.Errorf("measurement %s failed validation: %w", record.Date, err)
	}
	return nil
}
