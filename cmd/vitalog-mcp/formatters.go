package main

import (
	"fmt"
	"strings"

	"github.com/ternarybob/vitalog/internal/models"
)

// formatCalorieRecord formats a single calorie record as markdown
func formatCalorieRecord(record *models.CalorieRecord) string {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("# Calorie diary %s\n\n", record.Date))

	for _, category := range models.IntakeCategories {
		if kcal, ok := record.CategoryTotals[category]; ok {
			sb.WriteString(fmt.Sprintf("- %s: %.0f kcal\n", category, kcal))
		}
	}
	if record.ExerciseKcal != nil {
		sb.WriteString(fmt.Sprintf("- Exercise: %.0f kcal\n", *record.ExerciseKcal))
	}
	sb.WriteString(fmt.Sprintf("\n**Net:** %.0f kcal\n", record.NetKcal))

	return sb.String()
}

// formatCalorieRecords formats a record list as a markdown table, most
// recent first.
func formatCalorieRecords(records []*models.CalorieRecord, limit int) string {
	if len(records) == 0 {
		return "No calorie records stored. Run a refresh first."
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("## Calorie records (%d stored)\n\n", len(records)))
	sb.WriteString("| Date | Net kcal | Exercise kcal |\n")
	sb.WriteString("|------|----------|---------------|\n")

	for i := len(records) - 1; i >= 0 && len(records)-1-i < limit; i-- {
		record := records[i]
		exercise := "-"
		if record.ExerciseKcal != nil {
			exercise = fmt.Sprintf("%.0f", *record.ExerciseKcal)
		}
		sb.WriteString(fmt.Sprintf("| %s | %.0f | %s |\n", record.Date, record.NetKcal, exercise))
	}

	return sb.String()
}

// formatMeasurementRecord formats a single measurement record as markdown
func formatMeasurementRecord(record *models.BodyMeasurementRecord) string {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("# Body measurements %s\n\n", record.Date))

	if record.MassKg != nil {
		sb.WriteString(fmt.Sprintf("- Mass: %.1f kg\n", *record.MassKg))
	}
	if record.WaistCm != nil {
		sb.WriteString(fmt.Sprintf("- Waist: %.1f cm\n", *record.WaistCm))
	}
	if record.BodyFatPct != nil {
		sb.WriteString(fmt.Sprintf("- Body fat: %.1f %%\n", *record.BodyFatPct))
	}

	return sb.String()
}

// formatMeasurementRecords formats a record list as a markdown table, most
// recent first.
func formatMeasurementRecords(records []*models.BodyMeasurementRecord, limit int) string {
	if len(records) == 0 {
		return "No measurement records stored. Run a refresh first."
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("## Measurement records (%d stored)\n\n", len(records)))
	sb.WriteString("| Date | Mass kg | Waist cm | Body fat % |\n")
	sb.WriteString("|------|---------|----------|------------|\n")

	for i := len(records) - 1; i >= 0 && len(records)-1-i < limit; i-- {
		record := records[i]
		sb.WriteString(fmt.Sprintf("| %s | %s | %s | %s |\n",
			record.Date,
			formatOptional(record.MassKg),
			formatOptional(record.WaistCm),
			formatOptional(record.BodyFatPct)))
	}

	return sb.String()
}

func formatOptional(value *float64) string {
	if value == nil {
		return "-"
	}
	return fmt.Sprintf("%.1f", *value)
}
