package models

import "time"

// IntakeCategories are the occasion labels that count toward net calories.
// The source page may carry additional occasion tags; those are stored in
// CategoryTotals but excluded from the net calculation.
var IntakeCategories = []string{"Breakfast", "Lunch", "Dinner", "Snacks", "Drinks"}

// CalorieRecord is one diary day. Date is the logical key within the
// collection; re-ingesting a date replaces the whole record.
type CalorieRecord struct {
	ID             string             `badgerhold:"key" json:"id"`
	Date           string             `json:"date" validate:"required,datetime=2006-01-02"`
	CategoryTotals map[string]float64 `json:"category_totals" validate:"dive,gte=0"`
	ExerciseKcal   *float64           `json:"exercise_kcal,omitempty" validate:"omitempty,gte=0"`
	NetKcal        float64            `json:"net_kcal"`
	CreatedAt      time.Time          `json:"created_at"`
	UpdatedAt      time.Time          `json:"updated_at"`
}
