package models

import "time"

// BodyMeasurementRecord is one merged mass/waist day. A nil field means the
// source sub-series had no entry for that date; absence is distinct from a
// true zero. BodyFatPct is derived and only present when WaistCm is present
// and the estimator's domain is satisfied.
type BodyMeasurementRecord struct {
	ID         string    `badgerhold:"key" json:"id"`
	Date       string    `json:"date" validate:"required,datetime=2006-01-02"`
	MassKg     *float64  `json:"mass_kg,omitempty" validate:"omitempty,gt=0"`
	WaistCm    *float64  `json:"waist_cm,omitempty" validate:"omitempty,gt=0"`
	BodyFatPct *float64  `json:"body_fat_pct,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// MassEntry is a normalized row from the mass progress table.
type MassEntry struct {
	Date   string
	MassKg float64
}

// WaistEntry is a normalized row from the waist progress table.
type WaistEntry struct {
	Date    string
	WaistCm float64
}
