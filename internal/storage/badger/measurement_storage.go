package badger

import (
	"fmt"
	"sort"
	"time"

	"github.com/ternarybob/arbor"
	"github.com/ternarybob/vitalog/internal/interfaces"
	"github.com/ternarybob/vitalog/internal/models"
	"github.com/timshannon/badgerhold/v4"
)

// MeasurementStorage implements interfaces.MeasurementStorage for Badger
type MeasurementStorage struct {
	db     *BadgerDB
	logger arbor.ILogger
}

// NewMeasurementStorage creates a new MeasurementStorage instance
func NewMeasurementStorage(db *BadgerDB, logger arbor.ILogger) interfaces.MeasurementStorage {
	return &MeasurementStorage{
		db:     db,
		logger: logger,
	}
}

// Upsert replaces any record holding the same date, otherwise inserts.
// Replacement discards the old field set entirely; a re-ingested date with a
// now-absent waist entry loses its previous waist value rather than keeping
// a stale one.
func (s *MeasurementStorage) Upsert(record *models.BodyMeasurementRecord) error {
	if record.Date == "" {
		return fmt.Errorf("measurement record date is required")
	}
	if record.ID == "" {
		return fmt.Errorf("measurement record ID is required")
	}

	now := time.Now()
	record.UpdatedAt = now
	if record.CreatedAt.IsZero() {
		record.CreatedAt = now
	}

	existing, err := s.GetByDate(record.Date)
	if err == nil && existing != nil {
		record.ID = existing.ID
		record.CreatedAt = existing.CreatedAt
	}

	if err := s.db.Store().Upsert(record.ID, record); err != nil {
		return fmt.Errorf("failed to upsert measurement record %s: %w", record.Date, err)
	}
	return nil
}

// GetByDate scans for a date match. Returns (nil, nil) when absent.
func (s *MeasurementStorage) GetByDate(date string) (*models.BodyMeasurementRecord, error) {
	var records []models.BodyMeasurementRecord
	if err := s.db.Store().Find(&records, badgerhold.Where("Date").Eq(date)); err != nil {
		return nil, fmt.Errorf("failed to find measurement record for %s: %w", date, err)
	}
	if len(records) == 0 {
		return nil, nil
	}
	return &records[0], nil
}

// GetAll returns all measurement records ordered by date ascending.
func (s *MeasurementStorage) GetAll() ([]*models.BodyMeasurementRecord, error) {
	var records []models.BodyMeasurementRecord
	if err := s.db.Store().Find(&records, nil); err != nil {
		return nil, fmt.Errorf("failed to list measurement records: %w", err)
	}

	sort.Slice(records, func(i, j int) bool { return records[i].Date < records[j].Date })

	result := make([]*models.BodyMeasurementRecord, len(records))
	for i := range records {
		result[i] = &records[i]
	}
	return result, nil
}

// Count returns the number of stored measurement records.
func (s *MeasurementStorage) Count() (int, error) {
	count, err := s.db.Store().Count(&models.BodyMeasurementRecord{}, nil)
	if err != nil {
		return 0, fmt.Errorf("failed to count measurement records: %w", err)
	}
	return int(count), nil
}
