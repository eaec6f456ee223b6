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

// CalorieStorage implements interfaces.CalorieStorage for Badger
type CalorieStorage struct {
	db     *BadgerDB
	logger arbor.ILogger
}

// NewCalorieStorage creates a new CalorieStorage instance
func NewCalorieStorage(db *BadgerDB, logger arbor.ILogger) interfaces.CalorieStorage {
	return &CalorieStorage{
		db:     db,
		logger: logger,
	}
}

// Upsert replaces any record holding the same date, otherwise inserts. The
// stored id of an existing record is kept so the key stays stable; the field
// set is fully replaced, never merged.
func (s *CalorieStorage) Upsert(record *models.CalorieRecord) error {
	if record.Date == "" {
		return fmt.Errorf("calorie record date is required")
	}
	if record.ID == "" {
		return fmt.Errorf("calorie record ID is required")
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
		return fmt.Errorf("failed to upsert calorie record %s: %w", record.Date, err)
	}
	return nil
}

// GetByDate scans the collection for a date match. Returns (nil, nil) when
// no record holds the date.
func (s *CalorieStorage) GetByDate(date string) (*models.CalorieRecord, error) {
	var records []models.CalorieRecord
	if err := s.db.Store().Find(&records, badgerhold.Where("Date").Eq(date)); err != nil {
		return nil, fmt.Errorf("failed to find calorie record for %s: %w", date, err)
	}
	if len(records) == 0 {
		return nil, nil
	}
	return &records[0], nil
}

// GetAll returns all calorie records ordered by date ascending.
func (s *CalorieStorage) GetAll() ([]*models.CalorieRecord, error) {
	var records []models.CalorieRecord
	if err := s.db.Store().Find(&records, nil); err != nil {
		return nil, fmt.Errorf("failed to list calorie records: %w", err)
	}

	sort.Slice(records, func(i, j int) bool { return records[i].Date < records[j].Date })

	result := make([]*models.CalorieRecord, len(records))
	for i := range records {
		result[i] = &records[i]
	}
	return result, nil
}

// Count returns the number of stored calorie records.
func (s *CalorieStorage) Count() (int, error) {
	count, err := s.db.Store().Count(&models.CalorieRecord{}, nil)
	if err != nil {
		return 0, fmt.Errorf("failed to count calorie records: %w", err)
	}
	return int(count), nil
}
