package interfaces

import (
	"github.com/ternarybob/vitalog/internal/models"
)

// CalorieStorage persists diary-day records keyed by date.
type CalorieStorage interface {
	// Upsert fully replaces any record with the same Date, otherwise inserts.
	Upsert(record *models.CalorieRecord) error
	GetByDate(date string) (*models.CalorieRecord, error)
	// GetAll returns all records ordered by date ascending.
	GetAll() ([]*models.CalorieRecord, error)
	Count() (int, error)
}

// MeasurementStorage persists merged mass/waist records keyed by date.
type MeasurementStorage interface {
	Upsert(record *models.BodyMeasurementRecord) error
	GetByDate(date string) (*models.BodyMeasurementRecord, error)
	GetAll() ([]*models.BodyMeasurementRecord, error)
	Count() (int, error)
}

// SessionStorage persists browser session cookies between runs.
type SessionStorage interface {
	SaveSession(state *models.BrowserSessionState) error
	GetSession(siteHost string) (*models.BrowserSessionState, error)
	DeleteSession(siteHost string) error
}

// StorageManager provides access to all storage implementations.
type StorageManager interface {
	CalorieStorage() CalorieStorage
	MeasurementStorage() MeasurementStorage
	SessionStorage() SessionStorage
	Close() error
}
