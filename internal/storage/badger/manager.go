package badger

import (
	"github.com/ternarybob/arbor"
	"github.com/ternarybob/vitalog/internal/common"
	"github.com/ternarybob/vitalog/internal/interfaces"
)

// Manager implements the StorageManager interface for Badger
type Manager struct {
	db          *BadgerDB
	calorie     interfaces.CalorieStorage
	measurement interfaces.MeasurementStorage
	session     interfaces.SessionStorage
	logger      arbor.ILogger
}

// NewManager creates a new Badger storage manager
func NewManager(logger arbor.ILogger, config *common.BadgerConfig) (interfaces.StorageManager, error) {
	db, err := NewBadgerDB(logger, config)
	if err != nil {
		return nil, err
	}

	manager := &Manager{
		db:          db,
		calorie:     NewCalorieStorage(db, logger),
		measurement: NewMeasurementStorage(db, logger),
		session:     NewSessionStorage(db, logger),
		logger:      logger,
	}

	logger.Info().Msg("Badger storage manager initialized")

	return manager, nil
}

// CalorieStorage returns the calorie record storage interface
func (m *Manager) CalorieStorage() interfaces.CalorieStorage {
	return m.calorie
}

// MeasurementStorage returns the measurement record storage interface
func (m *Manager) MeasurementStorage() interfaces.MeasurementStorage {
	return m.measurement
}

// SessionStorage returns the browser session storage interface
func (m *Manager) SessionStorage() interfaces.SessionStorage {
	return m.session
}

// Close closes the underlying database
func (m *Manager) Close() error {
	m.logger.Debug().Msg("Closing Badger storage manager")
	return m.db.Close()
}
