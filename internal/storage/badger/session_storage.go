package badger

import (
	"fmt"
	"time"

	"github.com/ternarybob/arbor"
	"github.com/ternarybob/vitalog/internal/interfaces"
	"github.com/ternarybob/vitalog/internal/models"
	"github.com/timshannon/badgerhold/v4"
)

// SessionStorage implements interfaces.SessionStorage for Badger. It keeps
// the captured login cookies per site host so a later run can restore the
// browser session instead of replaying the sign-in steps.
type SessionStorage struct {
	db     *BadgerDB
	logger arbor.ILogger
}

// NewSessionStorage creates a new SessionStorage instance
func NewSessionStorage(db *BadgerDB, logger arbor.ILogger) interfaces.SessionStorage {
	return &SessionStorage{
		db:     db,
		logger: logger,
	}
}

func (s *SessionStorage) SaveSession(state *models.BrowserSessionState) error {
	if state.SiteHost == "" {
		return fmt.Errorf("session site host is required")
	}

	// One session per host; the host doubles as the storage key.
	state.ID = "session_" + state.SiteHost
	state.UpdatedAt = time.Now()
	if state.SavedAt.IsZero() {
		state.SavedAt = state.UpdatedAt
	}

	if err := s.db.Store().Upsert(state.ID, state); err != nil {
		return fmt.Errorf("failed to save browser session: %w", err)
	}

	s.logger.Debug().Str("host", state.SiteHost).Int("cookies", len(state.Cookies)).Msg("Browser session saved")
	return nil
}

func (s *SessionStorage) GetSession(siteHost string) (*models.BrowserSessionState, error) {
	var state models.BrowserSessionState
	if err := s.db.Store().Get("session_"+siteHost, &state); err != nil {
		if err == badgerhold.ErrNotFound {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get browser session: %w", err)
	}
	return &state, nil
}

func (s *SessionStorage) DeleteSession(siteHost string) error {
	if err := s.db.Store().Delete("session_"+siteHost, &models.BrowserSessionState{}); err != nil {
		if err == badgerhold.ErrNotFound {
			return nil
		}
		return fmt.Errorf("failed to delete browser session: %w", err)
	}
	return nil
}
