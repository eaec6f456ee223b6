// Package scheduler triggers periodic ingestion runs. A scheduled trigger
// goes through the same gate as a manual one, so an overlapping schedule
// simply skips the tick.
package scheduler

import (
	"errors"
	"fmt"

	"github.com/robfig/cron/v3"
	"github.com/ternarybob/arbor"
	"github.com/ternarybob/vitalog/internal/common"
	"github.com/ternarybob/vitalog/internal/services/ingest"
)

// Service wraps a cron runner around the ingest service.
type Service struct {
	config  *common.ScheduleConfig
	ingest  *ingest.Service
	cron    *cron.Cron
	logger  arbor.ILogger
	running bool
}

// NewService creates a scheduler. It does nothing until Start is called.
func NewService(config *common.ScheduleConfig, ingestService *ingest.Service, logger arbor.ILogger) *Service {
	return &Service{
		config: config,
		ingest: ingestService,
		cron:   cron.New(),
		logger: logger,
	}
}

// Start registers the refresh job and begins the cron loop.
func (s *Service) Start() error {
	if s.running {
		return fmt.Errorf("scheduler already running")
	}

	expr := s.config.Cron
	if expr == "" {
		expr = "0 6 * * *" // Default: daily at 06:00
	}

	if _, err := s.cron.AddFunc(expr, s.runScheduledRefresh); err != nil {
		return fmt.Errorf("failed to add cron job: %w", err)
	}

	s.cron.Start()
	s.running = true
	s.logger.Info().Str("cron_expr", expr).Msg("Scheduled refresh enabled")
	return nil
}

// Stop halts the cron loop. A run already in flight is not interrupted.
func (s *Service) Stop() {
	if !s.running {
		return
	}
	s.cron.Stop()
	s.running = false
	s.logger.Info().Msg("Scheduler stopped")
}

func (s *Service) runScheduledRefresh() {
	s.logger.Info().Msg("Scheduled refresh triggered")
	if err := s.ingest.TriggerAsync(); err != nil {
		if errors.Is(err, ingest.ErrRunInProgress) {
			s.logger.Warn().Msg("Scheduled refresh skipped, a run is already in progress")
			return
		}
		s.logger.Error().Err(err).Msg("Scheduled refresh failed to start")
	}
}
