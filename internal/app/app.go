// Package app wires the application components together.
package app

import (
	"fmt"

	"github.com/ternarybob/arbor"
	"github.com/ternarybob/vitalog/internal/common"
	"github.com/ternarybob/vitalog/internal/handlers"
	"github.com/ternarybob/vitalog/internal/interfaces"
	"github.com/ternarybob/vitalog/internal/services/agent"
	"github.com/ternarybob/vitalog/internal/services/charts"
	"github.com/ternarybob/vitalog/internal/services/ingest"
	"github.com/ternarybob/vitalog/internal/services/scheduler"
	"github.com/ternarybob/vitalog/internal/storage/badger"
)

// App holds all application components and dependencies
type App struct {
	Config         *common.Config
	Logger         arbor.ILogger
	StorageManager interfaces.StorageManager

	ChartService     *charts.Service
	IngestService    *ingest.Service
	SchedulerService *scheduler.Service

	// Handlers
	APIHandler     *handlers.APIHandler
	PageHandler    *handlers.PageHandler
	RefreshHandler *handlers.RefreshHandler
	StatusHandler  *handlers.StatusHandler
	ChartHandler   *handlers.ChartHandler
}

// New creates the application with all services wired.
func New(cfg *common.Config, logger arbor.ILogger) (*App, error) {
	a := &App{
		Config: cfg,
		Logger: logger,
	}

	storageManager, err := badger.NewManager(logger, &cfg.Storage.Badger)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize storage: %w", err)
	}
	a.StorageManager = storageManager

	a.ChartService = charts.NewService(&cfg.Charts, storageManager, logger)

	// Agent-assisted login is optional; without an API key the scripted
	// login is the only path.
	var assist ingest.LoginAssist
	if cfg.Claude.APIKey != "" {
		loginAgent, err := agent.NewLoginAgent(&cfg.Claude, logger)
		if err != nil {
			logger.Warn().Err(err).Msg("Login agent unavailable, continuing without it")
		} else {
			assist = loginAgent
		}
	}

	a.IngestService = ingest.NewService(cfg, storageManager, a.ChartService, assist, logger)
	a.SchedulerService = scheduler.NewService(&cfg.Schedule, a.IngestService, logger)

	a.APIHandler = handlers.NewAPIHandler()
	a.PageHandler = handlers.NewPageHandler(logger)
	a.RefreshHandler = handlers.NewRefreshHandler(a.IngestService, logger)
	a.StatusHandler = handlers.NewStatusHandler(a.IngestService, storageManager, logger)
	a.ChartHandler = handlers.NewChartHandler(a.ChartService, logger)

	logger.Info().Msg("Application initialized")
	return a, nil
}

// Start launches background components.
func (a *App) Start() error {
	if a.Config.Schedule.Enabled {
		if err := a.SchedulerService.Start(); err != nil {
			return fmt.Errorf("failed to start scheduler: %w", err)
		}
	}
	return nil
}

// Close releases application resources.
func (a *App) Close() error {
	a.SchedulerService.Stop()

	if err := a.StorageManager.Close(); err != nil {
		a.Logger.Error().Err(err).Msg("Failed to close storage")
		return err
	}

	a.Logger.Info().Msg("Application closed")
	return nil
}
