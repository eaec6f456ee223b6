// Package ingest owns the scrape pipeline: one browser session per run,
// fetch of the three pages, parse, normalize, merge, derive, persist, chart
// regeneration and publishing. Runs are strictly serialized by an atomic
// state cell; a trigger while a run is active is rejected immediately.
package ingest

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/ternarybob/arbor"
	"github.com/ternarybob/vitalog/internal/common"
	"github.com/ternarybob/vitalog/internal/interfaces"
	"github.com/ternarybob/vitalog/internal/metrics"
	"github.com/ternarybob/vitalog/internal/models"
	"github.com/ternarybob/vitalog/internal/normalize"
	"github.com/ternarybob/vitalog/internal/parser"
	"github.com/ternarybob/vitalog/internal/services/browser"
	"github.com/ternarybob/vitalog/internal/services/charts"
	"github.com/ternarybob/vitalog/internal/services/publish"
)

// ErrRunInProgress is returned when a trigger arrives while a run is active.
var ErrRunInProgress = errors.New("refresh already in progress")

// Run states for the atomic gate.
const (
	stateIdle int32 = iota
	stateRunning
)

// LoginAssist retries a failed scripted login by other means (the Claude
// tool-use agent). Nil when no assistance is configured.
type LoginAssist interface {
	Login(ctx context.Context, tools *browser.Tools, siteURL, email, password string) error
}

// siteSession is the slice of the browser session the sign-in flow uses.
type siteSession interface {
	RestoreCookies(siteURL string) (bool, error)
	FetchPage(url string) (string, error)
	Login(siteURL, email, password string) error
	SaveCookies(siteURL string) error
}

// Service runs the ingestion pipeline.
type Service struct {
	config  *common.Config
	storage interfaces.StorageManager
	charts  *charts.Service
	assist  LoginAssist
	logger  arbor.ILogger

	state atomic.Int32

	mu        sync.Mutex
	lastRun   *time.Time
	lastError string
}

// NewService creates an ingest service. assist may be nil.
func NewService(config *common.Config, storage interfaces.StorageManager, chartService *charts.Service, assist LoginAssist, logger arbor.ILogger) *Service {
	return &Service{
		config:  config,
		storage: storage,
		charts:  chartService,
		assist:  assist,
		logger:  logger,
	}
}

// TriggerAsync starts a run on its own goroutine. Returns ErrRunInProgress
// without blocking when a run is already active. There is no cancellation:
// once started, a run proceeds to completion or failure.
func (s *Service) TriggerAsync() error {
	if !s.state.CompareAndSwap(stateIdle, stateRunning) {
		return ErrRunInProgress
	}

	go func() {
		defer s.finish()
		if err := s.run(context.Background()); err != nil {
			s.logger.Error().Err(err).Msg("Refresh run failed")
			s.setError(err)
			return
		}
		s.setError(nil)
	}()

	return nil
}

// RunOnce executes a run synchronously (pipeline mode). Gated the same way
// as TriggerAsync.
func (s *Service) RunOnce(ctx context.Context) error {
	if !s.state.CompareAndSwap(stateIdle, stateRunning) {
		return ErrRunInProgress
	}
	defer s.finish()

	err := s.run(ctx)
	s.setError(err)
	return err
}

// Status reports the current run state for the UI.
func (s *Service) Status() models.RunStatus {
	s.mu.Lock()
	defer s.mu.Unlock()
	return models.RunStatus{
		Refreshing: s.state.Load() == stateRunning,
		LastRun:    s.lastRun,
		LastError:  s.lastError,
	}
}

// finish resets the gate unconditionally, success or failure.
func (s *Service) finish() {
	now := time.Now()
	s.mu.Lock()
	s.lastRun = &now
	s.mu.Unlock()
	s.state.Store(stateIdle)
}

func (s *Service) setError(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err != nil {
		s.lastError = err.Error()
	} else {
		s.lastError = ""
	}
}

// run executes the full pipeline with one browser session.
func (s *Service) run(ctx context.Context) error {
	site := s.config.Site
	if site.Email == "" || site.Password == "" {
		return fmt.Errorf("site credentials are required (set VITALOG_EMAIL and VITALOG_PASSWORD)")
	}

	started := time.Now()
	s.logger.Info().Msg("Starting ingestion run")

	session, err := browser.NewSession(&s.config.Browser, s.storage.SessionStorage(), s.logger)
	if err != nil {
		return err
	}
	defer session.Close()

	if err := s.signIn(ctx, session, browser.NewTools(session)); err != nil {
		return err
	}

	pages, err := session.FetchPages(site.BaseURL, site.DiaryDays)
	if err != nil {
		return err
	}

	if err := s.ingestCalories(pages.Diary); err != nil {
		return err
	}
	if err := s.ingestMeasurements(pages.Mass, pages.Waist); err != nil {
		return err
	}

	if err := s.charts.Generate(session); err != nil {
		return err
	}

	if s.config.Publish.Enabled {
		if err := s.publishCharts(ctx); err != nil {
			// Publishing failures don't invalidate the ingested data.
			s.logger.Warn().Err(err).Msg("Chart publishing incomplete")
		}
	}

	s.logger.Info().Dur("elapsed", time.Since(started)).Msg("Ingestion run complete")
	return nil
}

// signIn reuses a saved session when its cookies still authenticate.
// Otherwise it replays the scripted login, falling back to the agent when
// configured, and saves the fresh cookies.
func (s *Service) signIn(ctx context.Context, session siteSession, tools *browser.Tools) error {
	site := s.config.Site

	restored, err := session.RestoreCookies(site.BaseURL)
	if err != nil {
		s.logger.Warn().Err(err).Msg("Failed to restore saved session, will login")
	}
	if restored {
		// A restored session may have expired server-side. Fetch the home
		// page and only skip the login when it renders signed in.
		html, err := session.FetchPage(site.BaseURL)
		if err == nil && browser.SignedIn(html) {
			s.logger.Info().Msg("Reusing saved browser session")
			return nil
		}
		s.logger.Debug().Msg("Saved session no longer authenticates, logging in")
	}

	err = session.Login(site.BaseURL, site.Email, site.Password)
	if err == nil {
		return session.SaveCookies(site.BaseURL)
	}

	if s.assist == nil || tools == nil {
		return err
	}

	s.logger.Warn().Err(err).Msg("Scripted login failed, trying agent-assisted login")
	if agentErr := s.assist.Login(ctx, tools, site.BaseURL, site.Email, site.Password); agentErr != nil {
		return fmt.Errorf("scripted login failed (%v); agent-assisted login failed: %w", err, agentErr)
	}

	return session.SaveCookies(site.BaseURL)
}

// ingestCalories parses and persists the diary page. NetKcal is derived
// before persistence; the EMA is computed later at chart time.
func (s *Service) ingestCalories(html string) error {
	days, err := parser.ParseDiary(html, s.logger)
	if err != nil {
		return err
	}

	records, err := normalize.CalorieRecords(days)
	if err != nil {
		return err
	}

	for _, record := range records {
		record.NetKcal = metrics.NetCalories(record)
		if err := s.storage.CalorieStorage().Upsert(record); err != nil {
			// Non-atomic write policy: earlier upserts in this run stand.
			return err
		}
	}

	s.logger.Info().Int("records", len(records)).Msg("Calorie records ingested")
	return nil
}

// ingestMeasurements parses both progress tables, merges them by date union
// and persists the merged records with a body-fat estimate where the
// waist measurement admits one.
func (s *Service) ingestMeasurements(massHTML, waistHTML string) error {
	massRows, err := parser.ParseMassTable(massHTML, s.logger)
	if err != nil {
		return err
	}
	waistRows, err := parser.ParseWaistTable(waistHTML, s.logger)
	if err != nil {
		return err
	}

	massEntries, err := normalize.MassEntries(massRows)
	if err != nil {
		return err
	}
	waistEntries, err := normalize.WaistEntries(waistRows)
	if err != nil {
		return err
	}

	records := metrics.MergeMeasurements(massEntries, waistEntries)
	metrics.ApplyBodyFat(records)

	for _, record := range records {
		if err := normalize.ValidateMeasurement(record); err != nil {
			return err
		}
		if err := s.storage.MeasurementStorage().Upsert(record); err != nil {
			return err
		}
	}

	s.logger.Info().
		Int("mass_entries", len(massEntries)).
		Int("waist_entries", len(waistEntries)).
		Int("merged_records", len(records)).
		Msg("Measurement records ingested")
	return nil
}

// publishCharts uploads both PNG snapshots; one failure does not stop the
// other upload.
func (s *Service) publishCharts(ctx context.Context) error {
	publisher, err := publish.NewService(&s.config.Publish, s.logger)
	if err != nil {
		return err
	}
	return publisher.UploadFiles(ctx, s.charts.MassFatPNGPath(), s.charts.CaloriePNGPath())
}
