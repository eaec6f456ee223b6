// Package charts renders the two chart artifacts from stored records. Each
// chart is produced as interactive HTML (served locally) and as a PNG
// snapshot (published to GitHub); all visual layout is delegated to
// go-echarts, the PNG is a browser capture of the rendered HTML.
package charts

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/ternarybob/arbor"
	"github.com/ternarybob/vitalog/internal/common"
	"github.com/ternarybob/vitalog/internal/interfaces"
	"github.com/ternarybob/vitalog/internal/services/browser"
)

// Service generates chart artifacts from the record collections.
type Service struct {
	config  *common.ChartsConfig
	storage interfaces.StorageManager
	logger  arbor.ILogger
}

// NewService creates a chart service.
func NewService(config *common.ChartsConfig, storage interfaces.StorageManager, logger arbor.ILogger) *Service {
	return &Service{
		config:  config,
		storage: storage,
		logger:  logger,
	}
}

// CalorieHTMLPath returns the calorie chart's HTML artifact location.
func (s *Service) CalorieHTMLPath() string {
	return filepath.Join(s.config.OutputDir, s.config.CalorieFile+".html")
}

// CaloriePNGPath returns the calorie chart's PNG artifact location.
func (s *Service) CaloriePNGPath() string {
	return filepath.Join(s.config.OutputDir, s.config.CalorieFile+".png")
}

// MassFatHTMLPath returns the mass/fat chart's HTML artifact location.
func (s *Service) MassFatHTMLPath() string {
	return filepath.Join(s.config.OutputDir, s.config.MassFatFile+".html")
}

// MassFatPNGPath returns the mass/fat chart's PNG artifact location.
func (s *Service) MassFatPNGPath() string {
	return filepath.Join(s.config.OutputDir, s.config.MassFatFile+".png")
}

// Generate renders both charts from the current store contents. When a
// browser session is supplied the PNG snapshots are captured as well;
// with a nil session only the HTML artifacts are refreshed.
func (s *Service) Generate(session *browser.Session) error {
	if err := os.MkdirAll(s.config.OutputDir, 0755); err != nil {
		return fmt.Errorf("failed to create chart output directory: %w", err)
	}

	calories, err := s.storage.CalorieStorage().GetAll()
	if err != nil {
		return fmt.Errorf("failed to load calorie records: %w", err)
	}
	measurements, err := s.storage.MeasurementStorage().GetAll()
	if err != nil {
		return fmt.Errorf("failed to load measurement records: %w", err)
	}

	if err := s.renderToFile(s.CalorieHTMLPath(), func(f *os.File) error {
		return s.renderCalorieChart(calories, f)
	}); err != nil {
		return err
	}
	if err := s.renderToFile(s.MassFatHTMLPath(), func(f *os.File) error {
		return s.renderMassFatChart(measurements, f)
	}); err != nil {
		return err
	}

	s.logger.Info().
		Int("calorie_records", len(calories)).
		Int("measurement_records", len(measurements)).
		Msg("Chart HTML artifacts rendered")

	if session == nil {
		return nil
	}

	settle, err := time.ParseDuration(s.config.SnapshotWait)
	if err != nil {
		settle = 500 * time.Millisecond
	}

	if err := session.Snapshot(s.CalorieHTMLPath(), s.CaloriePNGPath(), settle); err != nil {
		return fmt.Errorf("calorie chart snapshot: %w", err)
	}
	if err := session.Snapshot(s.MassFatHTMLPath(), s.MassFatPNGPath(), settle); err != nil {
		return fmt.Errorf("mass/fat chart snapshot: %w", err)
	}

	s.logger.Info().Msg("Chart PNG snapshots captured")
	return nil
}

func (s *Service) renderToFile(path string, render func(*os.File) error) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create chart file %s: %w", path, err)
	}
	defer f.Close()

	if err := render(f); err != nil {
		return fmt.Errorf("failed to render chart %s: %w", path, err)
	}
	return nil
}
