package browser

import (
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"time"

	"github.com/chromedp/chromedp"
)

// Snapshot renders a local HTML file and writes a full-page PNG capture.
// The chart HTML artifacts are turned into their static raster form this
// way before publishing.
func (s *Session) Snapshot(htmlPath, pngPath string, settle time.Duration) error {
	abs, err := filepath.Abs(htmlPath)
	if err != nil {
		return fmt.Errorf("failed to resolve chart path %s: %w", htmlPath, err)
	}
	fileURL := url.URL{Scheme: "file", Path: abs}

	var buf []byte
	err = chromedp.Run(s.ctx,
		chromedp.Navigate(fileURL.String()),
		chromedp.Sleep(settle),
		chromedp.FullScreenshot(&buf, 90),
	)
	if err != nil {
		return fmt.Errorf("failed to capture %s: %w", htmlPath, err)
	}

	if err := os.WriteFile(pngPath, buf, 0644); err != nil {
		return fmt.Errorf("failed to write snapshot %s: %w", pngPath, err)
	}

	s.logger.Debug().Str("html", htmlPath).Str("png", pngPath).Int("bytes", len(buf)).Msg("Chart snapshot captured")
	return nil
}
