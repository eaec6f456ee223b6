// Package browser owns the chromedp session used for scraping: allocator
// setup, the scripted sign-in, session cookie persistence, page fetching,
// and the tool primitives exposed to the MCP server and login agent.
package browser

import (
	"context"
	"fmt"
	"net/url"
	"time"

	"github.com/chromedp/cdproto/cdp"
	"github.com/chromedp/cdproto/network"
	"github.com/chromedp/chromedp"
	"github.com/ternarybob/arbor"
	"github.com/ternarybob/vitalog/internal/common"
	"github.com/ternarybob/vitalog/internal/interfaces"
	"github.com/ternarybob/vitalog/internal/models"
)

// Session wraps one headless-Chrome browser context. One session is created
// per ingestion run and released when the run finishes.
type Session struct {
	ctx             context.Context
	cancelBrowser   context.CancelFunc
	cancelAllocator context.CancelFunc
	config          *common.BrowserConfig
	sessions        interfaces.SessionStorage
	logger          arbor.ILogger
}

// NewSession starts a browser instance. The caller must Close it.
func NewSession(config *common.BrowserConfig, sessions interfaces.SessionStorage, logger arbor.ILogger) (*Session, error) {
	opts := append(
		chromedp.DefaultExecAllocatorOptions[:],
		chromedp.NoFirstRun,
		chromedp.NoDefaultBrowserCheck,
		chromedp.UserAgent(config.UserAgent),
		chromedp.Flag("disable-dev-shm-usage", true),
		chromedp.Flag("disable-gpu", true),
		chromedp.Flag("disable-extensions", true),
		chromedp.WindowSize(1920, 1080),
	)
	if config.NoSandbox {
		opts = append(opts, chromedp.Flag("no-sandbox", true))
	}
	if config.Headless {
		opts = append(opts, chromedp.Flag("headless", "new"))
	} else {
		opts = append(opts, chromedp.Flag("headless", false))
	}

	allocatorCtx, cancelAllocator := chromedp.NewExecAllocator(context.Background(), opts...)
	browserCtx, cancelBrowser := chromedp.NewContext(allocatorCtx,
		chromedp.WithLogf(func(s string, i ...interface{}) {
			logger.Debug().Msgf("chromedp: "+s, i...)
		}))

	// Force browser startup now so a missing Chrome binary fails here
	// instead of mid-run.
	if err := chromedp.Run(browserCtx, chromedp.Navigate("about:blank")); err != nil {
		cancelBrowser()
		cancelAllocator()
		return nil, fmt.Errorf("failed to start browser: %w", err)
	}

	logger.Debug().Bool("headless", config.Headless).Msg("Browser session started")

	return &Session{
		ctx:             browserCtx,
		cancelBrowser:   cancelBrowser,
		cancelAllocator: cancelAllocator,
		config:          config,
		sessions:        sessions,
		logger:          logger,
	}, nil
}

// Context returns the chromedp browser context for direct actions.
func (s *Session) Context() context.Context {
	return s.ctx
}

// Close releases the browser and its allocator.
func (s *Session) Close() {
	s.cancelBrowser()
	s.cancelAllocator()
	s.logger.Debug().Msg("Browser session closed")
}

// SaveCookies exports the browser's cookies and persists them for the host
// of the given URL.
func (s *Session) SaveCookies(siteURL string) error {
	parsed, err := url.Parse(siteURL)
	if err != nil {
		return fmt.Errorf("invalid site URL %q: %w", siteURL, err)
	}

	var cookies []*network.Cookie
	err = chromedp.Run(s.ctx, chromedp.ActionFunc(func(ctx context.Context) error {
		var err error
		cookies, err = network.GetCookies().WithURLs([]string{siteURL}).Do(ctx)
		return err
	}))
	if err != nil {
		return fmt.Errorf("failed to read browser cookies: %w", err)
	}

	state := &models.BrowserSessionState{
		SiteHost: parsed.Host,
		SavedAt:  time.Now(),
	}
	for _, c := range cookies {
		state.Cookies = append(state.Cookies, models.BrowserCookie{
			Name:     c.Name,
			Value:    c.Value,
			Domain:   c.Domain,
			Path:     c.Path,
			Expires:  time.Unix(int64(c.Expires), 0),
			Secure:   c.Secure,
			HTTPOnly: c.HTTPOnly,
		})
	}

	if err := s.sessions.SaveSession(state); err != nil {
		return err
	}

	s.logger.Info().Str("host", parsed.Host).Int("cookies", len(state.Cookies)).Msg("Session cookies saved")
	return nil
}

// RestoreCookies injects previously saved cookies for the host of the given
// URL. Returns false when no saved session exists.
func (s *Session) RestoreCookies(siteURL string) (bool, error) {
	parsed, err := url.Parse(siteURL)
	if err != nil {
		return false, fmt.Errorf("invalid site URL %q: %w", siteURL, err)
	}

	state, err := s.sessions.GetSession(parsed.Host)
	if err != nil {
		return false, err
	}
	if state == nil || len(state.Cookies) == 0 {
		return false, nil
	}

	if err := chromedp.Run(s.ctx, network.Enable()); err != nil {
		return false, fmt.Errorf("failed to enable network domain: %w", err)
	}

	err = chromedp.Run(s.ctx, chromedp.ActionFunc(func(ctx context.Context) error {
		for _, c := range state.Cookies {
			var expires *cdp.TimeSinceEpoch
			if c.Expires.After(time.Now()) {
				timestamp := cdp.TimeSinceEpoch(c.Expires)
				expires = &timestamp
			}

			setter := network.SetCookie(c.Name, c.Value).
				WithDomain(c.Domain).
				WithPath(c.Path).
				WithSecure(c.Secure).
				WithHTTPOnly(c.HTTPOnly)
			if expires != nil {
				setter = setter.WithExpires(expires)
			}
			if err := setter.Do(ctx); err != nil {
				s.logger.Warn().Err(err).Str("cookie", c.Name).Msg("Failed to restore cookie")
			}
		}
		return nil
	}))
	if err != nil {
		return false, fmt.Errorf("failed to restore cookies: %w", err)
	}

	s.logger.Info().Str("host", parsed.Host).Int("cookies", len(state.Cookies)).Msg("Session cookies restored")
	return true, nil
}
