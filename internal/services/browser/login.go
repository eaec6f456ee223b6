package browser

import (
	"context"
	"fmt"
	"strings"

	"github.com/chromedp/chromedp"
)

// Sign-in flow selectors. These mirror the site's current markup; when they
// drift, the scripted login fails and the agent-assisted fallback (if
// enabled) takes over.
const (
	selCookieBanner = "#displayCookiePop"
	selCookieAccept = "a.cookieBtn.cookieBtnAccept"
	selSignInButton = "#navSignInBtn"
	selEmailInput   = "#enterEmailinp"
	selPasswordInp  = "#enterPWinp"
	selRememberMe   = "#RememberMe"
	selSubmitButton = "button.btn.btn-success"
)

// SignedIn reports whether the given page HTML belongs to an authenticated
// session. Every page served to a signed-out visitor renders the nav
// sign-in button.
func SignedIn(html string) bool {
	return !strings.Contains(html, "navSignInBtn")
}

// Login replays the scripted sign-in sequence: accept the cookie banner,
// open the sign-in form, fill credentials, tick "remember me", submit.
func (s *Session) Login(siteURL, email, password string) error {
	if email == "" || password == "" {
		return fmt.Errorf("site credentials are required for login")
	}

	s.logger.Info().Str("url", siteURL).Msg("Starting scripted login")

	ctx, cancel := context.WithTimeout(s.ctx, s.config.LoginTimeout.Std())
	defer cancel()

	err := chromedp.Run(ctx,
		chromedp.Navigate(siteURL),
		chromedp.WaitVisible(selCookieBanner, chromedp.ByID),
		chromedp.Click(selCookieAccept, chromedp.ByQuery),
		chromedp.Click(selSignInButton, chromedp.ByID),
		chromedp.WaitVisible(selEmailInput, chromedp.ByID),
		chromedp.SendKeys(selEmailInput, email, chromedp.ByID),
		chromedp.SendKeys(selPasswordInp, password, chromedp.ByID),
		chromedp.Click(selRememberMe, chromedp.ByID),
		chromedp.Click(selSubmitButton, chromedp.ByQuery),
		chromedp.Sleep(s.config.PageWaitTime.Std()),
	)
	if err != nil {
		return fmt.Errorf("scripted login failed: %w", err)
	}

	s.logger.Info().Msg("Scripted login complete")
	return nil
}
