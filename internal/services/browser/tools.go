package browser

import (
	"context"
	"encoding/base64"
	"fmt"
	"time"

	"github.com/chromedp/chromedp"
)

// Tools exposes browser primitives over a session. The MCP server and the
// login agent both drive the browser through this surface; the interesting
// reasoning lives in the caller, not here.
type Tools struct {
	session *Session
}

// NewTools wraps a session with the tool surface.
func NewTools(session *Session) *Tools {
	return &Tools{session: session}
}

// Navigate loads a URL and reports the resulting location.
func (t *Tools) Navigate(targetURL string) (string, error) {
	var current string
	err := chromedp.Run(t.session.ctx,
		chromedp.Navigate(targetURL),
		chromedp.Sleep(t.session.config.PageWaitTime.Std()),
		chromedp.Location(&current),
	)
	if err != nil {
		return "", fmt.Errorf("navigate to %s failed: %w", targetURL, err)
	}
	return fmt.Sprintf("Navigated to %s. Current URL: %s", targetURL, current), nil
}

// Click clicks the first element matching a CSS selector.
func (t *Tools) Click(selector string) (string, error) {
	ctx, cancel := context.WithTimeout(t.session.ctx, 10*time.Second)
	defer cancel()

	err := chromedp.Run(ctx,
		chromedp.WaitVisible(selector, chromedp.ByQuery),
		chromedp.Click(selector, chromedp.ByQuery),
	)
	if err != nil {
		return "", fmt.Errorf("element not found or not clickable: %s: %w", selector, err)
	}
	return fmt.Sprintf("Clicked element: %s", selector), nil
}

// TypeText types into the first element matching a CSS selector.
func (t *Tools) TypeText(selector, text string) (string, error) {
	ctx, cancel := context.WithTimeout(t.session.ctx, 10*time.Second)
	defer cancel()

	err := chromedp.Run(ctx,
		chromedp.WaitVisible(selector, chromedp.ByQuery),
		chromedp.SendKeys(selector, text, chromedp.ByQuery),
	)
	if err != nil {
		return "", fmt.Errorf("input element not found: %s: %w", selector, err)
	}
	return fmt.Sprintf("Typed text into element: %s", selector), nil
}

// GetContent returns the outer HTML of the first matching element, or the
// whole page when selector is empty.
func (t *Tools) GetContent(selector string) (string, error) {
	if selector == "" {
		selector = "html"
	}
	var html string
	err := chromedp.Run(t.session.ctx, chromedp.OuterHTML(selector, &html, chromedp.ByQuery))
	if err != nil {
		return "", fmt.Errorf("failed to read content of %s: %w", selector, err)
	}
	return html, nil
}

// WaitFor blocks until the element is visible or the timeout expires.
func (t *Tools) WaitFor(selector string, timeout time.Duration) (string, error) {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	ctx, cancel := context.WithTimeout(t.session.ctx, timeout)
	defer cancel()

	if err := chromedp.Run(ctx, chromedp.WaitVisible(selector, chromedp.ByQuery)); err != nil {
		return "", fmt.Errorf("element did not appear within %s: %s: %w", timeout, selector, err)
	}
	return fmt.Sprintf("Element is visible: %s", selector), nil
}

// Screenshot captures a full-page screenshot and returns it base64-encoded.
func (t *Tools) Screenshot() (string, error) {
	var buf []byte
	if err := chromedp.Run(t.session.ctx, chromedp.FullScreenshot(&buf, 90)); err != nil {
		return "", fmt.Errorf("screenshot failed: %w", err)
	}
	return base64.StdEncoding.EncodeToString(buf), nil
}

// ExecuteJS evaluates a JavaScript expression and returns its stringified
// result.
func (t *Tools) ExecuteJS(script string) (string, error) {
	var result interface{}
	if err := chromedp.Run(t.session.ctx, chromedp.Evaluate(script, &result)); err != nil {
		return "", fmt.Errorf("script evaluation failed: %w", err)
	}
	return fmt.Sprintf("%v", result), nil
}

// GetAttribute reads an attribute from the first matching element.
func (t *Tools) GetAttribute(selector, attribute string) (string, error) {
	var value string
	var ok bool
	err := chromedp.Run(t.session.ctx, chromedp.AttributeValue(selector, attribute, &value, &ok, chromedp.ByQuery))
	if err != nil {
		return "", fmt.Errorf("failed to read attribute %s of %s: %w", attribute, selector, err)
	}
	if !ok {
		return "", fmt.Errorf("attribute %s not present on %s", attribute, selector)
	}
	return value, nil
}
