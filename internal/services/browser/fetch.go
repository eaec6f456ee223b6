package browser

import (
	"fmt"
	"time"

	"github.com/chromedp/chromedp"
	"golang.org/x/time/rate"
)

// PageKind identifies one of the three scraped pages.
type PageKind string

const (
	PageDiary PageKind = "diary"
	PageMass  PageKind = "mass"
	PageWaist PageKind = "waist"
)

// PageSet holds the raw HTML of the three pages fetched in one run.
type PageSet struct {
	Diary string
	Mass  string
	Waist string
}

// PageURLs builds the three target URLs for a run. The diary report covers
// diaryDays ending today.
func PageURLs(baseURL string, diaryDays int, now time.Time) map[PageKind]string {
	if diaryDays <= 0 {
		diaryDays = 7
	}
	start := now.AddDate(0, 0, -(diaryDays - 1)).Format("2006-01-02")

	return map[PageKind]string{
		PageDiary: fmt.Sprintf("%s/Diary/Reports/DiaryPrint?d1=%s&days=%d&time=%ddays", baseURL, start, diaryDays, diaryDays),
		PageMass:  baseURL + "/Diary/MyProgress?measureID=1",
		PageWaist: baseURL + "/Diary/MyProgress?measureID=2",
	}
}

// FetchPages retrieves the three pages sequentially, pacing requests with
// the configured fetch delay.
func (s *Session) FetchPages(baseURL string, diaryDays int) (*PageSet, error) {
	urls := PageURLs(baseURL, diaryDays, time.Now())
	limiter := rate.NewLimiter(rate.Every(s.config.FetchDelay.Std()), 1)

	pages := &PageSet{}
	order := []PageKind{PageDiary, PageMass, PageWaist}
	for _, kind := range order {
		if err := limiter.Wait(s.ctx); err != nil {
			return nil, fmt.Errorf("fetch pacing interrupted: %w", err)
		}

		html, err := s.FetchPage(urls[kind])
		if err != nil {
			return nil, fmt.Errorf("failed to fetch %s page: %w", kind, err)
		}

		switch kind {
		case PageDiary:
			pages.Diary = html
		case PageMass:
			pages.Mass = html
		case PageWaist:
			pages.Waist = html
		}
	}

	return pages, nil
}

// FetchPage navigates to a URL, waits for the page to settle, and returns
// the rendered HTML.
func (s *Session) FetchPage(targetURL string) (string, error) {
	s.logger.Debug().Str("url", targetURL).Msg("Fetching page")

	var html string
	err := chromedp.Run(s.ctx,
		chromedp.Navigate(targetURL),
		chromedp.Sleep(s.config.PageWaitTime.Std()),
		chromedp.OuterHTML("html", &html),
	)
	if err != nil {
		return "", fmt.Errorf("failed to fetch %s: %w", targetURL, err)
	}

	s.logger.Debug().Str("url", targetURL).Int("bytes", len(html)).Msg("Page fetched")
	return html, nil
}
