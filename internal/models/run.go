package models

import "time"

// RunStatus reports the state of the ingestion pipeline to the UI.
type RunStatus struct {
	Refreshing bool       `json:"refreshing"`
	LastRun    *time.Time `json:"last_run,omitempty"`
	LastError  string     `json:"last_error,omitempty"`
}

// BrowserCookie is a persisted session cookie captured after login so later
// runs can restore the session without replaying the sign-in steps.
type BrowserCookie struct {
	Name     string    `json:"name"`
	Value    string    `json:"value"`
	Domain   string    `json:"domain"`
	Path     string    `json:"path"`
	Expires  time.Time `json:"expires"`
	Secure   bool      `json:"secure"`
	HTTPOnly bool      `json:"http_only"`
}

// BrowserSessionState is the stored cookie jar for the tracked site.
type BrowserSessionState struct {
	ID        string          `badgerhold:"key" json:"id"`
	SiteHost  string          `json:"site_host"`
	Cookies   []BrowserCookie `json:"cookies"`
	SavedAt   time.Time       `json:"saved_at"`
	UpdatedAt time.Time       `json:"updated_at"`
}
