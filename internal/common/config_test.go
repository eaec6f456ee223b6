package common

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfigFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "vitalog.toml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoadFromFiles_BrowserDurations(t *testing.T) {
	path := writeConfigFile(t, `
[browser]
headless = true
page_wait_time = "2s"
fetch_delay = "250ms"
login_timeout = "45s"
`)

	config, err := LoadFromFiles(path)
	require.NoError(t, err)

	assert.Equal(t, 2*time.Second, config.Browser.PageWaitTime.Std())
	assert.Equal(t, 250*time.Millisecond, config.Browser.FetchDelay.Std())
	assert.Equal(t, 45*time.Second, config.Browser.LoginTimeout.Std())
}

func TestLoadFromFiles_InvalidDuration(t *testing.T) {
	path := writeConfigFile(t, `
[browser]
login_timeout = "not-a-duration"
`)

	_, err := LoadFromFiles(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), path)
}

func TestLoadFromFiles_DurationDefaultsSurviveOverride(t *testing.T) {
	// A file that sets only one duration keeps the defaults for the rest.
	path := writeConfigFile(t, `
[browser]
fetch_delay = "3s"
`)

	config, err := LoadFromFiles(path)
	require.NoError(t, err)

	assert.Equal(t, 3*time.Second, config.Browser.FetchDelay.Std())
	assert.Equal(t, 1*time.Second, config.Browser.PageWaitTime.Std())
	assert.Equal(t, 30*time.Second, config.Browser.LoginTimeout.Std())
}
