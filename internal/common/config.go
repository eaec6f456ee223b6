package common

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"github.com/pelletier/go-toml/v2"
)

// Duration is a time.Duration that decodes from TOML duration strings
// such as "500ms" or "30s".
type Duration time.Duration

func (d *Duration) UnmarshalText(text []byte) error {
	parsed, err := time.ParseDuration(string(text))
	if err != nil {
		return err
	}
	*d = Duration(parsed)
	return nil
}

// Std returns the value as a standard time.Duration.
func (d Duration) Std() time.Duration { return time.Duration(d) }

// Config represents the application configuration
type Config struct {
	Environment string         `toml:"environment"` // "development" or "production"
	Server      ServerConfig   `toml:"server"`
	Storage     StorageConfig  `toml:"storage"`
	Site        SiteConfig     `toml:"site"`
	Browser     BrowserConfig  `toml:"browser"`
	Charts      ChartsConfig   `toml:"charts"`
	Publish     PublishConfig  `toml:"publish"`
	Schedule    ScheduleConfig `toml:"schedule"`
	Logging     LoggingConfig  `toml:"logging"`
	Claude      ClaudeConfig   `toml:"claude"`
}

type ServerConfig struct {
	Port int    `toml:"port"`
	Host string `toml:"host"`
}

type StorageConfig struct {
	Badger BadgerConfig `toml:"badger"`
}

// BadgerConfig represents BadgerDB-specific configuration
type BadgerConfig struct {
	Path           string `toml:"path"`             // Database directory path
	ResetOnStartup bool   `toml:"reset_on_startup"` // Delete database on startup for clean test runs
}

// SiteConfig describes the tracked site and the account used to sign in
type SiteConfig struct {
	BaseURL   string `toml:"base_url"`   // e.g. "https://www.nutracheck.co.uk"
	Email     string `toml:"email"`      // Account email (VITALOG_EMAIL overrides)
	Password  string `toml:"password"`   // Account password (VITALOG_PASSWORD overrides)
	DiaryDays int    `toml:"diary_days"` // Days of diary history per fetch (default: 7)
}

// BrowserConfig contains chromedp session configuration
type BrowserConfig struct {
	Headless     bool          `toml:"headless"`
	NoSandbox    bool          `toml:"no_sandbox"`
	UserAgent    string        `toml:"user_agent"`
	PageWaitTime Duration `toml:"page_wait_time"` // Time to wait for a page to render
	FetchDelay   Duration `toml:"fetch_delay"`    // Minimum delay between page fetches
	LoginTimeout Duration `toml:"login_timeout"`  // Timeout for the scripted login sequence
}

// ChartsConfig controls chart artifact generation
type ChartsConfig struct {
	OutputDir    string  `toml:"output_dir"`    // Directory for rendered chart artifacts
	CalorieFile  string  `toml:"calorie_file"`  // Calorie chart file name (without extension)
	MassFatFile  string  `toml:"mass_fat_file"` // Mass/body-fat chart file name (without extension)
	TargetKcal   float64 `toml:"target_kcal"`   // Horizontal target line on the calorie chart
	EMASpan      int     `toml:"ema_span"`      // Smoothing span for the net-kcal EMA
	SnapshotWait string  `toml:"snapshot_wait"` // Render settle time before PNG capture
}

// PublishConfig controls the GitHub chart upload
type PublishConfig struct {
	Enabled       bool   `toml:"enabled"`
	Owner         string `toml:"owner"`          // Repository owner
	Repo          string `toml:"repo"`           // Repository name
	Token         string `toml:"token"`          // GITHUB_TOKEN overrides
	CommitMessage string `toml:"commit_message"` // Commit message for chart updates
}

// ScheduleConfig controls the optional periodic refresh
type ScheduleConfig struct {
	Enabled bool   `toml:"enabled"`
	Cron    string `toml:"cron"` // Cron schedule format
}

type LoggingConfig struct {
	Level  string   `toml:"level"`  // "debug", "info", "warn", "error"
	Output []string `toml:"output"` // "stdout", "file"
}

// ClaudeConfig contains Anthropic Claude API configuration for the
// agent-assisted login fallback
type ClaudeConfig struct {
	APIKey    string `toml:"api_key"`    // ANTHROPIC_API_KEY overrides
	Model     string `toml:"model"`      // Model for agent operations
	MaxTokens int    `toml:"max_tokens"` // Maximum tokens per response
	MaxTurns  int    `toml:"max_turns"`  // Maximum agent conversation turns
	Timeout   string `toml:"timeout"`    // Operation timeout as duration string
}

// NewDefaultConfig creates a configuration with default values.
// Technical parameters are hardcoded here for production stability.
// Only user-facing settings should be exposed in vitalog.toml.
func NewDefaultConfig() *Config {
	return &Config{
		Environment: "development",
		Server: ServerConfig{
			Port: 5000,
			Host: "0.0.0.0",
		},
		Storage: StorageConfig{
			Badger: BadgerConfig{
				Path: "./data",
			},
		},
		Site: SiteConfig{
			BaseURL:   "https://www.nutracheck.co.uk",
			DiaryDays: 7,
		},
		Browser: BrowserConfig{
			Headless:     true,
			NoSandbox:    true,
			UserAgent:    "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36",
			PageWaitTime: Duration(1 * time.Second),
			FetchDelay:   Duration(1 * time.Second),
			LoginTimeout: Duration(30 * time.Second),
		},
		Charts: ChartsConfig{
			OutputDir:    "./charts",
			CalorieFile:  "kcal_plot",
			MassFatFile:  "mass_fat_plot",
			TargetKcal:   1500,
			EMASpan:      7,
			SnapshotWait: "500ms",
		},
		Publish: PublishConfig{
			Enabled:       true,
			CommitMessage: "Update health tracking charts",
		},
		Schedule: ScheduleConfig{
			Enabled: false,
			Cron:    "0 6 * * *", // Daily at 06:00
		},
		Logging: LoggingConfig{
			Level:  "info",
			Output: []string{"stdout", "file"},
		},
		Claude: ClaudeConfig{
			Model:     "claude-haiku-3-5-20241022",
			MaxTokens: 4096,
			MaxTurns:  15,
			Timeout:   "5m",
		},
	}
}

// LoadFromFiles loads configuration from files with priority:
// defaults -> file1 -> file2 -> ... -> .env -> environment variables.
// Later files override earlier files.
func LoadFromFiles(paths ...string) (*Config, error) {
	// Load .env into the process environment if present (best effort,
	// matches the deployment layout where secrets live beside the binary)
	_ = godotenv.Load()

	config := NewDefaultConfig()

	for i, path := range paths {
		if path == "" {
			continue
		}

		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
		}

		if err := toml.Unmarshal(data, config); err != nil {
			return nil, fmt.Errorf("failed to parse config file %s (file %d of %d): %w", path, i+1, len(paths), err)
		}
	}

	applyEnvOverrides(config)

	return config, nil
}

// applyEnvOverrides applies environment variable overrides to config
func applyEnvOverrides(config *Config) {
	if env := os.Getenv("VITALOG_ENV"); env != "" {
		config.Environment = env
	} else if env := os.Getenv("GO_ENV"); env != "" {
		config.Environment = env
	}

	if port := os.Getenv("VITALOG_SERVER_PORT"); port != "" {
		if p, err := strconv.Atoi(port); err == nil {
			config.Server.Port = p
		}
	}
	if host := os.Getenv("VITALOG_SERVER_HOST"); host != "" {
		config.Server.Host = host
	}
	if path := os.Getenv("VITALOG_DATA_PATH"); path != "" {
		config.Storage.Badger.Path = path
	}

	// Site credentials keep their legacy variable names so existing .env
	// files continue to work alongside the VITALOG_* forms.
	if email := os.Getenv("VITALOG_EMAIL"); email != "" {
		config.Site.Email = email
	} else if email := os.Getenv("NUTRACHECK_EMAIL"); email != "" {
		config.Site.Email = email
	}
	if pw := os.Getenv("VITALOG_PASSWORD"); pw != "" {
		config.Site.Password = pw
	} else if pw := os.Getenv("NUTRACHECK_PASSWORD"); pw != "" {
		config.Site.Password = pw
	}

	if token := os.Getenv("GITHUB_TOKEN"); token != "" {
		config.Publish.Token = token
	}
	if repo := os.Getenv("VITALOG_GITHUB_REPO"); repo != "" {
		config.Publish.Owner, config.Publish.Repo = splitRepo(repo)
	}

	if key := os.Getenv("ANTHROPIC_API_KEY"); key != "" {
		config.Claude.APIKey = key
	}

	if level := os.Getenv("VITALOG_LOG_LEVEL"); level != "" {
		config.Logging.Level = level
	}
}

// splitRepo splits an "owner/repo" string into its parts. A value without a
// slash is treated as a repo name with no owner.
func splitRepo(full string) (owner, repo string) {
	for i := 0; i < len(full); i++ {
		if full[i] == '/' {
			return full[:i], full[i+1:]
		}
	}
	return "", full
}

// ApplyFlagOverrides applies command-line flag overrides (highest priority)
func ApplyFlagOverrides(config *Config, port int, host string) {
	if port != 0 {
		config.Server.Port = port
	}
	if host != "" {
		config.Server.Host = host
	}
}
