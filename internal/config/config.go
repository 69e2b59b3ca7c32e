package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Placeholder values shipped in sample .env files. They count as "not configured".
var placeholderKeys = map[string]bool{
	"YOUR_API_KEY_HERE":      true,
	"YOUR_NEWS_API_KEY_HERE": true,
}

// Config holds application configuration.
type Config struct {
	// DefaultCity is used for weather lookups when no city can be extracted.
	DefaultCity string `json:"default_city"`

	// ServiceTimeoutSeconds bounds every outbound call to an external service.
	ServiceTimeoutSeconds int `json:"service_timeout_seconds"`

	// NewsCountry is the ISO country code passed to the headlines endpoint.
	NewsCountry string `json:"news_country"`

	// NewsLimit caps the number of headlines read out in a chat reply.
	NewsLimit int `json:"news_limit"`

	// Upstream endpoints. Overridable so tests and self-hosted proxies can point elsewhere.
	WeatherURL   string `json:"weather_url"`
	NewsURL      string `json:"news_url"`
	WikipediaURL string `json:"wikipedia_url"`
	SearchURL    string `json:"search_url"`
	MediaURL     string `json:"media_url"`

	// MediaOpenCommand launches a media URL (e.g. "xdg-open" or "open").
	// Empty means playback requests are only acknowledged, nothing is launched.
	MediaOpenCommand string `json:"media_open_command,omitempty"`

	// UnrecognizedLog is the append-only file for commands no rule matched.
	// Relative paths are resolved against the base directory.
	UnrecognizedLog string `json:"unrecognized_log"`

	// LogLevel is one of debug, info, warn, error.
	LogLevel string `json:"log_level"`

	// DBMaxOpenConns limits the maximum number of open database connections.
	// If set to 1, all database access is serialized (reduces "database is locked" errors).
	// 0 means use sql.DB default (unlimited). Only set if you experience contention.
	DBMaxOpenConns int `json:"db_max_open_conns,omitempty"`

	// DBMaxIdleConns limits the maximum number of idle database connections.
	// 0 means use sql.DB default. Typically set equal to DBMaxOpenConns.
	DBMaxIdleConns int `json:"db_max_idle_conns,omitempty"`

	// DisabledTools is a list of MCP tool names to exclude from registration.
	// Unknown tool names are logged as warnings.
	DisabledTools []string `json:"disabled_tools,omitempty"`

	// Credentials are read from the environment only, never from config.json.
	WeatherAPIKey string `json:"-"`
	NewsAPIKey    string `json:"-"`
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		DefaultCity:           "London",
		ServiceTimeoutSeconds: 10,
		NewsCountry:           "us",
		NewsLimit:             3,
		WeatherURL:            "https://api.openweathermap.org/data/2.5/weather",
		NewsURL:               "https://newsapi.org/v2/top-headlines",
		WikipediaURL:          "https://en.wikipedia.org/api/rest_v1/page/summary",
		SearchURL:             "https://api.duckduckgo.com/",
		MediaURL:              "https://www.youtube.com/results",
		UnrecognizedLog:       "unrecognized_commands.txt",
		LogLevel:              "info",
	}
}

// ServiceTimeout returns the outbound call timeout as a duration.
func (c *Config) ServiceTimeout() time.Duration {
	if c.ServiceTimeoutSeconds <= 0 {
		return 10 * time.Second
	}
	return time.Duration(c.ServiceTimeoutSeconds) * time.Second
}

// UnrecognizedLogPath resolves UnrecognizedLog against baseDir.
func (c *Config) UnrecognizedLogPath(baseDir string) string {
	if c.UnrecognizedLog == "" || filepath.IsAbs(c.UnrecognizedLog) {
		return c.UnrecognizedLog
	}
	return filepath.Join(baseDir, c.UnrecognizedLog)
}

// Load loads configuration from baseDir/config.json and credentials from the environment.
// Returns default config if the file doesn't exist.
// The baseDir parameter allows tests to use t.TempDir() instead of ~/.darek.
func Load(baseDir string) (*Config, error) {
	cfg, err := loadFile(filepath.Join(baseDir, "config.json"))
	if err != nil {
		return nil, err
	}

	// .env in the working directory wins over the one in baseDir; neither
	// overrides variables already present in the process environment.
	for _, path := range []string{".env", filepath.Join(baseDir, ".env")} {
		if err := loadDotEnv(path); err != nil {
			return nil, err
		}
	}

	ApplyEnv(cfg, os.Getenv)
	return cfg, nil
}

// loadDotEnv loads path into the process environment. A missing file is not an error.
func loadDotEnv(path string) error {
	if err := godotenv.Load(path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("load %s: %w", path, err)
	}
	return nil
}

// ApplyEnv copies credentials from getenv into cfg, dropping placeholder values.
func ApplyEnv(cfg *Config, getenv func(string) string) {
	cfg.WeatherAPIKey = credential(getenv("WEATHER_API_KEY"))
	cfg.NewsAPIKey = credential(getenv("NEWS_API_KEY"))
}

func credential(v string) string {
	v = strings.TrimSpace(v)
	if placeholderKeys[v] {
		return ""
	}
	return v
}

// loadFileRaw loads configuration from a specific file path.
// Returns zero-valued config if the file doesn't exist (not defaults).
func loadFileRaw(configPath string) (*Config, error) {
	data, err := os.ReadFile(configPath)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return &Config{}, nil
		}
		return nil, err
	}

	cfg := &Config{}
	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

// loadFile loads configuration from a specific file path.
// Returns default config if the file doesn't exist.
func loadFile(configPath string) (*Config, error) {
	cfg, err := loadFileRaw(configPath)
	if err != nil {
		return nil, err
	}
	return Merge(DefaultConfig(), cfg), nil
}

// Merge combines base and overlay configs.
// Overlay values take precedence for scalars; arrays are merged and deduplicated.
func Merge(base, overlay *Config) *Config {
	result := &Config{}

	result.DefaultCity = firstString(overlay.DefaultCity, base.DefaultCity)
	result.NewsCountry = firstString(overlay.NewsCountry, base.NewsCountry)
	result.WeatherURL = firstString(overlay.WeatherURL, base.WeatherURL)
	result.NewsURL = firstString(overlay.NewsURL, base.NewsURL)
	result.WikipediaURL = firstString(overlay.WikipediaURL, base.WikipediaURL)
	result.SearchURL = firstString(overlay.SearchURL, base.SearchURL)
	result.MediaURL = firstString(overlay.MediaURL, base.MediaURL)
	result.MediaOpenCommand = firstString(overlay.MediaOpenCommand, base.MediaOpenCommand)
	result.UnrecognizedLog = firstString(overlay.UnrecognizedLog, base.UnrecognizedLog)
	result.LogLevel = firstString(overlay.LogLevel, base.LogLevel)
	result.WeatherAPIKey = firstString(overlay.WeatherAPIKey, base.WeatherAPIKey)
	result.NewsAPIKey = firstString(overlay.NewsAPIKey, base.NewsAPIKey)

	result.ServiceTimeoutSeconds = firstInt(overlay.ServiceTimeoutSeconds, base.ServiceTimeoutSeconds)
	result.NewsLimit = firstInt(overlay.NewsLimit, base.NewsLimit)
	result.DBMaxOpenConns = firstInt(overlay.DBMaxOpenConns, base.DBMaxOpenConns)
	result.DBMaxIdleConns = firstInt(overlay.DBMaxIdleConns, base.DBMaxIdleConns)

	result.DisabledTools = mergeStringSlice(base.DisabledTools, overlay.DisabledTools)

	return result
}

func firstString(overlay, base string) string {
	if strings.TrimSpace(overlay) != "" {
		return overlay
	}
	return base
}

func firstInt(overlay, base int) int {
	if overlay != 0 {
		return overlay
	}
	return base
}

// mergeStringSlice combines two slices, trims whitespace, and removes duplicates.
func mergeStringSlice(a, b []string) []string {
	seen := make(map[string]bool)
	result := make([]string, 0, len(a)+len(b))

	for _, s := range append(append([]string{}, a...), b...) {
		s = strings.TrimSpace(s)
		if s != "" && !seen[s] {
			seen[s] = true
			result = append(result, s)
		}
	}

	if len(result) == 0 {
		return nil
	}
	return result
}
