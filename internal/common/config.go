package common

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/pelletier/go-toml/v2"
)

// Config represents the application configuration
type Config struct {
	Environment string        `toml:"environment"` // "development" or "production"
	Server      ServerConfig  `toml:"server"`
	Logging     LoggingConfig `toml:"logging"`
	Gemini      GeminiConfig  `toml:"gemini"`
	Upload      UploadConfig  `toml:"upload"`
	Poller      PollerConfig  `toml:"poller"`
}

type ServerConfig struct {
	Port int    `toml:"port"`
	Host string `toml:"host"`
}

type LoggingConfig struct {
	Level      string   `toml:"level"`       // "debug", "info", "warn", "error"
	Format     string   `toml:"format"`      // "json" or "text"
	Output     []string `toml:"output"`      // "stdout", "file"
	TimeFormat string   `toml:"time_format"` // Time format for logs (default: "15:04:05")
}

// GeminiConfig holds everything needed to reach the File Search API. The API
// key is required; startup fails without one.
type GeminiConfig struct {
	APIKey       string `toml:"api_key"`       // Required (REPERIO_GEMINI_API_KEY or GEMINI_API_KEY)
	BaseURL      string `toml:"base_url"`      // Override for tests; default generativelanguage endpoint
	Timeout      string `toml:"timeout"`       // Transport timeout, e.g. "30s"
	RateLimit    int    `toml:"rate_limit"`    // Outbound requests per second
	DefaultModel string `toml:"default_model"` // Model used when a query names none
}

// UploadConfig controls temp-file staging for multipart uploads.
type UploadConfig struct {
	StagingDir      string `toml:"staging_dir"`      // Directory for staged upload files
	JanitorSchedule string `toml:"janitor_schedule"` // Cron schedule for the stale-file sweep
	StaleAfter      string `toml:"stale_after"`      // Age at which a staged file is considered orphaned
	MaxFileSize     int64  `toml:"max_file_size"`    // Max upload size in bytes
}

// PollerConfig controls the operation polling loop.
type PollerConfig struct {
	Interval string `toml:"interval"` // Fixed wait between fetches, e.g. "3s"
	Ceiling  string `toml:"ceiling"`  // Wall-clock timeout, e.g. "5m"
}

// NewDefaultConfig returns a Config populated with defaults
func NewDefaultConfig() *Config {
	return &Config{
		Environment: "development",
		Server: ServerConfig{
			Port: 8580,
			Host: "localhost",
		},
		Logging: LoggingConfig{
			Level:      "info",
			Format:     "text",
			Output:     []string{"stdout"},
			TimeFormat: "15:04:05",
		},
		Gemini: GeminiConfig{
			BaseURL:      "https://generativelanguage.googleapis.com",
			Timeout:      "30s",
			RateLimit:    5,
			DefaultModel: "gemini-2.5-flash",
		},
		Upload: UploadConfig{
			StagingDir:      os.TempDir(),
			JanitorSchedule: "*/10 * * * *",
			StaleAfter:      "30m",
			MaxFileSize:     100 * 1024 * 1024, // 100 MB
		},
		Poller: PollerConfig{
			Interval: "3s",
			Ceiling:  "5m",
		},
	}
}

// LoadFromFiles loads configuration from multiple files with priority:
// default -> file1 -> file2 -> ... -> env -> CLI. Later files override
// earlier files.
func LoadFromFiles(paths ...string) (*Config, error) {
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
	if env := os.Getenv("REPERIO_ENV"); env != "" {
		config.Environment = env
	} else if env := os.Getenv("GO_ENV"); env != "" {
		config.Environment = env
	}

	if port := os.Getenv("REPERIO_SERVER_PORT"); port != "" {
		if p, err := strconv.Atoi(port); err == nil {
			config.Server.Port = p
		}
	}
	if host := os.Getenv("REPERIO_SERVER_HOST"); host != "" {
		config.Server.Host = host
	}

	if level := os.Getenv("REPERIO_LOG_LEVEL"); level != "" {
		config.Logging.Level = level
	}
	if format := os.Getenv("REPERIO_LOG_FORMAT"); format != "" {
		config.Logging.Format = format
	}
	if output := os.Getenv("REPERIO_LOG_OUTPUT"); output != "" {
		config.Logging.Output = strings.Split(output, ",")
	}

	// API key: REPERIO_GEMINI_API_KEY wins, GEMINI_API_KEY is the fallback
	// shared with the standalone Gemini tooling.
	if key := os.Getenv("REPERIO_GEMINI_API_KEY"); key != "" {
		config.Gemini.APIKey = key
	} else if key := os.Getenv("GEMINI_API_KEY"); key != "" && config.Gemini.APIKey == "" {
		config.Gemini.APIKey = key
	}
	if baseURL := os.Getenv("REPERIO_GEMINI_BASE_URL"); baseURL != "" {
		config.Gemini.BaseURL = baseURL
	}
	if model := os.Getenv("REPERIO_GEMINI_DEFAULT_MODEL"); model != "" {
		config.Gemini.DefaultModel = model
	}

	if dir := os.Getenv("REPERIO_UPLOAD_STAGING_DIR"); dir != "" {
		config.Upload.StagingDir = dir
	}
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

// Validate checks that the configuration can actually run. A missing Gemini
// API key is a startup-time fatal: every code path touches the gateway.
func (c *Config) Validate() error {
	if c.Gemini.APIKey == "" {
		return fmt.Errorf("gemini API key is required (set gemini.api_key, REPERIO_GEMINI_API_KEY or GEMINI_API_KEY)")
	}
	if _, err := time.ParseDuration(c.Gemini.Timeout); err != nil {
		return fmt.Errorf("invalid gemini timeout %q: %w", c.Gemini.Timeout, err)
	}
	if _, err := time.ParseDuration(c.Poller.Interval); err != nil {
		return fmt.Errorf("invalid poller interval %q: %w", c.Poller.Interval, err)
	}
	if _, err := time.ParseDuration(c.Poller.Ceiling); err != nil {
		return fmt.Errorf("invalid poller ceiling %q: %w", c.Poller.Ceiling, err)
	}
	if _, err := time.ParseDuration(c.Upload.StaleAfter); err != nil {
		return fmt.Errorf("invalid upload stale_after %q: %w", c.Upload.StaleAfter, err)
	}
	return nil
}

// TransportTimeout returns the parsed HTTP timeout, zero when unset or
// invalid so the client can apply its own default.
func (g *GeminiConfig) TransportTimeout() time.Duration {
	d, err := time.ParseDuration(g.Timeout)
	if err != nil {
		return 0
	}
	return d
}

// PollerInterval returns the parsed fixed polling interval.
func (c *Config) PollerInterval() time.Duration {
	d, err := time.ParseDuration(c.Poller.Interval)
	if err != nil {
		return 3 * time.Second
	}
	return d
}

// PollerCeiling returns the parsed polling wall-clock ceiling.
func (c *Config) PollerCeiling() time.Duration {
	d, err := time.ParseDuration(c.Poller.Ceiling)
	if err != nil {
		return 5 * time.Minute
	}
	return d
}

// UploadStaleAfter returns the parsed staged-file TTL.
func (c *Config) UploadStaleAfter() time.Duration {
	d, err := time.ParseDuration(c.Upload.StaleAfter)
	if err != nil {
		return 30 * time.Minute
	}
	return d
}
