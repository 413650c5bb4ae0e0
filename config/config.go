// Package config manages application configuration.
package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strconv"
	"time"
)

// ErrAPIKeyMissing indicates the required YouTube Data API key was not found
// in the environment. This is the only configuration failure that is fatal.
var ErrAPIKeyMissing = errors.New("config: YOUTUBE_API_KEY is not set")

// Config holds all application configuration for transcript downloads.
type Config struct {
	// APIKey is the YouTube Data API v3 key. Sourced from the environment
	// only, never from the config file.
	APIKey string `json:"-"`

	// LogFile is the path of the log file.
	LogFile string `json:"log_file"`
	// LogEnabled controls whether anything is written to the log file.
	LogEnabled bool `json:"log_enabled"`

	// TranscriptDir is the root directory for persisted records.
	TranscriptDir string `json:"transcript_dir"`
	// FilenameMaxLen caps the length of sanitized file names, in runes.
	FilenameMaxLen int `json:"filename_max_len"`
	// FilenamePattern matches the characters stripped from file names.
	FilenamePattern string `json:"filename_pattern"`
	// VideoIDPattern locates a video ID embedded in a URL. Must contain
	// exactly one capture group.
	VideoIDPattern string `json:"video_id_pattern"`

	// HTTPTimeout is the timeout for direct HTTP requests (timedtext).
	HTTPTimeout time.Duration `json:"http_timeout"`
}

// DefaultConfig returns configuration with safe defaults.
func DefaultConfig() *Config {
	return &Config{
		LogFile:         "ytscribe.log",
		LogEnabled:      true,
		TranscriptDir:   "transcripts",
		FilenameMaxLen:  36,
		FilenamePattern: `[^\w\-\s]`,
		VideoIDPattern:  `(?:v=|/)([0-9A-Za-z_-]{11})(?:[&?].*)?`,
		HTTPTimeout:     30 * time.Second,
	}
}

// fileConfig mirrors Config with pointer fields so that keys absent from
// the config file leave the defaults untouched.
type fileConfig struct {
	LogFile         *string `json:"log_file"`
	LogEnabled      *bool   `json:"log_enabled"`
	TranscriptDir   *string `json:"transcript_dir"`
	FilenameMaxLen  *int    `json:"filename_max_len"`
	FilenamePattern *string `json:"filename_pattern"`
	VideoIDPattern  *string `json:"video_id_pattern"`
	HTTPTimeout     *string `json:"http_timeout"`
}

// Load loads configuration from defaults, config file, and environment.
// Priority: env vars > config file > defaults. The API key is required;
// without it Load fails with ErrAPIKeyMissing.
func Load() (*Config, error) {
	cfg := DefaultConfig()

	if err := cfg.loadFromFile(); err != nil {
		// Config file is optional
		if !os.IsNotExist(err) {
			return nil, fmt.Errorf("load config file: %w", err)
		}
	}

	cfg.loadFromEnv()

	cfg.APIKey = os.Getenv("YOUTUBE_API_KEY")
	if cfg.APIKey == "" {
		return nil, ErrAPIKeyMissing
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// loadFromFile attempts to load config from ytscribe.json in the current
// directory or the user config directory.
func (c *Config) loadFromFile() error {
	paths := []string{
		"ytscribe.json",
		filepath.Join(os.Getenv("HOME"), ".config", "ytscribe", "ytscribe.json"),
	}

	for _, path := range paths {
		data, err := os.ReadFile(path)
		if err != nil {
			if os.IsNotExist(err) {
				continue
			}
			return err
		}

		var fc fileConfig
		if err := json.Unmarshal(data, &fc); err != nil {
			return fmt.Errorf("parse %s: %w", path, err)
		}
		c.apply(&fc)
		return nil
	}

	return os.ErrNotExist
}

// apply overlays non-nil file values onto the config.
func (c *Config) apply(fc *fileConfig) {
	if fc.LogFile != nil {
		c.LogFile = *fc.LogFile
	}
	if fc.LogEnabled != nil {
		c.LogEnabled = *fc.LogEnabled
	}
	if fc.TranscriptDir != nil {
		c.TranscriptDir = *fc.TranscriptDir
	}
	if fc.FilenameMaxLen != nil {
		c.FilenameMaxLen = *fc.FilenameMaxLen
	}
	if fc.FilenamePattern != nil {
		c.FilenamePattern = *fc.FilenamePattern
	}
	if fc.VideoIDPattern != nil {
		c.VideoIDPattern = *fc.VideoIDPattern
	}
	if fc.HTTPTimeout != nil {
		if d, err := time.ParseDuration(*fc.HTTPTimeout); err == nil {
			c.HTTPTimeout = d
		}
	}
}

// loadFromEnv overrides config with environment variables.
func (c *Config) loadFromEnv() {
	if v := os.Getenv("YTSCRIBE_LOG_FILE"); v != "" {
		c.LogFile = v
	}
	if v := os.Getenv("YTSCRIBE_LOG_ENABLED"); v != "" {
		c.LogEnabled = v == "true" || v == "1"
	}
	if v := os.Getenv("YTSCRIBE_TRANSCRIPT_DIR"); v != "" {
		c.TranscriptDir = v
	}
	if v := os.Getenv("YTSCRIBE_FILENAME_MAX_LEN"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			c.FilenameMaxLen = n
		}
	}
	if v := os.Getenv("YTSCRIBE_HTTP_TIMEOUT"); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			c.HTTPTimeout = d
		}
	}
}

// Validate checks that configuration values are valid and consistent.
func (c *Config) Validate() error {
	if c.LogFile == "" {
		return fmt.Errorf("log_file must not be empty")
	}
	if c.TranscriptDir == "" {
		return fmt.Errorf("transcript_dir must not be empty")
	}
	if c.FilenameMaxLen <= 0 {
		return fmt.Errorf("filename_max_len must be positive")
	}
	if _, err := regexp.Compile(c.FilenamePattern); err != nil {
		return fmt.Errorf("filename_pattern: %w", err)
	}
	re, err := regexp.Compile(c.VideoIDPattern)
	if err != nil {
		return fmt.Errorf("video_id_pattern: %w", err)
	}
	if re.NumSubexp() != 1 {
		return fmt.Errorf("video_id_pattern must contain exactly one capture group")
	}
	if c.HTTPTimeout <= 0 {
		return fmt.Errorf("http_timeout must be positive")
	}
	return nil
}
