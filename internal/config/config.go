package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

// Config holds tunables for talking to the hosting API.
type Config struct {
	// APIBaseURL is the base URL of the GitHub REST API.
	APIBaseURL string `yaml:"api_base_url"`
	// UserAgent is sent with every outgoing request.
	UserAgent string `yaml:"user_agent"`
	// RequestTimeout is the per-request socket timeout.
	RequestTimeout time.Duration `yaml:"request_timeout"`
	// PacingInterval is the fixed delay between consecutive sources,
	// keeping the run under the API request quota.
	PacingInterval time.Duration `yaml:"pacing_interval"`
	// MaxAttempts is the retry budget per request, including the first try.
	MaxAttempts int `yaml:"max_attempts"`
	// RetryDelay is the fixed delay between retry attempts.
	RetryDelay time.Duration `yaml:"retry_delay"`
	// SniffBytes is how much of a raw script is fetched for shebang detection.
	SniffBytes int64 `yaml:"sniff_bytes"`
}

const (
	// DefaultSourcesFilename is the default package source list.
	DefaultSourcesFilename = "sources_repos.txt"

	// DefaultScriptsFilename is the default script source list.
	DefaultScriptsFilename = "sources_scripts.txt"

	// DefaultOutputFilename is the default manifest output path.
	DefaultOutputFilename = "manifest.json"

	// TokenEnvVariable is the environment variable consulted when no token flag is given.
	TokenEnvVariable = "GITHUB_TOKEN"

	// defaultAPIBaseURL is the public GitHub REST API endpoint.
	defaultAPIBaseURL = "https://api.github.com"

	// defaultUserAgent identifies the generator to the hosting API.
	defaultUserAgent = "Wenget-Bucket-Generator/1.0"

	// defaultRequestTimeout bounds a single HTTP round trip.
	defaultRequestTimeout = 30 * time.Second

	// defaultPacingInterval is the pause between sources.
	defaultPacingInterval = time.Second

	// defaultMaxAttempts is the per-request retry budget.
	defaultMaxAttempts = 3

	// defaultRetryDelay is the pause before a retry attempt.
	defaultRetryDelay = 5 * time.Second

	// defaultSniffBytes covers any sane shebang line.
	defaultSniffBytes = 1024
)

var (
	// errConfigIsNotSet is returned when a nil configuration is provided.
	errConfigIsNotSet = errors.New("configuration is not set")
	// errNegativeAttempts is returned when the retry budget is negative.
	errNegativeAttempts = errors.New("max_attempts must not be negative")
)

// Default returns a configuration filled with production defaults.
func Default() *Config {
	cfg := new(Config)
	// Validate never fails on an empty config, it only fills defaults.
	_ = Validate(cfg)

	return cfg
}

// Load reads configuration from the provided path and validates essential fields.
func Load(path string) (*Config, error) {
	contents, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		return nil, fmt.Errorf("read settings: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(contents, &cfg); err != nil {
		return nil, fmt.Errorf("unmarshal settings: %w", err)
	}

	if err := Validate(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Validate checks the provided settings and fills defaults for zero-valued fields.
func Validate(cfg *Config) error {
	if cfg == nil {
		return errConfigIsNotSet
	}

	if cfg.APIBaseURL == "" {
		cfg.APIBaseURL = defaultAPIBaseURL
	}

	if _, err := url.ParseRequestURI(cfg.APIBaseURL); err != nil {
		return fmt.Errorf("invalid API base URL: %w", err)
	}

	if cfg.UserAgent == "" {
		cfg.UserAgent = defaultUserAgent
	}

	if cfg.RequestTimeout <= 0 {
		cfg.RequestTimeout = defaultRequestTimeout
	}

	if cfg.PacingInterval <= 0 {
		cfg.PacingInterval = defaultPacingInterval
	}

	if cfg.MaxAttempts < 0 {
		return errNegativeAttempts
	}

	if cfg.MaxAttempts == 0 {
		cfg.MaxAttempts = defaultMaxAttempts
	}

	if cfg.RetryDelay <= 0 {
		cfg.RetryDelay = defaultRetryDelay
	}

	if cfg.SniffBytes <= 0 {
		cfg.SniffBytes = defaultSniffBytes
	}

	return nil
}
