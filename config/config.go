// Package config loads the session client configuration from a YAML file with
// environment variable overrides.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/caarlos0/env/v11"
	"gopkg.in/yaml.v3"
)

const (
	defaultTimeout   = 10 * time.Second
	defaultLogLevel  = "info"
	defaultLogFormat = "text"
	sessionFile      = "session.json"
	sessionFolder    = ".tokensale"
)

// ErrMissingBaseURL is returned by Validate when no backend URL is configured.
var ErrMissingBaseURL = errors.New("backend base URL is required")

// Config represents the session client configuration.
type Config struct {
	BaseURL         string        `yaml:"baseURL" json:"baseURL" env:"TOKENSALE_BASE_URL"`
	PublicURL       string        `yaml:"publicURL" json:"publicURL" env:"TOKENSALE_PUBLIC_URL"`
	RestorationPath string        `yaml:"restorationPath" json:"restorationPath" env:"TOKENSALE_RESTORATION_PATH"`
	StorageURL      string        `yaml:"storageURL" json:"storageURL" env:"TOKENSALE_STORAGE_URL"`
	StoragePrefix   string        `yaml:"storagePrefix" json:"storagePrefix" env:"TOKENSALE_STORAGE_PREFIX"`
	Timeout         time.Duration `yaml:"timeout" json:"timeout" env:"TOKENSALE_TIMEOUT"`
	LogLevel        string        `yaml:"logLevel" json:"logLevel" env:"TOKENSALE_LOG_LEVEL"`
	LogFormat       string        `yaml:"logFormat" json:"logFormat" env:"TOKENSALE_LOG_FORMAT"`
}

// Load reads config from path (skipped when empty), applies environment
// overrides and defaults.
func Load(path string) (*Config, error) {
	cfg := &Config{}
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read config: %w", err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config: %w", err)
		}
	}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse config env: %w", err)
	}
	cfg.Init()
	return cfg, nil
}

// Init applies defaults.
func (c *Config) Init() {
	if c.Timeout <= 0 {
		c.Timeout = defaultTimeout
	}
	if c.LogLevel == "" {
		c.LogLevel = defaultLogLevel
	}
	if c.LogFormat == "" {
		c.LogFormat = defaultLogFormat
	}
	if c.StorageURL == "" {
		if home, err := os.UserHomeDir(); err == nil {
			c.StorageURL = filepath.Join(home, sessionFolder, sessionFile)
		}
	}
}

// Validate checks required settings.
func (c *Config) Validate() error {
	if c.BaseURL == "" {
		return ErrMissingBaseURL
	}
	return nil
}
