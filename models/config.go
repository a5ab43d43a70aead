// Package models defines the shared data structures of the resolution engine.
package models

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

// Config holds runtime configuration for the discovery engine.
// Values come from an optional YAML file; environment variables override it.
type Config struct {
	UserAgent        string `yaml:"user_agent"`
	BrowserUserAgent string `yaml:"browser_user_agent"`
	RequestTimeoutMS int    `yaml:"request_timeout_ms"`
	MaxImageSize     int64  `yaml:"max_image_size"`
	MaxHTMLSize      int64  `yaml:"max_html_size"`

	UseFallbackAPI      bool   `yaml:"use_fallback_api"`
	FallbackAPITemplate string `yaml:"fallback_api_template"` // verbs: host, size
	DefaultImageURL     string `yaml:"default_image_url"`     // process-wide cached default

	WorkerCount int `yaml:"worker_count"`
}

const (
	defaultUserAgent = "page-visuals/1.0 (+https://github.com/dtnitsch/page-visuals)"
	// A common desktop browser string; some sites refuse unknown agents.
	defaultBrowserUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/124.0.0.0 Safari/537.36"

	defaultFallbackTemplate = "https://www.google.com/s2/favicons?domain=%s&sz=%d"
)

// DefaultConfig returns a Config with all defaults applied.
func DefaultConfig() *Config {
	return &Config{
		UserAgent:           defaultUserAgent,
		BrowserUserAgent:    defaultBrowserUserAgent,
		RequestTimeoutMS:    10000,
		MaxImageSize:        5 * 1024 * 1024,
		MaxHTMLSize:         5 * 1024 * 1024,
		UseFallbackAPI:      true,
		FallbackAPITemplate: defaultFallbackTemplate,
		WorkerCount:         4,
	}
}

// LoadConfig reads a YAML config file and applies env overrides on top of the
// defaults. A missing file is not an error; env-only operation is supported.
func LoadConfig(path string) (*Config, error) {
	cfg := DefaultConfig()

	if path != "" {
		data, err := os.ReadFile(path)
		if err == nil {
			if err := yaml.Unmarshal(data, cfg); err != nil {
				return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
			}
		} else if !os.IsNotExist(err) {
			return nil, fmt.Errorf("failed to read config %s: %w", path, err)
		}
	}

	cfg.applyEnv()
	if cfg.RequestTimeoutMS <= 0 {
		cfg.RequestTimeoutMS = 10000
	}
	if cfg.WorkerCount <= 0 {
		cfg.WorkerCount = 4
	}
	return cfg, nil
}

func (c *Config) applyEnv() {
	c.UserAgent = envWithDefault("PV_USER_AGENT", c.UserAgent)
	c.BrowserUserAgent = envWithDefault("PV_BROWSER_USER_AGENT", c.BrowserUserAgent)
	c.FallbackAPITemplate = envWithDefault("PV_FALLBACK_API_TEMPLATE", c.FallbackAPITemplate)
	c.DefaultImageURL = envWithDefault("PV_DEFAULT_IMAGE_URL", c.DefaultImageURL)

	if v := os.Getenv("PV_REQUEST_TIMEOUT_MS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			c.RequestTimeoutMS = n
		}
	}
	if v := os.Getenv("PV_MAX_IMAGE_SIZE"); v != "" {
		if n, err := strconv.ParseInt(v, 10, 64); err == nil && n > 0 {
			c.MaxImageSize = n
		}
	}
	if v := os.Getenv("PV_USE_FALLBACK_API"); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			c.UseFallbackAPI = b
		}
	}
}

// RequestTimeout returns the per-request network deadline.
func (c *Config) RequestTimeout() time.Duration {
	return time.Duration(c.RequestTimeoutMS) * time.Millisecond
}

func envWithDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
