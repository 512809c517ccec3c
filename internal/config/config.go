// Package config loads runtime configuration from a YAML file with
// defaults for anything missing. The API key is handed explicitly to the
// gemini client constructor; nothing below the cmd layer reads ambient
// state.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config holds runtime configuration for the eraser service.
type Config struct {
	ListenAddr string `yaml:"listen_addr"`

	APIKey  string `yaml:"api_key"`
	Model   string `yaml:"model"`
	BaseURL string `yaml:"base_url"`

	// RequestTimeoutSec bounds one model round trip; zero keeps the
	// transport default.
	RequestTimeoutSec int `yaml:"request_timeout_seconds"`

	MaxUploadMB int `yaml:"max_upload_mb"`
	// MaxSessions bounds the in-memory image store; oldest entries are
	// evicted first. Nothing persists beyond the session either way.
	MaxSessions int `yaml:"max_sessions"`
	// PreviewMaxPx is the longest edge of the preview generated on upload.
	PreviewMaxPx int `yaml:"preview_max_px"`

	LogLevel string `yaml:"log_level"`
	LogJSON  bool   `yaml:"log_json"`
}

// Default returns a Config populated with standard defaults.
func Default() *Config {
	return &Config{
		ListenAddr:   ":8080",
		Model:        "gemini-2.5-flash-image",
		MaxUploadMB:  24,
		MaxSessions:  64,
		PreviewMaxPx: 1024,
		LogLevel:     "info",
	}
}

// Validate clamps values to safe ranges.
func (c *Config) Validate() error {
	if c.ListenAddr == "" {
		c.ListenAddr = ":8080"
	}
	if c.MaxUploadMB <= 0 {
		c.MaxUploadMB = 24
	}
	if c.MaxSessions <= 0 {
		c.MaxSessions = 64
	}
	if c.PreviewMaxPx < 64 {
		c.PreviewMaxPx = 1024
	}
	if c.RequestTimeoutSec < 0 {
		c.RequestTimeoutSec = 0
	}
	if c.LogLevel == "" {
		c.LogLevel = "info"
	}
	return nil
}

// Load reads configuration from a YAML file. A missing file yields
// defaults; a malformed one is an error.
func Load(path string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, err
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	_ = cfg.Validate()
	return cfg, nil
}
