package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"netbar/internal/models"
)

type Config struct {
	Server  ServerConfig    `yaml:"server"`
	Auth    AuthConfig      `yaml:"auth"`
	Sampler SamplerConfig   `yaml:"sampler"`
	Stats   StatsConfig     `yaml:"stats"`
	Display models.Settings `yaml:"display"`
}

// ---- SERVER ----

type ServerConfig struct {
	Addr           string   `yaml:"addr"`
	AllowedOrigins []string `yaml:"allowed_origins,omitempty"` // WebSocket origins; empty allows all
	RateLimit      float64  `yaml:"rate_limit"`                // requests/sec per IP
	RateBurst      int      `yaml:"rate_burst"`
}

// ---- AUTH ----

type AuthConfig struct {
	Disabled       bool   `yaml:"disabled"`
	SecretKey      string `yaml:"secret_key"`
	SecretKeyFile  string `yaml:"secret_key_file"`
	TokenExpiryHrs int    `yaml:"token_expiry_hours"`
}

// ---- SAMPLER ----

type SamplerConfig struct {
	IntervalMs      int `yaml:"interval_ms"`
	SampleTimeoutMs int `yaml:"sample_timeout_ms"` // 0 means half the interval
}

// ---- SYSTEM STATS ----

type StatsConfig struct {
	IntervalMs int    `yaml:"interval_ms"`
	DiskPath   string `yaml:"disk_path"`
}

// Default returns the configuration used when no file is given
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			Addr:      "localhost:8080",
			RateLimit: 100,
			RateBurst: 200,
		},
		Auth: AuthConfig{
			TokenExpiryHrs: 90 * 24,
		},
		Sampler: SamplerConfig{
			IntervalMs: 1000,
		},
		Stats: StatsConfig{
			IntervalMs: 2000,
			DiskPath:   "/",
		},
		Display: models.DefaultSettings(),
	}
}

// Load reads a YAML file on top of Default. A missing file yields the defaults.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return cfg, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	return cfg, nil
}

// Save writes cfg as YAML, replacing the file atomically
func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("encode config: %w", err)
	}

	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	if err := os.Rename(tmp, path); err != nil {
		return fmt.Errorf("replace config: %w", err)
	}
	return nil
}
