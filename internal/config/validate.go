package config

import (
	"fmt"
)

// Validate checks configuration correctness.
// It does not mutate configuration.
func Validate(cfg *Config) error {
	if cfg == nil {
		return fmt.Errorf("config is nil")
	}

	if cfg.Server.Addr == "" {
		return fmt.Errorf("server.addr is required")
	}
	if cfg.Server.RateLimit <= 0 {
		return fmt.Errorf("server.rate_limit must be > 0")
	}
	if cfg.Server.RateBurst < 1 {
		return fmt.Errorf("server.rate_burst must be >= 1")
	}

	if cfg.Sampler.IntervalMs <= 0 {
		return fmt.Errorf("sampler.interval_ms must be > 0")
	}
	if cfg.Sampler.SampleTimeoutMs < 0 || cfg.Sampler.SampleTimeoutMs >= cfg.Sampler.IntervalMs {
		return fmt.Errorf(
			"sampler.sample_timeout_ms must be below interval_ms (%d), got %d",
			cfg.Sampler.IntervalMs,
			cfg.Sampler.SampleTimeoutMs,
		)
	}

	if cfg.Stats.IntervalMs <= 0 {
		return fmt.Errorf("stats.interval_ms must be > 0")
	}

	if cfg.Auth.TokenExpiryHrs < 0 {
		return fmt.Errorf("auth.token_expiry_hours must be >= 0")
	}

	if err := cfg.Display.Validate(); err != nil {
		return fmt.Errorf("display: %w", err)
	}

	return nil
}
