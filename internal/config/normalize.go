package config

import "strings"

// Normalize fills optional fields after Validate.
func Normalize(cfg *Config) {
	if cfg == nil {
		return
	}

	if cfg.Sampler.SampleTimeoutMs == 0 {
		cfg.Sampler.SampleTimeoutMs = cfg.Sampler.IntervalMs / 2
	}

	if cfg.Stats.DiskPath == "" {
		cfg.Stats.DiskPath = "/"
	}

	origins := cfg.Server.AllowedOrigins[:0]
	for _, o := range cfg.Server.AllowedOrigins {
		if o = strings.TrimRight(strings.TrimSpace(o), "/"); o != "" {
			origins = append(origins, o)
		}
	}
	cfg.Server.AllowedOrigins = origins
}
