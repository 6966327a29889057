package config

import (
	"fmt"
	"slices"
)

var validLogLevels = []string{"trace", "debug", "info", "warn", "error", "fatal", "panic"}

// Validate checks the loaded configuration for values the client cannot
// work with. Session settings are intentionally not required here: a
// caller may construct sessions programmatically and only use the client
// section.
func Validate(cfg *Config) error {
	if err := validateClient(&cfg.Client); err != nil {
		return fmt.Errorf("client config: %w", err)
	}
	if err := validateLog(&cfg.Log); err != nil {
		return fmt.Errorf("log config: %w", err)
	}
	return nil
}

func validateClient(cfg *ClientConfig) error {
	if cfg.Timeout < 0 {
		return fmt.Errorf("timeout must not be negative")
	}
	if cfg.MaxAttempts < 1 {
		return fmt.Errorf("maxattempts must be at least 1")
	}
	if cfg.RetryDelay < 0 {
		return fmt.Errorf("retrydelay must not be negative")
	}
	if cfg.Rate.PerSecond < 0 {
		return fmt.Errorf("rate.persecond must not be negative")
	}
	if cfg.Rate.PerSecond > 0 && cfg.Rate.Burst < 1 {
		return fmt.Errorf("rate.burst must be at least 1 when throttling is enabled")
	}
	if cfg.MaxPayloadLogBytes < 0 {
		return fmt.Errorf("maxpayloadlogbytes must not be negative")
	}
	return nil
}

func validateLog(cfg *LogConfig) error {
	if !slices.Contains(validLogLevels, cfg.Level) {
		return fmt.Errorf("log level must be one of %v", validLogLevels)
	}
	return nil
}
