// Package config loads library configuration from defaults, an optional
// YAML file, and SHOPAPI_-prefixed environment variables, in that order of
// increasing priority.
package config

import (
	"fmt"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/confmap"
	env "github.com/knadh/koanf/providers/env/v2"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

const (
	// DefaultFile is the config file consulted when none is specified.
	DefaultFile = "shopapi.yaml"
	// envPrefix namespaces the environment variables this package reads.
	envPrefix = "SHOPAPI_"
)

// Load reads configuration from the default file location.
func Load() (*Config, error) {
	return LoadFile(DefaultFile)
}

// LoadFile reads configuration with priority: defaults < YAML file < env.
// The YAML file is optional; environment variables alone are enough to
// configure a client.
func LoadFile(path string) (*Config, error) {
	k := koanf.New(".")

	if err := loadDefaults(k); err != nil {
		return nil, fmt.Errorf("failed to load defaults: %w", err)
	}

	// YAML file is optional.
	if path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil && path != DefaultFile {
			return nil, fmt.Errorf("failed to load %s: %w", path, err)
		}
	}

	if err := k.Load(env.Provider(".", env.Opt{
		Prefix: envPrefix,
		TransformFunc: func(key, value string) (string, any) {
			key = strings.TrimPrefix(key, envPrefix)
			key = strings.ReplaceAll(strings.ToLower(key), "_", ".")
			return key, value
		},
	}), nil); err != nil {
		return nil, fmt.Errorf("failed to load environment variables: %w", err)
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := Validate(&cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return &cfg, nil
}

func loadDefaults(k *koanf.Koanf) error {
	defaults := map[string]any{
		"client.timeout":            "30s",
		"client.useragent":          "shopapi-go-client",
		"client.basepath":           "",
		"client.maxattempts":        1,
		"client.retrydelay":         "1s",
		"client.credentialheader":   "X-Access-Token",
		"client.deprecationheader":  "X-Api-Deprecated-Reason",
		"client.rate.persecond":     0.0,
		"client.rate.burst":         1,
		"client.logpayloads":        false,
		"client.maxpayloadlogbytes": 1024,

		// Session has no defaults: a shop domain must be configured
		// explicitly before any request can be built.

		"log.level":  "info",
		"log.pretty": false,
	}
	return k.Load(confmap.Provider(defaults, "."), nil)
}
