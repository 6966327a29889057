package config

import (
	"time"

	"github.com/gaborage/shopapi/client"
	"github.com/gaborage/shopapi/session"
)

// Config is the root configuration structure.
type Config struct {
	Client  ClientConfig  `koanf:"client"`
	Session SessionConfig `koanf:"session"`
	Log     LogConfig     `koanf:"log"`
}

// ClientConfig mirrors client.Config for file/env loading.
type ClientConfig struct {
	Timeout            time.Duration `koanf:"timeout"`
	UserAgent          string        `koanf:"useragent"`
	BasePath           string        `koanf:"basepath"`
	MaxAttempts        int           `koanf:"maxattempts"`
	RetryDelay         time.Duration `koanf:"retrydelay"`
	CredentialHeader   string        `koanf:"credentialheader"`
	DeprecationHeader  string        `koanf:"deprecationheader"`
	Rate               RateConfig    `koanf:"rate"`
	LogPayloads        bool          `koanf:"logpayloads"`
	MaxPayloadLogBytes int           `koanf:"maxpayloadlogbytes"`
}

// RateConfig configures optional client-side throttling.
type RateConfig struct {
	PerSecond float64 `koanf:"persecond"`
	Burst     int     `koanf:"burst"`
}

// SessionConfig identifies the target shop.
type SessionConfig struct {
	Domain      string `koanf:"domain"`
	AccessToken string `koanf:"accesstoken"`
}

// LogConfig controls the structured logger.
type LogConfig struct {
	Level  string `koanf:"level"`
	Pretty bool   `koanf:"pretty"`
}

// ClientConfig converts the loaded settings into the client's own Config.
func (c *Config) ClientConfig() client.Config {
	return client.Config{
		Timeout:            c.Client.Timeout,
		UserAgent:          c.Client.UserAgent,
		BasePath:           c.Client.BasePath,
		MaxAttempts:        c.Client.MaxAttempts,
		RetryDelay:         c.Client.RetryDelay,
		CredentialHeader:   c.Client.CredentialHeader,
		DeprecationHeader:  c.Client.DeprecationHeader,
		RequestsPerSecond:  c.Client.Rate.PerSecond,
		RateBurst:          c.Client.Rate.Burst,
		LogPayloads:        c.Client.LogPayloads,
		MaxPayloadLogBytes: c.Client.MaxPayloadLogBytes,
	}
}

// BuildSession creates the shop session described by the configuration.
func (c *Config) BuildSession() (*session.Session, error) {
	return session.New(c.Session.Domain, c.Session.AccessToken)
}
