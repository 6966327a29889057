package client

import (
	"time"

	"golang.org/x/time/rate"

	"github.com/gaborage/shopapi/logger"
)

// Builder assembles a Client with fluent configuration. Zero-value fields
// fall back to the package defaults at Build time.
type Builder struct {
	config    Config
	log       logger.Logger
	session   Session
	transport Transport
	warnings  WarningSink
}

// NewBuilder creates a client builder that logs through log.
func NewBuilder(log logger.Logger) *Builder {
	return &Builder{log: log}
}

// WithSession sets the shop session the client calls against.
func (b *Builder) WithSession(s Session) *Builder {
	b.session = s
	return b
}

// WithTransport replaces the default net/http transport.
func (b *Builder) WithTransport(t Transport) *Builder {
	b.transport = t
	return b
}

// WithWarningSink routes deprecation notices somewhere other than the log.
func (b *Builder) WithWarningSink(sink WarningSink) *Builder {
	b.warnings = sink
	return b
}

// WithTimeout bounds each physical attempt.
func (b *Builder) WithTimeout(timeout time.Duration) *Builder {
	b.config.Timeout = timeout
	return b
}

// WithBasePath prefixes every request path, e.g. "/admin/api/2026-07".
func (b *Builder) WithBasePath(basePath string) *Builder {
	b.config.BasePath = basePath
	return b
}

// WithUserAgent overrides the default User-Agent.
func (b *Builder) WithUserAgent(userAgent string) *Builder {
	b.config.UserAgent = userAgent
	return b
}

// WithMaxAttempts sets the default attempt budget for requests that do not
// carry their own. 1 disables automatic retry.
func (b *Builder) WithMaxAttempts(maxAttempts int) *Builder {
	b.config.MaxAttempts = maxAttempts
	return b
}

// WithRetryDelay sets the fixed wait used when the server supplies no
// throttle hint.
func (b *Builder) WithRetryDelay(delay time.Duration) *Builder {
	b.config.RetryDelay = delay
	return b
}

// WithCredentialHeader overrides the header carrying the session credential.
func (b *Builder) WithCredentialHeader(name string) *Builder {
	b.config.CredentialHeader = name
	return b
}

// WithDeprecationHeader overrides the response header inspected for
// deprecation notices.
func (b *Builder) WithDeprecationHeader(name string) *Builder {
	b.config.DeprecationHeader = name
	return b
}

// WithDefaultHeaders merges headers into every request before caller extras.
func (b *Builder) WithDefaultHeaders(headers map[string]string) *Builder {
	b.config.DefaultHeaders = headers
	return b
}

// WithRateLimit enables client-side throttling of physical attempts.
func (b *Builder) WithRateLimit(requestsPerSecond float64, burst int) *Builder {
	b.config.RequestsPerSecond = requestsPerSecond
	b.config.RateBurst = burst
	return b
}

// WithPayloadLogging enables debug-level payload previews capped at maxBytes.
func (b *Builder) WithPayloadLogging(maxBytes int) *Builder {
	b.config.LogPayloads = true
	if maxBytes > 0 {
		b.config.MaxPayloadLogBytes = maxBytes
	}
	return b
}

// WithConfig replaces the accumulated configuration wholesale. Defaults are
// still applied at Build time for zero-value fields.
func (b *Builder) WithConfig(cfg Config) *Builder {
	b.config = cfg
	return b
}

// Build finalizes the configuration and returns the client.
func (b *Builder) Build() Client {
	cfg := b.config
	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultTimeout
	}
	if cfg.UserAgent == "" {
		cfg.UserAgent = DefaultUserAgent
	}
	if cfg.MaxAttempts < 1 {
		cfg.MaxAttempts = 1
	}
	if cfg.RetryDelay <= 0 {
		cfg.RetryDelay = DefaultRetryDelay
	}
	if cfg.CredentialHeader == "" {
		cfg.CredentialHeader = DefaultCredentialHeader
	}
	if cfg.DeprecationHeader == "" {
		cfg.DeprecationHeader = DefaultDeprecationHeader
	}
	if cfg.RequestIDHeader == "" {
		cfg.RequestIDHeader = HeaderXRequestID
	}
	if cfg.MaxPayloadLogBytes <= 0 {
		cfg.MaxPayloadLogBytes = DefaultMaxPayloadLogBytes
	}

	transport := b.transport
	if transport == nil {
		transport = NewHTTPTransport(cfg.Timeout)
	}
	warnings := b.warnings
	if warnings == nil && b.log != nil {
		warnings = &loggerWarningSink{log: b.log}
	}

	var limiter *rate.Limiter
	if cfg.RequestsPerSecond > 0 {
		burst := cfg.RateBurst
		if burst < 1 {
			burst = 1
		}
		limiter = rate.NewLimiter(rate.Limit(cfg.RequestsPerSecond), burst)
	}

	return &client{
		config:    &cfg,
		session:   b.session,
		transport: transport,
		logger:    b.log,
		warnings:  warnings,
		limiter:   limiter,
		scheduler: newRetryScheduler(cfg.RetryDelay),
		sleep:     sleepContext,
	}
}
