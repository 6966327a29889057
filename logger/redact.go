package logger

import (
	"net/http"
	"strings"
)

// MaskValue replaces redacted values in log output.
const MaskValue = "***"

// RedactConfig lists field and header names whose values must never reach
// log output. The zero value is unusable; use DefaultRedactConfig.
type RedactConfig struct {
	// Fields are log field names matched case-insensitively by substring.
	Fields []string
	// Headers are HTTP header names matched case-insensitively.
	Headers []string
}

// DefaultRedactConfig covers the credential material this library handles:
// shop access tokens and the usual authentication headers.
func DefaultRedactConfig() *RedactConfig {
	return &RedactConfig{
		Fields: []string{
			"password", "secret",
			"token", "access_token", "refresh_token",
			"credential", "credentials",
			"api_key", "apikey",
			"authorization",
		},
		Headers: []string{
			"Authorization",
			"Proxy-Authorization",
			"X-Access-Token",
			"X-Api-Key",
		},
	}
}

// CredentialRedactor masks credential-bearing fields and headers in log output.
type CredentialRedactor struct {
	fields  []string
	headers map[string]bool
}

// NewCredentialRedactor builds a redactor from config. A nil config falls
// back to DefaultRedactConfig.
func NewCredentialRedactor(config *RedactConfig) *CredentialRedactor {
	if config == nil {
		config = DefaultRedactConfig()
	}
	r := &CredentialRedactor{headers: make(map[string]bool, len(config.Headers))}
	for _, f := range config.Fields {
		r.fields = append(r.fields, strings.ToLower(f))
	}
	for _, h := range config.Headers {
		r.headers[strings.ToLower(h)] = true
	}
	return r
}

// AddHeader marks an additional header name as sensitive. Used by the client
// to cover a configured credential header name the defaults cannot know.
func (r *CredentialRedactor) AddHeader(name string) {
	if name != "" {
		r.headers[strings.ToLower(name)] = true
	}
}

// FilterString returns the mask when the field key is sensitive.
func (r *CredentialRedactor) FilterString(key, value string) string {
	if r.sensitiveField(key) {
		return MaskValue
	}
	return value
}

// FilterValue masks sensitive scalar fields and scrubs header maps.
func (r *CredentialRedactor) FilterValue(key string, value any) any {
	if r.sensitiveField(key) {
		return MaskValue
	}
	if h, ok := value.(http.Header); ok {
		return r.FilterHeaders(h)
	}
	return value
}

// FilterFields returns a copy of fields with sensitive values masked.
func (r *CredentialRedactor) FilterFields(fields map[string]any) map[string]any {
	if fields == nil {
		return nil
	}
	out := make(map[string]any, len(fields))
	for k, v := range fields {
		out[k] = r.FilterValue(k, v)
	}
	return out
}

// FilterHeaders returns a copy of h with sensitive header values masked.
// The original header map is never mutated.
func (r *CredentialRedactor) FilterHeaders(h http.Header) http.Header {
	if h == nil {
		return nil
	}
	out := make(http.Header, len(h))
	for name, values := range h {
		if r.headers[strings.ToLower(name)] {
			out[name] = []string{MaskValue}
			continue
		}
		out[name] = append([]string(nil), values...)
	}
	return out
}

func (r *CredentialRedactor) sensitiveField(key string) bool {
	k := strings.ToLower(key)
	for _, f := range r.fields {
		if strings.Contains(k, f) {
			return true
		}
	}
	return false
}
