package logger

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFilterStringMasksSensitiveFields(t *testing.T) {
	r := NewCredentialRedactor(nil)

	tests := []struct {
		name     string
		key      string
		value    string
		expected string
	}{
		{"access token field", "access_token", "shpat_abc123", MaskValue},
		{"nested token field", "session.token", "tok-1", MaskValue},
		{"password field", "password", "hunter2", MaskValue},
		{"authorization field", "authorization", "Bearer xyz", MaskValue},
		{"plain field untouched", "shop_domain", "acme.example.com", "acme.example.com"},
		{"url field untouched", "url", "https://acme.example.com/orders", "https://acme.example.com/orders"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, r.FilterString(tt.key, tt.value))
		})
	}
}

func TestFilterHeadersMasksCredentialHeaders(t *testing.T) {
	r := NewCredentialRedactor(nil)

	in := http.Header{
		"Authorization":  []string{"Bearer secret"},
		"X-Access-Token": []string{"shpat_abc123"},
		"Content-Type":   []string{"application/json"},
		"Accept":         []string{"application/json", "text/plain"},
	}

	out := r.FilterHeaders(in)

	assert.Equal(t, []string{MaskValue}, out["Authorization"])
	assert.Equal(t, []string{MaskValue}, out["X-Access-Token"])
	assert.Equal(t, []string{"application/json"}, out["Content-Type"])
	assert.Equal(t, []string{"application/json", "text/plain"}, out["Accept"])

	// Input must not be mutated.
	assert.Equal(t, []string{"Bearer secret"}, in["Authorization"])
}

func TestAddHeaderRegistersCustomCredentialHeader(t *testing.T) {
	r := NewCredentialRedactor(nil)
	r.AddHeader("X-Shop-Access-Token")

	out := r.FilterHeaders(http.Header{
		"X-Shop-Access-Token": []string{"tok-42"},
	})
	assert.Equal(t, []string{MaskValue}, out["X-Shop-Access-Token"])
}

func TestFilterHeadersCaseInsensitive(t *testing.T) {
	r := NewCredentialRedactor(&RedactConfig{Headers: []string{"x-access-token"}})

	out := r.FilterHeaders(http.Header{"X-Access-Token": []string{"tok"}})
	assert.Equal(t, []string{MaskValue}, out["X-Access-Token"])
}

func TestFilterFields(t *testing.T) {
	r := NewCredentialRedactor(nil)

	fields := map[string]any{
		"api_key":  "k-123",
		"attempts": 3,
		"headers":  http.Header{"Authorization": []string{"Bearer t"}},
	}

	out := r.FilterFields(fields)

	assert.Equal(t, MaskValue, out["api_key"])
	assert.Equal(t, 3, out["attempts"])
	filtered, ok := out["headers"].(http.Header)
	assert.True(t, ok)
	assert.Equal(t, []string{MaskValue}, filtered["Authorization"])

	// Original map untouched.
	assert.Equal(t, "k-123", fields["api_key"])
}

func TestFilterValueNilAndScalars(t *testing.T) {
	r := NewCredentialRedactor(nil)

	assert.Nil(t, r.FilterFields(nil))
	assert.Equal(t, 42, r.FilterValue("count", 42))
	assert.Nil(t, r.FilterHeaders(nil))
}

func TestNewLoggerSmoke(t *testing.T) {
	l := New("debug", false)
	assert.NotNil(t, l)
	assert.NotNil(t, l.Redactor())

	// Invalid level falls back without error.
	l2 := New("not-a-level", true)
	assert.NotNil(t, l2)

	// Field chaining should not panic and WithFields masks values.
	l.Info().Str("shop", "acme").Int("attempt", 1).Msg("smoke")
	l3 := l.WithFields(map[string]any{"access_token": "tok"})
	assert.NotNil(t, l3)
}
