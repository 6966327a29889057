package session

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewNormalizesDomain(t *testing.T) {
	tests := []struct {
		name     string
		domain   string
		expected string
	}{
		{"bare domain gets https", "acme.example.com", "https://acme.example.com"},
		{"explicit https preserved", "https://acme.example.com", "https://acme.example.com"},
		{"explicit http preserved", "http://localhost:8080", "http://localhost:8080"},
		{"trailing slash stripped", "acme.example.com/", "https://acme.example.com"},
		{"surrounding whitespace trimmed", "  acme.example.com  ", "https://acme.example.com"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, err := New(tt.domain, "")
			require.NoError(t, err)
			assert.Equal(t, tt.expected, s.HostForRequests())
		})
	}
}

func TestNewRejectsEmptyDomain(t *testing.T) {
	for _, domain := range []string{"", "   "} {
		_, err := New(domain, "tok")
		assert.Error(t, err)
	}
}

func TestCredential(t *testing.T) {
	t.Run("present", func(t *testing.T) {
		s, err := New("acme.example.com", "shpat_abc")
		require.NoError(t, err)

		tok, ok := s.Credential()
		assert.True(t, ok)
		assert.Equal(t, "shpat_abc", tok)
	})

	t.Run("absent is legal", func(t *testing.T) {
		s, err := New("acme.example.com", "")
		require.NoError(t, err)

		tok, ok := s.Credential()
		assert.False(t, ok)
		assert.Empty(t, tok)
	})
}
