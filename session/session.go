// Package session holds the shop identity a client talks to: the shop
// domain and the optional access credential issued for it. A session is
// read-only once built, so one session can be shared by any number of
// concurrent calls.
package session

import (
	"fmt"
	"strings"
)

// Session identifies the target shop and carries its optional credential.
// The zero value is not usable; construct with New.
type Session struct {
	domain      string
	accessToken string
}

// New creates a session for the given shop domain. The domain may be given
// bare ("acme.example.com") or with an explicit scheme; bare domains are
// normalized to https. An empty accessToken is legal and simply means
// requests go out unauthenticated.
func New(domain, accessToken string) (*Session, error) {
	d := strings.TrimSpace(domain)
	if d == "" {
		return nil, fmt.Errorf("session: shop domain is required")
	}
	if !strings.Contains(d, "://") {
		d = "https://" + d
	}
	d = strings.TrimRight(d, "/")
	return &Session{domain: d, accessToken: accessToken}, nil
}

// HostForRequests returns the absolute base URL for the shop, scheme included.
func (s *Session) HostForRequests() string {
	return s.domain
}

// Credential returns the access token and whether one is present.
// Absence of a credential is not an error; the credential header is
// simply omitted from outgoing requests.
func (s *Session) Credential() (string, bool) {
	if s.accessToken == "" {
		return "", false
	}
	return s.accessToken, true
}
