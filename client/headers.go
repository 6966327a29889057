package client

import "net/http"

// composeHeaders builds the physical header set for one attempt. Precedence
// on key collision, later wins: fixed defaults, configured defaults,
// Content-Type (only when a body is present), session credential, caller
// extras. Extras can override any default but cannot remove the credential
// header; credential presence is controlled solely by the session.
func (c *client) composeHeaders(req *Request, contentType string) http.Header {
	h := make(http.Header)
	h.Set("User-Agent", c.config.UserAgent)
	h.Set("Accept", contentTypeJSON)
	h.Set("Accept-Encoding", DefaultAcceptEncoding)

	for name, value := range c.config.DefaultHeaders {
		h.Set(name, value)
	}

	// No body, no Content-Type. An empty Content-Type header is never sent.
	if contentType != "" {
		h.Set("Content-Type", contentType)
	}

	if credential, ok := c.session.Credential(); ok {
		h.Set(c.config.CredentialHeader, credential)
	}

	for name, value := range req.Headers {
		h.Set(name, value)
	}
	return h
}
