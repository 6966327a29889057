package client

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidateRequestAcceptsEnumeratedMethods(t *testing.T) {
	for _, method := range []string{"GET", "POST", "PUT", "PATCH", "DELETE", "HEAD", "OPTIONS"} {
		assert.NoError(t, validateRequest(method, &Request{Path: "/x"}), method)
	}
}

func TestValidateRequestRejections(t *testing.T) {
	tests := []struct {
		name   string
		method string
		req    *Request
	}{
		{"unknown method", "TEAPOT", &Request{Path: "/x"}},
		{"lowercase method", "get", &Request{Path: "/x"}},
		{"empty method", "", &Request{Path: "/x"}},
		{"empty path", "GET", &Request{}},
		{"negative attempts", "GET", &Request{Path: "/x", MaxAttempts: -1}},
		{"nil request", "GET", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validateRequest(tt.method, tt.req)
			assert.True(t, IsErrorType(err, ValidationError))
		})
	}
}

func TestValidateRequestErrorNamesField(t *testing.T) {
	err := validateRequest("GET", &Request{})
	assert.Contains(t, err.Error(), "path")

	err = validateRequest("BREW", &Request{Path: "/x"})
	assert.Contains(t, err.Error(), "method")
	assert.Contains(t, err.Error(), "BREW")
}
