// Package client implements the REST client for the shop admin API. It
// turns one logical request into one or more physical HTTP attempts,
// composes canonical headers, classifies responses, retries throttled and
// transient server failures within a bounded budget, and hands back a
// normalized response or a typed error.
package client

import (
	"context"
	"net/http"
	"time"

	"github.com/gaborage/shopapi/trace"
)

const (
	// HeaderXRequestID is the standard header name for request correlation
	HeaderXRequestID = trace.HeaderXRequestID
	// HeaderTraceParent is the W3C trace context header name
	HeaderTraceParent = trace.HeaderTraceParent
)

// Client defines the REST client interface for making requests against the
// shop admin API. Every method runs one logical call: the attempt loop runs
// to completion before the method returns.
type Client interface {
	Get(ctx context.Context, req *Request) (*Response, error)
	Post(ctx context.Context, req *Request) (*Response, error)
	Put(ctx context.Context, req *Request) (*Response, error)
	Patch(ctx context.Context, req *Request) (*Response, error)
	Delete(ctx context.Context, req *Request) (*Response, error)
	Do(ctx context.Context, method string, req *Request) (*Response, error)
}

// Request describes one logical call. It is treated as immutable for the
// duration of the call; retried attempts rebuild headers and body from the
// same descriptor.
type Request struct {
	// Path is the resource path relative to the session host and the
	// configured base path. Required.
	Path string
	// Body is the structured payload, serialized per BodyType. Optional.
	Body any
	// BodyType is the MIME type governing body serialization and the
	// Content-Type header. Defaults to application/json when a body is set.
	BodyType string
	// Query holds query string parameters, order-insensitive.
	Query map[string]string
	// Headers are caller extras merged after the composed defaults.
	Headers map[string]string
	// MaxAttempts bounds the number of physical attempts for this call.
	// Zero means the client-wide default; 1 disables automatic retry.
	MaxAttempts int
}

// Response is the normalized outcome of a successful logical call.
type Response struct {
	StatusCode int
	// OK is true when the terminating status is in the 2xx range.
	OK bool
	// Body is the parsed JSON payload. An empty physical body parses to an
	// empty object rather than nil.
	Body any
	// RawBody holds the unparsed response bytes.
	RawBody []byte
	// Headers preserves every response header as a value list.
	Headers http.Header
	Stats   Stats
}

// Stats contains request execution statistics
type Stats struct {
	ElapsedTime time.Duration
	Attempts    int
}

// Session is the narrow contract the client consumes from a shop session.
// Implementations must be safe for concurrent readers; the client never
// mutates a session.
type Session interface {
	// HostForRequests returns the absolute base URL of the shop, scheme included.
	HostForRequests() string
	// Credential returns the access token and whether one is present.
	Credential() (string, bool)
}

// RawResponse is one physical exchange as seen by a Transport: status code
// and headers unmodified, body fully read.
type RawResponse struct {
	StatusCode int
	Headers    http.Header
	Body       []byte
}

// Transport performs one physical HTTP exchange. Implementations must
// preserve multi-valued headers and the raw status code. A returned error
// is a transport fault; the client propagates it unwrapped and does not
// retry it.
type Transport interface {
	Execute(ctx context.Context, method, url string, headers http.Header, body []byte) (*RawResponse, error)
}

// WarningSink receives non-fatal server hints such as endpoint deprecation
// notices. Calls are fire-and-forget; a sink must never block the caller.
type WarningSink interface {
	Warn(message string)
}

// WarningSinkFunc adapts a plain function to the WarningSink interface.
type WarningSinkFunc func(message string)

// Warn calls f(message).
func (f WarningSinkFunc) Warn(message string) { f(message) }

// Config holds the REST client configuration
type Config struct {
	// Timeout bounds each physical attempt at the transport layer.
	Timeout time.Duration
	// BasePath is prefixed to every request path, e.g. "/admin/api/2026-07".
	BasePath string
	// UserAgent identifies this client on the wire.
	UserAgent string
	// MaxAttempts is the default attempt budget for requests that do not
	// set their own. 1 disables automatic retry.
	MaxAttempts int
	// RetryDelay is the fixed wait between attempts when the server
	// supplies no throttle hint.
	RetryDelay time.Duration
	// CredentialHeader carries the session access token when one is present.
	CredentialHeader string
	// DeprecationHeader is the response header inspected for deprecation notices.
	DeprecationHeader string
	// RequestIDHeader configures the header used for request correlation (default: X-Request-ID)
	RequestIDHeader string
	// EnableW3CTrace enables traceparent propagation and generation
	EnableW3CTrace bool
	// DefaultHeaders are merged into every request before caller extras.
	DefaultHeaders map[string]string
	// RequestsPerSecond enables client-side throttling when > 0, keeping
	// callers under the platform bucket instead of bouncing off 429s.
	RequestsPerSecond float64
	// RateBurst is the limiter burst size when throttling is enabled.
	RateBurst int
	// LogPayloads enables debug-level logging of headers and body payloads
	LogPayloads bool
	// MaxPayloadLogBytes caps the number of body bytes logged when LogPayloads is enabled
	MaxPayloadLogBytes int
}

// Wire defaults.
const (
	DefaultTimeout            = 30 * time.Second
	DefaultRetryDelay         = 1 * time.Second
	DefaultUserAgent          = "shopapi-go-client"
	DefaultCredentialHeader   = "X-Access-Token"
	DefaultDeprecationHeader  = "X-Api-Deprecated-Reason"
	DefaultAcceptEncoding     = "gzip, deflate"
	DefaultMaxPayloadLogBytes = 1024
)
