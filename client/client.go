package client

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"github.com/gaborage/shopapi/logger"
	"github.com/gaborage/shopapi/trace"
)

// client executes logical calls as a sequential attempt loop:
// build headers and body, send one physical attempt, classify the result,
// then return, fail, or wait and go around again. All state is call-local;
// one client is safe for concurrent use.
type client struct {
	config    *Config
	session   Session
	transport Transport
	logger    logger.Logger
	warnings  WarningSink
	limiter   *rate.Limiter
	scheduler retryScheduler

	// sleep is the loop's single suspension point, injectable in tests.
	sleep func(ctx context.Context, d time.Duration) error
}

// Ensure client implements the interface
var _ Client = (*client)(nil)

func (c *client) Get(ctx context.Context, req *Request) (*Response, error) {
	return c.Do(ctx, http.MethodGet, req)
}

func (c *client) Post(ctx context.Context, req *Request) (*Response, error) {
	return c.Do(ctx, http.MethodPost, req)
}

func (c *client) Put(ctx context.Context, req *Request) (*Response, error) {
	return c.Do(ctx, http.MethodPut, req)
}

func (c *client) Patch(ctx context.Context, req *Request) (*Response, error) {
	return c.Do(ctx, http.MethodPatch, req)
}

func (c *client) Delete(ctx context.Context, req *Request) (*Response, error) {
	return c.Do(ctx, http.MethodDelete, req)
}

// Do runs one logical call. It returns a normalized response on a 2xx
// outcome, a typed ClientError on validation failures, terminal statuses,
// and exhausted retry budgets, and propagates transport faults unwrapped.
func (c *client) Do(ctx context.Context, method string, req *Request) (*Response, error) {
	if err := validateRequest(method, req); err != nil {
		return nil, err
	}
	if c.session == nil {
		return nil, NewValidationError("client has no session configured", "")
	}

	body, contentType, err := encodeBody(req)
	if err != nil {
		return nil, err
	}
	fullURL, err := c.buildURL(req)
	if err != nil {
		return nil, err
	}

	maxAttempts := req.MaxAttempts
	if maxAttempts == 0 {
		maxAttempts = c.config.MaxAttempts
	}
	if maxAttempts < 1 {
		maxAttempts = 1
	}

	start := time.Now()
	for attempt := 1; ; attempt++ {
		// Building: headers are rebuilt from the descriptor every attempt,
		// so a retry is an identical fresh request.
		headers := c.composeHeaders(req, contentType)
		requestID := c.stampCorrelation(ctx, headers)

		if c.limiter != nil {
			if err := c.limiter.Wait(ctx); err != nil {
				return nil, err
			}
		}
		c.logRequest(method, fullURL, headers, body, requestID, attempt)

		// Sending: a transport fault is fatal for the logical call. No
		// retry policy exists for faults below the HTTP layer.
		raw, err := c.transport.Execute(ctx, method, fullURL, headers, body)
		if err != nil {
			return nil, err
		}

		// Classifying. The deprecation notice is a side channel and fires
		// on every attempt where it appears, whatever the outcome.
		outcome := classify(raw.StatusCode, raw.Headers, c.config.DeprecationHeader)
		if outcome.deprecation != "" {
			c.warnDeprecated(req.Path, outcome.deprecation)
		}

		if outcome.kind == outcomeSuccess {
			resp := &Response{
				StatusCode: raw.StatusCode,
				OK:         true,
				Body:       decodeBody(raw.Body),
				RawBody:    raw.Body,
				Headers:    raw.Headers,
				Stats: Stats{
					ElapsedTime: time.Since(start),
					Attempts:    attempt,
				},
			}
			c.logResponse(resp, requestID)
			return resp, nil
		}

		verdict, wait := c.scheduler.decide(attempt, maxAttempts, outcome)
		switch verdict {
		case retryStop:
			c.logFailure(raw, requestID, attempt)
			return nil, NewHTTPError(statusMessage(raw.StatusCode), raw.StatusCode, raw.Body, decodeBody(raw.Body))
		case retryExhausted:
			c.logFailure(raw, requestID, attempt)
			return nil, NewRetryExhaustedError(statusMessage(raw.StatusCode), raw.StatusCode, raw.Body, attempt)
		case retryWait:
			c.logRetryWait(raw.StatusCode, wait, requestID, attempt)
			if err := c.sleep(ctx, wait); err != nil {
				return nil, err
			}
		}
	}
}

// buildURL assembles session host + base path + descriptor path and the
// encoded query string.
func (c *client) buildURL(req *Request) (string, error) {
	full := c.session.HostForRequests() + joinPath(c.config.BasePath, req.Path)
	u, err := url.Parse(full)
	if err != nil {
		return "", NewValidationError(fmt.Sprintf("cannot build request URL: %v", err), "path")
	}
	if len(req.Query) > 0 {
		q := u.Query()
		for name, value := range req.Query {
			q.Set(name, value)
		}
		u.RawQuery = q.Encode()
	}
	return u.String(), nil
}

func joinPath(base, path string) string {
	base = strings.TrimRight(base, "/")
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}
	return base + path
}

// stampCorrelation sets the request-ID header when the caller has not, and
// optionally a W3C traceparent. Returns the effective request ID.
func (c *client) stampCorrelation(ctx context.Context, headers http.Header) string {
	header := c.config.RequestIDHeader
	if header == "" {
		header = HeaderXRequestID
	}
	requestID := headers.Get(header)
	if requestID == "" {
		requestID = trace.EnsureRequestID(ctx)
		headers.Set(header, requestID)
	}

	if c.config.EnableW3CTrace && headers.Get(HeaderTraceParent) == "" {
		if tp, ok := trace.ParentFromContext(ctx); ok {
			headers.Set(HeaderTraceParent, tp)
		} else {
			headers.Set(HeaderTraceParent, trace.GenerateTraceParent())
		}
	}
	return requestID
}

func (c *client) warnDeprecated(path, reason string) {
	if c.warnings == nil {
		return
	}
	c.warnings.Warn(fmt.Sprintf("endpoint %s is deprecated: %s", path, reason))
}

func statusMessage(statusCode int) string {
	if text := http.StatusText(statusCode); text != "" {
		return text
	}
	return "unexpected status"
}
