package client

import (
	"net/http"
	"strconv"
	"strings"
	"time"
)

// outcomeKind is the closed set of attempt classifications. All status-code
// branching lives here; the executor only ever switches on the kind.
type outcomeKind int

const (
	// outcomeSuccess: 2xx, the logical call is done.
	outcomeSuccess outcomeKind = iota
	// outcomeThrottled: 429, retriable, may carry a Retry-After hint.
	outcomeThrottled
	// outcomeServerError: 5xx, retriable with the default backoff.
	outcomeServerError
	// outcomeClientError: 4xx other than 429, terminal.
	outcomeClientError
	// outcomeUnexpected: anything else. Unknown is not assumed safe to retry.
	outcomeUnexpected
)

// attemptOutcome is the ephemeral classification of one physical attempt.
type attemptOutcome struct {
	kind          outcomeKind
	retryAfter    time.Duration
	hasRetryAfter bool
	// deprecation carries the server's deprecation notice, independent of kind.
	deprecation string
}

func (o attemptOutcome) retriable() bool {
	return o.kind == outcomeThrottled || o.kind == outcomeServerError
}

// classify maps a physical response onto an attemptOutcome. The Retry-After
// hint is extracted only for throttled responses; a stray hint on a plain
// server error is ignored.
func classify(statusCode int, headers http.Header, deprecationHeader string) attemptOutcome {
	o := attemptOutcome{}
	if deprecationHeader != "" {
		o.deprecation = strings.TrimSpace(headers.Get(deprecationHeader))
	}

	switch {
	case IsSuccessStatus(statusCode):
		o.kind = outcomeSuccess
	case statusCode == http.StatusTooManyRequests:
		o.kind = outcomeThrottled
		if d, ok := parseRetryAfter(headers, time.Now()); ok {
			o.retryAfter = d
			o.hasRetryAfter = true
		}
	case statusCode >= 500 && statusCode <= 599:
		o.kind = outcomeServerError
	case statusCode >= 400 && statusCode <= 499:
		o.kind = outcomeClientError
	default:
		o.kind = outcomeUnexpected
	}
	return o
}

// parseRetryAfter reads a Retry-After header as seconds (fractional values
// are accepted) or as an HTTP-date relative to now.
func parseRetryAfter(headers http.Header, now time.Time) (time.Duration, bool) {
	v := strings.TrimSpace(headers.Get("Retry-After"))
	if v == "" {
		return 0, false
	}
	if secs, err := strconv.ParseFloat(v, 64); err == nil && secs >= 0 {
		return time.Duration(secs * float64(time.Second)), true
	}
	if t, err := http.ParseTime(v); err == nil {
		d := t.Sub(now)
		if d < 0 {
			d = 0
		}
		return d, true
	}
	return 0, false
}
