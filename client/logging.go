package client

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gaborage/shopapi/logger"
)

// logRequest emits the outbound envelope at info level and, when payload
// logging is enabled, a debug event with headers and a bounded body preview.
func (c *client) logRequest(method, url string, headers http.Header, body []byte, requestID string, attempt int) {
	if c.logger == nil {
		return
	}

	event := c.logger.Info().
		Str("direction", "outbound").
		Str("method", method).
		Str("url", url).
		Str("request_id", requestID).
		Int("attempt", attempt)
	if len(headers) > 0 {
		event = event.Int("header_count", len(headers))
	}
	if len(body) > 0 {
		event = event.Int("body_size", len(body))
	}
	event.Msg("REST client request")

	if !c.config.LogPayloads {
		return
	}

	preview, truncated := c.payloadPreview(body)
	debug := c.logger.Debug().
		Str("direction", "outbound").
		Str("method", method).
		Str("url", url).
		Str("request_id", requestID).
		Int("attempt", attempt).
		Interface("headers", headers)
	if len(body) > 0 {
		debug = debug.
			Int("body_size", len(body)).
			Str("body_truncated", strconv.FormatBool(truncated)).
			Bytes("body_preview", preview)
	}
	debug.Msg("REST client request")
}

// logResponse emits the inbound envelope for a successful logical call.
func (c *client) logResponse(resp *Response, requestID string) {
	if c.logger == nil {
		return
	}

	event := c.logger.Info().
		Str("direction", "inbound").
		Int("status", resp.StatusCode).
		Dur("elapsed", resp.Stats.ElapsedTime).
		Int("attempts", resp.Stats.Attempts).
		Str("request_id", requestID)
	if len(resp.RawBody) > 0 {
		event = event.Int("body_size", len(resp.RawBody))
	}
	event.Msg("REST client response")

	if !c.config.LogPayloads {
		return
	}

	preview, truncated := c.payloadPreview(resp.RawBody)
	debug := c.logger.Debug().
		Str("direction", "inbound").
		Int("status", resp.StatusCode).
		Str("request_id", requestID).
		Interface("headers", resp.Headers)
	if len(resp.RawBody) > 0 {
		debug = debug.
			Int("body_size", len(resp.RawBody)).
			Str("body_truncated", strconv.FormatBool(truncated)).
			Bytes("body_preview", preview)
	}
	debug.Msg("REST client response")
}

// logFailure records the terminal attempt of a failed logical call.
func (c *client) logFailure(raw *RawResponse, requestID string, attempt int) {
	if c.logger == nil {
		return
	}
	c.logger.Warn().
		Str("direction", "inbound").
		Int("status", raw.StatusCode).
		Int("attempt", attempt).
		Str("request_id", requestID).
		Msg("REST client request failed")
}

// logRetryWait records the decision to wait and go around again.
func (c *client) logRetryWait(statusCode int, wait time.Duration, requestID string, attempt int) {
	if c.logger == nil {
		return
	}
	c.logger.Debug().
		Int("status", statusCode).
		Dur("wait", wait).
		Int("attempt", attempt).
		Str("request_id", requestID).
		Msg("REST client retrying")
}

func (c *client) payloadPreview(body []byte) ([]byte, bool) {
	limit := c.config.MaxPayloadLogBytes
	if limit <= 0 {
		limit = DefaultMaxPayloadLogBytes
	}
	if len(body) > limit {
		return body[:limit], true
	}
	return body, false
}

// loggerWarningSink is the default warning sink: deprecation notices land
// in the structured log at warn level.
type loggerWarningSink struct {
	log logger.Logger
}

func (s *loggerWarningSink) Warn(message string) {
	s.log.Warn().Str("component", "shopapi.client").Msg(message)
}
