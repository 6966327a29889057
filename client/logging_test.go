package client

import (
	"maps"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gaborage/shopapi/logger"
)

// Test constants to avoid string duplication
const (
	testRequestMessage  = "REST client request"
	testResponseMessage = "REST client response"
	testRequestURL      = testHost + "/products"
)

// fakeLogEvent implements logger.LogEvent for testing
type fakeLogEvent struct {
	logger  *fakeLogger
	level   string
	fields  map[string]any
	message string
}

func (e *fakeLogEvent) Msg(msg string) {
	e.message = msg
	e.logger.events = append(e.logger.events, loggedEvent{
		level:   e.level,
		fields:  maps.Clone(e.fields),
		message: msg,
	})
}

func (e *fakeLogEvent) Msgf(format string, _ ...any) { e.Msg(format) }

func (e *fakeLogEvent) Err(err error) logger.LogEvent {
	e.fields["error"] = err
	return e
}

func (e *fakeLogEvent) Str(key, value string) logger.LogEvent {
	e.fields[key] = value
	return e
}

func (e *fakeLogEvent) Int(key string, value int) logger.LogEvent {
	e.fields[key] = value
	return e
}

func (e *fakeLogEvent) Int64(key string, value int64) logger.LogEvent {
	e.fields[key] = value
	return e
}

func (e *fakeLogEvent) Uint64(key string, value uint64) logger.LogEvent {
	e.fields[key] = value
	return e
}

func (e *fakeLogEvent) Dur(key string, d time.Duration) logger.LogEvent {
	e.fields[key] = d
	return e
}

func (e *fakeLogEvent) Interface(key string, i any) logger.LogEvent {
	e.fields[key] = i
	return e
}

func (e *fakeLogEvent) Bytes(key string, val []byte) logger.LogEvent {
	e.fields[key] = val
	return e
}

// fakeLogger implements logger.Logger for testing
type fakeLogger struct {
	events []loggedEvent
}

type loggedEvent struct {
	level   string
	fields  map[string]any
	message string
}

func (l *fakeLogger) event(level string) logger.LogEvent {
	return &fakeLogEvent{logger: l, level: level, fields: make(map[string]any)}
}

func (l *fakeLogger) Info() logger.LogEvent  { return l.event("info") }
func (l *fakeLogger) Error() logger.LogEvent { return l.event("error") }
func (l *fakeLogger) Debug() logger.LogEvent { return l.event("debug") }
func (l *fakeLogger) Warn() logger.LogEvent  { return l.event("warn") }
func (l *fakeLogger) Fatal() logger.LogEvent { return l.event("fatal") }

func (l *fakeLogger) WithContext(_ any) logger.Logger           { return l }
func (l *fakeLogger) WithFields(_ map[string]any) logger.Logger { return l }

func (l *fakeLogger) eventsByLevel(level string) []loggedEvent {
	var events []loggedEvent
	for _, event := range l.events {
		if event.level == level {
			events = append(events, event)
		}
	}
	return events
}

func TestClientLogRequest(t *testing.T) {
	t.Run("basic request logging", func(t *testing.T) {
		fakeLog := &fakeLogger{}
		c := &client{
			logger: fakeLog,
			config: &Config{LogPayloads: false, MaxPayloadLogBytes: 1024},
		}

		headers := http.Header{}
		headers.Set("Content-Type", "application/json")
		headers.Set(DefaultCredentialHeader, "tok")
		body := []byte(`{"name":"test product"}`)

		c.logRequest("POST", testRequestURL, headers, body, "req-123", 1)

		infoEvents := fakeLog.eventsByLevel("info")
		require.Len(t, infoEvents, 1)

		infoEvent := infoEvents[0]
		assert.Equal(t, testRequestMessage, infoEvent.message)
		assert.Equal(t, "outbound", infoEvent.fields["direction"])
		assert.Equal(t, "POST", infoEvent.fields["method"])
		assert.Equal(t, testRequestURL, infoEvent.fields["url"])
		assert.Equal(t, "req-123", infoEvent.fields["request_id"])
		assert.Equal(t, 1, infoEvent.fields["attempt"])
		assert.Equal(t, 2, infoEvent.fields["header_count"])
		assert.Equal(t, len(body), infoEvent.fields["body_size"])

		assert.Empty(t, fakeLog.eventsByLevel("debug"))
	})

	t.Run("request without body or headers", func(t *testing.T) {
		fakeLog := &fakeLogger{}
		c := &client{logger: fakeLog, config: &Config{}}

		c.logRequest("GET", testRequestURL, http.Header{}, nil, "req-456", 1)

		infoEvents := fakeLog.eventsByLevel("info")
		require.Len(t, infoEvents, 1)

		_, hasBodySize := infoEvents[0].fields["body_size"]
		assert.False(t, hasBodySize)
		_, hasHeaderCount := infoEvents[0].fields["header_count"]
		assert.False(t, hasHeaderCount)
	})

	t.Run("payload logging enabled", func(t *testing.T) {
		fakeLog := &fakeLogger{}
		c := &client{
			logger: fakeLog,
			config: &Config{LogPayloads: true, MaxPayloadLogBytes: 50},
		}

		headers := http.Header{}
		headers.Set("X-Api-Client", "shopapi")
		body := []byte(`{"data":"some content"}`)

		c.logRequest("PUT", testRequestURL, headers, body, "req-789", 2)

		require.Len(t, fakeLog.eventsByLevel("info"), 1)
		debugEvents := fakeLog.eventsByLevel("debug")
		require.Len(t, debugEvents, 1)

		debugEvent := debugEvents[0]
		assert.Equal(t, testRequestMessage, debugEvent.message)
		assert.Equal(t, 2, debugEvent.fields["attempt"])
		assert.NotNil(t, debugEvent.fields["headers"])
		assert.Equal(t, len(body), debugEvent.fields["body_size"])
		assert.Equal(t, "false", debugEvent.fields["body_truncated"])
		assert.Equal(t, body, debugEvent.fields["body_preview"])
	})

	t.Run("large body truncated", func(t *testing.T) {
		fakeLog := &fakeLogger{}
		c := &client{
			logger: fakeLog,
			config: &Config{LogPayloads: true, MaxPayloadLogBytes: 10},
		}

		largeBody := []byte("this body is clearly longer than ten bytes")
		c.logRequest("POST", testRequestURL, http.Header{}, largeBody, "req-trunc", 1)

		debugEvents := fakeLog.eventsByLevel("debug")
		require.Len(t, debugEvents, 1)
		assert.Equal(t, "true", debugEvents[0].fields["body_truncated"])
		assert.Equal(t, largeBody[:10], debugEvents[0].fields["body_preview"])
	})

	t.Run("zero MaxPayloadLogBytes uses default cap", func(t *testing.T) {
		fakeLog := &fakeLogger{}
		c := &client{
			logger: fakeLog,
			config: &Config{LogPayloads: true},
		}

		largeBody := make([]byte, 1500)
		for i := range largeBody {
			largeBody[i] = byte('A' + (i % 26))
		}
		c.logRequest("POST", testRequestURL, http.Header{}, largeBody, "req-default", 1)

		debugEvents := fakeLog.eventsByLevel("debug")
		require.Len(t, debugEvents, 1)
		assert.Equal(t, "true", debugEvents[0].fields["body_truncated"])
		assert.Equal(t, largeBody[:DefaultMaxPayloadLogBytes], debugEvents[0].fields["body_preview"])
	})
}

func TestClientLogResponse(t *testing.T) {
	t.Run("basic response logging", func(t *testing.T) {
		fakeLog := &fakeLogger{}
		c := &client{
			logger: fakeLog,
			config: &Config{MaxPayloadLogBytes: 1024},
		}

		resp := &Response{
			StatusCode: 200,
			OK:         true,
			RawBody:    []byte(`{"success":true}`),
			Headers:    http.Header{"Content-Type": []string{"application/json"}},
			Stats:      Stats{ElapsedTime: 250 * time.Millisecond, Attempts: 2},
		}

		c.logResponse(resp, "resp-123")

		infoEvents := fakeLog.eventsByLevel("info")
		require.Len(t, infoEvents, 1)

		infoEvent := infoEvents[0]
		assert.Equal(t, testResponseMessage, infoEvent.message)
		assert.Equal(t, "inbound", infoEvent.fields["direction"])
		assert.Equal(t, 200, infoEvent.fields["status"])
		assert.Equal(t, 250*time.Millisecond, infoEvent.fields["elapsed"])
		assert.Equal(t, 2, infoEvent.fields["attempts"])
		assert.Equal(t, "resp-123", infoEvent.fields["request_id"])
		assert.Equal(t, len(resp.RawBody), infoEvent.fields["body_size"])

		assert.Empty(t, fakeLog.eventsByLevel("debug"))
	})

	t.Run("empty body omits body_size", func(t *testing.T) {
		fakeLog := &fakeLogger{}
		c := &client{logger: fakeLog, config: &Config{}}

		resp := &Response{StatusCode: 204, OK: true, Headers: http.Header{}, Stats: Stats{Attempts: 1}}
		c.logResponse(resp, "resp-empty")

		infoEvents := fakeLog.eventsByLevel("info")
		require.Len(t, infoEvents, 1)
		_, hasBodySize := infoEvents[0].fields["body_size"]
		assert.False(t, hasBodySize)
	})

	t.Run("payload logging enabled", func(t *testing.T) {
		fakeLog := &fakeLogger{}
		c := &client{
			logger: fakeLog,
			config: &Config{LogPayloads: true, MaxPayloadLogBytes: 100},
		}

		resp := &Response{
			StatusCode: 201,
			OK:         true,
			RawBody:    []byte(`{"id":123}`),
			Headers:    http.Header{"X-Rate-Limit": []string{"100"}},
			Stats:      Stats{ElapsedTime: 300 * time.Millisecond, Attempts: 1},
		}
		c.logResponse(resp, "resp-debug")

		debugEvents := fakeLog.eventsByLevel("debug")
		require.Len(t, debugEvents, 1)

		debugEvent := debugEvents[0]
		assert.Equal(t, 201, debugEvent.fields["status"])
		assert.NotNil(t, debugEvent.fields["headers"])
		assert.Equal(t, "false", debugEvent.fields["body_truncated"])
		assert.Equal(t, resp.RawBody, debugEvent.fields["body_preview"])
	})
}

func TestLogFailureAndRetry(t *testing.T) {
	fakeLog := &fakeLogger{}
	c := &client{logger: fakeLog, config: &Config{}}

	c.logFailure(&RawResponse{StatusCode: 500}, "req-f", 3)
	warnEvents := fakeLog.eventsByLevel("warn")
	require.Len(t, warnEvents, 1)
	assert.Equal(t, 500, warnEvents[0].fields["status"])
	assert.Equal(t, 3, warnEvents[0].fields["attempt"])

	c.logRetryWait(429, 2*time.Second, "req-r", 1)
	debugEvents := fakeLog.eventsByLevel("debug")
	require.Len(t, debugEvents, 1)
	assert.Equal(t, 2*time.Second, debugEvents[0].fields["wait"])
}

func TestLoggingConfigurationInheritance(t *testing.T) {
	fakeLog := &fakeLogger{}

	builtClient := NewBuilder(fakeLog).
		WithTimeout(5 * time.Second).
		Build()

	clientImpl, ok := builtClient.(*client)
	require.True(t, ok)

	assert.False(t, clientImpl.config.LogPayloads)
	assert.Equal(t, DefaultMaxPayloadLogBytes, clientImpl.config.MaxPayloadLogBytes)
	assert.Equal(t, 5*time.Second, clientImpl.config.Timeout)

	clientImpl.logRequest("GET", testRequestURL, http.Header{}, []byte("test"), "test-integration", 1)

	events := fakeLog.eventsByLevel("info")
	require.Len(t, events, 1)
	assert.Equal(t, testRequestMessage, events[0].message)
}

func TestDefaultWarningSinkLogsAtWarnLevel(t *testing.T) {
	fakeLog := &fakeLogger{}
	ft := &fakeTransport{responses: []*RawResponse{
		jsonResponse(200, "{}", http.Header{DefaultDeprecationHeader: []string{"gone soon"}}),
	}}

	c := NewBuilder(fakeLog).
		WithSession(&stubSession{host: testHost}).
		WithTransport(ft).
		Build()

	_, err := c.Get(t.Context(), &Request{Path: testPath})
	require.NoError(t, err)

	warnEvents := fakeLog.eventsByLevel("warn")
	require.Len(t, warnEvents, 1)
	assert.Contains(t, warnEvents[0].message, testPath)
	assert.Contains(t, warnEvents[0].message, "gone soon")
}
