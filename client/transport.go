package client

import (
	"bytes"
	"compress/flate"
	"compress/gzip"
	"context"
	"io"
	"net/http"
	"strings"
	"time"
)

// netTransport is the default Transport over net/http. One Execute call is
// one physical exchange: it reads the full body, transparently decoding
// gzip and deflate content, and never retries on its own.
type netTransport struct {
	client *http.Client
}

// NewHTTPTransport creates the default net/http-backed transport. The
// timeout bounds one physical attempt end to end.
func NewHTTPTransport(timeout time.Duration) Transport {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &netTransport{client: &http.Client{Timeout: timeout}}
}

func (t *netTransport) Execute(ctx context.Context, method, url string, headers http.Header, body []byte) (*RawResponse, error) {
	var reader io.Reader = http.NoBody
	if len(body) > 0 {
		reader = bytes.NewReader(body)
	}

	req, err := http.NewRequestWithContext(ctx, method, url, reader)
	if err != nil {
		return nil, err
	}
	for name, values := range headers {
		for _, v := range values {
			req.Header.Add(name, v)
		}
	}

	resp, err := t.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	// Accept-Encoding is set explicitly by the header composer, which
	// disables net/http's automatic decompression. Undo the encoding here
	// so upstream layers always see plain bytes.
	data, err := readBody(resp)
	if err != nil {
		return nil, err
	}

	return &RawResponse{
		StatusCode: resp.StatusCode,
		Headers:    resp.Header,
		Body:       data,
	}, nil
}

func readBody(resp *http.Response) ([]byte, error) {
	var reader io.Reader = resp.Body

	switch strings.ToLower(strings.TrimSpace(resp.Header.Get("Content-Encoding"))) {
	case "gzip":
		gz, err := gzip.NewReader(resp.Body)
		if err != nil {
			return nil, err
		}
		defer gz.Close()
		reader = gz
		resp.Header.Del("Content-Encoding")
		resp.Header.Del("Content-Length")
	case "deflate":
		fl := flate.NewReader(resp.Body)
		defer fl.Close()
		reader = fl
		resp.Header.Del("Content-Encoding")
		resp.Header.Del("Content-Length")
	}

	return io.ReadAll(reader)
}
