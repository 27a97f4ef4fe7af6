package api

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
)

// Response is a fully read HTTP response.
type Response struct {
	StatusCode int
	Header     http.Header
	Body       []byte
}

// Transport performs a single HTTP exchange. Implementations own connection
// reuse, TLS and timeouts. A non-nil error means no response was obtained.
type Transport interface {
	Post(ctx context.Context, url string, header http.Header, body []byte) (*Response, error)
	Get(ctx context.Context, url string, header http.Header) (*Response, error)
}

// HTTPTransport is a Transport backed by net/http.
type HTTPTransport struct {
	client *http.Client
}

// NewHTTPTransport returns a Transport using the given client. A nil client
// selects a new http.Client with no timeout.
func NewHTTPTransport(client *http.Client) *HTTPTransport {
	if client == nil {
		client = &http.Client{}
	}
	return &HTTPTransport{client: client}
}

// HTTPClient returns the underlying HTTP client.
func (t *HTTPTransport) HTTPClient() *http.Client {
	return t.client
}

// Post sends body to url.
func (t *HTTPTransport) Post(ctx context.Context, url string, header http.Header, body []byte) (*Response, error) {
	var bodyReader io.Reader
	if body != nil {
		bodyReader = bytes.NewReader(body)
	}
	return t.do(ctx, http.MethodPost, url, header, bodyReader)
}

// Get fetches url.
func (t *HTTPTransport) Get(ctx context.Context, url string, header http.Header) (*Response, error) {
	return t.do(ctx, http.MethodGet, url, header, nil)
}

func (t *HTTPTransport) do(ctx context.Context, method, url string, header http.Header, body io.Reader) (*Response, error) {
	req, err := http.NewRequestWithContext(ctx, method, url, body)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	for key, values := range header {
		for _, v := range values {
			req.Header.Add(key, v)
		}
	}

	resp, err := t.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	return &Response{
		StatusCode: resp.StatusCode,
		Header:     resp.Header,
		Body:       data,
	}, nil
}
