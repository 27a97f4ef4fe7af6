package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/sgconnect/client-go/internal/apierrors"
)

// DefaultBaseURL is the production SendGrid v3 API host.
const DefaultBaseURL = "https://api.sendgrid.com/v3"

// Config holds configuration for creating a new Client.
type Config struct {
	// BaseURL is the API host including scheme and version segment (required).
	BaseURL string
	// APIKey is sent as a bearer token on every request (required).
	APIKey string
	// Transport performs the HTTP exchange. If nil, an HTTPTransport over
	// HTTPClient is used.
	Transport Transport
	// HTTPClient backs the default transport. Ignored when Transport is set.
	HTTPClient *http.Client
	// Timeout is applied to the default transport's HTTP client. Zero means
	// no timeout.
	Timeout time.Duration
	// Logger receives debug records for each exchange. Defaults to a
	// discarding logger.
	Logger logrus.FieldLogger
}

// Client is the low-level SendGrid API client. It is immutable after
// construction and safe for concurrent use.
type Client struct {
	baseURL   string
	apiKey    string
	transport Transport
	logger    logrus.FieldLogger
}

// NewClient creates a new API client from the given configuration.
func NewClient(cfg Config) (*Client, error) {
	if cfg.APIKey == "" {
		return nil, apierrors.ErrMissingAPIKey
	}
	if cfg.BaseURL == "" {
		return nil, fmt.Errorf("base URL is required")
	}

	transport := cfg.Transport
	if transport == nil {
		httpClient := cfg.HTTPClient
		if httpClient == nil {
			httpClient = &http.Client{}
		}
		if cfg.Timeout > 0 {
			copied := *httpClient
			copied.Timeout = cfg.Timeout
			httpClient = &copied
		}
		transport = NewHTTPTransport(httpClient)
	}

	logger := cfg.Logger
	if logger == nil {
		discard := logrus.New()
		discard.SetOutput(io.Discard)
		logger = discard
	}

	return &Client{
		baseURL:   cfg.BaseURL,
		apiKey:    cfg.APIKey,
		transport: transport,
		logger:    logger,
	}, nil
}

// BaseURL returns the configured API host.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// Transport returns the transport used for requests.
func (c *Client) Transport() Transport {
	return c.transport
}

// Logger returns the client's logger.
func (c *Client) Logger() logrus.FieldLogger {
	return c.logger
}

// Request describes one API call.
type Request struct {
	Method   string
	Endpoint Endpoint
	// Path is appended to the endpoint path. Callers escape path parameters.
	Path  string
	Query url.Values
	// Body is encoded as JSON when non-nil.
	Body any
}

// Meta describes a response that was classified as successful.
type Meta struct {
	StatusCode int
	Header     http.Header
	// NoContent is set when a 2xx response carried an empty body; the result
	// passed to Do is left untouched.
	NoContent bool
}

// Do sends req and decodes a successful response body into result, which
// may be nil when the body is of no interest.
func (c *Client) Do(ctx context.Context, req Request, result any) (*Meta, error) {
	target := c.url(req)

	var payload []byte
	if req.Body != nil {
		data, err := json.Marshal(req.Body)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal request body: %w", err)
		}
		payload = data
	}

	var (
		resp *Response
		err  error
	)
	switch req.Method {
	case http.MethodPost:
		resp, err = c.transport.Post(ctx, target, c.headers(), payload)
	case http.MethodGet:
		resp, err = c.transport.Get(ctx, target, c.headers())
	default:
		return nil, fmt.Errorf("unsupported method %q", req.Method)
	}

	log := c.logger.WithFields(logrus.Fields{
		"method": req.Method,
		"url":    target,
	})
	if err != nil {
		log.WithError(err).Debug("sendgrid request failed")
		return nil, &apierrors.TransportError{Method: req.Method, URL: target, Err: err}
	}
	log.WithField("status", resp.StatusCode).Debug("sendgrid request completed")

	return c.handle(req, target, resp, result)
}

func (c *Client) url(req Request) string {
	u := strings.TrimSuffix(c.baseURL, "/") + req.Endpoint.Path() + req.Path
	if len(req.Query) > 0 {
		u += "?" + req.Query.Encode()
	}
	return u
}

func (c *Client) headers() http.Header {
	h := make(http.Header, 2)
	h.Set("Content-Type", "application/json")
	h.Set("Authorization", "Bearer "+c.apiKey)
	return h
}

// errorContent is the body SendGrid returns with 4xx statuses.
type errorContent struct {
	Description string                 `json:"description"`
	Errors      []apierrors.FieldError `json:"errors"`
}

func (e *errorContent) description() string {
	if e.Description != "" {
		return e.Description
	}
	messages := make([]string, 0, len(e.Errors))
	for _, fe := range e.Errors {
		if fe.Message != "" {
			messages = append(messages, fe.Message)
		}
	}
	return strings.Join(messages, "; ")
}

// handle classifies resp by status code.
func (c *Client) handle(req Request, target string, resp *Response, result any) (*Meta, error) {
	meta := &Meta{StatusCode: resp.StatusCode, Header: resp.Header}
	name := req.Method + " " + req.Endpoint.Path() + req.Path

	switch code := resp.StatusCode; {
	case code >= 200 && code < 300:
		if len(bytes.TrimSpace(resp.Body)) == 0 {
			meta.NoContent = true
			return meta, nil
		}
		if result == nil {
			return meta, nil
		}
		if err := json.Unmarshal(resp.Body, result); err != nil {
			return nil, &apierrors.DecodeError{StatusCode: code, Body: resp.Body, Err: err}
		}
		return meta, nil

	case code == http.StatusBadRequest:
		var content errorContent
		if err := json.Unmarshal(resp.Body, &content); err != nil {
			return nil, &apierrors.TransportError{
				Method: req.Method,
				URL:    target,
				Err:    fmt.Errorf("bad request with unreadable body: %w", err),
				Body:   resp.Body,
			}
		}
		return nil, &apierrors.APIError{
			StatusCode:  code,
			Description: content.description(),
			Errors:      content.Errors,
			Request:     name,
		}

	case code == http.StatusUnauthorized,
		code == http.StatusInternalServerError,
		code == http.StatusServiceUnavailable:
		return nil, &apierrors.APIError{StatusCode: code, Request: name}

	default:
		apiErr := &apierrors.APIError{StatusCode: code, Request: name, Body: resp.Body}
		var content errorContent
		if err := json.Unmarshal(resp.Body, &content); err == nil {
			apiErr.Description = content.description()
			apiErr.Errors = content.Errors
		}
		return nil, apiErr
	}
}
