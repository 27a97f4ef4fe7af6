package sendgrid

import (
	"net/http"

	"github.com/sgconnect/client-go/internal/api"
)

// Transport performs the HTTP exchange for the client. Implement it to
// route requests through a custom stack; HTTPTransport is the default.
type Transport = api.Transport

// Response is a fully read HTTP response returned by a Transport.
type Response = api.Response

// HTTPTransport is the net/http Transport.
type HTTPTransport = api.HTTPTransport

// NewHTTPTransport returns a Transport backed by client. A nil client
// selects an http.Client without timeout.
func NewHTTPTransport(client *http.Client) *HTTPTransport {
	return api.NewHTTPTransport(client)
}

// Client is the SendGrid REST client. It holds only its credentials and
// configuration, and is safe for concurrent use.
type Client struct {
	apiClient *api.Client
	config    Config
}

// New creates a new client with the given API key.
func New(apiKey string, opts ...Option) (*Client, error) {
	if apiKey == "" {
		return nil, ErrMissingAPIKey
	}

	cfg := &clientConfig{
		config: DefaultConfig(),
	}
	for _, opt := range opts {
		opt(cfg)
	}
	if cfg.config.RESTAPIHost == "" {
		cfg.config.RESTAPIHost = DefaultRESTAPIHost
	}

	apiClient, err := api.NewClient(api.Config{
		BaseURL:    cfg.config.RESTAPIHost,
		APIKey:     apiKey,
		Transport:  cfg.transport,
		HTTPClient: cfg.httpClient,
		Timeout:    cfg.timeout,
		Logger:     cfg.logger,
	})
	if err != nil {
		return nil, err
	}

	return &Client{
		apiClient: apiClient,
		config:    cfg.config,
	}, nil
}

// NewWithConfig creates a new client against the host in cfg.
func NewWithConfig(apiKey string, cfg Config, opts ...Option) (*Client, error) {
	return New(apiKey, append([]Option{WithConfig(cfg)}, opts...)...)
}

// Config returns the configuration the client was built with.
func (c *Client) Config() Config {
	return c.config
}

// BaseURL returns the API host requests are composed against.
func (c *Client) BaseURL() string {
	return c.apiClient.BaseURL()
}
