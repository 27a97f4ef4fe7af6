package sendgrid

import (
	"net/http"
	"time"

	"github.com/sirupsen/logrus"
)

// clientConfig holds configuration for the client.
type clientConfig struct {
	config     Config
	httpClient *http.Client
	transport  Transport
	timeout    time.Duration
	logger     logrus.FieldLogger
}

// Option configures the client.
type Option func(*clientConfig)

// WithBaseURL overrides the API host, e.g. for a staging proxy or a test
// server.
func WithBaseURL(url string) Option {
	return func(c *clientConfig) {
		c.config.RESTAPIHost = url
	}
}

// WithConfig replaces the whole configuration.
func WithConfig(cfg Config) Option {
	return func(c *clientConfig) {
		c.config = cfg
	}
}

// WithHTTPClient sets the HTTP client backing the default transport.
func WithHTTPClient(client *http.Client) Option {
	return func(c *clientConfig) {
		c.httpClient = client
	}
}

// WithTimeout sets the timeout of the default transport's HTTP client.
// The client itself enforces no timeout; by default there is none.
func WithTimeout(timeout time.Duration) Option {
	return func(c *clientConfig) {
		c.timeout = timeout
	}
}

// WithTransport replaces the HTTP transport. WithHTTPClient and WithTimeout
// are ignored when a transport is set.
func WithTransport(t Transport) Option {
	return func(c *clientConfig) {
		c.transport = t
	}
}

// WithLogger sets the logger that receives debug records for each request.
// By default nothing is logged.
func WithLogger(logger logrus.FieldLogger) Option {
	return func(c *clientConfig) {
		c.logger = logger
	}
}
