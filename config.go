package sendgrid

import "github.com/sgconnect/client-go/internal/api"

// DefaultRESTAPIHost is the production SendGrid v3 API base URL.
const DefaultRESTAPIHost = api.DefaultBaseURL

// Config holds the API host the client composes request URLs against.
// The host includes scheme and version segment; a trailing slash is
// tolerated. It is not validated: a malformed host surfaces as a
// TransportError on the first call.
type Config struct {
	RESTAPIHost string
}

// DefaultConfig returns the production configuration.
func DefaultConfig() Config {
	return Config{RESTAPIHost: DefaultRESTAPIHost}
}

// TestEnvConfig returns the configuration used for test runs. SendGrid has
// no separate sandbox host, so this points at production as well.
func TestEnvConfig() Config {
	return Config{RESTAPIHost: DefaultRESTAPIHost}
}
