package sendgrid

import "github.com/sgconnect/client-go/internal/apierrors"

// Sentinel errors for errors.Is() checks
var (
	// ErrMissingAPIKey is returned when no API key is provided.
	ErrMissingAPIKey = apierrors.ErrMissingAPIKey

	// ErrBadRequest matches 400 responses; the payload was rejected.
	ErrBadRequest = apierrors.ErrBadRequest

	// ErrUnauthorized matches 401 responses; the API key must be replaced.
	ErrUnauthorized = apierrors.ErrUnauthorized

	// ErrInternalServerError matches 500 responses.
	ErrInternalServerError = apierrors.ErrInternalServerError

	// ErrServiceUnavailable matches 503 responses.
	ErrServiceUnavailable = apierrors.ErrServiceUnavailable

	// ErrUnexpectedStatus matches every other non-2xx response.
	ErrUnexpectedStatus = apierrors.ErrUnexpectedStatus

	// ErrDecode matches a DecodeError.
	ErrDecode = apierrors.ErrDecode
)

// SendGridError is implemented by all errors classified by the client.
type SendGridError interface {
	error
	SendGridError() // marker method
}

// APIError represents an HTTP error status returned by the SendGrid API.
// Use errors.Is with the sentinels above to branch on the status.
type APIError = apierrors.APIError

// FieldError is one entry of the provider's "errors" array.
type FieldError = apierrors.FieldError

// TransportError represents a failure before a usable HTTP response was
// obtained: connection, DNS, TLS, or context cancellation.
type TransportError = apierrors.TransportError

// DecodeError represents a successful response whose body did not match
// the expected shape.
type DecodeError = apierrors.DecodeError

var (
	_ SendGridError = (*APIError)(nil)
	_ SendGridError = (*TransportError)(nil)
	_ SendGridError = (*DecodeError)(nil)
)
