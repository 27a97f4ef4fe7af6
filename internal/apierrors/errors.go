// Package apierrors provides shared error types for the SendGrid client.
package apierrors

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors for errors.Is() checks
var (
	// ErrMissingAPIKey is returned when no API key is provided.
	ErrMissingAPIKey = errors.New("API key is required")

	// ErrBadRequest is returned when the API rejects the request payload (400).
	ErrBadRequest = errors.New("bad request")

	// ErrUnauthorized is returned when the API key is invalid or revoked (401).
	ErrUnauthorized = errors.New("unauthorized")

	// ErrInternalServerError is returned when the API fails internally (500).
	ErrInternalServerError = errors.New("internal server error")

	// ErrServiceUnavailable is returned when the API is temporarily down (503).
	ErrServiceUnavailable = errors.New("service unavailable")

	// ErrUnexpectedStatus is returned for any status code without a dedicated error.
	ErrUnexpectedStatus = errors.New("unexpected status code")

	// ErrDecode is returned when a response body does not match the expected shape.
	ErrDecode = errors.New("failed to decode response")
)

// FieldError is a single entry of the "errors" array SendGrid returns on
// rejected requests.
type FieldError struct {
	Message string  `json:"message"`
	Field   *string `json:"field,omitempty"`
	Help    *string `json:"help,omitempty"`
}

// APIError represents an HTTP error status returned by the SendGrid API.
type APIError struct {
	StatusCode int
	// Description is the provider's reason. Set for 400 responses, and on a
	// best-effort basis for statuses without a dedicated sentinel.
	Description string
	Errors      []FieldError
	// Request identifies the call that failed, e.g. "POST /mail/send".
	Request string
	// Body is the raw response body for statuses without a dedicated sentinel.
	Body []byte
}

func (e *APIError) Error() string {
	var b strings.Builder
	fmt.Fprintf(&b, "API error %d", e.StatusCode)
	if e.Description != "" {
		fmt.Fprintf(&b, ": %s", e.Description)
	} else if text := statusText(e.StatusCode); text != "" {
		fmt.Fprintf(&b, ": %s", text)
	} else if len(e.Body) > 0 {
		fmt.Fprintf(&b, ": %s", truncate(e.Body))
	}
	if e.Request != "" {
		fmt.Fprintf(&b, " (request: %s)", e.Request)
	}
	return b.String()
}

// SendGridError implements the SendGridError interface.
func (e *APIError) SendGridError() {}

// Is implements errors.Is for sentinel error matching.
func (e *APIError) Is(target error) bool {
	switch e.StatusCode {
	case 400:
		return target == ErrBadRequest
	case 401:
		return target == ErrUnauthorized
	case 500:
		return target == ErrInternalServerError
	case 503:
		return target == ErrServiceUnavailable
	}
	return target == ErrUnexpectedStatus
}

func statusText(code int) string {
	switch code {
	case 400:
		return ErrBadRequest.Error()
	case 401:
		return ErrUnauthorized.Error()
	case 500:
		return ErrInternalServerError.Error()
	case 503:
		return ErrServiceUnavailable.Error()
	}
	return ""
}

// TransportError represents a failure to obtain a usable HTTP response:
// connection, DNS, TLS, cancellation, or an error body that could not be
// parsed at all.
type TransportError struct {
	Method string
	URL    string
	Err    error
	// Body holds the raw response body when a response was received but
	// could not be interpreted.
	Body []byte
}

func (e *TransportError) Error() string {
	if len(e.Body) > 0 {
		return fmt.Sprintf("transport error: %s %s: %v: %s", e.Method, e.URL, e.Err, truncate(e.Body))
	}
	return fmt.Sprintf("transport error: %s %s: %v", e.Method, e.URL, e.Err)
}

// Unwrap returns the underlying error.
func (e *TransportError) Unwrap() error {
	return e.Err
}

// SendGridError implements the SendGridError interface.
func (e *TransportError) SendGridError() {}

// DecodeError indicates a response body that failed to parse into the
// expected shape.
type DecodeError struct {
	StatusCode int
	Body       []byte
	Err        error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("failed to decode %d response: %v", e.StatusCode, e.Err)
}

// Unwrap returns the underlying error.
func (e *DecodeError) Unwrap() error {
	return e.Err
}

// Is implements errors.Is for sentinel error matching.
func (e *DecodeError) Is(target error) bool {
	return target == ErrDecode
}

// SendGridError implements the SendGridError interface.
func (e *DecodeError) SendGridError() {}

const maxBodyInMessage = 256

func truncate(body []byte) string {
	if len(body) <= maxBodyInMessage {
		return string(body)
	}
	return string(body[:maxBodyInMessage]) + "..."
}
