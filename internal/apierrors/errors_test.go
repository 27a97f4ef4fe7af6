package apierrors

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"
)

func TestAPIError_Error(t *testing.T) {
	tests := []struct {
		name     string
		err      *APIError
		expected string
	}{
		{
			name:     "status code only",
			err:      &APIError{StatusCode: 418},
			expected: "API error 418",
		},
		{
			name:     "known status",
			err:      &APIError{StatusCode: 401},
			expected: "API error 401: unauthorized",
		},
		{
			name:     "with description",
			err:      &APIError{StatusCode: 400, Description: "invalid email"},
			expected: "API error 400: invalid email",
		},
		{
			name:     "with request",
			err:      &APIError{StatusCode: 503, Request: "POST /mail/send"},
			expected: "API error 503: service unavailable (request: POST /mail/send)",
		},
		{
			name:     "unexpected status with body",
			err:      &APIError{StatusCode: 404, Body: []byte("not here")},
			expected: "API error 404: not here",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.err.Error()
			if got != tt.expected {
				t.Errorf("Error() = %q, want %q", got, tt.expected)
			}
		})
	}
}

func TestAPIError_Is(t *testing.T) {
	tests := []struct {
		name     string
		status   int
		target   error
		expected bool
	}{
		{"400 matches ErrBadRequest", 400, ErrBadRequest, true},
		{"400 does not match ErrUnauthorized", 400, ErrUnauthorized, false},
		{"401 matches ErrUnauthorized", 401, ErrUnauthorized, true},
		{"500 matches ErrInternalServerError", 500, ErrInternalServerError, true},
		{"503 matches ErrServiceUnavailable", 503, ErrServiceUnavailable, true},
		{"503 does not match ErrInternalServerError", 503, ErrInternalServerError, false},
		{"404 matches ErrUnexpectedStatus", 404, ErrUnexpectedStatus, true},
		{"429 matches ErrUnexpectedStatus", 429, ErrUnexpectedStatus, true},
		{"400 does not match ErrUnexpectedStatus", 400, ErrUnexpectedStatus, false},
		{"401 does not match ErrUnexpectedStatus", 401, ErrUnexpectedStatus, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := &APIError{StatusCode: tt.status}
			if got := errors.Is(err, tt.target); got != tt.expected {
				t.Errorf("errors.Is(%d, %v) = %v, want %v", tt.status, tt.target, got, tt.expected)
			}
		})
	}
}

func TestAPIError_WrappedIs(t *testing.T) {
	err := fmt.Errorf("send failed: %w", &APIError{StatusCode: 401})
	if !errors.Is(err, ErrUnauthorized) {
		t.Error("wrapped 401 should match ErrUnauthorized")
	}

	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatal("errors.As should find *APIError")
	}
	if apiErr.StatusCode != 401 {
		t.Errorf("StatusCode = %d, want 401", apiErr.StatusCode)
	}
}

func TestTransportError(t *testing.T) {
	err := &TransportError{
		Method: "GET",
		URL:    "https://api.sendgrid.com/v3/templates/d-1",
		Err:    context.Canceled,
	}

	if !errors.Is(err, context.Canceled) {
		t.Error("TransportError should unwrap to context.Canceled")
	}
	want := "transport error: GET https://api.sendgrid.com/v3/templates/d-1: context canceled"
	if got := err.Error(); got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}
}

func TestTransportError_WithBody(t *testing.T) {
	err := &TransportError{
		Method: "POST",
		URL:    "https://api.sendgrid.com/v3/mail/send",
		Err:    errors.New("undecodable error body"),
		Body:   []byte("<html>gateway</html>"),
	}
	if !strings.Contains(err.Error(), "<html>gateway</html>") {
		t.Errorf("Error() = %q, should contain raw body", err.Error())
	}
}

func TestDecodeError(t *testing.T) {
	inner := errors.New("unexpected end of JSON input")
	err := &DecodeError{StatusCode: 200, Body: []byte("{"), Err: inner}

	if !errors.Is(err, ErrDecode) {
		t.Error("DecodeError should match ErrDecode")
	}
	if !errors.Is(err, inner) {
		t.Error("DecodeError should unwrap to the decoder error")
	}
	if got, want := err.Error(), "failed to decode 200 response: unexpected end of JSON input"; got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}
}

func TestTruncate(t *testing.T) {
	long := []byte(strings.Repeat("x", maxBodyInMessage+10))
	got := truncate(long)
	if len(got) != maxBodyInMessage+3 {
		t.Errorf("len(truncate()) = %d, want %d", len(got), maxBodyInMessage+3)
	}
	if !strings.HasSuffix(got, "...") {
		t.Errorf("truncate() = %q, want ... suffix", got)
	}
	if truncate([]byte("short")) != "short" {
		t.Error("short bodies should be returned unchanged")
	}
}
