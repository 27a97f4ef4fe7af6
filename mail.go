package sendgrid

import (
	"context"
	"errors"
	"net/http"

	"github.com/sgconnect/client-go/internal/api"
)

// TemplatedEmail describes a single templated send. Required fields are
// forwarded as given; the API rejects invalid payloads with a 400.
type TemplatedEmail struct {
	From     string
	FromName string // optional display name
	To       []EmailAddress
	Cc       []EmailAddress
	Bcc      []EmailAddress
	// Subject is passed through on the envelope; a dynamic template usually
	// supplies its own.
	Subject    string
	TemplateID string
	// Placeholders become the personalization's dynamic_template_data.
	Placeholders map[string]any
}

// Envelope builds the mail send payload: one personalization holding every
// recipient and the placeholder data.
func (t *TemplatedEmail) Envelope() *Email {
	return &Email{
		From: NewEmailAddress(t.From, t.FromName),
		Personalizations: []Personalization{{
			To:                  t.To,
			Cc:                  t.Cc,
			Bcc:                 t.Bcc,
			DynamicTemplateData: t.Placeholders,
		}},
		TemplateID: String(t.TemplateID),
		Subject:    t.Subject,
	}
}

// SendResponse is the outcome of an accepted send. The API does not echo
// content, so only the status and message ID header are reported.
type SendResponse struct {
	StatusCode int
	// MessageID is the X-Message-Id response header, empty if absent.
	MessageID string
}

// SendTemplatedEmail sends an email rendered from a dynamic template.
//
// Exactly one request is sent. The mail send endpoint is not idempotent:
// resending after an ambiguous failure may deliver twice.
func (c *Client) SendTemplatedEmail(ctx context.Context, email TemplatedEmail) (*SendResponse, error) {
	return c.SendEmail(ctx, email.Envelope())
}

// SendEmail posts a caller-built envelope, for example one carrying inline
// Content instead of a template.
func (c *Client) SendEmail(ctx context.Context, email *Email) (*SendResponse, error) {
	if email == nil {
		return nil, errors.New("email is required")
	}

	meta, err := c.apiClient.Do(ctx, api.Request{
		Method:   http.MethodPost,
		Endpoint: api.EndpointMailSend,
		Body:     email,
	}, nil)
	if err != nil {
		return nil, err
	}

	return &SendResponse{
		StatusCode: meta.StatusCode,
		MessageID:  meta.Header.Get("X-Message-Id"),
	}, nil
}
