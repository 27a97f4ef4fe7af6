// Package sendgrid provides a typed Go client for the SendGrid v3 API:
// sending templated email and managing dynamic transactional templates.
//
// Basic usage:
//
//	client, err := sendgrid.New(os.Getenv("SENDGRID_API_KEY"))
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	_, err = client.SendTemplatedEmail(ctx, sendgrid.TemplatedEmail{
//	    From:         "noreply@example.com",
//	    To:           []sendgrid.EmailAddress{{Email: "user@example.com"}},
//	    TemplateID:   "d-0123456789abcdef",
//	    Placeholders: map[string]any{"code": "123456"},
//	})
//	if errors.Is(err, sendgrid.ErrBadRequest) {
//	    var apiErr *sendgrid.APIError
//	    errors.As(err, &apiErr)
//	    log.Printf("rejected: %s", apiErr.Description)
//	}
//
// Every call sends exactly one request and returns its outcome. There is no
// retry, rate limiting or caching; errors carry enough detail for callers
// to apply their own policy.
package sendgrid
