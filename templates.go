package sendgrid

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/sirupsen/logrus"

	"github.com/sgconnect/client-go/internal/api"
)

// CreateTemplate creates an empty dynamic template and returns the ID the
// API assigned. Content is added with UpdateTemplate.
func (c *Client) CreateTemplate(ctx context.Context, name string) (*CreateTemplateResponse, error) {
	var created Template
	_, err := c.apiClient.Do(ctx, api.Request{
		Method:   http.MethodPost,
		Endpoint: api.EndpointTemplates,
		Body: &CreateTemplateRequest{
			Name:       name,
			Generation: GenerationDynamic,
		},
	}, &created)
	if err != nil {
		return nil, err
	}

	return &CreateTemplateResponse{TemplateID: created.ID}, nil
}

// GetTemplate retrieves a template with its versions. It returns (nil, nil)
// when the API answers successfully with an empty body.
func (c *Client) GetTemplate(ctx context.Context, templateID string) (*Template, error) {
	var template Template
	meta, err := c.apiClient.Do(ctx, api.Request{
		Method:   http.MethodGet,
		Endpoint: api.EndpointTemplates,
		Path:     "/" + url.PathEscape(templateID),
	}, &template)
	if err != nil {
		return nil, err
	}
	if meta.NoContent {
		return nil, nil
	}
	return &template, nil
}

// ListTemplatesParams selects a page of dynamic templates.
type ListTemplatesParams struct {
	// PageSize is required by the API (1 to 200). Zero selects 200.
	PageSize  int
	PageToken string
}

// ListTemplates returns one page of dynamic templates.
func (c *Client) ListTemplates(ctx context.Context, params ListTemplatesParams) (*TemplateList, error) {
	pageSize := params.PageSize
	if pageSize == 0 {
		pageSize = 200
	}
	query := url.Values{
		"generations": {GenerationDynamic},
		"page_size":   {strconv.Itoa(pageSize)},
	}
	if params.PageToken != "" {
		query.Set("page_token", params.PageToken)
	}

	var list TemplateList
	_, err := c.apiClient.Do(ctx, api.Request{
		Method:   http.MethodGet,
		Endpoint: api.EndpointTemplates,
		Query:    query,
	}, &list)
	if err != nil {
		return nil, err
	}
	return &list, nil
}

// UpdateTemplateParams is the content of a new template version.
type UpdateTemplateParams struct {
	Name         string
	TemplateID   string
	HTMLContent  string
	PlainContent string
	Subject      string
}

// versionRequest builds the active, code-edited version payload.
func (p *UpdateTemplateParams) versionRequest() *TemplateVersionRequest {
	return &TemplateVersionRequest{
		TemplateID:           p.TemplateID,
		Active:               Int(1),
		Name:                 p.Name,
		Subject:              p.Subject,
		HTMLContent:          String(p.HTMLContent),
		PlainContent:         String(p.PlainContent),
		GeneratePlainContent: Bool(true),
		Editor:               String(EditorCode),
	}
}

// UpdateTemplate creates a new active version of a template. The API has no
// in-place edit: every call adds a version and older versions are kept.
// It returns (nil, nil) when the API answers successfully with an empty body.
func (c *Client) UpdateTemplate(ctx context.Context, params UpdateTemplateParams) (*TemplateVersion, error) {
	req := params.versionRequest()
	c.apiClient.Logger().WithFields(logrus.Fields{
		"template_id": params.TemplateID,
		"name":        params.Name,
	}).Debug("creating template version")

	var version TemplateVersion
	meta, err := c.apiClient.Do(ctx, api.Request{
		Method:   http.MethodPost,
		Endpoint: api.EndpointTemplates,
		Path:     fmt.Sprintf("/%s/versions", url.PathEscape(params.TemplateID)),
		Body:     req,
	}, &version)
	if err != nil {
		return nil, err
	}
	if meta.NoContent {
		return nil, nil
	}
	return &version, nil
}
