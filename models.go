package sendgrid

import (
	"bytes"
	"encoding/json"
)

// Template generations and editors understood by the API.
const (
	// GenerationDynamic is the only template generation this client creates.
	GenerationDynamic = "dynamic"
	// GenerationLegacy marks templates created before dynamic templates existed.
	GenerationLegacy = "legacy"

	// EditorCode marks a version edited as raw HTML.
	EditorCode = "code"
	// EditorDesign marks a version edited in the drag-and-drop designer.
	EditorDesign = "design"
)

// MIME types for inline content.
const (
	ContentTypePlain = "text/plain"
	ContentTypeHTML  = "text/html"
)

// String returns a pointer to s, for the optional fields of the wire model.
func String(s string) *string { return &s }

// Bool returns a pointer to b.
func Bool(b bool) *bool { return &b }

// Int returns a pointer to i.
func Int(i int) *int { return &i }

// EmailAddress is a mail participant.
type EmailAddress struct {
	Email string  `json:"email"`
	Name  *string `json:"name"`
}

// NewEmailAddress returns an address with an optional display name. An
// empty name leaves Name unset.
func NewEmailAddress(email, name string) EmailAddress {
	a := EmailAddress{Email: email}
	if name != "" {
		a.Name = &name
	}
	return a
}

// MarshalJSON omits name when it is unset.
func (a EmailAddress) MarshalJSON() ([]byte, error) {
	var o object
	o.set("email", a.Email)
	if a.Name != nil {
		o.set("name", *a.Name)
	}
	return o.bytes()
}

// Personalization is one recipient group and its template data.
type Personalization struct {
	To                  []EmailAddress `json:"to"`
	Cc                  []EmailAddress `json:"cc"`
	Bcc                 []EmailAddress `json:"bcc"`
	Subject             *string        `json:"subject"`
	DynamicTemplateData map[string]any `json:"dynamic_template_data"`
}

// MarshalJSON always emits to; cc, bcc, subject and dynamic_template_data
// only when present.
func (p Personalization) MarshalJSON() ([]byte, error) {
	var o object
	to := p.To
	if to == nil {
		to = []EmailAddress{}
	}
	o.set("to", to)
	if len(p.Cc) > 0 {
		o.set("cc", p.Cc)
	}
	if len(p.Bcc) > 0 {
		o.set("bcc", p.Bcc)
	}
	if p.Subject != nil {
		o.set("subject", *p.Subject)
	}
	if len(p.DynamicTemplateData) > 0 {
		o.set("dynamic_template_data", p.DynamicTemplateData)
	}
	return o.bytes()
}

// Content is an inline body part of a message.
type Content struct {
	Type  string `json:"type"`
	Value string `json:"value"`
}

// Email is the envelope posted to the mail send endpoint.
type Email struct {
	From             EmailAddress      `json:"from"`
	Personalizations []Personalization `json:"personalizations"`
	TemplateID       *string           `json:"template_id"`
	Subject          string            `json:"subject"`
	Content          []Content         `json:"content"`
}

// MarshalJSON omits template_id when unset, and subject and content when
// empty: a template supplies both.
func (e Email) MarshalJSON() ([]byte, error) {
	var o object
	o.set("from", e.From)
	personalizations := e.Personalizations
	if personalizations == nil {
		personalizations = []Personalization{}
	}
	o.set("personalizations", personalizations)
	if e.TemplateID != nil {
		o.set("template_id", *e.TemplateID)
	}
	if e.Subject != "" {
		o.set("subject", e.Subject)
	}
	if len(e.Content) > 0 {
		o.set("content", e.Content)
	}
	return o.bytes()
}

// Template is a transactional template and its versions.
type Template struct {
	ID         string            `json:"id"`
	Name       string            `json:"name"`
	Generation string            `json:"generation"`
	UpdatedAt  string            `json:"updated_at"`
	Versions   []TemplateVersion `json:"versions"`
}

// ActiveVersion returns the version marked active, or nil.
func (t *Template) ActiveVersion() *TemplateVersion {
	for i := range t.Versions {
		if v := t.Versions[i].Active; v != nil && *v == 1 {
			return &t.Versions[i]
		}
	}
	return nil
}

// TemplateVersion is one content revision of a template. Every field is
// optional; unset fields are absent on the wire.
type TemplateVersion struct {
	ID                   *string `json:"id"`
	TemplateID           *string `json:"template_id"`
	Active               *int    `json:"active"`
	Name                 *string `json:"name"`
	Subject              *string `json:"subject"`
	HTMLContent          *string `json:"html_content"`
	PlainContent         *string `json:"plain_content"`
	GeneratePlainContent *bool   `json:"generate_plain_content"`
	Editor               *string `json:"editor"`
	TestData             *string `json:"test_data"`
	ThumbnailURL         *string `json:"thumbnail_url"`
	UpdatedAt            *string `json:"updated_at"`
}

// MarshalJSON emits only the fields that are set.
func (v TemplateVersion) MarshalJSON() ([]byte, error) {
	var o object
	o.setString("id", v.ID)
	o.setString("template_id", v.TemplateID)
	if v.Active != nil {
		o.set("active", *v.Active)
	}
	o.setString("name", v.Name)
	o.setString("subject", v.Subject)
	o.setString("html_content", v.HTMLContent)
	o.setString("plain_content", v.PlainContent)
	if v.GeneratePlainContent != nil {
		o.set("generate_plain_content", *v.GeneratePlainContent)
	}
	o.setString("editor", v.Editor)
	o.setString("test_data", v.TestData)
	o.setString("thumbnail_url", v.ThumbnailURL)
	o.setString("updated_at", v.UpdatedAt)
	return o.bytes()
}

// TemplateVersionRequest is the body posted to create a template version.
type TemplateVersionRequest struct {
	TemplateID           string  `json:"template_id"`
	Active               *int    `json:"active"`
	Name                 string  `json:"name"`
	Subject              string  `json:"subject"`
	HTMLContent          *string `json:"html_content"`
	PlainContent         *string `json:"plain_content"`
	GeneratePlainContent *bool   `json:"generate_plain_content"`
	Editor               *string `json:"editor"`
	TestData             *string `json:"test_data"`
}

// MarshalJSON emits optional fields only when set.
func (r TemplateVersionRequest) MarshalJSON() ([]byte, error) {
	var o object
	o.set("template_id", r.TemplateID)
	if r.Active != nil {
		o.set("active", *r.Active)
	}
	o.set("name", r.Name)
	o.setString("html_content", r.HTMLContent)
	o.setString("plain_content", r.PlainContent)
	if r.GeneratePlainContent != nil {
		o.set("generate_plain_content", *r.GeneratePlainContent)
	}
	o.set("subject", r.Subject)
	o.setString("editor", r.Editor)
	o.setString("test_data", r.TestData)
	return o.bytes()
}

// CreateTemplateRequest is the body posted to create a template.
type CreateTemplateRequest struct {
	Name       string `json:"name"`
	Generation string `json:"generation"`
}

// CreateTemplateResponse carries the identifier the API assigned.
type CreateTemplateResponse struct {
	TemplateID string
}

// TemplateList is one page of templates.
type TemplateList struct {
	Templates []Template `json:"result"`
	Metadata  struct {
		Self  string `json:"self"`
		Next  string `json:"next"`
		Count int    `json:"count"`
	} `json:"_metadata"`
}

// object builds a JSON object with keys in insertion order.
type object struct {
	buf bytes.Buffer
	err error
}

func (o *object) set(key string, value any) {
	if o.err != nil {
		return
	}
	data, err := json.Marshal(value)
	if err != nil {
		o.err = err
		return
	}
	if o.buf.Len() == 0 {
		o.buf.WriteByte('{')
	} else {
		o.buf.WriteByte(',')
	}
	k, _ := json.Marshal(key)
	o.buf.Write(k)
	o.buf.WriteByte(':')
	o.buf.Write(data)
}

func (o *object) setString(key string, value *string) {
	if value != nil {
		o.set(key, *value)
	}
}

func (o *object) bytes() ([]byte, error) {
	if o.err != nil {
		return nil, o.err
	}
	if o.buf.Len() == 0 {
		return []byte("{}"), nil
	}
	o.buf.WriteByte('}')
	return o.buf.Bytes(), nil
}
