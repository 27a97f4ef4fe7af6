package sendgrid

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestCreateTemplate(t *testing.T) {
	var (
		gotMethod string
		gotPath   string
		gotBody   map[string]any
	)
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotMethod = r.Method
		gotPath = r.URL.Path
		json.NewDecoder(r.Body).Decode(&gotBody)
		w.WriteHeader(http.StatusCreated)
		fmt.Fprint(w, `{"id":"d-abc123","name":"My Template","generation":"dynamic","updated_at":"2024-01-01 00:00:00","versions":[]}`)
	})

	resp, err := client.CreateTemplate(context.Background(), "My Template")
	if err != nil {
		t.Fatalf("CreateTemplate() error = %v", err)
	}

	if gotMethod != http.MethodPost || gotPath != "/v3/templates" {
		t.Errorf("request = %s %s, want POST /v3/templates", gotMethod, gotPath)
	}
	want := map[string]any{"name": "My Template", "generation": "dynamic"}
	if diff := cmp.Diff(want, gotBody); diff != "" {
		t.Errorf("body mismatch (-want +got):\n%s", diff)
	}
	if resp.TemplateID != "d-abc123" {
		t.Errorf("TemplateID = %s, want d-abc123", resp.TemplateID)
	}
}

func TestCreateTemplate_EmptyBody(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusCreated)
	})

	resp, err := client.CreateTemplate(context.Background(), "x")
	if err != nil {
		t.Fatalf("CreateTemplate() error = %v", err)
	}
	if resp == nil || resp.TemplateID != "" {
		t.Errorf("resp = %+v, want zero CreateTemplateResponse", resp)
	}
}

func TestCreateTemplate_DecodeError(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusCreated)
		fmt.Fprint(w, `{"id": 12`)
	})

	_, err := client.CreateTemplate(context.Background(), "x")
	var dErr *DecodeError
	if !errors.As(err, &dErr) {
		t.Fatalf("error = %T, want *DecodeError", err)
	}
	if dErr.StatusCode != http.StatusCreated {
		t.Errorf("StatusCode = %d, want 201", dErr.StatusCode)
	}
}

func TestGetTemplate(t *testing.T) {
	var gotPath, gotMethod string
	var gotBody []byte
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotMethod = r.Method
		gotPath = r.URL.Path
		gotBody, _ = io.ReadAll(r.Body)
		fmt.Fprint(w, `{
			"id": "d-abc",
			"name": "Welcome",
			"generation": "dynamic",
			"updated_at": "2024-01-01 00:00:00",
			"versions": [
				{"id": "v-1", "template_id": "d-abc", "active": 0, "name": "a"},
				{"id": "v-2", "template_id": "d-abc", "active": 1, "name": "b", "html_content": "<p>{{name}}</p>"}
			]
		}`)
	})

	tpl, err := client.GetTemplate(context.Background(), "d-abc")
	if err != nil {
		t.Fatalf("GetTemplate() error = %v", err)
	}

	if gotMethod != http.MethodGet || gotPath != "/v3/templates/d-abc" {
		t.Errorf("request = %s %s, want GET /v3/templates/d-abc", gotMethod, gotPath)
	}
	if len(gotBody) != 0 {
		t.Errorf("GET body = %q, want empty", gotBody)
	}

	want := &Template{
		ID:         "d-abc",
		Name:       "Welcome",
		Generation: GenerationDynamic,
		UpdatedAt:  "2024-01-01 00:00:00",
		Versions: []TemplateVersion{
			{ID: String("v-1"), TemplateID: String("d-abc"), Active: Int(0), Name: String("a")},
			{ID: String("v-2"), TemplateID: String("d-abc"), Active: Int(1), Name: String("b"), HTMLContent: String("<p>{{name}}</p>")},
		},
	}
	if diff := cmp.Diff(want, tpl); diff != "" {
		t.Errorf("template mismatch (-want +got):\n%s", diff)
	}
}

func TestGetTemplate_EmptyBodyIsNil(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	tpl, err := client.GetTemplate(context.Background(), "d-abc")
	if err != nil {
		t.Fatalf("GetTemplate() error = %v", err)
	}
	if tpl != nil {
		t.Errorf("GetTemplate() = %+v, want nil", tpl)
	}
}

func TestGetTemplate_EscapesID(t *testing.T) {
	var rawPath string
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		rawPath = r.URL.EscapedPath()
		w.WriteHeader(http.StatusOK)
	})

	if _, err := client.GetTemplate(context.Background(), "a/b c"); err != nil {
		t.Fatalf("GetTemplate() error = %v", err)
	}
	if rawPath != "/v3/templates/a%2Fb%20c" {
		t.Errorf("path = %s, want /v3/templates/a%%2Fb%%20c", rawPath)
	}
}

func TestGetTemplate_NotFound(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		fmt.Fprint(w, `{"errors":[{"message":"resource not found"}]}`)
	})

	tpl, err := client.GetTemplate(context.Background(), "d-missing")
	if tpl != nil {
		t.Errorf("GetTemplate() = %+v, want nil", tpl)
	}
	if !errors.Is(err, ErrUnexpectedStatus) {
		t.Fatalf("error = %v, want ErrUnexpectedStatus", err)
	}
	var apiErr *APIError
	errors.As(err, &apiErr)
	if apiErr.StatusCode != 404 || apiErr.Description != "resource not found" {
		t.Errorf("APIError = %+v", apiErr)
	}
	if apiErr.Request != "GET /templates/d-missing" {
		t.Errorf("Request = %q", apiErr.Request)
	}
}

func TestUpdateTemplate(t *testing.T) {
	var (
		gotMethod string
		gotPath   string
		gotBody   map[string]any
	)
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotMethod = r.Method
		gotPath = r.URL.Path
		json.NewDecoder(r.Body).Decode(&gotBody)
		w.WriteHeader(http.StatusCreated)
		fmt.Fprint(w, `{"id":"v-new","template_id":"d-abc","active":1,"name":"v2","subject":"Hi","html_content":"<b>x</b>","plain_content":"x","generate_plain_content":true,"editor":"code","updated_at":"2024-01-01 00:00:00"}`)
	})

	version, err := client.UpdateTemplate(context.Background(), UpdateTemplateParams{
		Name:         "v2",
		TemplateID:   "d-abc",
		HTMLContent:  "<b>x</b>",
		PlainContent: "x",
		Subject:      "Hi",
	})
	if err != nil {
		t.Fatalf("UpdateTemplate() error = %v", err)
	}

	if gotMethod != http.MethodPost {
		t.Errorf("method = %s, want POST (every update creates a version)", gotMethod)
	}
	if gotPath != "/v3/templates/d-abc/versions" {
		t.Errorf("path = %s, want /v3/templates/d-abc/versions", gotPath)
	}

	wantBody := map[string]any{
		"template_id":            "d-abc",
		"active":                 float64(1),
		"name":                   "v2",
		"html_content":           "<b>x</b>",
		"plain_content":          "x",
		"generate_plain_content": true,
		"subject":                "Hi",
		"editor":                 "code",
	}
	if diff := cmp.Diff(wantBody, gotBody); diff != "" {
		t.Errorf("body mismatch (-want +got):\n%s", diff)
	}

	if version == nil || *version.ID != "v-new" || *version.Active != 1 {
		t.Errorf("version = %+v", version)
	}
	if version.TestData != nil {
		t.Error("TestData should be nil when absent")
	}
}

func TestUpdateTemplate_EmptyBodyIsNil(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusCreated)
	})
	version, err := client.UpdateTemplate(context.Background(), UpdateTemplateParams{TemplateID: "d-1"})
	if err != nil {
		t.Fatalf("UpdateTemplate() error = %v", err)
	}
	if version != nil {
		t.Errorf("UpdateTemplate() = %+v, want nil", version)
	}
}

func TestUpdateTemplate_BadRequest(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		fmt.Fprint(w, `{"errors":[{"field":"subject","message":"subject is required"}]}`)
	})

	_, err := client.UpdateTemplate(context.Background(), UpdateTemplateParams{TemplateID: "d-1"})
	if !errors.Is(err, ErrBadRequest) {
		t.Fatalf("error = %v, want ErrBadRequest", err)
	}
	var apiErr *APIError
	errors.As(err, &apiErr)
	if apiErr.Description != "subject is required" {
		t.Errorf("Description = %q", apiErr.Description)
	}
	if apiErr.Request != "POST /templates/d-1/versions" {
		t.Errorf("Request = %q", apiErr.Request)
	}
}

func TestListTemplates(t *testing.T) {
	var gotQuery map[string][]string
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.Query()
		fmt.Fprint(w, `{"result":[{"id":"d-1","name":"a","generation":"dynamic","versions":[]},{"id":"d-2","name":"b","generation":"dynamic","versions":[]}],"_metadata":{"self":"s","next":"n","count":2}}`)
	})

	list, err := client.ListTemplates(context.Background(), ListTemplatesParams{PageSize: 10, PageToken: "tok"})
	if err != nil {
		t.Fatalf("ListTemplates() error = %v", err)
	}

	wantQuery := map[string][]string{
		"generations": {"dynamic"},
		"page_size":   {"10"},
		"page_token":  {"tok"},
	}
	if diff := cmp.Diff(wantQuery, gotQuery); diff != "" {
		t.Errorf("query mismatch (-want +got):\n%s", diff)
	}
	if len(list.Templates) != 2 || list.Templates[1].ID != "d-2" {
		t.Errorf("Templates = %+v", list.Templates)
	}
	if list.Metadata.Count != 2 || list.Metadata.Next != "n" {
		t.Errorf("Metadata = %+v", list.Metadata)
	}
}

func TestListTemplates_DefaultPageSize(t *testing.T) {
	var pageSize string
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		pageSize = r.URL.Query().Get("page_size")
		fmt.Fprint(w, `{"result":[]}`)
	})

	if _, err := client.ListTemplates(context.Background(), ListTemplatesParams{}); err != nil {
		t.Fatalf("ListTemplates() error = %v", err)
	}
	if pageSize != "200" {
		t.Errorf("page_size = %s, want 200", pageSize)
	}
}
