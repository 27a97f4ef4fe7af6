package api

import "fmt"

// Endpoint identifies a SendGrid API resource.
type Endpoint int

const (
	// EndpointMailSend is the v3 mail send resource.
	EndpointMailSend Endpoint = iota
	// EndpointTemplates is the transactional templates resource.
	EndpointTemplates
)

// Path returns the URL path suffix of the endpoint, relative to the API host.
func (e Endpoint) Path() string {
	switch e {
	case EndpointMailSend:
		return "/mail/send"
	case EndpointTemplates:
		return "/templates"
	}
	panic(fmt.Sprintf("api: unknown endpoint %d", int(e)))
}

func (e Endpoint) String() string {
	return e.Path()
}
