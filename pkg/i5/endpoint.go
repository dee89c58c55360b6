package i5

import (
	"fmt"
	"net"
	"strconv"
)

// Endpoint identifies the target WebServiceInput of an Interface5 instance.
// It is a value type; all fields are fixed at construction.
type Endpoint struct {
	hostname  string
	port      int
	scenario  string
	tenant    string
	plainHTTP bool
}

// EndpointOption is a functional option for NewEndpoint
type EndpointOption func(*Endpoint)

// WithPlainHTTP switches the endpoint URL to http. Meant for local test
// rigs; Interface5 instances speak https.
func WithPlainHTTP() EndpointOption {
	return func(e *Endpoint) {
		e.plainHTTP = true
	}
}

// NewEndpoint creates an endpoint from the hostname or IP, port, scenario
// name and tenant identifier of the target Interface5 instance.
func NewEndpoint(hostname string, port int, scenario, tenant string, opts ...EndpointOption) Endpoint {
	e := Endpoint{
		hostname: hostname,
		port:     port,
		scenario: scenario,
		tenant:   tenant,
	}

	for _, opt := range opts {
		opt(&e)
	}

	return e
}

// Hostname returns the hostname or IP.
func (e Endpoint) Hostname() string { return e.hostname }

// Port returns the network port.
func (e Endpoint) Port() int { return e.port }

// Scenario returns the Interface5 scenario name.
func (e Endpoint) Scenario() string { return e.scenario }

// Tenant returns the Interface5 tenant identifier.
func (e Endpoint) Tenant() string { return e.tenant }

// URL returns the fully qualified WebServiceInput URL:
//
//	https://{hostname}:{port}/api/v1/Input/{tenant}/{scenario}/Batches
func (e Endpoint) URL() string {
	scheme := "https"
	if e.plainHTTP {
		scheme = "http"
	}
	host := net.JoinHostPort(e.hostname, strconv.Itoa(e.port))
	return fmt.Sprintf("%s://%s/api/v1/Input/%s/%s/Batches", scheme, host, e.tenant, e.scenario)
}

// String implements fmt.Stringer.
func (e Endpoint) String() string {
	return e.URL()
}
