package swerve

import (
	"github.com/swervehttp/swerve/core/rtr"
)

// Request is the interface for HTTP requests.
type Request interface {
	Header(string) string
	Host() string
	Method() string
	Path() string
	Proto() string
	Query() string
	Scheme() string
	Body() []byte
	Param(string) string
	Captures() *rtr.CaptureStore
}

// request represents the HTTP request used in the given context.
type request struct {
	scheme string
	host   string
	method string
	path   string
	query  string
	proto  string

	headers  []Header
	body     []byte
	captures *rtr.CaptureStore
}

// Header returns the header value for the given key.
func (req *request) Header(key string) string {
	for _, header := range req.headers {
		if header.Key == key {
			return header.Value
		}
	}

	return ""
}

// Host returns the requested host.
func (req *request) Host() string {
	return req.host
}

// Method returns the request method.
func (req *request) Method() string {
	return req.method
}

// Path returns the requested path.
func (req *request) Path() string {
	return req.path
}

// Proto returns the protocol version from the request line,
// e.g. "HTTP/1.1".
func (req *request) Proto() string {
	return req.proto
}

// Query returns the raw query string, without the leading '?'.
func (req *request) Query() string {
	return req.query
}

// Scheme returns either `http`, `https` or an empty string.
func (req request) Scheme() string {
	return req.scheme
}

// Body returns the raw request body.
func (req *request) Body() []byte {
	return req.body
}

// Param returns the raw (still percent-encoded) value of a route
// capture, or an empty string when the name is not bound.
func (req *request) Param(name string) string {
	value, _ := req.captures.Get(name)
	return value
}

// Captures returns the request's capture store. The router populates
// it during dispatch; it is empty before a route matches.
func (req *request) Captures() *rtr.CaptureStore {
	return req.captures
}

// reset prepares the request for the next read on the connection.
func (req *request) reset() {
	req.scheme = ""
	req.host = ""
	req.method = ""
	req.path = ""
	req.query = ""
	req.proto = ""
	req.headers = req.headers[:0]
	req.body = req.body[:0]
	req.captures.Reset()
}
