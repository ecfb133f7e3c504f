package swerve

import (
	"errors"

	"github.com/swervehttp/swerve/consts"
)

// Context is the interface for a request and its response.
type Context interface {
	Bytes([]byte) error
	Error(...any) error
	Next() error
	Redirect(int, string) error
	Request() Request
	Response() Response
	Status(int) Context
	String(string) error
	WriteHTML(string) error

	// Request-scoped data store. Dispatch uses it to hand the capture
	// store to extractors; handlers and middleware may use it freely.
	Set(key string, value any)
	Get(key string) any
	Has(key string) bool
	Delete(key string)
}

// context contains the request and response data for one in-flight
// request. It is owned by a single connection worker and never shared.
type context struct {
	request
	response
	server       *Server
	data         map[string]any
	handlerCount uint8
}

// Bytes adds the raw byte slice to the response body.
func (ctx *context) Bytes(body []byte) error {
	ctx.response.body = append(ctx.response.body, body...)
	return nil
}

// Error provides a convenient way to wrap multiple errors.
func (ctx *context) Error(messages ...any) error {
	var combined []error

	for _, msg := range messages {
		switch err := msg.(type) {
		case error:
			combined = append(combined, err)
		case string:
			combined = append(combined, errors.New(err))
		}
	}

	return errors.Join(combined...)
}

// Next executes the next handler in the middleware chain.
func (ctx *context) Next() error {
	ctx.handlerCount++
	return ctx.server.handlers[ctx.handlerCount](ctx)
}

// Redirect redirects the client to a different location
// with the specified status code.
func (ctx *context) Redirect(status int, location string) error {
	ctx.response.SetStatus(status)
	ctx.response.SetHeader(consts.HeaderLocation, location)
	return nil
}

// Request returns the HTTP request.
func (ctx *context) Request() Request {
	return &ctx.request
}

// Response returns the HTTP response.
func (ctx *context) Response() Response {
	return &ctx.response
}

// Status sets the HTTP status of the response
// and returns the context for method chaining.
func (ctx *context) Status(status int) Context {
	ctx.response.SetStatus(status)
	return ctx
}

// String adds the given string to the response body.
func (ctx *context) String(body string) error {
	ctx.response.body = append(ctx.response.body, body...)
	return nil
}

// WriteHTML adds the given HTML to the response body and sets the
// content type accordingly.
func (ctx *context) WriteHTML(body string) error {
	ctx.response.SetHeader(consts.HeaderContentType, consts.MIMEHTML)
	return ctx.String(body)
}

// Set stores a value in the request-scoped data map.
func (ctx *context) Set(key string, value any) {
	if ctx.data == nil {
		ctx.data = make(map[string]any)
	}
	ctx.data[key] = value
}

// Get returns a value from the request-scoped data map, or nil.
func (ctx *context) Get(key string) any {
	if ctx.data == nil {
		return nil
	}
	return ctx.data[key]
}

// Has reports whether the key is present in the data map.
func (ctx *context) Has(key string) bool {
	if ctx.data == nil {
		return false
	}
	_, ok := ctx.data[key]
	return ok
}

// Delete removes a key from the data map.
func (ctx *context) Delete(key string) {
	if ctx.data == nil {
		return
	}
	delete(ctx.data, key)
}

// Clean empties the data map between requests on the same connection.
func (ctx *context) Clean() {
	clear(ctx.data)
}

// reset returns the context to its initial state so the next request
// on the connection starts clean.
func (ctx *context) reset() {
	ctx.request.reset()
	ctx.response.reset()
	ctx.Clean()
	ctx.handlerCount = 0
}
