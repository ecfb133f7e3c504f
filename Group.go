package swerve

import (
	"path"

	"github.com/swervehttp/swerve/consts"
)

// Group is a set of routes sharing a common URL prefix and middleware.
// Groups can be nested to build hierarchical route structures.
type Group struct {
	prefix   string
	server   *Server
	handlers []Handler
}

// Group creates a route group under the given prefix with optional
// middleware applying only to routes registered through it.
func (s *Server) Group(prefix string, handlers ...Handler) *Group {
	return &Group{
		prefix:   prefix,
		server:   s,
		handlers: handlers,
	}
}

// Group creates a sub-group with an additional prefix and optional
// middleware. The new group inherits the parent's middleware.
func (g *Group) Group(prefix string, handlers ...Handler) *Group {
	return &Group{
		prefix:   path.Join(g.prefix, prefix),
		server:   g.server,
		handlers: append(g.handlers, handlers...),
	}
}

// Use adds middleware applying to routes registered after this call.
func (g *Group) Use(handlers ...Handler) {
	g.handlers = append(g.handlers, handlers...)
}

// Get registers a GET route with the group prefix.
func (g *Group) Get(path string, handler Handler) {
	g.addRoute(consts.MethodGet, path, handler)
}

// Post registers a POST route with the group prefix.
func (g *Group) Post(path string, handler Handler) {
	g.addRoute(consts.MethodPost, path, handler)
}

// Put registers a PUT route with the group prefix.
func (g *Group) Put(path string, handler Handler) {
	g.addRoute(consts.MethodPut, path, handler)
}

// Patch registers a PATCH route with the group prefix.
func (g *Group) Patch(path string, handler Handler) {
	g.addRoute(consts.MethodPatch, path, handler)
}

// Delete registers a DELETE route with the group prefix.
func (g *Group) Delete(path string, handler Handler) {
	g.addRoute(consts.MethodDelete, path, handler)
}

// addRoute joins the group prefix with the route path and wraps the
// handler in the group's middleware before registering it.
func (g *Group) addRoute(method, routePath string, handler Handler) {
	fullPath := path.Join("/", g.prefix, routePath)

	// Wrap in reverse order so middleware runs in registration order.
	finalHandler := handler
	for i := len(g.handlers) - 1; i >= 0; i-- {
		middleware := g.handlers[i]
		nextHandler := finalHandler

		finalHandler = func(ctx Context) error {
			nextCalled := false

			// Intercept Next so group middleware can pass control to
			// the wrapped chain instead of the server-level chain.
			wrapper := &contextWrapper{
				Context: ctx,
				next: func() error {
					nextCalled = true
					return nextHandler(ctx)
				},
			}

			err := middleware(wrapper)

			// Middleware that neither failed nor called Next still
			// continues the chain.
			if err == nil && !nextCalled {
				err = nextHandler(ctx)
			}

			return err
		}
	}

	g.server.AddMethod(method, fullPath, finalHandler)
}

// contextWrapper overrides Next for group middleware chains.
type contextWrapper struct {
	Context
	next func() error
}

func (w *contextWrapper) Next() error {
	return w.next()
}
