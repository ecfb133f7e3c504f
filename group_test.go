package swerve_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/swervehttp/swerve"
	"github.com/swervehttp/swerve/extract"
)

func TestGroupPrefix(t *testing.T) {
	s := swerve.NewServer()

	api := s.Group("/api")
	api.Get("/ping", func(ctx swerve.Context) error {
		return ctx.String("pong")
	})

	res := s.Request("GET", "/api/ping", nil, nil)
	require.Equal(t, 200, res.Status())
	require.Equal(t, "pong", string(res.Body()))

	res = s.Request("GET", "/ping", nil, nil)
	require.Equal(t, 404, res.Status())
}

func TestGroupMiddlewareOrder(t *testing.T) {
	s := swerve.NewServer()

	var order []string
	mw := func(name string) swerve.Handler {
		return func(ctx swerve.Context) error {
			order = append(order, name)
			return ctx.Next()
		}
	}

	g := s.Group("/api", mw("first"), mw("second"))
	g.Get("/thing", func(ctx swerve.Context) error {
		order = append(order, "handler")
		return ctx.String("ok")
	})

	res := s.Request("GET", "/api/thing", nil, nil)
	require.Equal(t, 200, res.Status())
	require.Equal(t, []string{"first", "second", "handler"}, order)
}

func TestNestedGroupCaptures(t *testing.T) {
	s := swerve.NewServer()

	orgs := s.Group("/orgs")
	users := orgs.Group("/:org_id/users")
	users.Get("/:user_id", func(ctx swerve.Context) error {
		params, err := extract.Path[map[string]string](ctx)
		if err != nil {
			return err
		}
		return ctx.String(params["org_id"] + "/" + params["user_id"])
	})

	res := s.Request("GET", "/orgs/acme/users/42", nil, nil)
	require.Equal(t, 200, res.Status())
	require.Equal(t, "acme/42", string(res.Body()))
}

func TestGroupMiddlewareAutoContinues(t *testing.T) {
	s := swerve.NewServer()

	// Middleware that neither fails nor calls Next still lets the
	// chain continue.
	tag := func(ctx swerve.Context) error {
		ctx.Set("tagged", true)
		return nil
	}

	g := s.Group("/api", tag)
	g.Get("/thing", func(ctx swerve.Context) error {
		if ctx.Get("tagged") != true {
			return ctx.Error("middleware did not run")
		}
		return ctx.String("ok")
	})

	res := s.Request("GET", "/api/thing", nil, nil)
	require.Equal(t, 200, res.Status())
	require.Equal(t, "ok", string(res.Body()))
}
