package swerve_test

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/swervehttp/swerve"
)

func TestRequestInfoMiddleware(t *testing.T) {
	var buf bytes.Buffer
	log := swerve.NewLogger(false, &buf)

	s := swerve.NewServer()
	s.Use(swerve.RequestInfo(log))
	s.Get("/ping", func(ctx swerve.Context) error {
		return ctx.String("pong")
	})

	res := s.Request("GET", "/ping", nil, nil)
	require.Equal(t, 200, res.Status())

	out := buf.String()
	require.Contains(t, out, `"method":"GET"`)
	require.Contains(t, out, `"path":"/ping"`)
	require.Contains(t, out, `"status":200`)
	require.Contains(t, out, `"request_id"`)
}
