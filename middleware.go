package swerve

import (
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// RequestInfo returns a middleware logging basic request / response
// stats, tagging each request with a fresh request id.
func RequestInfo(log zerolog.Logger) Handler {
	return func(ctx Context) error {
		start := time.Now()
		reqID := uuid.NewString()

		err := ctx.Next()

		log.Info().
			Str("request_id", reqID).
			Str("method", ctx.Request().Method()).
			Str("path", ctx.Request().Path()).
			Int("status", ctx.Response().Status()).
			Dur("elapsed", time.Since(start)).
			Msg("request")

		return err
	}
}
