package swerve

import (
	"strconv"

	"github.com/rohanthewiz/element"

	"github.com/swervehttp/swerve/consts"
)

// defaultNotFound renders the response for requests no route matched.
func defaultNotFound(ctx Context) error {
	ctx.Response().SetStatus(consts.StatusNotFound)
	return ctx.WriteHTML(statusPage(consts.StatusNotFound, ctx.Request().Path()))
}

// serveErrorPage replaces the response with a plain status page.
func serveErrorPage(ctx Context, status int) {
	ctx.Response().SetStatus(status)
	ctx.Response().SetHeader(consts.HeaderContentType, consts.MIMEHTML)
	ctx.Response().SetBody([]byte(statusPage(status, "")))
}

// statusPage builds a small HTML page for the given status.
func statusPage(status int, detail string) string {
	title := strconv.Itoa(status) + " " + consts.StatusText(status)

	b := element.NewBuilder()
	b.Html().R(
		b.Head().R(
			b.Title().T(title),
			b.Style().T(`
				body { font-family: Arial, sans-serif; max-width: 600px; margin: 40px auto; }
				.detail { color: #666; }
			`),
		),
		b.Body().R(
			b.H1().T(title),
			b.DivClass("detail").T(detail),
		),
	)
	return b.String()
}
