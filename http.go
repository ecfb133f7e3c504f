package swerve

import (
	"strings"

	"github.com/swervehttp/swerve/consts"
)

// isValidRequestMethod returns true if the given string is a valid HTTP request method.
func isValidRequestMethod(method string) bool {
	switch method {
	case consts.MethodGet, consts.MethodHead, consts.MethodPost, consts.MethodPut,
		consts.MethodDelete, consts.MethodConnect, consts.MethodOptions, consts.MethodTrace, consts.MethodPatch:
		return true
	default:
		return false
	}
}

// isValidProto returns true for protocol versions we are willing to
// echo back on the response status line.
func isValidProto(proto string) bool {
	return strings.HasPrefix(proto, "HTTP/")
}
