package swerve

import (
	"strings"

	"github.com/swervehttp/swerve/consts"
)

// URLOptions adjusts how request targets are normalized.
type URLOptions struct {
	// KeepTrailingSlashes leaves "/blog/" distinct from "/blog".
	KeepTrailingSlashes bool
}

// parseURL parses a request target and returns the scheme, host, path
// and query. Most targets are origin-form ("/path?query"); absolute
// form ("scheme://host/path?query") shows up from proxies.
// We could have leaned on net/url here but wanted to keep fine
// control over normalization.
func parseURL(url string, urlOpts URLOptions) (scheme string, host string, path string, query string) {
	schemeEndPos := strings.Index(url, consts.SchemeDelimiter)
	if schemeEndPos != -1 {
		scheme = url[:schemeEndPos]
		url = url[schemeEndPos+len(consts.SchemeDelimiter):]
	}

	pathStartPos := strings.IndexByte(url, consts.RuneFwdSlash)
	if pathStartPos != -1 {
		host = url[:pathStartPos]
		url = url[pathStartPos:]
	}

	queryPos := strings.IndexByte(url, consts.RuneQuestion)
	if queryPos != -1 {
		path = url[:queryPos]
		query = url[queryPos+1:]
	} else {
		path = url
	}

	// FIXUPS

	if lnPath := len(path); lnPath == 0 {
		path = "/"
	} else if !urlOpts.KeepTrailingSlashes && lnPath > 1 && strings.HasSuffix(path, "/") {
		path = path[:lnPath-1]
	}

	if host == "" {
		host = consts.Localhost
	}

	return
}
