package swerve

import (
	"testing"

	"github.com/rohanthewiz/assert"
)

func TestParseURL(t *testing.T) {
	scheme, host, path, query := parseURL("http://example.com/blog/post?id=7", URLOptions{})
	assert.Equal(t, "http", scheme)
	assert.Equal(t, "example.com", host)
	assert.Equal(t, "/blog/post", path)
	assert.Equal(t, "id=7", query)

	scheme, host, path, query = parseURL("/users/7/teams/9", URLOptions{})
	assert.Equal(t, "", scheme)
	assert.Equal(t, "localhost", host)
	assert.Equal(t, "/users/7/teams/9", path)
	assert.Equal(t, "", query)
}

func TestParseURLTrailingSlash(t *testing.T) {
	_, _, path, _ := parseURL("/blog/", URLOptions{})
	assert.Equal(t, "/blog", path)

	_, _, path, _ = parseURL("/blog/", URLOptions{KeepTrailingSlashes: true})
	assert.Equal(t, "/blog/", path)

	// Root stays root either way.
	_, _, path, _ = parseURL("/", URLOptions{})
	assert.Equal(t, "/", path)

	_, _, path, _ = parseURL("", URLOptions{})
	assert.Equal(t, "/", path)
}
