package swerve

import (
	"bytes"
	"strings"
	"testing"

	"github.com/rohanthewiz/assert"
)

func TestFinalizeStampsVersionAndContentLength(t *testing.T) {
	res := &response{status: 200}
	res.SetHeader("Content-Type", "text/plain")
	res.SetBody([]byte("hello"))

	buf := bytes.Buffer{}
	res.finalize(&buf, "HTTP/1.0")
	out := buf.String()

	assert.True(t, strings.HasPrefix(out, "HTTP/1.0 200 OK\r\n"))
	assert.True(t, strings.Contains(out, "Content-Type: text/plain\r\n"))
	assert.True(t, strings.Contains(out, "Content-Length: 5\r\n"))
	assert.True(t, strings.HasSuffix(out, "\r\n\r\nhello"))
}

func TestFinalizeAppendsContentLength(t *testing.T) {
	// A stale handler-set Content-Length is not replaced; the
	// recomputed one is appended after it.
	res := &response{status: 200}
	res.SetHeader("Content-Length", "999")
	res.SetBody([]byte("abc"))

	buf := bytes.Buffer{}
	res.finalize(&buf, "HTTP/1.1")
	out := buf.String()

	assert.True(t, strings.Contains(out, "Content-Length: 999\r\n"))
	assert.True(t, strings.Contains(out, "Content-Length: 3\r\n"))
	assert.True(t, strings.Index(out, "Content-Length: 999") < strings.Index(out, "Content-Length: 3"))
}

func TestFinalizeEmptyProtoDefaultsToHTTP1(t *testing.T) {
	res := &response{status: 404}

	buf := bytes.Buffer{}
	res.finalize(&buf, "")

	assert.True(t, strings.HasPrefix(buf.String(), "HTTP/1.1 404 Not Found\r\n"))
	assert.True(t, strings.Contains(buf.String(), "Content-Length: 0\r\n"))
}
