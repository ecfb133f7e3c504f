package swerve

import (
	"bytes"
	"io"
	"strconv"

	"github.com/swervehttp/swerve/consts"
)

// Response is the interface for an HTTP response.
type Response interface {
	io.Writer
	io.StringWriter
	Body() []byte
	Header(string) string
	SetHeader(key string, value string)
	SetBody([]byte)
	SetStatus(int)
	Status() int
}

// response represents the HTTP response used in the given context.
type response struct {
	body    []byte
	headers []Header
	status  uint16
}

// Body returns the response body.
func (res *response) Body() []byte {
	return res.body
}

// Header returns the header value for the given key.
func (res *response) Header(key string) string {
	for _, header := range res.headers {
		if header.Key == key {
			return header.Value
		}
	}

	return ""
}

// SetHeader sets the header value for the given key.
func (res *response) SetHeader(key string, value string) {
	for i, header := range res.headers {
		if header.Key == key {
			res.headers[i].Value = value
			return
		}
	}

	res.headers = append(res.headers, Header{Key: key, Value: value})
}

// SetBody replaces the response body with the new contents.
func (res *response) SetBody(body []byte) {
	res.body = body
}

// SetStatus sets the HTTP status code.
func (res *response) SetStatus(status int) {
	res.status = uint16(status)
}

// Status returns the HTTP status code.
func (res *response) Status() int {
	return int(res.status)
}

// Write implements the io.Writer interface.
func (res *response) Write(body []byte) (int, error) {
	res.body = append(res.body, body...)
	return len(body), nil
}

// WriteString implements the io.StringWriter interface.
func (res *response) WriteString(body string) (int, error) {
	res.body = append(res.body, body...)
	return len(body), nil
}

// finalize serializes the response into buf as it goes on the wire.
// The status line carries the inbound request's protocol version, and
// Content-Length is always appended, computed from the actual body
// length — a stale Content-Length set by a handler is not silently
// replaced, the recomputed one is added alongside it.
func (res *response) finalize(buf *bytes.Buffer, proto string) {
	if proto == "" {
		proto = consts.HTTP1
	}

	buf.WriteString(proto)
	buf.WriteByte(consts.RuneSingleSpace)
	buf.WriteString(strconv.Itoa(int(res.status)))
	if text := consts.StatusText(int(res.status)); text != "" {
		buf.WriteByte(consts.RuneSingleSpace)
		buf.WriteString(text)
	}
	buf.WriteString(consts.CRLF)

	for _, header := range res.headers {
		buf.WriteString(header.Key)
		buf.WriteString(": ")
		buf.WriteString(header.Value)
		buf.WriteString(consts.CRLF)
	}

	buf.WriteString(consts.HeaderContentLength)
	buf.WriteString(": ")
	buf.WriteString(strconv.Itoa(len(res.body)))
	buf.WriteString(consts.CRLF)

	buf.WriteString(consts.CRLF)
	buf.Write(res.body)
}

// reset prepares the response for the next request on the connection.
func (res *response) reset() {
	res.body = res.body[:0]
	res.headers = res.headers[:0]
	res.status = consts.StatusOK
}
