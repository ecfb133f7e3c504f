package consts

const (
	MethodGet     = "GET"
	MethodPost    = "POST"
	MethodPut     = "PUT"
	MethodPatch   = "PATCH"
	MethodDelete  = "DELETE"
	MethodHead    = "HEAD"
	MethodOptions = "OPTIONS"
	MethodConnect = "CONNECT"
	MethodTrace   = "TRACE"
)

const (
	HTTP  = "http"
	HTTPS = "https"
	HTTP1 = "HTTP/1.1"
	HTTP2 = "HTTP/2.0"

	ProtocolTCP = "tcp"

	// Pre-baked responses for requests we reject before a context exists.
	HTTPBadRequest = "HTTP/1.1 400 Bad Request\r\n\r\n"
	HTTPBadMethod  = "HTTP/1.1 405 Method Not Allowed\r\n\r\n"

	SchemeDelimiter = "://"
	Localhost       = "localhost"
	CRLF            = "\r\n"
)

const (
	RuneNewLine     = '\n'
	RuneSingleSpace = ' '
	RuneColon       = ':'
	RuneFwdSlash    = '/'
	RuneQuestion    = '?'
)

const (
	HeaderContentLength    = "Content-Length"
	HeaderContentType      = "Content-Type"
	HeaderTransferEncoding = "Transfer-Encoding"
	HeaderLocation         = "Location"
	HeaderHost             = "Host"
	HeaderConnection       = "Connection"
)

const (
	StatusOK                  = 200
	StatusMovedPermanently    = 301
	StatusFound               = 302
	StatusBadRequest          = 400
	StatusNotFound            = 404
	StatusMethodNotAllowed    = 405
	StatusRequestTimeout      = 408
	StatusInternalServerError = 500
)

var statusText = map[int]string{
	StatusOK:                  "OK",
	StatusMovedPermanently:    "Moved Permanently",
	StatusFound:               "Found",
	StatusBadRequest:          "Bad Request",
	StatusNotFound:            "Not Found",
	StatusMethodNotAllowed:    "Method Not Allowed",
	StatusRequestTimeout:      "Request Timeout",
	StatusInternalServerError: "Internal Server Error",
}

// StatusText returns the reason phrase for the given status code,
// or an empty string for codes we don't emit.
func StatusText(status int) string {
	return statusText[status]
}
