package swerve

import (
	"bufio"
	"bytes"
	"errors"
	"io"
	"net"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/rohanthewiz/serr"
	"github.com/rs/zerolog"

	"github.com/swervehttp/swerve/consts"
	"github.com/swervehttp/swerve/core/rtr"
	"github.com/swervehttp/swerve/extract"
)

// Handler responds to one request through its context.
type Handler func(ctx Context) error

// Server is the HTTP server. It owns the listening socket and the
// dispatch chain. Routes and middleware are registered before Run and
// never mutated afterward, so the chain is shared read-only by every
// connection worker without locking.
type Server struct {
	opts         ServerOptions
	handlers     []Handler
	router       *rtr.Router[Handler]
	contextPool  sync.Pool
	errorHandler func(Context, error)
	log          zerolog.Logger
}

// NewServer creates a new HTTP server.
func NewServer(options ...ServerOptions) *Server {
	opts := ServerOptions{}
	if len(options) > 0 {
		opts = options[0]
	}
	if opts.Address == "" {
		opts.Address = ":8080"
	}

	s := &Server{
		opts:   opts,
		router: rtr.New[Handler](),
		log:    NewLogger(opts.Debug, logOutput(opts.Log)),
	}

	// The dispatch entry point is always the last handler in the chain.
	s.handlers = []Handler{s.dispatch}

	s.errorHandler = func(ctx Context, err error) {
		var rej *extract.Rejection
		if errors.As(err, &rej) {
			res := ctx.Response()
			res.SetStatus(rej.Status())
			res.SetBody([]byte(rej.Body()))
			return
		}

		s.log.Error().Err(err).
			Str("method", ctx.Request().Method()).
			Str("path", ctx.Request().Path()).
			Msg("handler error")
		serveErrorPage(ctx, consts.StatusInternalServerError)
	}

	s.contextPool.New = func() any { return s.newContext() }
	return s
}

// SetErrorHandler replaces the error handler run when a handler in
// the chain returns a non-nil error. Must be called before Run.
func (s *Server) SetErrorHandler(fn func(Context, error)) {
	s.errorHandler = fn
}

// Router exposes the server's route table, e.g. for mounting a child
// router built separately.
func (s *Server) Router() *rtr.Router[Handler] {
	return s.router
}

// Get registers your function to be called when the given GET path has been requested.
func (s *Server) Get(path string, handler Handler) {
	s.router.Add(consts.MethodGet, path, handler)
}

// Post registers your function to be called when the given POST path has been requested.
func (s *Server) Post(path string, handler Handler) {
	s.router.Add(consts.MethodPost, path, handler)
}

// Put registers your function to be called when the given PUT path has been requested.
func (s *Server) Put(path string, handler Handler) {
	s.router.Add(consts.MethodPut, path, handler)
}

// Patch registers your function to be called when the given PATCH path has been requested.
func (s *Server) Patch(path string, handler Handler) {
	s.router.Add(consts.MethodPatch, path, handler)
}

// Delete registers your function to be called when the given DELETE path has been requested.
func (s *Server) Delete(path string, handler Handler) {
	s.router.Add(consts.MethodDelete, path, handler)
}

// Head registers your function to be called when the given HEAD path has been requested.
func (s *Server) Head(path string, handler Handler) {
	s.router.Add(consts.MethodHead, path, handler)
}

// Options registers your function to be called when the given OPTIONS path has been requested.
func (s *Server) Options(path string, handler Handler) {
	s.router.Add(consts.MethodOptions, path, handler)
}

// AddMethod registers a handler for an arbitrary method and path.
func (s *Server) AddMethod(method, path string, handler Handler) {
	s.router.Add(method, path, handler)
}

// Use adds handlers to your handlers chain.
func (s *Server) Use(handlers ...Handler) {
	last := s.handlers[len(s.handlers)-1]
	// Re-slice to exclude last, append the incoming handlers, then add back the last
	s.handlers = append(s.handlers[:len(s.handlers)-1], handlers...)
	s.handlers = append(s.handlers, last)
}

// Request performs a synthetic request and returns the response.
// This function keeps the response in memory so it's slightly slower than a real request.
// However it is very useful inside tests where you don't want to spin up a real web server.
func (s *Server) Request(method string, url string, headers []Header, body io.Reader) Response {
	ctx := s.newContext()
	ctx.request.headers = headers
	if body != nil {
		if b, err := io.ReadAll(body); err == nil {
			ctx.request.body = b
		}
	}
	s.handleRequest(ctx, method, url, consts.HTTP1, io.Discard)
	return ctx.Response()
}

// Run binds the configured address and serves until the listener
// fails. The returned error is the bind or accept failure.
func (s *Server) Run() error {
	listener, err := net.Listen(consts.ProtocolTCP, s.opts.Address)
	if err != nil {
		return serr.Wrap(err, "could not bind "+s.opts.Address)
	}
	return s.Serve(listener)
}

// Serve runs the accept loop on the given listener, spawning one
// worker goroutine per accepted connection. An accept failure is
// deliberately fatal for the whole server: the loop does not retry or
// back off, it returns the error.
func (s *Server) Serve(listener net.Listener) error {
	defer listener.Close()

	if s.opts.StatusChan != nil { // don't forget nil check!
		s.opts.StatusChan <- struct{}{} // Let the caller know we are running
	}
	if s.opts.Verbose {
		s.log.Info().Str("address", listener.Addr().String()).Msg("server is listening")
	}

	for {
		conn, err := listener.Accept()
		if err != nil {
			return serr.Wrap(err, "accept failed")
		}

		go s.handleConnection(conn)
	}
}

// handleConnection is the per-connection worker. Each accepted
// connection gets its own goroutine running this pipeline to
// completion: read/parse, dispatch, finalize, write — strictly
// sequential within the connection. The deferred recover is the
// crash-isolation boundary: a panicking handler takes down this
// connection only, never the acceptor or sibling workers.
func (s *Server) handleConnection(conn net.Conn) {
	ctx := s.contextPool.Get().(*context)
	reader := bufio.NewReader(conn)

	// Reset before returning to the pool so a worker that bails out
	// mid-parse cannot hand its headers or body to the next connection.
	defer func() {
		ctx.reset()
		s.contextPool.Put(ctx)
	}()
	defer conn.Close()
	defer func() {
		if rec := recover(); rec != nil {
			s.log.Error().Interface("panic", rec).Msg("worker crashed, dropping connection")
			_, _ = io.WriteString(conn, "HTTP/1.1 500 Internal Server Error\r\nContent-Length: 0\r\n\r\n")
		}
	}()

	for {
		if s.opts.ReadTimeout > 0 {
			_ = conn.SetReadDeadline(time.Now().Add(s.opts.ReadTimeout))
		}

		method, url, proto, ok := s.readRequest(ctx, reader, conn)
		if !ok {
			return
		}

		if s.opts.WriteTimeout > 0 {
			_ = conn.SetWriteDeadline(time.Now().Add(s.opts.WriteTimeout))
		}

		s.handleRequest(ctx, method, url, proto, conn)

		ctx.reset()
	}
}

// readRequest parses one request off the connection: request line,
// headers, then a Content-Length or chunked body. A malformed request
// gets a pre-baked 400 and ends the connection without dispatching.
func (s *Server) readRequest(ctx *context, reader *bufio.Reader, conn net.Conn) (method, url, proto string, ok bool) {
	// Request line
	message, err := reader.ReadString(consts.RuneNewLine)
	if err != nil {
		return "", "", "", false
	}

	space := strings.IndexByte(message, consts.RuneSingleSpace)
	if space <= 0 {
		_, _ = io.WriteString(conn, consts.HTTPBadRequest)
		return "", "", "", false
	}

	method = message[:space]
	if !isValidRequestMethod(method) {
		_, _ = io.WriteString(conn, consts.HTTPBadMethod)
		return "", "", "", false
	}

	lastSpace := strings.LastIndexByte(message, consts.RuneSingleSpace)
	if lastSpace == space {
		// No protocol version on the request line; assume HTTP/1.1.
		lastSpace = len(message) - len(consts.CRLF)
		proto = consts.HTTP1
	} else {
		proto = strings.TrimRight(message[lastSpace+1:], consts.CRLF)
		if !isValidProto(proto) {
			_, _ = io.WriteString(conn, consts.HTTPBadRequest)
			return "", "", "", false
		}
	}

	url = message[space+1 : lastSpace]

	var contentLen int64
	var isChunked bool

	// Add headers until we meet an empty line
	for {
		message, err = reader.ReadString(consts.RuneNewLine)
		if err != nil {
			return "", "", "", false
		}

		if message == consts.CRLF { // end of headers
			break
		}

		colon := strings.IndexByte(message, consts.RuneColon)
		if colon <= 0 {
			continue // a header line should include a colon
		}

		key := message[:colon]
		value := strings.TrimSpace(message[colon+1:])

		ctx.request.headers = append(ctx.request.headers, Header{
			Key:   key,
			Value: value,
		})

		if strings.EqualFold(key, consts.HeaderContentLength) {
			contentLen, err = strconv.ParseInt(value, 10, 64)
			if err != nil {
				_, _ = io.WriteString(conn, consts.HTTPBadRequest)
				return "", "", "", false
			}
		} else if strings.EqualFold(key, consts.HeaderTransferEncoding) &&
			strings.Contains(strings.ToLower(value), "chunked") {
			isChunked = true
		}
	}

	if contentLen > 0 {
		if s.opts.MaxBodyBytes > 0 && contentLen > s.opts.MaxBodyBytes {
			_, _ = io.WriteString(conn, consts.HTTPBadRequest)
			return "", "", "", false
		}

		// Fixed-length body
		body := make([]byte, contentLen)
		if _, err = io.ReadFull(reader, body); err != nil {
			return "", "", "", false
		}
		ctx.request.body = append(ctx.request.body, body...)

	} else if isChunked {
		if !s.readChunkedBody(ctx, reader, conn) {
			return "", "", "", false
		}
	}

	return method, url, proto, true
}

// readChunkedBody consumes a Transfer-Encoding: chunked body.
func (s *Server) readChunkedBody(ctx *context, reader *bufio.Reader, conn net.Conn) bool {
	for {
		chunkSize, err := reader.ReadString(consts.RuneNewLine)
		if err != nil {
			return false
		}

		// Chunk sizes are hex
		size, err := strconv.ParseInt(strings.TrimSpace(chunkSize), 16, 64)
		if err != nil {
			_, _ = io.WriteString(conn, consts.HTTPBadRequest)
			return false
		}

		// Zero size chunk means end of body
		if size == 0 {
			_, err = reader.ReadString(consts.RuneNewLine) // final CRLF
			return err == nil
		}

		chunk := make([]byte, size)
		if _, err = io.ReadFull(reader, chunk); err != nil {
			return false
		}
		ctx.request.body = append(ctx.request.body, chunk...)

		if _, err = reader.ReadString(consts.RuneNewLine); err != nil { // chunk CRLF
			return false
		}
	}
}

// handleRequest runs the dispatch chain for one parsed request, then
// finalizes and writes the response. The finalized response always
// carries a Content-Length equal to its body and the inbound
// request's protocol version. A write failure is logged and dropped;
// there is no retry.
func (s *Server) handleRequest(ctx *context, method string, url string, proto string, writer io.Writer) {
	ctx.request.method = method
	ctx.request.proto = proto
	ctx.request.scheme, ctx.request.host, ctx.request.path, ctx.request.query =
		parseURL(url, URLOptions{KeepTrailingSlashes: s.opts.KeepTrailingSlashes})

	if err := s.handlers[0](ctx); err != nil {
		s.errorHandler(ctx, err)
	}

	buf := bytes.Buffer{}
	ctx.response.finalize(&buf, proto)

	if _, err := writer.Write(buf.Bytes()); err != nil {
		s.log.Error().Err(err).
			Str("method", method).
			Str("path", ctx.request.path).
			Msg("failed to write response")
	}
}

// dispatch is the fixed entry point at the end of the handler chain:
// it matches the route, installs the captures where the extractors
// look for them, and invokes the matched handler. No match renders
// the default not-found response.
func (s *Server) dispatch(c Context) error {
	ctx := c.(*context)

	hdlr, captures, found := s.router.Lookup(ctx.request.method, ctx.request.path)
	if !found {
		return defaultNotFound(c)
	}

	ctx.request.captures.Merge(captures)
	ctx.Set(extract.CapturesKey, ctx.request.captures)

	return hdlr(c)
}

// newContext allocates a new context with the default state.
func (s *Server) newContext() *context {
	return &context{
		server: s,
		request: request{
			body:     make([]byte, 0),
			headers:  make([]Header, 0, 8),
			captures: rtr.NewCaptureStore(),
		},
		response: response{
			body:    make([]byte, 0, 1024),
			headers: make([]Header, 0, 8),
			status:  consts.StatusOK,
		},
	}
}
