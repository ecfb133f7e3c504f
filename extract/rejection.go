package extract

import (
	"fmt"

	"github.com/swervehttp/swerve/consts"
)

// ErrorKind is the closed set of path-extraction failure kinds.
// Downstream classification (status code, body prefix) switches on the
// concrete kind, so no new kinds may be added without revisiting
// Rejection.Status.
type ErrorKind interface {
	fmt.Stringer
	errorKind()
}

// WrongNumberOfParameters reports an arity mismatch between the
// captures in the URL and the target shape.
type WrongNumberOfParameters struct {
	Got      int
	Expected int
}

// ParseErrorAtKey reports a value that failed to parse for a named
// field or map key.
type ParseErrorAtKey struct {
	Key          string
	Value        string
	ExpectedType string
}

// ParseErrorAtIndex reports a value that failed to parse at a position
// in a sequence target.
type ParseErrorAtIndex struct {
	Index        int
	Value        string
	ExpectedType string
}

// ParseError reports a bare scalar value that failed to parse.
type ParseError struct {
	Value        string
	ExpectedType string
}

// InvalidUtf8InPathParam reports a capture whose percent-decoded bytes
// are not valid UTF-8.
type InvalidUtf8InPathParam struct {
	Key string
}

// UnsupportedType reports an attempt to decode into a shape the
// deserializer does not handle, such as a map nested inside a map.
// This is a route-declaration mistake, not a client error.
type UnsupportedType struct {
	Name string
}

// Message is the catch-all for failures that fit no other kind.
type Message string

func (WrongNumberOfParameters) errorKind() {}
func (ParseErrorAtKey) errorKind()         {}
func (ParseErrorAtIndex) errorKind()       {}
func (ParseError) errorKind()              {}
func (InvalidUtf8InPathParam) errorKind()  {}
func (UnsupportedType) errorKind()         {}
func (Message) errorKind()                 {}

// The rendered texts below are part of the wire contract and must not
// be reworded.

func (k WrongNumberOfParameters) String() string {
	s := fmt.Sprintf("Wrong number of path arguments for `Path`. Expected %d but got %d",
		k.Expected, k.Got)
	if k.Expected == 1 {
		s += ". Note that multiple parameters must be extracted with a slice, an array or a struct"
	}
	return s
}

func (k ParseErrorAtKey) String() string {
	return fmt.Sprintf("Cannot parse `%s` with value `%s` to a `%s`", k.Key, k.Value, k.ExpectedType)
}

func (k ParseErrorAtIndex) String() string {
	return fmt.Sprintf("Cannot parse value at index %d with value `%s` to a `%s`",
		k.Index, k.Value, k.ExpectedType)
}

func (k ParseError) String() string {
	return fmt.Sprintf("Cannot parse `%s` to a `%s`", k.Value, k.ExpectedType)
}

func (k InvalidUtf8InPathParam) String() string {
	return fmt.Sprintf("Invalid UTF-8 in `%s`", k.Key)
}

func (k UnsupportedType) String() string {
	return fmt.Sprintf("Unsupported type `%s`", k.Name)
}

func (m Message) String() string {
	return string(m)
}

// Rejection is a typed extraction failure. It carries the original
// ErrorKind (recoverable via Kind) and renders to an HTTP status and
// body. Client-side failures render as 400 with an "Invalid URL: "
// prefix; mistakes in the server's own route declarations render as
// plain 500.
type Rejection struct {
	kind ErrorKind
}

// NewRejection wraps the given kind.
func NewRejection(kind ErrorKind) *Rejection {
	return &Rejection{kind: kind}
}

// Kind returns the underlying failure kind.
func (r *Rejection) Kind() ErrorKind {
	return r.kind
}

// Error implements the error interface with the kind's rendered text.
func (r *Rejection) Error() string {
	return r.kind.String()
}

// Status returns the HTTP status this rejection renders to.
func (r *Rejection) Status() int {
	switch r.kind.(type) {
	case WrongNumberOfParameters, UnsupportedType:
		return consts.StatusInternalServerError
	default:
		return consts.StatusBadRequest
	}
}

// Body returns the literal response body for this rejection.
func (r *Rejection) Body() string {
	if r.Status() == consts.StatusBadRequest {
		return "Invalid URL: " + r.kind.String()
	}
	return r.kind.String()
}
