// Package extract turns the raw, percent-encoded captures a matched
// route produced into typed Go values, with a closed taxonomy of
// failure kinds that distinguishes malformed client input (400) from
// mistakes in the server's own route declarations (500).
package extract

import (
	"reflect"
	"strings"
	"unicode/utf8"

	"github.com/swervehttp/swerve/core/rtr"
)

// CapturesKey is the context-data key under which dispatch installs
// the request's CaptureStore before invoking the matched handler.
const CapturesKey = "route.captures"

// Ctx is the slice of the request context the extractor needs.
type Ctx interface {
	Get(key string) any
}

// Path decodes the request's route captures into a value of type T.
//
// Each capture value is percent-decoded exactly once and must be
// valid UTF-8 afterward, otherwise extraction fails before any
// deserialization happens. The CaptureStore itself is never modified.
//
// T may be a scalar (one capture), an array (positional, exact
// arity), a slice (positional, any arity), a map with string keys
// (all captures), or a struct whose exported fields are matched to
// captures by `param` tag or snake_cased field name. Failures come
// back as a *Rejection.
//
// Calling Path outside dispatch, where no CaptureStore has been
// installed, is a programmer error and panics.
func Path[T any](ctx Ctx) (T, error) {
	var out T

	v := ctx.Get(CapturesKey)
	if v == nil {
		panic("extract: no capture store in context; Path must be called during dispatch")
	}
	store := v.(*rtr.CaptureStore)

	caps := store.Captures()
	decoded := make([]decodedCapture, 0, len(caps))
	for _, c := range caps {
		value := percentDecode(c.Value)
		if !utf8.ValidString(value) {
			return out, NewRejection(InvalidUtf8InPathParam{Key: c.Key})
		}
		decoded = append(decoded, decodedCapture{key: c.Key, value: value})
	}

	if kind := deserialize(decoded, reflect.ValueOf(&out).Elem()); kind != nil {
		return out, NewRejection(kind)
	}
	return out, nil
}

// percentDecode resolves %XX escapes in a path segment. Malformed
// escapes pass through untouched instead of failing, and '+' is left
// alone; only query strings treat it as a space.
func percentDecode(s string) string {
	if !strings.ContainsRune(s, '%') {
		return s
	}

	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); i++ {
		if s[i] == '%' && i+2 < len(s) {
			hi, ok1 := unhex(s[i+1])
			lo, ok2 := unhex(s[i+2])
			if ok1 && ok2 {
				b.WriteByte(hi<<4 | lo)
				i += 2
				continue
			}
		}
		b.WriteByte(s[i])
	}
	return b.String()
}

func unhex(c byte) (byte, bool) {
	switch {
	case c >= '0' && c <= '9':
		return c - '0', true
	case c >= 'a' && c <= 'f':
		return c - 'a' + 10, true
	case c >= 'A' && c <= 'F':
		return c - 'A' + 10, true
	}
	return 0, false
}
