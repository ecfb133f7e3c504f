package extract

import (
	"encoding"
	"fmt"
	"reflect"
	"strconv"
	"strings"
)

// decodedCapture is a capture after percent-decoding and UTF-8
// validation.
type decodedCapture struct {
	key   string
	value string
}

var textUnmarshalerType = reflect.TypeOf((*encoding.TextUnmarshaler)(nil)).Elem()

// deserialize decodes the captures into dst, dispatching on the
// target's shape:
//
//   - leaf (scalar or TextUnmarshaler): exactly one capture
//   - array: one capture per element, exact arity
//   - slice: all captures, no arity check
//   - map[string]V: all captures, no arity check
//   - struct: captures matched to exported fields by name, exact arity
//
// dst must be addressable. A nil return means success; anything else
// is one of the closed ErrorKind set.
func deserialize(captures []decodedCapture, dst reflect.Value) ErrorKind {
	if isLeaf(dst.Type()) {
		if len(captures) != 1 {
			return WrongNumberOfParameters{Got: len(captures), Expected: 1}
		}
		if err := parseLeaf(captures[0].value, dst); err != nil {
			return ParseError{Value: captures[0].value, ExpectedType: dst.Type().String()}
		}
		return nil
	}

	switch dst.Kind() {
	case reflect.Array:
		return deserializeSequence(captures, dst, dst.Len(), true)

	case reflect.Slice:
		elems := reflect.MakeSlice(dst.Type(), len(captures), len(captures))
		if kind := deserializeSequence(captures, elems, len(captures), false); kind != nil {
			return kind
		}
		dst.Set(elems)
		return nil

	case reflect.Map:
		return deserializeMap(captures, dst)

	case reflect.Struct:
		return deserializeRecord(captures, dst)

	default:
		return UnsupportedType{Name: dst.Type().String()}
	}
}

func deserializeSequence(captures []decodedCapture, dst reflect.Value, n int, checkArity bool) ErrorKind {
	if checkArity && len(captures) != n {
		return WrongNumberOfParameters{Got: len(captures), Expected: n}
	}

	elem := dst.Type().Elem()
	if !isLeaf(elem) {
		return UnsupportedType{Name: elem.String()}
	}

	for i, c := range captures {
		if err := parseLeaf(c.value, dst.Index(i)); err != nil {
			return ParseErrorAtIndex{Index: i, Value: c.value, ExpectedType: elem.String()}
		}
	}
	return nil
}

func deserializeMap(captures []decodedCapture, dst reflect.Value) ErrorKind {
	t := dst.Type()
	if t.Key().Kind() != reflect.String {
		return UnsupportedType{Name: t.String()}
	}
	if !isLeaf(t.Elem()) {
		return UnsupportedType{Name: t.Elem().String()}
	}

	out := reflect.MakeMapWithSize(t, len(captures))
	for _, c := range captures {
		val := reflect.New(t.Elem()).Elem()
		if err := parseLeaf(c.value, val); err != nil {
			return ParseErrorAtKey{Key: c.key, Value: c.value, ExpectedType: t.Elem().String()}
		}
		out.SetMapIndex(reflect.ValueOf(c.key).Convert(t.Key()), val)
	}
	dst.Set(out)
	return nil
}

func deserializeRecord(captures []decodedCapture, dst reflect.Value) ErrorKind {
	t := dst.Type()

	fields := make(map[string]int, t.NumField())
	arity := 0
	for i := 0; i < t.NumField(); i++ {
		f := t.Field(i)
		if !f.IsExported() {
			continue
		}
		if !isLeaf(f.Type) {
			return UnsupportedType{Name: f.Type.String()}
		}
		fields[fieldCaptureName(f)] = i
		arity++
	}

	if len(captures) != arity {
		return WrongNumberOfParameters{Got: len(captures), Expected: arity}
	}

	for _, c := range captures {
		i, ok := fields[c.key]
		if !ok {
			return Message(fmt.Sprintf("unknown path parameter `%s`", c.key))
		}
		f := t.Field(i)
		if err := parseLeaf(c.value, dst.Field(i)); err != nil {
			return ParseErrorAtKey{Key: c.key, Value: c.value, ExpectedType: f.Type.String()}
		}
	}
	return nil
}

// fieldCaptureName returns the capture name a struct field matches: a
// `param` tag when present, else the snake_case of the field name
// (UserID -> user_id).
func fieldCaptureName(f reflect.StructField) string {
	if tag, ok := f.Tag.Lookup("param"); ok && tag != "" {
		return tag
	}
	return snakeCase(f.Name)
}

func snakeCase(name string) string {
	var b strings.Builder
	b.Grow(len(name) + 2)
	for i, r := range name {
		if r >= 'A' && r <= 'Z' {
			// A run of capitals (ID, URL) only gets one underscore,
			// before its first letter.
			if i > 0 && !(name[i-1] >= 'A' && name[i-1] <= 'Z') {
				b.WriteByte('_')
			}
			b.WriteRune(r + ('a' - 'A'))
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

// isLeaf reports whether t decodes from a single capture value.
func isLeaf(t reflect.Type) bool {
	if reflect.PointerTo(t).Implements(textUnmarshalerType) {
		return true
	}
	switch t.Kind() {
	case reflect.String, reflect.Bool,
		reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
		reflect.Float32, reflect.Float64:
		return true
	default:
		return false
	}
}

// parseLeaf parses a single decoded value into dst, which must be an
// addressable leaf.
func parseLeaf(value string, dst reflect.Value) error {
	if tu, ok := dst.Addr().Interface().(encoding.TextUnmarshaler); ok {
		return tu.UnmarshalText([]byte(value))
	}

	switch dst.Kind() {
	case reflect.String:
		dst.SetString(value)
	case reflect.Bool:
		b, err := strconv.ParseBool(value)
		if err != nil {
			return err
		}
		dst.SetBool(b)
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		i, err := strconv.ParseInt(value, 10, dst.Type().Bits())
		if err != nil {
			return err
		}
		dst.SetInt(i)
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		u, err := strconv.ParseUint(value, 10, dst.Type().Bits())
		if err != nil {
			return err
		}
		dst.SetUint(u)
	case reflect.Float32, reflect.Float64:
		f, err := strconv.ParseFloat(value, dst.Type().Bits())
		if err != nil {
			return err
		}
		dst.SetFloat(f)
	default:
		return fmt.Errorf("not a leaf type: %s", dst.Type())
	}
	return nil
}
