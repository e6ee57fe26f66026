package binder

import (
	"encoding"
	"fmt"
	"reflect"
	"strconv"
)

var (
	textUnmarshalerType = reflect.TypeOf((*encoding.TextUnmarshaler)(nil)).Elem()
	textMarshalerType   = reflect.TypeOf((*encoding.TextMarshaler)(nil)).Elem()
)

// Scalar assigns a single decoded path-segment value to dst. The destination
// must be addressable. Supported targets are strings, the integer and float
// families, bool, and types implementing encoding.TextUnmarshaler. Pointers
// are allocated as needed.
//
// Composite targets (slices, maps, structs without TextUnmarshaler) fail with
// ErrUnsupportedType: a path segment carries exactly one scalar.
func Scalar(dst reflect.Value, value string) error {
	t := dst.Type()

	if t.Kind() == reflect.Pointer {
		if dst.IsNil() {
			dst.Set(reflect.New(t.Elem()))
		}
		return Scalar(dst.Elem(), value)
	}

	// TextUnmarshaler takes precedence so enum-like types and IDs (for
	// example uuid.UUID) decode by name regardless of their underlying kind.
	if reflect.PointerTo(t).Implements(textUnmarshalerType) && dst.CanAddr() {
		um := dst.Addr().Interface().(encoding.TextUnmarshaler)
		if err := um.UnmarshalText([]byte(value)); err != nil {
			return fmt.Errorf("invalid value %q for %s: %w", value, t, err)
		}
		return nil
	}

	switch t.Kind() {
	case reflect.String:
		dst.SetString(value)

	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		n, err := strconv.ParseInt(value, 10, t.Bits())
		if err != nil {
			return fmt.Errorf("invalid int value %q", value)
		}
		dst.SetInt(n)

	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		n, err := strconv.ParseUint(value, 10, t.Bits())
		if err != nil {
			return fmt.Errorf("invalid uint value %q", value)
		}
		dst.SetUint(n)

	case reflect.Float32, reflect.Float64:
		n, err := strconv.ParseFloat(value, t.Bits())
		if err != nil {
			return fmt.Errorf("invalid float value %q", value)
		}
		dst.SetFloat(n)

	case reflect.Bool:
		b, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("invalid bool value %q", value)
		}
		dst.SetBool(b)

	default:
		return fmt.Errorf("%w: %s", ErrUnsupportedType, t)
	}

	return nil
}

// ScalarString renders a single scalar value back to its canonical string
// form, the inverse of Scalar. Unsupported kinds render through fmt as a
// fallback; route definitions are validated ahead of time so that case is
// not reachable from URL formatting.
func ScalarString(v reflect.Value) string {
	for v.Kind() == reflect.Pointer {
		if v.IsNil() {
			return ""
		}
		v = v.Elem()
	}

	t := v.Type()
	if t.Implements(textMarshalerType) {
		if b, err := v.Interface().(encoding.TextMarshaler).MarshalText(); err == nil {
			return string(b)
		}
	}
	if v.CanAddr() && reflect.PointerTo(t).Implements(textMarshalerType) {
		if b, err := v.Addr().Interface().(encoding.TextMarshaler).MarshalText(); err == nil {
			return string(b)
		}
	}

	switch v.Kind() {
	case reflect.String:
		return v.String()
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return strconv.FormatInt(v.Int(), 10)
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return strconv.FormatUint(v.Uint(), 10)
	case reflect.Float32, reflect.Float64:
		return strconv.FormatFloat(v.Float(), 'f', -1, v.Type().Bits())
	case reflect.Bool:
		return strconv.FormatBool(v.Bool())
	default:
		return fmt.Sprintf("%v", v.Interface())
	}
}

// CanScalar reports whether t is a valid Scalar target. Used by route-set
// construction to reject composite path-parameter fields at definition time.
func CanScalar(t reflect.Type) bool {
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	if reflect.PointerTo(t).Implements(textUnmarshalerType) {
		return true
	}
	switch t.Kind() {
	case reflect.String, reflect.Bool,
		reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
		reflect.Float32, reflect.Float64:
		return true
	}
	return false
}
