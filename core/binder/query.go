package binder

import (
	"fmt"
	"net/url"
	"reflect"
	"strings"

	"github.com/go-playground/form/v4"
)

var queryDecoder = newFormDecoder("query")

func newFormDecoder(tag string) *form.Decoder {
	d := form.NewDecoder()
	d.SetTagName(tag)
	return d
}

// Query deserializes an HTML-form encoded query string into dst, which must
// be a pointer to a struct. Fields are matched by their "query" tag (falling
// back to the field name); repeated keys populate slice fields in encounter
// order.
func Query(values url.Values, dst any) error {
	if err := queryDecoder.Decode(dst, values); err != nil {
		return fmt.Errorf("%w: %v", ErrFailedToParseQuery, err)
	}
	return nil
}

// EncodeQuery is the inverse of Query: it renders a query-bag struct back to
// url.Values. Zero-valued fields are dropped entirely, so a bag holding only
// defaults encodes to an empty set and the formatter can omit the "?". This
// asymmetry with go-playground/form's encoder (which emits zero values) is
// deliberate; round-tripping still holds because absent keys decode back to
// zero values.
//
// Nested structs encode under dotted keys ("filter.min"), mirroring the
// namespace form go-playground/form decodes them from.
func EncodeQuery(src any) (url.Values, error) {
	rv := reflect.ValueOf(src)
	for rv.Kind() == reflect.Pointer {
		if rv.IsNil() {
			return url.Values{}, nil
		}
		rv = rv.Elem()
	}
	if rv.Kind() != reflect.Struct {
		return nil, fmt.Errorf("%w: query bag must be a struct, got %s", ErrUnsupportedType, rv.Kind())
	}

	values := url.Values{}
	if err := encodeQueryStruct(rv, values, ""); err != nil {
		return nil, err
	}
	return values, nil
}

func encodeQueryStruct(rv reflect.Value, values url.Values, prefix string) error {
	rt := rv.Type()
	for i := 0; i < rv.NumField(); i++ {
		field := rv.Field(i)
		fieldType := rt.Field(i)

		if !fieldType.IsExported() {
			continue
		}

		name, skip := queryFieldName(fieldType)
		if skip || field.IsZero() {
			continue
		}
		if prefix != "" {
			name = prefix + "." + name
		}

		for field.Kind() == reflect.Pointer {
			field = field.Elem()
		}

		if field.Kind() == reflect.Slice {
			for j := 0; j < field.Len(); j++ {
				elem := field.Index(j)
				if !CanScalar(elem.Type()) {
					return fmt.Errorf("%w: query field %s has non-scalar elements", ErrUnsupportedType, name)
				}
				values.Add(name, ScalarString(elem))
			}
			continue
		}

		// Scalars first: a TextMarshaler struct (time.Time and friends) is a
		// single value, not a namespace.
		if CanScalar(field.Type()) {
			values.Add(name, ScalarString(field))
			continue
		}

		if field.Kind() == reflect.Struct {
			if err := encodeQueryStruct(field, values, name); err != nil {
				return err
			}
			continue
		}

		return fmt.Errorf("%w: query field %s is not a scalar", ErrUnsupportedType, name)
	}
	return nil
}

// CanEncodeQuery reports whether every reachable field of a query-bag type
// can round-trip through EncodeQuery: scalars, slices of scalars, and nested
// structs of the same. The route compiler uses it to reject un-encodable
// bags at definition time instead of dropping the query at format time.
func CanEncodeQuery(t reflect.Type) error {
	return canEncodeQueryType(t, make(map[reflect.Type]bool))
}

func canEncodeQueryType(t reflect.Type, seen map[reflect.Type]bool) error {
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	if t.Kind() != reflect.Struct {
		return fmt.Errorf("%w: query bag must be a struct, got %s", ErrUnsupportedType, t.Kind())
	}
	if seen[t] {
		return fmt.Errorf("%w: query bag type %s refers to itself", ErrUnsupportedType, t)
	}
	seen[t] = true
	defer delete(seen, t)

	for i := 0; i < t.NumField(); i++ {
		f := t.Field(i)
		if !f.IsExported() {
			continue
		}
		if _, skip := queryFieldName(f); skip {
			continue
		}

		ft := f.Type
		for ft.Kind() == reflect.Pointer {
			ft = ft.Elem()
		}

		switch {
		case ft.Kind() == reflect.Slice:
			if !CanScalar(ft.Elem()) {
				return fmt.Errorf("%w: query field %s is a slice of non-scalars", ErrUnsupportedType, f.Name)
			}
		case CanScalar(ft):
		case ft.Kind() == reflect.Struct:
			if err := canEncodeQueryType(ft, seen); err != nil {
				return err
			}
		default:
			return fmt.Errorf("%w: query field %s has type %s", ErrUnsupportedType, f.Name, f.Type)
		}
	}
	return nil
}

// queryFieldName resolves the encoded key for a struct field from its
// "query" tag, defaulting to the field name as go-playground/form does.
func queryFieldName(field reflect.StructField) (name string, skip bool) {
	tag := field.Tag.Get("query")
	if tag == "" {
		return field.Name, false
	}
	if tag == "-" {
		return "", true
	}
	if idx := strings.Index(tag, ","); idx != -1 {
		tag = tag[:idx]
	}
	if tag == "" {
		return field.Name, false
	}
	return tag, false
}
