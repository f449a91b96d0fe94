package moderr

import (
	"errors"
	"fmt"
	"maps"
	"reflect"
	"strings"
)

// Properties is a bag of named values merged onto an error beyond its
// message, name and stack.
type Properties map[string]any

// Reserved property keys. They address the built-in fields of an Error
// instead of the property bag.
const (
	KeyMessage = "message"
	KeyName    = "name"
	KeyStack   = "stack"
)

func isReservedKey(key string) bool {
	return key == KeyMessage || key == KeyName || key == KeyStack
}

// Clone returns a shallow copy of p. The result is never nil.
func (p Properties) Clone() Properties {
	if p == nil {
		return Properties{}
	}
	return maps.Clone(p)
}

// normalize resolves the heterogeneous constructor input into a message,
// a working property bag and, when built from an existing error, its cause.
func normalize(arg any, extra []Properties) (msg string, bag Properties, cause error) {
	switch v := arg.(type) {
	case nil:
		bag = Properties{}
	case *Error:
		if v == nil {
			bag = Properties{}
			break
		}
		bag = v.props.Clone()
		bag[KeyMessage] = v.msg
		if v.stack != nil {
			bag[KeyStack] = v.stack
		}
		msg, cause = v.msg, v
	case error:
		bag = exportedProperties(v)
		bag[KeyMessage] = v.Error()
		if st, ok := v.(stackTracer); ok {
			if s := stackOf(st.StackTrace()); s != nil {
				bag[KeyStack] = s
			}
		}
		msg, cause = v.Error(), v
	case Properties:
		bag = v.Clone()
		msg = messageOf(bag[KeyMessage])
	case map[string]any:
		bag = Properties(v).Clone()
		msg = messageOf(bag[KeyMessage])
	case string:
		msg, bag = v, Properties{}
	case fmt.Stringer:
		msg, bag = v.String(), Properties{}
	default:
		msg, bag = fmt.Sprint(v), Properties{}
	}

	for _, p := range extra {
		maps.Copy(bag, p)
	}
	return msg, bag, cause
}

func messageOf(v any) string {
	switch m := v.(type) {
	case nil:
		return ""
	case string:
		return m
	default:
		return fmt.Sprint(m)
	}
}

// exportedProperties collects the exported struct fields of a foreign error,
// honoring json tag names. Errors that are not structs yield an empty bag.
func exportedProperties(err error) Properties {
	props := Properties{}

	v := reflect.ValueOf(err)
	for v.Kind() == reflect.Pointer || v.Kind() == reflect.Interface {
		if v.IsNil() {
			return props
		}
		v = v.Elem()
	}
	if v.Kind() != reflect.Struct {
		return props
	}

	t := v.Type()
	for i := range t.NumField() {
		sf := t.Field(i)
		if !sf.IsExported() {
			continue
		}
		name := sf.Name
		if tag, ok := sf.Tag.Lookup("json"); ok {
			tagName, _, _ := strings.Cut(tag, ",")
			if tagName == "-" {
				continue
			}
			if tagName != "" {
				name = tagName
			}
		}
		props[name] = v.Field(i).Interface()
	}
	return props
}

// Property extracts a typed property from the first *Error in err's chain.
func Property[T any](err error, key string) (T, bool) {
	var e *Error
	if errors.As(err, &e) {
		if v, ok := e.Get(key); ok {
			if tv, ok := v.(T); ok {
				return tv, true
			}
		}
	}

	var zero T
	return zero, false
}
