package moderr

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"strings"
)

type (
	// Error is an error instance created by a Type. Besides its message it
	// carries a display name, a stack trace and an open property bag.
	//
	// Properties stay mutable after construction, like ordinary fields.
	// An Error must not be mutated concurrently.
	Error struct {
		typ   *Type
		msg   string
		name  string
		stack Stack
		props Properties
		cause error
	}

	// stackTracer is used by Sentry SDK to extract stack traces from errors.
	// See: https://github.com/getsentry/sentry-go/blob/54a69e05ea609d3fc32fb1393770258dde6796c1/stacktrace.go#L84-L87
	stackTracer interface {
		StackTrace() []uintptr
	}

	// causer is used by pkg/errors to extract the cause of an error.
	// See: https://github.com/golang/go/issues/31778
	causer interface {
		Cause() error
	}
)

var (
	_ error          = (*Error)(nil)
	_ fmt.Formatter  = (*Error)(nil)
	_ json.Marshaler = (*Error)(nil)
	_ slog.LogValuer = (*Error)(nil)
	_ stackTracer    = (*Error)(nil)
	_ causer         = (*Error)(nil)
)

// Error returns the message.
func (e *Error) Error() string {
	return e.msg
}

// Message returns the message. It is empty when no source provided one.
func (e *Error) Message() string {
	return e.msg
}

// Name returns the display name, which defaults to the name of the type
// that created the error.
func (e *Error) Name() string {
	return e.name
}

// SetName overrides the display name of this error only.
func (e *Error) SetName(name string) {
	e.name = name
}

// Type returns the type that created this error.
func (e *Error) Type() *Type {
	return e.typ
}

// Stack returns the stack trace, or nil when none was recorded.
func (e *Error) Stack() Stack {
	return e.stack
}

// Properties returns a copy of the property bag. Message, name and stack
// are not part of it.
func (e *Error) Properties() Properties {
	return e.props.Clone()
}

// Get returns the value stored under key. The reserved keys "message",
// "name" and "stack" address the built-in fields.
func (e *Error) Get(key string) (any, bool) {
	switch key {
	case KeyMessage:
		return e.msg, true
	case KeyName:
		return e.name, true
	case KeyStack:
		if e.stack == nil {
			return nil, false
		}
		return e.stack, true
	}
	v, ok := e.props[key]
	return v, ok
}

// Set stores value under key. For the reserved keys the value is converted:
// "message" and "name" take its string form, nil resets "name" to the type
// name, and a nil "stack" removes the stack trace.
func (e *Error) Set(key string, value any) {
	switch key {
	case KeyMessage:
		e.msg = messageOf(value)
	case KeyName:
		if value == nil {
			e.name = e.typ.name
		} else {
			e.name = messageOf(value)
		}
	case KeyStack:
		e.stack = stackOf(value)
	default:
		if e.props == nil {
			e.props = Properties{}
		}
		e.props[key] = value
	}
}

// Delete removes key from the property bag. Deleting "stack" removes the
// stack trace; the message and name cannot be deleted.
func (e *Error) Delete(key string) {
	switch key {
	case KeyMessage, KeyName:
	case KeyStack:
		e.stack = nil
	default:
		delete(e.props, key)
	}
}

// Unwrap returns the error this error was created from, if any.
func (e *Error) Unwrap() error {
	return e.cause
}

// Cause returns the error this error was created from, if any.
func (e *Error) Cause() error {
	return e.cause
}

// Is reports whether target is this error, or a Type that created it or is
// an ancestor of the type that created it.
func (e *Error) Is(target error) bool {
	if e == target {
		return true
	}
	if t, ok := target.(*Type); ok {
		return e.typ.Inherits(t)
	}
	return false
}

func (e *Error) StackTrace() []uintptr {
	if e.stack == nil {
		return nil
	}
	return e.stack.StackTrace()
}

// String returns "Name: message", or just the name when the message is empty.
func (e *Error) String() string {
	if e.msg == "" {
		return e.name
	}
	if e.name == "" {
		return e.msg
	}
	return e.name + ": " + e.msg
}

func (e *Error) Format(s fmt.State, verb rune) {
	switch verb {
	case 'v':
		switch {
		case s.Flag('+'):
			_, _ = fmt.Fprintf(s, "%s\n\n", e.String())

			if len(e.props) > 0 {
				_, _ = io.WriteString(s, "Properties:\n")
				for _, f := range sortedFields(e.props) {
					_, _ = fmt.Fprintf(s, "\t%v: %+v\n", f.Key, f.Value)
				}
			}

			if e.stack != nil {
				_, _ = io.WriteString(s, "Stack:\n")
				if frames := e.stack.Frames(); len(frames) > 0 {
					for _, f := range frames {
						if f.File != "" {
							_, _ = fmt.Fprintf(s, "\t%s\n\t\t%s:%d\n", f.Func, f.File, f.Line)
						}
					}
				} else {
					for line := range strings.SplitSeq(e.stack.String(), "\n") {
						_, _ = fmt.Fprintf(s, "\t%s\n", line)
					}
				}
			}

			if e.cause != nil {
				_, _ = io.WriteString(s, "Cause:\n")
				causeStr := strings.Trim(fmt.Sprintf("%+v", e.cause), "\n")
				for line := range strings.SplitSeq(causeStr, "\n") {
					_, _ = fmt.Fprintf(s, "\t%s\n", line)
				}
			}
		case s.Flag('#'):
			// Avoid infinite recursion in case someone does %#v on Error.
			type Error struct {
				typ   *Type
				msg   string
				name  string
				stack Stack
				props Properties
				cause error
			}
			var tmp = Error(*e)
			_, _ = fmt.Fprintf(s, "%#v", &tmp)
		default:
			_, _ = io.WriteString(s, e.Error())
		}
	case 's':
		_, _ = io.WriteString(s, e.Error())
	case 'q':
		_, _ = fmt.Fprintf(s, "%q", e.Error())
	}
}

// MarshalJSON encodes the serialized form returned by Serialize.
func (e *Error) MarshalJSON() ([]byte, error) {
	return e.Serialize().MarshalJSON()
}

// LogValue returns the serialized form as a slog group.
func (e *Error) LogValue() slog.Value {
	return e.Serialize().LogValue()
}
