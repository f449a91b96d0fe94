package moderr

import (
	"context"
	"fmt"
)

// Base is the root of every error type. Its display name is "Error".
var Base = &Type{name: "Error"}

// Define creates a new error type derived from Base.
//
// NOTE:
// errors.Is checks compare Type pointers, not display names. Two types
// defined with the same name are distinct, but sharing a name makes them
// indistinguishable in logs and in serialized output, and Resolver can only
// restore one of them.
func Define(name string, opts ...Option) *Type {
	return Base.Extend(name, opts...)
}

// New creates a new error of type Base with the given message.
func New(msg string, props ...Properties) *Error {
	return Base.construct(context.Background(), msg, props, callersSkip)
}

// Errorf creates a new error of type Base with a formatted message.
func Errorf(format string, args ...any) *Error {
	return Base.construct(context.Background(), fmt.Sprintf(format, args...), nil, callersSkip)
}

// From creates a new error of type Base from an existing error.
// Returns nil if err is nil.
func From(err error, props ...Properties) *Error {
	if err == nil {
		return nil
	}
	return Base.construct(context.Background(), err, props, callersSkip)
}

// FromProperties creates a new error of type Base from a property bag.
// The message is taken from the "message" property.
func FromProperties(props Properties) *Error {
	return Base.construct(context.Background(), props, nil, callersSkip)
}

// Make creates a new error of type Base from any value.
func Make(arg any, props ...Properties) *Error {
	return Base.construct(context.Background(), arg, props, callersSkip)
}

// CapturePanic captures a panic value and converts it to an error of type Base.
// If errPtr is nil or panicValue is nil, this function does nothing.
func CapturePanic(errPtr *error, panicValue any) {
	if panicValue == nil || errPtr == nil {
		return
	}
	*errPtr = Base.construct(context.Background(), panicValue, nil, callersSkip)
}
