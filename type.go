package moderr

import (
	"context"
	"errors"
	"fmt"
	"slices"
)

// Type describes a kind of error: its display name, its parent, and the
// configuration applied to every error it creates.
//
// Configuration is stored per type and resolved from the nearest ancestor
// that has an explicit value. Setting it on one type never affects its
// parent or siblings. The setters are not synchronized; configure types
// before they are used concurrently.
type Type struct {
	name   string
	parent *Type

	defaults      Properties
	hasDefaults   bool
	serializeKeys []string
	hasSerialize  bool
	trace         *bool
	stackSkip     int
}

var defaultSerializeKeys = []string{KeyMessage}

// Name returns the display name of this type.
func (t *Type) Name() string {
	return t.name
}

// Parent returns the type this type was derived from, or nil for Base.
func (t *Type) Parent() *Type {
	return t.parent
}

// Error returns the display name of this type.
// This makes Type implement the error interface, so it can be used as the
// target of errors.Is.
func (t *Type) Error() string {
	if t.name == "" {
		return "[unnamed]"
	}
	return t.name
}

// Is reports whether target is this type or one of its ancestors.
func (t *Type) Is(target error) bool {
	u, ok := target.(*Type)
	return ok && t.Inherits(u)
}

// Inherits reports whether t is ancestor or derives from it.
func (t *Type) Inherits(ancestor *Type) bool {
	if ancestor == nil {
		return false
	}
	for cur := t; cur != nil; cur = cur.parent {
		if cur == ancestor {
			return true
		}
	}
	return false
}

// Match reports whether err was created by this type or one of its subtypes.
func (t *Type) Match(err error) bool {
	return errors.Is(err, t)
}

// Defaults returns a copy of the default properties applied to new errors.
// It falls back to the nearest ancestor's value, then to an empty bag.
func (t *Type) Defaults() Properties {
	if r := t.resolve(func(c *Type) bool { return c.hasDefaults }); r != nil {
		return r.defaults.Clone()
	}
	return Properties{}
}

// SetDefaults replaces the default properties of this type.
// The value is stored as given, without merging with any previous or
// inherited value.
func (t *Type) SetDefaults(defaults Properties) {
	t.defaults = defaults.Clone()
	t.hasDefaults = true
}

// SerializeKeys returns the keys always included in the serialized form of
// errors of this type, even if they are not stored in the property bag.
// It falls back to the nearest ancestor's value, then to ["message"].
func (t *Type) SerializeKeys() []string {
	if r := t.resolve(func(c *Type) bool { return c.hasSerialize }); r != nil {
		return slices.Clone(r.serializeKeys)
	}
	return slices.Clone(defaultSerializeKeys)
}

// SetSerializeKeys replaces the serialize keys of this type.
// Errors already created by this type pick up the change, since the keys are
// read when an error is serialized.
func (t *Type) SetSerializeKeys(keys ...string) {
	if keys == nil {
		keys = []string{}
	}
	t.serializeKeys = slices.Clone(keys)
	t.hasSerialize = true
}

// CapturesTrace reports whether errors of this type record a stack trace.
func (t *Type) CapturesTrace() bool {
	if r := t.resolve(func(c *Type) bool { return c.trace != nil }); r != nil {
		return *r.trace
	}
	return true
}

// Extend creates a subtype named name with the given options applied.
func (t *Type) Extend(name string, opts ...Option) *Type {
	return t.Subclass(append([]Option{Name(name)}, opts...)...)
}

// Subclass creates a subtype of t. Configuration that the options do not
// set, including the display name, is inherited from t.
func (t *Type) Subclass(opts ...Option) *Type {
	sub := &Type{
		name:      t.name,
		parent:    t,
		stackSkip: t.stackSkip,
	}
	applyOptionsTo(sub, opts)
	return sub
}

// New creates a new error with the given message.
func (t *Type) New(msg string, props ...Properties) *Error {
	return t.construct(context.Background(), msg, props, callersSkip)
}

// Errorf creates a new error with a formatted message.
func (t *Type) Errorf(format string, args ...any) *Error {
	return t.construct(context.Background(), fmt.Sprintf(format, args...), nil, callersSkip)
}

// From creates a new error that inherits the message, stack and properties
// of err. Properties in props override the inherited ones.
// Returns nil if err is nil.
func (t *Type) From(err error, props ...Properties) *Error {
	if err == nil {
		return nil
	}
	return t.construct(context.Background(), err, props, callersSkip)
}

// FromProperties creates a new error from a property bag. The message is
// taken from the "message" property.
func (t *Type) FromProperties(props Properties) *Error {
	return t.construct(context.Background(), props, nil, callersSkip)
}

// Make creates a new error from any value: an error, a property bag, a
// string, or anything else, which is formatted with fmt.Sprint.
func (t *Type) Make(arg any, props ...Properties) *Error {
	return t.construct(context.Background(), arg, props, callersSkip)
}

// NewContext is like Make, but also applies the properties attached to ctx
// with ContextWithProperties. Explicit properties win over context ones.
func (t *Type) NewContext(ctx context.Context, arg any, props ...Properties) *Error {
	return t.construct(ctx, arg, props, callersSkip)
}

// CapturePanic converts a recovered panic value into an error of this type
// and stores it in errPtr. If errPtr or panicValue is nil, it does nothing.
func (t *Type) CapturePanic(errPtr *error, panicValue any) {
	if panicValue == nil || errPtr == nil {
		return
	}
	*errPtr = t.construct(context.Background(), panicValue, nil, callersSkip)
}

func (t *Type) resolve(explicit func(*Type) bool) *Type {
	for cur := t; cur != nil; cur = cur.parent {
		if explicit(cur) {
			return cur
		}
	}
	return nil
}

func (t *Type) construct(ctx context.Context, arg any, extra []Properties, skip int) *Error {
	msg, bag, cause := normalize(arg, extra)

	e := &Error{
		typ:   t,
		msg:   msg,
		name:  t.name,
		cause: cause,
		props: Properties{},
	}
	if t.CapturesTrace() {
		if s := newStack(skip + t.stackSkip); s != nil {
			e.stack = s
		}
	}

	for k, v := range t.Defaults() {
		e.Set(k, v)
	}
	for k, v := range propertiesFromContext(ctx) {
		e.Set(k, v)
	}
	for k, v := range bag {
		e.Set(k, v)
	}
	return e
}
