package moderr

import "encoding/json"

// Resolver maps display names back to error types, so that errors can be
// restored from their serialized form.
type Resolver struct {
	types    []*Type
	byName   map[string]*Type
	fallback *Type
}

var (
	// ErrDecodeFailure is returned when serialized data cannot be decoded.
	ErrDecodeFailure = Define("DecodeError", NoTrace())
	// ErrTypeNotFound is returned when no type matches a serialized name and
	// the resolver has no fallback.
	ErrTypeNotFound = Define("TypeNotFoundError", NoTrace())
)

// NewResolver creates a new Resolver with the given types.
// If multiple types have the same name, the first one wins.
func NewResolver(types ...*Type) *Resolver {
	byName := make(map[string]*Type, len(types))
	kept := make([]*Type, 0, len(types))
	for _, t := range types {
		if t == nil {
			continue
		}
		kept = append(kept, t)
		if _, exists := byName[t.name]; exists {
			continue // First type wins
		}
		byName[t.name] = t
	}
	return &Resolver{
		types:  kept,
		byName: byName,
	}
}

// WithFallback returns a copy of the resolver that restores errors with an
// unknown name as the given type, keeping their name as an override.
func (r *Resolver) WithFallback(fallback *Type) *Resolver {
	return &Resolver{
		types:    r.types,
		byName:   r.byName,
		fallback: fallback,
	}
}

// Types returns all types managed by the resolver.
func (r *Resolver) Types() []*Type {
	return r.types[:len(r.types):len(r.types)]
}

// Fallback returns the fallback type, or nil if there is none.
func (r *Resolver) Fallback() *Type {
	return r.fallback
}

// Resolve resolves a type by its display name.
// Returns the type and true if found, the fallback and false otherwise.
func (r *Resolver) Resolve(name string) (*Type, bool) {
	if t, ok := r.byName[name]; ok {
		return t, true
	}
	return r.fallback, false
}

// Restore rebuilds an error from a serialized map, as produced by
// Error.Serialize or by decoding its JSON form. The "name" entry selects the
// type. The restored error only has a stack trace if the map carries one.
//
// "name" is only serialized when it is one of the type's SerializeKeys.
// Without it, the error is restored as the fallback type, or ErrTypeNotFound
// is returned when the resolver has none.
func (r *Resolver) Restore(fields map[string]any) (*Error, error) {
	name, _ := fields[KeyName].(string)
	t, ok := r.Resolve(name)
	if t == nil {
		return nil, ErrTypeNotFound.New("no error type named "+name, Properties{"type_name": name})
	}

	bag := Properties(fields).Clone()
	if ok {
		delete(bag, KeyName)
	}

	e := &Error{
		typ:   t,
		name:  t.name,
		props: Properties{},
	}
	for k, v := range t.Defaults() {
		e.Set(k, v)
	}
	e.Delete(KeyStack)
	for k, v := range bag {
		e.Set(k, v)
	}
	return e, nil
}

// Unmarshal decodes a JSON object produced by Error.MarshalJSON and restores
// the error with Restore. Serialize "name" (see Type.SetSerializeKeys) or
// configure a fallback to restore errors of the default serialized form.
func (r *Resolver) Unmarshal(data []byte) (*Error, error) {
	var fields map[string]any
	if err := json.Unmarshal(data, &fields); err != nil {
		return nil, ErrDecodeFailure.From(err)
	}
	if fields == nil {
		return nil, ErrDecodeFailure.New("serialized error is not a JSON object")
	}
	return r.Restore(fields)
}
