package moderr

// Name sets the display name of the type, used as the default name of its errors.
func Name(n string) Option {
	return &name{name: n}
}

// Defaults sets the properties applied to every new error of the type,
// before the properties given at construction.
func Defaults(p Properties) Option {
	return &defaults{defaults: p}
}

// Default adds a single default property. Unlike Defaults, it keeps the
// other defaults of the type, including inherited ones, and it applies
// whether it comes before or after a Defaults option.
func Default(key string, value any) Option {
	return &defaultValue{key: key, value: value}
}

// SerializeKeys sets the keys always included in the serialized form, e.g.
// SerializeKeys("message", "stack") to expose the stack trace.
func SerializeKeys(keys ...string) Option {
	return &serializeKeys{keys: keys}
}

// NoTrace disables stack trace collection.
func NoTrace() Option {
	return &trace{enabled: false}
}

// Trace re-enables stack trace collection for a subtype of a NoTrace type.
func Trace() Option {
	return &trace{enabled: true}
}

// StackSkip adds to the number of frames to skip during stack trace
// collection. Use it for helpers that wrap the constructors.
func StackSkip(skip int) Option {
	return &stackSkip{skip: skip}
}
