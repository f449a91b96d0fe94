package moderr

import "maps"

type (
	// Option represents a configuration option that can be applied to error types.
	Option interface {
		// ApplyOption applies this option to the given applier.
		ApplyOption(o OptionApplier)
	}

	// OptionApplier provides methods for applying options to error types.
	OptionApplier interface {
		// SetName sets the display name.
		SetName(name string)
		// SetDefaults sets the default properties.
		SetDefaults(defaults Properties)
		// AddDefaults adds default properties on top of the ones the type
		// resolves once all options are applied, regardless of option order.
		AddDefaults(defaults Properties)
		// SetSerializeKeys sets the keys to include in the serialized form.
		SetSerializeKeys(keys []string)
		// SetTrace enables or disables stack trace collection.
		SetTrace(enabled bool)
		// AddStackSkip adds frames to skip during stack trace collection.
		AddStackSkip(skip int)
	}

	// TypeSpec configures a subtype in a single value. Zero-valued fields are
	// inherited from the parent type.
	TypeSpec struct {
		Name          string
		Defaults      Properties
		SerializeKeys []string
		NoTrace       bool
	}

	optionApplier struct {
		typ   *Type
		added Properties
	}

	name struct {
		name string
	}

	defaults struct {
		defaults Properties
	}

	defaultValue struct {
		key   string
		value any
	}

	serializeKeys struct {
		keys []string
	}

	trace struct {
		enabled bool
	}

	stackSkip struct {
		skip int
	}
)

var (
	_ OptionApplier = (*optionApplier)(nil)
	_ Option        = TypeSpec{}
)

func applyOptionsTo(t *Type, opts []Option) {
	a := &optionApplier{typ: t}
	for _, opt := range opts {
		if opt != nil {
			opt.ApplyOption(a)
		}
	}
	if len(a.added) > 0 {
		merged := t.Defaults()
		maps.Copy(merged, a.added)
		t.SetDefaults(merged)
	}
}

func (a *optionApplier) SetName(name string) {
	a.typ.name = name
}

func (a *optionApplier) SetDefaults(defaults Properties) {
	a.typ.SetDefaults(defaults)
}

func (a *optionApplier) AddDefaults(defaults Properties) {
	if a.added == nil {
		a.added = Properties{}
	}
	maps.Copy(a.added, defaults)
}

func (a *optionApplier) SetSerializeKeys(keys []string) {
	a.typ.SetSerializeKeys(keys...)
}

func (a *optionApplier) SetTrace(enabled bool) {
	a.typ.trace = &enabled
}

func (a *optionApplier) AddStackSkip(skip int) {
	a.typ.stackSkip += skip
}

func (s TypeSpec) ApplyOption(a OptionApplier) {
	if s.Name != "" {
		a.SetName(s.Name)
	}
	if s.Defaults != nil {
		a.SetDefaults(s.Defaults)
	}
	if s.SerializeKeys != nil {
		a.SetSerializeKeys(s.SerializeKeys)
	}
	if s.NoTrace {
		a.SetTrace(false)
	}
}

func (o *name) ApplyOption(a OptionApplier) {
	a.SetName(o.name)
}

func (o *defaults) ApplyOption(a OptionApplier) {
	a.SetDefaults(o.defaults)
}

func (o *defaultValue) ApplyOption(a OptionApplier) {
	a.AddDefaults(Properties{o.key: o.value})
}

func (o *serializeKeys) ApplyOption(a OptionApplier) {
	a.SetSerializeKeys(o.keys)
}

func (o *trace) ApplyOption(a OptionApplier) {
	a.SetTrace(o.enabled)
}

func (o *stackSkip) ApplyOption(a OptionApplier) {
	a.AddStackSkip(o.skip)
}
