package moderr

import (
	"context"
	"maps"
)

type contextKey struct{}

var propertiesFromContextKey = contextKey{}

// ContextWithProperties adds error properties to a context.
// These properties are applied to errors created with Type.NewContext,
// after the type's defaults and before the explicitly given properties.
func ContextWithProperties(ctx context.Context, props Properties) context.Context {
	if len(props) == 0 {
		return ctx
	}
	merged := propertiesFromContext(ctx).Clone()
	maps.Copy(merged, props)
	return context.WithValue(ctx, propertiesFromContextKey, merged)
}

func propertiesFromContext(ctx context.Context) Properties {
	if ctx == nil {
		return nil
	}
	props, ok := ctx.Value(propertiesFromContextKey).(Properties)
	if !ok {
		return nil
	}
	return props
}
