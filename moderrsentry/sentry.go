// Package moderrsentry reports moderr errors to Sentry.
package moderrsentry

import (
	"context"
	"errors"
	"strconv"

	"github.com/getsentry/sentry-go"
	"github.com/shiwano/moderr"
)

// Property keys read by CaptureError.
const (
	// LevelKey holds a sentry.Level, or its string form.
	LevelKey = "sentry_level"
	// UnreportableKey holds a bool. Errors with true are not reported.
	UnreportableKey = "unreportable"
	// StatusKey holds an int HTTP status, reported as the "http.status" tag.
	StatusKey = "status"
)

// Level returns an option that sets the Sentry severity level for errors of
// a type. The other defaults of the type are kept.
//
//	var ErrNotFound = moderr.Define("NotFoundError", moderrsentry.Level(sentry.LevelInfo))
func Level(level sentry.Level) moderr.Option {
	return moderr.Default(LevelKey, level)
}

// CaptureError reports an error to Sentry with context from moderr data.
//
// This function:
//   - Returns false if the error is nil or unreportable
//   - Retrieves the Sentry hub from the context
//   - Configures the Sentry scope with error metadata:
//   - Level (defaults to sentry.LevelError)
//   - Name as a tag
//   - Status as a tag
//   - The serialized error as the "error" context
//   - Captures the error exception
func CaptureError(ctx context.Context, err error) bool {
	if err == nil {
		return false
	} else if unreportable, _ := moderr.Property[bool](err, UnreportableKey); unreportable {
		return false
	}

	hub := sentry.GetHubFromContext(ctx)
	if hub == nil {
		hub = sentry.CurrentHub()
	}

	hub.WithScope(func(scope *sentry.Scope) {
		scope.SetLevel(levelFrom(err))

		if name, ok := moderr.Property[string](err, moderr.KeyName); ok {
			scope.SetTag("error.name", name)
		}

		if status, ok := moderr.Property[int](err, StatusKey); ok {
			scope.SetTag("http.status", strconv.Itoa(status))
		}

		var e *moderr.Error
		if errors.As(err, &e) {
			scope.SetContext("error", sentry.Context(e.Serialize().Map()))
		}

		hub.CaptureException(err)
	})
	return true
}

func levelFrom(err error) sentry.Level {
	if level, ok := moderr.Property[sentry.Level](err, LevelKey); ok {
		return level
	}
	if level, ok := moderr.Property[string](err, LevelKey); ok {
		return sentry.Level(level)
	}
	return sentry.LevelError
}
