// Package moderrzap encodes moderr errors as Zap fields.
package moderrzap

import (
	"errors"

	"github.com/shiwano/moderr"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

type errorMarshaler struct {
	err *moderr.Error
}

// Error wraps an error for Zap's structured logging.
// It returns a Field that nests error information under the "error" key.
//
// The error object contains the serialized form of the error (see
// moderr.Error.Serialize), plus:
//   - origin: The origin stack frame (if present) with func, file, and line
//   - cause: The message of the error it was created from (if present)
//
// For top-level field expansion, use ErrorInline instead.
//
// Example:
//
//	err := ErrNotFound.New("user not found", moderr.Properties{"user_id": "u123"})
//	logger.Info("operation failed", Error(err))
func Error(err error) zapcore.Field {
	var e *moderr.Error
	if errors.As(err, &e) {
		return zap.Object("error", &errorMarshaler{err: e})
	}
	return zap.Object("error", zapcore.ObjectMarshalerFunc(func(enc zapcore.ObjectEncoder) error {
		enc.AddString("message", err.Error())
		return nil
	}))
}

// ErrorInline is like Error, but expands all error information at the top
// level of the log entry.
//
// Example:
//
//	err := ErrNotFound.New("user not found", moderr.Properties{"user_id": "u123"})
//	logger.Info("operation failed", ErrorInline(err))
func ErrorInline(err error) zapcore.Field {
	var e *moderr.Error
	if errors.As(err, &e) {
		return zap.Inline(&errorMarshaler{err: e})
	}
	return zap.Inline(zapcore.ObjectMarshalerFunc(func(enc zapcore.ObjectEncoder) error {
		enc.AddString("message", err.Error())
		return nil
	}))
}

func (m *errorMarshaler) MarshalLogObject(enc zapcore.ObjectEncoder) error {
	for k, v := range m.err.Serialize().All() {
		if s, ok := v.(string); ok {
			enc.AddString(k, s)
			continue
		}
		if err := enc.AddReflected(k, v); err != nil {
			return err
		}
	}

	if s := m.err.Stack(); s != nil {
		if frame, ok := s.HeadFrame(); ok {
			_ = enc.AddObject("origin", frameMarshaler{frame: frame})
		}
	}

	if cause := m.err.Unwrap(); cause != nil {
		enc.AddString("cause", cause.Error())
	}
	return nil
}

type frameMarshaler struct {
	frame moderr.Frame
}

func (m frameMarshaler) MarshalLogObject(enc zapcore.ObjectEncoder) error {
	enc.AddString("func", m.frame.Func)
	enc.AddString("file", m.frame.File)
	enc.AddInt("line", m.frame.Line)
	return nil
}
