// Package moderrzerolog encodes moderr errors as zerolog objects.
package moderrzerolog

import (
	"errors"

	"github.com/rs/zerolog"
	"github.com/shiwano/moderr"
)

type errorMarshaler struct {
	err *moderr.Error
}

type stdErrorMarshaler struct {
	err error
}

// Error wraps an error for zerolog's structured logging.
// It returns a LogObjectMarshaler that can be used with Object() or EmbedObject().
//
// The error object contains the serialized form of the error (see
// moderr.Error.Serialize), plus:
//   - origin: The origin stack frame (if present) with func, file, and line
//   - cause: The message of the error it was created from (if present)
//
// Example with Object() (nested under "error" key):
//
//	err := ErrNotFound.New("user not found", moderr.Properties{"user_id": "u123"})
//	logger.Info().Object("error", Error(err)).Msg("operation failed")
//
// Example with EmbedObject() (fields at top level):
//
//	logger.Info().EmbedObject(Error(err)).Msg("operation failed")
func Error(err error) zerolog.LogObjectMarshaler {
	var e *moderr.Error
	if errors.As(err, &e) {
		return &errorMarshaler{err: e}
	}
	return &stdErrorMarshaler{err: err}
}

func (m *errorMarshaler) MarshalZerologObject(e *zerolog.Event) {
	for k, v := range m.err.Serialize().All() {
		if s, ok := v.(string); ok {
			e.Str(k, s)
			continue
		}
		e.Interface(k, v)
	}

	if s := m.err.Stack(); s != nil {
		if frame, ok := s.HeadFrame(); ok {
			e.Object("origin", frameMarshaler{frame: frame})
		}
	}

	if cause := m.err.Unwrap(); cause != nil {
		e.Str("cause", cause.Error())
	}
}

type frameMarshaler struct {
	frame moderr.Frame
}

func (m frameMarshaler) MarshalZerologObject(e *zerolog.Event) {
	e.Str("func", m.frame.Func)
	e.Str("file", m.frame.File)
	e.Int("line", m.frame.Line)
}

func (m *stdErrorMarshaler) MarshalZerologObject(e *zerolog.Event) {
	e.Str("message", m.err.Error())
}
