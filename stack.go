package moderr

import (
	"fmt"
	"runtime"
	"strings"
)

type (
	// Stack represents a stack trace captured when an error was created.
	Stack interface {
		fmt.Stringer
		// StackTrace returns the raw stack trace as program counters.
		StackTrace() []uintptr
		// Frames returns the stack trace as structured frame information.
		Frames() []Frame
		// HeadFrame returns the frame where the error was created.
		HeadFrame() (Frame, bool)
		// Len returns the number of frames in the stack trace.
		Len() int
	}

	// Frame represents a single frame in a stack trace.
	Frame struct {
		Func string `json:"func"`
		File string `json:"file"`
		Line int    `json:"line"`
	}

	stack struct {
		pcs []uintptr
	}

	// textStack is a stack restored from its string form, e.g. after
	// deserialization. It carries no program counters.
	textStack string
)

var (
	_ Stack = (*stack)(nil)
	_ Stack = textStack("")
)

const (
	maxStackDepth = 32

	// callersSkip is the number of skip frames when using the Type methods.
	// 4 frames: runtime.Callers, newStack, Type.construct, and the Type methods.
	callersSkip = 4
)

func newStack(skip int) *stack {
	var pcs [maxStackDepth]uintptr
	n := runtime.Callers(skip, pcs[:])
	if n == 0 {
		return nil
	}
	return &stack{pcs: pcs[:n:n]}
}

// stackOf converts a value found in a property bag or on a foreign error
// into a Stack. It returns nil when v does not describe a stack.
func stackOf(v any) Stack {
	switch s := v.(type) {
	case nil:
		return nil
	case *stack:
		if s == nil || len(s.pcs) == 0 {
			return nil
		}
		return s
	case Stack:
		if s.Len() == 0 && s.String() == "" {
			return nil
		}
		return s
	case []uintptr:
		if len(s) == 0 {
			return nil
		}
		return &stack{pcs: s}
	case string:
		if s == "" {
			return nil
		}
		return textStack(s)
	default:
		return textStack(fmt.Sprint(s))
	}
}

func (s *stack) StackTrace() []uintptr {
	if s == nil || len(s.pcs) == 0 {
		return nil
	}
	return s.pcs
}

func (s *stack) Frames() []Frame {
	if s.Len() == 0 {
		return nil
	}
	fs := runtime.CallersFrames(s.pcs)
	frames := make([]Frame, 0, len(s.pcs))
	for {
		f, more := fs.Next()
		frames = append(frames, Frame{
			Func: f.Function,
			File: f.File,
			Line: f.Line,
		})
		if !more {
			break
		}
	}
	return frames
}

func (s *stack) HeadFrame() (Frame, bool) {
	if s.Len() == 0 {
		return Frame{}, false
	}
	f, _ := runtime.CallersFrames(s.pcs).Next()
	return Frame{Func: f.Function, File: f.File, Line: f.Line}, true
}

func (s *stack) Len() int {
	if s == nil {
		return 0
	}
	return len(s.pcs)
}

// String renders the stack in the same layout as runtime/debug.Stack,
// one "func\n\tfile:line" pair per frame.
func (s *stack) String() string {
	var b strings.Builder
	for i, f := range s.Frames() {
		if i > 0 {
			b.WriteByte('\n')
		}
		fmt.Fprintf(&b, "%s\n\t%s:%d", f.Func, f.File, f.Line)
	}
	return b.String()
}

func (s textStack) StackTrace() []uintptr { return nil }

func (s textStack) Frames() []Frame { return nil }

func (s textStack) HeadFrame() (Frame, bool) { return Frame{}, false }

func (s textStack) Len() int { return 0 }

func (s textStack) String() string { return string(s) }
