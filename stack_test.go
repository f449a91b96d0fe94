package moderr_test

import (
	"strings"
	"testing"

	"github.com/shiwano/moderr"
)

func TestStack_StackTrace(t *testing.T) {
	err := moderr.New("test error")
	result := err.Stack().StackTrace()

	if len(result) == 0 {
		t.Error("want non-empty stack trace")
	}

	hasValidPC := false
	for _, pc := range result {
		if pc != 0 {
			hasValidPC = true
			break
		}
	}
	if !hasValidPC {
		t.Error("want at least one valid program counter")
	}
}

func TestStack_Frames(t *testing.T) {
	tests := []struct {
		name string
		err  func() *moderr.Error
	}{
		{"package New", func() *moderr.Error { return moderr.New("test error") }},
		{"package Make", func() *moderr.Error { return moderr.Make(42) }},
		{"package FromProperties", func() *moderr.Error {
			return moderr.FromProperties(moderr.Properties{"message": "test error"})
		}},
		{"type New", func() *moderr.Error { return moderr.Define("FrameError").New("test error") }},
		{"type FromProperties", func() *moderr.Error {
			return moderr.Define("FrameError").FromProperties(moderr.Properties{"message": "test error"})
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			frames := tt.err().Stack().Frames()

			if len(frames) == 0 {
				t.Fatal("want non-empty frames")
			}

			f := frames[0]
			if !strings.Contains(f.Func, "TestStack_Frames") {
				t.Errorf("want constructor frames to be skipped, got %s", f.Func)
			}
			if strings.Contains(f.Func, "github.com/shiwano/moderr.") {
				t.Errorf("want no moderr frame on top, got %s", f.Func)
			}
			if !strings.Contains(f.File, "stack_test.go") {
				t.Errorf("want file stack_test.go, got %s", f.File)
			}
			if f.Line == 0 {
				t.Error("want non-zero line number")
			}
		})
	}
}

func TestStack_HeadFrame(t *testing.T) {
	err := moderr.New("test error")

	frame, ok := err.Stack().HeadFrame()
	if !ok {
		t.Fatal("want head frame")
	}
	if frame != err.Stack().Frames()[0] {
		t.Errorf("want head frame to equal the first frame, got %+v", frame)
	}
}

func TestStack_Len(t *testing.T) {
	err := moderr.New("test error")
	stack := err.Stack()

	length := stack.Len()
	if length == 0 {
		t.Error("want non-zero length")
	}

	stackTrace := stack.StackTrace()
	if length != len(stackTrace) {
		t.Errorf("want Len() == len(StackTrace()), got Len()=%d, len(StackTrace())=%d", length, len(stackTrace))
	}
}

func TestStack_String(t *testing.T) {
	t.Run("captured", func(t *testing.T) {
		s := moderr.New("test error").Stack().String()

		lines := strings.Split(s, "\n")
		if len(lines) < 2 {
			t.Fatalf("want at least one frame, got %q", s)
		}
		if !strings.Contains(lines[0], "TestStack_String") {
			t.Errorf("want function on the first line, got %q", lines[0])
		}
		if !strings.HasPrefix(lines[1], "\t") || !strings.Contains(lines[1], "stack_test.go:") {
			t.Errorf("want indented file:line on the second line, got %q", lines[1])
		}
	})

	t.Run("from text", func(t *testing.T) {
		err := moderr.New("test error", moderr.Properties{"stack": "at somewhere"})
		stack := err.Stack()

		if stack.String() != "at somewhere" {
			t.Errorf("want text stack, got %q", stack.String())
		}
		if stack.Len() != 0 || stack.Frames() != nil || stack.StackTrace() != nil {
			t.Error("want no frames for a text stack")
		}
		if _, ok := stack.HeadFrame(); ok {
			t.Error("want no head frame for a text stack")
		}
	})
}

func TestStackSkip(t *testing.T) {
	typ := moderr.Define("HelperError", moderr.StackSkip(1))

	err := newHelperError(typ)
	frame, _ := err.Stack().HeadFrame()

	if !strings.Contains(frame.Func, "TestStackSkip") {
		t.Errorf("want helper frame to be skipped, got %s", frame.Func)
	}
}

//go:noinline
func newHelperError(typ *moderr.Type) *moderr.Error {
	return typ.New("from helper")
}
