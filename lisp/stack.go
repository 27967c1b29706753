package lisp

import (
	"bytes"
	"fmt"
	"io"

	"github.com/programble/lispy/parser/token"
)

// CallStack is a function call stack.
type CallStack struct {
	Frames []CallFrame
	// MaxHeight limits the number of frames on the stack.  A value less than
	// one disables the limit.
	MaxHeight int
}

// CallFrame is one frame in the CallStack
type CallFrame struct {
	Name   string
	Source *token.Location
	// Reused is set when the invocation reused its caller's frame through
	// recur.
	Reused bool
}

// Copy creates a copy of the current stack so that it can be attach to a
// runtime error.
func (s *CallStack) Copy() *CallStack {
	frames := make([]CallFrame, len(s.Frames))
	copy(frames, s.Frames)
	return &CallStack{Frames: frames, MaxHeight: s.MaxHeight}
}

// Height returns the number of frames on the stack.
func (s *CallStack) Height() int {
	if s == nil {
		return 0
	}
	return len(s.Frames)
}

// Top returns the CallFrame at the top of the stack or nil if none exists.
func (s *CallStack) Top() *CallFrame {
	if s == nil || len(s.Frames) == 0 {
		return nil
	}
	return &s.Frames[len(s.Frames)-1]
}

// Push pushes a new stack frame onto s.  Push returns a StackExhausted error
// when s is already at its maximum height.
func (s *CallStack) Push(name string, src *token.Location) error {
	if s.MaxHeight > 0 && len(s.Frames) >= s.MaxHeight {
		return &ErrorVal{
			Condition: CondStackExhausted,
			Msg:       fmt.Sprintf("maximum stack height exceeded (%d)", s.MaxHeight),
			FunName:   name,
			Source:    src,
			Stack:     s.Copy(),
		}
	}
	s.Frames = append(s.Frames, CallFrame{Name: name, Source: src})
	return nil
}

// Pop removes the top CallFrame from the stack and returns it.  Pop panics if
// the stack is empty.
func (s *CallStack) Pop() CallFrame {
	if len(s.Frames) < 1 {
		panic("pop called on an empty stack")
	}
	f := s.Frames[len(s.Frames)-1]
	s.Frames[len(s.Frames)-1] = CallFrame{}
	s.Frames = s.Frames[:len(s.Frames)-1]
	return f
}

// DebugPrint prints s
func (s *CallStack) DebugPrint(w io.Writer) (int, error) {
	n, err := fmt.Fprintf(w, "Stack Trace [%d frames -- entrypoint last]:\n", len(s.Frames))
	if err != nil {
		return n, err
	}
	indent := "  "
	for i := len(s.Frames) - 1; i >= 0; i-- {
		f := s.Frames[i]
		var mod bytes.Buffer
		if f.Reused {
			mod.WriteString(" [recur]")
		}
		name := f.Name
		if name == "" {
			name = "<anonymous>"
		}
		_n, err := fmt.Fprintf(w, "%sheight %d: %s%s\n", indent, i, name, mod.String())
		n += _n
		if err != nil {
			return n, err
		}
		if f.Source != nil {
			_n, err = fmt.Fprintf(w, "%s%s  source: %s\n", indent, indent, f.Source)
			n += _n
			if err != nil {
				return n, err
			}
		}
	}
	return n, nil
}
