package lisp

import (
	"fmt"
	"io"
)

// CallStack records the builtins and lambdas being applied by a Runtime.
// Errors returned from a call carry a copy of the stack at the point of
// failure.
type CallStack struct {
	Frames []CallFrame
}

// CallFrame is one application of a function.
type CallFrame struct {
	// Name is the name of a builtin.  Lambdas are anonymous.
	Name string
	Fun  *LVal
}

func (f *CallFrame) String() string {
	if f.Name != "" {
		return f.Name
	}
	return f.Fun.String()
}

// Copy returns a snapshot of s that is unaffected by later calls.
func (s *CallStack) Copy() *CallStack {
	frames := make([]CallFrame, len(s.Frames))
	copy(frames, s.Frames)
	return &CallStack{frames}
}

// Len returns the number of frames in s.
func (s *CallStack) Len() int {
	if s == nil {
		return 0
	}
	return len(s.Frames)
}

// Top returns the most recent frame, or nil if s is empty.
func (s *CallStack) Top() *CallFrame {
	n := s.Len()
	if n == 0 {
		return nil
	}
	return &s.Frames[n-1]
}

// Push records a call to fun.
func (s *CallStack) Push(fun *LVal) {
	f := CallFrame{Fun: fun}
	if fun.Type == LBuiltin {
		f.Name = fun.Builtin.name
	}
	s.Frames = append(s.Frames, f)
}

// Pop removes and returns the most recent frame.  Pop panics if s is empty.
func (s *CallStack) Pop() CallFrame {
	n := len(s.Frames)
	if n == 0 {
		panic("pop called on an empty stack")
	}
	f := s.Frames[n-1]
	s.Frames[n-1] = CallFrame{}
	s.Frames = s.Frames[:n-1]
	return f
}

// DebugPrint writes the frames of s to w, most recent first.
func (s *CallStack) DebugPrint(w io.Writer) (int, error) {
	total, err := fmt.Fprintf(w, "Stack Trace [%d frames -- entrypoint last]:\n", len(s.Frames))
	for i := len(s.Frames) - 1; i >= 0 && err == nil; i-- {
		var n int
		n, err = fmt.Fprintf(w, "  height %d: %s\n", i, s.Frames[i].String())
		total += n
	}
	return total, err
}
