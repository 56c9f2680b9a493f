package lisp

import (
	"errors"
	"io"
)

// Config is a function that configures a Runtime before its globals are
// initialized.
type Config func(rt *Runtime) error

// WithReader returns a Config that makes the runtime use r to parse source
// text.  There is no default Reader for a runtime.
func WithReader(r Reader) Config {
	return func(rt *Runtime) error {
		rt.Reader = r
		return nil
	}
}

// WithStderr returns a Config that makes the runtime write debugging output
// to w instead of the default, os.Stderr.
func WithStderr(w io.Writer) Config {
	return func(rt *Runtime) error {
		if w == nil {
			return errors.New("nil stderr writer")
		}
		rt.Stderr = w
		return nil
	}
}

// WithDebug returns a Config that sets the initial state of the diagnostic
// flag toggled by the ``debug'' builtin.
func WithDebug(on bool) Config {
	return func(rt *Runtime) error {
		rt.Debug = on
		return nil
	}
}

// WithExit returns a Config that makes the ``exit'' builtin call fn instead of
// os.Exit.
func WithExit(fn func(code int)) Config {
	return func(rt *Runtime) error {
		if fn == nil {
			return errors.New("nil exit function")
		}
		rt.Exit = fn
		return nil
	}
}

// WithSymbolMaxLen returns a Config that limits symbol names to n bytes.  If
// n is zero symbol names are unbounded.
func WithSymbolMaxLen(n int) Config {
	return func(rt *Runtime) error {
		if n < 0 {
			return errors.New("negative symbol length")
		}
		if n > 0 && n < minSymbolMaxLen {
			return errors.New("symbol length too short for builtin names")
		}
		rt.symbolMaxLen = n
		return nil
	}
}
