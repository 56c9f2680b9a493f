package lisp

import (
	"errors"
	"fmt"
)

// Errno is an error code
type Errno int

// Posible Errno values
const (
	ErrnoInternal Errno = iota
	ErrnoParse
	ErrnoUndefined
	ErrnoNotCallable
	ErrnoArity
	ErrnoType
	ErrnoTruth
)

var errnoStrings = []string{
	ErrnoInternal:    "internal invariant violation",
	ErrnoParse:       "parse error",
	ErrnoUndefined:   "undefined variable",
	ErrnoNotCallable: "not callable",
	ErrnoArity:       "arity mismatch",
	ErrnoType:        "type mismatch",
	ErrnoTruth:       "invalid truth value",
}

func (n Errno) String() string {
	if n < 0 || int(n) >= len(errnoStrings) {
		return errnoStrings[ErrnoInternal]
	}
	return errnoStrings[n]
}

// ErrorVal is an error produced while reading or evaluating lisp code.  Every
// ErrorVal aborts only the current top-level evaluation.
type ErrorVal struct {
	Errno Errno
	Msg   string
	// Err is an optional underlying cause, such as io.ErrUnexpectedEOF for
	// unterminated input.
	Err error
	// Stack holds the calls in progress when the error occurred, if any.
	Stack *CallStack
}

// Error implements the error interface.
func (e *ErrorVal) Error() string {
	if e.Msg == "" {
		return e.Errno.String()
	}
	return e.Errno.String() + ": " + e.Msg
}

// Unwrap returns the underlying cause of e.
func (e *ErrorVal) Unwrap() error {
	return e.Err
}

// Errorf returns an ErrorVal with a formatted message.
func Errorf(errno Errno, format string, v ...interface{}) *ErrorVal {
	return &ErrorVal{
		Errno: errno,
		Msg:   fmt.Sprintf(format, v...),
	}
}

// WrapError returns an ErrorVal with the given cause.
func WrapError(errno Errno, err error, format string, v ...interface{}) *ErrorVal {
	return &ErrorVal{
		Errno: errno,
		Msg:   fmt.Sprintf(format, v...),
		Err:   err,
	}
}

// GetErrno returns the Errno of err.  GetErrno returns false if err does not
// wrap an ErrorVal.
func GetErrno(err error) (Errno, bool) {
	var lerr *ErrorVal
	if !errors.As(err, &lerr) {
		return 0, false
	}
	return lerr.Errno, true
}
