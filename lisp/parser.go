package lisp

import "strings"

// Reader abstracts a parser implementation so that it may be implemented in a
// separate package as an optional/swappable component.
type Reader interface {
	// Read parses one expression from the beginning of text, allocating
	// values through rt.  Read returns the expression and the unconsumed
	// remainder of text.
	Read(rt *Runtime, text string) (*LVal, string, error)
}

// Whitespace is the set of characters skipped between tokens.
const Whitespace = " \t\n\v\f\r"

// SkipSpace returns text without its leading whitespace.
func SkipSpace(text string) string {
	return strings.TrimLeft(text, Whitespace)
}
