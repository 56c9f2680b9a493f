// Package lisplib is used to conveniently load the standard library for a
// BadLisp runtime.  Library functions are ordinary lambdas written in lisp and
// parsed with the runtime's Reader.
package lisplib

import (
	"github.com/mansalskog/BadLisp/lisp"
)

type function struct {
	name    string
	formals string
	body    string
}

var library = []function{
	{"not", "(x)", "(if x false true)"},
	{"null", "(x)", "(eq x ())"},
	{"<=", "(a b)", "(or (< a b) (= a b))"},
	{">", "(a b)", "(< b a)"},
	{">=", "(a b)", "(or (< b a) (= a b))"},
	{"abs", "(x)", "(if (< x 0) (- x) x)"},
	{"equal", "(a b)", "(if (and (pair a) (pair b)) (and (equal (car a) (car b)) (equal (cdr a) (cdr b))) (eq a b))"},
	{"map", "(f l)", "(if (null l) () (cons (f (car l)) (map f (cdr l))))"},
	{"length", "(l)", "(if (null l) 0 (+ 1 (length (cdr l))))"},
	{"member", "(x l)", "(if (null l) false (if (equal x (car l)) true (member x (cdr l))))"},
}

// Names returns the names of the library functions in the order they are
// defined.
func Names() []string {
	names := make([]string, len(library))
	for i := range library {
		names[i] = library[i].name
	}
	return names
}

// LoadLibrary defines the standard library functions in rt.  The runtime must
// have a Reader.
func LoadLibrary(rt *lisp.Runtime) error {
	for _, fn := range library {
		if err := rt.DefineFunction(fn.name, fn.formals, fn.body); err != nil {
			return err
		}
	}
	rt.Collect()
	return nil
}
