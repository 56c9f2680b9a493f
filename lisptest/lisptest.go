// Package lisptest provides helpers for testing lisp code evaluated by a
// lisp.Runtime.
package lisptest

import (
	"testing"

	"github.com/mansalskog/BadLisp/lisp"
	"github.com/mansalskog/BadLisp/lisp/lisplib"
	"github.com/mansalskog/BadLisp/parser"
)

// NewRuntime returns a runtime with a parser.Reader and the standard library
// loaded.  The runtime's exit hook does nothing unless config overrides it.
func NewRuntime(config ...lisp.Config) (*lisp.Runtime, error) {
	base := []lisp.Config{
		lisp.WithReader(parser.NewReader()),
		lisp.WithExit(func(int) {}),
	}
	rt, err := lisp.NewRuntime(append(base, config...)...)
	if err != nil {
		return nil, err
	}
	if err := lisplib.LoadLibrary(rt); err != nil {
		return nil, err
	}
	return rt, nil
}

// TestSequence is a sequence of lisp expressions which are evaluated
// sequentially by a lisp.Runtime.
type TestSequence []struct {
	Expr   string // a lisp expression
	Result string // the evaluated result, or the error message
}

// TestSuite is a set of named TestSequences
type TestSuite []struct {
	Name string
	TestSequence
}

// RunTestSuite runs each TestSequence in tests on isolated runtimes.  Garbage
// is collected after every expression, the way the REPL does.
func RunTestSuite(t *testing.T, tests TestSuite) {
	t.Helper()
	for i, test := range tests {
		rt, err := NewRuntime()
		if err != nil {
			t.Fatalf("test %d %q: %v", i, test.Name, err)
		}
		for j, expr := range test.TestSequence {
			var result string
			v, err := rt.EvalString(expr.Expr)
			if err != nil {
				result = err.Error()
			} else {
				result = v.String()
			}
			if result != expr.Result {
				t.Errorf("test %d %q: expr %d: expected result %s (got %s)", i, test.Name, j, expr.Result, result)
			}
			rt.Collect()
		}
	}
}

// AssertTrue evaluates expr in rt and fails the test unless the result is
// the true symbol.
func AssertTrue(t testing.TB, rt *lisp.Runtime, expr string) bool {
	t.Helper()
	defer rt.Collect()
	v, err := rt.EvalString(expr)
	if err != nil {
		t.Errorf("assertion %s: %v", expr, err)
		return false
	}
	if v != rt.TRUE {
		t.Errorf("assertion %s: evaluated to %v", expr, v)
		return false
	}
	return true
}
