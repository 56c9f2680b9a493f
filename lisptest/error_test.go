package lisptest

import (
	"testing"

	"github.com/mansalskog/BadLisp/lisp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestErrors(t *testing.T) {
	tests := TestSuite{
		{"undefined", TestSequence{
			{"undefined_symbol_xyz", "undefined variable: undefined_symbol_xyz"},
			{"(foo 1)", "undefined variable: foo"},
		}},
		{"not callable", TestSequence{
			{"(1 2)", "not callable: cannot call number: 1"},
			{"(())", "not callable: cannot call the empty value"},
			{`("f")`, `not callable: cannot call string: "f"`},
			{"(apply 1 ())", "not callable: cannot call number: 1"},
		}},
		{"arity", TestSequence{
			{"(cons 1)", "arity mismatch: cons: expected 2 arguments (got 1)"},
			{"(car)", "arity mismatch: car: expected 1 arguments (got 0)"},
			{"(-)", "arity mismatch: -: expected at least 1 argument (got 0)"},
			{"(/)", "arity mismatch: /: expected at least 1 argument (got 0)"},
			{"(< 1)", "arity mismatch: <: expected 2 arguments (got 1)"},
			{"(if true 1)", "arity mismatch: if: expected 3 arguments (got 2)"},
			{"(quote)", "arity mismatch: quote: expected 1 arguments (got 0)"},
			{"(lambda (x))", "arity mismatch: lambda: expected 2 arguments (got 1)"},
			{"((lambda (x) x))", "arity mismatch: lambda expects 1 arguments (got 0)"},
			{"((lambda (x) x) 1 2)", "arity mismatch: lambda expects 1 arguments (got 2)"},
			{"(abs 1 2)", "arity mismatch: lambda expects 1 arguments (got 2)"},
			{"(exit 1 2)", "arity mismatch: exit: expected at most 1 argument (got 2)"},
		}},
		{"type", TestSequence{
			{"(car 1)", "type mismatch: car: argument is not a pair: 1"},
			{"(cdr ())", "type mismatch: cdr: argument is not a pair: ()"},
			{`(+ 1 "a")`, `type mismatch: +: argument 2 is not a number: "a"`},
			{"(< (quote a) 1)", "type mismatch: <: argument 1 is not a number: a"},
			{"(define 1 2)", "type mismatch: define: cannot define non-symbol 1"},
			{"((lambda (1) 1) 2)", "type mismatch: lambda formal is not a symbol: 1"},
			{"((lambda x 1) 2)", "type mismatch: lambda formals are not a list: x"},
			{"(append 1 2)", "type mismatch: append: first argument is not a list: 1"},
			{"(apply + 1)", "type mismatch: apply: second argument is not a list: 1"},
		}},
		{"truth", TestSequence{
			{"(if 1 2 3)", "invalid truth value: if: condition is neither true nor false: 1"},
			{"(if () 2 3)", "invalid truth value: if: condition is neither true nor false: ()"},
			{"(not 0)", "invalid truth value: if: condition is neither true nor false: 0"},
		}},
		{"parse", TestSequence{
			{"(+ 1", "parse error: unexpected end of input in list"},
			{`"abc`, "parse error: unexpected end of input in string"},
			{"", "parse error: unexpected end of input in expression"},
			{")", `parse error: no parse for remaining input: ")"`},
			{"1 2", `parse error: trailing text "2"`},
		}},
		{"recovery", TestSequence{
			{"(define x 1)", "()"},
			{"(define x (car 1))", "type mismatch: car: argument is not a pair: 1"},
			{"x", "1"},
		}},
	}
	RunTestSuite(t, tests)
}

func TestErrno(t *testing.T) {
	rt, err := NewRuntime()
	require.NoError(t, err)
	tests := []struct {
		expr  string
		errno lisp.Errno
	}{
		{"(cons 1)", lisp.ErrnoArity},
		{"undefined_symbol_xyz", lisp.ErrnoUndefined},
		{"(1)", lisp.ErrnoNotCallable},
		{"(car 1)", lisp.ErrnoType},
		{"(if 1 1 1)", lisp.ErrnoTruth},
		{"(1", lisp.ErrnoParse},
	}
	for _, test := range tests {
		_, err := rt.EvalString(test.expr)
		if !assert.Error(t, err, test.expr) {
			continue
		}
		errno, ok := lisp.GetErrno(err)
		assert.True(t, ok, test.expr)
		assert.Equal(t, test.errno, errno, test.expr)
		rt.Collect()
	}
}
