package parser_test

import (
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/mansalskog/BadLisp/lisp"
	"github.com/mansalskog/BadLisp/parser"
	"github.com/mansalskog/BadLisp/symbol"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newRuntime(t testing.TB) *lisp.Runtime {
	rt, err := lisp.NewRuntime(lisp.WithReader(parser.NewReader()))
	require.NoError(t, err)
	return rt
}

func TestRead(t *testing.T) {
	tests := []struct {
		text   string
		result string
		rest   string
	}{
		{"()", "()", ""},
		{"( )", "()", ""},
		{"  \t\n(a b c)", "(a b c)", ""},
		{"(a (b c) ())", "(a (b c) ())", ""},
		{"42", "42", ""},
		{"-7", "-7", ""},
		{"3.25", "3.25", ""},
		{"1e3", "1000", ""},
		{"2.5E-1", "0.25", ""},
		{"1e999", "+Inf", ""},
		{"-1e999", "-Inf", ""},
		{"1e-999", "0", ""},
		{"1.", "1", ""},
		{"12abc", "12", "abc"},
		{"-", "-", ""},
		{"-x", "-x", ""},
		{"+", "+", ""},
		{"foo", "foo", ""},
		{"foo bar", "foo", " bar"},
		{"foo(bar)", "foo", "(bar)"},
		{`"hello world"`, `"hello world"`, ""},
		{`"a\"`, `"a\"`, ""},
		{"\"multi\nline\"", "\"multi\nline\"", ""},
		{`""`, `""`, ""},
		{"(+ 1 2) (+ 3 4)", "(+ 1 2)", " (+ 3 4)"},
		{"(1 2))", "(1 2)", ")"},
	}
	for i, test := range tests {
		rt := newRuntime(t)
		v, rest, err := parser.NewReader().Read(rt, test.text)
		if !assert.NoError(t, err, "test %d: %q", i, test.text) {
			continue
		}
		assert.Equal(t, test.result, v.String(), "test %d: %q", i, test.text)
		assert.Equal(t, test.rest, rest, "test %d: %q", i, test.text)
	}
}

func TestRead_types(t *testing.T) {
	rt := newRuntime(t)
	r := parser.NewReader()

	v, _, err := r.Read(rt, "(a 1 \"s\" ())")
	require.NoError(t, err)
	cells, ok := v.Slice()
	require.True(t, ok)
	require.Len(t, cells, 4)
	assert.Equal(t, lisp.LSymbol, cells[0].Type)
	assert.Equal(t, lisp.LNumber, cells[1].Type)
	assert.Equal(t, 1.0, cells[1].Num)
	assert.Equal(t, lisp.LString, cells[2].Type)
	assert.Equal(t, "s", cells[2].Str)
	assert.Nil(t, cells[3])
}

func TestRead_interned(t *testing.T) {
	rt := newRuntime(t)
	r := parser.NewReader()
	a1, _, err := r.Read(rt, "abc")
	require.NoError(t, err)
	a2, _, err := r.Read(rt, "(abc)")
	require.NoError(t, err)
	assert.Same(t, a1, a2.Car)
	sym, err := rt.Symbol("abc")
	require.NoError(t, err)
	assert.Same(t, a1, sym)
}

func TestRead_errors(t *testing.T) {
	tests := []struct {
		text string
		eof  bool
	}{
		{"", true},
		{"   \n", true},
		{"(", true},
		{"(a (b c)", true},
		{`"abc`, true},
		{`(a "abc)`, true},
		{")", false},
		{"'a", false},
		{".", false},
		{"(a . b)", false},
		{"(a 'b)", false},
	}
	for i, test := range tests {
		rt := newRuntime(t)
		_, _, err := parser.NewReader().Read(rt, test.text)
		if !assert.Error(t, err, "test %d: %q", i, test.text) {
			continue
		}
		errno, ok := lisp.GetErrno(err)
		assert.True(t, ok, "test %d: %q", i, test.text)
		assert.Equal(t, lisp.ErrnoParse, errno, "test %d: %q", i, test.text)
		assert.Equal(t, test.eof, errors.Is(err, io.ErrUnexpectedEOF), "test %d: %q", i, test.text)
	}
}

func TestRead_noParse(t *testing.T) {
	rt := newRuntime(t)
	_, rest, err := parser.NewReader().Read(rt, "  ) foo")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no parse for remaining input")
	assert.Equal(t, ") foo", rest)
}

func TestRead_symbolLength(t *testing.T) {
	rt := newRuntime(t)
	r := parser.NewReader()

	name := strings.Repeat("x", symbol.DefaultMaxLen)
	v, _, err := r.Read(rt, name)
	require.NoError(t, err)
	assert.Equal(t, name, v.String())

	_, _, err = r.Read(rt, name+"x")
	require.Error(t, err)
	assert.True(t, errors.Is(err, symbol.ErrTooLong))
	errno, _ := lisp.GetErrno(err)
	assert.Equal(t, lisp.ErrnoParse, errno)

	rt, err = lisp.NewRuntime(lisp.WithReader(r), lisp.WithSymbolMaxLen(0))
	require.NoError(t, err)
	_, _, err = r.Read(rt, strings.Repeat("y", 200))
	assert.NoError(t, err)
}

func TestReadAll(t *testing.T) {
	rt := newRuntime(t)
	exprs, err := parser.NewReader().ReadAll(rt, "(define x 1)\n  x \"s\"  \n")
	require.NoError(t, err)
	require.Len(t, exprs, 3)
	assert.Equal(t, "(define x 1)", exprs[0].String())
	assert.Equal(t, "x", exprs[1].String())
	assert.Equal(t, `"s"`, exprs[2].String())

	exprs, err = parser.NewReader().ReadAll(rt, "a (b")
	assert.Len(t, exprs, 1)
	assert.True(t, errors.Is(err, io.ErrUnexpectedEOF))
}

// Printing any expression the reader accepts and reading the output again
// yields a structurally equal value.
func TestRead_roundTrip(t *testing.T) {
	texts := []string{
		"()",
		"(a b c)",
		"(1 2.5 -3 4e2 0.001)",
		`("x y" "" sym)`,
		"((a (b (c))) () (() ()))",
		"(lambda (x) (* x x))",
		"(define map (lambda (f l) (if (null l) () (cons (f (car l)) (map f (cdr l))))))",
		"123456789012",
		"-0.5",
	}
	r := parser.NewReader()
	for _, text := range texts {
		rt := newRuntime(t)
		v1, _, err := r.Read(rt, text)
		require.NoError(t, err, text)
		v2, rest, err := r.Read(rt, v1.String())
		require.NoError(t, err, text)
		assert.Equal(t, "", rest, text)
		assert.True(t, lisp.Equal(v1, v2), "%s != %s", v1, v2)
		assert.Equal(t, v1.String(), v2.String())
	}
}

func BenchmarkReader(b *testing.B) {
	rt := newRuntime(b)
	r := parser.NewReader()
	text := "(define map (lambda (f l) (if (null l) () (cons (f (car l)) (map f (cdr l))))))"
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, _, err := r.Read(rt, text); err != nil {
			b.Fatal(err)
		}
		rt.Collect()
	}
}
