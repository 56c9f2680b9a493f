package lisp

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLVal_String(t *testing.T) {
	rt := newTestRuntime(t)
	syms := testSymbols(t, rt, "a", "b", "x")
	a, b, x := syms[0], syms[1], syms[2]
	car, err := rt.GetGlobal("car")
	require.NoError(t, err)

	tests := []struct {
		v      *LVal
		result string
	}{
		{nil, "()"},
		{a, "a"},
		{rt.Number(3), "3"},
		{rt.Number(-0.25), "-0.25"},
		{rt.Number(1e21), "1e+21"},
		{rt.Number(100000), "100000"},
		{rt.String("hi there"), `"hi there"`},
		{rt.String(`say "hi"`), `"say "hi""`},
		{rt.List(a, b), "(a b)"},
		{rt.List(nil, rt.List(a)), "(() (a))"},
		{rt.Cons(a, b), "(a . b)"},
		{rt.Cons(a, rt.Cons(b, rt.Number(1))), "(a b . 1)"},
		{car, "[builtin car]"},
		{rt.Lambda(rt.List(x), rt.List(x, x)), "(lambda (x) (x x))"},
		{rt.Lambda(nil, rt.Number(1)), "(lambda () 1)"},
	}
	for i, test := range tests {
		assert.Equal(t, test.result, test.v.String(), "test %d", i)
	}
}

func TestLVal_DebugString(t *testing.T) {
	rt := newTestRuntime(t)
	assert.Equal(t, "[nil]", (*LVal)(nil).DebugString())

	n := rt.Number(1)
	assert.Equal(t, fmt.Sprintf("[%#x number with 0 refs: 1]", n.ID()), n.DebugString())

	p := rt.Cons(n, nil)
	expect := fmt.Sprintf("[%#x pair with 0 refs: ([%#x number with 1 refs: 1] . [nil])]", p.ID(), n.ID())
	assert.Equal(t, expect, p.DebugString())
}

func TestLVal_Len(t *testing.T) {
	rt := newTestRuntime(t)
	n, ok := (*LVal)(nil).Len()
	assert.True(t, ok)
	assert.Equal(t, 0, n)

	n, ok = rt.List(rt.Number(1), rt.Number(2)).Len()
	assert.True(t, ok)
	assert.Equal(t, 2, n)

	_, ok = rt.Cons(rt.Number(1), rt.Number(2)).Len()
	assert.False(t, ok)
	_, ok = rt.Number(1).Slice()
	assert.False(t, ok)

	cells, ok := rt.List(rt.Number(1), nil).Slice()
	assert.True(t, ok)
	if assert.Len(t, cells, 2) {
		assert.Equal(t, 1.0, cells[0].Num)
		assert.Nil(t, cells[1])
	}
}

func TestEqual(t *testing.T) {
	rt := newTestRuntime(t)
	a := testSymbols(t, rt, "a")[0]
	car, _ := rt.GetGlobal("car")
	cdr, _ := rt.GetGlobal("cdr")

	assert.True(t, Equal(nil, nil))
	assert.True(t, Equal(rt.Number(2), rt.Number(2)))
	assert.True(t, Equal(rt.String("s"), rt.String("s")))
	assert.True(t, Equal(rt.List(a, rt.List(rt.Number(1))), rt.List(a, rt.List(rt.Number(1)))))
	assert.True(t, Equal(car, car))

	assert.False(t, Equal(nil, rt.Number(0)))
	assert.False(t, Equal(rt.Number(2), rt.String("2")))
	assert.False(t, Equal(rt.List(a), rt.List(a, a)))
	assert.False(t, Equal(car, cdr))
	assert.False(t, Equal(rt.Lambda(nil, nil), rt.Lambda(nil, nil)))
}

func TestLValType_String(t *testing.T) {
	assert.Equal(t, "pair", LPair.String())
	assert.Equal(t, "INVALID", LValType(100).String())
	assert.Equal(t, "nil", (*LVal)(nil).TypeName())
}
