package lisp

import (
	"strings"
)

// Env is the global variable environment, an unbalanced binary search tree of
// bindings ordered by symbol name.  Bindings are never removed.
type Env struct {
	root *binding
	n    int
}

type binding struct {
	sym   *LVal
	value *LVal
	left  *binding
	right *binding
}

// Len returns the number of bound symbols.
func (env *Env) Len() int {
	return env.n
}

// compare orders symbol a against b.  Interned symbols are identical iff
// their names are equal so identity is checked first.
func compare(a, b *LVal) int {
	if a == b {
		return 0
	}
	c := strings.Compare(a.Str, b.Str)
	if c == 0 {
		panic("distinct symbol values share the name " + a.Str)
	}
	return c
}

// Get takes an LSymbol k and returns the LVal it is bound to in env.  Get
// returns false if k is unbound.
func (env *Env) Get(k *LVal) (*LVal, bool) {
	b := env.root
	for b != nil {
		c := compare(k, b.sym)
		switch {
		case c == 0:
			return b.value, true
		case c < 0:
			b = b.left
		default:
			b = b.right
		}
	}
	return nil, false
}

// Put takes an LSymbol k and binds it to v in env.  A previously bound value
// is released and v is retained.
func (env *Env) Put(k, v *LVal) {
	if k == nil || k.Type != LSymbol {
		panic("environment key is not a symbol: " + k.TypeName())
	}
	p := &env.root
	for *p != nil {
		c := compare(k, (*p).sym)
		if c == 0 {
			break
		}
		if c < 0 {
			p = &(*p).left
		} else {
			p = &(*p).right
		}
	}
	if *p == nil {
		*p = &binding{sym: k}
		env.n++
	}
	// retain first in case v is already the bound value
	Retain(v)
	Release((*p).value)
	(*p).value = v
}

// Walk calls fn for each binding in env in order of symbol name.  Walk stops
// if fn returns false.
func (env *Env) Walk(fn func(k, v *LVal) bool) {
	walk(env.root, fn)
}

func walk(b *binding, fn func(k, v *LVal) bool) bool {
	if b == nil {
		return true
	}
	return walk(b.left, fn) && fn(b.sym, b.value) && walk(b.right, fn)
}

// depth returns the height of the tree, used to check that no rebalancing
// takes place.
func (env *Env) depth() int {
	return depth(env.root)
}

func depth(b *binding) int {
	if b == nil {
		return 0
	}
	l, r := depth(b.left), depth(b.right)
	if l > r {
		return l + 1
	}
	return r + 1
}
