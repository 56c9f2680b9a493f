package lisp

import (
	"errors"
	"fmt"
	"io"
	"log"
	"math"
	"os"

	"github.com/mansalskog/BadLisp/symbol"
)

// minSymbolMaxLen is the length of the longest name bound at startup.
const minSymbolMaxLen = 6

// Runtime holds all interpreter state: the symbol table, the heap of
// allocated values and the global environment.  A Runtime is not safe for
// concurrent use.
type Runtime struct {
	Symbols *symbol.Table
	Heap    *Heap
	Env     *Env
	Reader  Reader
	Stack   *CallStack
	Stderr  io.Writer
	Exit    func(code int)
	// Debug enables diagnostic output on Stderr.
	Debug bool

	// TRUE and FALSE are the only valid truth values.
	TRUE  *LVal
	FALSE *LVal

	quote        *LVal
	lambda       *LVal
	symbols      map[symbol.ID]*LVal
	symbolMaxLen int
	logger       *log.Logger
}

// NewRuntime initializes a runtime with the default special operators,
// builtins and global variables.  Library functions written in lisp are not
// loaded (see package lisplib).
func NewRuntime(config ...Config) (*Runtime, error) {
	rt := &Runtime{
		Heap:         newHeap(),
		Env:          &Env{},
		Stack:        &CallStack{},
		Stderr:       os.Stderr,
		Exit:         os.Exit,
		symbols:      make(map[symbol.ID]*LVal),
		symbolMaxLen: symbol.DefaultMaxLen,
	}
	for _, fn := range config {
		if err := fn(rt); err != nil {
			return nil, err
		}
	}
	rt.Symbols = symbol.NewTable(rt.symbolMaxLen)
	rt.logger = log.New(rt.Stderr, "", 0)
	if err := rt.initGlobals(); err != nil {
		return nil, err
	}
	return rt, nil
}

func (rt *Runtime) initGlobals() error {
	var err error
	if rt.TRUE, err = rt.Symbol("true"); err != nil {
		return err
	}
	if rt.FALSE, err = rt.Symbol("false"); err != nil {
		return err
	}
	if rt.quote, err = rt.Symbol("quote"); err != nil {
		return err
	}
	if rt.lambda, err = rt.Symbol("lambda"); err != nil {
		return err
	}
	rt.Env.Put(rt.TRUE, rt.TRUE)
	rt.Env.Put(rt.FALSE, rt.FALSE)
	if err := rt.SetGlobal("pi", rt.Number(math.Pi)); err != nil {
		return err
	}
	if err := rt.AddSpecialOps(); err != nil {
		return err
	}
	return rt.AddBuiltins()
}

func (rt *Runtime) debugf(format string, v ...interface{}) {
	if rt.Debug {
		rt.logger.Printf(format, v...)
	}
}

// Number returns a new LNumber.
func (rt *Runtime) Number(x float64) *LVal {
	return rt.Heap.alloc(&LVal{
		Type: LNumber,
		Num:  x,
	})
}

// String returns a new LString holding a copy of s.
func (rt *Runtime) String(s string) *LVal {
	return rt.Heap.alloc(&LVal{
		Type: LString,
		Str:  s,
	})
}

// Symbol returns the interned LSymbol named s.  Every call with the same name
// returns the same value, which is never freed.
func (rt *Runtime) Symbol(s string) (*LVal, error) {
	id, err := rt.Symbols.Intern(s)
	if err != nil {
		return nil, err
	}
	if v, ok := rt.symbols[id]; ok {
		return v, nil
	}
	v := rt.Heap.alloc(&LVal{
		Type: LSymbol,
		Sym:  id,
		Str:  s,
	})
	Retain(v)
	rt.symbols[id] = v
	return v, nil
}

// Cons returns a new LPair holding counted references to head and tail.
func (rt *Runtime) Cons(head, tail *LVal) *LVal {
	Retain(head)
	Retain(tail)
	return rt.Heap.alloc(&LVal{
		Type: LPair,
		Car:  head,
		Cdr:  tail,
	})
}

// List returns a proper list containing the elements of v.
func (rt *Runtime) List(v ...*LVal) *LVal {
	var lis *LVal
	for i := len(v) - 1; i >= 0; i-- {
		lis = rt.Cons(v[i], lis)
	}
	return lis
}

// Lambda returns an anonymous function with the given formals and body.  The
// formals are only checked when the function is called.
func (rt *Runtime) Lambda(formals, body *LVal) *LVal {
	Retain(formals)
	Retain(body)
	return rt.Heap.alloc(&LVal{
		Type:    LLambda,
		Formals: formals,
		Body:    body,
	})
}

// Quote returns the expression (quote v).
func (rt *Runtime) Quote(v *LVal) *LVal {
	return rt.List(rt.quote, v)
}

// Bool returns TRUE if ok and FALSE otherwise.
func (rt *Runtime) Bool(ok bool) *LVal {
	if ok {
		return rt.TRUE
	}
	return rt.FALSE
}

func (rt *Runtime) builtin(fun *langBuiltin) *LVal {
	return rt.Heap.alloc(&LVal{
		Type:    LBuiltin,
		Builtin: fun,
	})
}

// GetGlobal returns the value bound to the symbol named name.
func (rt *Runtime) GetGlobal(name string) (*LVal, error) {
	k, err := rt.Symbol(name)
	if err != nil {
		return nil, err
	}
	v, ok := rt.Env.Get(k)
	if !ok {
		return nil, Errorf(ErrnoUndefined, "%s", name)
	}
	return v, nil
}

// SetGlobal binds the symbol named name to v.
func (rt *Runtime) SetGlobal(name string, v *LVal) error {
	k, err := rt.Symbol(name)
	if err != nil {
		return err
	}
	rt.Env.Put(k, v)
	return nil
}

// AddSpecialOps binds the given special operators to their names.  When
// called with no arguments AddSpecialOps adds the DefaultSpecialOps.
func (rt *Runtime) AddSpecialOps(ops ...LBuiltinDef) error {
	if len(ops) == 0 {
		ops = DefaultSpecialOps()
	}
	for _, op := range ops {
		if err := rt.addBuiltin(op, true); err != nil {
			return err
		}
	}
	return nil
}

// AddBuiltins binds the given funs to their names.  When called with no
// arguments AddBuiltins adds the DefaultBuiltins.
func (rt *Runtime) AddBuiltins(funs ...LBuiltinDef) error {
	if len(funs) == 0 {
		funs = DefaultBuiltins()
	}
	for _, f := range funs {
		if err := rt.addBuiltin(f, false); err != nil {
			return err
		}
	}
	return nil
}

func (rt *Runtime) addBuiltin(def LBuiltinDef, special bool) error {
	k, err := rt.Symbol(def.Name())
	if err != nil {
		return err
	}
	if _, ok := rt.Env.Get(k); ok {
		return fmt.Errorf("symbol already defined: %s", def.Name())
	}
	fun := &langBuiltin{
		name:    def.Name(),
		fun:     def.Eval,
		special: special,
	}
	rt.Env.Put(k, rt.builtin(fun))
	return nil
}

// ErrNoReader is returned when source text is given to a Runtime without a
// Reader.
var ErrNoReader = errors.New("runtime has no reader")

// ReadString parses exactly one expression from text.  Trailing text other
// than whitespace is a parse error.
func (rt *Runtime) ReadString(text string) (*LVal, error) {
	if rt.Reader == nil {
		return nil, ErrNoReader
	}
	v, rest, err := rt.Reader.Read(rt, text)
	if err != nil {
		return nil, err
	}
	if rest = SkipSpace(rest); rest != "" {
		return nil, Errorf(ErrnoParse, "trailing text %q", rest)
	}
	return v, nil
}

// DefineFunction binds name to a lambda whose formals and body are parsed
// from the given source text.
func (rt *Runtime) DefineFunction(name, formals, body string) error {
	f, err := rt.ReadString(formals)
	if err != nil {
		return fmt.Errorf("%s: formals: %w", name, err)
	}
	b, err := rt.ReadString(body)
	if err != nil {
		return fmt.Errorf("%s: body: %w", name, err)
	}
	return rt.SetGlobal(name, rt.Lambda(f, b))
}

// EvalString reads exactly one expression from text and evaluates it.
func (rt *Runtime) EvalString(text string) (*LVal, error) {
	v, err := rt.ReadString(text)
	if err != nil {
		return nil, err
	}
	return rt.Eval(v)
}

// LoadString reads and evaluates every expression in source, collecting
// garbage after each one.  If fn is not nil it is called with each result
// before collection.
func (rt *Runtime) LoadString(name, source string, fn func(*LVal)) error {
	if rt.Reader == nil {
		return ErrNoReader
	}
	for {
		source = SkipSpace(source)
		if source == "" {
			return nil
		}
		expr, rest, err := rt.Reader.Read(rt, source)
		if err != nil {
			return fmt.Errorf("%s: %w", name, err)
		}
		source = rest
		v, err := rt.Eval(expr)
		if err != nil {
			rt.Collect()
			return fmt.Errorf("%s: %w", name, err)
		}
		if fn != nil {
			fn(v)
		}
		rt.Collect()
	}
}

// Collect frees unreferenced values.  Collect must only be called between
// top-level evaluations.
func (rt *Runtime) Collect() int {
	n := rt.Heap.Collect()
	rt.debugf("collected %d values (%d live)", n, rt.Heap.Len())
	return n
}
