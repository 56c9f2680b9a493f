package lisp

import (
	"math"
)

// LBuiltinFunc is the Go implementation of a builtin function or special operator.
type LBuiltinFunc func(rt *Runtime, args *LVal) (*LVal, error)

// LBuiltinDef is a built-in function
type LBuiltinDef interface {
	Name() string
	Eval(rt *Runtime, args *LVal) (*LVal, error)
}

type langBuiltin struct {
	name    string
	fun     LBuiltinFunc
	special bool
}

func (fun *langBuiltin) Name() string {
	return fun.name
}

func (fun *langBuiltin) Eval(rt *Runtime, args *LVal) (*LVal, error) {
	return fun.fun(rt, args)
}

// NewBuiltinDef returns an LBuiltinDef that can be passed to
// Runtime.AddBuiltins or Runtime.AddSpecialOps.
func NewBuiltinDef(name string, fn LBuiltinFunc) LBuiltinDef {
	return &langBuiltin{name: name, fun: fn}
}

var langBuiltins = []*langBuiltin{
	{name: "cons", fun: builtinCons},
	{name: "car", fun: builtinCAR},
	{name: "cdr", fun: builtinCDR},
	{name: "eq", fun: builtinEq},
	{name: "list", fun: builtinList},
	{name: "append", fun: builtinAppend},
	{name: "+", fun: builtinAdd},
	{name: "-", fun: builtinSub},
	{name: "*", fun: builtinMul},
	{name: "/", fun: builtinDiv},
	{name: "^", fun: builtinPow},
	{name: "<", fun: builtinLT},
	{name: "=", fun: builtinEqNum},
	{name: "pair", fun: builtinPair},
	{name: "apply", fun: builtinApply},
	{name: "debug", fun: builtinDebug},
	{name: "exit", fun: builtinExit},
}

// DefaultBuiltins returns the default set of LBuiltinDefs added to a Runtime
// when Runtime.AddBuiltins is called without arguments.
func DefaultBuiltins() []LBuiltinDef {
	ops := make([]LBuiltinDef, len(langBuiltins))
	for i := range langBuiltins {
		ops[i] = langBuiltins[i]
	}
	return ops
}

// argSlice returns the elements of the argument list given to the builtin
// name.
func argSlice(name string, args *LVal) ([]*LVal, error) {
	cells, ok := args.Slice()
	if !ok {
		return nil, Errorf(ErrnoInternal, "%s: argument list is not a proper list: %v", name, args)
	}
	return cells, nil
}

// checkArgs returns the elements of args if there are exactly n of them.
func checkArgs(name string, args *LVal, n int) ([]*LVal, error) {
	cells, err := argSlice(name, args)
	if err != nil {
		return nil, err
	}
	if len(cells) != n {
		return nil, Errorf(ErrnoArity, "%s: expected %d arguments (got %d)", name, n, len(cells))
	}
	return cells, nil
}

// numberArgs returns the values of args, which must all be numbers.
func numberArgs(name string, args *LVal) ([]float64, error) {
	cells, err := argSlice(name, args)
	if err != nil {
		return nil, err
	}
	nums := make([]float64, len(cells))
	for i, c := range cells {
		if c == nil || c.Type != LNumber {
			return nil, Errorf(ErrnoType, "%s: argument %d is not a number: %v", name, i+1, c)
		}
		nums[i] = c.Num
	}
	return nums, nil
}

func builtinCons(rt *Runtime, args *LVal) (*LVal, error) {
	cells, err := checkArgs("cons", args, 2)
	if err != nil {
		return nil, err
	}
	return rt.Cons(cells[0], cells[1]), nil
}

func builtinCAR(rt *Runtime, args *LVal) (*LVal, error) {
	cells, err := checkArgs("car", args, 1)
	if err != nil {
		return nil, err
	}
	if !cells[0].IsPair() {
		return nil, Errorf(ErrnoType, "car: argument is not a pair: %v", cells[0])
	}
	return cells[0].Car, nil
}

func builtinCDR(rt *Runtime, args *LVal) (*LVal, error) {
	cells, err := checkArgs("cdr", args, 1)
	if err != nil {
		return nil, err
	}
	if !cells[0].IsPair() {
		return nil, Errorf(ErrnoType, "cdr: argument is not a pair: %v", cells[0])
	}
	return cells[0].Cdr, nil
}

// builtinEq compares by identity, except that numbers compare by value.
func builtinEq(rt *Runtime, args *LVal) (*LVal, error) {
	cells, err := checkArgs("eq", args, 2)
	if err != nil {
		return nil, err
	}
	a, b := cells[0], cells[1]
	if a == b {
		return rt.TRUE, nil
	}
	if a != nil && b != nil && a.Type == LNumber && b.Type == LNumber {
		return rt.Bool(a.Num == b.Num), nil
	}
	return rt.FALSE, nil
}

func builtinList(rt *Runtime, args *LVal) (*LVal, error) {
	return args, nil
}

// builtinAppend copies the first list and makes the second list its tail.
func builtinAppend(rt *Runtime, args *LVal) (*LVal, error) {
	cells, err := checkArgs("append", args, 2)
	if err != nil {
		return nil, err
	}
	head, ok := cells[0].Slice()
	if !ok {
		return nil, Errorf(ErrnoType, "append: first argument is not a list: %v", cells[0])
	}
	lis := cells[1]
	for i := len(head) - 1; i >= 0; i-- {
		lis = rt.Cons(head[i], lis)
	}
	return lis, nil
}

func builtinAdd(rt *Runtime, args *LVal) (*LVal, error) {
	nums, err := numberArgs("+", args)
	if err != nil {
		return nil, err
	}
	total := 0.0
	for _, x := range nums {
		total += x
	}
	return rt.Number(total), nil
}

func builtinMul(rt *Runtime, args *LVal) (*LVal, error) {
	nums, err := numberArgs("*", args)
	if err != nil {
		return nil, err
	}
	total := 1.0
	for _, x := range nums {
		total *= x
	}
	return rt.Number(total), nil
}

// foldNumbers applies op from left to right.  With a single argument x the
// result is unary(x).
func foldNumbers(rt *Runtime, name string, args *LVal, unary func(float64) float64, op func(a, b float64) float64) (*LVal, error) {
	nums, err := numberArgs(name, args)
	if err != nil {
		return nil, err
	}
	switch len(nums) {
	case 0:
		return nil, Errorf(ErrnoArity, "%s: expected at least 1 argument (got 0)", name)
	case 1:
		return rt.Number(unary(nums[0])), nil
	}
	acc := nums[0]
	for _, x := range nums[1:] {
		acc = op(acc, x)
	}
	return rt.Number(acc), nil
}

func builtinSub(rt *Runtime, args *LVal) (*LVal, error) {
	return foldNumbers(rt, "-", args,
		func(x float64) float64 { return -x },
		func(a, b float64) float64 { return a - b })
}

func builtinDiv(rt *Runtime, args *LVal) (*LVal, error) {
	return foldNumbers(rt, "/", args,
		func(x float64) float64 { return 1 / x },
		func(a, b float64) float64 { return a / b })
}

func builtinPow(rt *Runtime, args *LVal) (*LVal, error) {
	return foldNumbers(rt, "^", args,
		func(x float64) float64 { return x },
		math.Pow)
}

func compareNumbers(rt *Runtime, name string, args *LVal, cmp func(a, b float64) bool) (*LVal, error) {
	if _, err := checkArgs(name, args, 2); err != nil {
		return nil, err
	}
	nums, err := numberArgs(name, args)
	if err != nil {
		return nil, err
	}
	return rt.Bool(cmp(nums[0], nums[1])), nil
}

func builtinLT(rt *Runtime, args *LVal) (*LVal, error) {
	return compareNumbers(rt, "<", args, func(a, b float64) bool { return a < b })
}

func builtinEqNum(rt *Runtime, args *LVal) (*LVal, error) {
	return compareNumbers(rt, "=", args, func(a, b float64) bool { return a == b })
}

func builtinPair(rt *Runtime, args *LVal) (*LVal, error) {
	cells, err := checkArgs("pair", args, 1)
	if err != nil {
		return nil, err
	}
	return rt.Bool(cells[0].IsPair()), nil
}

// builtinApply calls a function with an argument list that has already been
// evaluated.
func builtinApply(rt *Runtime, args *LVal) (*LVal, error) {
	cells, err := checkArgs("apply", args, 2)
	if err != nil {
		return nil, err
	}
	if _, ok := cells[1].Len(); !ok {
		return nil, Errorf(ErrnoType, "apply: second argument is not a list: %v", cells[1])
	}
	return rt.Call(cells[0], cells[1])
}

func builtinDebug(rt *Runtime, args *LVal) (*LVal, error) {
	if _, err := checkArgs("debug", args, 0); err != nil {
		return nil, err
	}
	rt.Debug = !rt.Debug
	rt.logger.Printf("debug mode %s", map[bool]string{true: "on", false: "off"}[rt.Debug])
	return nil, nil
}

func builtinExit(rt *Runtime, args *LVal) (*LVal, error) {
	nums, err := numberArgs("exit", args)
	if err != nil {
		return nil, err
	}
	if len(nums) > 1 {
		return nil, Errorf(ErrnoArity, "exit: expected at most 1 argument (got %d)", len(nums))
	}
	code := 0
	if len(nums) == 1 {
		code = int(nums[0])
	}
	rt.Exit(code)
	return nil, nil
}
