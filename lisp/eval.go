package lisp

import "errors"

// Eval evaluates v and returns the resulting LVal.  The empty value is a valid
// result and evaluates to itself.
//
// Evaluation recurses on the Go stack.  There is no tail call optimization so
// deep recursion in lisp code is bounded only by the Go stack limit.
func (rt *Runtime) Eval(v *LVal) (*LVal, error) {
	if v == nil {
		return nil, nil
	}
	switch v.Type {
	case LSymbol:
		val, ok := rt.Env.Get(v)
		if !ok {
			return nil, Errorf(ErrnoUndefined, "%s", v.Str)
		}
		return val, nil
	case LPair:
		return rt.evalCall(v)
	default:
		return v, nil
	}
}

// evalCall evaluates the call expression s.  Arguments are evaluated unless
// the function is a special operator.
func (rt *Runtime) evalCall(s *LVal) (*LVal, error) {
	f, err := rt.Eval(s.Car)
	if err != nil {
		return nil, err
	}
	args := s.Cdr
	switch {
	case f == nil:
		return nil, Errorf(ErrnoNotCallable, "cannot call the empty value")
	case f.IsSpecialOp():
	case f.Type == LBuiltin || f.Type == LLambda:
		args, err = rt.EvalEach(args)
		if err != nil {
			return nil, err
		}
	default:
		return nil, Errorf(ErrnoNotCallable, "cannot call %s: %v", f.Type, f)
	}
	return rt.Call(f, args)
}

// EvalEach evaluates each element of list from left to right and returns a
// new list of the results.
func (rt *Runtime) EvalEach(list *LVal) (*LVal, error) {
	var vals []*LVal
	for l := list; l != nil; l = l.Cdr {
		if l.Type != LPair {
			return nil, Errorf(ErrnoInternal, "argument list is not a proper list: %v", list)
		}
		v, err := rt.Eval(l.Car)
		if err != nil {
			return nil, err
		}
		vals = append(vals, v)
	}
	return rt.List(vals...), nil
}

// Call invokes the builtin or lambda f with the list args.  The arguments are
// not evaluated.
func (rt *Runtime) Call(f *LVal, args *LVal) (*LVal, error) {
	if f == nil {
		return nil, Errorf(ErrnoNotCallable, "cannot call the empty value")
	}
	if f.Type != LBuiltin && f.Type != LLambda {
		return nil, Errorf(ErrnoNotCallable, "cannot call %s: %v", f.Type, f)
	}
	rt.Stack.Push(f)
	var v *LVal
	var err error
	if f.Type == LBuiltin {
		rt.debugf("call %v %v", f, args)
		v, err = f.Builtin.fun(rt, args)
	} else {
		rt.debugf("call lambda %v %v", f.Formals, args)
		v, err = rt.callLambda(f, args)
	}
	if err != nil {
		var lerr *ErrorVal
		if errors.As(err, &lerr) && lerr.Stack == nil {
			lerr.Stack = rt.Stack.Copy()
		}
	}
	rt.Stack.Pop()
	return v, err
}

// callLambda binds args to the formals of fun by substituting each argument
// into a copy of the body, then evaluates the resulting expression.
//
// Substitution is not hygienic.  Arguments are substituted one after another
// so a symbol inside an earlier argument that names a later formal is
// replaced as well.
func (rt *Runtime) callLambda(fun *LVal, args *LVal) (*LVal, error) {
	formals, ok := fun.Formals.Slice()
	if !ok {
		return nil, Errorf(ErrnoType, "lambda formals are not a list: %v", fun.Formals)
	}
	for _, sym := range formals {
		if sym == nil || sym.Type != LSymbol {
			return nil, Errorf(ErrnoType, "lambda formal is not a symbol: %v", sym)
		}
	}
	vals, ok := args.Slice()
	if !ok {
		return nil, Errorf(ErrnoInternal, "argument list is not a proper list: %v", args)
	}
	if len(formals) != len(vals) {
		return nil, Errorf(ErrnoArity, "lambda expects %d arguments (got %d)", len(formals), len(vals))
	}
	body := fun.Body
	for i, sym := range formals {
		val := vals[i]
		if val.IsPair() {
			// keep list data from being evaluated as a call
			val = rt.Quote(val)
		}
		body = rt.substitute(body, sym, val)
	}
	return rt.Eval(body)
}

// substitute returns expr with every free occurrence of sym replaced by val.
// Subexpressions that contain no occurrence are shared with expr.
func (rt *Runtime) substitute(expr, sym, val *LVal) *LVal {
	if expr == sym {
		return val
	}
	if !expr.IsPair() || rt.binds(expr, sym) {
		return expr
	}
	car := rt.substitute(expr.Car, sym, val)
	cdr := rt.substitute(expr.Cdr, sym, val)
	if car == expr.Car && cdr == expr.Cdr {
		return expr
	}
	return rt.Cons(car, cdr)
}

// binds returns true if expr is a lambda expression with sym among its
// formals.
func (rt *Runtime) binds(expr, sym *LVal) bool {
	if expr.Car != rt.lambda || !expr.Cdr.IsPair() {
		return false
	}
	for f := expr.Cdr.Car; f.IsPair(); f = f.Cdr {
		if f.Car == sym {
			return true
		}
	}
	return false
}
